package validation

import (
	"encoding/json"
	"html"
	"strconv"
	"strings"
)

// IntField carries a numeric request field that clients may send either as a
// JSON number or as a quoted string. Coercion to int64 is deferred to the
// sanitizing stage so that a bad value surfaces as a per-field type error
// instead of a request-wide decode failure.
type IntField struct {
	raw     string
	present bool
}

// UnmarshalJSON accepts numbers, strings, and null.
func (f *IntField) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		s = str
	}
	f.raw = html.EscapeString(strings.TrimSpace(s))
	f.present = true
	return nil
}

// Present reports whether the field appeared in the request body.
func (f IntField) Present() bool { return f.present }

// Empty reports whether the field is absent or blank.
func (f IntField) Empty() bool { return !f.present || f.raw == "" }

// Int64 coerces the raw value to an integer.
func (f IntField) Int64() (int64, error) {
	return strconv.ParseInt(f.raw, 10, 64)
}

// StringList carries an optional array-of-labels request field. A single
// string is accepted and treated as a one-element array. The zero value
// means the field was absent, which callers must distinguish from an
// explicit empty array: absent leaves a relation untouched, empty array
// disconnects everything.
type StringList struct {
	values  []string
	present bool
}

// UnmarshalJSON accepts an array of strings, a lone string, or null.
func (l *StringList) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	if len(s) > 0 && s[0] == '[' {
		var arr []string
		if err := json.Unmarshal(b, &arr); err != nil {
			return err
		}
		l.values = arr
		l.present = true
		return nil
	}
	var one string
	if err := json.Unmarshal(b, &one); err != nil {
		return err
	}
	l.values = []string{one}
	l.present = true
	return nil
}

// Present reports whether the field appeared in the request body.
func (l StringList) Present() bool { return l.present }

// Values returns the trimmed labels. Nil when the field was absent.
func (l StringList) Values() []string {
	if !l.present {
		return nil
	}
	out := make([]string, len(l.values))
	for i, v := range l.values {
		out[i] = strings.TrimSpace(v)
	}
	return out
}

// parseID coerces an already-sanitized string into an entity id.
func parseID(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}

// trim normalizes a free-text field.
func trim(s string) string {
	return strings.TrimSpace(s)
}

// escape normalizes and HTML-escapes a field that is echoed back to clients.
func escape(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}
