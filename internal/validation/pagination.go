package validation

import (
	"net/url"
	"strconv"
)

// Pagination defaults and bounds.
const (
	defaultStart   = 0
	defaultEnd     = 10
	defaultOrderBy = OrderByDate
	defaultOrder   = OrderAsc

	// maxWindowWidth is the exclusive upper bound on end-start.
	maxWindowWidth = 30
)

// Recognized orderBy / order values.
const (
	OrderByDate  = "date"
	OrderByTitle = "title"
	OrderAsc     = "asc"
	OrderDesc    = "desc"
)

// Window is a validated, bounded pagination window. Start is the zero-based
// offset after the one-based correction; End-Start is the page size.
// Windows are request-scoped and never persisted.
type Window struct {
	Start   int
	End     int
	Search  string
	OrderBy string
	Order   string
}

// Width returns the number of items the window spans.
func (w Window) Width() int { return w.End - w.Start }

// ParseWindow validates raw list query parameters into a Window. Absent
// parameters take their defaults; a parameter that fails its own check never
// silently falls back to its default. On failure the returned Errors carries
// one message per offending parameter.
//
// A client-sent start greater than zero is decremented by one, so start=0 and
// start=1 both address offset 0. End must be strictly greater than the
// already-adjusted start and the window width is capped below 30.
func ParseWindow(q url.Values) (Window, Errors) {
	var errs Errors

	w := Window{
		Start:   defaultStart,
		End:     defaultEnd,
		Search:  trim(q.Get("search")),
		OrderBy: defaultOrderBy,
		Order:   defaultOrder,
	}

	startOK := true
	if raw := trim(q.Get("start")); raw != "" {
		start, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			errs.Add("start", "Start must be a number")
			startOK = false
		case start < 0:
			errs.Add("start", "Start cannot be negative")
			startOK = false
		default:
			// One-based to zero-based correction.
			if start > 0 {
				start--
			}
			w.Start = start
		}
	}

	if raw := trim(q.Get("end")); raw != "" {
		end, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			errs.Add("end", "End must be a number")
		case end < 0:
			errs.Add("end", "End cannot be negative")
		default:
			w.End = end
		}
	}

	// The window shape checks depend on a sane start.
	if startOK && !errs.Has("end") {
		if w.End <= w.Start {
			errs.Add("end", "End must be larger than start")
		} else if w.Width() >= maxWindowWidth {
			errs.Add("end", "Maximum number of items requested is 30")
		}
	}

	if raw := escape(q.Get("orderBy")); raw != "" {
		if raw != OrderByDate && raw != OrderByTitle {
			errs.Add("orderBy", "Order must be by title or date")
		} else {
			w.OrderBy = raw
		}
	}

	if raw := escape(q.Get("order")); raw != "" {
		if raw != OrderAsc && raw != OrderDesc {
			errs.Add("order", "Order must be asc or desc")
		} else {
			w.Order = raw
		}
	}

	if len(errs) > 0 {
		return Window{}, errs
	}
	return w, nil
}
