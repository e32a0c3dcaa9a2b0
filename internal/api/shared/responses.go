package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Envelope is the fixed response wrapper every endpoint uses. Status is
// "success" for completed requests and "fail" for requests rejected before
// they touched storage; Data carries the resource or the field error list.
type Envelope struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
}

// errorEnvelope is the wrapper for server faults. The message is always a
// generic one; details stay in the logs, keyed by trace id.
type errorEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	TraceID string `json:"trace_id,omitempty"`
}

// RespondWithJSON writes any payload as JSON with the given status code.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode JSON response",
			"error", err,
			"trace_id", GetTraceID(r.Context()),
			"path", r.URL.Path)
	}
}

// RespondSuccess writes a success envelope with the given status code.
func RespondSuccess(w http.ResponseWriter, r *http.Request, status int, data any) {
	RespondWithJSON(w, r, status, Envelope{Status: "success", Data: data})
}

// RespondFail writes a fail envelope. Data is the field error list the
// request was rejected with.
func RespondFail(w http.ResponseWriter, r *http.Request, status int, data any) {
	slog.Debug("request rejected",
		"status_code", status,
		"trace_id", GetTraceID(r.Context()),
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, status, Envelope{Status: "fail", Data: data})
}

// RespondError writes a 500 error envelope and logs the underlying error.
// The raw error never reaches the client.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	traceID := GetTraceID(r.Context())

	slog.Error("internal error handling request",
		"error", err,
		"trace_id", traceID,
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, http.StatusInternalServerError, errorEnvelope{
		Status:  "error",
		Message: "Internal server error",
		TraceID: traceID,
	})
}
