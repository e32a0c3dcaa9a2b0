package api

import (
	"errors"
	"net/http"

	"github.com/calloway/quill-api/internal/api/shared"
	"github.com/calloway/quill-api/internal/store"
	"github.com/calloway/quill-api/internal/validation"
)

// RespondPipelineError writes the response for an error surfaced by a
// validation pipeline or a store call. Field errors from a request body are
// rejected as 422; resource misses map to 404, authorization denials to 403,
// and uniqueness races caught at the store to 409. Anything unrecognized is
// a server fault.
func RespondPipelineError(w http.ResponseWriter, r *http.Request, err error) {
	respondMappedError(w, r, err, http.StatusUnprocessableEntity)
}

// RespondParamError is RespondPipelineError for errors from path or query
// parameters, where a malformed value is the client's request line rather
// than its body and maps to 400.
func RespondParamError(w http.ResponseWriter, r *http.Request, err error) {
	respondMappedError(w, r, err, http.StatusBadRequest)
}

func respondMappedError(w http.ResponseWriter, r *http.Request, err error, fieldStatus int) {
	if fieldErrs, ok := validation.AsFieldErrors(err); ok {
		shared.RespondFail(w, r, fieldStatus, fieldErrs)
		return
	}

	switch {
	case errors.Is(err, validation.ErrResourceNotFound):
		shared.RespondFail(w, r, http.StatusNotFound, validation.Errors{
			{Field: "resource", Message: validation.ErrResourceNotFound.Error()},
		})

	case errors.Is(err, validation.ErrNotAuthorized):
		shared.RespondFail(w, r, http.StatusForbidden, validation.Errors{
			{Field: "authorId", Message: validation.ErrNotAuthorized.Error()},
		})

	case store.IsNotFoundError(err):
		shared.RespondFail(w, r, http.StatusNotFound, validation.Errors{
			{Field: "resource", Message: validation.ErrResourceNotFound.Error()},
		})

	// Uniqueness collisions that slipped past the async checks and were
	// caught by the database constraint instead.
	case errors.Is(err, store.ErrEmailExists):
		shared.RespondFail(w, r, http.StatusConflict, validation.Errors{
			{Field: "email", Message: "Email already exists"},
		})

	case errors.Is(err, store.ErrTitleExists):
		shared.RespondFail(w, r, http.StatusConflict, validation.Errors{
			{Field: "title", Message: "Title must be unique"},
		})

	case errors.Is(err, store.ErrCategoryNameExists):
		shared.RespondFail(w, r, http.StatusConflict, validation.Errors{
			{Field: "name", Message: "Category must be unique"},
		})

	default:
		shared.RespondError(w, r, err)
	}
}
