package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/calloway/quill-api/internal/api/shared"
	"github.com/calloway/quill-api/internal/domain"
	"github.com/calloway/quill-api/internal/store"
	"github.com/calloway/quill-api/internal/validation"
)

// CommentHandler handles comment-related HTTP requests.
type CommentHandler struct {
	comments store.CommentStore
	pipeline *validation.Pipeline
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(comments store.CommentStore, pipeline *validation.Pipeline) *CommentHandler {
	return &CommentHandler{
		comments: comments,
		pipeline: pipeline,
	}
}

// List handles GET /comments requests.
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	window, errs := validation.ParseWindow(r.URL.Query())
	if len(errs) > 0 {
		shared.RespondFail(w, r, http.StatusBadRequest, errs)
		return
	}

	comments, err := h.comments.List(r.Context(), window)
	if err != nil {
		shared.RespondError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, map[string]any{
		"count":    len(comments),
		"comments": comments,
	})
}

// Get handles GET /comments/{commentID} requests.
func (h *CommentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := h.pipeline.ResolveCommentID(r.Context(), chi.URLParam(r, "commentID"))
	if err != nil {
		RespondParamError(w, r, err)
		return
	}

	comment, err := h.comments.GetByID(r.Context(), id)
	if err != nil {
		RespondParamError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, map[string]any{"comment": comment})
}

// Create handles POST /comments requests. The pipeline gates the mutation on
// the submitted authorId matching the principal.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := shared.GetPrincipal(r.Context())
	if !ok {
		shared.RespondFail(w, r, http.StatusUnauthorized, validation.Errors{
			{Field: "token", Message: "Authorization header required"},
		})
		return
	}

	var in validation.CommentInput
	if err := shared.DecodeJSON(r, &in); err != nil {
		shared.RespondFail(w, r, http.StatusBadRequest, validation.Errors{
			{Field: "body", Message: "Invalid request format"},
		})
		return
	}

	payload, err := h.pipeline.Comment(r.Context(), principal, in)
	if err != nil {
		RespondPipelineError(w, r, err)
		return
	}

	comment := &domain.Comment{
		Content:         payload.Content,
		AuthorID:        payload.AuthorID,
		PostID:          payload.PostID,
		ParentCommentID: payload.ParentCommentID,
	}
	if err := h.comments.Create(r.Context(), comment); err != nil {
		RespondPipelineError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusCreated, map[string]any{"comment": comment})
}

// Update handles PUT /comments/{commentID} requests. Two gates apply: the
// principal must own the stored comment, and the pipeline re-checks the
// submitted authorId.
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := shared.GetPrincipal(r.Context())
	if !ok {
		shared.RespondFail(w, r, http.StatusUnauthorized, validation.Errors{
			{Field: "token", Message: "Authorization header required"},
		})
		return
	}

	id, err := h.pipeline.ResolveCommentID(r.Context(), chi.URLParam(r, "commentID"))
	if err != nil {
		RespondParamError(w, r, err)
		return
	}

	current, err := h.comments.GetByID(r.Context(), id)
	if err != nil {
		RespondParamError(w, r, err)
		return
	}
	if err := validation.Authorize(principal, current.AuthorID); err != nil {
		RespondPipelineError(w, r, err)
		return
	}

	var in validation.CommentInput
	if err := shared.DecodeJSON(r, &in); err != nil {
		shared.RespondFail(w, r, http.StatusBadRequest, validation.Errors{
			{Field: "body", Message: "Invalid request format"},
		})
		return
	}

	payload, err := h.pipeline.Comment(r.Context(), principal, in)
	if err != nil {
		RespondPipelineError(w, r, err)
		return
	}

	comment := &domain.Comment{
		ID:              id,
		Content:         payload.Content,
		AuthorID:        payload.AuthorID,
		PostID:          payload.PostID,
		ParentCommentID: payload.ParentCommentID,
	}
	if err := h.comments.Update(r.Context(), comment); err != nil {
		RespondPipelineError(w, r, err)
		return
	}

	comment, err = h.comments.GetByID(r.Context(), id)
	if err != nil {
		shared.RespondError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, map[string]any{"comment": comment})
}

// Delete handles DELETE /comments/{commentID} requests. Only the comment's
// author or an admin may remove it; replies go with it.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := shared.GetPrincipal(r.Context())
	if !ok {
		shared.RespondFail(w, r, http.StatusUnauthorized, validation.Errors{
			{Field: "token", Message: "Authorization header required"},
		})
		return
	}

	id, err := h.pipeline.ResolveCommentID(r.Context(), chi.URLParam(r, "commentID"))
	if err != nil {
		RespondParamError(w, r, err)
		return
	}

	current, err := h.comments.GetByID(r.Context(), id)
	if err != nil {
		RespondParamError(w, r, err)
		return
	}
	if err := validation.Authorize(principal, current.AuthorID); err != nil {
		RespondPipelineError(w, r, err)
		return
	}

	if err := h.comments.Delete(r.Context(), id); err != nil {
		RespondParamError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, nil)
}
