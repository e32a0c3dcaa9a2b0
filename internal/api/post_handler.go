package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/calloway/quill-api/internal/api/shared"
	"github.com/calloway/quill-api/internal/domain"
	"github.com/calloway/quill-api/internal/store"
	"github.com/calloway/quill-api/internal/validation"
)

// PostHandler handles post-related HTTP requests.
type PostHandler struct {
	posts    store.PostStore
	comments store.CommentStore
	pipeline *validation.Pipeline
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(posts store.PostStore, comments store.CommentStore, pipeline *validation.Pipeline) *PostHandler {
	return &PostHandler{
		posts:    posts,
		comments: comments,
		pipeline: pipeline,
	}
}

// List handles GET /posts requests.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	window, errs := validation.ParseWindow(r.URL.Query())
	if len(errs) > 0 {
		shared.RespondFail(w, r, http.StatusBadRequest, errs)
		return
	}

	posts, err := h.posts.List(r.Context(), window)
	if err != nil {
		shared.RespondError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, map[string]any{
		"count": len(posts),
		"posts": posts,
	})
}

// Get handles GET /posts/{postID} requests.
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := h.pipeline.ResolvePostID(r.Context(), chi.URLParam(r, "postID"))
	if err != nil {
		RespondParamError(w, r, err)
		return
	}

	post, err := h.posts.GetByID(r.Context(), id)
	if err != nil {
		RespondParamError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, map[string]any{"post": post})
}

// ListComments handles GET /posts/{postID}/comments requests.
func (h *PostHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	id, err := h.pipeline.ResolvePostID(r.Context(), chi.URLParam(r, "postID"))
	if err != nil {
		RespondParamError(w, r, err)
		return
	}

	window, errs := validation.ParseWindow(r.URL.Query())
	if len(errs) > 0 {
		shared.RespondFail(w, r, http.StatusBadRequest, errs)
		return
	}

	comments, err := h.comments.ListByPost(r.Context(), id, window)
	if err != nil {
		shared.RespondError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, map[string]any{
		"count":    len(comments),
		"comments": comments,
	})
}

// Create handles POST /posts requests.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in validation.PostInput
	if err := shared.DecodeJSON(r, &in); err != nil {
		shared.RespondFail(w, r, http.StatusBadRequest, validation.Errors{
			{Field: "body", Message: "Invalid request format"},
		})
		return
	}

	payload, err := h.pipeline.PostCreate(r.Context(), in)
	if err != nil {
		RespondPipelineError(w, r, err)
		return
	}

	post := &domain.Post{
		Title:    payload.Title,
		Content:  payload.Content,
		AuthorID: payload.AuthorID,
	}
	if err := h.posts.Create(r.Context(), post, payload.Categories); err != nil {
		RespondPipelineError(w, r, err)
		return
	}

	// Reload to include the author and the connected categories.
	post, err = h.posts.GetByID(r.Context(), post.ID)
	if err != nil {
		shared.RespondError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusCreated, map[string]any{"post": post})
}

// Update handles PUT /posts/{postID} requests.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := h.pipeline.ResolvePostID(r.Context(), chi.URLParam(r, "postID"))
	if err != nil {
		RespondParamError(w, r, err)
		return
	}

	var in validation.PostInput
	if err := shared.DecodeJSON(r, &in); err != nil {
		shared.RespondFail(w, r, http.StatusBadRequest, validation.Errors{
			{Field: "body", Message: "Invalid request format"},
		})
		return
	}

	payload, err := h.pipeline.PostUpdate(r.Context(), id, in)
	if err != nil {
		RespondPipelineError(w, r, err)
		return
	}

	post := &domain.Post{
		ID:       id,
		Title:    payload.Title,
		Content:  payload.Content,
		AuthorID: payload.AuthorID,
	}
	if err := h.posts.Update(r.Context(), post, payload.Categories); err != nil {
		RespondPipelineError(w, r, err)
		return
	}

	post, err = h.posts.GetByID(r.Context(), id)
	if err != nil {
		shared.RespondError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, map[string]any{"post": post})
}

// Delete handles DELETE /posts/{postID} requests.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := h.pipeline.ResolvePostID(r.Context(), chi.URLParam(r, "postID"))
	if err != nil {
		RespondParamError(w, r, err)
		return
	}

	if err := h.posts.Delete(r.Context(), id); err != nil {
		RespondParamError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, nil)
}
