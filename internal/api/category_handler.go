package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/calloway/quill-api/internal/api/shared"
	"github.com/calloway/quill-api/internal/domain"
	"github.com/calloway/quill-api/internal/store"
	"github.com/calloway/quill-api/internal/validation"
)

// CategoryHandler handles category-related HTTP requests.
type CategoryHandler struct {
	categories store.CategoryStore
	posts      store.PostStore
	pipeline   *validation.Pipeline
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categories store.CategoryStore, posts store.PostStore, pipeline *validation.Pipeline) *CategoryHandler {
	return &CategoryHandler{
		categories: categories,
		posts:      posts,
		pipeline:   pipeline,
	}
}

// List handles GET /categories requests.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	window, errs := validation.ParseWindow(r.URL.Query())
	if len(errs) > 0 {
		shared.RespondFail(w, r, http.StatusBadRequest, errs)
		return
	}

	categories, err := h.categories.List(r.Context(), window)
	if err != nil {
		shared.RespondError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, map[string]any{
		"count":      len(categories),
		"categories": categories,
	})
}

// Get handles GET /categories/{categoryID} requests.
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := h.pipeline.ResolveCategoryID(r.Context(), chi.URLParam(r, "categoryID"))
	if err != nil {
		RespondParamError(w, r, err)
		return
	}

	category, err := h.categories.GetByID(r.Context(), id)
	if err != nil {
		RespondParamError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, map[string]any{"category": category})
}

// ListPosts handles GET /categories/{categoryID}/posts requests.
func (h *CategoryHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	id, err := h.pipeline.ResolveCategoryID(r.Context(), chi.URLParam(r, "categoryID"))
	if err != nil {
		RespondParamError(w, r, err)
		return
	}

	window, errs := validation.ParseWindow(r.URL.Query())
	if len(errs) > 0 {
		shared.RespondFail(w, r, http.StatusBadRequest, errs)
		return
	}

	posts, err := h.posts.ListByCategory(r.Context(), id, window)
	if err != nil {
		shared.RespondError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, map[string]any{
		"count": len(posts),
		"posts": posts,
	})
}

// Create handles POST /categories requests.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in validation.CategoryInput
	if err := shared.DecodeJSON(r, &in); err != nil {
		shared.RespondFail(w, r, http.StatusBadRequest, validation.Errors{
			{Field: "body", Message: "Invalid request format"},
		})
		return
	}

	payload, err := h.pipeline.CategoryCreate(r.Context(), in)
	if err != nil {
		RespondPipelineError(w, r, err)
		return
	}

	category := &domain.Category{Name: payload.Name}
	if err := h.categories.Create(r.Context(), category, payload.Posts); err != nil {
		RespondPipelineError(w, r, err)
		return
	}

	category, err = h.categories.GetByID(r.Context(), category.ID)
	if err != nil {
		shared.RespondError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusCreated, map[string]any{"category": category})
}

// Update handles PUT /categories/{categoryID} requests.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := h.pipeline.ResolveCategoryID(r.Context(), chi.URLParam(r, "categoryID"))
	if err != nil {
		RespondParamError(w, r, err)
		return
	}

	var in validation.CategoryInput
	if err := shared.DecodeJSON(r, &in); err != nil {
		shared.RespondFail(w, r, http.StatusBadRequest, validation.Errors{
			{Field: "body", Message: "Invalid request format"},
		})
		return
	}

	payload, err := h.pipeline.CategoryUpdate(r.Context(), id, in)
	if err != nil {
		RespondPipelineError(w, r, err)
		return
	}

	category := &domain.Category{ID: id, Name: payload.Name}
	if err := h.categories.Update(r.Context(), category, payload.Posts); err != nil {
		RespondPipelineError(w, r, err)
		return
	}

	category, err = h.categories.GetByID(r.Context(), id)
	if err != nil {
		shared.RespondError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, map[string]any{"category": category})
}

// Delete handles DELETE /categories/{categoryID} requests. Connected posts
// survive; only the category and its relation edges go.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := h.pipeline.ResolveCategoryID(r.Context(), chi.URLParam(r, "categoryID"))
	if err != nil {
		RespondParamError(w, r, err)
		return
	}

	if err := h.categories.Delete(r.Context(), id); err != nil {
		RespondParamError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, nil)
}
