package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calloway/quill-api/internal/domain"
	"github.com/calloway/quill-api/internal/validation"
)

type categoryTestEnv struct {
	posts      *fakePostStore
	categories *fakeCategoryStore
	router     chi.Router
}

func newCategoryTestEnv(t *testing.T) *categoryTestEnv {
	t.Helper()

	env := &categoryTestEnv{
		posts:      newFakePostStore(),
		categories: newFakeCategoryStore(),
	}

	pipeline := validation.NewPipeline(newFakeUserStore(), env.posts, env.categories, newFakeCommentStore())
	handler := NewCategoryHandler(env.categories, env.posts, pipeline)

	r := chi.NewRouter()
	r.Get("/categories", handler.List)
	r.Get("/categories/{categoryID}", handler.Get)
	r.Get("/categories/{categoryID}/posts", handler.ListPosts)
	r.Post("/categories", handler.Create)
	r.Put("/categories/{categoryID}", handler.Update)
	r.Delete("/categories/{categoryID}", handler.Delete)
	env.router = r

	env.posts.posts[1] = &domain.Post{ID: 1, Title: "Go Basics", Content: "body", AuthorID: 1, CreatedAt: time.Now().UTC()}
	env.posts.posts[2] = &domain.Post{ID: 2, Title: "Advanced Go", Content: "body", AuthorID: 1, CreatedAt: time.Now().UTC()}
	env.posts.nextID = 3
	return env
}

func TestCategoryCreate(t *testing.T) {
	t.Parallel()

	t.Run("creates a category connecting existing posts", func(t *testing.T) {
		t.Parallel()
		env := newCategoryTestEnv(t)

		body := `{"name":"go","posts":["Go Basics","Advanced Go"]}`
		rec := doRequest(t, env.router, http.MethodPost, "/categories", body)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"name":"go"`)
		require.NotNil(t, env.categories.lastDelta)
		assert.ElementsMatch(t, []string{"Go Basics", "Advanced Go"}, env.categories.lastDelta.Connect)
	})

	t.Run("unknown post titles are rejected", func(t *testing.T) {
		t.Parallel()
		env := newCategoryTestEnv(t)

		body := `{"name":"go","posts":["Go Basics","Missing Post"]}`
		rec := doRequest(t, env.router, http.MethodPost, "/categories", body)

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "Some posts don't exist")
		assert.Empty(t, env.categories.categories)
	})

	t.Run("duplicate name is rejected", func(t *testing.T) {
		t.Parallel()
		env := newCategoryTestEnv(t)
		env.categories.categories[1] = &domain.Category{ID: 1, Name: "go"}
		env.categories.nextID = 2

		rec := doRequest(t, env.router, http.MethodPost, "/categories", `{"name":"go"}`)

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "Category must be unique")
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		t.Parallel()
		env := newCategoryTestEnv(t)

		rec := doRequest(t, env.router, http.MethodPost, "/categories", `{"name":"  "}`)

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "Category cannot be empty")
	})
}

func TestCategoryUpdate(t *testing.T) {
	t.Parallel()

	t.Run("reconciles the post set", func(t *testing.T) {
		t.Parallel()
		env := newCategoryTestEnv(t)
		env.categories.categories[1] = &domain.Category{ID: 1, Name: "go"}
		env.categories.postTitles[1] = []string{"Go Basics"}
		env.categories.nextID = 2

		body := `{"name":"golang","posts":["Advanced Go"]}`
		rec := doRequest(t, env.router, http.MethodPut, "/categories/1", body)

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, env.categories.lastDelta)
		assert.ElementsMatch(t, []string{"Advanced Go"}, env.categories.lastDelta.Connect)
		assert.ElementsMatch(t, []string{"Go Basics"}, env.categories.lastDelta.Disconnect)
		assert.Equal(t, "golang", env.categories.categories[1].Name)
	})

	t.Run("unchanged name does not collide with itself", func(t *testing.T) {
		t.Parallel()
		env := newCategoryTestEnv(t)
		env.categories.categories[1] = &domain.Category{ID: 1, Name: "go"}
		env.categories.nextID = 2

		rec := doRequest(t, env.router, http.MethodPut, "/categories/1", `{"name":"go"}`)

		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestCategoryListPosts(t *testing.T) {
	t.Parallel()

	env := newCategoryTestEnv(t)
	env.categories.categories[1] = &domain.Category{ID: 1, Name: "go"}
	env.categories.nextID = 2

	rec := doRequest(t, env.router, http.MethodGet, "/categories/1/posts", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":2`)
}

func TestCategoryDelete(t *testing.T) {
	t.Parallel()

	t.Run("removes the category but not its posts", func(t *testing.T) {
		t.Parallel()
		env := newCategoryTestEnv(t)
		env.categories.categories[1] = &domain.Category{ID: 1, Name: "go"}
		env.categories.nextID = 2

		rec := doRequest(t, env.router, http.MethodDelete, "/categories/1", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, env.categories.categories)
		assert.Len(t, env.posts.posts, 2)
	})

	t.Run("unknown category yields 404", func(t *testing.T) {
		t.Parallel()
		env := newCategoryTestEnv(t)

		rec := doRequest(t, env.router, http.MethodDelete, "/categories/9", "")

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Resource not found")
	})
}
