package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calloway/quill-api/internal/api/shared"
	"github.com/calloway/quill-api/internal/domain"
	"github.com/calloway/quill-api/internal/validation"
)

// commentTestEnv mounts the comment routes behind a stand-in for the auth
// middleware: when principal is set, it lands in the request context exactly
// as AuthMiddleware would put it there.
type commentTestEnv struct {
	users     *fakeUserStore
	posts     *fakePostStore
	comments  *fakeCommentStore
	principal *domain.Principal
	router    chi.Router
}

func newCommentTestEnv(t *testing.T) *commentTestEnv {
	t.Helper()

	env := &commentTestEnv{
		users:    newFakeUserStore(),
		posts:    newFakePostStore(),
		comments: newFakeCommentStore(),
	}

	pipeline := validation.NewPipeline(env.users, env.posts, newFakeCategoryStore(), env.comments)
	handler := NewCommentHandler(env.comments, pipeline)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if env.principal != nil {
				req = req.WithContext(shared.SetPrincipal(req.Context(), *env.principal))
			}
			next.ServeHTTP(w, req)
		})
	})
	r.Get("/comments", handler.List)
	r.Get("/comments/{commentID}", handler.Get)
	r.Post("/comments", handler.Create)
	r.Put("/comments/{commentID}", handler.Update)
	r.Delete("/comments/{commentID}", handler.Delete)
	env.router = r

	env.users.users[1] = &domain.User{ID: 1, Name: "Root", Email: "root@example.com", Role: domain.RoleAdmin}
	env.users.users[7] = &domain.User{ID: 7, Name: "Ada", Email: "ada@example.com", Role: domain.RoleVisitor}
	env.users.users[8] = &domain.User{ID: 8, Name: "Sam", Email: "sam@example.com", Role: domain.RoleVisitor}
	env.users.nextID = 9

	env.posts.posts[1] = &domain.Post{ID: 1, Title: "First", Content: "body", AuthorID: 1}
	env.posts.nextID = 2

	env.comments.comments[1] = &domain.Comment{
		ID:        1,
		Content:   "nice post",
		AuthorID:  7,
		PostID:    1,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	env.comments.nextID = 2
	return env
}

func (env *commentTestEnv) as(id int64, role domain.Role) {
	env.principal = &domain.Principal{ID: id, Role: role}
}

func TestCommentCreate(t *testing.T) {
	t.Parallel()

	t.Run("owner creates a comment", func(t *testing.T) {
		t.Parallel()
		env := newCommentTestEnv(t)
		env.as(7, domain.RoleVisitor)

		body := `{"content":"thanks!","postId":1,"authorId":7}`
		rec := doRequest(t, env.router, http.MethodPost, "/comments", body)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"content":"thanks!"`)
		assert.Len(t, env.comments.comments, 2)
	})

	t.Run("writing as someone else is denied", func(t *testing.T) {
		t.Parallel()
		env := newCommentTestEnv(t)
		env.as(8, domain.RoleVisitor)

		body := `{"content":"impersonated","postId":1,"authorId":7}`
		rec := doRequest(t, env.router, http.MethodPost, "/comments", body)

		require.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "Action is not authorized")
		assert.Len(t, env.comments.comments, 1)
	})

	t.Run("admin may write as anyone", func(t *testing.T) {
		t.Parallel()
		env := newCommentTestEnv(t)
		env.as(1, domain.RoleAdmin)

		body := `{"content":"moderated","postId":1,"authorId":7}`
		rec := doRequest(t, env.router, http.MethodPost, "/comments", body)

		require.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("no principal yields 401", func(t *testing.T) {
		t.Parallel()
		env := newCommentTestEnv(t)

		body := `{"content":"anon","postId":1,"authorId":7}`
		rec := doRequest(t, env.router, http.MethodPost, "/comments", body)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Authorization header required")
	})

	t.Run("field errors surface before the authorization gate", func(t *testing.T) {
		t.Parallel()
		env := newCommentTestEnv(t)
		env.as(8, domain.RoleVisitor)

		body := `{"content":"","postId":1,"authorId":7}`
		rec := doRequest(t, env.router, http.MethodPost, "/comments", body)

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "Content cannot be empty")
	})

	t.Run("unknown parent comment is rejected", func(t *testing.T) {
		t.Parallel()
		env := newCommentTestEnv(t)
		env.as(7, domain.RoleVisitor)

		body := `{"content":"reply","postId":1,"authorId":7,"parentCommentId":42}`
		rec := doRequest(t, env.router, http.MethodPost, "/comments", body)

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "Parent comment does not exist")
	})
}

func TestCommentUpdate(t *testing.T) {
	t.Parallel()

	t.Run("owner updates their comment", func(t *testing.T) {
		t.Parallel()
		env := newCommentTestEnv(t)
		env.as(7, domain.RoleVisitor)

		body := `{"content":"edited","postId":1,"authorId":7}`
		rec := doRequest(t, env.router, http.MethodPut, "/comments/1", body)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "edited", env.comments.comments[1].Content)
	})

	t.Run("non-owner is denied on the stored row", func(t *testing.T) {
		t.Parallel()
		env := newCommentTestEnv(t)
		env.as(8, domain.RoleVisitor)

		body := `{"content":"hijacked","postId":1,"authorId":8}`
		rec := doRequest(t, env.router, http.MethodPut, "/comments/1", body)

		require.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "nice post", env.comments.comments[1].Content)
	})

	t.Run("unknown comment yields 404", func(t *testing.T) {
		t.Parallel()
		env := newCommentTestEnv(t)
		env.as(7, domain.RoleVisitor)

		body := `{"content":"edited","postId":1,"authorId":7}`
		rec := doRequest(t, env.router, http.MethodPut, "/comments/99", body)

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Resource not found")
	})
}

func TestCommentDelete(t *testing.T) {
	t.Parallel()

	t.Run("owner deletes their comment", func(t *testing.T) {
		t.Parallel()
		env := newCommentTestEnv(t)
		env.as(7, domain.RoleVisitor)

		rec := doRequest(t, env.router, http.MethodDelete, "/comments/1", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"success","data":null}`, rec.Body.String())
		assert.Empty(t, env.comments.comments)
	})

	t.Run("non-owner is denied", func(t *testing.T) {
		t.Parallel()
		env := newCommentTestEnv(t)
		env.as(8, domain.RoleVisitor)

		rec := doRequest(t, env.router, http.MethodDelete, "/comments/1", "")

		require.Equal(t, http.StatusForbidden, rec.Code)
		assert.Len(t, env.comments.comments, 1)
	})

	t.Run("admin deletes anyone's comment", func(t *testing.T) {
		t.Parallel()
		env := newCommentTestEnv(t)
		env.as(1, domain.RoleAdmin)

		rec := doRequest(t, env.router, http.MethodDelete, "/comments/1", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, env.comments.comments)
	})
}

func TestCommentListByPost(t *testing.T) {
	t.Parallel()

	env := newCommentTestEnv(t)
	env.comments.comments[2] = &domain.Comment{ID: 2, Content: "elsewhere", AuthorID: 8, PostID: 9}
	env.comments.nextID = 3

	pipeline := validation.NewPipeline(env.users, env.posts, newFakeCategoryStore(), env.comments)
	handler := NewPostHandler(env.posts, env.comments, pipeline)
	r := chi.NewRouter()
	r.Get("/posts/{postID}/comments", handler.ListComments)

	rec := doRequest(t, r, http.MethodGet, "/posts/1/comments", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":1`)
	assert.Contains(t, rec.Body.String(), "nice post")
	assert.NotContains(t, rec.Body.String(), "elsewhere")
}
