package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/calloway/quill-api/internal/api"
	apiMiddleware "github.com/calloway/quill-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Reads are public; post and category mutations plus role
// changes sit behind the admin gate, and comment and profile mutations only
// require authentication because the pipelines and handlers enforce
// ownership themselves.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.config.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	postHandler := api.NewPostHandler(app.postStore, app.commentStore, app.pipeline)
	categoryHandler := api.NewCategoryHandler(app.categoryStore, app.postStore, app.pipeline)
	commentHandler := api.NewCommentHandler(app.commentStore, app.pipeline)
	userHandler := api.NewUserHandler(
		app.userStore,
		app.pipeline,
		app.tokenService,
		app.hasher,
		app.verifier,
	)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.tokenService, app.userStore)

	// Public reads and account endpoints.
	r.Get("/posts", postHandler.List)
	r.Get("/posts/{postID}", postHandler.Get)
	r.Get("/posts/{postID}/comments", postHandler.ListComments)
	r.Get("/categories", categoryHandler.List)
	r.Get("/categories/{categoryID}", categoryHandler.Get)
	r.Get("/categories/{categoryID}/posts", categoryHandler.ListPosts)
	r.Get("/comments", commentHandler.List)
	r.Get("/comments/{commentID}", commentHandler.Get)
	r.Get("/users/{userID}", userHandler.Get)
	r.Post("/users", userHandler.Register)
	r.Post("/users/login", userHandler.Login)

	// Authenticated mutations gated by ownership.
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Post("/comments", commentHandler.Create)
		r.Put("/comments/{commentID}", commentHandler.Update)
		r.Delete("/comments/{commentID}", commentHandler.Delete)

		r.Put("/users/{userID}", userHandler.Update)
		r.Delete("/users/{userID}", userHandler.Delete)
	})

	// Admin-only mutations.
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.Use(apiMiddleware.RequireAdmin)

		r.Post("/posts", postHandler.Create)
		r.Put("/posts/{postID}", postHandler.Update)
		r.Delete("/posts/{postID}", postHandler.Delete)

		r.Post("/categories", categoryHandler.Create)
		r.Put("/categories/{categoryID}", categoryHandler.Update)
		r.Delete("/categories/{categoryID}", categoryHandler.Delete)

		r.Patch("/users/{userID}/role", userHandler.UpdateRole)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
