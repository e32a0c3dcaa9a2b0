package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/calloway/quill-api/internal/api/shared"
	"github.com/calloway/quill-api/internal/domain"
	"github.com/calloway/quill-api/internal/service/auth"
	"github.com/calloway/quill-api/internal/store"
	"github.com/calloway/quill-api/internal/validation"
)

// UserHandler handles user account and authentication HTTP requests.
type UserHandler struct {
	users    store.UserStore
	pipeline *validation.Pipeline
	tokens   auth.TokenService
	hasher   auth.PasswordHasher
	verifier auth.PasswordVerifier
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(
	users store.UserStore,
	pipeline *validation.Pipeline,
	tokens auth.TokenService,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
) *UserHandler {
	return &UserHandler{
		users:    users,
		pipeline: pipeline,
		tokens:   tokens,
		hasher:   hasher,
		verifier: verifier,
	}
}

// roleInput is the body of a role change request.
type roleInput struct {
	Role string `json:"role"`
}

// Register handles POST /users requests. New accounts start as visitors and
// receive a token immediately.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in validation.UserInput
	if err := shared.DecodeJSON(r, &in); err != nil {
		shared.RespondFail(w, r, http.StatusBadRequest, validation.Errors{
			{Field: "body", Message: "Invalid request format"},
		})
		return
	}

	payload, err := h.pipeline.UserCreate(r.Context(), in)
	if err != nil {
		RespondPipelineError(w, r, err)
		return
	}

	user, err := domain.NewUser(payload.Name, payload.Email)
	if err != nil {
		shared.RespondError(w, r, err)
		return
	}
	user.HashedPassword, err = h.hasher.Hash(payload.Password)
	if err != nil {
		shared.RespondError(w, r, err)
		return
	}

	if err := h.users.Create(r.Context(), user); err != nil {
		RespondPipelineError(w, r, err)
		return
	}

	cred, err := h.tokens.IssueToken(r.Context(), user.ID)
	if err != nil {
		shared.RespondError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusCreated, map[string]any{
		"user":        user,
		"credentials": cred,
	})
}

// Login handles POST /users/login requests. A miss on the email and a
// password mismatch are indistinguishable to the client.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in validation.LoginInput
	if err := shared.DecodeJSON(r, &in); err != nil {
		shared.RespondFail(w, r, http.StatusBadRequest, validation.Errors{
			{Field: "body", Message: "Invalid request format"},
		})
		return
	}

	payload, err := h.pipeline.Login(in)
	if err != nil {
		RespondPipelineError(w, r, err)
		return
	}

	user, err := h.users.GetByEmail(r.Context(), payload.Email)
	if err != nil {
		if store.IsNotFoundError(err) {
			respondBadCredentials(w, r)
			return
		}
		shared.RespondError(w, r, err)
		return
	}

	if err := h.verifier.Compare(user.HashedPassword, payload.Password); err != nil {
		respondBadCredentials(w, r)
		return
	}

	cred, err := h.tokens.IssueToken(r.Context(), user.ID)
	if err != nil {
		shared.RespondError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, map[string]any{
		"user":        user,
		"credentials": cred,
	})
}

// Get handles GET /users/{userID} requests.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := h.pipeline.ResolveUserID(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		RespondParamError(w, r, err)
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		RespondParamError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, map[string]any{"user": user})
}

// Update handles PUT /users/{userID} requests. A user may edit their own
// profile; admins may edit anyone's.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := shared.GetPrincipal(r.Context())
	if !ok {
		shared.RespondFail(w, r, http.StatusUnauthorized, validation.Errors{
			{Field: "token", Message: "Authorization header required"},
		})
		return
	}

	id, err := h.pipeline.ResolveUserID(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		RespondParamError(w, r, err)
		return
	}

	if err := validation.Authorize(principal, id); err != nil {
		RespondPipelineError(w, r, err)
		return
	}

	var in validation.UserInput
	if err := shared.DecodeJSON(r, &in); err != nil {
		shared.RespondFail(w, r, http.StatusBadRequest, validation.Errors{
			{Field: "body", Message: "Invalid request format"},
		})
		return
	}

	payload, err := h.pipeline.UserUpdate(r.Context(), id, in)
	if err != nil {
		RespondPipelineError(w, r, err)
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		RespondParamError(w, r, err)
		return
	}

	user.Name = payload.Name
	user.Email = payload.Email
	user.HashedPassword, err = h.hasher.Hash(payload.Password)
	if err != nil {
		shared.RespondError(w, r, err)
		return
	}

	if err := h.users.Update(r.Context(), user); err != nil {
		RespondPipelineError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, map[string]any{"user": user})
}

// UpdateRole handles PATCH /users/{userID}/role requests. The route is
// admin-gated; the pipeline only validates the target role value.
func (h *UserHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	id, err := h.pipeline.ResolveUserID(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		RespondParamError(w, r, err)
		return
	}

	var in roleInput
	if err := shared.DecodeJSON(r, &in); err != nil {
		shared.RespondFail(w, r, http.StatusBadRequest, validation.Errors{
			{Field: "body", Message: "Invalid request format"},
		})
		return
	}

	role, err := h.pipeline.UserRole(in.Role)
	if err != nil {
		RespondPipelineError(w, r, err)
		return
	}

	if err := h.users.UpdateRole(r.Context(), id, role); err != nil {
		RespondPipelineError(w, r, err)
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		shared.RespondError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, map[string]any{"user": user})
}

// Delete handles DELETE /users/{userID} requests. The account's posts and
// comments go with it.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := shared.GetPrincipal(r.Context())
	if !ok {
		shared.RespondFail(w, r, http.StatusUnauthorized, validation.Errors{
			{Field: "token", Message: "Authorization header required"},
		})
		return
	}

	id, err := h.pipeline.ResolveUserID(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		RespondParamError(w, r, err)
		return
	}

	if err := validation.Authorize(principal, id); err != nil {
		RespondPipelineError(w, r, err)
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		RespondParamError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, nil)
}

func respondBadCredentials(w http.ResponseWriter, r *http.Request) {
	shared.RespondFail(w, r, http.StatusUnauthorized, validation.Errors{
		{Field: "credentials", Message: "Invalid email or password"},
	})
}
