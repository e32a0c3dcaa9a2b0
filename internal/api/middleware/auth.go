package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/calloway/quill-api/internal/api/shared"
	"github.com/calloway/quill-api/internal/domain"
	"github.com/calloway/quill-api/internal/service/auth"
	"github.com/calloway/quill-api/internal/store"
	"github.com/calloway/quill-api/internal/validation"
)

// AuthMiddleware authenticates requests from Bearer tokens and resolves the
// token's subject into a Principal for downstream authorization gates.
type AuthMiddleware struct {
	tokens auth.TokenService
	users  store.UserStore
}

// NewAuthMiddleware creates an AuthMiddleware with the given dependencies.
func NewAuthMiddleware(tokens auth.TokenService, users store.UserStore) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
		users:  users,
	}
}

// Authenticate validates the Authorization header and places the resolved
// Principal in the request context. The role is re-read from storage on
// every request, so a demotion takes effect immediately rather than at
// token expiry.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondUnauthorized(w, r, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			respondUnauthorized(w, r, "Invalid authorization format")
			return
		}

		claims, err := m.tokens.ValidateToken(r.Context(), parts[1])
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				respondUnauthorized(w, r, "Token expired")
			case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrTokenNotYetValid):
				respondUnauthorized(w, r, "Invalid token")
			default:
				shared.RespondError(w, r, err)
			}
			return
		}

		user, err := m.users.GetByID(r.Context(), claims.UserID)
		if err != nil {
			if store.IsNotFoundError(err) {
				// Token outlived the account.
				respondUnauthorized(w, r, "Invalid token")
				return
			}
			shared.RespondError(w, r, err)
			return
		}

		principal := domain.Principal{ID: user.ID, Role: user.Role}
		ctx := shared.SetPrincipal(r.Context(), principal)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin rejects requests whose principal is not an admin. It must run
// after Authenticate.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := shared.GetPrincipal(r.Context())
		if !ok {
			slog.Error("admin gate reached without an authenticated principal",
				"path", r.URL.Path)
			respondUnauthorized(w, r, "Authorization header required")
			return
		}

		if principal.Role != domain.RoleAdmin {
			shared.RespondFail(w, r, http.StatusForbidden, validation.Errors{
				{Field: "authorId", Message: validation.ErrNotAuthorized.Error()},
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func respondUnauthorized(w http.ResponseWriter, r *http.Request, message string) {
	shared.RespondFail(w, r, http.StatusUnauthorized, validation.Errors{
		{Field: "token", Message: message},
	})
}
