package validation

import (
	"context"
	"strings"

	"github.com/calloway/quill-api/internal/domain"
)

// passwordSpecials are the characters that satisfy the special-character
// password rule.
const passwordSpecials = "#@$?"

// UserInput is the raw, JSON-decoded body of a register or profile update
// request.
type UserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserPayload is the sanitized outcome of a passed user pipeline. Password
// is still plaintext; hashing happens at the store boundary.
type UserPayload struct {
	Name     string
	Email    string
	Password string
}

// LoginInput is the raw body of a login request.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserCreate validates a registration request.
func (p *Pipeline) UserCreate(ctx context.Context, in UserInput) (*UserPayload, error) {
	return p.validateUser(ctx, in, 0)
}

// UserUpdate validates a profile update. The email uniqueness check excludes
// the user's own id, so re-submitting an unchanged email never collides.
func (p *Pipeline) UserUpdate(ctx context.Context, userID int64, in UserInput) (*UserPayload, error) {
	return p.validateUser(ctx, in, userID)
}

func (p *Pipeline) validateUser(ctx context.Context, in UserInput, excludeID int64) (*UserPayload, error) {
	payload := &UserPayload{
		Name:     trim(in.Name),
		Email:    escape(in.Email),
		Password: trim(in.Password),
	}

	var errs Errors
	var checks []check

	if payload.Name == "" {
		errs.Add("name", "Name cannot be empty")
	}

	switch {
	case payload.Email == "":
		errs.Add("email", "Email cannot be empty")
	case validate.Var(payload.Email, "email") != nil:
		errs.Add("email", "Email must be valid")
	default:
		checks = append(checks, p.checker.emailUnique(payload.Email, excludeID))
	}

	if payload.Password == "" {
		errs.Add("password", "Password cannot be empty")
	} else {
		if n := len(payload.Password); n < 8 || n > 16 {
			errs.Add("password", "Password must be between 8-16 characters")
		}
		if !strings.ContainsAny(payload.Password, "0123456789") {
			errs.Add("password", "Password must contain a number")
		}
		if !strings.ContainsAny(payload.Password, passwordSpecials) {
			errs.Add("password", "Password must contain a special character")
		}
	}

	checkErrs, err := runChecks(ctx, checks...)
	if err != nil {
		return nil, err
	}
	errs = append(errs, checkErrs...)
	if len(errs) > 0 {
		return nil, errs
	}

	return payload, nil
}

// UserRole validates a role change request against the closed role set.
func (p *Pipeline) UserRole(in string) (domain.Role, error) {
	raw := escape(in)

	var errs Errors
	if raw == "" {
		errs.Add("role", "Role cannot be empty")
		return "", errs
	}

	role, err := domain.ParseRole(raw)
	if err != nil {
		errs.Add("role", "Role must be ADMIN or VISITOR")
		return "", errs
	}

	return role, nil
}

// Login validates a login request. Credentials are only checked for
// presence here; verifying them against the stored hash is the auth
// service's concern.
func (p *Pipeline) Login(in LoginInput) (*LoginInput, error) {
	payload := &LoginInput{
		Email:    trim(in.Email),
		Password: trim(in.Password),
	}

	var errs Errors
	if payload.Email == "" {
		errs.Add("email", "Email cannot be empty")
	}
	if payload.Password == "" {
		errs.Add("password", "Password cannot be empty")
	}
	if len(errs) > 0 {
		return nil, errs
	}

	return payload, nil
}
