package store

import (
	"context"

	"github.com/calloway/quill-api/internal/domain"
	"github.com/calloway/quill-api/internal/validation"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user. HashedPassword must already be set.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update modifies the user's name, email, bio, and hashed password.
	// Returns ErrUserNotFound if the user does not exist and ErrEmailExists
	// when updating to an email another user already holds.
	Update(ctx context.Context, user *domain.User) error

	// UpdateRole changes only the user's role.
	UpdateRole(ctx context.Context, id int64, role domain.Role) error

	// Delete removes a user. Returns ErrUserNotFound if the user does not
	// exist. The user's comments and posts go with them.
	Delete(ctx context.Context, id int64) error

	// EmailTaken reports whether a user other than excludeID uses the email.
	EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error)

	// Exists reports whether a user with the id exists.
	Exists(ctx context.Context, id int64) (bool, error)
}

// Compile-time hook: the probe side of UserStore must stay in sync with the
// validation package's expectations.
var _ validation.UserProbe = (UserStore)(nil)
