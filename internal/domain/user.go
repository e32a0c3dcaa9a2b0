package domain

import (
	"errors"
	"time"
)

// Common user validation errors.
var (
	ErrEmptyUserName       = errors.New("user name cannot be empty")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// User represents a registered user of the blog.
type User struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Bio            string    `json:"bio,omitempty"`
	Role           Role      `json:"role"`
	HashedPassword string    `json:"-"` // Never expose the password hash in JSON
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a User with the given name and email. New users start as
// visitors; role promotion is a separate, admin-gated operation.
//
// NOTE: The caller is responsible for hashing the password and setting
// HashedPassword before the user is stored.
func NewUser(name, email string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		Name:      name,
		Email:     email,
		Role:      RoleVisitor,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// ID is not checked here: the store assigns it on insert.
func (u *User) Validate() error {
	if u.Name == "" {
		return ErrEmptyUserName
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}

	if !u.Role.Valid() {
		return ErrInvalidRole
	}

	return nil
}
