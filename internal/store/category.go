package store

import (
	"context"

	"github.com/calloway/quill-api/internal/domain"
	"github.com/calloway/quill-api/internal/validation"
)

// CategoryStore defines the interface for category data persistence,
// including the category→post side of the many-to-many relation. Unlike the
// post→category direction, connecting posts by title never creates them;
// the pipeline has already verified every title resolves.
type CategoryStore interface {
	// Create saves a new category and connects any posts in the delta.
	// Returns ErrCategoryNameExists if the name is already taken.
	Create(ctx context.Context, category *domain.Category, posts *domain.RelationDelta) error

	// GetByID retrieves a category with its post count included.
	// Returns ErrCategoryNotFound if the category does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Category, error)

	// List returns the window of categories whose name contains the
	// window's search term.
	List(ctx context.Context, w validation.Window) ([]domain.Category, error)

	// Update modifies a category. A nil posts delta leaves the relation set
	// untouched.
	Update(ctx context.Context, category *domain.Category, posts *domain.RelationDelta) error

	// Delete removes a category and its relation edges. Posts survive.
	Delete(ctx context.Context, id int64) error

	// NameTaken reports whether a category other than excludeID uses the name.
	NameTaken(ctx context.Context, name string, excludeID int64) (bool, error)

	// Exists reports whether a category with the id exists.
	Exists(ctx context.Context, id int64) (bool, error)

	// PostTitles returns the titles of the category's current post set.
	PostTitles(ctx context.Context, id int64) ([]string, error)
}

var _ validation.CategoryProbe = (CategoryStore)(nil)
