package store

import (
	"context"

	"github.com/calloway/quill-api/internal/domain"
	"github.com/calloway/quill-api/internal/validation"
)

// PostStore defines the interface for post data persistence, including the
// post↔category many-to-many relation. Applying a RelationDelta is atomic:
// the store wraps the row mutation and every connect/disconnect edge in one
// transaction.
type PostStore interface {
	// Create saves a new post. A non-nil categories delta connects each
	// label, creating name-only categories on miss.
	// Returns ErrTitleExists if the title is already taken.
	Create(ctx context.Context, post *domain.Post, categories *domain.RelationDelta) error

	// GetByID retrieves a post with its author and categories included.
	// Returns ErrPostNotFound if the post does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Post, error)

	// List returns the window of posts whose title or content contains the
	// window's search term, ordered per the window.
	List(ctx context.Context, w validation.Window) ([]domain.Post, error)

	// ListByCategory is List restricted to posts carrying the category.
	ListByCategory(ctx context.Context, categoryID int64, w validation.Window) ([]domain.Post, error)

	// Update modifies a post. A nil categories delta leaves the relation
	// set untouched; a non-nil delta is applied connect-then-disconnect.
	Update(ctx context.Context, post *domain.Post, categories *domain.RelationDelta) error

	// Delete removes a post and its relation edges.
	Delete(ctx context.Context, id int64) error

	// TitleTaken reports whether a post other than excludeID uses the title.
	TitleTaken(ctx context.Context, title string, excludeID int64) (bool, error)

	// Exists reports whether a post with the id exists.
	Exists(ctx context.Context, id int64) (bool, error)

	// ExistsByTitle reports whether a post with the exact title exists.
	ExistsByTitle(ctx context.Context, title string) (bool, error)

	// CategoryNames returns the labels of the post's current category set.
	CategoryNames(ctx context.Context, id int64) ([]string, error)
}

var _ validation.PostProbe = (PostStore)(nil)
