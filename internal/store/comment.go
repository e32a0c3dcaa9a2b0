package store

import (
	"context"

	"github.com/calloway/quill-api/internal/domain"
	"github.com/calloway/quill-api/internal/validation"
)

// CommentStore defines the interface for comment data persistence.
type CommentStore interface {
	// Create saves a new comment.
	Create(ctx context.Context, comment *domain.Comment) error

	// GetByID retrieves a comment with its author and replies included.
	// Returns ErrCommentNotFound if the comment does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Comment, error)

	// List returns the window of comments whose content contains the
	// window's search term, ordered by creation date.
	List(ctx context.Context, w validation.Window) ([]domain.Comment, error)

	// ListByPost is List restricted to comments on the post.
	ListByPost(ctx context.Context, postID int64, w validation.Window) ([]domain.Comment, error)

	// Update modifies a comment.
	Update(ctx context.Context, comment *domain.Comment) error

	// Delete removes a comment and its replies.
	Delete(ctx context.Context, id int64) error

	// Exists reports whether a comment with the id exists.
	Exists(ctx context.Context, id int64) (bool, error)
}

var _ validation.CommentProbe = (CommentStore)(nil)
