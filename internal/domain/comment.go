package domain

import (
	"errors"
	"time"
)

// Common comment validation errors.
var (
	ErrEmptyCommentContent = errors.New("comment content cannot be empty")
	ErrEmptyCommentPostID  = errors.New("comment post ID cannot be empty")
	ErrEmptyCommentAuthor  = errors.New("comment author ID cannot be empty")
)

// Comment is a user comment on a post. Comments nest one level deep via
// ParentCommentID; a nil parent means a top-level comment.
type Comment struct {
	ID              int64     `json:"id"`
	Content         string    `json:"content"`
	AuthorID        int64     `json:"authorId"`
	PostID          int64     `json:"postId"`
	ParentCommentID *int64    `json:"parentCommentId,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
	Author          *User     `json:"author,omitempty"`
	Replies         []Comment `json:"replies,omitempty"`
}

// Validate checks if the Comment has valid data.
func (c *Comment) Validate() error {
	if c.Content == "" {
		return ErrEmptyCommentContent
	}

	if c.PostID <= 0 {
		return ErrEmptyCommentPostID
	}

	if c.AuthorID <= 0 {
		return ErrEmptyCommentAuthor
	}

	return nil
}
