package domain

import (
	"errors"
	"time"
)

// Common post validation errors.
var (
	ErrEmptyPostTitle   = errors.New("post title cannot be empty")
	ErrEmptyPostContent = errors.New("post content cannot be empty")
	ErrEmptyAuthorID    = errors.New("post author ID cannot be empty")
)

// Post is a blog post. Categories carries the persisted many-to-many
// relation when the post was loaded with its relations included.
type Post struct {
	ID         int64      `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Thumbnail  string     `json:"thumbnail,omitempty"`
	AuthorID   int64      `json:"authorId"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	Author     *User      `json:"author,omitempty"`
	Categories []Category `json:"categories,omitempty"`
}

// Validate checks if the Post has valid data.
func (p *Post) Validate() error {
	if p.Title == "" {
		return ErrEmptyPostTitle
	}

	if p.Content == "" {
		return ErrEmptyPostContent
	}

	if p.AuthorID <= 0 {
		return ErrEmptyAuthorID
	}

	return nil
}
