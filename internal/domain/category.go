package domain

import (
	"errors"
	"time"
)

// ErrEmptyCategoryName indicates a category with no name.
var ErrEmptyCategoryName = errors.New("category name cannot be empty")

// Category labels posts. Categories relate to posts many-to-many; the
// relation edges are managed through RelationDelta, never by deleting
// either endpoint.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`

	// PostCount is the number of posts carrying this category. Populated
	// only by reads that request the count.
	PostCount int `json:"postCount,omitempty"`
}

// Validate checks if the Category has valid data.
func (c *Category) Validate() error {
	if c.Name == "" {
		return ErrEmptyCategoryName
	}
	return nil
}
