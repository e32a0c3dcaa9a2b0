package validation

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Store probes consumed by the checker. The postgres stores implement these;
// tests substitute fakes. Each probe answers a single predicate against live
// backing-store state.

// UserProbe answers user existence and email uniqueness questions.
type UserProbe interface {
	// EmailTaken reports whether a user other than excludeID already uses
	// the email. Pass excludeID 0 when creating (no self to exclude).
	EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// PostProbe answers post existence and title uniqueness questions.
type PostProbe interface {
	TitleTaken(ctx context.Context, title string, excludeID int64) (bool, error)
	Exists(ctx context.Context, id int64) (bool, error)
	ExistsByTitle(ctx context.Context, title string) (bool, error)
	// CategoryNames returns the labels of the post's current category set.
	CategoryNames(ctx context.Context, id int64) ([]string, error)
}

// CategoryProbe answers category existence and name uniqueness questions.
type CategoryProbe interface {
	NameTaken(ctx context.Context, name string, excludeID int64) (bool, error)
	Exists(ctx context.Context, id int64) (bool, error)
	// PostTitles returns the titles of the category's current post set.
	PostTitles(ctx context.Context, id int64) ([]string, error)
}

// CommentProbe answers comment existence questions.
type CommentProbe interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// check is one asynchronous predicate. A violated predicate yields a
// FieldError; a store fault yields an error and aborts the stage.
type check func(ctx context.Context) (*FieldError, error)

// runChecks issues independent checks concurrently and joins them before
// returning. Aggregation is fail-soft: every violated predicate contributes
// its field error. No ordering is guaranteed between sibling checks. A store
// fault cancels the remaining checks and propagates.
func runChecks(ctx context.Context, checks ...check) (Errors, error) {
	g, ctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	var errs Errors

	for _, c := range checks {
		g.Go(func() error {
			fe, err := c(ctx)
			if err != nil {
				return err
			}
			if fe != nil {
				mu.Lock()
				errs = append(errs, *fe)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return errs, nil
}

// Checker performs the existence and uniqueness predicates of the pipeline.
// Uniqueness checks exclude the entity's own id when updating, so
// re-submitting an unchanged unique field never collides with itself.
type Checker struct {
	users      UserProbe
	posts      PostProbe
	categories CategoryProbe
	comments   CommentProbe
}

// NewChecker builds a Checker over the given store probes.
func NewChecker(users UserProbe, posts PostProbe, categories CategoryProbe, comments CommentProbe) *Checker {
	return &Checker{
		users:      users,
		posts:      posts,
		categories: categories,
		comments:   comments,
	}
}

func (c *Checker) emailUnique(email string, excludeID int64) check {
	return func(ctx context.Context) (*FieldError, error) {
		taken, err := c.users.EmailTaken(ctx, email, excludeID)
		if err != nil {
			return nil, fmt.Errorf("check email uniqueness: %w", err)
		}
		if taken {
			return &FieldError{Field: "email", Message: "Email already exists"}, nil
		}
		return nil, nil
	}
}

func (c *Checker) titleUnique(title string, excludeID int64) check {
	return func(ctx context.Context) (*FieldError, error) {
		taken, err := c.posts.TitleTaken(ctx, title, excludeID)
		if err != nil {
			return nil, fmt.Errorf("check title uniqueness: %w", err)
		}
		if taken {
			return &FieldError{Field: "title", Message: "Title must be unique"}, nil
		}
		return nil, nil
	}
}

func (c *Checker) categoryUnique(name string, excludeID int64) check {
	return func(ctx context.Context) (*FieldError, error) {
		taken, err := c.categories.NameTaken(ctx, name, excludeID)
		if err != nil {
			return nil, fmt.Errorf("check category uniqueness: %w", err)
		}
		if taken {
			return &FieldError{Field: "name", Message: "Category must be unique"}, nil
		}
		return nil, nil
	}
}

func (c *Checker) authorExists(id int64) check {
	return func(ctx context.Context) (*FieldError, error) {
		ok, err := c.users.Exists(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("check author existence: %w", err)
		}
		if !ok {
			return &FieldError{Field: "authorId", Message: "Author does not exist"}, nil
		}
		return nil, nil
	}
}

func (c *Checker) postExists(id int64) check {
	return func(ctx context.Context) (*FieldError, error) {
		ok, err := c.posts.Exists(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("check post existence: %w", err)
		}
		if !ok {
			return &FieldError{Field: "postId", Message: "Post does not exist"}, nil
		}
		return nil, nil
	}
}

func (c *Checker) parentCommentExists(id int64) check {
	return func(ctx context.Context) (*FieldError, error) {
		ok, err := c.comments.Exists(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("check parent comment existence: %w", err)
		}
		if !ok {
			return &FieldError{Field: "parentCommentId", Message: "Parent comment does not exist"}, nil
		}
		return nil, nil
	}
}

// postsExist verifies that every title in the list resolves to an existing
// post. The first non-resolving title aborts the scan. This direction never
// creates missing posts, unlike the category-on-post direction, which is
// connect-or-create.
func (c *Checker) postsExist(titles []string) check {
	return func(ctx context.Context) (*FieldError, error) {
		for _, title := range titles {
			ok, err := c.posts.ExistsByTitle(ctx, title)
			if err != nil {
				return nil, fmt.Errorf("check post existence by title: %w", err)
			}
			if !ok {
				return &FieldError{Field: "posts", Message: "Some posts don't exist"}, nil
			}
		}
		return nil, nil
	}
}
