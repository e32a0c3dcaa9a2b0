package validation

import (
	"context"

	"github.com/calloway/quill-api/internal/domain"
)

// PostInput is the raw, JSON-decoded body of a post mutation request.
type PostInput struct {
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	AuthorID   IntField   `json:"authorId"`
	Categories StringList `json:"categories"`
}

// PostPayload is the sanitized, reconciled outcome of a passed post pipeline.
// Categories is nil when the field was absent from the request, meaning the
// persisted relation set must not be touched.
type PostPayload struct {
	Title      string
	Content    string
	AuthorID   int64
	Categories *domain.RelationDelta
}

// PostCreate validates a post creation request. Category labels connect to
// existing categories by name or create them on miss.
func (p *Pipeline) PostCreate(ctx context.Context, in PostInput) (*PostPayload, error) {
	return p.validatePost(ctx, in, 0, nil)
}

// PostUpdate validates a post update request. The title uniqueness check
// excludes the post's own id, and a present categories field is reconciled
// against the post's current category set.
func (p *Pipeline) PostUpdate(ctx context.Context, postID int64, in PostInput) (*PostPayload, error) {
	current, err := p.checker.posts.CategoryNames(ctx, postID)
	if err != nil {
		return nil, err
	}
	return p.validatePost(ctx, in, postID, current)
}

func (p *Pipeline) validatePost(
	ctx context.Context,
	in PostInput,
	excludeID int64,
	currentCategories []string,
) (*PostPayload, error) {
	payload := &PostPayload{
		Title:   trim(in.Title),
		Content: trim(in.Content),
	}

	// Sanitizing stage: syntactic and type rules. A failing field skips its
	// own remaining checks; independent fields continue.
	var errs Errors
	var checks []check

	if payload.Title == "" {
		errs.Add("title", "Title cannot be empty")
	} else {
		checks = append(checks, p.checker.titleUnique(payload.Title, excludeID))
	}

	if payload.Content == "" {
		errs.Add("content", "Content cannot be empty")
	}

	if in.AuthorID.Empty() {
		errs.Add("authorId", "Author's id cannot be empty")
	} else if id, err := in.AuthorID.Int64(); err != nil {
		errs.Add("authorId", "Author's id must be a number")
	} else {
		payload.AuthorID = id
		checks = append(checks, p.checker.authorExists(id))
	}

	// Checking stage: surviving fields fan out against the store.
	checkErrs, err := runChecks(ctx, checks...)
	if err != nil {
		return nil, err
	}
	errs = append(errs, checkErrs...)
	if len(errs) > 0 {
		return nil, errs
	}

	// Reconciling stage: only when the relation field was present.
	if in.Categories.Present() {
		delta := Reconcile(currentCategories, in.Categories.Values())
		payload.Categories = &delta
	}

	return payload, nil
}
