package validation

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
)

// Single validator instance, reused across requests.
var validate = validator.New()

// Pipeline sequences the validation stages per endpoint: sanitize raw fields
// into their semantic types, run existence/uniqueness checks concurrently,
// reconcile many-to-many relation fields, and authorize ownership-sensitive
// mutations. A pipeline holds no request state; everything it computes is
// request-scoped and discarded on completion.
type Pipeline struct {
	checker *Checker
}

// NewPipeline builds a Pipeline over the given store probes.
func NewPipeline(users UserProbe, posts PostProbe, categories CategoryProbe, comments CommentProbe) *Pipeline {
	return &Pipeline{
		checker: NewChecker(users, posts, categories, comments),
	}
}

// AsFieldErrors unwraps an aggregate field error set from a pipeline error.
// Returns false for not-found, authorization, and store-fault errors.
func AsFieldErrors(err error) (Errors, bool) {
	var errs Errors
	if errors.As(err, &errs) {
		return errs, true
	}
	return nil, false
}

// resolveID coerces a raw path parameter into an entity id and confirms the
// entity exists. Coercion failures are field errors; a well-formed id that
// resolves to nothing is ErrResourceNotFound.
func resolveID(
	ctx context.Context,
	raw, field, label string,
	exists func(ctx context.Context, id int64) (bool, error),
) (int64, error) {
	raw = escape(raw)

	var errs Errors
	if raw == "" {
		errs.Add(field, label+"'s id cannot be empty")
		return 0, errs
	}

	id, err := parseID(raw)
	if err != nil {
		errs.Add(field, label+"'s id must be a number")
		return 0, errs
	}

	ok, err := exists(ctx, id)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrResourceNotFound
	}

	return id, nil
}

// ResolvePostID validates the postId path parameter.
func (p *Pipeline) ResolvePostID(ctx context.Context, raw string) (int64, error) {
	return resolveID(ctx, raw, "postId", "Post", p.checker.posts.Exists)
}

// ResolveCategoryID validates the categoryId path parameter.
func (p *Pipeline) ResolveCategoryID(ctx context.Context, raw string) (int64, error) {
	return resolveID(ctx, raw, "categoryId", "Category", p.checker.categories.Exists)
}

// ResolveCommentID validates the commentId path parameter. Ownership of the
// comment is gated separately once the row has been fetched.
func (p *Pipeline) ResolveCommentID(ctx context.Context, raw string) (int64, error) {
	return resolveID(ctx, raw, "commentId", "Comment", p.checker.comments.Exists)
}

// ResolveUserID validates the userId path parameter.
func (p *Pipeline) ResolveUserID(ctx context.Context, raw string) (int64, error) {
	return resolveID(ctx, raw, "userId", "User", p.checker.users.Exists)
}
