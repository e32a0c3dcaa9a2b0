package validation

import (
	"context"

	"github.com/calloway/quill-api/internal/domain"
)

// CommentInput is the raw, JSON-decoded body of a comment mutation request.
type CommentInput struct {
	Content         string   `json:"content"`
	PostID          IntField `json:"postId"`
	ParentCommentID IntField `json:"parentCommentId"`
	AuthorID        IntField `json:"authorId"`
}

// CommentPayload is the sanitized outcome of a passed comment pipeline.
type CommentPayload struct {
	Content         string
	PostID          int64
	AuthorID        int64
	ParentCommentID *int64
}

// Comment validates a comment create or update request and then gates the
// mutation on ownership: the supplied authorId must be the principal, unless
// the principal is an admin. The gate runs only after every field check has
// passed, and denial short-circuits with ErrNotAuthorized.
//
// The author existence check has no self-id exclusion the way the
// uniqueness checks do; authors are not a unique field.
func (p *Pipeline) Comment(ctx context.Context, principal domain.Principal, in CommentInput) (*CommentPayload, error) {
	payload := &CommentPayload{
		Content: trim(in.Content),
	}

	var errs Errors
	var checks []check

	if payload.Content == "" {
		errs.Add("content", "Content cannot be empty")
	}

	if in.PostID.Empty() {
		errs.Add("postId", "Post's id cannot be empty")
	} else if id, err := in.PostID.Int64(); err != nil {
		errs.Add("postId", "Post's id must be a number")
	} else {
		payload.PostID = id
		checks = append(checks, p.checker.postExists(id))
	}

	if in.ParentCommentID.Present() {
		if id, err := in.ParentCommentID.Int64(); err != nil {
			errs.Add("parentCommentId", "parent comment's id must be a number")
		} else {
			payload.ParentCommentID = &id
			checks = append(checks, p.checker.parentCommentExists(id))
		}
	}

	if in.AuthorID.Empty() {
		errs.Add("authorId", "Author's id cannot be empty")
	} else if id, err := in.AuthorID.Int64(); err != nil {
		errs.Add("authorId", "Author's id must be a number")
	} else {
		payload.AuthorID = id
		checks = append(checks, p.checker.authorExists(id))
	}

	checkErrs, err := runChecks(ctx, checks...)
	if err != nil {
		return nil, err
	}
	errs = append(errs, checkErrs...)
	if len(errs) > 0 {
		return nil, errs
	}

	// Authorizing stage.
	if err := Authorize(principal, payload.AuthorID); err != nil {
		return nil, err
	}

	return payload, nil
}
