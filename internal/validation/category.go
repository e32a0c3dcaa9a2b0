package validation

import (
	"context"

	"github.com/calloway/quill-api/internal/domain"
)

// CategoryInput is the raw, JSON-decoded body of a category mutation request.
type CategoryInput struct {
	Name  string     `json:"name"`
	Posts StringList `json:"posts"`
}

// CategoryPayload is the sanitized, reconciled outcome of a passed category
// pipeline. Posts is nil when the field was absent from the request.
type CategoryPayload struct {
	Name  string
	Posts *domain.RelationDelta
}

// CategoryCreate validates a category creation request. Attached post titles
// must all resolve to existing posts; this direction never creates posts.
func (p *Pipeline) CategoryCreate(ctx context.Context, in CategoryInput) (*CategoryPayload, error) {
	return p.validateCategory(ctx, in, 0, nil)
}

// CategoryUpdate validates a category update request. The name uniqueness
// check excludes the category's own id, and a present posts field is
// reconciled against the category's current post set.
func (p *Pipeline) CategoryUpdate(ctx context.Context, categoryID int64, in CategoryInput) (*CategoryPayload, error) {
	current, err := p.checker.categories.PostTitles(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return p.validateCategory(ctx, in, categoryID, current)
}

func (p *Pipeline) validateCategory(
	ctx context.Context,
	in CategoryInput,
	excludeID int64,
	currentPosts []string,
) (*CategoryPayload, error) {
	payload := &CategoryPayload{
		Name: trim(in.Name),
	}

	var errs Errors
	var checks []check

	if payload.Name == "" {
		errs.Add("name", "Category cannot be empty")
	} else {
		checks = append(checks, p.checker.categoryUnique(payload.Name, excludeID))
	}

	var labels []string
	if in.Posts.Present() {
		labels = in.Posts.Values()
		checks = append(checks, p.checker.postsExist(labels))
	}

	checkErrs, err := runChecks(ctx, checks...)
	if err != nil {
		return nil, err
	}
	errs = append(errs, checkErrs...)
	if len(errs) > 0 {
		return nil, errs
	}

	if in.Posts.Present() {
		delta := Reconcile(currentPosts, labels)
		payload.Posts = &delta
	}

	return payload, nil
}
