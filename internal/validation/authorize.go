package validation

import "github.com/calloway/quill-api/internal/domain"

// Authorize decides whether the principal may mutate a resource owned by
// ownerID. Admins may mutate anything; visitors only what they own.
// Denial is ErrNotAuthorized, which handlers surface as a 403 with the
// fixed field key "authorId".
func Authorize(p domain.Principal, ownerID int64) error {
	switch p.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleVisitor:
		if p.ID == ownerID {
			return nil
		}
		return ErrNotAuthorized
	default:
		// Unknown roles never pass.
		return ErrNotAuthorized
	}
}
