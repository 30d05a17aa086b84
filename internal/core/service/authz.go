package service

import "github.com/avelarde/attendctl-go/internal/core/domain"

// HasRole decides whether an identity's role satisfies a requirement.
//
// An absent identity satisfies nothing, not even an empty
// requirement. Otherwise the fixed hierarchy decides: admin satisfies
// admin/user/viewer, user satisfies user/viewer, viewer satisfies
// only viewer; unknown roles on either side resolve to level zero.
func HasRole(identity *domain.Identity, required domain.Role) bool {
	if identity == nil {
		return false
	}
	return identity.Role.Satisfies(required)
}
