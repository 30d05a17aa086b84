package domain

// Role defines the permission level of a console user.
//
// The set is closed: an unrecognized role string is kept as-is for
// display but always resolves to level zero, so it can never satisfy
// any requirement.
type Role string

const (
	// RoleAdmin has full access to every view.
	RoleAdmin Role = "admin"

	// RoleUser has access to the standard operational views.
	RoleUser Role = "user"

	// RoleViewer has read-only access to the basic views.
	RoleViewer Role = "viewer"
)

// Role hierarchy levels. The order is total: admin > user > viewer.
// Anything outside the closed set maps to zero.
const (
	levelAdmin  = 3
	levelUser   = 2
	levelViewer = 1
	levelNone   = 0
)

// ValidRoles returns all valid roles.
func ValidRoles() []Role {
	return []Role{RoleAdmin, RoleUser, RoleViewer}
}

// IsValidRole checks if a string is a valid role.
func IsValidRole(r string) bool {
	for _, role := range ValidRoles() {
		if Role(r) == role {
			return true
		}
	}
	return false
}

// Level returns the hierarchy level of the role.
func (r Role) Level() int {
	switch r {
	case RoleAdmin:
		return levelAdmin
	case RoleUser:
		return levelUser
	case RoleViewer:
		return levelViewer
	default:
		return levelNone
	}
}

// Satisfies reports whether this role meets the given requirement.
// The comparison is a plain level check, so admin satisfies every
// requirement and an unknown role satisfies only an unknown (level
// zero) requirement.
func (r Role) Satisfies(required Role) bool {
	return r.Level() >= required.Level()
}
