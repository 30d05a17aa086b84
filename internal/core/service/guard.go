package service

import "github.com/avelarde/attendctl-go/internal/core/domain"

// GuardState is the outcome of one access evaluation.
type GuardState string

const (
	// StateChecking applies while session restoration is still in
	// flight; no terminal decision exists yet.
	StateChecking GuardState = "checking"

	// StateDeniedUnauthenticated means no session is active. The
	// caller should route to login, remembering the destination.
	StateDeniedUnauthenticated GuardState = "denied_unauthenticated"

	// StateDeniedForbidden means a session is active but its role
	// does not satisfy the requirement. Render a restricted-access
	// notice; do not redirect.
	StateDeniedForbidden GuardState = "denied_forbidden"

	// StateAllowed means the requested view may render.
	StateAllowed GuardState = "allowed"
)

// Decision is the result of guarding one navigation attempt.
type Decision struct {
	State GuardState

	// Destination is the originally requested view, kept so login can
	// return there afterwards.
	Destination string

	// RequiredRole and ActualRole feed the restricted-access notice.
	RequiredRole domain.Role
	ActualRole   domain.Role
}

// Guard gates rendering of protected views. Decisions are computed
// fresh on every call and never cached: the session can change
// between navigations.
type Guard struct {
	sessions *SessionService
}

// NewGuard creates a guard over the given session service.
func NewGuard(sessions *SessionService) *Guard {
	return &Guard{sessions: sessions}
}

// Evaluate decides access to destination. An empty required role
// means the view only needs an authenticated session.
func (g *Guard) Evaluate(destination string, required domain.Role) Decision {
	if !g.sessions.Restored() {
		return Decision{State: StateChecking, Destination: destination, RequiredRole: required}
	}

	identity := g.sessions.Identity()
	if !g.sessions.IsAuthenticated() {
		return Decision{State: StateDeniedUnauthenticated, Destination: destination, RequiredRole: required}
	}

	if required != "" && !HasRole(identity, required) {
		return Decision{
			State:        StateDeniedForbidden,
			Destination:  destination,
			RequiredRole: required,
			ActualRole:   identity.Role,
		}
	}

	return Decision{
		State:        StateAllowed,
		Destination:  destination,
		RequiredRole: required,
		ActualRole:   identity.Role,
	}
}

// OnChange re-evaluates the guard whenever the session changes and
// pushes the fresh decision to fn. The returned function cancels the
// subscription.
func (g *Guard) OnChange(destination string, required domain.Role, fn func(Decision)) func() {
	return g.sessions.Subscribe(func(*domain.Session) {
		fn(g.Evaluate(destination, required))
	})
}
