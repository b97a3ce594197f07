// Package routes decides, per navigation, whether a view is reachable given
// the current session state, and redirects to the login view otherwise.
package routes

import (
	"github.com/WTLInterns/hrm-cli/internal/client/models"
)

// Decision is the outcome of a guard check.
type Decision int

const (
	Allow Decision = iota
	RedirectToLogin
)

// View paths addressable in the client.
const (
	PathLogin          = "/login"
	PathSignup         = "/signup"
	PathLogout         = "/logout"
	PathForgotPassword = "/forgot-password"
	PathResetPassword  = "/reset-password"
	PathDashboard      = "/dashboard"
	PathProfile        = "/profile"
	PathEmployees      = "/employees"
)

// publicPaths is the explicit set of views reachable without a session.
// Membership is exact; substring matching on the path invites accidental
// exposure of protected views.
var publicPaths = map[string]struct{}{
	PathLogin:          {},
	PathSignup:         {},
	PathLogout:         {},
	PathForgotPassword: {},
	PathResetPassword:  {},
}

// IsPublic reports whether path is reachable without a session.
func IsPublic(path string) bool {
	_, ok := publicPaths[path]
	return ok
}

// IsAllowed reports whether the view at path is reachable for p. Public
// views are always allowed; everything else requires a non-nil principal.
// Pure function, no side effects.
func IsAllowed(path string, p *models.Principal) bool {
	return IsPublic(path) || p != nil
}

// PrincipalSource supplies the current principal. *session.Store satisfies
// it; tests can supply a stub.
type PrincipalSource interface {
	Current() *models.Principal
}

// NoticeFunc receives the one-time "session expired" notice on denial.
type NoticeFunc func(msg string)

// Guard gates navigation. A nil source fails closed: without a session
// provider every protected path is denied rather than panicking.
type Guard struct {
	source  PrincipalSource
	notify  NoticeFunc
	noticed map[string]bool
}

func NewGuard(source PrincipalSource, notify NoticeFunc) *Guard {
	return &Guard{
		source:  source,
		notify:  notify,
		noticed: make(map[string]bool),
	}
}

// Check resolves the current principal from the source and applies Decide.
func (g *Guard) Check(path string) Decision {
	var p *models.Principal
	if g.source != nil {
		p = g.source.Current()
	}
	return g.Decide(path, p)
}

// Decide returns Allow when the view is public or p is non-nil. Redirecting
// away from an already-public path is forbidden even with a nil principal;
// that would send the login view to itself in a loop.
//
// On denial the configured notice is surfaced exactly once per denied path;
// repeated checks of the same path while the user is still parked on it stay
// silent. Navigating to an allowed path re-arms the notice for that path.
func (g *Guard) Decide(path string, p *models.Principal) Decision {
	if IsAllowed(path, p) {
		delete(g.noticed, path)
		return Allow
	}

	if !g.noticed[path] {
		g.noticed[path] = true
		if g.notify != nil {
			g.notify("Your session has expired. Please log in again.")
		}
	}
	return RedirectToLogin
}
