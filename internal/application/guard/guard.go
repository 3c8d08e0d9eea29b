// Package guard holds the routing state machine: pure decisions over the
// session context and the requested path. The HTTP layer turns decisions
// into redirects; nothing here touches transport or storage.
package guard

import (
	"strings"

	"github.com/trackassure/compliance-api/internal/application/session"
	"github.com/trackassure/compliance-api/internal/domain/entity"
)

// Well-known paths.
const (
	PathLogin      = "/login"
	PathRegister   = "/register"
	PathOnboarding = "/manufacturer/onboarding"
)

// Action is the outcome of a guard evaluation.
type Action int

const (
	// Allow renders the requested content.
	Allow Action = iota
	// Redirect sends the client to Decision.Target.
	Redirect
	// Wait renders a placeholder: the session is still loading and no
	// routing decision may be made yet.
	Wait
)

// Decision is a guard verdict.
type Decision struct {
	Action Action
	Target string // set when Action == Redirect
}

func allow() Decision {
	return Decision{Action: Allow}
}

func redirect(to string) Decision {
	return Decision{Action: Redirect, Target: to}
}

// roleHome is the explicit total mapping from role to dashboard root. A new
// role without an entry fails closed to /login instead of producing a
// concatenated path to nowhere.
var roleHome = map[string]string{
	entity.RoleSuperAdmin:   "/super-admin",
	entity.RoleManufacturer: "/manufacturer",
	entity.RoleDistributor:  "/distributor",
	entity.RoleRFC:          "/rfc",
}

// HomePath returns the dashboard root for a role. ok is false for unknown
// roles.
func HomePath(role string) (string, bool) {
	p, ok := roleHome[role]
	return p, ok
}

// Evaluate runs the route-guard state machine for a navigation request.
// allowedRoles restricts the route to those roles; empty means any
// authenticated role. Evaluated on every navigation, so role or status
// changes take effect immediately.
func Evaluate(sess session.Context, path string, allowedRoles ...string) Decision {
	if sess.IsLoading {
		return Decision{Action: Wait}
	}
	if !sess.IsAuthenticated || sess.User == nil {
		return redirect(PathLogin)
	}
	role := sess.User.Role

	// Unapproved manufacturers are confined to the onboarding subtree.
	if role == entity.RoleManufacturer && !sess.User.Approved() && !strings.HasPrefix(path, PathOnboarding) {
		return redirect(PathOnboarding)
	}

	if len(allowedRoles) > 0 && !contains(allowedRoles, role) {
		home, ok := HomePath(role)
		if !ok {
			// Unknown role: fail safe, not open.
			return redirect(PathLogin)
		}
		return redirect(home)
	}
	return allow()
}

// StatusGate is the manufacturer-only specialization guarding the two
// manufacturer subtrees. requireApproved is true for the dashboard subtree
// and false for the onboarding subtree.
func StatusGate(sess session.Context, requireApproved bool) Decision {
	if sess.IsLoading {
		return Decision{Action: Wait}
	}
	if !sess.IsAuthenticated || sess.User == nil || sess.User.Role != entity.RoleManufacturer {
		return redirect(PathLogin)
	}
	approved := sess.User.Approved()
	if requireApproved && !approved {
		return redirect(PathOnboarding)
	}
	if !requireApproved && approved {
		// Already approved: keep the manufacturer out of onboarding.
		return redirect(roleHome[entity.RoleManufacturer])
	}
	return allow()
}

// RootPath resolves "/" purely from {role, status}: each role goes to its
// root, unapproved manufacturers to onboarding, everyone else to /login.
func RootPath(sess session.Context) string {
	if !sess.IsAuthenticated || sess.User == nil {
		return PathLogin
	}
	if sess.User.Role == entity.RoleManufacturer && !sess.User.Approved() {
		return PathOnboarding
	}
	home, ok := HomePath(sess.User.Role)
	if !ok {
		return PathLogin
	}
	return home
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
