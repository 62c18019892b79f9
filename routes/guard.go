// Package routes gates navigation between screens. The guard is a pure
// function over the current session snapshot and a static permission
// table; it never consults the server, and authorization failures are
// corrected with redirects rather than surfaced as errors.
package routes

import (
	internalerrors "github.com/collegeops/collegeops-cli/internal/errors"
	"github.com/collegeops/collegeops-cli/users"
)

// Permission declares who may view a screen. A nil AllowedRoles set
// admits any authenticated role. Public screens skip the session check
// entirely. Dispatch screens are never rendered; they immediately
// redirect to the caller's role home.
type Permission struct {
	Path         string
	AllowedRoles []users.RoleType
	Public       bool
	Dispatch     bool
}

// permissions is the static table of every navigable screen.
var permissions = map[string]Permission{
	RouteLogin:    {Path: RouteLogin, Public: true},
	RouteRegister: {Path: RouteRegister, Public: true},

	RouteRoot: {Path: RouteRoot, Dispatch: true},

	RouteStudentHome:          {Path: RouteStudentHome, AllowedRoles: []users.RoleType{users.RoleStudent}},
	RouteStudentNotes:         {Path: RouteStudentNotes, AllowedRoles: []users.RoleType{users.RoleStudent}},
	RouteStudentAssignments:   {Path: RouteStudentAssignments, AllowedRoles: []users.RoleType{users.RoleStudent}},
	RouteStudentAnnouncements: {Path: RouteStudentAnnouncements, AllowedRoles: []users.RoleType{users.RoleStudent}},

	RouteAdminHome:          {Path: RouteAdminHome, AllowedRoles: []users.RoleType{users.RoleAdmin}},
	RouteAdminNotes:         {Path: RouteAdminNotes, AllowedRoles: []users.RoleType{users.RoleAdmin}},
	RouteAdminAssignments:   {Path: RouteAdminAssignments, AllowedRoles: []users.RoleType{users.RoleAdmin}},
	RouteAdminAnnouncements: {Path: RouteAdminAnnouncements, AllowedRoles: []users.RoleType{users.RoleAdmin}},
}

// Decision is the outcome of a navigation attempt: either the target
// path may render, or the navigation is redirected elsewhere.
type Decision struct {
	Target   string // the path that may render
	Redirect string // non-empty when the navigation must be redirected
}

func (d Decision) Allowed() bool {
	return d.Redirect == ""
}

func allow(path string) Decision {
	return Decision{Target: path}
}

func redirect(path string) Decision {
	return Decision{Redirect: path}
}

// HomeFor maps a role to its canonical landing screen. Students land
// on /student; anything else lands on /admin.
func HomeFor(role users.RoleType) string {
	if role == users.RoleStudent {
		return RouteStudentHome
	}
	return RouteAdminHome
}

// Decide evaluates a single navigation attempt against the current
// session snapshot:
//   - unmatched paths redirect to "/" (which itself redirects again -
//     two hops are expected, not an error)
//   - protected targets without a session redirect to the login screen
//   - a role outside the target's allowed set redirects to that role's
//     home screen
func Decide(user *users.User, path string) Decision {
	permission, ok := permissions[path]
	if !ok {
		return redirect(RouteRoot)
	}

	if permission.Public {
		return allow(path)
	}

	if user == nil {
		return redirect(RouteLogin)
	}

	if permission.Dispatch {
		return redirect(HomeFor(user.Role))
	}

	if permission.AllowedRoles != nil && !roleAllowed(user.Role, permission.AllowedRoles) {
		return redirect(HomeFor(user.Role))
	}

	return allow(path)
}

// maxRedirects bounds a Resolve chain. The longest legitimate chain is
// unmatched -> "/" -> role home, so anything deeper is a table bug.
const maxRedirects = 4

// Resolve follows Decide through redirects until a screen may render,
// returning the terminal path and the trail of paths visited.
func Resolve(user *users.User, path string) (string, []string, error) {
	trail := []string{path}
	for i := 0; i < maxRedirects; i++ {
		decision := Decide(user, path)
		if decision.Allowed() {
			return decision.Target, trail, nil
		}
		path = decision.Redirect
		trail = append(trail, path)
	}
	return "", trail, internalerrors.ErrRedirectCycle
}

func roleAllowed(role users.RoleType, allowed []users.RoleType) bool {
	for _, candidate := range allowed {
		if candidate == role {
			return true
		}
	}
	return false
}
