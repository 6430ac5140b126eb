// Package guard decides whether the current session may open a route.
//
// Decide is the core rule: authenticated-only routes send anonymous users to
// /login, guest-only routes (login, register) send signed-in users to /.
// Navigate adds the route table and role gating on top of it.
package guard

import (
	"slices"

	"github.com/dmitrijs2005/crmkeeper/internal/client/models"
)

// Decision is either Allow or a redirect to another path.
type Decision struct {
	redirect string
}

var Allow = Decision{}

func RedirectTo(path string) Decision { return Decision{redirect: path} }

func (d Decision) Allowed() bool { return d.redirect == "" }

// Target is the redirect path; empty for Allow.
func (d Decision) Target() string { return d.redirect }

func (d Decision) String() string {
	if d.Allowed() {
		return "allow"
	}
	return "redirect " + d.redirect
}

const (
	PathHome     = "/"
	PathLogin    = "/login"
	PathRegister = "/register"
	PathAdmin    = "/admin"
	PathManager  = "/manager"
	PathSales    = "/sales"
)

// Decide applies the authentication rule to a guarded route.
func Decide(isAuthenticated, requireAuth bool) Decision {
	if requireAuth {
		if isAuthenticated {
			return Allow
		}
		return RedirectTo(PathLogin)
	}
	if !isAuthenticated {
		return Allow
	}
	return RedirectTo(PathHome)
}

type Access int

const (
	// Public routes are open to everyone.
	Public Access = iota
	// AuthOnly routes require a session.
	AuthOnly
	// GuestOnly routes are for users without a session.
	GuestOnly
)

type Route struct {
	Path   string
	Access Access
	// Roles limits an AuthOnly route to these roles; empty means any role.
	Roles []models.Role
}

var Routes = []Route{
	{Path: PathHome, Access: Public},
	{Path: PathLogin, Access: GuestOnly},
	{Path: PathRegister, Access: GuestOnly},
	{Path: PathAdmin, Access: AuthOnly, Roles: []models.Role{models.RoleAdmin}},
	{Path: PathManager, Access: AuthOnly, Roles: []models.Role{models.RoleManager}},
	{Path: PathSales, Access: AuthOnly, Roles: []models.Role{models.RoleSalesExecutive}},
}

var dashboards = map[models.Role]string{
	models.RoleAdmin:          PathAdmin,
	models.RoleManager:        PathManager,
	models.RoleSalesExecutive: PathSales,
}

// DashboardFor returns the landing route of role.
func DashboardFor(role models.Role) (string, bool) {
	p, ok := dashboards[role]
	return p, ok
}

func Lookup(path string) (Route, bool) {
	for _, r := range Routes {
		if r.Path == path {
			return r, true
		}
	}
	return Route{}, false
}

// Navigate decides whether a session may open path. Unknown paths lead home;
// a signed-in user on another role's dashboard is sent to their own one.
func Navigate(isAuthenticated bool, role models.Role, path string) Decision {
	r, ok := Lookup(path)
	if !ok {
		return RedirectTo(PathHome)
	}
	if r.Access == Public {
		return Allow
	}

	if d := Decide(isAuthenticated, r.Access == AuthOnly); !d.Allowed() {
		return d
	}

	if len(r.Roles) > 0 && !slices.Contains(r.Roles, role) {
		if own, ok := DashboardFor(role); ok {
			return RedirectTo(own)
		}
		return RedirectTo(PathHome)
	}
	return Allow
}

// Resolve follows redirects from path until a route is allowed and returns
// that route's path.
func Resolve(isAuthenticated bool, role models.Role, path string) string {
	for range len(Routes) + 1 {
		d := Navigate(isAuthenticated, role, path)
		if d.Allowed() {
			return path
		}
		path = d.Target()
	}
	return PathHome
}
