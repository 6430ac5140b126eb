package guard

import (
	"testing"

	"github.com/dmitrijs2005/crmkeeper/internal/client/models"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestDecide_Exhaustive(t *testing.T) {
	tests := []struct {
		isAuthenticated bool
		requireAuth     bool
		want            Decision
	}{
		{true, true, Allow},
		{false, true, RedirectTo("/login")},
		{true, false, RedirectTo("/")},
		{false, false, Allow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Decide(tt.isAuthenticated, tt.requireAuth), "auth=%v require=%v", tt.isAuthenticated, tt.requireAuth)
	}
}

func TestDashboardFor(t *testing.T) {
	for role, want := range map[models.Role]string{
		models.RoleAdmin:          "/admin",
		models.RoleManager:        "/manager",
		models.RoleSalesExecutive: "/sales",
	} {
		got, ok := DashboardFor(role)
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}
	_, ok := DashboardFor("salesexecutive")
	assert.False(t, ok)
}

func TestNavigate(t *testing.T) {
	tests := []struct {
		name string
		auth bool
		role models.Role
		path string
		want Decision
	}{
		{"home is public", false, "", "/", Allow},
		{"home signed in", true, models.RoleAdmin, "/", Allow},
		{"login as guest", false, "", "/login", Allow},
		{"login when signed in", true, models.RoleManager, "/login", RedirectTo("/")},
		{"register when signed in", true, models.RoleManager, "/register", RedirectTo("/")},
		{"dashboard anonymous", false, "", "/admin", RedirectTo("/login")},
		{"own dashboard", true, models.RoleAdmin, "/admin", Allow},
		{"other dashboard", true, models.RoleSalesExecutive, "/admin", RedirectTo("/sales")},
		{"manager to sales", true, models.RoleManager, "/sales", RedirectTo("/manager")},
		{"unknown role", true, "intern", "/manager", RedirectTo("/")},
		{"unknown path", true, models.RoleAdmin, "/salesexecutive", RedirectTo("/")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Navigate(tt.auth, tt.role, tt.path))
		})
	}
}

func TestResolve(t *testing.T) {
	assert.Equal(t, "/login", Resolve(false, "", "/manager"))
	assert.Equal(t, "/sales", Resolve(true, models.RoleSalesExecutive, "/admin"))
	assert.Equal(t, "/", Resolve(true, models.RoleAdmin, "/nowhere"))
}

func TestNavigate_Properties(t *testing.T) {
	paths := append([]string{"/nowhere", ""}, func() []string {
		var ps []string
		for _, r := range Routes {
			ps = append(ps, r.Path)
		}
		return ps
	}()...)
	roles := append([]models.Role{"", "intern"}, models.Roles...)

	rapid.Check(t, func(t *rapid.T) {
		auth := rapid.Bool().Draw(t, "auth")
		role := rapid.SampledFrom(roles).Draw(t, "role")
		path := rapid.SampledFrom(paths).Draw(t, "path")

		d := Navigate(auth, role, path)
		if !d.Allowed() {
			if _, ok := Lookup(d.Target()); !ok {
				t.Fatalf("redirect to unknown route %q", d.Target())
			}
			if d.Target() == path {
				t.Fatalf("redirect loop on %q", path)
			}
		}

		// wherever a session lands, it is allowed to stay
		end := Resolve(auth, role, path)
		if !Navigate(auth, role, end).Allowed() {
			t.Fatalf("resolved %q is not allowed", end)
		}
		if !auth {
			if r, _ := Lookup(end); r.Access == AuthOnly {
				t.Fatalf("anonymous session reached %q", end)
			}
		}
	})
}
