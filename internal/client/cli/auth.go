package cli

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/crmkeeper/internal/client/guard"
	"github.com/dmitrijs2005/crmkeeper/internal/client/models"
	"github.com/dmitrijs2005/crmkeeper/internal/client/session"
	"github.com/dmitrijs2005/crmkeeper/internal/client/validate"
	"github.com/dmitrijs2005/crmkeeper/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for name, email, password and role and creates an
// account. On success the new session is active and the user lands on
// their dashboard. The password is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	if a.alreadyIn(guard.PathRegister) {
		return nil
	}

	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	role, err := getSimpleText(a.reader, "Enter role (admin, manager, sales_executive) [sales_executive]", a.out)
	if err != nil {
		return err
	}
	if role == "" {
		role = string(models.RoleSalesExecutive)
	}

	r := models.Registration{Name: name, Email: email, Password: string(password), Role: models.Role(strings.ToLower(role))}
	if err := validate.Register(r).Err(); err != nil {
		return err
	}

	return a.do(ctx, func(ctx context.Context) error {
		st, err := a.state.Session.Register(ctx, r)
		if err != nil {
			return err
		}
		a.arrive(ctx, st, "Registered")
		return nil
	})
}

// Login prompts for credentials and opens a session. The password is wiped
// before returning.
func (a *App) Login(ctx context.Context) error {
	if a.alreadyIn(guard.PathLogin) {
		return nil
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	c := models.Credentials{Email: email, Password: string(password)}
	if err := validate.Login(c).Err(); err != nil {
		return err
	}

	return a.do(ctx, func(ctx context.Context) error {
		st, err := a.state.Session.Login(ctx, c)
		if err != nil {
			return err
		}
		a.arrive(ctx, st, "Logged in")
		return nil
	})
}

// alreadyIn reports whether the guard keeps the session off a guest-only
// page, telling the user so.
func (a *App) alreadyIn(path string) bool {
	if d := a.moveTo(path); !d.Allowed() {
		a.printf("Already logged in.\n")
		return true
	}
	return false
}

func (a *App) arrive(ctx context.Context, st session.State, verb string) {
	dest := guard.PathHome
	if own, ok := guard.DashboardFor(st.Role); ok {
		dest = own
	}
	a.moveTo(dest)

	a.done(ctx, verb+" as "+st.User.DisplayName()+" ("+st.Role.Label()+")")
}

// Logout ends the session. Cached lead and admin data is dropped and any
// request still in flight is cancelled.
func (a *App) Logout(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	err := a.state.Session.Logout(ctx)
	a.moveTo(guard.PathLogin)
	if err != nil {
		return err
	}
	a.done(ctx, "Logged out")
	return nil
}

// WhoAmI prints the current user and, for JWT sessions, when the token
// expires.
func (a *App) WhoAmI(ctx context.Context) error {
	u, err := a.state.Session.RequireUser()
	if err != nil {
		return err
	}
	st := a.state.Session.Snapshot()

	a.printf("%s <%s>\nRole: %s\nID: %s\n", u.DisplayName(), u.Email, u.Role.Label(), u.ID)
	if exp, ok := session.TokenExpiry(st.Token); ok {
		a.printf("Session expires: %s\n", exp.Local().Format(time.RFC1123))
	}
	return nil
}
