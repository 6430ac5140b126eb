package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/crmkeeper/internal/client/admin"
	"github.com/dmitrijs2005/crmkeeper/internal/client/guard"
	"github.com/dmitrijs2005/crmkeeper/internal/client/models"
	"github.com/dmitrijs2005/crmkeeper/internal/common"
)

// Go navigates to path and shows it. The guard may redirect, in which case
// the page actually reached is shown.
func (a *App) Go(ctx context.Context, path string) error {
	if d := a.moveTo(path); !d.Allowed() {
		a.printf("Redirected to %s\n", a.location)
	}
	return a.show(ctx)
}

func (a *App) show(ctx context.Context) error {
	switch a.location {
	case guard.PathAdmin:
		return a.Admin(ctx, nil)
	case guard.PathManager:
		return a.Leads(ctx, nil)
	case guard.PathSales:
		return a.MyLeads(ctx)
	case guard.PathLogin:
		a.printf("Type 'login' to sign in.\n")
	case guard.PathRegister:
		a.printf("Type 'register' to create an account.\n")
	default:
		if a.isLoggedIn() {
			a.printf("Home. Type 'help' for commands.\n")
		} else {
			a.printf("Home. Type 'login' or 'register' to get started.\n")
		}
	}
	return nil
}

// requireAdmin checks the session against the admin route.
func (a *App) requireAdmin() error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	st := a.state.Session.Snapshot()
	if !guard.Navigate(st.IsAuthenticated, st.Role, guard.PathAdmin).Allowed() {
		return fmt.Errorf("admin access required: %w", common.ErrForbidden)
	}
	return nil
}

// Admin shows one admin listing. Without a section it refreshes the
// dashboard, managers and sales executives together.
func (a *App) Admin(ctx context.Context, args []string) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}
	kv, rest := parseKV(args)
	q, err := pageQueryFrom(kv)
	if err != nil {
		return err
	}
	section := "dashboard"
	if len(rest) > 0 {
		section = rest[0]
	}

	st := a.state.Admin
	return a.do(ctx, func(ctx context.Context) error {
		switch section {
		case "dashboard":
			err := st.Refresh(ctx)
			snap := st.Snapshot()
			renderStats(a.out, snap.Dashboard)
			a.printf("Managers: %d, sales executives: %d\n",
				snap.Pagination[admin.OpManagers].Total, snap.Pagination[admin.OpSalesExecutives].Total)
			return err
		case "managers":
			p, err := st.FetchManagers(ctx, q)
			if err != nil {
				return err
			}
			renderUsers(a.out, p.Managers)
			renderPage(a.out, p.Pagination)
		case "sales":
			p, err := st.FetchSalesExecutives(ctx, q)
			if err != nil {
				return err
			}
			renderUsers(a.out, p.SalesExecutives)
			renderPage(a.out, p.Pagination)
		case "records":
			p, err := st.FetchSalesRecords(ctx, q)
			if err != nil {
				return err
			}
			renderLeads(a.out, p.Leads)
			renderPage(a.out, p.Pagination)
		case "audit":
			p, err := st.FetchAuditLogs(ctx, q)
			if err != nil {
				return err
			}
			renderAuditLogs(a.out, p.AuditLogs)
			renderPage(a.out, p.Pagination)
		default:
			return fmt.Errorf("unknown admin section %q", section)
		}
		return nil
	})
}

func pageQueryFrom(kv map[string]string) (q models.PageQuery, err error) {
	if v, ok := kv["page"]; ok {
		if q.Page, err = strconv.Atoi(v); err != nil {
			return q, fmt.Errorf("page: %w", err)
		}
	}
	if v, ok := kv["limit"]; ok {
		if q.Limit, err = strconv.Atoi(v); err != nil {
			return q, fmt.Errorf("limit: %w", err)
		}
	}
	q.Search = kv["search"]
	q.Status = kv["status"]
	q.Action = kv["action"]
	return q, nil
}

// Users lists every user, or only sales executives with "sales".
func (a *App) Users(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	sales := len(args) > 0 && args[0] == "sales"
	return a.do(ctx, func(ctx context.Context) error {
		fetch := a.state.Users.FetchUsers
		if sales {
			fetch = a.state.Users.FetchSalesExecutives
		}
		us, err := fetch(ctx)
		if err != nil {
			return err
		}
		renderUsers(a.out, us)
		return nil
	})
}

// Notes lists notifications; "clear" drops them all and "rm <id>" one.
func (a *App) Notes(ctx context.Context, args []string) error {
	switch {
	case len(args) == 0:
		renderNotes(a.out, a.state.Notes.List())
	case args[0] == "clear":
		a.state.Notes.Clear()
	case args[0] == "rm" && len(args) == 2:
		a.state.Notes.Remove(args[1])
	default:
		a.printf("Usage: notes [clear|rm <id>]\n")
	}
	return nil
}
