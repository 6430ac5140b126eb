package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/crmkeeper/internal/client/models"
	"github.com/dmitrijs2005/crmkeeper/internal/client/validate"
)

// ask prompts with a default shown in brackets; an empty answer keeps it.
func (a *App) ask(prompt, def string) (string, error) {
	if def != "" {
		prompt += " [" + def + "]"
	}
	s, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return "", err
	}
	if s == "" {
		return def, nil
	}
	return s, nil
}

// filtersFrom reads status=, priority=, owner= and search= arguments.
func filtersFrom(kv map[string]string) (models.LeadFilters, error) {
	var f models.LeadFilters
	if v, ok := kv["status"]; ok {
		s, err := models.ParseStatus(v)
		if err != nil {
			return f, err
		}
		f.Status = s
	}
	if v, ok := kv["priority"]; ok {
		p, err := models.ParsePriority(v)
		if err != nil {
			return f, err
		}
		f.Priority = p
	}
	if v, ok := kv["owner"]; ok {
		f.OwnerID = models.ID(v)
	}
	f.Search = kv["search"]
	return f, nil
}

// Leads lists leads. Filter arguments are merged into the stored filters
// before fetching; "clear" drops them first. The search term narrows the
// listing locally.
func (a *App) Leads(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	kv, rest := parseKV(args)
	f, err := filtersFrom(kv)
	if err != nil {
		return err
	}
	for _, w := range rest {
		if w == "clear" {
			a.state.Leads.ClearFilters()
		}
	}
	a.state.Leads.SetFilters(f)

	return a.do(ctx, func(ctx context.Context) error {
		if _, err := a.state.Leads.FetchLeads(ctx, a.state.Leads.Snapshot().Filters); err != nil {
			return err
		}
		st := a.state.Leads.Snapshot()
		renderLeads(a.out, st.Visible())
		a.printf("Total: %d\n", st.Pagination.Total)
		return nil
	})
}

func (a *App) Lead(ctx context.Context, id string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	return a.do(ctx, func(ctx context.Context) error {
		if _, err := a.state.Leads.FetchLeadByID(ctx, models.ID(id)); err != nil {
			return err
		}
		if cur := a.state.Leads.Snapshot().CurrentLead; cur != nil {
			renderLead(a.out, *cur)
		}
		return nil
	})
}

// fillLead prompts for every lead field, prefilled from in.
func (a *App) fillLead(in models.LeadInput) (models.LeadInput, error) {
	var err error
	if in.LeadName, err = a.ask("Lead name", in.LeadName); err != nil {
		return in, err
	}
	if in.Company, err = a.ask("Company", in.Company); err != nil {
		return in, err
	}
	if in.Email, err = a.ask("Email", in.Email); err != nil {
		return in, err
	}
	if in.Mobile, err = a.ask("Mobile", in.Mobile); err != nil {
		return in, err
	}
	p, err := a.ask("Priority (High, Medium, Low)", string(in.Priority))
	if err != nil {
		return in, err
	}
	in.Priority = models.Priority(p)
	s, err := a.ask("Status (New, Contacted, Qualified, Proposal, Negotiation, Won, Lost)", string(in.Status))
	if err != nil {
		return in, err
	}
	in.Status = models.Status(s)
	return in, nil
}

// chooseOwner lists the sales executives and asks for one of their ids.
func (a *App) chooseOwner(ctx context.Context, current models.ID) (models.ID, error) {
	var execs []models.User
	err := a.do(ctx, func(ctx context.Context) error {
		var err error
		execs, err = a.state.Users.FetchSalesExecutives(ctx)
		return err
	})
	if err != nil {
		return "", err
	}
	renderUsers(a.out, execs)

	id, err := a.ask("Assign to sales executive (id)", string(current))
	if err != nil {
		return "", err
	}
	for _, u := range execs {
		if string(u.ID) == id {
			return u.ID, nil
		}
	}
	if id == "" {
		return "", nil
	}
	return "", fmt.Errorf("no sales executive with id %q", id)
}

// leadForm runs the create/edit form. Managers assign an owner and fill the
// stricter form.
func (a *App) leadForm(ctx context.Context, in models.LeadInput) (models.LeadInput, error) {
	in, err := a.fillLead(in)
	if err != nil {
		return in, err
	}

	check := validate.Lead
	if a.state.Session.Snapshot().Role == models.RoleManager {
		if in.OwnerID, err = a.chooseOwner(ctx, in.OwnerID); err != nil {
			return in, err
		}
		check = validate.ManagerLead
	}
	in.LeadName = strings.TrimSpace(in.LeadName)
	return in, check(in).Err()
}

func (a *App) Create(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	in, err := a.leadForm(ctx, models.NewLeadInput())
	if err != nil {
		return err
	}
	return a.do(ctx, func(ctx context.Context) error {
		l, err := a.state.Leads.CreateLead(ctx, in)
		if err != nil {
			return err
		}
		a.done(ctx, a.successOr(fmt.Sprintf("Lead %s created", l.ID)))
		return nil
	})
}

// Edit loads a lead, runs the form prefilled with it and saves the result.
func (a *App) Edit(ctx context.Context, id string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	var cur models.Lead
	err := a.do(ctx, func(ctx context.Context) error {
		var err error
		cur, err = a.state.Leads.FetchLeadByID(ctx, models.ID(id))
		return err
	})
	if err != nil {
		return err
	}

	in, err := a.leadForm(ctx, models.InputFrom(cur))
	if err != nil {
		return err
	}
	return a.do(ctx, func(ctx context.Context) error {
		if _, err := a.state.Leads.UpdateLead(ctx, models.ID(id), in); err != nil {
			return err
		}
		a.done(ctx, a.successOr("Lead updated"))
		return nil
	})
}

func (a *App) SetStatus(ctx context.Context, id, status string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	s, err := models.ParseStatus(status)
	if err != nil {
		return err
	}
	return a.do(ctx, func(ctx context.Context) error {
		if _, err := a.state.Leads.UpdateLeadStatus(ctx, models.ID(id), s); err != nil {
			return err
		}
		a.done(ctx, a.successOr("Lead status updated"))
		return nil
	})
}

func (a *App) SetPriority(ctx context.Context, id, priority string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	p, err := models.ParsePriority(priority)
	if err != nil {
		return err
	}
	return a.do(ctx, func(ctx context.Context) error {
		if _, err := a.state.Leads.UpdateLeadPriority(ctx, models.ID(id), p); err != nil {
			return err
		}
		a.done(ctx, a.successOr("Lead priority updated"))
		return nil
	})
}

// Delete asks for confirmation before deleting.
func (a *App) Delete(ctx context.Context, id string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	answer, err := getSimpleText(a.reader, fmt.Sprintf("Delete lead %s? (y/N)", id), a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
		a.printf("Cancelled.\n")
		return nil
	}
	return a.do(ctx, func(ctx context.Context) error {
		if err := a.state.Leads.DeleteLead(ctx, models.ID(id)); err != nil {
			return err
		}
		a.done(ctx, a.successOr("Lead deleted"))
		return nil
	})
}

// MyLeads lists the leads owned by the current user.
func (a *App) MyLeads(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	return a.do(ctx, func(ctx context.Context) error {
		leads, err := a.state.Leads.FetchMyLeads(ctx)
		if err != nil {
			return err
		}
		renderLeads(a.out, leads)
		return nil
	})
}

func (a *App) Stats(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	return a.do(ctx, func(ctx context.Context) error {
		stats, err := a.state.Leads.FetchLeadStats(ctx)
		if err != nil {
			return err
		}
		renderStats(a.out, stats)
		return nil
	})
}

func (a *App) Filters(ctx context.Context) error {
	renderFilters(a.out, a.state.Leads.Snapshot().Filters)
	return nil
}

// successOr returns the server's message for the last lead request, or def
// when the server sent none.
func (a *App) successOr(def string) string {
	if msg := a.state.Leads.Snapshot().Success; msg != "" {
		return msg
	}
	return def
}
