package leads

import (
	"context"
	"maps"

	"github.com/dmitrijs2005/crmkeeper/internal/client/models"
)

// CreateLead creates a lead and puts it at the head of Leads.
func (s *Store) CreateLead(ctx context.Context, in models.LeadInput) (models.Lead, error) {
	res, err := run(ctx, s, OpCreate, func(ctx context.Context) (models.Result[models.Lead], error) {
		return s.backend.CreateLead(ctx, in)
	}, func(st *State, res models.Result[models.Lead]) {
		rest := st.Leads
		if res.Data.ID != "" {
			rest = without(rest, res.Data.ID)
		}
		st.Leads = append([]models.Lead{res.Data}, rest...)
		succeed(st, res.Message)
	})
	return res.Data, err
}

// FetchLeads replaces Leads with the server listing for f.
func (s *Store) FetchLeads(ctx context.Context, f models.LeadFilters) ([]models.Lead, error) {
	res, err := run(ctx, s, OpList, func(ctx context.Context) (models.Result[[]models.Lead], error) {
		return s.backend.ListLeads(ctx, f)
	}, func(st *State, res models.Result[[]models.Lead]) {
		st.Leads = append([]models.Lead{}, res.Data...)
		st.Pagination.Total = res.Count
	})
	return res.Data, err
}

func (s *Store) FetchLeadByID(ctx context.Context, id models.ID) (models.Lead, error) {
	res, err := run(ctx, s, OpGet, func(ctx context.Context) (models.Result[models.Lead], error) {
		return s.backend.GetLead(ctx, id)
	}, func(st *State, res models.Result[models.Lead]) {
		l := confirmed(res.Data, id)
		st.CurrentLead = &l
	})
	return res.Data, err
}

// UpdateLead replaces the lead everywhere the store holds it: CurrentLead
// becomes the returned lead and the matching entry of Leads is swapped in
// place.
func (s *Store) UpdateLead(ctx context.Context, id models.ID, in models.LeadInput) (models.Lead, error) {
	res, err := run(ctx, s, OpUpdate, func(ctx context.Context) (models.Result[models.Lead], error) {
		return s.backend.UpdateLead(ctx, id, in)
	}, func(st *State, res models.Result[models.Lead]) {
		l := confirmed(res.Data, id)
		st.CurrentLead = &l
		replace(st.Leads, l)
		succeed(st, res.Message)
	})
	return res.Data, err
}

func (s *Store) UpdateLeadStatus(ctx context.Context, id models.ID, status models.Status) (models.Lead, error) {
	res, err := run(ctx, s, OpStatus, func(ctx context.Context) (models.Result[models.Lead], error) {
		return s.backend.UpdateLeadStatus(ctx, id, status)
	}, func(st *State, res models.Result[models.Lead]) {
		applyPartial(st, confirmed(res.Data, id))
		succeed(st, res.Message)
	})
	return res.Data, err
}

func (s *Store) UpdateLeadPriority(ctx context.Context, id models.ID, p models.Priority) (models.Lead, error) {
	res, err := run(ctx, s, OpPriority, func(ctx context.Context) (models.Result[models.Lead], error) {
		return s.backend.UpdateLeadPriority(ctx, id, p)
	}, func(st *State, res models.Result[models.Lead]) {
		applyPartial(st, confirmed(res.Data, id))
		succeed(st, res.Message)
	})
	return res.Data, err
}

// applyPartial is the status/priority variant of an update: CurrentLead is
// only touched when it is the same lead.
func applyPartial(st *State, l models.Lead) {
	if st.CurrentLead != nil && st.CurrentLead.ID == l.ID {
		st.CurrentLead = &l
	}
	replace(st.Leads, l)
}

func (s *Store) DeleteLead(ctx context.Context, id models.ID) error {
	_, err := run(ctx, s, OpDelete, func(ctx context.Context) (models.Result[struct{}], error) {
		return s.backend.DeleteLead(ctx, id)
	}, func(st *State, res models.Result[struct{}]) {
		st.Leads = without(st.Leads, id)
		if st.CurrentLead != nil && st.CurrentLead.ID == id {
			st.CurrentLead = nil
		}
		succeed(st, res.Message)
	})
	return err
}

// FetchMyLeads fills MyLeads, the leads owned by the caller. Leads is left
// alone.
func (s *Store) FetchMyLeads(ctx context.Context) ([]models.Lead, error) {
	res, err := run(ctx, s, OpMine, func(ctx context.Context) (models.Result[[]models.Lead], error) {
		return s.backend.MyLeads(ctx)
	}, func(st *State, res models.Result[[]models.Lead]) {
		st.MyLeads = append([]models.Lead{}, res.Data...)
	})
	return res.Data, err
}

func (s *Store) FetchLeadStats(ctx context.Context) (models.Stats, error) {
	res, err := run(ctx, s, OpStats, func(ctx context.Context) (models.Result[models.Stats], error) {
		return s.backend.LeadStats(ctx)
	}, func(st *State, res models.Result[models.Stats]) {
		st.Stats = maps.Clone(res.Data)
	})
	return res.Data, err
}
