package leads

import "github.com/dmitrijs2005/crmkeeper/internal/client/models"

// SetFilters overlays the non-empty fields of f onto the current filters.
func (s *Store) SetFilters(f models.LeadFilters) {
	s.update(func(st *State) { st.Filters = st.Filters.Merge(f) })
}

func (s *Store) ClearFilters() {
	s.update(func(st *State) { st.Filters = models.LeadFilters{} })
}

func (s *Store) SetCurrentLead(l models.Lead) {
	s.update(func(st *State) { st.CurrentLead = &l })
}

func (s *Store) ClearCurrentLead() {
	s.update(func(st *State) { st.CurrentLead = nil })
}

func (s *Store) ClearError() {
	s.update(func(st *State) { st.Error = "" })
}

func (s *Store) ClearSuccess() {
	s.update(func(st *State) { st.Success = "" })
}

// Reset drops every cached lead and message and forgets all statuses.
// Requests still in flight settle as superseded. Filters and pagination
// survive.
func (s *Store) Reset() {
	s.update(func(st *State) {
		st.Leads = nil
		st.MyLeads = nil
		st.CurrentLead = nil
		st.Stats = nil
		st.Error = ""
		st.Success = ""
		s.ops.Reset()
	})
}
