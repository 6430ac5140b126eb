package leads

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrijs2005/crmkeeper/internal/client/api"
	"github.com/dmitrijs2005/crmkeeper/internal/client/models"
	"github.com/dmitrijs2005/crmkeeper/internal/client/status"
	"github.com/dmitrijs2005/crmkeeper/internal/client/watch"
	"github.com/dmitrijs2005/crmkeeper/internal/logging"
)

// Kind names a lead operation.
type Kind string

const (
	OpCreate   Kind = "create"
	OpList     Kind = "list"
	OpGet      Kind = "get"
	OpUpdate   Kind = "update"
	OpStatus   Kind = "status"
	OpPriority Kind = "priority"
	OpDelete   Kind = "delete"
	OpMine     Kind = "mine"
	OpStats    Kind = "stats"
)

// mutating reports whether k changes a lead on the server. Only those
// dispatches drop the previous success message.
func (k Kind) mutating() bool {
	switch k {
	case OpCreate, OpUpdate, OpStatus, OpPriority, OpDelete:
		return true
	}
	return false
}

// Backend is the part of the CRM API the lead store uses.
type Backend interface {
	ListLeads(ctx context.Context, f models.LeadFilters) (models.Result[[]models.Lead], error)
	GetLead(ctx context.Context, id models.ID) (models.Result[models.Lead], error)
	CreateLead(ctx context.Context, in models.LeadInput) (models.Result[models.Lead], error)
	UpdateLead(ctx context.Context, id models.ID, in models.LeadInput) (models.Result[models.Lead], error)
	UpdateLeadStatus(ctx context.Context, id models.ID, s models.Status) (models.Result[models.Lead], error)
	UpdateLeadPriority(ctx context.Context, id models.ID, p models.Priority) (models.Result[models.Lead], error)
	DeleteLead(ctx context.Context, id models.ID) (models.Result[struct{}], error)
	MyLeads(ctx context.Context) (models.Result[[]models.Lead], error)
	LeadStats(ctx context.Context) (models.Result[models.Stats], error)
}

// State is a copy of the store contents. Error holds the message of the
// last failed request and Success that of the last successful mutation.
// Fetches leave Success alone unless they fail; at most one of the two is
// non-empty.
type State struct {
	Leads       []models.Lead
	MyLeads     []models.Lead
	CurrentLead *models.Lead
	Stats       models.Stats
	Filters     models.LeadFilters
	Pagination  models.Pagination
	Error       string
	Success     string
	Ops         map[Kind]status.Op
}

// Loading reports whether any lead request is in flight.
func (s State) Loading() bool {
	for _, op := range s.Ops {
		if op.State == status.Pending {
			return true
		}
	}
	return false
}

func (s State) Op(k Kind) status.Op { return s.Ops[k] }

// Visible applies the client-side search term to Leads, matching name,
// company and email case-insensitively.
func (s State) Visible() []models.Lead {
	q := strings.ToLower(strings.TrimSpace(s.Filters.Search))
	if q == "" {
		return s.Leads
	}
	var out []models.Lead
	for _, l := range s.Leads {
		if strings.Contains(strings.ToLower(l.LeadName), q) ||
			strings.Contains(strings.ToLower(l.Company), q) ||
			strings.Contains(strings.ToLower(l.Email), q) {
			out = append(out, l)
		}
	}
	return out
}

func initialState() State {
	return State{Pagination: models.DefaultPagination()}
}

type Store struct {
	backend Backend
	log     logging.Logger

	mu  sync.Mutex
	st  State
	ops *status.Tracker[Kind]
	hub watch.Hub[State]
}

func New(backend Backend, log logging.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	return &Store{
		backend: backend,
		log:     log.With("store", "leads"),
		st:      initialState(),
		ops:     status.NewTracker[Kind](),
	}
}

func (s *Store) snapshotLocked() State {
	st := s.st
	st.Leads = slices.Clone(s.st.Leads)
	st.MyLeads = slices.Clone(s.st.MyLeads)
	if s.st.CurrentLead != nil {
		l := *s.st.CurrentLead
		st.CurrentLead = &l
	}
	st.Stats = maps.Clone(s.st.Stats)
	st.Ops = s.ops.Snapshot()
	return st
}

func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe calls fn with the new state after every change.
func (s *Store) Subscribe(fn func(State)) (cancel func()) {
	return s.hub.Subscribe(fn)
}

// update applies fn under the lock and publishes the result.
func (s *Store) update(fn func(st *State)) {
	s.mu.Lock()
	fn(&s.st)
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.hub.Publish(snap)
}

// run drives one request through dispatch, the backend call and settlement.
func run[T any](ctx context.Context, s *Store, kind Kind, call func(context.Context) (models.Result[T], error), apply func(st *State, res models.Result[T])) (models.Result[T], error) {
	var tok status.Token[Kind]
	s.update(func(st *State) {
		tok = s.ops.Begin(kind)
		st.Error = ""
		if kind.mutating() {
			st.Success = ""
		}
	})
	s.log.Debug(ctx, "dispatch", "op", kind)

	res, err := call(ctx)

	var (
		state status.State
		out   error
	)
	s.update(func(st *State) {
		state, out = s.ops.Settle(ctx, tok, err)
		switch state {
		case status.Fulfilled:
			apply(st, res)
		case status.Rejected:
			st.Error = api.Message(err)
			st.Success = ""
		}
	})

	switch state {
	case status.Fulfilled:
		return res, nil
	case status.Rejected:
		s.log.Warn(ctx, "request failed", "op", kind, "err", err)
	default:
		s.log.Debug(ctx, "result discarded", "op", kind, "reason", out)
	}
	return models.Result[T]{}, out
}

// succeed records the server message of a mutating request.
func succeed(st *State, msg string) {
	st.Success = msg
	st.Error = ""
}

// replace swaps the entry with l's id for l. It reports whether one matched.
func replace(list []models.Lead, l models.Lead) bool {
	for i := range list {
		if list[i].ID == l.ID {
			list[i] = l
			return true
		}
	}
	return false
}

func without(list []models.Lead, id models.ID) []models.Lead {
	return slices.DeleteFunc(list, func(l models.Lead) bool { return l.ID == id })
}

// confirmed returns the lead the server sent back, keyed by the requested id
// when the reply omits it.
func confirmed(l models.Lead, id models.ID) models.Lead {
	if l.ID == "" {
		l.ID = id
	}
	return l
}
