// Package admin is the store behind the admin dashboard: aggregate stats and
// the paged listings of managers, sales executives, sales records and audit
// logs. Each listing has its own status and pagination; the error message is
// shared and cleared whenever a request is dispatched.
package admin

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/dmitrijs2005/crmkeeper/internal/client/api"
	"github.com/dmitrijs2005/crmkeeper/internal/client/models"
	"github.com/dmitrijs2005/crmkeeper/internal/client/status"
	"github.com/dmitrijs2005/crmkeeper/internal/client/watch"
	"github.com/dmitrijs2005/crmkeeper/internal/logging"
	"golang.org/x/sync/errgroup"
)

type Kind string

const (
	OpDashboard       Kind = "dashboard"
	OpManagers        Kind = "managers"
	OpSalesExecutives Kind = "salesExecutives"
	OpSalesRecords    Kind = "salesRecords"
	OpAuditLogs       Kind = "auditLogs"
)

// Kinds lists the admin operations in display order.
var Kinds = []Kind{OpDashboard, OpManagers, OpSalesExecutives, OpSalesRecords, OpAuditLogs}

type Backend interface {
	AdminDashboard(ctx context.Context) (models.Stats, error)
	AdminManagers(ctx context.Context, q models.PageQuery) (models.ManagersPage, error)
	AdminSalesExecutives(ctx context.Context, q models.PageQuery) (models.SalesExecutivesPage, error)
	AdminSalesRecords(ctx context.Context, q models.PageQuery) (models.SalesRecordsPage, error)
	AdminAuditLogs(ctx context.Context, q models.PageQuery) (models.AuditLogsPage, error)
}

type State struct {
	Dashboard       models.Stats
	Managers        []models.User
	SalesExecutives []models.User
	SalesRecords    []models.Lead
	AuditLogs       []models.AuditLog
	Pagination      map[Kind]models.Page
	Error           string
	Ops             map[Kind]status.Op
}

// Loading reports whether k has a request in flight.
func (s State) Loading(k Kind) bool { return s.Ops[k].State == status.Pending }

func initialPagination() map[Kind]models.Page {
	return map[Kind]models.Page{
		OpManagers:        models.DefaultPage(),
		OpSalesExecutives: models.DefaultPage(),
		OpSalesRecords:    models.DefaultPage(),
		OpAuditLogs:       models.DefaultPage(),
	}
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
		log:     log.With("store", "admin"),
		st:      State{Pagination: initialPagination()},
		ops:     status.NewTracker[Kind](),
	}
}

func (s *Store) snapshotLocked() State {
	st := s.st
	st.Dashboard = maps.Clone(s.st.Dashboard)
	st.Managers = slices.Clone(s.st.Managers)
	st.SalesExecutives = slices.Clone(s.st.SalesExecutives)
	st.SalesRecords = slices.Clone(s.st.SalesRecords)
	st.AuditLogs = slices.Clone(s.st.AuditLogs)
	st.Pagination = maps.Clone(s.st.Pagination)
	st.Ops = s.ops.Snapshot()
	return st
}

func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) Subscribe(fn func(State)) (cancel func()) {
	return s.hub.Subscribe(fn)
}

func (s *Store) update(fn func(st *State)) {
	s.mu.Lock()
	fn(&s.st)
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.hub.Publish(snap)
}

func run[T any](ctx context.Context, s *Store, kind Kind, call func(context.Context) (T, error), apply func(st *State, v T)) (T, error) {
	var tok status.Token[Kind]
	s.update(func(st *State) {
		tok = s.ops.Begin(kind)
		st.Error = ""
	})

	v, err := call(ctx)

	var (
		state status.State
		out   error
	)
	s.update(func(st *State) {
		state, out = s.ops.Settle(ctx, tok, err)
		switch state {
		case status.Fulfilled:
			apply(st, v)
		case status.Rejected:
			st.Error = api.Message(err)
		}
	})

	var zero T
	switch state {
	case status.Fulfilled:
		return v, nil
	case status.Rejected:
		s.log.Warn(ctx, "request failed", "op", kind, "err", err)
	}
	return zero, out
}

func (s *Store) FetchDashboard(ctx context.Context) (models.Stats, error) {
	return run(ctx, s, OpDashboard, s.backend.AdminDashboard, func(st *State, v models.Stats) {
		st.Dashboard = maps.Clone(v)
	})
}

func (s *Store) FetchManagers(ctx context.Context, q models.PageQuery) (models.ManagersPage, error) {
	return run(ctx, s, OpManagers, func(ctx context.Context) (models.ManagersPage, error) {
		return s.backend.AdminManagers(ctx, q)
	}, func(st *State, v models.ManagersPage) {
		st.Managers = slices.Clone(v.Managers)
		st.Pagination[OpManagers] = v.Pagination
	})
}

func (s *Store) FetchSalesExecutives(ctx context.Context, q models.PageQuery) (models.SalesExecutivesPage, error) {
	return run(ctx, s, OpSalesExecutives, func(ctx context.Context) (models.SalesExecutivesPage, error) {
		return s.backend.AdminSalesExecutives(ctx, q)
	}, func(st *State, v models.SalesExecutivesPage) {
		st.SalesExecutives = slices.Clone(v.SalesExecutives)
		st.Pagination[OpSalesExecutives] = v.Pagination
	})
}

func (s *Store) FetchSalesRecords(ctx context.Context, q models.PageQuery) (models.SalesRecordsPage, error) {
	return run(ctx, s, OpSalesRecords, func(ctx context.Context) (models.SalesRecordsPage, error) {
		return s.backend.AdminSalesRecords(ctx, q)
	}, func(st *State, v models.SalesRecordsPage) {
		st.SalesRecords = slices.Clone(v.Leads)
		st.Pagination[OpSalesRecords] = v.Pagination
	})
}

func (s *Store) FetchAuditLogs(ctx context.Context, q models.PageQuery) (models.AuditLogsPage, error) {
	return run(ctx, s, OpAuditLogs, func(ctx context.Context) (models.AuditLogsPage, error) {
		return s.backend.AdminAuditLogs(ctx, q)
	}, func(st *State, v models.AuditLogsPage) {
		st.AuditLogs = slices.Clone(v.AuditLogs)
		st.Pagination[OpAuditLogs] = v.Pagination
	})
}

// Refresh loads the dashboard stats and the first pages of managers and
// sales executives concurrently. A failing request does not stop the others;
// the first error is returned.
func (s *Store) Refresh(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error {
		_, err := s.FetchDashboard(ctx)
		return err
	})
	g.Go(func() error {
		_, err := s.FetchManagers(ctx, models.PageQuery{})
		return err
	})
	g.Go(func() error {
		_, err := s.FetchSalesExecutives(ctx, models.PageQuery{})
		return err
	})
	return g.Wait()
}

func (s *Store) ClearError() {
	s.update(func(st *State) { st.Error = "" })
}

func (s *Store) SetError(msg string) {
	s.update(func(st *State) { st.Error = msg })
}

// Reset returns the store to its initial state.
func (s *Store) Reset() {
	s.update(func(st *State) {
		*st = State{Pagination: initialPagination()}
		s.ops.Reset()
	})
}
