// Package users caches the user directory used when assigning lead owners.
package users

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/crmkeeper/internal/client/api"
	"github.com/dmitrijs2005/crmkeeper/internal/client/models"
	"github.com/dmitrijs2005/crmkeeper/internal/client/status"
	"github.com/dmitrijs2005/crmkeeper/internal/logging"
)

type Kind string

const (
	OpUsers           Kind = "users"
	OpSalesExecutives Kind = "salesExecutives"
)

type Backend interface {
	Users(ctx context.Context, role models.Role) ([]models.User, error)
}

type State struct {
	Users           []models.User
	SalesExecutives []models.User
	Error           string
	Ops             map[Kind]status.Op
}

func (s State) Loading() bool {
	for _, op := range s.Ops {
		if op.State == status.Pending {
			return true
		}
	}
	return false
}

type Store struct {
	backend Backend
	log     logging.Logger

	mu  sync.Mutex
	st  State
	ops *status.Tracker[Kind]
}

func New(backend Backend, log logging.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	return &Store{backend: backend, log: log.With("store", "users"), ops: status.NewTracker[Kind]()}
}

func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.st
	st.Users = slices.Clone(s.st.Users)
	st.SalesExecutives = slices.Clone(s.st.SalesExecutives)
	st.Ops = s.ops.Snapshot()
	return st
}

func (s *Store) fetch(ctx context.Context, kind Kind, role models.Role, apply func(st *State, us []models.User)) ([]models.User, error) {
	s.mu.Lock()
	tok := s.ops.Begin(kind)
	s.st.Error = ""
	s.mu.Unlock()

	us, err := s.backend.Users(ctx, role)

	s.mu.Lock()
	defer s.mu.Unlock()
	state, out := s.ops.Settle(ctx, tok, err)
	switch state {
	case status.Fulfilled:
		apply(&s.st, slices.Clone(us))
		return us, nil
	case status.Rejected:
		s.st.Error = api.Message(err)
		s.log.Warn(ctx, "request failed", "op", kind, "err", err)
	}
	return nil, out
}

// FetchUsers loads every user.
func (s *Store) FetchUsers(ctx context.Context) ([]models.User, error) {
	return s.fetch(ctx, OpUsers, "", func(st *State, us []models.User) { st.Users = us })
}

// FetchSalesExecutives loads the users with the sales executive role.
func (s *Store) FetchSalesExecutives(ctx context.Context) ([]models.User, error) {
	return s.fetch(ctx, OpSalesExecutives, models.RoleSalesExecutive, func(st *State, us []models.User) { st.SalesExecutives = us })
}

func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.Error = ""
}

func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st = State{}
	s.ops.Reset()
}
