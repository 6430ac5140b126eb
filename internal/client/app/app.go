// Package app wires the CRM client together: one State value owns the API
// client and every store, and is handed to whoever needs it.
package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/crmkeeper/internal/client/admin"
	"github.com/dmitrijs2005/crmkeeper/internal/client/api"
	"github.com/dmitrijs2005/crmkeeper/internal/client/config"
	"github.com/dmitrijs2005/crmkeeper/internal/client/leads"
	"github.com/dmitrijs2005/crmkeeper/internal/client/notify"
	"github.com/dmitrijs2005/crmkeeper/internal/client/session"
	"github.com/dmitrijs2005/crmkeeper/internal/client/storage"
	"github.com/dmitrijs2005/crmkeeper/internal/client/users"
	"github.com/dmitrijs2005/crmkeeper/internal/logging"
)

type State struct {
	Client  api.Client
	Storage storage.Storage
	Session *session.Store
	Leads   *leads.Store
	Admin   *admin.Store
	Users   *users.Store
	Notes   *notify.Center
	Log     logging.Logger

	mu      sync.Mutex
	nextID  uint64
	scopes  map[uint64]context.CancelFunc
	unwatch func()
}

// New builds the stores over client and store. When the session ends, all
// cached data is dropped and every open scope is cancelled.
func New(client api.Client, store storage.Storage, log logging.Logger) *State {
	if log == nil {
		log = logging.Nop()
	}
	s := &State{
		Client:  client,
		Storage: store,
		Session: session.New(client, store, log),
		Leads:   leads.New(client, log),
		Admin:   admin.New(client, log),
		Users:   users.New(client, log),
		Notes:   notify.NewCenter(log),
		Log:     log,
		scopes:  make(map[uint64]context.CancelFunc),
	}

	s.unwatch = s.Session.Subscribe(func(st session.State) {
		if !st.IsAuthenticated {
			s.onLogout()
		}
	})
	return s
}

// Build creates the HTTP client from cfg and returns the wired State.
func Build(cfg *config.Config, store storage.Storage, log logging.Logger) (*State, error) {
	client, err := api.NewHTTPClient(cfg.BackendURL,
		api.WithTokenSource(session.TokenSource(store)),
		api.WithTimeout(cfg.RequestTimeout),
		api.WithLogger(log),
	)
	if err != nil {
		return nil, fmt.Errorf("api client: %w", err)
	}
	return New(client, store, log), nil
}

// Scope returns a context for one view or command. Its requests are
// cancelled by the returned func, on logout, or by Close.
func (s *State) Scope(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.scopes[id] = cancel
	s.mu.Unlock()

	return ctx, func() {
		s.mu.Lock()
		delete(s.scopes, id)
		s.mu.Unlock()
		cancel()
	}
}

func (s *State) cancelScopes() {
	s.mu.Lock()
	scopes := s.scopes
	s.scopes = make(map[uint64]context.CancelFunc)
	s.mu.Unlock()

	for _, cancel := range scopes {
		cancel()
	}
}

func (s *State) onLogout() {
	s.cancelScopes()
	s.Leads.Reset()
	s.Admin.Reset()
	s.Users.Reset()
}

// Close cancels every open scope and closes the storage.
func (s *State) Close() error {
	s.unwatch()
	s.cancelScopes()
	return s.Storage.Close()
}
