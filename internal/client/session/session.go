// Package session holds the authenticated identity of the CLI user and
// mirrors it into durable storage.
//
// The session is all-or-nothing: it is either fully logged out or carries a
// token, a user and that user's role. Login and Register replace it as a
// whole, Logout clears it as a whole, and a failed call leaves it untouched.
//
// Persisted keys (see common.SessionKeys):
//   - crmtoken: the raw bearer token.
//   - crmuser:  the user as JSON.
//   - crmrole:  the role as a JSON string.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/crmkeeper/internal/client/api"
	"github.com/dmitrijs2005/crmkeeper/internal/client/models"
	"github.com/dmitrijs2005/crmkeeper/internal/client/storage"
	"github.com/dmitrijs2005/crmkeeper/internal/client/watch"
	"github.com/dmitrijs2005/crmkeeper/internal/common"
	"github.com/dmitrijs2005/crmkeeper/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// timeNow is swapped in tests.
var timeNow = time.Now

// Authenticator is the part of the backend the session talks to.
type Authenticator interface {
	Login(ctx context.Context, c models.Credentials) (models.AuthResponse, error)
	Register(ctx context.Context, r models.Registration) (models.AuthResponse, error)
}

// State is a copy of the session. IsAuthenticated is true exactly when
// Token is non-empty.
type State struct {
	IsAuthenticated bool
	User            *models.User
	Token           string
	Role            models.Role
}

func (s State) clone() State {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

type Store struct {
	auth  Authenticator
	store storage.Storage
	log   logging.Logger

	mu  sync.RWMutex
	st  State
	hub watch.Hub[State]
}

// New returns a logged-out session. Call Load to restore a persisted one.
func New(auth Authenticator, store storage.Storage, log logging.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	return &Store{auth: auth, store: store, log: log}
}

// Load restores the persisted session. A missing, unreadable, inconsistent
// or expired session leaves the store logged out and erases whatever was
// persisted; only storage failures are returned.
func (s *Store) Load(ctx context.Context) error {
	raw := make(map[string][]byte, len(common.SessionKeys))
	for _, k := range common.SessionKeys {
		v, err := s.store.Get(ctx, k)
		if err != nil {
			return fmt.Errorf("read session: %w", err)
		}
		raw[k] = v
	}

	st, err := decode(raw, timeNow())
	if err != nil {
		s.log.Warn(ctx, "discarding persisted session", "err", err)
		s.set(State{})
		if err := s.store.DeleteMany(ctx, common.SessionKeys...); err != nil {
			return fmt.Errorf("erase session: %w", err)
		}
		return nil
	}

	s.set(st)
	if st.IsAuthenticated {
		s.log.Info(ctx, "session restored", "user_id", st.User.ID, "role", st.Role)
	}
	return nil
}

// decode turns the three persisted values into a session. All absent means
// logged out; anything partial or unparseable is an error.
func decode(raw map[string][]byte, now time.Time) (State, error) {
	tokenRaw, userRaw, roleRaw := raw[common.TokenKey], raw[common.UserKey], raw[common.RoleKey]
	if tokenRaw == nil && userRaw == nil && roleRaw == nil {
		return State{}, nil
	}
	if tokenRaw == nil || userRaw == nil || roleRaw == nil {
		return State{}, fmt.Errorf("%w: incomplete", common.ErrMalformedSession)
	}

	token := parseToken(tokenRaw)
	if token == "" {
		return State{}, fmt.Errorf("%w: empty token", common.ErrMalformedSession)
	}

	var user *models.User
	if err := json.Unmarshal(userRaw, &user); err != nil {
		return State{}, fmt.Errorf("%w: user: %v", common.ErrMalformedSession, err)
	}
	if user == nil {
		return State{}, fmt.Errorf("%w: no user", common.ErrMalformedSession)
	}
	var role models.Role
	if err := json.Unmarshal(roleRaw, &role); err != nil {
		return State{}, fmt.Errorf("%w: role: %v", common.ErrMalformedSession, err)
	}
	if !role.Valid() {
		return State{}, fmt.Errorf("%w: unknown role %q", common.ErrMalformedSession, role)
	}
	if role != user.Role {
		return State{}, fmt.Errorf("%w: role %q does not match user role %q", common.ErrMalformedSession, role, user.Role)
	}

	if exp, ok := TokenExpiry(token); ok && !now.Before(exp) {
		return State{}, fmt.Errorf("%w at %s", common.ErrTokenExpired, exp.Format(time.RFC3339))
	}

	return State{IsAuthenticated: true, User: user, Token: token, Role: role}, nil
}

// parseToken accepts the raw token and, for sessions written by older
// clients, a JSON-quoted one.
func parseToken(b []byte) string {
	if len(b) >= 2 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err == nil {
			return s
		}
	}
	return string(b)
}

// TokenExpiry reads the exp claim of a JWT without verifying it. ok is false
// for opaque tokens and tokens without exp.
func TokenExpiry(token string) (exp time.Time, ok bool) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

func (s *Store) Login(ctx context.Context, c models.Credentials) (State, error) {
	resp, err := s.auth.Login(ctx, c)
	if err != nil {
		s.log.Info(ctx, "login failed", "email", c.Email, "err", err)
		return State{}, err
	}
	return s.establish(ctx, resp, "Login failed")
}

func (s *Store) Register(ctx context.Context, r models.Registration) (State, error) {
	resp, err := s.auth.Register(ctx, r)
	if err != nil {
		s.log.Info(ctx, "registration failed", "email", r.Email, "err", err)
		return State{}, err
	}
	return s.establish(ctx, resp, "Registration failed")
}

// establish persists and then publishes a new session. Nothing changes if
// the reply lacks a token or user, names an unknown role, or if persisting
// fails.
func (s *Store) establish(ctx context.Context, resp models.AuthResponse, fallback string) (State, error) {
	token, user := resp.Grant()
	if token == "" || user == nil {
		msg := resp.Message
		if msg == "" {
			msg = fallback
		}
		s.log.Warn(ctx, "auth reply without token or user")
		return State{}, api.Rejected(msg)
	}
	if !user.Role.Valid() {
		s.log.Warn(ctx, "auth reply with unknown role", "role", user.Role)
		return State{}, api.Rejected(fallback)
	}

	userJSON, err := json.Marshal(user)
	if err != nil {
		return State{}, fmt.Errorf("encode user: %w", err)
	}
	roleJSON, err := json.Marshal(user.Role)
	if err != nil {
		return State{}, fmt.Errorf("encode role: %w", err)
	}

	if err := s.store.SetMany(ctx, map[string][]byte{
		common.TokenKey: []byte(token),
		common.UserKey:  userJSON,
		common.RoleKey:  roleJSON,
	}); err != nil {
		return State{}, fmt.Errorf("persist session: %w", err)
	}

	u := *user
	st := State{IsAuthenticated: true, User: &u, Token: token, Role: u.Role}
	s.set(st)
	s.log.Info(ctx, "logged in", "user_id", u.ID, "role", u.Role)
	return st.clone(), nil
}

// Logout clears the session immediately and erases the persisted copy. The
// in-memory session is cleared even when erasing fails.
func (s *Store) Logout(ctx context.Context) error {
	// subscribers may cancel the caller's context on logout
	ctx = context.WithoutCancel(ctx)
	s.set(State{})
	if err := s.store.DeleteMany(ctx, common.SessionKeys...); err != nil {
		s.log.Error(ctx, "erase session failed", "err", err)
		return fmt.Errorf("erase session: %w", err)
	}
	s.log.Info(ctx, "logged out")
	return nil
}

func (s *Store) set(st State) {
	s.mu.Lock()
	s.st = st
	s.mu.Unlock()
	s.hub.Publish(st.clone())
}

func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.clone()
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.IsAuthenticated
}

// Token implements api.TokenSource with the persisted token.
func (s *Store) Token(ctx context.Context) (string, error) {
	return readToken(ctx, s.store)
}

// TokenSource reads the persisted bearer token on every call, so requests
// always carry what is in storage. It lets the HTTP client be built before
// the Store that depends on it.
func TokenSource(store storage.Storage) api.TokenSource {
	return api.TokenSourceFunc(func(ctx context.Context) (string, error) {
		return readToken(ctx, store)
	})
}

func readToken(ctx context.Context, store storage.Storage) (string, error) {
	b, err := store.Get(ctx, common.TokenKey)
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	if b == nil {
		return "", nil
	}
	return parseToken(b), nil
}

// RequireUser returns the logged-in user or ErrNotAuthenticated.
func (s *Store) RequireUser() (models.User, error) {
	st := s.Snapshot()
	if !st.IsAuthenticated || st.User == nil {
		return models.User{}, common.ErrNotAuthenticated
	}
	return *st.User, nil
}

// Subscribe calls fn with every new session until cancel is called.
func (s *Store) Subscribe(fn func(State)) (cancel func()) {
	return s.hub.Subscribe(fn)
}
