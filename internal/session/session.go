// Package session persists the bearer credential obtained from the backend
// login endpoint. The Session is an explicit value injected into the API
// client rather than a mutable singleton, so login and logout flow through a
// single owner.
package session

import (
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"convertly/internal/config"
)

// ErrNotAuthenticated is returned when an operation requires a stored token.
var ErrNotAuthenticated = errors.New("not logged in")

const stateFileName = "session.json"

// Session holds the bearer token and per-install client identifier. All
// methods are safe for concurrent use.
type Session struct {
	store Store

	mu    sync.RWMutex
	state State
}

// State is the persisted session document.
type State struct {
	Token      string    `json:"token"`
	Username   string    `json:"username"`
	ClientID   string    `json:"client_id"`
	LoggedInAt time.Time `json:"logged_in_at"`
}

// Option customises Session construction.
type Option func(*Session)

// WithStore injects a custom persistence layer.
func WithStore(store Store) Option {
	return func(s *Session) {
		s.store = store
	}
}

// Open loads (or initializes) the session state under the configured data
// directory. A client identifier is assigned and persisted on first use.
func Open(cfg *config.Config, opts ...Option) (*Session, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	sess := &Session{
		store: NewFileStore(filepath.Join(cfg.Paths.DataDir, stateFileName)),
	}
	for _, opt := range opts {
		opt(sess)
	}
	if sess.store == nil {
		sess.store = NewFileStore(filepath.Join(cfg.Paths.DataDir, stateFileName))
	}

	state, err := sess.store.Load()
	if err != nil {
		return nil, err
	}

	dirty := false
	if state.ClientID == "" {
		state.ClientID = strings.ReplaceAll(uuid.New().String(), "-", "")
		dirty = true
	}
	sess.state = state

	if dirty {
		if err := sess.store.Save(sess.state); err != nil {
			return nil, err
		}
	}
	return sess, nil
}

// Token returns the stored bearer token, empty when logged out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

// Username returns the account name recorded at login.
func (s *Session) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Username
}

// ClientID returns the per-install identifier.
func (s *Session) ClientID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.ClientID
}

// Authenticated reports whether a bearer token is present. No expiry is
// tracked; the backend rejects stale tokens on use.
func (s *Session) Authenticated() bool {
	return strings.TrimSpace(s.Token()) != ""
}

// SetToken records a freshly issued bearer token and persists the state.
func (s *Session) SetToken(token, username string) error {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return errors.New("token is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	updated := s.state
	updated.Token = trimmed
	updated.Username = strings.TrimSpace(username)
	updated.LoggedInAt = time.Now().UTC()

	if err := s.store.Save(updated); err != nil {
		return err
	}
	s.state = updated
	return nil
}

// Clear removes the token and username while keeping the client identifier.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := s.state
	updated.Token = ""
	updated.Username = ""
	updated.LoggedInAt = time.Time{}

	if err := s.store.Save(updated); err != nil {
		return err
	}
	s.state = updated
	return nil
}
