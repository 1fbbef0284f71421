// Package session owns the bearer token lifecycle: acquisition through
// password verification, persistence across restarts, and invalidation
// when the server reports the token stale.
package session

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/feedboard/feedboard/internal/errs"
)

// State is the authentication state of the session.
type State int

const (
	Unauthenticated State = iota
	Challenging
	Authenticated
)

func (s State) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case Challenging:
		return "challenging"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// InvalidPasswordMessage is shown for any failed verification attempt.
// A network failure is deliberately indistinguishable from a wrong
// password.
const InvalidPasswordMessage = "Invalid password. Please try again."

// Verifier exchanges the shared password for a bearer token.
type Verifier interface {
	VerifyPassword(ctx context.Context, password string) (string, error)
}

// Manager is the auth session state machine. A previously stored,
// unexpired token starts the session Authenticated optimistically; the
// first 401 proves otherwise.
type Manager struct {
	mu       sync.Mutex
	state    State
	token    Token
	pending  bool
	lastErr  string
	store    Store
	verifier Verifier
	log      *zap.Logger
}

// NewManager restores a stored token if one is present and valid.
func NewManager(store Store, verifier Verifier, log *zap.Logger) *Manager {
	m := &Manager{state: Unauthenticated, store: store, verifier: verifier, log: log}
	if store != nil {
		tok, err := store.Load()
		switch {
		case err != nil:
			log.Warn("restore token", zap.Error(err))
		case tok.Valid():
			m.token = tok
			m.state = Authenticated
		}
	}
	return m
}

// Token returns the current bearer token, empty when absent. Satisfies
// api.TokenProvider.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token.Value
}

// State returns the current authentication state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// PendingChallenge reports whether a password prompt should be shown.
func (m *Manager) PendingChallenge() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending
}

// LastError returns the message of the last failed verification, empty
// after a success.
func (m *Manager) LastError() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

// RequireAuth reports whether the caller may proceed. When not
// authenticated it raises the password challenge and returns false.
func (m *Manager) RequireAuth() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Authenticated {
		return true
	}
	m.state = Challenging
	m.pending = true
	return false
}

// Verify exchanges the password for a token. On success the token is
// held in memory, persisted, and the challenge dismissed. Any failure
// keeps the challenge open with InvalidPasswordMessage set.
func (m *Manager) Verify(ctx context.Context, password string) error {
	raw, err := m.verifier.VerifyPassword(ctx, password)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		m.state = Challenging
		m.lastErr = InvalidPasswordMessage
		if m.log != nil {
			m.log.Info("password verification failed", zap.Error(err))
		}
		return fmt.Errorf("verify password: %w", errs.ErrAuthFailed)
	}

	m.token = Token{Value: raw, ExpiresAt: tokenExpiry(raw)}
	m.state = Authenticated
	m.pending = false
	m.lastErr = ""
	if m.store != nil {
		if err := m.store.Save(m.token); err != nil && m.log != nil {
			m.log.Warn("persist token", zap.Error(err))
		}
	}
	return nil
}

// Invalidate drops the token after the server reported 401 and raises
// the challenge again.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = Token{}
	m.state = Challenging
	m.pending = true
	if m.store != nil {
		if err := m.store.Clear(); err != nil && m.log != nil {
			m.log.Warn("clear token", zap.Error(err))
		}
	}
}

// CancelChallenge dismisses the prompt without touching a held token.
func (m *Manager) CancelChallenge() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Challenging {
		m.state = Unauthenticated
	}
	m.pending = false
	m.lastErr = ""
}
