package client

import (
	"fmt"
	"sync"
)

// State is the session lifecycle:
//
//	Restoring -> SignedOut            (no persisted token)
//	Restoring -> Optimistic           (persisted token reused without a round trip)
//	Optimistic -> Verified            (first protected call succeeded)
//	Optimistic|Verified -> SignedOut  (401 from the server, or explicit logout)
type State int

const (
	StateRestoring State = iota
	StateSignedOut
	StateOptimistic
	StateVerified
)

func (s State) String() string {
	switch s {
	case StateRestoring:
		return "restoring"
	case StateSignedOut:
		return "signed out"
	case StateOptimistic:
		return "signed in (unverified)"
	case StateVerified:
		return "signed in"
	default:
		return "unknown"
	}
}

// SessionManager owns the locally cached token: it restores it on startup,
// hands it to the API client for every outgoing request, and drops it when
// the server rejects it.
type SessionManager struct {
	mu    sync.Mutex
	store *TokenStore
	state State
	token string
}

func NewSessionManager(store *TokenStore) *SessionManager {
	return &SessionManager{store: store, state: StateRestoring}
}

// Restore reads any persisted token. A present token is trusted without a
// server round trip; the first protected call settles whether it still holds.
func (m *SessionManager) Restore() (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	token, ok, err := m.store.Get(sessionTokenKey)
	if err != nil {
		return m.state, fmt.Errorf("restore session: %w", err)
	}
	if !ok || token == "" {
		m.state = StateSignedOut
		return m.state, nil
	}
	m.token = token
	m.state = StateOptimistic
	return m.state, nil
}

// SetToken persists the token before updating in-memory state, so a crash
// between login and navigation never loses the session.
func (m *SessionManager) SetToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Set(sessionTokenKey, token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	m.token = token
	m.state = StateOptimistic
	return nil
}

// Token returns the current token, or "" when signed out. Callers send
// unauthenticated requests in that case and let the server reject them.
func (m *SessionManager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func (m *SessionManager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// MarkVerified records that a protected call succeeded with this token.
func (m *SessionManager) MarkVerified() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateOptimistic {
		m.state = StateVerified
	}
}

// Invalidate clears the session after the server rejected the token. It
// reports whether this call performed the transition, so the caller can
// route to login exactly once even if several in-flight requests got 401s.
func (m *SessionManager) Invalidate() (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateSignedOut {
		return false, nil
	}
	if err := m.store.Delete(sessionTokenKey); err != nil {
		return false, fmt.Errorf("clear token: %w", err)
	}
	m.token = ""
	m.state = StateSignedOut
	return true, nil
}

// SignOut is an explicit logout: clear the persisted token.
func (m *SessionManager) SignOut() error {
	_, err := m.Invalidate()
	return err
}
