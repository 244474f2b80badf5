// Package session implements the client-side session model used by dashboard
// shells: a single owned session state with login/signup/logout/restore
// operations, credential persistence across restarts, and a route guard that
// gates navigation on authentication state and role.
package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/maqsafnadatabase3/Ropoilet/internal/core/domain"
)

const minPasswordLen = 6

// Identity is the opaque remote identity boundary. Implementations must
// return an error for any non-success outcome; the manager normalizes every
// error to a failed result plus message and never lets one escape to callers.
// Authentication rejections must wrap domain.ErrInvalidCredentials so the
// manager can tell them apart from transport failures.
type Identity interface {
	Authenticate(ctx context.Context, email, password string) (*domain.User, string, error)
	Register(ctx context.Context, email, password, name string) (*domain.User, string, error)
	Validate(ctx context.Context, credential string) (*domain.User, error)
	Invalidate(ctx context.Context, credential string) error
}

// CredentialStore is durable client-local storage for the session credential.
type CredentialStore interface {
	Set(credential string) error
	Get() (credential string, ok bool)
	Clear() error
}

// State is a snapshot of the session. User is nil when unauthenticated.
// Loading is true while an auth operation is in flight; consumers must treat
// it as "decision deferred", never as "unauthenticated".
type State struct {
	User    *domain.User
	Loading bool
	Err     string
}

// Manager is the single source of truth for who is logged in. Auth operations
// are serialized: a call issued while another is pending queues behind it.
// A logout invalidates any in-flight operation, so a stale response can never
// resurrect the session.
type Manager struct {
	identity Identity
	creds    CredentialStore
	log      zerolog.Logger

	// opMu serializes Login/Signup/Logout/Restore end to end.
	opMu sync.Mutex
	// epoch is bumped at logout entry, before opMu is taken, so an operation
	// already past its network call discards its result.
	epoch atomic.Uint64

	mu          sync.RWMutex
	state       State
	subscribers []func(State)
}

// NewManager returns a Manager in the loading state: until Restore has run,
// every guard decision is deferred.
func NewManager(identity Identity, creds CredentialStore, log zerolog.Logger) *Manager {
	return &Manager{
		identity: identity,
		creds:    creds,
		log:      log,
		state:    State{Loading: true},
	}
}

// State returns the current session snapshot.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// CurrentUser returns the authenticated user, or nil.
func (m *Manager) CurrentUser() *domain.User {
	return m.State().User
}

// Subscribe registers fn to be called with every state change, and returns a
// cancel function. The initial state is not replayed.
func (m *Manager) Subscribe(fn func(State)) (cancel func()) {
	m.mu.Lock()
	m.subscribers = append(m.subscribers, fn)
	idx := len(m.subscribers) - 1
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		m.subscribers[idx] = nil
		m.mu.Unlock()
	}
}

// Login authenticates with the identity service. Both fields must be
// non-empty and the password must satisfy the policy; no network call is made
// otherwise. On success the credential is persisted and the session becomes
// authenticated. On any failure the session is left unauthenticated and the
// state carries a human-readable message.
func (m *Manager) Login(ctx context.Context, email, password string) bool {
	if email == "" || password == "" {
		m.setState(State{Err: "email and password are required"})
		return false
	}
	if len(password) < minPasswordLen {
		m.setState(State{Err: "password must be at least 6 characters"})
		return false
	}

	m.opMu.Lock()
	defer m.opMu.Unlock()

	epoch := m.epoch.Load()
	m.setState(State{Loading: true})

	user, credential, err := m.identity.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			m.setState(State{Err: "invalid email or password"})
		} else {
			m.setState(State{Err: "could not reach the server"})
		}
		return false
	}
	return m.applyAuth(epoch, user, credential)
}

// Signup creates an account and logs in. The password policy is checked
// before any network call.
func (m *Manager) Signup(ctx context.Context, email, password, name string) bool {
	if email == "" || name == "" {
		m.setState(State{Err: "all fields are required"})
		return false
	}
	if len(password) < minPasswordLen {
		m.setState(State{Err: "password must be at least 6 characters"})
		return false
	}

	m.opMu.Lock()
	defer m.opMu.Unlock()

	epoch := m.epoch.Load()
	m.setState(State{Loading: true})

	user, credential, err := m.identity.Register(ctx, email, password, name)
	if err != nil {
		m.setState(State{Err: "failed to create account"})
		return false
	}
	return m.applyAuth(epoch, user, credential)
}

// Logout clears the session and deletes the persisted credential. Safe to
// call when already logged out. Any auth operation still in flight is
// invalidated immediately.
func (m *Manager) Logout(ctx context.Context) {
	m.epoch.Add(1)

	m.opMu.Lock()
	defer m.opMu.Unlock()

	credential, ok := m.creds.Get()
	if ok && credential != "" {
		// Best effort: local state is cleared regardless.
		if err := m.identity.Invalidate(ctx, credential); err != nil {
			m.log.Warn().Err(err).Msg("failed to invalidate credential remotely")
		}
	}
	if err := m.creds.Clear(); err != nil {
		m.log.Warn().Err(err).Msg("failed to clear stored credential")
	}

	m.setState(State{})
}

// Restore attempts a silent login from the persisted credential. It must run
// once at startup; the manager stays in the loading state until it completes,
// so the guard defers all decisions during bootstrap.
func (m *Manager) Restore(ctx context.Context) {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	epoch := m.epoch.Load()

	credential, ok := m.creds.Get()
	if !ok || credential == "" {
		m.setState(State{})
		return
	}

	user, err := m.identity.Validate(ctx, credential)
	if err != nil {
		// Only a server rejection proves the credential is dead; a transport
		// failure keeps it for the next restore attempt.
		if errors.Is(err, domain.ErrInvalidCredentials) {
			if clearErr := m.creds.Clear(); clearErr != nil {
				m.log.Warn().Err(clearErr).Msg("failed to clear rejected credential")
			}
		}
		m.setState(State{})
		return
	}

	if m.epoch.Load() != epoch {
		m.setState(State{})
		return
	}
	m.setState(State{User: user})
}

// applyAuth commits a successful auth result unless a logout happened while
// the call was in flight.
func (m *Manager) applyAuth(epoch uint64, user *domain.User, credential string) bool {
	if m.epoch.Load() != epoch {
		m.log.Debug().Msg("discarding auth response issued before logout")
		m.setState(State{})
		return false
	}

	if err := m.creds.Set(credential); err != nil {
		m.log.Error().Err(err).Msg("failed to persist credential")
		m.setState(State{Err: "failed to persist session"})
		return false
	}

	m.setState(State{User: user})
	return true
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	m.state = s
	subs := make([]func(State), len(m.subscribers))
	copy(subs, m.subscribers)
	m.mu.Unlock()

	for _, fn := range subs {
		if fn != nil {
			fn(s)
		}
	}
}
