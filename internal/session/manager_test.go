package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/maqsafnadatabase3/Ropoilet/internal/core/domain"
)

// stubIdentity is an in-memory identity service with call counting and an
// optional gate to hold network calls open.
type stubIdentity struct {
	mu        sync.Mutex
	accounts  map[string]string // email -> password
	users     map[string]*domain.User
	sessions  map[string]string // credential -> email
	calls     int
	entered   chan string   // receives email when Authenticate starts, if set
	release   chan struct{} // Authenticate blocks on this, if set
	nextCred  int
}

func newStubIdentity() *stubIdentity {
	return &stubIdentity{
		accounts: make(map[string]string),
		users:    make(map[string]*domain.User),
		sessions: make(map[string]string),
	}
}

func (s *stubIdentity) addUser(email, password, role string) *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := &domain.User{
		ID:       "user-" + email,
		Name:     email,
		Email:    email,
		Role:     role,
		IsActive: true,
		Subscription: domain.Subscription{Tier: domain.TierFree},
	}
	s.accounts[email] = password
	s.users[email] = u
	return u
}

func (s *stubIdentity) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *stubIdentity) issue(email string) string {
	s.nextCred++
	cred := fmt.Sprintf("cred-%s-%d", email, s.nextCred)
	s.sessions[cred] = email
	return cred
}

func (s *stubIdentity) Authenticate(_ context.Context, email, password string) (*domain.User, string, error) {
	if s.entered != nil {
		s.entered <- email
	}
	if s.release != nil {
		<-s.release
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.accounts[email] != password {
		return nil, "", domain.ErrInvalidCredentials
	}
	return s.users[email], s.issue(email), nil
}

func (s *stubIdentity) Register(_ context.Context, email, password, name string) (*domain.User, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if _, exists := s.accounts[email]; exists {
		return nil, "", domain.ErrUserExists
	}
	u := &domain.User{ID: "user-" + email, Name: name, Email: email, Role: domain.RoleUser, IsActive: true}
	s.accounts[email] = password
	s.users[email] = u
	return u, s.issue(email), nil
}

func (s *stubIdentity) Validate(_ context.Context, credential string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	email, ok := s.sessions[credential]
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	return s.users[email], nil
}

func (s *stubIdentity) Invalidate(_ context.Context, credential string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, credential)
	return nil
}

// memStore is an in-memory CredentialStore.
type memStore struct {
	mu   sync.Mutex
	cred string
	set  bool
}

func (m *memStore) Set(credential string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cred, m.set = credential, true
	return nil
}

func (m *memStore) Get() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cred, m.set
}

func (m *memStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cred, m.set = "", false
	return nil
}

func newTestManager(identity Identity, store CredentialStore) *Manager {
	return NewManager(identity, store, zerolog.Nop())
}

func TestSignup_WeakPassword_NoNetworkCall(t *testing.T) {
	identity := newStubIdentity()
	m := newTestManager(identity, &memStore{})

	if ok := m.Signup(context.Background(), "a@b.com", "short", "Alice"); ok {
		t.Fatalf("expected signup to fail for short password")
	}
	if identity.callCount() != 0 {
		t.Fatalf("expected zero network calls, got %d", identity.callCount())
	}
	if msg := m.State().Err; !strings.Contains(msg, "6 characters") {
		t.Fatalf("expected password policy message, got %q", msg)
	}
}

func TestLogin_EmptyFields_NoNetworkCall(t *testing.T) {
	identity := newStubIdentity()
	m := newTestManager(identity, &memStore{})

	if m.Login(context.Background(), "", "pass") {
		t.Fatalf("expected failure for empty email")
	}
	if m.Login(context.Background(), "a@b.com", "") {
		t.Fatalf("expected failure for empty password")
	}
	if identity.callCount() != 0 {
		t.Fatalf("expected zero network calls, got %d", identity.callCount())
	}
}

func TestLogin_Success_PersistsCredential(t *testing.T) {
	identity := newStubIdentity()
	identity.addUser("a@b.com", "validpass", domain.RoleUser)
	store := &memStore{}
	m := newTestManager(identity, store)

	if !m.Login(context.Background(), "a@b.com", "validpass") {
		t.Fatalf("expected login to succeed")
	}

	state := m.State()
	if state.User == nil || state.User.Email != "a@b.com" {
		t.Fatalf("unexpected user: %+v", state.User)
	}
	if state.Err != "" {
		t.Fatalf("expected error cleared, got %q", state.Err)
	}
	if cred, ok := store.Get(); !ok || cred == "" {
		t.Fatalf("expected persisted credential, got %q (ok=%v)", cred, ok)
	}
}

func TestLogin_Failure_LeavesUnauthenticated(t *testing.T) {
	identity := newStubIdentity()
	identity.addUser("a@b.com", "validpass", domain.RoleUser)
	m := newTestManager(identity, &memStore{})

	if m.Login(context.Background(), "a@b.com", "wrongpass") {
		t.Fatalf("expected login to fail")
	}
	state := m.State()
	if state.User != nil {
		t.Fatalf("expected no user, got %+v", state.User)
	}
	if state.Err != "invalid email or password" {
		t.Fatalf("expected credentials message, got %q", state.Err)
	}
}

func TestLogin_WeakPassword_NoNetworkCall(t *testing.T) {
	identity := newStubIdentity()
	identity.addUser("a@b.com", "validpass", domain.RoleUser)
	m := newTestManager(identity, &memStore{})

	if m.Login(context.Background(), "a@b.com", "short") {
		t.Fatalf("expected login to fail for short password")
	}
	if identity.callCount() != 0 {
		t.Fatalf("expected zero network calls, got %d", identity.callCount())
	}
	if msg := m.State().Err; !strings.Contains(msg, "6 characters") {
		t.Fatalf("expected password policy message, got %q", msg)
	}
}

func TestLogin_TransportFailure_DistinctMessage(t *testing.T) {
	m := newTestManager(failingIdentity{}, &memStore{})

	if m.Login(context.Background(), "a@b.com", "validpass") {
		t.Fatalf("expected login to fail")
	}
	if msg := m.State().Err; !strings.Contains(msg, "reach the server") {
		t.Fatalf("expected a connectivity message, got %q", msg)
	}
}

func TestRestore_FreshInstance_SameUser(t *testing.T) {
	identity := newStubIdentity()
	user := identity.addUser("a@b.com", "validpass", domain.RoleUser)
	store := &memStore{}

	first := newTestManager(identity, store)
	if !first.Login(context.Background(), "a@b.com", "validpass") {
		t.Fatalf("login failed")
	}

	second := newTestManager(identity, store)
	if state := second.State(); !state.Loading {
		t.Fatalf("expected fresh manager to start loading")
	}

	second.Restore(context.Background())

	state := second.State()
	if state.Loading {
		t.Fatalf("expected restore to finish bootstrap")
	}
	if state.User == nil || state.User.ID != user.ID {
		t.Fatalf("expected restored user %q, got %+v", user.ID, state.User)
	}
}

func TestRestore_NoCredential_Unauthenticated(t *testing.T) {
	m := newTestManager(newStubIdentity(), &memStore{})
	m.Restore(context.Background())

	state := m.State()
	if state.Loading || state.User != nil {
		t.Fatalf("expected clean unauthenticated state, got %+v", state)
	}
}

func TestRestore_RejectedCredential_ClearsStore(t *testing.T) {
	identity := newStubIdentity()
	store := &memStore{}
	_ = store.Set("cred-that-was-never-issued")

	m := newTestManager(identity, store)
	m.Restore(context.Background())

	if state := m.State(); state.User != nil {
		t.Fatalf("expected unauthenticated, got %+v", state.User)
	}
	if _, ok := store.Get(); ok {
		t.Fatalf("expected rejected credential to be cleared")
	}
}

func TestRestore_TransportFailure_KeepsCredential(t *testing.T) {
	store := &memStore{}
	_ = store.Set("cred-1")

	m := newTestManager(failingIdentity{}, store)
	m.Restore(context.Background())

	if state := m.State(); state.User != nil || state.Loading {
		t.Fatalf("expected unauthenticated, got %+v", state)
	}
	if _, ok := store.Get(); !ok {
		t.Fatalf("credential must survive a transport failure")
	}
}

func TestLogout_ThenRestore_Unauthenticated(t *testing.T) {
	identity := newStubIdentity()
	identity.addUser("a@b.com", "validpass", domain.RoleUser)
	store := &memStore{}
	m := newTestManager(identity, store)

	if !m.Login(context.Background(), "a@b.com", "validpass") {
		t.Fatalf("login failed")
	}
	m.Logout(context.Background())

	if _, ok := store.Get(); ok {
		t.Fatalf("expected credential deleted on logout")
	}

	fresh := newTestManager(identity, store)
	fresh.Restore(context.Background())
	if state := fresh.State(); state.User != nil {
		t.Fatalf("expected no session after logout, got %+v", state.User)
	}
}

func TestLogout_Idempotent(t *testing.T) {
	m := newTestManager(newStubIdentity(), &memStore{})
	m.Logout(context.Background())
	m.Logout(context.Background())

	if state := m.State(); state.User != nil || state.Loading {
		t.Fatalf("expected clean state, got %+v", state)
	}
}

func TestLogin_ErrorsNeverPanic(t *testing.T) {
	identity := newStubIdentity() // unknown account -> error path
	m := newTestManager(identity, &memStore{})

	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("auth failure escaped the manager: %v", r)
		}
	}()
	_ = m.Login(context.Background(), "ghost@b.com", "whatever")
}

func TestConcurrentLogins_LastAppliedWins(t *testing.T) {
	identity := newStubIdentity()
	identity.addUser("first@b.com", "pass-1", domain.RoleUser)
	identity.addUser("second@b.com", "pass-2", domain.RoleUser)
	m := newTestManager(identity, &memStore{})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		m.Login(context.Background(), "first@b.com", "pass-1")
	}()
	go func() {
		defer wg.Done()
		m.Login(context.Background(), "second@b.com", "pass-2")
	}()
	wg.Wait()

	state := m.State()
	if state.User == nil {
		t.Fatalf("expected an authenticated user")
	}
	// Operations serialize, so the final state is exactly one call's result.
	if state.User.Email != "first@b.com" && state.User.Email != "second@b.com" {
		t.Fatalf("final user is a merge or corruption: %+v", state.User)
	}
	if identity.callCount() != 2 {
		t.Fatalf("expected both calls to run, got %d", identity.callCount())
	}
}

func TestLogout_DiscardsInFlightLogin(t *testing.T) {
	identity := newStubIdentity()
	identity.addUser("a@b.com", "validpass", domain.RoleUser)
	identity.entered = make(chan string, 1)
	identity.release = make(chan struct{})
	m := newTestManager(identity, &memStore{})

	done := make(chan bool, 1)
	go func() {
		done <- m.Login(context.Background(), "a@b.com", "validpass")
	}()

	<-identity.entered // login is inside its network call
	go m.Logout(context.Background())
	time.Sleep(20 * time.Millisecond) // logout has invalidated the epoch
	close(identity.release)

	if ok := <-done; ok {
		t.Fatalf("expected stale login to be discarded")
	}
	// Wait for the queued logout to finish, then check nothing resurrected.
	deadline := time.After(time.Second)
	for {
		state := m.State()
		if !state.Loading && state.User == nil {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("session resurrected after logout: %+v", state)
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestSubscribe_NotifiedOnChange(t *testing.T) {
	identity := newStubIdentity()
	identity.addUser("a@b.com", "validpass", domain.RoleUser)
	m := newTestManager(identity, &memStore{})

	var (
		mu     sync.Mutex
		states []State
	)
	cancel := m.Subscribe(func(s State) {
		mu.Lock()
		states = append(states, s)
		mu.Unlock()
	})
	defer cancel()

	m.Login(context.Background(), "a@b.com", "validpass")

	mu.Lock()
	defer mu.Unlock()
	if len(states) < 2 {
		t.Fatalf("expected loading then authenticated notifications, got %d", len(states))
	}
	last := states[len(states)-1]
	if last.User == nil || last.User.Email != "a@b.com" {
		t.Fatalf("unexpected final state: %+v", last)
	}
}

func TestManager_IdentityErrorIsNormalized(t *testing.T) {
	m := newTestManager(failingIdentity{}, &memStore{})

	if m.Login(context.Background(), "a@b.com", "validpass") {
		t.Fatalf("expected network failure to surface as false")
	}
	if msg := m.State().Err; msg == "" {
		t.Fatalf("expected a human-readable message")
	}
}

// failingIdentity simulates total network failure.
type failingIdentity struct{}

var errNetwork = errors.New("connection refused")

func (failingIdentity) Authenticate(context.Context, string, string) (*domain.User, string, error) {
	return nil, "", errNetwork
}
func (failingIdentity) Register(context.Context, string, string, string) (*domain.User, string, error) {
	return nil, "", errNetwork
}
func (failingIdentity) Validate(context.Context, string) (*domain.User, error) {
	return nil, errNetwork
}
func (failingIdentity) Invalidate(context.Context, string) error { return errNetwork }
