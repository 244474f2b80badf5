package session

import (
	"context"
	"sync"
	"testing"

	"github.com/maqsafnadatabase3/Ropoilet/internal/core/domain"
)

func authedManager(t *testing.T, role string) *Manager {
	t.Helper()
	identity := newStubIdentity()
	identity.addUser("u@b.com", "validpass", role)
	m := newTestManager(identity, &memStore{})
	if !m.Login(context.Background(), "u@b.com", "validpass") {
		t.Fatalf("login failed")
	}
	return m
}

func TestGuard_LoadingDefersDecision(t *testing.T) {
	// Fresh manager: bootstrap not yet run, Loading is true.
	m := newTestManager(newStubIdentity(), &memStore{})
	g := NewGuard(m, nil)

	for _, path := range []string{"/", "/admin", "/does-not-exist"} {
		out := g.Evaluate(path)
		if out.Decision != Pending {
			t.Fatalf("path %s: expected pending during bootstrap, got %s", path, out.Decision)
		}
		if out.RedirectTo != "" {
			t.Fatalf("path %s: no redirect may happen while pending, got %q", path, out.RedirectTo)
		}
	}
}

func TestGuard_UnauthenticatedRedirectsToLogin(t *testing.T) {
	m := newTestManager(newStubIdentity(), &memStore{})
	m.Restore(context.Background()) // no credential -> unauthenticated
	g := NewGuard(m, nil)

	out := g.Evaluate("/projects")
	if out.Decision != Denied {
		t.Fatalf("expected denied, got %s", out.Decision)
	}
	if out.RedirectTo != LoginPath {
		t.Fatalf("expected redirect to %s, got %q", LoginPath, out.RedirectTo)
	}
}

func TestGuard_AdminRoute_ByRole(t *testing.T) {
	tests := []struct {
		role     string
		decision Decision
		redirect string
	}{
		{domain.RoleUser, Denied, HomePath},
		{domain.RoleModerator, Denied, HomePath},
		{domain.RoleAdmin, Allowed, ""},
	}

	for _, tc := range tests {
		g := NewGuard(authedManager(t, tc.role), nil)
		out := g.Evaluate("/admin")
		if out.Decision != tc.decision {
			t.Fatalf("role %s: expected %s, got %s", tc.role, tc.decision, out.Decision)
		}
		if out.RedirectTo != tc.redirect {
			t.Fatalf("role %s: expected redirect %q, got %q", tc.role, tc.redirect, out.RedirectTo)
		}
	}
}

func TestGuard_DeniedAdminRedirectNeverLeaksLogin(t *testing.T) {
	// An authenticated non-admin must land on the default view, not the
	// login page and not an error surface.
	g := NewGuard(authedManager(t, domain.RoleUser), nil)
	out := g.Evaluate("/admin")
	if out.RedirectTo == LoginPath {
		t.Fatalf("under-privileged redirect must not target the login view")
	}
}

func TestGuard_StandardRoutesAllowed(t *testing.T) {
	g := NewGuard(authedManager(t, domain.RoleUser), nil)

	for _, path := range []string{"/", "/projects", "/messages", "/unknown-falls-through"} {
		out := g.Evaluate(path)
		if out.Decision != Allowed {
			t.Fatalf("path %s: expected allowed, got %s", path, out.Decision)
		}
	}
}

func TestGuard_WatchReactsToLogout(t *testing.T) {
	m := authedManager(t, domain.RoleUser)
	g := NewGuard(m, nil)

	var (
		mu       sync.Mutex
		outcomes []Outcome
	)
	cancel := g.Watch("/projects", func(o Outcome) {
		mu.Lock()
		outcomes = append(outcomes, o)
		mu.Unlock()
	})
	defer cancel()

	mu.Lock()
	if len(outcomes) == 0 || outcomes[0].Decision != Allowed {
		mu.Unlock()
		t.Fatalf("expected initial allowed outcome, got %+v", outcomes)
	}
	mu.Unlock()

	m.Logout(context.Background())

	mu.Lock()
	defer mu.Unlock()
	last := outcomes[len(outcomes)-1]
	if last.Decision != Denied || last.RedirectTo != LoginPath {
		t.Fatalf("expected immediate denial after logout, got %+v", last)
	}
}

func TestGuard_VisibleRoutes(t *testing.T) {
	m := newTestManager(newStubIdentity(), &memStore{})
	g := NewGuard(m, nil)

	if routes := g.VisibleRoutes(nil); routes != nil {
		t.Fatalf("expected no menu for logged-out user, got %v", routes)
	}

	user := &domain.User{Role: domain.RoleUser}
	for _, r := range g.VisibleRoutes(user) {
		if r.AdminOnly {
			t.Fatalf("admin entry leaked into standard menu: %+v", r)
		}
	}

	admin := &domain.User{Role: domain.RoleAdmin}
	adminRoutes := g.VisibleRoutes(admin)
	if len(adminRoutes) != len(DefaultRoutes) {
		t.Fatalf("expected full menu for admin, got %d of %d", len(adminRoutes), len(DefaultRoutes))
	}
}
