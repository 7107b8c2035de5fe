package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/projecthub/portal-api/internal/core/domain"
	"github.com/projecthub/portal-api/internal/core/ports"
)

func TestGuard_NotLoggedIn(t *testing.T) {
	guard := NewGuardService(newStubSessionStore(), zerolog.Nop())

	d := guard.Authorize(context.Background(), "missing-sid")
	if d.Allowed {
		t.Fatalf("expected denial for empty store")
	}
	if d.Reason != ports.DenyNotLoggedIn {
		t.Fatalf("expected not_logged_in, got %s", d.Reason)
	}
}

func TestGuard_RoleMismatch(t *testing.T) {
	sessions := newStubSessionStore()
	user := testIdentity() // role "client"
	_ = sessions.Save(context.Background(), "sid-1", &user)
	guard := NewGuardService(sessions, zerolog.Nop())

	d := guard.Authorize(context.Background(), "sid-1", domain.RoleAdmin)
	if d.Allowed {
		t.Fatalf("client session must not pass an admin-only check")
	}
	if d.Reason != ports.DenyRoleMismatch {
		t.Fatalf("expected role_mismatch, got %s", d.Reason)
	}
}

func TestGuard_Allowed(t *testing.T) {
	sessions := newStubSessionStore()
	user := domain.User{ID: "9", Username: "root", Role: domain.RoleAdmin, Name: "Admin"}
	_ = sessions.Save(context.Background(), "sid-adm", &user)
	guard := NewGuardService(sessions, zerolog.Nop())

	d := guard.Authorize(context.Background(), "sid-adm", domain.RoleAdmin)
	if !d.Allowed {
		t.Fatalf("expected allowed, got denial %s", d.Reason)
	}
	if d.User == nil || d.User.Username != "root" {
		t.Fatalf("decision must carry the identity, got %+v", d.User)
	}
}

func TestGuard_EmptyRoleSetAllowsAnyAuthenticated(t *testing.T) {
	sessions := newStubSessionStore()
	user := testIdentity()
	_ = sessions.Save(context.Background(), "sid-1", &user)
	guard := NewGuardService(sessions, zerolog.Nop())

	if d := guard.Authorize(context.Background(), "sid-1"); !d.Allowed {
		t.Fatalf("empty role set should allow any authenticated session")
	}
}

func TestGuard_StoreErrorDegradesToDenial(t *testing.T) {
	sessions := newStubSessionStore()
	sessions.loadErr = errors.New("connection refused")
	guard := NewGuardService(sessions, zerolog.Nop())

	d := guard.Authorize(context.Background(), "sid-1", domain.RoleAdmin)
	if d.Allowed || d.Reason != ports.DenyNotLoggedIn {
		t.Fatalf("store failure must degrade to not_logged_in, got %+v", d)
	}
}

// Login followed by an authorization check for the same role must succeed
// end to end.
func TestGuard_LoginThenAuthorize(t *testing.T) {
	repo := newStubIdentityRepo()
	repo.add(t, testIdentity(), "client123")
	sessions := newStubSessionStore()
	auth := NewAuthService(repo, sessions, "secret", time.Hour, zerolog.Nop())
	guard := NewGuardService(sessions, zerolog.Nop())

	result, err := auth.Login(context.Background(), ports.LoginInput{
		Username: "client1", Password: "client123", Role: domain.RoleClient,
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	d := guard.Authorize(context.Background(), result.SID, domain.RoleClient)
	if !d.Allowed {
		t.Fatalf("expected allowed after login, got %s", d.Reason)
	}
}

func TestNavigationFor(t *testing.T) {
	cases := []struct {
		role  string
		label string
	}{
		{domain.RoleAdmin, "All Clients"},
		{domain.RoleClient, "My Customers"},
		{domain.RoleCustomer, "My Projects"},
	}
	for _, tc := range cases {
		links := domain.NavigationFor(tc.role)
		if len(links) != 1 || links[0].Label != tc.label {
			t.Fatalf("role %s: unexpected navigation %+v", tc.role, links)
		}
	}

	if links := domain.NavigationFor("unknown"); len(links) != 0 {
		t.Fatalf("unknown role must get no navigation, got %+v", links)
	}
}
