package ports

import (
	"context"

	"github.com/projecthub/portal-api/internal/core/domain"
)

// LoginInput carries one login attempt.
type LoginInput struct {
	Username string
	Password string
	// Role is the role the caller claims to hold; the lookup requires both
	// username and role to match.
	Role string
}

// LoginResult is returned on successful login.
type LoginResult struct {
	// Token is the signed session token handed to the hosting UI.
	Token string
	// SID is the session scope key the token carries.
	SID  string
	User *domain.User
}

// AuthService authenticates users and manages their session records.
type AuthService interface {
	// Authenticate checks credentials against the identity store and returns
	// the verified identity. Side-effect free on failure and on success:
	// writing the session record is Login's job, so the same validator can
	// back other session stores.
	Authenticate(ctx context.Context, in LoginInput) (*domain.User, error)
	// Login authenticates and, on success, establishes a session record.
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
	// Logout destroys the session record for sid. Idempotent.
	Logout(ctx context.Context, sid string) error
	// CurrentUser returns the identity bound to sid, or domain.ErrNoSession.
	CurrentUser(ctx context.Context, sid string) (*domain.User, error)
}
