package ports

import (
	"context"

	"github.com/projecthub/portal-api/internal/core/domain"
)

// SessionStore holds at most one current identity per session scope (sid).
// It is the only cross-component mutable shared state: written by the
// login/logout flow, read by the access guard and any number of views.
// A record is written in a single atomic save, so readers never observe a
// half-initialized identity.
type SessionStore interface {
	// Save records user as the current identity for sid, overwriting any
	// prior record without merging.
	Save(ctx context.Context, sid string, user *domain.User) error
	// Clear removes the current identity for sid. Idempotent: clearing an
	// already-empty scope is a no-op, not an error.
	Clear(ctx context.Context, sid string) error
	// Current returns the live identity for sid, or domain.ErrNoSession when
	// absent. Corrupted stored data is treated as absent, never as a fatal
	// error.
	Current(ctx context.Context, sid string) (*domain.User, error)
	// IsAuthenticated agrees with Current: true iff Current would succeed.
	IsAuthenticated(ctx context.Context, sid string) (bool, error)
}
