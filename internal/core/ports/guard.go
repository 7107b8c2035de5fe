package ports

import (
	"context"

	"github.com/projecthub/portal-api/internal/core/domain"
)

// DenyReason explains a Denied decision.
type DenyReason string

const (
	DenyNotLoggedIn  DenyReason = "not_logged_in"
	DenyRoleMismatch DenyReason = "role_mismatch"
)

// Decision is the outcome of an authorization check. The guard never
// performs the redirect itself; the caller owns that side effect.
type Decision struct {
	Allowed bool
	// User is set when Allowed.
	User *domain.User
	// Reason is set when !Allowed.
	Reason DenyReason
}

// AccessGuard decides whether a view may render for the session identified
// by sid. It always returns a decision, never an error: failures reading the
// session degrade to Denied(not_logged_in).
type AccessGuard interface {
	// Authorize allows the request when a session exists and, if
	// requiredRoles is non-empty, the session's role is a member.
	Authorize(ctx context.Context, sid string, requiredRoles ...string) Decision
}
