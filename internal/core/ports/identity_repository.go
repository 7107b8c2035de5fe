package ports

import (
	"context"

	"github.com/projecthub/portal-api/internal/core/domain"
)

// IdentityRepository is the identity-store collaborator queried by the
// credential validator. Production deployments replace the Mongo-backed
// implementation with a real identity provider without changing this contract.
type IdentityRepository interface {
	// FindByUsernameRole returns the identity matching both username and role,
	// or domain.ErrUserNotFound.
	FindByUsernameRole(ctx context.Context, username, role string) (*domain.User, error)
	// PasswordHash returns the stored secret hash for username, or
	// domain.ErrUserNotFound.
	PasswordHash(ctx context.Context, username string) (string, error)
}
