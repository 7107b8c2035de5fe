package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/projecthub/portal-api/internal/core/domain"
	"github.com/projecthub/portal-api/internal/core/ports"
)

// GuardService is the access guard: a pure decision function over the
// session store. It never redirects and never raises; the transport layer
// owns the side effects of a denial.
type GuardService struct {
	sessions ports.SessionStore
	logger   zerolog.Logger
}

func NewGuardService(sessions ports.SessionStore, logger zerolog.Logger) *GuardService {
	return &GuardService{sessions: sessions, logger: logger}
}

// Authorize checks the session for sid against requiredRoles. An empty role
// set means any authenticated identity is allowed. Session-store read
// failures degrade to a not-logged-in denial rather than an error.
func (g *GuardService) Authorize(ctx context.Context, sid string, requiredRoles ...string) ports.Decision {
	user, err := g.sessions.Current(ctx, sid)
	if err != nil {
		if !errors.Is(err, domain.ErrNoSession) {
			g.logger.Warn().Err(err).Msg("session read failed, denying")
		}
		return ports.Decision{Allowed: false, Reason: ports.DenyNotLoggedIn}
	}

	if len(requiredRoles) > 0 {
		member := false
		for _, r := range requiredRoles {
			if user.Role == r {
				member = true
				break
			}
		}
		if !member {
			return ports.Decision{Allowed: false, Reason: ports.DenyRoleMismatch}
		}
	}

	return ports.Decision{Allowed: true, User: user}
}
