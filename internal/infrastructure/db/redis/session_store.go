package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/projecthub/portal-api/internal/api/metrics"
	"github.com/projecthub/portal-api/internal/core/domain"
)

const defaultSessionTTL = 24 * time.Hour

// sessionRecord is the stored shape: the identity plus the authenticated
// flag, written in one SET so a reader never sees a partial record.
type sessionRecord struct {
	User          *domain.User `json:"user"`
	Authenticated bool         `json:"authenticated"`
}

// SessionStore keeps session records in Redis.
// Key format: session:<sid>
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
// ttl bounds the browsing-session lifetime; <= 0 selects the default.
func NewSessionStore(client *redis.Client, ttl time.Duration, log zerolog.Logger) *SessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionStore{client: client, ttl: ttl, log: log}
}

// Save records user as the current identity for sid, overwriting any prior
// record without merging.
func (s *SessionStore) Save(ctx context.Context, sid string, user *domain.User) error {
	raw, err := json.Marshal(sessionRecord{User: user, Authenticated: true})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(sid), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Clear removes the record for sid. Deleting a missing key is a no-op, which
// makes Clear idempotent.
func (s *SessionStore) Clear(ctx context.Context, sid string) error {
	if err := s.client.Del(ctx, s.key(sid)).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Current returns the live identity for sid. A missing key and a corrupted
// record both resolve to domain.ErrNoSession; corruption is logged for
// diagnostics, never escalated.
func (s *SessionStore) Current(ctx context.Context, sid string) (*domain.User, error) {
	raw, err := s.client.Get(ctx, s.key(sid)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNoSession
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	user, err := decodeSession(raw)
	if err != nil {
		metrics.SessionCorruptTotal.Inc()
		s.log.Warn().Err(err).Msg("corrupted session record treated as absent")
		return nil, domain.ErrNoSession
	}
	return user, nil
}

// decodeSession parses a stored record. Any shape that cannot prove an
// authenticated identity counts as corrupt.
func decodeSession(raw []byte) (*domain.User, error) {
	var rec sessionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	if !rec.Authenticated || rec.User == nil {
		return nil, errors.New("incomplete session record")
	}
	return rec.User, nil
}

// IsAuthenticated agrees with Current by construction.
func (s *SessionStore) IsAuthenticated(ctx context.Context, sid string) (bool, error) {
	_, err := s.Current(ctx, sid)
	if err != nil {
		if errors.Is(err, domain.ErrNoSession) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *SessionStore) key(sid string) string {
	return "session:" + sid
}
