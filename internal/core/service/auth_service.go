package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/projecthub/portal-api/internal/core/domain"
	"github.com/projecthub/portal-api/internal/core/ports"
)

// AuthService implements credential validation and session lifecycle.
type AuthService struct {
	repo       ports.IdentityRepository
	sessions   ports.SessionStore
	jwtSecret  string
	sessionTTL time.Duration
	logger     zerolog.Logger
}

func NewAuthService(repo ports.IdentityRepository, sessions ports.SessionStore, jwtSecret string, sessionTTL time.Duration, logger zerolog.Logger) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:       repo,
		sessions:   sessions,
		jwtSecret:  jwtSecret,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// Authenticate verifies one login attempt against the identity store. It is
// idempotent and writes nothing: session persistence is a separate, explicit
// step taken by Login, so the same validator can back other session stores.
func (s *AuthService) Authenticate(ctx context.Context, in ports.LoginInput) (*domain.User, error) {
	if in.Username == "" || in.Password == "" || !domain.ValidRole(in.Role) {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsernameRole(ctx, in.Username, in.Role)
	if err != nil {
		return nil, err
	}

	hash, err := s.repo.PasswordHash(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(in.Password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}

// Login authenticates and, on success, mints a session scope key, saves the
// session record, and signs a token carrying the key.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	user, err := s.Authenticate(ctx, in)
	if err != nil {
		return nil, err
	}

	sid := newSessionID()
	if err := s.sessions.Save(ctx, sid, user); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	token, err := s.generateToken(sid, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", user.Username).Str("role", user.Role).Msg("login")

	return &ports.LoginResult{Token: token, SID: sid, User: user}, nil
}

// Logout destroys the session record. Clearing an already-empty scope is a
// no-op.
func (s *AuthService) Logout(ctx context.Context, sid string) error {
	if err := s.sessions.Clear(ctx, sid); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.logger.Info().Msg("logout")
	return nil
}

// CurrentUser returns the identity bound to sid.
func (s *AuthService) CurrentUser(ctx context.Context, sid string) (*domain.User, error) {
	return s.sessions.Current(ctx, sid)
}

func (s *AuthService) generateToken(sid string, user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sid":      sid,
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(s.sessionTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// newSessionID returns an opaque session scope key.
func newSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// fallback: time-derived key
		return fmt.Sprintf("%x", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}
