package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"pholio/internal/config"
	"pholio/internal/models"
	"pholio/internal/repository"
	"pholio/internal/security"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingFields      = errors.New("username and password are required")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrSetupKeyRequired   = errors.New("setup key required")
)

const minPasswordLength = 8

type AuthService struct {
	users   AdminUserStore
	revoker TokenRevoker
	cfg     *config.AppConfig
	log     zerolog.Logger
}

func NewAuthService(users AdminUserStore, revoker TokenRevoker, cfg *config.AppConfig, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:   users,
		revoker: revoker,
		cfg:     cfg,
		log:     log,
	}
}

type SignupInput struct {
	Username string
	Password string
	SetupKey string
}

// Signup creates an admin account. The first account bootstraps freely; once
// any admin exists the caller must present the configured setup key.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (models.AdminUser, error) {
	input.Username = strings.TrimSpace(input.Username)

	count, err := s.users.Count(ctx)
	if err != nil {
		return models.AdminUser{}, err
	}
	if count > 0 && input.SetupKey != s.cfg.Security.SetupKey {
		return models.AdminUser{}, ErrSetupKeyRequired
	}

	if input.Username == "" || input.Password == "" {
		return models.AdminUser{}, ErrMissingFields
	}
	if len(input.Password) < minPasswordLength {
		return models.AdminUser{}, ErrWeakPassword
	}

	if _, err := s.users.FindByUsername(ctx, input.Username); err == nil {
		return models.AdminUser{}, repository.ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrAdminNotFound) {
		return models.AdminUser{}, err
	}

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return models.AdminUser{}, err
	}

	user, err := s.users.Create(ctx, input.Username, passwordHash)
	if err != nil {
		return models.AdminUser{}, err
	}

	s.log.Info().Str("username", user.Username).Msg("admin user created")
	return user, nil
}

// Login verifies credentials and mints a session token. Unknown username and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (models.AdminUser, string, error) {
	username = strings.TrimSpace(username)

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return models.AdminUser{}, "", ErrInvalidCredentials
		}
		return models.AdminUser{}, "", err
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return models.AdminUser{}, "", ErrInvalidCredentials
	}

	token, err := security.GenerateSessionToken(
		s.cfg.Security.SessionSecret,
		user.ID,
		user.Username,
		s.cfg.Security.SessionTTL,
	)
	if err != nil {
		return models.AdminUser{}, "", err
	}

	return user, token, nil
}

// Logout revokes the presented session token. Unparseable or already-expired
// tokens are treated as already logged out, so repeated calls are harmless.
func (s *AuthService) Logout(ctx context.Context, tokenStr string) error {
	if tokenStr == "" {
		return nil
	}

	claims, err := security.ParseSessionToken(tokenStr, s.cfg.Security.SessionSecret)
	if err != nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.revoker.Revoke(ctx, claims.ID, ttl); err != nil {
		return err
	}
	return nil
}
