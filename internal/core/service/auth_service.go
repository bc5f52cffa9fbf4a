package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/talentgate/applicant-registry/internal/core/domain"
	"github.com/talentgate/applicant-registry/internal/core/ports"
)

// LoginLimiter abstracts the failed-attempt throttle (Redis).
type LoginLimiter interface {
	// TooManyFailures reports whether the username has exceeded the
	// allowed number of recent failed attempts.
	TooManyFailures(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}

// AuthService implements administrator registration and login.
type AuthService struct {
	repo      ports.AuthRepository
	limiter   LoginLimiter
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(repo ports.AuthRepository, limiter LoginLimiter, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, limiter: limiter, jwtSecret: jwtSecret, tokenTTL: tokenTTL, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.Admin, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	var missing []string
	if username == "" {
		missing = append(missing, "username")
	}
	if email == "" {
		missing = append(missing, "email")
	}
	if password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return nil, domain.NewValidationError(missing...)
	}

	// Advisory pre-check; the unique indexes are the final arbiter.
	if _, err := s.repo.FindByUsernameOrEmail(ctx, username, email); err == nil {
		return nil, domain.ErrAdminExists
	} else if !errors.Is(err, domain.ErrAdminNotFound) {
		return nil, fmt.Errorf("duplicate check: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	admin := &domain.Admin{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, admin)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", created.Username).Msg("admin registered")
	return created, nil
}

// Login authenticates an administrator and issues a signed bearer token.
// Unknown username, inactive account, and password mismatch are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.Admin, error) {
	if username == "" || password == "" {
		return "", nil, domain.NewValidationError("username", "password")
	}

	if s.limiter != nil {
		throttled, err := s.limiter.TooManyFailures(ctx, username)
		if err != nil {
			s.logger.Warn().Err(err).Msg("login limiter unavailable, proceeding")
		} else if throttled {
			return "", nil, domain.ErrTooManyAttempts
		}
	}

	admin, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			s.recordFailure(ctx, username)
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !admin.IsActive {
		s.recordFailure(ctx, username)
		return "", nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, username)
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, username); err != nil {
			s.logger.Warn().Err(err).Msg("failed to reset login limiter")
		}
	}

	token, err := s.generateToken(admin)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	return token, admin, nil
}

func (s *AuthService) recordFailure(ctx context.Context, username string) {
	if s.limiter == nil {
		return
	}
	if err := s.limiter.RecordFailure(ctx, username); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record login failure")
	}
}

func (s *AuthService) generateToken(admin *domain.Admin) (string, error) {
	claims := jwt.MapClaims{
		"id":       admin.ID,
		"username": admin.Username,
		"role":     domain.RoleAdmin,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
