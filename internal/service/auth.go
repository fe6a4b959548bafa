package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/felipefaria2026/roleta-pro-ia-v2/internal/models"
	"github.com/felipefaria2026/roleta-pro-ia-v2/internal/repository"
)

// MinPasswordLength is the shortest password Register accepts.
const MinPasswordLength = 8

// TokenTypeBearer is the token_type reported to clients.
const TokenTypeBearer = "bearer"

// RegisterInput carries the fields needed to create an account.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// AuthService implements the account endpoints.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (*LoginResponse, error)
	Logout(ctx context.Context, claims *Claims) error
}

type authService struct {
	userRepo   repository.UserRepository
	hasher     PasswordHasher
	jwtService JWTService
	revoker    TokenRevoker
	logger     *slog.Logger
	now        func() time.Time
}

// NewAuthService creates a new AuthService instance. A nil revoker keeps
// logout stateless.
func NewAuthService(
	userRepo repository.UserRepository,
	hasher PasswordHasher,
	jwtService JWTService,
	revoker TokenRevoker,
	logger *slog.Logger,
) AuthService {
	if revoker == nil {
		revoker = NoopRevoker{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &authService{
		userRepo:   userRepo,
		hasher:     hasher,
		jwtService: jwtService,
		revoker:    revoker,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if err := validateRegisterInput(input); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        input.Email,
		Name:         strings.TrimSpace(input.Name),
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.logger.InfoContext(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.ErrorContext(ctx, "login lookup failed", "error", err)
		}
		s.hasher.VerifyDummy(password)
		return nil, ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.jwtService.GenerateAccessToken(user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	return &LoginResponse{
		AccessToken: accessToken,
		TokenType:   TokenTypeBearer,
		ExpiresIn:   int64(s.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

// Logout is a no-op unless a revoker is configured; without one the token
// stays valid until it expires.
func (s *authService) Logout(ctx context.Context, claims *Claims) error {
	if claims == nil {
		return ErrUnauthenticated
	}
	if err := s.revoker.Revoke(ctx, claims.ID, claims.RemainingLifetime(s.now())); err != nil {
		return err
	}
	return nil
}

func validateRegisterInput(input RegisterInput) error {
	if input.Email == "" || !strings.Contains(input.Email, "@") {
		return fmt.Errorf("%w: email is invalid", ErrValidation)
	}
	if len(input.Password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, MinPasswordLength)
	}
	if len(input.Password) > MaxPasswordLength {
		return fmt.Errorf("%w: password must be at most %d bytes", ErrValidation, MaxPasswordLength)
	}
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	return nil
}
