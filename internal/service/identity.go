package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/felipefaria2026/roleta-pro-ia-v2/internal/models"
	"github.com/felipefaria2026/roleta-pro-ia-v2/internal/repository"
)

// IdentityResolver turns a bearer token into a fully resolved user.
type IdentityResolver interface {
	// Resolve returns ErrUnauthenticated for every failure.
	Resolve(ctx context.Context, token string) (*models.User, *Claims, error)
}

type identityResolver struct {
	jwtService JWTService
	userRepo   repository.UserRepository
	subsRepo   repository.SubscriptionRepository
	admin      AdminPolicy
	revoker    TokenRevoker
	logger     *slog.Logger
}

// NewIdentityResolver creates a new IdentityResolver instance. A nil revoker
// means tokens cannot be revoked.
func NewIdentityResolver(
	jwtService JWTService,
	userRepo repository.UserRepository,
	subsRepo repository.SubscriptionRepository,
	admin AdminPolicy,
	revoker TokenRevoker,
	logger *slog.Logger,
) IdentityResolver {
	if revoker == nil {
		revoker = NoopRevoker{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &identityResolver{
		jwtService: jwtService,
		userRepo:   userRepo,
		subsRepo:   subsRepo,
		admin:      admin,
		revoker:    revoker,
		logger:     logger,
	}
}

func (r *identityResolver) Resolve(ctx context.Context, token string) (*models.User, *Claims, error) {
	if token == "" {
		return nil, nil, ErrUnauthenticated
	}

	claims, err := r.jwtService.ValidateToken(token)
	if err != nil {
		r.logger.DebugContext(ctx, "token rejected", "reason", err)
		return nil, nil, ErrUnauthenticated
	}

	revoked, err := r.revoker.IsRevoked(ctx, claims.ID)
	if err != nil {
		r.logger.ErrorContext(ctx, "revocation lookup failed", "error", err)
		return nil, nil, ErrUnauthenticated
	}
	if revoked {
		return nil, nil, ErrUnauthenticated
	}

	// A fresh struct per lookup keeps derived fields scoped to this request.
	user, err := r.userRepo.FindByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			r.logger.InfoContext(ctx, "token subject not resolvable", "token_id", claims.ID)
		} else {
			r.logger.ErrorContext(ctx, "user lookup failed", "token_id", claims.ID, "error", err)
		}
		return nil, nil, ErrUnauthenticated
	}

	sub, err := r.subsRepo.FindActiveByUserID(ctx, user.ID)
	if err != nil {
		r.logger.ErrorContext(ctx, "subscription lookup failed", "user_id", user.ID, "error", err)
		return nil, nil, ErrUnauthenticated
	}
	user.ActiveSubscription = sub
	user.IsAdmin = r.admin.IsAdmin(user)

	return user, claims, nil
}
