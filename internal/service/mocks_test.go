package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/felipefaria2026/roleta-pro-ia-v2/internal/models"
	"github.com/felipefaria2026/roleta-pro-ia-v2/internal/repository"
)

// =============================================================================
// Mock UserRepository
// =============================================================================

type mockUserRepository struct {
	findByEmailFunc func(ctx context.Context, email string) (*models.User, error)
	findByIDFunc    func(ctx context.Context, id int64) (*models.User, error)
	createFunc      func(ctx context.Context, user *models.User) error
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return errors.New("not implemented")
}

// =============================================================================
// Mock SubscriptionRepository
// =============================================================================

type mockSubscriptionRepository struct {
	findActiveFunc func(ctx context.Context, userID int64) (*models.Subscription, error)
}

func (m *mockSubscriptionRepository) FindActiveByUserID(ctx context.Context, userID int64) (*models.Subscription, error) {
	if m.findActiveFunc != nil {
		return m.findActiveFunc(ctx, userID)
	}
	return nil, nil
}

// =============================================================================
// In-memory UserRepository
// =============================================================================

// memoryUserRepository mimics the users table: ids are assigned on insert and
// the email column is unique.
type memoryUserRepository struct {
	mu     sync.Mutex
	nextID int64
	byMail map[string]models.User
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{byMail: make(map[string]models.User)}
}

func (r *memoryUserRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.byMail[email]
	if !ok {
		return nil, fmt.Errorf("failed to find user by email: %w", repository.ErrNotFound)
	}
	return &user, nil
}

func (r *memoryUserRepository) FindByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.byMail {
		if user.ID == id {
			u := user
			return &u, nil
		}
	}
	return nil, fmt.Errorf("failed to find user by id %d: %w", id, repository.ErrNotFound)
}

func (r *memoryUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byMail[user.Email]; exists {
		return fmt.Errorf("failed to create user: %w", repository.ErrDuplicateEmail)
	}
	r.nextID++
	user.ID = r.nextID
	r.byMail[user.Email] = *user
	return nil
}

// =============================================================================
// Mock TokenRevoker
// =============================================================================

type mockRevoker struct {
	revokeFunc    func(ctx context.Context, tokenID string, ttl time.Duration) error
	isRevokedFunc func(ctx context.Context, tokenID string) (bool, error)
}

func (m *mockRevoker) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if m.revokeFunc != nil {
		return m.revokeFunc(ctx, tokenID, ttl)
	}
	return nil
}

func (m *mockRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if m.isRevokedFunc != nil {
		return m.isRevokedFunc(ctx, tokenID)
	}
	return false, nil
}
