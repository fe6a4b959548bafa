package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/felipefaria2026/roleta-pro-ia-v2/internal/models"
	"gorm.io/gorm"
)

// SubscriptionRepository reads subscription state for identity resolution.
type SubscriptionRepository interface {
	// FindActiveByUserID returns the user's current subscription, or nil
	// when none is active.
	FindActiveByUserID(ctx context.Context, userID int64) (*models.Subscription, error)
}

type subscriptionRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewSubscriptionRepository creates a new SubscriptionRepository instance.
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db, now: time.Now}
}

func (r *subscriptionRepository) FindActiveByUserID(ctx context.Context, userID int64) (*models.Subscription, error) {
	now := r.now().UTC()
	var sub models.Subscription
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, models.SubscriptionActive).
		Where("expires_at IS NULL OR expires_at > ?", now).
		Order("started_at DESC").
		Take(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find active subscription for user %d: %w", userID, err)
	}
	// The row must grant access at the same instant the query used.
	if !sub.IsActiveAt(now) {
		return nil, nil
	}
	return &sub, nil
}
