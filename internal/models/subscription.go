package models

import "time"

// Subscription statuses.
const (
	SubscriptionActive   = "active"
	SubscriptionCanceled = "canceled"
	SubscriptionExpired  = "expired"
)

// Subscription is a user's paid plan. Only the auth core's read path lives
// here; billing owns the writes.
type Subscription struct {
	ID        int64      `json:"id" gorm:"primaryKey"`
	UserID    int64      `json:"user_id" gorm:"index;not null"`
	Plan      string     `json:"plan" gorm:"not null"`
	Status    string     `json:"status" gorm:"not null"`
	StartedAt time.Time  `json:"started_at"`
	ExpiresAt *time.Time `json:"expires_at"`
	CreatedAt time.Time  `json:"created_at"`
}

// TableName returns the database table name for the Subscription model.
func (Subscription) TableName() string {
	return "subscriptions"
}

// IsActiveAt reports whether the subscription grants access at t.
func (s *Subscription) IsActiveAt(t time.Time) bool {
	if s.Status != SubscriptionActive {
		return false
	}
	return s.ExpiresAt == nil || s.ExpiresAt.After(t)
}
