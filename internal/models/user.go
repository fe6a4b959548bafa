// Package models contains data models for the auth service.
package models

import "time"

// User represents an authenticated user in the system.
//
// ActiveSubscription and IsAdmin are derived on every identity resolution
// and are never persisted.
type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	Name         string    `json:"name" gorm:"not null"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	ActiveSubscription *Subscription `json:"active_subscription" gorm:"-"`
	IsAdmin            bool          `json:"is_admin" gorm:"-"`
}

// TableName returns the database table name for the User model.
func (User) TableName() string {
	return "users"
}
