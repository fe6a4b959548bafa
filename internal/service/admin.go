package service

import "github.com/felipefaria2026/roleta-pro-ia-v2/internal/models"

// AdminPolicy decides administrator capability for a resolved user.
type AdminPolicy interface {
	IsAdmin(user *models.User) bool
}

// EmailAdminPolicy grants admin to the one configured email address.
//
// TODO: replace with a role column on users once billing exposes roles; call
// sites only depend on AdminPolicy.
type EmailAdminPolicy struct {
	AdminEmail string
}

func (p EmailAdminPolicy) IsAdmin(user *models.User) bool {
	return user != nil && p.AdminEmail != "" && user.Email == p.AdminEmail
}
