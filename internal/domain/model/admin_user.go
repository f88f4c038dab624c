//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "time"

// AdminRole is the API-side role of a staff account.
type AdminRole string

const (
	AdminRoleSuperAdmin AdminRole = "SUPERADMIN"
	AdminRoleAdmin      AdminRole = "ADMIN"
	AdminRoleSupport    AdminRole = "SUPPORT"
)

// AdminUser is a staff account with console access.
type AdminUser struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        AdminRole  `json:"role"`
	Active      bool       `json:"active"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// AdminUserRequest is the body of create and update admin user calls.
// Password is only sent on create or when explicitly changed.
type AdminUserRequest struct {
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Role     AdminRole `json:"role"`
	Active   *bool     `json:"active,omitempty"`
	Password string    `json:"password,omitempty"`
}

// GetID returns the entity id.
func (a AdminUser) GetID() string { return a.ID }
