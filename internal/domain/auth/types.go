// Package auth holds the console's identity, session and role types.
package auth

import "time"

// Role is the console permission level derived from the API role at login.
// Sessions store it as a plain string.
type Role string

const (
	RoleAdmin   Role = "admin"
	RolePartner Role = "partner"
	RoleGuest   Role = "guest"
)

// rank orders roles for hierarchy checks: guest < partner < admin.
func (r Role) rank() int {
	switch r {
	case RoleAdmin:
		return 2
	case RolePartner:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether r grants everything required grants.
func (r Role) AtLeast(required Role) bool {
	return r.rank() >= required.rank()
}

// Identity is what a provider reports for a successful login. APIRole is the
// API's own role name; a RoleMapper turns it into a Role.
type Identity struct {
	UserID    string
	Name      string
	Email     string
	APIRole   string
	PartnerID string
	APIToken  string
	ExpiresAt time.Time // zero when the provider did not report one
}

// Session is a signed-in console user, stored server side under an opaque ID.
// APIToken is sent to the TX Pay API and never to the browser.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	PartnerID string    `json:"partner_id,omitempty"`
	APIToken  string    `json:"api_token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s Session) IsGuest() bool { return s.Role == RoleGuest }

func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }
