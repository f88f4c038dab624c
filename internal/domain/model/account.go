//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "io"

// Profile is the authenticated caller as reported by the API.
type Profile struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	PartnerID string `json:"partnerId,omitempty"`
}

// LoginRequest is the body of the login call.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the API access token and the caller profile.
type LoginResponse struct {
	AccessToken string  `json:"accessToken"`
	User        Profile `json:"user"`
}

// ContactMessage is a support request sent to TX Pay.
type ContactMessage struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Health is the API health check response.
type Health struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// Export is a downloaded transaction spreadsheet. The caller closes Body.
type Export struct {
	Filename    string
	ContentType string
	Body        io.ReadCloser
}
