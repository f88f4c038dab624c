//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"encoding/json"
	"time"
)

// PaymentLink is a shareable checkout URL for a fixed amount.
type PaymentLink struct {
	ID           string      `json:"id"`
	MerchantID   string      `json:"merchantId"`
	MerchantName string      `json:"merchantName,omitempty"`
	Description  string      `json:"description"`
	Amount       json.Number `json:"amount"`
	Currency     string      `json:"currency"`
	Status       string      `json:"status"`
	URL          string      `json:"url,omitempty"`
	ExpiresAt    *time.Time  `json:"expiresAt,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// PaymentLinkRequest is the body of create and update payment link calls.
type PaymentLinkRequest struct {
	MerchantID  string      `json:"merchantId"`
	Description string      `json:"description"`
	Amount      json.Number `json:"amount"`
	Currency    string      `json:"currency"`
	Status      string      `json:"status,omitempty"`
	ExpiresAt   *time.Time  `json:"expiresAt,omitempty"`
}

// GetID returns the entity id.
func (p PaymentLink) GetID() string { return p.ID }
