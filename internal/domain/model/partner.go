//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"encoding/json"
	"time"
)

// Partner is a reseller account that onboards merchants.
type Partner struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	Status         string      `json:"status"`
	CommissionRate json.Number `json:"commissionRate,omitempty"`
	MerchantCount  int         `json:"merchantCount,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
}

// PartnerRequest is the body of create and update partner calls.
type PartnerRequest struct {
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	Status         string      `json:"status,omitempty"`
	CommissionRate json.Number `json:"commissionRate,omitempty"`
}

// GetID returns the entity id.
func (p Partner) GetID() string { return p.ID }
