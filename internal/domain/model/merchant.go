//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "time"

// MerchantStatus is the lifecycle state of a merchant account.
type MerchantStatus string

const (
	MerchantStatusActive    MerchantStatus = "ACTIVE"
	MerchantStatusInactive  MerchantStatus = "INACTIVE"
	MerchantStatusPending   MerchantStatus = "PENDING"
	MerchantStatusSuspended MerchantStatus = "SUSPENDED"
)

// Merchant is a business accepting payments through TX Pay.
type Merchant struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	Phone       string         `json:"phone,omitempty"`
	Country     string         `json:"country"`
	Status      MerchantStatus `json:"status"`
	PartnerID   string         `json:"partnerId,omitempty"`
	PartnerName string         `json:"partnerName,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// MerchantRequest is the body of create and update merchant calls.
type MerchantRequest struct {
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Phone     string         `json:"phone,omitempty"`
	Country   string         `json:"country"`
	Status    MerchantStatus `json:"status,omitempty"`
	PartnerID string         `json:"partnerId,omitempty"`
}

// MerchantOption is a compact merchant reference for dropdowns.
type MerchantOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GetID returns the entity id.
func (m Merchant) GetID() string { return m.ID }
