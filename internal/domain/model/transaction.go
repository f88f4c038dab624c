//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"encoding/json"
	"time"
)

// TransactionStatus is the processing state of a transaction.
type TransactionStatus string

const (
	TransactionStatusPending    TransactionStatus = "PENDING"
	TransactionStatusAuthorized TransactionStatus = "AUTHORIZED"
	TransactionStatusCaptured   TransactionStatus = "CAPTURED"
	TransactionStatusVoided     TransactionStatus = "VOIDED"
	TransactionStatusRefunded   TransactionStatus = "REFUNDED"
	TransactionStatusFailed     TransactionStatus = "FAILED"
)

// TransactionAction is a lifecycle operation performed through the API.
type TransactionAction string

const (
	ActionCapture TransactionAction = "capture"
	ActionRefund  TransactionAction = "refund"
	ActionVoid    TransactionAction = "void"
)

// ParseTransactionAction reports whether s names a supported action.
func ParseTransactionAction(s string) (TransactionAction, bool) {
	switch a := TransactionAction(s); a {
	case ActionCapture, ActionRefund, ActionVoid:
		return a, true
	default:
		return "", false
	}
}

// Transaction is a payment processed for a merchant.
type Transaction struct {
	ID            string            `json:"id"`
	Reference     string            `json:"reference,omitempty"`
	MerchantID    string            `json:"merchantId"`
	MerchantName  string            `json:"merchantName,omitempty"`
	Amount        json.Number       `json:"amount"`
	Currency      string            `json:"currency"`
	Status        TransactionStatus `json:"status"`
	PaymentMethod string            `json:"paymentMethod,omitempty"`
	CustomerEmail string            `json:"customerEmail,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// CanCapture reports whether capture should be offered. The API stays authoritative.
func (t Transaction) CanCapture() bool {
	return t.Status == TransactionStatusAuthorized
}

// CanVoid reports whether void should be offered.
func (t Transaction) CanVoid() bool {
	return t.Status == TransactionStatusAuthorized || t.Status == TransactionStatusPending
}

// CanRefund reports whether refund should be offered.
func (t Transaction) CanRefund() bool {
	return t.Status == TransactionStatusCaptured
}

// Allows reports whether the action should be offered for the transaction.
func (t Transaction) Allows(a TransactionAction) bool {
	switch a {
	case ActionCapture:
		return t.CanCapture()
	case ActionRefund:
		return t.CanRefund()
	case ActionVoid:
		return t.CanVoid()
	default:
		return false
	}
}

// GetID returns the entity id.
func (t Transaction) GetID() string { return t.ID }
