//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListQuery_Values(t *testing.T) {
	q := ListQuery{
		Page:  3,
		Limit: 20,
		Filters: map[string]string{
			"status": "PENDING",
			"search": "",
			"page":   "9",
			"limit":  "500",
		},
	}

	assert.Equal(t, "limit=20&page=3&status=PENDING", q.Values().Encode())
	assert.Equal(t, "", ListQuery{}.Values().Encode())
}

func TestListMeta_Normalize(t *testing.T) {
	tests := []struct {
		name  string
		meta  ListMeta
		query ListQuery
		items int
		want  ListMeta
	}{
		{
			name:  "complete meta untouched",
			meta:  ListMeta{Total: 45, TotalPages: 3, HasNextPage: true, HasPrevPage: true, Page: 2, Limit: 20},
			query: ListQuery{Page: 2, Limit: 20},
			items: 20,
			want:  ListMeta{Total: 45, TotalPages: 3, HasNextPage: true, HasPrevPage: true, Page: 2, Limit: 20},
		},
		{
			name:  "page and limit echoed from request",
			meta:  ListMeta{Total: 45},
			query: ListQuery{Page: 3, Limit: 20},
			items: 5,
			want:  ListMeta{Total: 45, TotalPages: 3, HasNextPage: false, HasPrevPage: true, Page: 3, Limit: 20},
		},
		{
			name:  "missing total uses item count",
			meta:  ListMeta{},
			query: ListQuery{Limit: 20},
			items: 4,
			want:  ListMeta{Total: 4, TotalPages: 1, Page: 1, Limit: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.meta.Normalize(tt.query, tt.items))
		})
	}
}

func TestTransaction_ActionsByStatus(t *testing.T) {
	tests := []struct {
		status                    TransactionStatus
		capture, void, refundable bool
	}{
		{TransactionStatusPending, false, true, false},
		{TransactionStatusAuthorized, true, true, false},
		{TransactionStatusCaptured, false, false, true},
		{TransactionStatusVoided, false, false, false},
		{TransactionStatusRefunded, false, false, false},
		{TransactionStatusFailed, false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			tx := Transaction{Status: tt.status}
			assert.Equal(t, tt.capture, tx.CanCapture())
			assert.Equal(t, tt.void, tx.CanVoid())
			assert.Equal(t, tt.refundable, tx.CanRefund())
			assert.Equal(t, tt.capture, tx.Allows(ActionCapture))
			assert.Equal(t, tt.void, tx.Allows(ActionVoid))
			assert.Equal(t, tt.refundable, tx.Allows(ActionRefund))
		})
	}
}

func TestParseTransactionAction(t *testing.T) {
	a, ok := ParseTransactionAction("refund")
	assert.True(t, ok)
	assert.Equal(t, ActionRefund, a)

	_, ok = ParseTransactionAction("chargeback")
	assert.False(t, ok)
}
