package uiutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateInputRoundTrip(t *testing.T) {
	exp, err := ParseDateInput(" 2026-03-31 ")
	require.NoError(t, err)
	require.NotNil(t, exp)
	assert.Equal(t, time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC), *exp)
	assert.Equal(t, "2026-03-31", DateInput(exp))

	blank, err := ParseDateInput("")
	require.NoError(t, err)
	assert.Nil(t, blank)
	assert.Empty(t, DateInput(nil))

	_, err = ParseDateInput("31/03/2026")
	assert.Error(t, err)
}

func TestDisplayTime(t *testing.T) {
	assert.Empty(t, DisplayTime(time.Time{}))
	ts := time.Date(2026, 3, 1, 15, 4, 0, 0, time.Local)
	assert.Equal(t, "Mar 1, 2026 3:04 PM", DisplayTime(ts))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		text  string
		limit int
		want  string
	}{
		{text: "Acme Tacos", limit: 20, want: "Acme Tacos"},
		{text: "Acme Tacos", limit: 10, want: "Acme Tacos"},
		{text: "Acme Tacos", limit: 6, want: "Acme…"},
		{text: "Señor Café", limit: 5, want: "Seño…"},
		{text: "Acme", limit: 1, want: "…"},
		{text: "Acme", limit: 0, want: "…"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Truncate(tt.text, tt.limit), "%q/%d", tt.text, tt.limit)
	}
}
