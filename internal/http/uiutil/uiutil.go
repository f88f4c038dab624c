// Package uiutil formats values for the console's templates and forms.
package uiutil

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	displayLayout   = "Jan 2, 2006 3:04 PM"
	dateInputLayout = "2006-01-02"
)

// DisplayTime renders t in the server's zone. The zero time is blank.
func DisplayTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(displayLayout)
}

// DateInput is the value of an <input type="date"> for t, in UTC.
func DateInput(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateInputLayout)
}

// ParseDateInput reads a date input as the last second of that UTC day, so
// an expiry date stays valid through the day it names. Blank is nil.
func ParseDateInput(v string) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	day, err := time.Parse(dateInputLayout, v)
	if err != nil {
		return nil, err
	}
	end := day.AddDate(0, 0, 1).Add(-time.Second)
	return &end, nil
}

// Truncate shortens text to limit runes, the last one an ellipsis.
func Truncate(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	if limit <= 1 {
		return "…"
	}
	n := 0
	for i := range text {
		if n == limit-1 {
			return strings.TrimRightFunc(text[:i], unicode.IsSpace) + "…"
		}
		n++
	}
	return text
}
