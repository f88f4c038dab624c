package viewstate

import (
	"strings"
	"time"
	"unicode"

	apperrors "github.com/txpay/txpay-admin/internal/errors"
)

// Tab identifies a dashboard list view.
type Tab string

const (
	TabPartners      Tab = "partners"
	TabMerchants     Tab = "merchants"
	TabTransactions  Tab = "transactions"
	TabAdmins        Tab = "admins"
	TabPaymentLinks  Tab = "paymentLinks"
	TabConfiguration Tab = "configuration"
)

// Tabs returns every tab in display order.
func Tabs() []Tab {
	return []Tab{TabTransactions, TabMerchants, TabPaymentLinks, TabPartners, TabAdmins, TabConfiguration}
}

// ParseTab returns the tab named s, or fallback when s is unknown.
func ParseTab(s string, fallback Tab) Tab {
	for _, t := range Tabs() {
		if string(t) == s {
			return t
		}
	}
	return fallback
}

// Kind describes how a filter value is checked.
type Kind int

const (
	KindText Kind = iota
	KindEnum
	KindCurrency
	KindCountry
	KindDate
	KindID
)

const (
	dateLayout  = "2006-01-02"
	maxIDLength = 64
)

// Field is a known filter key for a tab.
type Field struct {
	Key     string
	Kind    Kind
	Options []string
}

// Schema lists the filters a tab understands.
type Schema struct {
	Tab    Tab
	Fields []Field
}

var (
	fieldSearch = Field{Key: "search", Kind: KindText}

	schemas = map[Tab]Schema{
		TabPartners: {Tab: TabPartners, Fields: []Field{
			fieldSearch,
			{Key: "status", Kind: KindEnum, Options: []string{"ACTIVE", "INACTIVE"}},
		}},
		TabMerchants: {Tab: TabMerchants, Fields: []Field{
			fieldSearch,
			{Key: "status", Kind: KindEnum, Options: []string{"ACTIVE", "INACTIVE", "PENDING", "SUSPENDED"}},
			{Key: "country", Kind: KindCountry},
			{Key: "partnerId", Kind: KindID},
		}},
		TabTransactions: {Tab: TabTransactions, Fields: []Field{
			fieldSearch,
			{Key: "status", Kind: KindEnum, Options: []string{"PENDING", "AUTHORIZED", "CAPTURED", "VOIDED", "REFUNDED", "FAILED"}},
			{Key: "currency", Kind: KindCurrency},
			{Key: "merchantId", Kind: KindID},
			{Key: "from", Kind: KindDate},
			{Key: "to", Kind: KindDate},
		}},
		TabAdmins: {Tab: TabAdmins, Fields: []Field{
			fieldSearch,
			{Key: "role", Kind: KindEnum, Options: []string{"SUPERADMIN", "ADMIN", "SUPPORT"}},
		}},
		TabPaymentLinks: {Tab: TabPaymentLinks, Fields: []Field{
			fieldSearch,
			{Key: "status", Kind: KindEnum, Options: []string{"ACTIVE", "PAID", "EXPIRED", "CANCELLED"}},
			{Key: "currency", Kind: KindCurrency},
			{Key: "merchantId", Kind: KindID},
		}},
		TabConfiguration: {Tab: TabConfiguration},
	}
)

// SchemaFor returns the schema of tab. Unknown tabs have no fields.
func SchemaFor(tab Tab) Schema {
	if s, ok := schemas[tab]; ok {
		return s
	}
	return Schema{Tab: tab}
}

// Field returns the field for key.
func (s Schema) Field(key string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// Validate checks known keys and normalises enums, currencies and countries to
// upper case. Empty values are dropped. Unknown keys pass through unchanged.
func (s Schema) Validate(filters map[string]string) (map[string]string, error) {
	out := make(map[string]string, len(filters))
	for k, v := range filters {
		if v == "" {
			continue
		}
		f, ok := s.Field(k)
		if !ok {
			out[k] = v
			continue
		}
		norm, err := f.normalize(v)
		if err != nil {
			return nil, err
		}
		out[k] = norm
	}
	if from, to := out["from"], out["to"]; from != "" && to != "" && to < from {
		return nil, apperrors.ValidationField("to", "end date is before start date")
	}
	return out, nil
}

func (f Field) normalize(v string) (string, error) {
	switch f.Kind {
	case KindEnum:
		u := strings.ToUpper(strings.TrimSpace(v))
		for _, opt := range f.Options {
			if opt == u {
				return u, nil
			}
		}
		return "", apperrors.ValidationField(f.Key, "must be one of "+strings.Join(f.Options, ", "))
	case KindCurrency:
		u := strings.ToUpper(strings.TrimSpace(v))
		if !isLetters(u, 3) {
			return "", apperrors.ValidationField(f.Key, "must be a 3-letter currency code")
		}
		return u, nil
	case KindCountry:
		u := strings.ToUpper(strings.TrimSpace(v))
		if !isLetters(u, 2) {
			return "", apperrors.ValidationField(f.Key, "must be a 2-letter country code")
		}
		return u, nil
	case KindDate:
		t := strings.TrimSpace(v)
		if _, err := time.Parse(dateLayout, t); err != nil {
			return "", apperrors.ValidationField(f.Key, "must be a date (YYYY-MM-DD)")
		}
		return t, nil
	case KindID:
		t := strings.TrimSpace(v)
		if len(t) > maxIDLength || strings.IndexFunc(t, unicode.IsSpace) >= 0 {
			return "", apperrors.ValidationField(f.Key, "must be an identifier")
		}
		return t, nil
	default:
		return v, nil
	}
}

func isLetters(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
