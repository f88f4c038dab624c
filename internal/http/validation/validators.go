// Package validation checks console form input. Problems are reported as
// message keys so handlers can localize them.
package validation

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Message keys reported by the validators.
const (
	KeyRequired        = "error.required"
	KeyTooLong         = "error.too_long"
	KeyTooShort        = "error.too_short"
	KeyInvalidEmail    = "error.invalid_email"
	KeyInvalidOption   = "error.invalid_option"
	KeyInvalidAmount   = "error.invalid_amount"
	KeyInvalidCurrency = "error.invalid_currency"
	KeyInvalidCountry  = "error.invalid_country"
	KeyInvalidDate     = "error.invalid_date"
	KeyInvalidRate     = "error.invalid_rate"
)

// DateLayout is the accepted date format.
const DateLayout = "2006-01-02"

var (
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	currencyRe = regexp.MustCompile(`^[A-Za-z]{3}$`)
	countryRe  = regexp.MustCompile(`^[A-Za-z]{2}$`)
	amountRe   = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
)

// Problem is a failed check: a message key plus its format arguments.
type Problem struct {
	Key  string
	Args []any
}

// Validator checks a value and returns nil when it is valid.
type Validator func(v string) *Problem

func problem(key string, args ...any) *Problem {
	return &Problem{Key: key, Args: args}
}

// Required rejects blank values and values longer than maxLen runes.
func Required(maxLen int) Validator {
	return func(v string) *Problem {
		v = strings.TrimSpace(v)
		if v == "" {
			return problem(KeyRequired)
		}
		if maxLen > 0 && utf8.RuneCountInString(v) > maxLen {
			return problem(KeyTooLong, maxLen)
		}
		return nil
	}
}

// Optional accepts blank values and rejects values longer than maxLen runes.
func Optional(maxLen int) Validator {
	return func(v string) *Problem {
		v = strings.TrimSpace(v)
		if v != "" && utf8.RuneCountInString(v) > maxLen {
			return problem(KeyTooLong, maxLen)
		}
		return nil
	}
}

// MinLen rejects non-blank values shorter than n runes.
func MinLen(n int) Validator {
	return func(v string) *Problem {
		if v != "" && utf8.RuneCountInString(v) < n {
			return problem(KeyTooShort, n)
		}
		return nil
	}
}

// Email rejects values that do not look like an email address. Blank passes.
func Email() Validator {
	return matches(emailRe, KeyInvalidEmail)
}

// Currency requires a three-letter code. Blank passes.
func Currency() Validator {
	return matches(currencyRe, KeyInvalidCurrency)
}

// Country requires a two-letter code. Blank passes.
func Country() Validator {
	return matches(countryRe, KeyInvalidCountry)
}

// Amount requires a positive decimal with at most two fraction digits. Blank passes.
func Amount() Validator {
	return func(v string) *Problem {
		v = strings.TrimSpace(v)
		if v == "" {
			return nil
		}
		if !amountRe.MatchString(v) {
			return problem(KeyInvalidAmount)
		}
		if f, err := strconv.ParseFloat(v, 64); err != nil || f <= 0 {
			return problem(KeyInvalidAmount)
		}
		return nil
	}
}

// Rate requires a percentage between 0 and 100. Blank passes.
func Rate() Validator {
	return func(v string) *Problem {
		v = strings.TrimSpace(v)
		if v == "" {
			return nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 || f > 100 {
			return problem(KeyInvalidRate)
		}
		return nil
	}
}

// Date requires DateLayout. Blank passes.
func Date() Validator {
	return func(v string) *Problem {
		v = strings.TrimSpace(v)
		if v == "" {
			return nil
		}
		if _, err := time.Parse(DateLayout, v); err != nil {
			return problem(KeyInvalidDate)
		}
		return nil
	}
}

// OneOf requires one of options, compared case-insensitively. Blank passes.
func OneOf(options ...string) Validator {
	return func(v string) *Problem {
		v = strings.TrimSpace(v)
		if v == "" {
			return nil
		}
		for _, opt := range options {
			if strings.EqualFold(v, opt) {
				return nil
			}
		}
		return problem(KeyInvalidOption)
	}
}

func matches(re *regexp.Regexp, key string) Validator {
	return func(v string) *Problem {
		v = strings.TrimSpace(v)
		if v == "" || re.MatchString(v) {
			return nil
		}
		return problem(key)
	}
}

// FieldValidator collects the first problem of each field.
type FieldValidator struct {
	problems map[string]Problem
}

// New creates a new FieldValidator instance.
func New() *FieldValidator {
	return &FieldValidator{problems: make(map[string]Problem)}
}

// Validate runs validators against value and stops at the first problem.
func (fv *FieldValidator) Validate(field, value string, validators ...Validator) *FieldValidator {
	for _, v := range validators {
		if p := v(value); p != nil {
			fv.problems[field] = *p
			break
		}
	}
	return fv
}

// Add records a problem for field unless one is already present.
func (fv *FieldValidator) Add(field, key string, args ...any) *FieldValidator {
	if _, ok := fv.problems[field]; !ok {
		fv.problems[field] = Problem{Key: key, Args: args}
	}
	return fv
}

// Valid reports whether no problems were recorded.
func (fv *FieldValidator) Valid() bool {
	return len(fv.problems) == 0
}

// Problems returns the recorded problems by field.
func (fv *FieldValidator) Problems() map[string]Problem {
	return fv.problems
}

// Messages formats every problem with translate.
func (fv *FieldValidator) Messages(translate func(key string, args ...any) string) map[string]string {
	if len(fv.problems) == 0 {
		return nil
	}
	out := make(map[string]string, len(fv.problems))
	for field, p := range fv.problems {
		out[field] = translate(p.Key, p.Args...)
	}
	return out
}
