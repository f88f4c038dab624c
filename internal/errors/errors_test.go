package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	if got := NotFound("merchant not found").Error(); got != "merchant not found" {
		t.Errorf("Error() = %q", got)
	}
	err := Wrap(errors.New("connection refused"), ErrCodeUnavailable, "list merchants")
	if got := err.Error(); got != "list merchants: connection refused" {
		t.Errorf("Error() = %q", got)
	}
}

func TestWrap_KeepsCause(t *testing.T) {
	cause := errors.New("dial tcp: i/o timeout")
	err := fmt.Errorf("list partners: %w", Wrapf(cause, ErrCodeTimeout, "page %d", 3))

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
	if !Is(err, ErrCodeTimeout) {
		t.Errorf("code = %q, want timeout", GetCode(err))
	}
	if GetMessage(err) != "page 3" {
		t.Errorf("message = %q", GetMessage(err))
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		err  *AppError
		code ErrorCode
	}{
		{NotFound("x"), ErrCodeNotFound},
		{Conflict("x"), ErrCodeConflict},
		{Validation("x"), ErrCodeValidation},
		{Validationf("unsupported action %q", "explode"), ErrCodeValidation},
		{Unauthorized("x"), ErrCodeUnauthorized},
		{Forbidden("x"), ErrCodeForbidden},
		{Unavailable("x"), ErrCodeUnavailable},
		{Internal("x"), ErrCodeInternal},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Code = %q, want %q", tt.err.Code, tt.code)
			}
		})
	}
	if Validationf("unsupported action %q", "explode").Message != `unsupported action "explode"` {
		t.Error("Validationf should format its message")
	}
	if Validation("discount must be < 100%").Message != "discount must be < 100%" {
		t.Error("a literal percent must survive")
	}
}

func TestPredicates(t *testing.T) {
	wrapped := func(e error) error { return fmt.Errorf("outer: %w", e) }
	checks := map[string]struct {
		is  func(error) bool
		err error
	}{
		"conflict":     {IsConflict, Conflict("x")},
		"validation":   {IsValidation, Validation("x")},
		"unauthorized": {IsUnauthorized, Unauthorized("x")},
		"unavailable":  {IsUnavailable, Unavailable("x")},
		"canceled":     {IsCanceled, New(ErrCodeCanceled, "x")},
	}
	for name, c := range checks {
		t.Run(name, func(t *testing.T) {
			if !c.is(wrapped(c.err)) {
				t.Error("predicate should see through wrapping")
			}
			if c.is(errors.New("plain")) {
				t.Error("plain errors carry no code")
			}
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := map[ErrorCode]int{
		ErrCodeNotFound:     http.StatusNotFound,
		ErrCodeForeignKey:   http.StatusConflict,
		ErrCodeValidation:   http.StatusUnprocessableEntity,
		ErrCodeUnavailable:  http.StatusBadGateway,
		ErrCodeTimeout:      http.StatusGatewayTimeout,
		ErrCodeCanceled:     http.StatusRequestTimeout,
		ErrCodeInternal:     http.StatusInternalServerError,
		ErrorCode("bogus"):  http.StatusInternalServerError,
		ErrCodeUnauthorized: http.StatusUnauthorized,
	}
	for code, want := range tests {
		if got := code.HTTPStatus(); got != want {
			t.Errorf("%q.HTTPStatus() = %d, want %d", code, got, want)
		}
	}
}

func TestValidationField(t *testing.T) {
	err := fmt.Errorf("create merchant: %w", ValidationField("email", "Email is invalid"))

	if got := GetField(err); got != "email" {
		t.Errorf("GetField() = %q, want email", got)
	}
	if got := GetMessage(err); got != "Email is invalid" {
		t.Errorf("GetMessage() = %q", got)
	}
}

func TestNilAndPlainErrors(t *testing.T) {
	if Wrap(nil, ErrCodeInternal, "x") != nil || Wrapf(nil, ErrCodeInternal, "x %d", 1) != nil {
		t.Error("wrapping nil should stay nil")
	}
	if got := GetMessage(errors.New("boom")); got != "boom" {
		t.Errorf("GetMessage() = %q, want boom", got)
	}
	if GetMessage(nil) != "" || GetCode(nil) != "" || GetField(nil) != "" {
		t.Error("nil error carries nothing")
	}
}
