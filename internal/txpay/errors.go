package txpay

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/txpay/txpay-admin/internal/errors"
)

// APIError is a non-2xx response from the TX Pay API.
type APIError struct {
	Status  int
	Message string
	// Fields holds per-field messages when the API names the offending fields.
	Fields map[string]string
}

// Error implements error.
func (e *APIError) Error() string {
	return fmt.Sprintf("txpay api: %d %s", e.Status, e.Message)
}

// Code maps the HTTP status onto an application error code.
func (e *APIError) Code() apperrors.ErrorCode {
	switch {
	case e.Status == http.StatusNotFound:
		return apperrors.ErrCodeNotFound
	case e.Status == http.StatusBadRequest, e.Status == http.StatusUnprocessableEntity:
		return apperrors.ErrCodeValidation
	case e.Status == http.StatusConflict:
		return apperrors.ErrCodeConflict
	case e.Status == http.StatusUnauthorized:
		return apperrors.ErrCodeUnauthorized
	case e.Status == http.StatusForbidden:
		return apperrors.ErrCodeForbidden
	case e.Status == http.StatusRequestTimeout, e.Status == http.StatusGatewayTimeout:
		return apperrors.ErrCodeTimeout
	case e.Status >= 500:
		return apperrors.ErrCodeUnavailable
	default:
		return apperrors.ErrCodeInternal
	}
}

// AppError wraps e with its mapped code. A single named field is carried as the error field.
func (e *APIError) AppError() *apperrors.AppError {
	ae := apperrors.Wrap(e, e.Code(), e.Message)
	if len(e.Fields) == 1 {
		for f := range e.Fields {
			ae.Field = f
		}
	}
	return ae
}

// FieldErrors returns the per-field messages of an API validation error, if any.
func FieldErrors(err error) map[string]string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && len(apiErr.Fields) > 0 {
		out := make(map[string]string, len(apiErr.Fields))
		for k, v := range apiErr.Fields {
			out[k] = v
		}
		return out
	}
	return nil
}

// errorBody covers the error shapes the API returns:
//
//	{"message": "Merchant not found"}
//	{"error": "Unauthorized"}
//	{"message": ["email must be an email", "name should not be empty"]}
//	{"message": "Validation failed", "errors": [{"field": "email", "message": "is taken"}]}
type errorBody struct {
	Message json.RawMessage `json:"message"`
	Error   json.RawMessage `json:"error"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

func decodeAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil {
		apiErr.Message = firstNonEmpty(rawMessage(body.Message), rawMessage(body.Error))
		for _, fe := range body.Errors {
			if fe.Field == "" {
				continue
			}
			if apiErr.Fields == nil {
				apiErr.Fields = map[string]string{}
			}
			apiErr.Fields[fe.Field] = fe.Message
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

// rawMessage reads a JSON string or array of strings.
func rawMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, "; ")
	}
	return ""
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
