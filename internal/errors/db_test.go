package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapDBError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantCode  ErrorCode
		wantField string
	}{
		{name: "deadline", err: fmt.Errorf("insert: %w", context.DeadlineExceeded), wantCode: ErrCodeTimeout},
		{name: "canceled", err: context.Canceled, wantCode: ErrCodeCanceled},
		{name: "no rows", err: pgx.ErrNoRows, wantCode: ErrCodeNotFound},
		{
			name:      "unique violation names its column",
			err:       &pgconn.PgError{Code: pgerrcode.UniqueViolation, ColumnName: "idempotency_key"},
			wantCode:  ErrCodeConflict,
			wantField: "idempotency_key",
		},
		{
			name:      "unique violation falls back to the detail",
			err:       &pgconn.PgError{Code: pgerrcode.UniqueViolation, Detail: `Key (id)=(42) already exists.`},
			wantCode:  ErrCodeConflict,
			wantField: "id",
		},
		{name: "foreign key", err: &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, wantCode: ErrCodeForeignKey},
		{
			name:      "not null",
			err:       &pgconn.PgError{Code: pgerrcode.NotNullViolation, ColumnName: "action"},
			wantCode:  ErrCodeValidation,
			wantField: "action",
		},
		{name: "statement timeout", err: &pgconn.PgError{Code: pgerrcode.QueryCanceled}, wantCode: ErrCodeTimeout},
		{name: "anything else", err: &pgconn.PgError{Code: pgerrcode.DiskFull}, wantCode: ErrCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MapDBError(tt.err)
			if got := GetCode(err); got != tt.wantCode {
				t.Errorf("code = %q, want %q", got, tt.wantCode)
			}
			if got := GetField(err); got != tt.wantField {
				t.Errorf("field = %q, want %q", got, tt.wantField)
			}
			if !errors.Is(err, tt.err) {
				t.Error("the original error must stay in the chain")
			}
		})
	}
}

func TestMapDBError_NilAndPassthrough(t *testing.T) {
	if MapDBError(nil) != nil {
		t.Error("nil maps to nil")
	}
	plain := errors.New("plain")
	if err := MapDBError(plain); err != plain { //nolint:errorlint // identity is the point
		t.Errorf("unrecognized errors pass through unchanged, got %v", err)
	}
}
