package errors

import (
	"context"
	"errors"
	"regexp"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// keyFieldPattern pulls the column out of "Key (column)=(value) already exists.".
var keyFieldPattern = regexp.MustCompile(`Key \(([^)]+)\)=`)

type pgMapping struct {
	code    ErrorCode
	message string
}

var pgMappings = map[string]pgMapping{
	pgerrcode.UniqueViolation:     {ErrCodeConflict, "This entry was already recorded."},
	pgerrcode.ForeignKeyViolation: {ErrCodeForeignKey, "A referenced record does not exist."},
	pgerrcode.CheckViolation:      {ErrCodeValidation, "Invalid data. Please check your input."},
	pgerrcode.NotNullViolation:    {ErrCodeValidation, "Invalid data. Please check your input."},
	pgerrcode.QueryCanceled:       {ErrCodeTimeout, "The audit database took too long to answer."},
}

// MapDBError categorizes an audit database error. Context errors, missing
// rows and Postgres errors become AppErrors; anything else is returned as is.
func MapDBError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return Wrap(err, ErrCodeTimeout, "Request timed out. Please try again.")
	case errors.Is(err, context.Canceled):
		return Wrap(err, ErrCodeCanceled, "Request was canceled.")
	case errors.Is(err, pgx.ErrNoRows):
		return Wrap(err, ErrCodeNotFound, "Resource not found")
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	m, ok := pgMappings[pgErr.Code]
	if !ok {
		return Wrap(pgErr, ErrCodeInternal, "A database error occurred. Please try again.")
	}
	appErr := Wrap(pgErr, m.code, m.message)
	appErr.Field = pgErr.ColumnName
	if appErr.Field == "" && m.code == ErrCodeConflict {
		if match := keyFieldPattern.FindStringSubmatch(pgErr.Detail); len(match) == 2 {
			appErr.Field = match[1]
		}
	}
	return appErr
}
