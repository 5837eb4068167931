// Package apperr maps storage and validation failures onto a small set of
// sentinel errors that the HTTP layer knows how to report.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when a unique constraint is violated.
	ErrDuplicate = errors.New("duplicate value")

	// ErrProtected is returned when a row cannot be deleted while other rows reference it.
	ErrProtected = errors.New("referenced by other records")

	// ErrInvalidReference is returned when a foreign key points at a missing row.
	ErrInvalidReference = errors.New("referenced record does not exist")

	// ErrOutOfRange is returned when a numeric value does not fit its column.
	ErrOutOfRange = errors.New("value out of range")

	// ErrValidation is the parent of every ValidationError.
	ErrValidation = errors.New("validation failed")
)

// Postgres SQLSTATE codes.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgRestrictViolation   = "23001"
	pgNumericOutOfRange   = "22003"
)

// MySQL server error numbers.
const (
	myNoReferencedRow2 = 1216
	myRowIsReferenced2 = 1217
	myDuplicateEntry   = 1062
	myOutOfRange       = 1264
	myRowIsReferenced  = 1451
	myNoReferencedRow  = 1452
)

// ValidationError reports a single invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Invalid builds a ValidationError for field.
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// Translate wraps a driver or GORM error with the matching sentinel. Errors
// that match nothing are returned unchanged.
func Translate(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", ErrDuplicate, pgErr.ConstraintName)
		case pgRestrictViolation:
			return fmt.Errorf("%w: %s", ErrProtected, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			// Postgres reports both directions with the same code; the
			// message tells a delete from an insert.
			if strings.Contains(pgErr.Detail, "is still referenced") {
				return fmt.Errorf("%w: %s", ErrProtected, pgErr.ConstraintName)
			}
			return fmt.Errorf("%w: %s", ErrInvalidReference, pgErr.ConstraintName)
		case pgNumericOutOfRange:
			return fmt.Errorf("%w: %s", ErrOutOfRange, pgErr.Message)
		}
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case myDuplicateEntry:
			return fmt.Errorf("%w: %s", ErrDuplicate, myErr.Message)
		case myRowIsReferenced, myRowIsReferenced2:
			return fmt.Errorf("%w: %s", ErrProtected, myErr.Message)
		case myNoReferencedRow, myNoReferencedRow2:
			return fmt.Errorf("%w: %s", ErrInvalidReference, myErr.Message)
		case myOutOfRange:
			return fmt.Errorf("%w: %s", ErrOutOfRange, myErr.Message)
		}
	}

	return err
}

// Status returns the HTTP status code for err.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate), errors.Is(err, ErrProtected):
		return http.StatusConflict
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidReference), errors.Is(err, ErrOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-facing text for err. Internal errors are not
// echoed back.
func Message(err error) string {
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		return vErr.Error()
	case errors.Is(err, ErrNotFound):
		return "Record not found"
	case errors.Is(err, ErrDuplicate):
		return "A record with this value already exists"
	case errors.Is(err, ErrProtected):
		return "Cannot delete: record is referenced by other records"
	case errors.Is(err, ErrInvalidReference):
		return "Referenced record does not exist"
	case errors.Is(err, ErrOutOfRange):
		return "Value out of range"
	default:
		return "Internal server error"
	}
}
