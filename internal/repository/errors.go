package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"service-tracking/internal/apperr"
)

// IsDuplicate - signals that the error is a duplicate key violation.
func IsDuplicate(err error) bool {
	var pgerr *pgconn.PgError
	return errors.As(err, &pgerr) && pgerr.Code == "23505"
}

// IsNotFound - signals that the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsTransient reports errors that may go away if the whole operation is retried:
// serialization failures, deadlocks, lock timeouts and lost connections.
func IsTransient(err error) bool {
	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		switch pgerr.Code {
		case "40001", "40P01", "55P03", "57P01", "53300":
			return true
		}
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return pgconn.Timeout(err) || pgconn.SafeToRetry(err)
}

// wrap annotates err and tags it with the matching apperr category.
func wrap(err error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	switch {
	case IsNotFound(err):
		return fmt.Errorf("%s: %w", msg, apperr.ErrNotFound)
	case IsDuplicate(err):
		return fmt.Errorf("%s: %w: %v", msg, apperr.ErrConflict, err)
	case IsTransient(err):
		return fmt.Errorf("%s: %w: %v", msg, apperr.ErrTransient, err)
	default:
		return fmt.Errorf("%s: %w", msg, err)
	}
}
