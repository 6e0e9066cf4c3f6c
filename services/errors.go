package services

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

var (
	ErrNotFound              = errors.New("record not found")
	ErrValidation            = errors.New("validation failed")
	ErrOperationNotPermitted = errors.New("operation not permitted")
	ErrStateChanged          = errors.New("state changed concurrently")
	ErrConflict              = errors.New("constraint violation")
	ErrInvalidCredentials    = errors.New("invalid username or password")
)

// DomainError carries a human readable reason for one of the sentinel kinds above.
type DomainError struct {
	Kind   error
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func (e *DomainError) Unwrap() error {
	return e.Kind
}

func validationf(format string, args ...any) error {
	return &DomainError{Kind: ErrValidation, Reason: fmt.Sprintf(format, args...)}
}

func notPermittedf(format string, args ...any) error {
	return &DomainError{Kind: ErrOperationNotPermitted, Reason: fmt.Sprintf(format, args...)}
}

func stateChangedf(format string, args ...any) error {
	return &DomainError{Kind: ErrStateChanged, Reason: fmt.Sprintf(format, args...)}
}

func notFoundf(format string, args ...any) error {
	return &DomainError{Kind: ErrNotFound, Reason: fmt.Sprintf(format, args...)}
}

// Reason returns the human readable part of a DomainError, or err.Error().
func Reason(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Reason
	}
	return err.Error()
}

// isConstraintError reports foreign key and unique violations for both drivers.
func isConstraintError(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		// 1451: row is referenced, 1452: parent missing, 1062: duplicate key
		return myErr.Number == 1451 || myErr.Number == 1452 || myErr.Number == 1062
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code == sqlite3.ErrConstraint
	}
	return errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated)
}

// dbError maps gorm and driver errors onto the package sentinels.
func dbError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFoundf("%s: not found", op)
	case isConstraintError(err):
		return &DomainError{Kind: ErrConflict, Reason: fmt.Sprintf("%s: %v", op, err)}
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
