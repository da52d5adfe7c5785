package ledger

import (
	"errors"
	"fmt"
)

// Error kinds returned by ledger and store operations. Match with errors.Is.
var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
	ErrPersistence  = errors.New("persistence error")
)

func validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func goalNotFound(id int64) error {
	return fmt.Errorf("%w: goal %d", ErrNotFound, id)
}

// Persistence wraps a storage failure so it matches ErrPersistence.
func Persistence(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}
