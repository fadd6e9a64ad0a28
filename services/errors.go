package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrEmptyCart    = errors.New("cart is empty")
	ErrInvalidInput = errors.New("invalid input")
	ErrPersistence  = errors.New("storage failure")
)

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func notFound(what, id string) error {
	return fmt.Errorf("%w: %s %q", ErrNotFound, what, id)
}

// storageError classifies a gorm error. Missing records become ErrNotFound,
// everything else is a persistence failure.
func storageError(what, id string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(what, id)
	}
	return fmt.Errorf("%w: %w", ErrPersistence, err)
}

func isRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func isInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
