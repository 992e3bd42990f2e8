package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrInvalid     = errors.New("invalid input")
	ErrUnavailable = errors.New("not configured")
)

// ValidationError carries a message safe to show to the caller.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

func (e ValidationError) Is(target error) bool { return target == ErrInvalid }

// lookup maps gorm's missing-row error to ErrNotFound and wraps the rest.
func lookup(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("failed to load %s: %w", what, err)
}
