package menu

import (
	"errors"
	"strings"
)

var (
	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is returned by stores when an update targets a missing id.
	ErrNotFound = errors.New("menu item not found")
	// ErrStoreFailure wraps any error coming back from the backing store.
	ErrStoreFailure = errors.New("menu store failure")
)

// ValidationError lists every rule a menu item or patch broke.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
