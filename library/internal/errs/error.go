package errs

import (
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrOutOfStock = errors.New("book is out of stock")
	ErrUserExists = errors.New("username is taken")
)

// ValidationError carries per-field detail messages for 400 responses.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return "validation error: " + strings.Join(e.Details, "; ")
}

func Validation(details ...string) error {
	return &ValidationError{Details: details}
}
