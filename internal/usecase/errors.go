package usecase

import (
	"errors"
	"fmt"

	"book-review/pkg/utils"
)

var (
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password. The single message keeps the two cases indistinguishable so
	// the endpoint cannot be used for account enumeration.
	ErrInvalidCredentials = errors.New("invalid username and/or password")

	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrBookNotFound is returned when a review references an ISBN the
	// catalog does not hold.
	ErrBookNotFound = errors.New("book does not exist")

	// ErrReviewExists is returned when a user already reviewed the book.
	ErrReviewExists = errors.New("review already submitted")
)

// ValidationError carries a field-to-message map of input faults.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", utils.FormatValidationErrors(e.Fields))
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// AsValidationError unwraps err into a *ValidationError when it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	ok := errors.As(err, &vErr)
	return vErr, ok
}
