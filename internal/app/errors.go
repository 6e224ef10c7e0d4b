package app

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrUsernameExists    = errors.New("username already exists")
	ErrInvalidCredential = errors.New("invalid username or password")
	ErrStoreFailure      = errors.New("store failure")
	ErrSessionDestroy    = errors.New("error logging out")
)

// FieldErrors maps a form field name to a human readable message.
type FieldErrors map[string]string

func (f FieldErrors) Has(field string) bool {
	_, ok := f[field]
	return ok
}

// ValidationError carries every field that failed validation.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "invalid input: " + strings.Join(names, ", ")
}

// AsValidation unwraps a *ValidationError from err.
func AsValidation(err error) (*ValidationError, bool) {
	var v *ValidationError
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

// storeFailure tags err with ErrStoreFailure while keeping the cause for logs.
func storeFailure(err error) error {
	return errors.Join(ErrStoreFailure, err)
}
