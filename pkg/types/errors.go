package types

import (
	"errors"
	"fmt"
	"strings"
)

// Catalog lifecycle errors.
var (
	ErrCatalogDetached = errors.New("catalog is detached")
	ErrAlreadyAttached = errors.New("catalog is already attached")
	ErrNilItem         = errors.New("item is nil")
)

// Sentinels matched by the typed errors below through errors.Is.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnknownField = errors.New("unknown field")
	ErrCoercion     = errors.New("invalid field value")
	ErrNotFound     = errors.New("item not found")
	ErrStorage      = errors.New("storage failure")
)

// Value errors wrapped by CoercionError.
var (
	ErrInvalidID       = errors.New("invalid item ID")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidAction   = errors.New("invalid action")
	ErrInvalidDate     = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidBool     = errors.New("invalid boolean, expected true or false")
	ErrInvalidNumber   = errors.New("invalid number")
)

// ValidationError lists every business rule an item violates, in field order.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Problems, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// UnknownFieldError reports a field or filter key that is not in the
// field table (or not settable).
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q", e.Field)
}

func (e *UnknownFieldError) Is(target error) bool { return target == ErrUnknownField }

// CoercionError reports a raw value that could not be parsed into its
// field's type.
type CoercionError struct {
	Field string
	Value string
	Err   error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("field %s: cannot use %q: %v", e.Field, e.Value, e.Err)
}

func (e *CoercionError) Unwrap() error { return e.Err }

func (e *CoercionError) Is(target error) bool { return target == ErrCoercion }

// NotFoundError reports an item ID with no stored record.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("item %d not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// StorageError wraps a failure of the underlying engine.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }
