package resource

import (
	"errors"
	"fmt"
)

// Cache errors.
var (
	// ErrCacheDisposed is returned when operating on a disposed cache.
	ErrCacheDisposed = errors.New("resource: cache disposed")

	// ErrEmptyResult is returned when a factory produces a nil value.
	ErrEmptyResult = errors.New("resource: factory produced empty result")

	// ErrEmptyKey is returned when a key is the empty string.
	ErrEmptyKey = errors.New("resource: key is empty")

	// ErrNilFactory is returned when GetOrCreate is called without a factory.
	ErrNilFactory = errors.New("resource: factory is nil")
)

// TypeMismatchError means the entry cached under Key holds a value of a
// different type than the caller asked for.
type TypeMismatchError struct {
	Key      string
	Expected string
	Actual   string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("resource: type mismatch for %q: expected=%s actual=%s",
		e.Key, e.Expected, e.Actual)
}

// ReleaseError records a release routine that failed for Key.
type ReleaseError struct {
	Key string
	Err error
}

func (e *ReleaseError) Error() string {
	return fmt.Sprintf("resource: release %q: %v", e.Key, e.Err)
}

func (e *ReleaseError) Unwrap() error {
	return e.Err
}
