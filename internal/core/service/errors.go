package service

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed caller input.
	ErrValidation = errors.New("invalid input")

	// ErrNotFound marks a lookup that matched no order.
	ErrNotFound = errors.New("order not found")
)

// StoreError wraps a failed call against the backing store with the
// operation that failed, keeping the original cause reachable via Unwrap.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
