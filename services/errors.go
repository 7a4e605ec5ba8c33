package services

import (
	"errors"
	"fmt"
)

// ValidationError is a user input problem. The operation that returned it
// made no changes.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NotFoundError means the target order no longer exists.
type NotFoundError struct {
	OrderNo string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("order %s not found", e.OrderNo)
}

// BoundaryError wraps a storage or export failure.
type BoundaryError struct {
	Op  string
	Err error
}

func (e *BoundaryError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *BoundaryError) Unwrap() error {
	return e.Err
}

// ConfirmationRequiredError is returned when a save would overwrite an
// existing order and the user has not agreed to it yet.
type ConfirmationRequiredError struct {
	OrderNo string
}

func (e *ConfirmationRequiredError) Error() string {
	return fmt.Sprintf("order %s already exists; confirm to overwrite", e.OrderNo)
}

// WrapBoundary tags err as a BoundaryError for op unless it already carries
// one of the typed errors above.
func WrapBoundary(op string, err error) error {
	if err == nil {
		return nil
	}
	var (
		ve *ValidationError
		nf *NotFoundError
		be *BoundaryError
	)
	if errors.As(err, &ve) || errors.As(err, &nf) || errors.As(err, &be) {
		return err
	}
	return &BoundaryError{Op: op, Err: err}
}
