package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrValidation          = errors.New("validation error")
	ErrAuthorizationDenied = errors.New("authorization denied")
	ErrNotFound            = errors.New("not found")
	ErrNotCancelable       = errors.New("order is not cancelable")
	ErrInvalidReference    = errors.New("invalid reference")
	ErrPaymentProcessor    = errors.New("payment processor error")
	ErrTransactionFailure  = errors.New("transaction failure")
	ErrTimeout             = errors.New("operation timed out")
	ErrInvalidToken        = errors.New("invalid token")
	ErrCanceled            = errors.New("request canceled")

	// Both are transaction failures; callers that only care about rollback can match ErrTransactionFailure.
	ErrInsufficientStock = fmt.Errorf("%w: insufficient stock", ErrTransactionFailure)
	ErrAlreadyPaid       = fmt.Errorf("%w: order already paid", ErrTransactionFailure)
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func invalidReference(field string) error {
	return fmt.Errorf("%w: %s is not a valid identifier", ErrInvalidReference, field)
}

// isWorkflowError reports whether err already belongs to the caller-facing taxonomy.
func isWorkflowError(err error) bool {
	for _, target := range []error{
		ErrValidation,
		ErrAuthorizationDenied,
		ErrNotFound,
		ErrNotCancelable,
		ErrInvalidReference,
		ErrPaymentProcessor,
		ErrTransactionFailure,
		ErrTimeout,
		ErrCanceled,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// storeError maps a raw store failure onto the taxonomy. Driver text is dropped.
func storeError(err error) error {
	switch {
	case err == nil:
		return nil
	case isWorkflowError(err):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return ErrTimeout
	case errors.Is(err, context.Canceled):
		return canceledError(err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	default:
		return ErrTransactionFailure
	}
}

// contextError reports why no work was started for an already finished context.
func contextError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	return canceledError(err)
}

// canceledError keeps the context cause matchable next to ErrCanceled.
func canceledError(err error) error {
	return fmt.Errorf("%w: %w", ErrCanceled, err)
}
