package models

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound              = errors.New("record not found")
	ErrAlreadyCompleted      = errors.New("order already completed")
	ErrCartEmpty             = errors.New("cart is empty")
	ErrCartCommitted         = errors.New("cart already committed")
	ErrCartNotQuoted         = errors.New("cart has no checkout quote")
	ErrLineNotFound          = errors.New("cart line not found")
	ErrInsufficientCash      = errors.New("cash provided is less than total amount")
	ErrDuplicateOrderNumber  = errors.New("order number already used")
	ErrInsufficientPackStock = errors.New("not enough sealed packs")
	ErrItemBusy              = errors.New("inventory item is locked by another writer")
)

// ValidationError is returned for input the caller must correct before retrying.
// Nothing is persisted when it is returned.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Err.Error())
}

func (e *ValidationError) Unwrap() error { return e.Err }

func NewValidationError(field string, err error) *ValidationError {
	return &ValidationError{Field: field, Err: err}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
