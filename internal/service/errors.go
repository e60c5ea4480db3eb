package service

import (
	"errors"
	"fmt"

	"go-catalog-admin/internal/repository"
	"go-catalog-admin/pkg/validator"
)

// ValidationError reports a missing or invalid input field.
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

// NotFoundError reports that the id an operation targets does not exist.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return repository.ErrNotFound
}

// StoreError wraps a persistence failure.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// storeErr turns repository.ErrNotFound into a NotFoundError and anything
// else into a StoreError. Errors already in the taxonomy pass through.
func storeErr(op, entity string, id uint, err error) error {
	var vErr *ValidationError
	var nfErr *NotFoundError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &vErr), errors.As(err, &nfErr):
		return err
	case errors.Is(err, repository.ErrNotFound):
		return &NotFoundError{Entity: entity, ID: id}
	default:
		return &StoreError{Op: op, Err: err}
	}
}

var tagMessages = map[string]string{
	"required": "is required",
	"notblank": "is required",
	"gt":       "must be greater than %s",
	"gte":      "must be at least %s",
}

// fromValidator reports the first failed rule as a ValidationError.
func fromValidator(errs []*validator.ErrorResponse) error {
	if len(errs) == 0 {
		return nil
	}
	first := errs[0]
	msg, ok := tagMessages[first.Tag]
	if !ok {
		return invalid(first.FailedField, fmt.Sprintf("failed on '%s'", first.Tag))
	}
	if first.Value != "" {
		msg = fmt.Sprintf(msg, first.Value)
	}
	return invalid(first.FailedField, msg)
}
