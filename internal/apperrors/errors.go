package apperrors

import (
	"errors"
	"fmt"

	"github.com/finposting/ledger-core/internal/core/domain"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the operation conflicts with the current state of a resource.
var ErrConflict = errors.New("conflict with current resource state")

// ErrRuleNotFound indicates no posting rule is registered for a document type.
var ErrRuleNotFound = errors.New("posting rule not found")

// ErrMissingAmountField indicates a rule references an amount slot the
// source document does not supply.
var ErrMissingAmountField = errors.New("document is missing a mapped amount field")

// ErrDimensionNotFound indicates a referenced cost center or project does not
// resolve to an active record.
var ErrDimensionNotFound = errors.New("dimension not found or inactive")

// ErrDimensionRequired indicates an account's policy demands a dimension the
// line does not carry.
var ErrDimensionRequired = errors.New("required dimension missing")

// AppError wraps an underlying error with a status code and message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError builds an AppError with the given code, message and cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError builds a not-found AppError wrapping ErrNotFound so
// callers can still match with errors.Is.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// NewValidationError builds a validation AppError wrapping ErrValidation.
func NewValidationError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}

// PeriodLockedError signals a posting date falling in a non-open period.
// It is distinct from plain validation failures so callers can surface a
// period-lock message and the target state.
type PeriodLockedError struct {
	CompanyID string
	Year      int
	Month     int
	State     domain.PeriodState
}

func (e *PeriodLockedError) Error() string {
	return fmt.Sprintf("period %04d-%02d is %s for company %s", e.Year, e.Month, e.State, e.CompanyID)
}

// IsPeriodLocked reports whether err is (or wraps) a PeriodLockedError.
func IsPeriodLocked(err error) bool {
	var locked *PeriodLockedError
	return errors.As(err, &locked)
}
