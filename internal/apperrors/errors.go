package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the request conflicts with the current state of a resource
// (e.g. changing the type of an account that already carries posted lines).
var ErrConflict = errors.New("resource conflict")

// ErrState indicates an operation that the resource's lifecycle state does not allow.
var ErrState = errors.New("invalid state transition")

// ErrIntegrity indicates a ledger-wide consistency check failed.
var ErrIntegrity = errors.New("ledger integrity violation")

// ErrReferenceCollision indicates a generated entry reference was already taken.
var ErrReferenceCollision = errors.New("journal entry reference collision")

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInternal     = errors.New("internal error")
)

// AppError carries an HTTP-ish status code together with a message and the wrapped cause.
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

// Is lets errors.Is match the sentinel implied by the status code even when the
// wrapped cause is a driver error.
func (e *AppError) Is(target error) bool {
	switch e.Code {
	case http.StatusNotFound:
		return target == ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return target == ErrValidation
	case http.StatusConflict:
		return target == ErrConflict
	case http.StatusInternalServerError:
		return target == ErrInternal
	}
	return false
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError wraps ErrNotFound with a message naming the missing resource.
func NewNotFoundError(message string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, message)
}

// NewConflictError wraps ErrConflict with a message.
func NewConflictError(message string) error {
	return fmt.Errorf("%w: %s", ErrConflict, message)
}

// ValidationReason identifies which journal entry check failed.
type ValidationReason string

const (
	ReasonTooFewLines     ValidationReason = "too_few_lines"
	ReasonUnknownAccount  ValidationReason = "unknown_account"
	ReasonInactiveAccount ValidationReason = "inactive_account"
	ReasonNegativeAmount  ValidationReason = "negative_amount"
	ReasonBothSidesSet    ValidationReason = "both_sides_set"
	ReasonNoAmount        ValidationReason = "no_amount"
	ReasonMissingDebit    ValidationReason = "missing_debit"
	ReasonMissingCredit   ValidationReason = "missing_credit"
	ReasonUnbalanced      ValidationReason = "unbalanced"
	ReasonPeriodLocked    ValidationReason = "period_locked"
	ReasonRateUnavailable ValidationReason = "rate_unavailable"
	ReasonInvalidInput    ValidationReason = "invalid_input"
)

// ValidationError is returned when a proposed entry or request is rejected before any write.
// LineIndex is the zero-based offending line, or -1 when the failure concerns the whole entry.
type ValidationError struct {
	Reason    ValidationReason
	LineIndex int
	Message   string
}

func (e *ValidationError) Error() string {
	if e.LineIndex >= 0 {
		return fmt.Sprintf("validation failed (%s) at line %d: %s", e.Reason, e.LineIndex+1, e.Message)
	}
	return fmt.Sprintf("validation failed (%s): %s", e.Reason, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError builds an entry-level validation failure.
func NewValidationError(reason ValidationReason, format string, args ...any) *ValidationError {
	return &ValidationError{Reason: reason, LineIndex: -1, Message: fmt.Sprintf(format, args...)}
}

// NewLineValidationError builds a validation failure pinned to one line.
func NewLineValidationError(reason ValidationReason, lineIndex int, format string, args ...any) *ValidationError {
	return &ValidationError{Reason: reason, LineIndex: lineIndex, Message: fmt.Sprintf(format, args...)}
}

// StateError is returned when an entry's status does not permit the requested operation.
type StateError struct {
	EntryID   string
	Status    string
	Operation string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("journal entry %s in status %s is not postable for %s", e.EntryID, e.Status, e.Operation)
}

func (e *StateError) Is(target error) bool {
	return target == ErrState
}

// IntegrityError reports a failed ledger-wide check. It is never corrected automatically.
type IntegrityError struct {
	Check  string
	Detail string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("integrity check %s failed: %s", e.Check, e.Detail)
}

func (e *IntegrityError) Is(target error) bool {
	return target == ErrIntegrity
}

// ReasonOf extracts the validation reason from err, if any.
func ReasonOf(err error) (ValidationReason, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Reason, true
	}
	return "", false
}
