// Package apperr defines the engine's outcome taxonomy. Of its four
// outcomes, only InvalidInput is a real, fatal Go error — returned at
// setup time as an *AppError, or as the lighter *InvalidInputError from
// model constructors. The other three
// (Unfilled, CombinationMissing, ForbiddenViolated) are non-fatal
// Outcome values a finished run collects and reports; nothing recovers
// from them with error handling.
package apperr

import (
	"errors"
	"fmt"
)

// Code classifies an AppError.
type Code string

const (
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeInternal     Code = "INTERNAL_ERROR"
)

// AppError is the one fatal error shape the engine raises.
type AppError struct {
	Code    Code
	Message string
	Details string
	Cause   error
	Fields  map[string]interface{}
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Cause }

// WithDetails attaches a human-readable detail string.
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// WithField attaches a structured field, useful for logging.
func (e *AppError) WithField(key string, value interface{}) *AppError {
	if e.Fields == nil {
		e.Fields = make(map[string]interface{})
	}
	e.Fields[key] = value
	return e
}

// New creates an AppError with no cause.
func New(code Code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap creates an AppError wrapping an underlying cause.
func Wrap(err error, code Code, message string) *AppError {
	return &AppError{Code: code, Message: message, Cause: err}
}

// Is reports whether err is an AppError of the given code.
func Is(err error, code Code) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// InvalidInput creates the one fatal setup-time error: field is invalid
// in a way the engine refuses to plan against at all.
func InvalidInput(field, reason string) *AppError {
	return New(CodeInvalidInput, fmt.Sprintf("field '%s' invalid: %s", field, reason)).
		WithField("field", field)
}

// InvalidInputError is a lighter-weight fatal error used by model
// constructors that only ever report a single field/reason pair and
// have no need for AppError's fuller shape.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "invalid input: field '" + e.Field + "' " + e.Reason
}

// OutcomeCode classifies a non-fatal run outcome.
type OutcomeCode int

const (
	// Unfilled marks a (date, duty) slot no eligible candidate could
	// fill.
	Unfilled OutcomeCode = iota
	// CombinationMissing marks a MUST-COMBINATION rule whose linked
	// duty never received the same person.
	CombinationMissing
	// ForbiddenViolated marks a MUST-FORBIDDEN rule the finished plan
	// violates.
	ForbiddenViolated
)

func (c OutcomeCode) String() string {
	switch c {
	case Unfilled:
		return "UNFILLED"
	case CombinationMissing:
		return "COMBINATION_MISSING"
	case ForbiddenViolated:
		return "FORBIDDEN_VIOLATED"
	default:
		return "UNKNOWN"
	}
}

// Outcome is one recorded non-fatal finding from a finished run.
type Outcome struct {
	Code   OutcomeCode
	Date   string
	Detail string
}

func (o Outcome) String() string {
	return o.Code.String() + " on " + o.Date + ": " + o.Detail
}
