package scheduling

import (
	"errors"
	"fmt"
)

// Error codes for the engine's caller-facing taxonomy.
const (
	CodeValidation  = "validationError"
	CodeCapacity    = "capacityError"
	CodeConcurrency = "concurrencyError"
	CodeNotFound    = "notFoundError"
)

// EngineError is the typed result every engine failure resolves to. Step
// names the point in the orchestration sequence at which the failure
// occurred; no further wrapping is added on the way to the caller.
type EngineError struct {
	Code    string
	Step    string
	Message string
}

func (e *EngineError) Error() string {
	if e.Step != "" {
		return fmt.Sprintf("%s [%s]: %s", e.Code, e.Step, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Retryable reports whether the whole operation may safely be retried.
func (e *EngineError) Retryable() bool {
	return e.Code == CodeConcurrency
}

func NewValidationError(step, format string, args ...any) error {
	return &EngineError{Code: CodeValidation, Step: step, Message: fmt.Sprintf(format, args...)}
}

func NewCapacityError(step, format string, args ...any) error {
	return &EngineError{Code: CodeCapacity, Step: step, Message: fmt.Sprintf(format, args...)}
}

func NewConcurrencyError(step, format string, args ...any) error {
	return &EngineError{Code: CodeConcurrency, Step: step, Message: fmt.Sprintf(format, args...)}
}

func NewNotFoundError(step, format string, args ...any) error {
	return &EngineError{Code: CodeNotFound, Step: step, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the engine error code, or "" for untyped errors.
func CodeOf(err error) string {
	var ee *EngineError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return ""
}
