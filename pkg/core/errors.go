package core

import "fmt"

// ErrorCategory classifies the type of failure for reporting.
type ErrorCategory int

const (
	ErrCategoryNone    ErrorCategory = iota
	ErrCategorySession               // browser session could not be opened or navigated
	ErrCategoryProbe                 // an individual DOM probe or collector failed
	ErrCategoryStep                  // one interaction step failed
	ErrCategoryTimeout               // operation timed out
	ErrCategoryConfig                // invalid configuration or flow definition
)

// String returns the string representation of ErrorCategory.
func (c ErrorCategory) String() string {
	switch c {
	case ErrCategorySession:
		return "session"
	case ErrCategoryProbe:
		return "probe"
	case ErrCategoryStep:
		return "step"
	case ErrCategoryTimeout:
		return "timeout"
	case ErrCategoryConfig:
		return "config"
	default:
		return "none"
	}
}

// ProbeError represents a structured error with category and cause.
// Session open failure is the only error fatal to an invocation; everything
// else is contained locally and folded into results.
type ProbeError struct {
	Category ErrorCategory
	Code     string // machine-readable: navigation_failed, element_not_found, ...
	Message  string
	Cause    error
}

// Error implements the error interface.
func (e *ProbeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ProbeError) Unwrap() error {
	return e.Cause
}

// WithCause returns a copy of the error with the given cause.
func (e *ProbeError) WithCause(cause error) *ProbeError {
	return &ProbeError{
		Category: e.Category,
		Code:     e.Code,
		Message:  e.Message,
		Cause:    cause,
	}
}

// WithMessage returns a copy of the error with a custom message.
func (e *ProbeError) WithMessage(msg string) *ProbeError {
	return &ProbeError{
		Category: e.Category,
		Code:     e.Code,
		Message:  msg,
		Cause:    e.Cause,
	}
}

// Predefined errors.
var (
	ErrSessionOpen = &ProbeError{
		Category: ErrCategorySession,
		Code:     "session_open_failed",
		Message:  "could not open browser session",
	}
	ErrNavigation = &ProbeError{
		Category: ErrCategorySession,
		Code:     "navigation_failed",
		Message:  "initial navigation failed",
	}
	ErrElementNotFound = &ProbeError{
		Category: ErrCategoryStep,
		Code:     "element_not_found",
		Message:  "element not found",
	}
	ErrStepTimeout = &ProbeError{
		Category: ErrCategoryTimeout,
		Code:     "step_timeout",
		Message:  "step timed out",
	}
	ErrProbeFailed = &ProbeError{
		Category: ErrCategoryProbe,
		Code:     "probe_failed",
		Message:  "probe execution failed",
	}
	ErrInvalidFlow = &ProbeError{
		Category: ErrCategoryConfig,
		Code:     "invalid_flow",
		Message:  "invalid flow definition",
	}
)

// NewProbeError creates a new ProbeError with the given parameters.
func NewProbeError(category ErrorCategory, code, message string) *ProbeError {
	return &ProbeError{
		Category: category,
		Code:     code,
		Message:  message,
	}
}
