package domain

import "fmt"

// Error codes for the domain error taxonomy
const (
	// ErrCodeConfigError indicates the gate policy configuration could not
	// be loaded or is unusable. This is the only fatal error class.
	ErrCodeConfigError = "CONFIG_ERROR"

	// ErrCodeInvalidInput indicates a malformed category result or argument
	ErrCodeInvalidInput = "INVALID_INPUT"

	// ErrCodeProbeError indicates a category probe failed to produce a result
	ErrCodeProbeError = "PROBE_ERROR"

	// ErrCodeReportError indicates a report artifact could not be written
	ErrCodeReportError = "REPORT_ERROR"
)

// DomainError represents an error with a stable code for classification
type DomainError struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface
func (e DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause
func (e DomainError) Unwrap() error {
	return e.Cause
}

// NewDomainError creates a DomainError with the given code
func NewDomainError(code, message string, cause error) error {
	return DomainError{Code: code, Message: message, Cause: cause}
}

// NewConfigError creates a fatal configuration error
func NewConfigError(message string, cause error) error {
	return NewDomainError(ErrCodeConfigError, message, cause)
}

// NewInvalidInputError creates an error for malformed input
func NewInvalidInputError(message string, cause error) error {
	return NewDomainError(ErrCodeInvalidInput, message, cause)
}

// NewProbeError creates an error for a failed category probe
func NewProbeError(probe string, cause error) error {
	return NewDomainError(ErrCodeProbeError, fmt.Sprintf("probe failed: %s", probe), cause)
}

// NewReportError creates an error for a failed report write
func NewReportError(message string, cause error) error {
	return NewDomainError(ErrCodeReportError, message, cause)
}
