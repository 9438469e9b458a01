package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// --- Constructors ---

// ContractViolation reports a broken precondition of op. Callers panic with it.
func ContractViolation(op, message string) *AppError {
	return &AppError{
		Code: ErrCodeContractViolation, Message: fmt.Sprintf("%s: %s", op, message),
		Details: map[string]any{"operation": op},
	}
}

// SplitOutOfRange reports a split index outside [0, length].
func SplitOutOfRange(index, length int) *AppError {
	return ContractViolation("split", fmt.Sprintf("index %d out of range [0, %d]", index, length)).
		WithDetails(map[string]any{"index": index, "length": length})
}

// IndexOverflow reports an absolute position that cannot be represented.
func IndexOverflow(offset, length int) *AppError {
	return &AppError{
		Code:    ErrCodeIndexOverflow,
		Message: fmt.Sprintf("offset %d with length %d exceeds the maximum index", offset, length),
		Details: map[string]any{"offset": offset, "length": length},
	}
}

// Canceled wraps a context error that stopped a drive.
func Canceled(cause error) *AppError {
	return &AppError{Code: ErrCodeCanceled, Message: "drive canceled", Cause: cause}
}

// InvalidConfig creates an error for configuration that failed validation.
func InvalidConfig(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidConfig, Message: message}
}

// WorkerPanic wraps a recovered panic value that is not itself an error.
func WorkerPanic(value any) *AppError {
	return &AppError{
		Code: ErrCodeWorkerPanic, Message: fmt.Sprintf("worker panicked: %v", value),
		Details: map[string]any{"value": value},
	}
}

// Internal creates an error for an unexpected failure.
func Internal(cause error) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: "unexpected failure", Cause: cause}
}

// --- Inspection ---

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// CodeOf returns the code of the first AppError in err's chain, or "" if none.
func CodeOf(err error) ErrorCode {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return ""
}

// HasCode reports whether err carries an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// FromPanic converts a recovered panic value into an error, preserving AppErrors.
func FromPanic(v any) error {
	switch p := v.(type) {
	case nil:
		return nil
	case *AppError:
		return p
	case error:
		return Internal(p)
	default:
		return WorkerPanic(v)
	}
}
