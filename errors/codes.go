package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Contract errors (panics)
const (
	// ErrCodeContractViolation indicates a documented precondition was broken.
	ErrCodeContractViolation ErrorCode = "CONTRACT_VIOLATION"
	// ErrCodeIndexOverflow indicates an absolute position would exceed math.MaxInt.
	ErrCodeIndexOverflow ErrorCode = "INDEX_OVERFLOW"
)

// Drive errors
const (
	// ErrCodeCanceled indicates the drive stopped because its context ended.
	ErrCodeCanceled ErrorCode = "CANCELED"
	// ErrCodeWorkerPanic indicates a forked worker panicked with a non-error value.
	ErrCodeWorkerPanic ErrorCode = "WORKER_PANIC"
)

// Configuration errors
const (
	// ErrCodeInvalidConfig indicates configuration failed validation.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var panicCodes = map[ErrorCode]bool{
	ErrCodeContractViolation: true,
	ErrCodeIndexOverflow:     true,
}

// IsContractCode returns true if the code is raised by panic rather than returned.
func IsContractCode(code ErrorCode) bool {
	return panicCodes[code]
}
