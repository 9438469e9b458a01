// Package errors provides the structured error type used across pariter.
//
// Two kinds of failure exist. Contract violations (splitting a producer out of
// range, overflowing an absolute index) are programmer errors: they panic with
// an *AppError carrying CONTRACT_VIOLATION or INDEX_OVERFLOW and are never
// clamped. Everything else (cancellation, invalid configuration, a panic
// captured on a worker goroutine) is returned as an explicit error value.
package errors
