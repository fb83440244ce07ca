package splu

import (
	"errors"
	"fmt"

	"splu/kernel"
)

var (
	// ErrNilSolver indicates a nil solver handle was passed.
	ErrNilSolver = errors.New("splu: nil solver handle")
	// ErrAlreadyInitialized indicates Initialize was called on a handle that
	// already owns buffers.
	ErrAlreadyInitialized = errors.New("splu: solver already initialized")
	// ErrNotInitialized indicates an operation requires a prior Initialize.
	ErrNotInitialized = errors.New("splu: solver not initialized")
	// ErrInvalidArgument indicates a dimension, buffer length or enumerated
	// selector out of range.
	ErrInvalidArgument = errors.New("splu: invalid argument")
	// ErrAllocation indicates a buffer allocation failed during Initialize.
	ErrAllocation = errors.New("splu: buffer allocation failed")
	// ErrConversion indicates the triplet-to-column conversion rejected the
	// input.
	ErrConversion = errors.New("splu: triplet conversion failed")
	// ErrSymbolic indicates the symbolic analysis failed.
	ErrSymbolic = errors.New("splu: symbolic analysis failed")
	// ErrNumeric indicates the numeric factorization failed.
	ErrNumeric = errors.New("splu: numeric factorization failed")
	// ErrSolve indicates the kernel solve failed.
	ErrSolve = errors.New("splu: solve failed")
	// ErrNoFactorization indicates Solve was attempted before any successful
	// Factorize.
	ErrNoFactorization = errors.New("splu: no successful factorization")
)

// statusError wraps a kernel status into the matching sentinel so the raw
// code stays visible through errors.Is / errors.As chains.
func statusError(sentinel error, status kernel.Status) error {
	return fmt.Errorf("%w: %v (status %d)", sentinel, status, int32(status))
}

func errorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidArgument}, args...)...)
}
