package borrow

import (
	"errors"
	"fmt"
)

var (
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrLengthMismatch   = errors.New("length mismatch")
	ErrCapacityExceeded = errors.New("capacity exceeded")
	ErrZeroSize         = errors.New("size must be non-zero")

	// Contract violations. These are raised with panic: they point at a
	// defect in the caller, not at a runtime condition.
	ErrLeaked    = errors.New("use of leaked vector")
	ErrImmutable = errors.New("mutable view over immutable storage")
)

// IndexError is the panic value of bounds-checked operations.
type IndexError struct {
	Op    string
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: index %d out of range [0:%d]", e.Op, e.Index, e.Len)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }

// CapacityError hands back an element a bounded Vec refused to take.
type CapacityError[T any] struct {
	Item     T
	Capacity int
}

func (e *CapacityError[T]) Error() string {
	return fmt.Sprintf("capacity %d exceeded", e.Capacity)
}

func (e *CapacityError[T]) Unwrap() error { return ErrCapacityExceeded }

func lengthMismatch(op string, want, got int) error {
	return fmt.Errorf("%s: %w: destination has %d elements, source has %d", op, ErrLengthMismatch, want, got)
}

func checkIndex(op string, i, n int) {
	if i < 0 || i >= n {
		panic(&IndexError{Op: op, Index: i, Len: n})
	}
}

// checkSplit allows mid == n.
func checkSplit(op string, mid, n int) {
	if mid < 0 || mid > n {
		panic(&IndexError{Op: op, Index: mid, Len: n})
	}
}

func checkSize(op string, size int) {
	if size <= 0 {
		panic(fmt.Errorf("%s: %w", op, ErrZeroSize))
	}
}
