// Package zc (zero-copy) is the opt-in unsafe surface of borrow: building
// buffers directly over memory the Go runtime does not own, and taking
// them apart again, without copying.
//
// Nothing here validates the memory it is given. Every constructor takes
// an Attest value so call sites spell out that the caller guarantees the
// pointer is valid for n elements, correctly aligned, and not written by
// anyone else for as long as the result is in use.
package zc

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/rawbytedev/borrow/pkg/bytebuf"
)

var (
	ErrNilPointer = errors.New("zc: nil pointer with non-zero length")
	ErrMisaligned = errors.New("zc: misaligned pointer")
)

// Attest marks a call that trusts raw memory. Pass Trusted.
type Attest struct{ _ [0]func() }

// Trusted is the one Attest value.
var Trusted Attest

// Options contains runtime flags controlling zero-copy behaviour.
type Options struct {
	// CheckNil rejects a nil pointer paired with a non-zero length.
	CheckNil bool

	// CheckAlignment rejects pointers that are not aligned for the
	// element type before aliasing them as a typed slice.
	CheckAlignment bool

	// UnsafeStrings lets String return a string sharing the buffer's
	// memory instead of a copy.
	UnsafeStrings bool
}

// DefaultOptions keeps both checks on and strings copied.
func DefaultOptions() Options {
	return Options{CheckNil: true, CheckAlignment: true}
}

// FromRawParts builds a Bytes over exactly the n bytes at ptr.
func FromRawParts(ptr unsafe.Pointer, n int, a Attest) *bytebuf.Bytes {
	return bytebuf.FromStatic(SliceFromRawParts[byte](ptr, n, a, DefaultOptions()))
}

// FromRawPartsMut builds a BytesMut over exactly the n bytes at ptr.
// Writes go straight to that memory until an append outgrows it.
func FromRawPartsMut(ptr unsafe.Pointer, n int, a Attest) *bytebuf.BytesMut {
	return FromRawParts(ptr, n, a).ToMut()
}

// ToRawParts consumes b and returns the address and length of its storage.
// b is dead afterwards. An empty buffer may yield a nil pointer.
func ToRawParts(b *bytebuf.Bytes) (unsafe.Pointer, int) {
	s := b.Leak()
	return unsafe.Pointer(unsafe.SliceData(s)), len(s)
}

// SliceFromRawParts aliases the n values of type T at ptr.
func SliceFromRawParts[T any](ptr unsafe.Pointer, n int, _ Attest, o Options) []T {
	if n == 0 {
		return []T{}
	}
	if ptr == nil {
		if o.CheckNil {
			panic(ErrNilPointer)
		}
		return nil
	}
	if o.CheckAlignment {
		var zero T
		if align := unsafe.Alignof(zero); uintptr(ptr)%align != 0 {
			panic(fmt.Errorf("%w: %p is not %d-byte aligned for %T", ErrMisaligned, ptr, align, zero))
		}
	}
	return unsafe.Slice((*T)(ptr), n)
}

// String returns the buffer contents as a string. With UnsafeStrings set
// the string shares b's memory: it must not outlive b, and b must not be
// turned into a BytesMut and written while the string is live.
func String(b *bytebuf.Bytes, o Options) string {
	if !o.UnsafeStrings {
		return string(b.ToBytes())
	}
	s := b.UnsafeBytes()
	if len(s) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(s), len(s))
}
