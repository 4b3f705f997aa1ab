// Package borrow provides views, mutable views and growable vectors over
// contiguous data with explicit ownership rules.
//
// A View is a (backing, offset, length) window and never owns or copies the
// data it reads. A MutView additionally writes through to its backing and
// can only be made over a backing that accepts writes. A Vec owns its
// storage, or shares it with the caller when built with FromAlias.
//
// None of the types in this package are safe for concurrent use.
package borrow

import "reflect"

// Sequence is an indexable, length-queryable backing store.
type Sequence[T any] interface {
	Len() int
	Index(i int) T
}

// MutableSequence is a Sequence that accepts in-place writes.
type MutableSequence[T any] interface {
	Sequence[T]
	SetIndex(i int, v T)
}

// Shrinkable is an owning, growable backing. When a MutView splits an
// element off a Shrinkable backing the element is removed from the storage
// itself, not only from the view.
type Shrinkable[T any] interface {
	MutableSequence[T]
	RemoveAt(i int) T
}

// Cloner is implemented by element types that know how to deep-copy
// themselves. CloneFromSlice uses it.
type Cloner[T any] interface {
	Clone() T
}

// Slice adapts a Go slice. Views over it share its memory.
type Slice[T any] []T

func (s Slice[T]) Len() int            { return len(s) }
func (s Slice[T]) Index(i int) T       { return s[i] }
func (s Slice[T]) SetIndex(i int, v T) { s[i] = v }

// Frozen is a read-only slice backing. MutViewOf rejects it.
type Frozen[T any] []T

func (s Frozen[T]) Len() int      { return len(s) }
func (s Frozen[T]) Index(i int) T { return s[i] }

// String is a read-only byte backing over a Go string.
type String string

func (s String) Len() int         { return len(s) }
func (s String) Index(i int) byte { return s[i] }

// equal reports whether a and b hold the same value. Values whose dynamic
// type is not comparable never compare equal.
func equal[T any](a, b T) bool {
	x, y := any(a), any(b)
	if x == nil || y == nil {
		return x == y
	}
	if !reflect.ValueOf(x).Comparable() || !reflect.ValueOf(y).Comparable() {
		return false
	}
	return x == y
}

func clone[T any](v T) T {
	if c, ok := any(v).(Cloner[T]); ok {
		return c.Clone()
	}
	return v
}
