package borrow

import (
	"fmt"

	"github.com/rawbytedev/borrow/option"
)

// MutView is a View that writes through to its backing. Writes change
// values in place; only SplitOffFirst and SplitOffLast change a length.
//
// Go cannot prove that two mutable views do not overlap. Keeping at most one
// live MutView per region is the caller's job; SplitAtMut is the supported
// way to get two of them, over disjoint halves.
type MutView[T any] struct {
	View[T]
	mseq MutableSequence[T]
}

// MutViewOf makes a mutable view over seq. It panics with ErrImmutable when
// seq does not implement MutableSequence (Frozen, String, bytebuf.Bytes).
func MutViewOf[T any](seq Sequence[T]) MutView[T] {
	m, ok := seq.(MutableSequence[T])
	if !ok {
		panic(fmt.Errorf("%w: %T", ErrImmutable, seq))
	}
	return MutView[T]{View: ViewOf(seq), mseq: m}
}

// NewMutView makes a mutable view writing into s.
func NewMutView[T any](s []T) MutView[T] {
	return MutViewOf[T](Slice[T](s))
}

func (m MutView[T]) subMut(i, j int) MutView[T] {
	return MutView[T]{View: m.sub(i, j), mseq: m.mseq}
}

// AsView downgrades m to a read-only view of the same window.
func (m MutView[T]) AsView() View[T] { return m.View }

// Set writes x at i. It panics with an *IndexError when i is out of range.
func (m MutView[T]) Set(i int, x T) {
	checkIndex("set", i, m.n)
	m.mseq.SetIndex(m.off+i, x)
}

// Fill stores x in every slot. For pointer, map, slice or channel element
// types every slot then refers to the same object; use FillWith to get
// independent values.
func (m MutView[T]) Fill(x T) {
	for i := 0; i < m.n; i++ {
		m.mseq.SetIndex(m.off+i, x)
	}
}

// FillWith calls f once per slot.
func (m MutView[T]) FillWith(f func() T) {
	for i := 0; i < m.n; i++ {
		m.mseq.SetIndex(m.off+i, f())
	}
}

// CopyFromSlice overwrites m with src element by element, copying each
// value as is (reference-typed elements stay shared).
func (m MutView[T]) CopyFromSlice(src []T) error {
	if len(src) != m.n {
		return lengthMismatch("copy_from_slice", m.n, len(src))
	}
	for i, x := range src {
		m.mseq.SetIndex(m.off+i, x)
	}
	return nil
}

// CloneFromSlice overwrites m with deep copies of src. Elements implementing
// Cloner are cloned; other values are copied as Go copies them.
func (m MutView[T]) CloneFromSlice(src []T) error {
	if len(src) != m.n {
		return lengthMismatch("clone_from_slice", m.n, len(src))
	}
	for i, x := range src {
		m.mseq.SetIndex(m.off+i, clone(x))
	}
	return nil
}

// Swap exchanges the elements at a and b. Nothing is written when the two
// values compare equal.
func (m MutView[T]) Swap(a, b int) {
	checkIndex("swap", a, m.n)
	checkIndex("swap", b, m.n)
	x, y := m.mseq.Index(m.off+a), m.mseq.Index(m.off+b)
	if equal(x, y) {
		return
	}
	m.mseq.SetIndex(m.off+a, y)
	m.mseq.SetIndex(m.off+b, x)
}

// SwapUnchecked exchanges the elements at a and b without the equality
// short-circuit. Indexes are still bounds-checked.
func (m MutView[T]) SwapUnchecked(a, b int) {
	checkIndex("swap", a, m.n)
	checkIndex("swap", b, m.n)
	x, y := m.mseq.Index(m.off+a), m.mseq.Index(m.off+b)
	m.mseq.SetIndex(m.off+a, y)
	m.mseq.SetIndex(m.off+b, x)
}

// SwapWithSlice exchanges every element of m with the one at the same index
// in other.
func (m MutView[T]) SwapWithSlice(other MutView[T]) error {
	if other.n != m.n {
		return lengthMismatch("swap_with_slice", m.n, other.n)
	}
	for i := 0; i < m.n; i++ {
		x, y := m.mseq.Index(m.off+i), other.mseq.Index(other.off+i)
		m.mseq.SetIndex(m.off+i, y)
		other.mseq.SetIndex(other.off+i, x)
	}
	return nil
}

// Reverse reverses the elements in place.
func (m MutView[T]) Reverse() {
	for i, j := 0, m.n-1; i < j; i, j = i+1, j-1 {
		m.SwapUnchecked(i, j)
	}
}

// SplitFirstMut is SplitFirst with a mutable remainder.
func (m MutView[T]) SplitFirstMut() (T, MutView[T], bool) {
	if m.n == 0 {
		var zero T
		return zero, MutView[T]{}, false
	}
	return m.mseq.Index(m.off), m.subMut(1, m.n), true
}

// SplitLastMut is SplitLast with a mutable remainder.
func (m MutView[T]) SplitLastMut() (T, MutView[T], bool) {
	if m.n == 0 {
		var zero T
		return zero, MutView[T]{}, false
	}
	return m.mseq.Index(m.off + m.n - 1), m.subMut(0, m.n-1), true
}

// SplitOffFirst removes the first element and returns it. The view shrinks
// by one; over a Shrinkable backing (Vec, bytebuf.BytesMut) the element is
// also removed from the storage.
func (m *MutView[T]) SplitOffFirst() option.Option[T] {
	if m.n == 0 {
		return option.None[T]()
	}
	if s, ok := m.mseq.(Shrinkable[T]); ok {
		x := s.RemoveAt(m.off)
		m.n--
		return option.Some(x)
	}
	x := m.mseq.Index(m.off)
	m.off++
	m.n--
	return option.Some(x)
}

// SplitOffLast removes the last element and returns it, with the same
// storage rules as SplitOffFirst.
func (m *MutView[T]) SplitOffLast() option.Option[T] {
	if m.n == 0 {
		return option.None[T]()
	}
	last := m.off + m.n - 1
	m.n--
	if s, ok := m.mseq.(Shrinkable[T]); ok {
		return option.Some(s.RemoveAt(last))
	}
	return option.Some(m.mseq.Index(last))
}

// SplitAtMut divides m into the disjoint mutable windows [0, mid) and
// [mid, len). It panics with an *IndexError if mid > len.
func (m MutView[T]) SplitAtMut(mid int) (MutView[T], MutView[T]) {
	checkSplit("split_at_mut", mid, m.n)
	return m.subMut(0, mid), m.subMut(mid, m.n)
}

// SplitAtMutChecked is SplitAtMut with mid clamped to [0, len].
func (m MutView[T]) SplitAtMutChecked(mid int) (MutView[T], MutView[T]) {
	mid = min(max(mid, 0), m.n)
	return m.subMut(0, mid), m.subMut(mid, m.n)
}
