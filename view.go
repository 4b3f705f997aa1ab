package borrow

import (
	"fmt"
	"iter"
	"strings"

	"github.com/rawbytedev/borrow/option"
)

// View is an immutable window over a Sequence.
//
// Splitting, chunking and windowing only move the window bounds, so they are
// O(1) and zero-copy for every backing type (Slice, Frozen, String, Vec and
// the bytebuf buffers). ToSlice and ToVec are the copying exits.
//
// A View must not outlive the storage it was made from. Over a Shrinkable
// backing, elements removed through MutView.SplitOffFirst shift the indexes
// seen by other views.
type View[T any] struct {
	seq Sequence[T]
	off int
	n   int
}

// ViewOf makes a view over the whole of seq.
func ViewOf[T any](seq Sequence[T]) View[T] {
	return View[T]{seq: seq, n: seq.Len()}
}

// NewView makes a view sharing the memory of s.
func NewView[T any](s []T) View[T] {
	return ViewOf[T](Slice[T](s))
}

func (v View[T]) sub(i, j int) View[T] {
	return View[T]{seq: v.seq, off: v.off + i, n: j - i}
}

func (v View[T]) Len() int      { return v.n }
func (v View[T]) IsEmpty() bool { return v.n == 0 }

// Index returns the i'th element. It panics with an *IndexError when i is
// out of range.
func (v View[T]) Index(i int) T {
	checkIndex("index", i, v.n)
	return v.seq.Index(v.off + i)
}

// Get returns the element at i, or None when i is out of range.
func (v View[T]) Get(i int) option.Option[T] {
	if i < 0 || i >= v.n {
		return option.None[T]()
	}
	return option.Some(v.seq.Index(v.off + i))
}

// MustGet is the bounds-checked lookup that panics with an *IndexError
// instead of returning None. It never reads outside the view.
func (v View[T]) MustGet(i int) T {
	checkIndex("get", i, v.n)
	return v.seq.Index(v.off + i)
}

func (v View[T]) First() option.Option[T] { return v.Get(0) }
func (v View[T]) Last() option.Option[T]  { return v.Get(v.n - 1) }

// SplitFirst returns the first element and a view of the rest.
func (v View[T]) SplitFirst() (T, View[T], bool) {
	if v.n == 0 {
		var zero T
		return zero, View[T]{}, false
	}
	return v.seq.Index(v.off), v.sub(1, v.n), true
}

// SplitLast returns the last element and a view of everything before it.
func (v View[T]) SplitLast() (T, View[T], bool) {
	if v.n == 0 {
		var zero T
		return zero, View[T]{}, false
	}
	return v.seq.Index(v.off + v.n - 1), v.sub(0, v.n-1), true
}

// SplitAt divides the view into [0, mid) and [mid, len). It panics with an
// *IndexError if mid > len.
func (v View[T]) SplitAt(mid int) (View[T], View[T]) {
	checkSplit("split_at", mid, v.n)
	return v.sub(0, mid), v.sub(mid, v.n)
}

// SplitAtChecked is SplitAt with mid clamped to [0, len]; it never panics.
func (v View[T]) SplitAtChecked(mid int) (View[T], View[T]) {
	mid = min(max(mid, 0), v.n)
	return v.sub(0, mid), v.sub(mid, v.n)
}

// SplitOnce splits around the first element matching pred. The matching
// element belongs to neither half. ok is false when nothing matches.
func (v View[T]) SplitOnce(pred func(T) bool) (View[T], View[T], bool) {
	for i := 0; i < v.n; i++ {
		if pred(v.seq.Index(v.off + i)) {
			return v.sub(0, i), v.sub(i+1, v.n), true
		}
	}
	return View[T]{}, View[T]{}, false
}

// StartsWith reports whether needle is a prefix of v. An empty needle always
// matches.
func (v View[T]) StartsWith(needle []T) bool {
	if len(needle) > v.n {
		return false
	}
	for i, x := range needle {
		if !equal(v.seq.Index(v.off+i), x) {
			return false
		}
	}
	return true
}

// EndsWith reports whether needle is a suffix of v. An empty needle always
// matches.
func (v View[T]) EndsWith(needle []T) bool {
	if len(needle) > v.n {
		return false
	}
	base := v.off + v.n - len(needle)
	for i, x := range needle {
		if !equal(v.seq.Index(base+i), x) {
			return false
		}
	}
	return true
}

func (v View[T]) Contains(x T) bool {
	for i := 0; i < v.n; i++ {
		if equal(v.seq.Index(v.off+i), x) {
			return true
		}
	}
	return false
}

// ContainsAny reports whether at least one element of pattern occurs in v.
// It is not a subset test: one hit is enough.
func (v View[T]) ContainsAny(pattern []T) bool {
	for _, x := range pattern {
		if v.Contains(x) {
			return true
		}
	}
	return false
}

// Windows yields every overlapping window of exactly size elements. It
// panics if size is not positive.
func (v View[T]) Windows(size int) *Windows[T] {
	checkSize("windows", size)
	return &Windows[T]{v: v, size: size}
}

// Chunks yields consecutive non-overlapping chunks of size elements; the
// last one may be shorter. It panics if size is not positive.
func (v View[T]) Chunks(size int) *Chunks[T] {
	checkSize("chunks", size)
	return &Chunks[T]{v: v, size: size}
}

// ChunksExact yields chunks of exactly size elements. The short tail is
// left out and available from Remainder. It panics if size is not positive.
func (v View[T]) ChunksExact(size int) *ChunksExact[T] {
	checkSize("chunks_exact", size)
	whole := v.n - v.n%size
	return &ChunksExact[T]{v: v.sub(0, whole), rem: v.sub(whole, v.n), size: size}
}

// ChunkBy groups runs of consecutive elements where pred holds for every
// adjacent pair.
func (v View[T]) ChunkBy(pred func(a, b T) bool) *ChunkBy[T] {
	return &ChunkBy[T]{v: v, pred: pred}
}

// All iterates over index/value pairs.
func (v View[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < v.n; i++ {
			if !yield(i, v.seq.Index(v.off+i)) {
				return
			}
		}
	}
}

func (v View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < v.n; i++ {
			if !yield(v.seq.Index(v.off + i)) {
				return
			}
		}
	}
}

// ToSlice copies the viewed elements into a new slice.
func (v View[T]) ToSlice() []T {
	out := make([]T, v.n)
	for i := range out {
		out[i] = v.seq.Index(v.off + i)
	}
	return out
}

// ToVec copies the viewed elements into a new owned Vec.
func (v View[T]) ToVec() *Vec[T] {
	s := v.ToSlice()
	return &Vec[T]{buf: &s}
}

// ToVecIn appends a copy of the viewed elements to dst and returns it. A
// bounded dst that fills up stops early with a *CapacityError.
func (v View[T]) ToVecIn(dst *Vec[T]) (*Vec[T], error) {
	return dst, dst.Extend(v.Values())
}

// Repeat returns a Vec holding n back-to-back copies of v.
func (v View[T]) Repeat(n int) *Vec[T] {
	if n <= 0 {
		return New[T]()
	}
	one := v.ToSlice()
	s := make([]T, 0, v.n*n)
	for range n {
		s = append(s, one...)
	}
	return &Vec[T]{buf: &s}
}

// Equal reports element-wise equality.
func (v View[T]) Equal(other View[T]) bool {
	if v.n != other.n {
		return false
	}
	for i := 0; i < v.n; i++ {
		if !equal(v.seq.Index(v.off+i), other.seq.Index(other.off+i)) {
			return false
		}
	}
	return true
}

func (v View[T]) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i := 0; i < v.n; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprint(&sb, v.seq.Index(v.off+i))
	}
	sb.WriteByte(']')
	return sb.String()
}
