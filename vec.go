package borrow

import (
	"fmt"
	"iter"
	"slices"

	"github.com/rawbytedev/borrow/option"
)

// Vec is a growable sequence.
//
// Storage is either owned (New, FromSlice, FromSequence, Collect,
// WithCapacity) or aliased (FromAlias): an aliased Vec shares the caller's
// slice header, so appends made by either side are visible to the other.
//
// A Vec may carry a capacity ceiling. While one is set Len never exceeds it
// and pushes past it are refused with a *CapacityError holding the rejected
// element.
//
// After Leak the Vec is dead and every method panics with ErrLeaked.
//
// The zero value is an empty, owned, unbounded Vec ready to use.
type Vec[T any] struct {
	buf     *[]T
	limit   int
	bounded bool
	leaked  bool
}

// New returns an empty, owned, unbounded Vec.
func New[T any]() *Vec[T] {
	var s []T
	return &Vec[T]{buf: &s}
}

// FromAlias wraps the caller's slice without copying. Mutations through
// either side, including appends that go through *p, are shared.
func FromAlias[T any](p *[]T) *Vec[T] {
	if p == nil {
		p = new([]T)
	}
	return &Vec[T]{buf: p}
}

// FromSlice copies s into a new owned Vec.
func FromSlice[T any](s []T) *Vec[T] {
	c := slices.Clone(s)
	return &Vec[T]{buf: &c}
}

// FromSequence copies every element of seq into a new owned Vec.
func FromSequence[T any](seq Sequence[T]) *Vec[T] {
	s := make([]T, seq.Len())
	for i := range s {
		s[i] = seq.Index(i)
	}
	return &Vec[T]{buf: &s}
}

// Collect drains seq into a new owned Vec.
func Collect[T any](seq iter.Seq[T]) *Vec[T] {
	s := slices.Collect(seq)
	return &Vec[T]{buf: &s}
}

// WithCapacity returns an empty owned Vec that holds at most n elements
// until Reserve raises the ceiling.
func WithCapacity[T any](n int) *Vec[T] {
	s := make([]T, 0, max(n, 0))
	return &Vec[T]{buf: &s, limit: max(n, 0), bounded: true}
}

func (v *Vec[T]) ptr() *[]T {
	if v.leaked {
		panic(ErrLeaked)
	}
	if v.buf == nil {
		v.buf = new([]T)
	}
	return v.buf
}

func (v *Vec[T]) Len() int      { return len(*v.ptr()) }
func (v *Vec[T]) IsEmpty() bool { return v.Len() == 0 }

// Capacity returns the ceiling, or None for an unbounded Vec.
func (v *Vec[T]) Capacity() option.Option[int] {
	v.ptr()
	if !v.bounded {
		return option.None[int]()
	}
	return option.Some(v.limit)
}

// Index returns the i'th element, panicking when i is out of range.
func (v *Vec[T]) Index(i int) T {
	s := *v.ptr()
	checkIndex("index", i, len(s))
	return s[i]
}

// SetIndex overwrites the i'th element, panicking when i is out of range.
func (v *Vec[T]) SetIndex(i int, x T) {
	s := *v.ptr()
	checkIndex("set", i, len(s))
	s[i] = x
}

// RemoveAt deletes the i'th element, shifting the tail left, and returns it.
func (v *Vec[T]) RemoveAt(i int) T {
	p := v.ptr()
	checkIndex("remove", i, len(*p))
	x := (*p)[i]
	*p = slices.Delete(*p, i, i+1)
	return x
}

func (v *Vec[T]) Get(i int) option.Option[T] {
	s := *v.ptr()
	if i < 0 || i >= len(s) {
		return option.None[T]()
	}
	return option.Some(s[i])
}

// AsView borrows the current contents without copying.
func (v *Vec[T]) AsView() View[T] {
	v.ptr()
	return ViewOf[T](v)
}

// AsMutView borrows the current contents for in-place writes. Elements split
// off the returned view are removed from v.
func (v *Vec[T]) AsMutView() MutView[T] {
	v.ptr()
	return MutViewOf[T](v)
}

// Push appends x. An unbounded Vec always accepts; a bounded one behaves like
// PushWithinCapacity.
func (v *Vec[T]) Push(x T) error {
	if v.bounded {
		return v.PushWithinCapacity(x)
	}
	p := v.ptr()
	*p = append(*p, x)
	return nil
}

// PushWithinCapacity appends x if there is room under the ceiling. When there
// is not, x comes back untouched inside a *CapacityError.
func (v *Vec[T]) PushWithinCapacity(x T) error {
	p := v.ptr()
	if v.bounded && len(*p) >= v.limit {
		return &CapacityError[T]{Item: x, Capacity: v.limit}
	}
	*p = append(*p, x)
	return nil
}

// Reserve raises the ceiling of a bounded Vec by additional. It does nothing
// to an unbounded one.
func (v *Vec[T]) Reserve(additional int) {
	p := v.ptr()
	if !v.bounded || additional <= 0 {
		return
	}
	v.limit += additional
	*p = slices.Grow(*p, v.limit-len(*p))
}

// ShrinkToFit lowers the ceiling to the current length.
func (v *Vec[T]) ShrinkToFit() {
	p := v.ptr()
	if !v.bounded {
		return
	}
	v.limit = min(len(*p), v.limit)
}

// ShrinkTo lowers the ceiling to max(len, minCapacity). A ceiling already at
// or below minCapacity is left alone.
func (v *Vec[T]) ShrinkTo(minCapacity int) {
	p := v.ptr()
	if !v.bounded || v.limit <= minCapacity {
		return
	}
	v.limit = max(len(*p), minCapacity)
}

func (v *Vec[T]) Pop() option.Option[T] {
	p := v.ptr()
	n := len(*p)
	if n == 0 {
		return option.None[T]()
	}
	x := (*p)[n-1]
	var zero T
	(*p)[n-1] = zero
	*p = (*p)[:n-1]
	return option.Some(x)
}

// PopIf pops the last element only if pred accepts it.
func (v *Vec[T]) PopIf(pred func(T) bool) option.Option[T] {
	s := *v.ptr()
	if len(s) == 0 || !pred(s[len(s)-1]) {
		return option.None[T]()
	}
	return v.Pop()
}

// Retain keeps the elements pred accepts, in their original order.
func (v *Vec[T]) Retain(pred func(T) bool) {
	p := v.ptr()
	*p = slices.DeleteFunc(*p, func(x T) bool { return !pred(x) })
}

// DedupBy collapses runs of adjacent elements for which sameBucket(cur, prev)
// holds, keeping the first of each run. Repeats that are not adjacent stay;
// sort first for a full dedup.
func (v *Vec[T]) DedupBy(sameBucket func(a, b T) bool) {
	p := v.ptr()
	s := *p
	if len(s) <= 1 {
		return
	}
	w := 1
	for r := 1; r < len(s); r++ {
		if sameBucket(s[r], s[w-1]) {
			continue
		}
		s[w] = s[r]
		w++
	}
	clear(s[w:])
	*p = s[:w]
}

// Dedup is DedupBy with value equality.
func (v *Vec[T]) Dedup() {
	v.DedupBy(equal[T])
}

// SplitOff moves [at, len) into a new owned Vec and truncates v to [0, at).
// It panics with an *IndexError if at > len.
func (v *Vec[T]) SplitOff(at int) *Vec[T] {
	p := v.ptr()
	checkSplit("split_off", at, len(*p))
	tail := slices.Clone((*p)[at:])
	clear((*p)[at:])
	*p = (*p)[:at]
	return &Vec[T]{buf: &tail}
}

// Leak hands the storage to the caller and kills v.
func (v *Vec[T]) Leak() []T {
	p := v.ptr()
	v.buf, v.leaked = nil, true
	v.limit, v.bounded = 0, false
	return *p
}

// Truncate keeps the first n elements.
func (v *Vec[T]) Truncate(n int) {
	p := v.ptr()
	if n < 0 || n >= len(*p) {
		return
	}
	clear((*p)[n:])
	*p = (*p)[:n]
}

// Insert places x before index i, shifting the tail right. Inserting into a
// full bounded Vec fails like PushWithinCapacity.
func (v *Vec[T]) Insert(i int, x T) error {
	p := v.ptr()
	checkSplit("insert", i, len(*p))
	if v.bounded && len(*p) >= v.limit {
		return &CapacityError[T]{Item: x, Capacity: v.limit}
	}
	*p = slices.Insert(*p, i, x)
	return nil
}

// Remove deletes and returns the i'th element.
func (v *Vec[T]) Remove(i int) T {
	return v.RemoveAt(i)
}

// SwapRemove deletes the i'th element by moving the last one into its slot.
func (v *Vec[T]) SwapRemove(i int) T {
	p := v.ptr()
	n := len(*p)
	checkIndex("swap_remove", i, n)
	x := (*p)[i]
	(*p)[i] = (*p)[n-1]
	var zero T
	(*p)[n-1] = zero
	*p = (*p)[:n-1]
	return x
}

// Extend pushes every element of seq. On a bounded Vec it stops at the first
// refused element and returns its *CapacityError.
func (v *Vec[T]) Extend(seq iter.Seq[T]) error {
	for x := range seq {
		if err := v.Push(x); err != nil {
			return err
		}
	}
	return nil
}

// IndexOf returns the index of the first element equal to x.
func (v *Vec[T]) IndexOf(x T) option.Option[int] {
	for i, y := range *v.ptr() {
		if equal(x, y) {
			return option.Some(i)
		}
	}
	return option.None[int]()
}

// Count returns how many elements equal x.
func (v *Vec[T]) Count(x T) int {
	n := 0
	for _, y := range *v.ptr() {
		if equal(x, y) {
			n++
		}
	}
	return n
}

func (v *Vec[T]) Clear() {
	p := v.ptr()
	clear(*p)
	*p = (*p)[:0]
}

// Clone returns an owned copy with the same ceiling.
func (v *Vec[T]) Clone() *Vec[T] {
	s := slices.Clone(*v.ptr())
	if s == nil {
		s = []T{}
	}
	return &Vec[T]{buf: &s, limit: v.limit, bounded: v.bounded}
}

// SortFunc sorts in place with cmp, as slices.SortFunc does.
func (v *Vec[T]) SortFunc(cmp func(a, b T) int) {
	slices.SortFunc(*v.ptr(), cmp)
}

func (v *Vec[T]) All() iter.Seq2[int, T] {
	return slices.All(*v.ptr())
}

func (v *Vec[T]) Values() iter.Seq[T] {
	return slices.Values(*v.ptr())
}

func (v *Vec[T]) String() string {
	if v.leaked {
		return "Vec(<leaked>)"
	}
	return fmt.Sprint(*v.ptr())
}
