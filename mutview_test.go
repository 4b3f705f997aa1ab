package borrow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type box struct{ n int }

func (b *box) Clone() *box { return &box{n: b.n} }

// countingSeq records writes so tests can tell a no-op swap from a real one.
type countingSeq struct {
	Slice[int]
	writes int
}

func (c *countingSeq) SetIndex(i, v int) {
	c.writes++
	c.Slice[i] = v
}

func TestMutViewRejectsImmutable(t *testing.T) {
	err := recoverErr(t, func() { MutViewOf[int](Frozen[int]{1, 2}) })
	require.ErrorIs(t, err, ErrImmutable)

	err = recoverErr(t, func() { MutViewOf[byte](String("abc")) })
	require.ErrorIs(t, err, ErrImmutable)

	require.NotPanics(t, func() { MutViewOf[int](Slice[int]{1}) })
}

func TestMutViewWritesThrough(t *testing.T) {
	s := []int{1, 2, 3}
	m := NewMutView(s)
	m.Set(0, 10)
	require.Equal(t, []int{10, 2, 3}, s)
	require.Equal(t, 10, m.AsView().First().Unwrap())

	err := recoverErr(t, func() { m.Set(3, 0) })
	require.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestMutViewFill(t *testing.T) {
	s := make([]*box, 3)
	NewMutView(s).Fill(&box{n: 1})
	s[0].n = 5
	// every slot shares the one value
	assert.Equal(t, 5, s[2].n)

	n := 0
	NewMutView(s).FillWith(func() *box { n++; return &box{n: n} })
	assert.Equal(t, []int{1, 2, 3}, []int{s[0].n, s[1].n, s[2].n})
	s[0].n = 9
	assert.Equal(t, 2, s[1].n)
}

func TestMutViewCopyAndClone(t *testing.T) {
	src := []*box{{n: 1}, {n: 2}}

	shallow := make([]*box, 2)
	require.NoError(t, NewMutView(shallow).CopyFromSlice(src))
	require.Same(t, src[0], shallow[0])

	deep := make([]*box, 2)
	require.NoError(t, NewMutView(deep).CloneFromSlice(src))
	require.NotSame(t, src[0], deep[0])
	require.Equal(t, src[1].n, deep[1].n)

	ints := []int{0, 0}
	require.NoError(t, NewMutView(ints).CloneFromSlice([]int{3, 4}))
	require.Equal(t, []int{3, 4}, ints)

	err := NewMutView(ints).CopyFromSlice([]int{1})
	require.ErrorIs(t, err, ErrLengthMismatch)
	require.EqualError(t, err, "copy_from_slice: length mismatch: destination has 2 elements, source has 1")
	require.ErrorIs(t, NewMutView(ints).CloneFromSlice(nil), ErrLengthMismatch)
	require.Equal(t, []int{3, 4}, ints)
}

func TestMutViewSwap(t *testing.T) {
	s := []int{1, 2}
	NewMutView(s).Swap(0, 1)
	require.Equal(t, []int{2, 1}, s)

	c := &countingSeq{Slice: Slice[int]{7, 7, 8}}
	m := MutViewOf[int](c)
	m.Swap(0, 1)
	require.Equal(t, 0, c.writes)
	m.SwapUnchecked(0, 1)
	require.Equal(t, 2, c.writes)
	m.Swap(1, 2)
	require.Equal(t, 4, c.writes)
	require.Equal(t, Slice[int]{7, 8, 7}, c.Slice)

	err := recoverErr(t, func() { m.Swap(0, 3) })
	require.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestMutViewSwapWithSlice(t *testing.T) {
	a, b := []int{1, 2, 3}, []int{7, 8, 9}
	require.NoError(t, NewMutView(a).SwapWithSlice(NewMutView(b)))
	require.Equal(t, []int{7, 8, 9}, a)
	require.Equal(t, []int{1, 2, 3}, b)

	require.ErrorIs(t, NewMutView(a).SwapWithSlice(NewMutView(b[:1])), ErrLengthMismatch)

	s := []int{1, 2, 3, 4}
	l, r := NewMutView(s).SplitAtMut(2)
	require.NoError(t, l.SwapWithSlice(r))
	require.Equal(t, []int{3, 4, 1, 2}, s)
}

func TestMutViewSplitAtMut(t *testing.T) {
	s := []int{1, 2, 3, 4, 5}
	l, r := NewMutView(s).SplitAtMut(2)
	l.Fill(0)
	r.Set(0, 9)
	require.Equal(t, []int{0, 0, 9, 4, 5}, s)

	require.PanicsWithError(t, "split_at_mut: index 6 out of range [0:5]", func() { NewMutView(s).SplitAtMut(6) })

	l, r = NewMutView(s).SplitAtMutChecked(99)
	require.Equal(t, 5, l.Len())
	require.Equal(t, 0, r.Len())
}

func TestMutViewSplitFirstLastMut(t *testing.T) {
	s := []int{1, 2, 3}
	x, rest, ok := NewMutView(s).SplitFirstMut()
	require.True(t, ok)
	require.Equal(t, 1, x)
	rest.Set(0, 20)
	require.Equal(t, []int{1, 20, 3}, s)

	x, rest, ok = NewMutView(s).SplitLastMut()
	require.True(t, ok)
	require.Equal(t, 3, x)
	require.Equal(t, 2, rest.Len())

	_, _, ok = NewMutView[int](nil).SplitFirstMut()
	require.False(t, ok)
}

func TestSplitOffOverSlice(t *testing.T) {
	s := []int{1, 2, 3}
	m := NewMutView(s)
	require.Equal(t, 1, m.SplitOffFirst().Unwrap())
	require.Equal(t, 3, m.SplitOffLast().Unwrap())
	require.Equal(t, []int{2}, m.ToSlice())
	// a plain slice cannot shrink, only the view does
	require.Equal(t, []int{1, 2, 3}, s)

	m.SplitOffFirst()
	require.True(t, m.SplitOffFirst().IsNone())
	require.True(t, m.SplitOffLast().IsNone())
}

func TestSplitOffOverVec(t *testing.T) {
	v := FromSlice([]int{1, 2, 3, 4})
	m := v.AsMutView()
	require.Equal(t, 1, m.SplitOffFirst().Unwrap())
	require.Equal(t, 4, m.SplitOffLast().Unwrap())
	require.Equal(t, []int{2, 3}, m.ToSlice())
	require.Equal(t, 2, v.Len())
	require.Equal(t, []int{2, 3}, v.Leak())
}

func TestMutViewReverse(t *testing.T) {
	s := []int{1, 2, 3, 4, 5}
	NewMutView(s).Reverse()
	require.Equal(t, []int{5, 4, 3, 2, 1}, s)
}
