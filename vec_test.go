package borrow

import (
	"cmp"
	"slices"
	"strings"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestVecConstruction(t *testing.T) {
	require.Equal(t, 0, New[int]().Len())

	var zero Vec[int]
	require.NoError(t, zero.Push(1))
	require.Equal(t, 1, zero.Len())

	src := []int{1, 2}
	owned := FromSlice(src)
	src[0] = 100
	require.Equal(t, 1, owned.Index(0))

	require.Equal(t, []int{1, 2, 3}, Collect(slices.Values([]int{1, 2, 3})).Leak())
	require.Equal(t, []byte("hi"), FromSequence[byte](String("hi")).Leak())
}

func TestVecAliasVisibility(t *testing.T) {
	l := []int{1}
	v := FromAlias(&l)
	l = append(l, 2)
	require.Equal(t, 2, v.Len())
	require.Equal(t, 2, v.Index(1))

	require.NoError(t, v.Push(3))
	require.Equal(t, []int{1, 2, 3}, l)

	v.SetIndex(0, 10)
	require.Equal(t, 10, l[0])
}

func TestVecCapacityScenario(t *testing.T) {
	v := WithCapacity[int](2)
	require.NoError(t, v.Push(1))
	require.NoError(t, v.Push(2))

	err := v.Push(3)
	require.ErrorIs(t, err, ErrCapacityExceeded)
	var ce *CapacityError[int]
	require.ErrorAs(t, err, &ce)
	require.Equal(t, 3, ce.Item)
	require.Equal(t, 2, v.Len())
	require.Equal(t, 2, v.Capacity().Unwrap())
}

func TestVecCapacityInvariant(t *testing.T) {
	condition := func(n uint8, items []int) bool {
		limit := int(n % 16)
		v := WithCapacity[int](limit)
		for _, x := range items {
			if err := v.PushWithinCapacity(x); err != nil {
				ce, ok := err.(*CapacityError[int])
				if !ok || ce.Item != x {
					return false
				}
			}
			if v.Len() > limit {
				return false
			}
		}
		return v.Len() == min(limit, len(items))
	}
	require.NoError(t, quick.Check(condition, &quick.Config{}))
}

func TestVecUnboundedCapacity(t *testing.T) {
	v := FromSlice([]int{1, 2, 3})
	require.True(t, v.Capacity().IsNone())
	v.Reserve(10)
	v.ShrinkToFit()
	v.ShrinkTo(1)
	require.True(t, v.Capacity().IsNone())
	require.NoError(t, v.PushWithinCapacity(4))
}

func TestVecReserveShrink(t *testing.T) {
	v := WithCapacity[int](1)
	require.NoError(t, v.Push(1))
	require.Error(t, v.Push(2))
	v.Reserve(1)
	require.NoError(t, v.Push(2))
	require.Equal(t, 2, v.Capacity().Unwrap())

	v.Reserve(100)
	v.ShrinkToFit()
	require.Equal(t, 2, v.Capacity().Unwrap())

	v = WithCapacity[int](10)
	require.NoError(t, v.Extend(slices.Values([]int{1, 2, 3})))
	v.ShrinkTo(4)
	require.Equal(t, 4, v.Capacity().Unwrap())
	v.ShrinkTo(0)
	require.Equal(t, 3, v.Capacity().Unwrap())
	v.ShrinkTo(8)
	require.Equal(t, 3, v.Capacity().Unwrap())
}

func TestVecPop(t *testing.T) {
	v := FromSlice([]int{1, 2, 3})
	require.Equal(t, 3, v.Pop().Unwrap())
	require.True(t, v.PopIf(func(x int) bool { return x > 5 }).IsNone())
	require.Equal(t, 2, v.Len())
	require.Equal(t, 2, v.PopIf(func(x int) bool { return x == 2 }).Unwrap())
	v.Pop()
	require.True(t, v.Pop().IsNone())
	require.True(t, v.PopIf(func(int) bool { return true }).IsNone())
}

func TestVecRetain(t *testing.T) {
	v := FromSlice([]int{1, 2, 3, 4, 5, 6})
	v.Retain(func(x int) bool { return x%2 == 0 })
	require.Equal(t, []int{2, 4, 6}, v.Leak())
}

func TestVecDedup(t *testing.T) {
	v := FromSlice([]int{1, 2, 2, 3, 2})
	v.Dedup()
	require.Equal(t, []int{1, 2, 3, 2}, v.Leak())

	w := FromSlice([]string{"foo", "bar", "Bar", "baz", "bar"})
	w.DedupBy(func(a, b string) bool { return strings.EqualFold(a, b) })
	require.Equal(t, []string{"foo", "bar", "baz", "bar"}, w.Leak())

	one := FromSlice([]int{1})
	one.Dedup()
	require.Equal(t, 1, one.Len())
}

func TestVecSplitOff(t *testing.T) {
	v := FromSlice([]int{1, 2, 3, 4})
	tail := v.SplitOff(2)
	require.Equal(t, []int{1, 2}, v.AsView().ToSlice())
	require.Equal(t, []int{3, 4}, tail.AsView().ToSlice())

	require.True(t, v.SplitOff(2).IsEmpty())
	require.PanicsWithError(t, "split_off: index 3 out of range [0:2]", func() { v.SplitOff(3) })
}

func TestVecLeak(t *testing.T) {
	v := FromSlice([]int{1, 2, 3})
	owned := v.Leak()
	owned[0]++
	require.Equal(t, []int{2, 2, 3}, owned)

	require.PanicsWithError(t, ErrLeaked.Error(), func() { v.Len() })
	require.PanicsWithError(t, ErrLeaked.Error(), func() { _ = v.Push(1) })
	require.PanicsWithError(t, ErrLeaked.Error(), func() { v.AsView() })
	require.PanicsWithError(t, ErrLeaked.Error(), func() { v.Leak() })
	require.Equal(t, "Vec(<leaked>)", v.String())
}

func TestVecEditing(t *testing.T) {
	v := FromSlice([]int{1, 2, 3, 4, 5})
	v.Truncate(4)
	require.NoError(t, v.Insert(0, 0))
	require.Equal(t, 2, v.Remove(2))
	require.Equal(t, 0, v.SwapRemove(0))
	require.Equal(t, []int{4, 1, 3}, v.AsView().ToSlice())

	assert.Equal(t, 1, v.IndexOf(1).Unwrap())
	assert.True(t, v.IndexOf(2).IsNone())
	assert.Equal(t, 1, v.Count(3))
	assert.Equal(t, 0, v.Count(2))

	v.SortFunc(cmp.Compare[int])
	require.Equal(t, "[1 3 4]", v.String())

	c := v.Clone()
	c.SetIndex(0, 100)
	require.Equal(t, 1, v.Index(0))

	v.Clear()
	require.True(t, v.IsEmpty())
	require.True(t, v.Get(0).IsNone())

	full := WithCapacity[int](0)
	require.ErrorIs(t, full.Insert(0, 1), ErrCapacityExceeded)
}

func TestVecViews(t *testing.T) {
	v := FromSlice([]int{1, 2, 3})
	m := v.AsMutView()
	m.Swap(0, 2)
	require.Equal(t, []int{3, 2, 1}, v.AsView().ToSlice())
	var sum int
	for _, x := range v.All() {
		sum += x
	}
	require.Equal(t, 6, sum)
	require.Equal(t, []int{3, 2, 1}, slices.Collect(v.Values()))
}

func TestVecYAML(t *testing.T) {
	type doc struct {
		Ports *Vec[int] `yaml:"ports"`
	}
	out, err := yaml.Marshal(doc{Ports: FromSlice([]int{80, 443})})
	require.NoError(t, err)
	assert.Equal(t, "ports:\n    - 80\n    - 443\n", string(out))

	var d doc
	require.NoError(t, yaml.Unmarshal(out, &d))
	require.Equal(t, []int{80, 443}, d.Ports.Leak())

	bounded := WithCapacity[int](1)
	err = yaml.Unmarshal([]byte("[1, 2]"), bounded)
	require.ErrorIs(t, err, ErrCapacityExceeded)

	require.Error(t, yaml.Unmarshal([]byte("a: 1"), New[int]()))
}
