package option

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSomeNone(t *testing.T) {
	s := Some(3)
	require.True(t, s.IsSome())
	require.Equal(t, 3, s.Unwrap())
	v, ok := s.Get()
	require.True(t, ok)
	require.Equal(t, 3, v)

	n := None[int]()
	require.True(t, n.IsNone())
	require.Equal(t, 7, n.UnwrapOr(7))
	require.Equal(t, 9, n.UnwrapOrElse(func() int { return 9 }))
	require.Panics(t, func() { n.Unwrap() })
	require.PanicsWithValue(t, "boom", func() { n.Expect("boom") })

	var zero Option[string]
	assert.True(t, zero.IsNone())
}

func TestMap(t *testing.T) {
	got := Map(Some(12), strconv.Itoa)
	require.Equal(t, Some("12"), got)
	require.True(t, Map(None[int](), strconv.Itoa).IsNone())
}

func TestString(t *testing.T) {
	assert.Equal(t, "Some(1)", Some(1).String())
	assert.Equal(t, "None", None[int]().String())
}
