package zc

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/rawbytedev/borrow/pkg/bytebuf"
	"github.com/stretchr/testify/require"
)

func TestFromRawPartsAliases(t *testing.T) {
	arr := [4]byte{1, 2, 3, 4}
	b := FromRawParts(unsafe.Pointer(&arr[0]), 4, Trusted)
	require.Equal(t, 4, b.Len())

	arr[0] = 9
	require.Equal(t, byte(9), b.Index(0))

	tail := FromRawParts(unsafe.Pointer(&arr[2]), 2, Trusted)
	require.Equal(t, []byte{3, 4}, tail.ToBytes())
}

func TestFromRawPartsMut(t *testing.T) {
	arr := [3]byte{'a', 'b', 'c'}
	m := FromRawPartsMut(unsafe.Pointer(&arr[0]), 3, Trusted)
	m.SetIndex(1, 'B')
	m.Apply(func(c byte) byte { return c &^ 0x20 })
	require.Equal(t, [3]byte{'A', 'B', 'C'}, arr)
}

func TestToRawPartsRoundTrip(t *testing.T) {
	src := []byte("round trip")
	b := bytebuf.FromStatic(src)

	ptr, n := ToRawParts(b)
	require.Equal(t, unsafe.Pointer(&src[0]), ptr)
	require.Equal(t, len(src), n)
	require.PanicsWithError(t, bytebuf.ErrMoved.Error(), func() { b.Len() })

	back := FromRawParts(ptr, n, Trusted)
	require.Equal(t, "round trip", back.ToStr())
}

func TestNilPointer(t *testing.T) {
	require.True(t, FromRawParts(nil, 0, Trusted).IsEmpty())
	require.PanicsWithError(t, ErrNilPointer.Error(), func() { FromRawParts(nil, 1, Trusted) })

	loose := Options{}
	require.Nil(t, SliceFromRawParts[int](nil, 3, Trusted, loose))
}

func TestSliceFromRawParts(t *testing.T) {
	words := []uint32{10, 20, 30}
	s := SliceFromRawParts[uint32](unsafe.Pointer(&words[0]), 3, Trusted, DefaultOptions())
	s[1] = 21
	require.Equal(t, []uint32{10, 21, 30}, words)

	raw := make([]uint64, 2)
	odd := unsafe.Add(unsafe.Pointer(&raw[0]), 1)
	var err error
	func() {
		defer func() { err, _ = recover().(error) }()
		SliceFromRawParts[uint32](odd, 1, Trusted, DefaultOptions())
	}()
	require.True(t, errors.Is(err, ErrMisaligned), "got %v", err)
}

func TestString(t *testing.T) {
	src := []byte("shared")
	b := bytebuf.FromStatic(src)

	copied := String(b, DefaultOptions())
	shared := String(b, Options{UnsafeStrings: true})
	require.Equal(t, "shared", copied)
	require.Equal(t, "shared", shared)
	require.Equal(t, unsafe.Pointer(&src[0]), unsafe.Pointer(unsafe.StringData(shared)))
	require.NotEqual(t, unsafe.Pointer(&src[0]), unsafe.Pointer(unsafe.StringData(copied)))

	require.Equal(t, "", String(bytebuf.New(), Options{UnsafeStrings: true}))
}

func BenchmarkString(b *testing.B) {
	buf := bytebuf.FromStr("a moderately sized payload for string conversion")
	for _, bc := range []struct {
		name string
		opts Options
	}{
		{"copy", DefaultOptions()},
		{"unsafe", Options{UnsafeStrings: true}},
	} {
		b.Run(bc.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = String(buf, bc.opts)
			}
		})
	}
}
