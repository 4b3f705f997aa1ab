// Package bytebuf provides an immutable byte buffer (Bytes) and a growable
// mutable one (BytesMut) with zero-copy moves between the two.
//
// Freeze, ToMut and Leak are moves: the destination takes over the exact
// backing array and the source is cleared. Any later use of the source,
// including views taken from it before the move, panics with ErrMoved.
package bytebuf

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/rawbytedev/borrow"
	"github.com/rawbytedev/borrow/internal/common"
	"github.com/rawbytedev/borrow/option"
)

var ErrMoved = errors.New("bytebuf: use of moved buffer")

// buffer is the storage and read surface shared by Bytes and BytesMut.
type buffer struct {
	b    []byte
	live bool
}

func (x *buffer) bytes() []byte {
	if !x.live {
		panic(ErrMoved)
	}
	return x.b
}

// take empties x and hands back its storage.
func (x *buffer) take() []byte {
	b := x.bytes()
	x.b, x.live = nil, false
	return b
}

func (x *buffer) Len() int      { return len(x.bytes()) }
func (x *buffer) IsEmpty() bool { return x.Len() == 0 }

// Index returns the i'th byte.
func (x *buffer) Index(i int) byte { return x.bytes()[i] }

// AsView borrows the buffer as a byte view. The view reads through the
// buffer, so it panics with ErrMoved once the buffer has been moved.
func (x *buffer) AsView() borrow.View[byte] {
	x.bytes()
	return borrow.ViewOf[byte](x)
}

func (x *buffer) Get(i int) option.Option[byte] { return x.AsView().Get(i) }
func (x *buffer) MustGet(i int) byte            { return x.AsView().MustGet(i) }
func (x *buffer) First() option.Option[byte]    { return x.AsView().First() }
func (x *buffer) Last() option.Option[byte]     { return x.AsView().Last() }

func (x *buffer) SplitAt(mid int) (borrow.View[byte], borrow.View[byte]) {
	return x.AsView().SplitAt(mid)
}

func (x *buffer) SplitAtChecked(mid int) (borrow.View[byte], borrow.View[byte]) {
	return x.AsView().SplitAtChecked(mid)
}

func (x *buffer) SplitFirst() (byte, borrow.View[byte], bool) { return x.AsView().SplitFirst() }
func (x *buffer) SplitLast() (byte, borrow.View[byte], bool)  { return x.AsView().SplitLast() }

// SplitOnce splits around the first byte pred accepts, which belongs to
// neither half.
func (x *buffer) SplitOnce(pred func(byte) bool) (borrow.View[byte], borrow.View[byte], bool) {
	return x.AsView().SplitOnce(pred)
}

func (x *buffer) StartsWith(prefix []byte) bool { return bytes.HasPrefix(x.bytes(), prefix) }
func (x *buffer) EndsWith(suffix []byte) bool   { return bytes.HasSuffix(x.bytes(), suffix) }
func (x *buffer) Contains(c byte) bool          { return bytes.IndexByte(x.bytes(), c) >= 0 }

// ContainsAny reports whether any byte of set occurs in the buffer.
func (x *buffer) ContainsAny(set []byte) bool { return x.AsView().ContainsAny(set) }

func (x *buffer) Windows(size int) *borrow.Windows[byte] { return x.AsView().Windows(size) }
func (x *buffer) Chunks(size int) *borrow.Chunks[byte]   { return x.AsView().Chunks(size) }

func (x *buffer) ChunksExact(size int) *borrow.ChunksExact[byte] {
	return x.AsView().ChunksExact(size)
}

func (x *buffer) ChunkBy(pred func(a, b byte) bool) *borrow.ChunkBy[byte] {
	return x.AsView().ChunkBy(pred)
}

// ToBytes copies the contents into a new slice.
func (x *buffer) ToBytes() []byte {
	return append([]byte{}, x.bytes()...)
}

// UnsafeBytes returns the storage itself, not a copy. The caller must not
// write to it, nor keep it past a move of the buffer.
func (x *buffer) UnsafeBytes() []byte { return x.bytes() }

// Equal reports whether other holds the same bytes.
func (x *buffer) Equal(other borrow.Sequence[byte]) bool {
	b := x.bytes()
	if other.Len() != len(b) {
		return false
	}
	for i, c := range b {
		if other.Index(i) != c {
			return false
		}
	}
	return true
}

func (x *buffer) EqualBytes(b []byte) bool { return bytes.Equal(x.bytes(), b) }

// Uvarint decodes the unsigned varint starting at off. n is the number of
// bytes read, or 0 when the buffer ends mid-varint.
func (x *buffer) Uvarint(off int) (v uint64, n int) {
	return common.ReadVarUint(x.bytes()[off:])
}

func (x *buffer) String() string {
	if !x.live {
		return "<moved>"
	}
	return fmt.Sprint(x.b)
}
