package bytebuf

import "github.com/rawbytedev/borrow"

// Bytes is an immutable byte buffer. It has no write methods, so
// borrow.MutViewOf rejects it; ToMut is the way to get write access.
type Bytes struct {
	buffer
}

func New() *Bytes {
	return &Bytes{buffer{b: []byte{}, live: true}}
}

// FromStr copies the UTF-8 encoding of s.
func FromStr(s string) *Bytes {
	return &Bytes{buffer{b: []byte(s), live: true}}
}

// FromBytes copies b.
func FromBytes(b []byte) *Bytes {
	return &Bytes{buffer{b: append([]byte{}, b...), live: true}}
}

// FromStatic wraps b without copying. The caller must not write to b while
// the Bytes, or anything derived from it, is in use.
func FromStatic(b []byte) *Bytes {
	if b == nil {
		b = []byte{}
	}
	return &Bytes{buffer{b: b, live: true}}
}

// Zeroed returns n zero bytes.
func Zeroed(n int) *Bytes {
	return &Bytes{buffer{b: make([]byte, n), live: true}}
}

// ToMut moves the storage into a new BytesMut without copying. b is dead
// afterwards.
func (b *Bytes) ToMut() *BytesMut {
	return &BytesMut{buffer{b: b.take(), live: true}}
}

// Leak moves the storage out to the caller. b is dead afterwards.
func (b *Bytes) Leak() []byte {
	return b.take()
}

// SplitOff shortens b to [0, at) and returns [at, len) as a new Bytes. Both
// halves keep sharing the original array.
func (b *Bytes) SplitOff(at int) *Bytes {
	head, tail := splitOff("split_off", b.bytes(), at)
	b.b = head
	return &Bytes{buffer{b: tail, live: true}}
}

// Copy returns an independent copy of b.
func (b *Bytes) Copy() *Bytes {
	return FromBytes(b.bytes())
}

// splitOff cuts s at at, capping the head so that appending to it cannot
// overwrite the tail.
func splitOff(op string, s []byte, at int) (head, tail []byte) {
	if at < 0 || at > len(s) {
		panic(&borrow.IndexError{Op: op, Index: at, Len: len(s)})
	}
	return s[:at:at], s[at:]
}
