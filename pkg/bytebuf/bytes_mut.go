package bytebuf

import (
	"bytes"
	"encoding/binary"
	"math"
	"slices"
	"unicode/utf8"

	"github.com/rawbytedev/borrow"
	"github.com/rawbytedev/borrow/internal/common"
	"github.com/rawbytedev/borrow/option"
)

// BytesMut is a growable byte buffer. Put and friends append without a
// declared length; Freeze turns it into a Bytes without copying.
type BytesMut struct {
	buffer
}

func NewMut() *BytesMut {
	return &BytesMut{buffer{b: []byte{}, live: true}}
}

// WithCapacity preallocates room for n bytes. It is a hint, not a ceiling.
func WithCapacity(n int) *BytesMut {
	return &BytesMut{buffer{b: make([]byte, 0, max(n, 0)), live: true}}
}

func MutFromStr(s string) *BytesMut {
	return &BytesMut{buffer{b: []byte(s), live: true}}
}

// MutFromBytes copies b.
func MutFromBytes(b []byte) *BytesMut {
	return &BytesMut{buffer{b: append([]byte{}, b...), live: true}}
}

func (m *BytesMut) Put(c byte) {
	m.b = append(m.bytes(), c)
}

func (m *BytesMut) PutBytes(p []byte) {
	m.b = append(m.bytes(), p...)
}

func (m *BytesMut) PutStr(s string) {
	m.b = append(m.bytes(), s...)
}

// PutRune appends the UTF-8 encoding of r.
func (m *BytesMut) PutRune(r rune) {
	m.b = utf8.AppendRune(m.bytes(), r)
}

// PutFloat appends f as a big-endian IEEE 754 float32.
func (m *BytesMut) PutFloat(f float32) {
	m.b = binary.BigEndian.AppendUint32(m.bytes(), math.Float32bits(f))
}

// PutUvarint appends v as an unsigned varint. Bytes.Uvarint reads it back.
func (m *BytesMut) PutUvarint(v uint64) {
	m.b = common.WriteVarUintTo(m.bytes(), v)
}

// Freeze moves the storage into a new Bytes without copying. m is dead
// afterwards.
func (m *BytesMut) Freeze() *Bytes {
	return &Bytes{buffer{b: m.take(), live: true}}
}

// Leak moves the storage out to the caller. m is dead afterwards.
func (m *BytesMut) Leak() []byte {
	return m.take()
}

// AsMutView borrows m for in-place writes. Bytes split off the view with
// SplitOffFirst or SplitOffLast are removed from m.
func (m *BytesMut) AsMutView() borrow.MutView[byte] {
	m.bytes()
	return borrow.MutViewOf[byte](m)
}

// SetIndex writes c at i.
func (m *BytesMut) SetIndex(i int, c byte) {
	m.bytes()[i] = c
}

// RemoveAt deletes the byte at i, shifting the tail left.
func (m *BytesMut) RemoveAt(i int) byte {
	b := m.bytes()
	c := b[i]
	m.b = slices.Delete(b, i, i+1)
	return c
}

func (m *BytesMut) Fill(c byte) {
	b := m.bytes()
	for i := range b {
		b[i] = c
	}
}

// FillWith stores f() in every slot, calling f once per byte.
func (m *BytesMut) FillWith(f func() byte) {
	b := m.bytes()
	for i := range b {
		b[i] = f()
	}
}

// Replace writes c at i. Unlike SetIndex it does nothing when i is out of
// range.
func (m *BytesMut) Replace(i int, c byte) {
	b := m.bytes()
	if i < 0 || i >= len(b) {
		return
	}
	b[i] = c
}

// ReplaceWith writes f(old) at i, doing nothing when i is out of range.
func (m *BytesMut) ReplaceWith(i int, f func(old byte) byte) {
	b := m.bytes()
	if i < 0 || i >= len(b) {
		return
	}
	b[i] = f(b[i])
}

// Apply maps f over every byte in place.
func (m *BytesMut) Apply(f func(byte) byte) {
	b := m.bytes()
	for i, x := range b {
		b[i] = f(x)
	}
}

// Truncate keeps the first n bytes. It does nothing when n >= Len.
func (m *BytesMut) Truncate(n int) {
	b := m.bytes()
	if n < 0 || n >= len(b) {
		return
	}
	m.b = b[:n]
}

// SplitOffMut shortens m to [0, at) and returns [at, len) as a new
// BytesMut. The halves share the original array but never overlap.
func (m *BytesMut) SplitOffMut(at int) *BytesMut {
	head, tail := splitOff("split_off_mut", m.bytes(), at)
	m.b = head
	return &BytesMut{buffer{b: tail, live: true}}
}

// Insert places c before index i.
func (m *BytesMut) Insert(i int, c byte) {
	b := m.bytes()
	if i < 0 || i > len(b) {
		panic(&borrow.IndexError{Op: "insert", Index: i, Len: len(b)})
	}
	m.b = slices.Insert(b, i, c)
}

func (m *BytesMut) Pop() option.Option[byte] {
	b := m.bytes()
	if len(b) == 0 {
		return option.None[byte]()
	}
	m.b = b[:len(b)-1]
	return option.Some(b[len(b)-1])
}

// Remove deletes the first occurrence of c and reports whether there was
// one.
func (m *BytesMut) Remove(c byte) bool {
	i := bytes.IndexByte(m.bytes(), c)
	if i < 0 {
		return false
	}
	m.RemoveAt(i)
	return true
}

func (m *BytesMut) Clear() {
	m.b = m.bytes()[:0]
}

// Copy returns an independent copy of m.
func (m *BytesMut) Copy() *BytesMut {
	return MutFromBytes(m.bytes())
}
