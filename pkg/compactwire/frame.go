// Package compactwire is a small framed wire format for carrying a byte
// buffer between processes.
//
// Data frame layout (integers little-endian):
//
//	0  magic 0xCB 0x57
//	2  frame type
//	3  uint32 total frame length, CRC included
//	7  flags
//	8  [uint16 chunk count, count x uint32 chunk offsets]  if FlagHasOffsetTable
//	.. payload, zstd-compressed if FlagCompressed
//	-4 uint32 CRC32 (IEEE) over bytes [3, len-4)
//
// Chunk offsets always index the uncompressed payload.
package compactwire

import (
	"encoding/binary"
	"hash/crc32"
	"iter"

	"github.com/pkg/errors"
	"github.com/rawbytedev/borrow"
	"github.com/rawbytedev/borrow/pkg/bytebuf"
)

const (
	magic0 = 0xCB
	magic1 = 0x57

	TypeData  byte = 0x01
	TypeError byte = 0x02

	FlagHasOffsetTable byte = 1 << 0
	FlagCompressed     byte = 1 << 1

	knownFlags = FlagHasOffsetTable | FlagCompressed

	headerSize = 8 // magic, type, length, flags
	crcSize    = 4
)

var (
	ErrNotFrame           = errors.New("compactwire: not a frame")
	ErrLengthMismatch     = errors.New("compactwire: length mismatch")
	ErrCRCMismatch        = errors.New("compactwire: crc mismatch")
	ErrUnknownCompression = errors.New("compactwire: unknown compression")
	ErrTooManyChunks      = errors.New("compactwire: too many chunks")
)

// Frame is a decoded data frame.
type Frame struct {
	Type  byte
	Flags byte

	// Offsets are the start of each chunk in Payload, empty when the frame
	// carries no offset table.
	Offsets []uint32

	// Payload aliases the frame for uncompressed frames and is freshly
	// allocated otherwise.
	Payload *bytebuf.Bytes
}

// Chunks yields the payload split at Offsets, as views sharing the payload.
// A frame without an offset table yields the whole payload once.
func (f *Frame) Chunks() iter.Seq[borrow.View[byte]] {
	return func(yield func(borrow.View[byte]) bool) {
		v := f.Payload.AsView()
		if len(f.Offsets) == 0 {
			if !v.IsEmpty() {
				yield(v)
			}
			return
		}
		for i, off := range f.Offsets {
			end := v.Len()
			if i+1 < len(f.Offsets) {
				end = int(f.Offsets[i+1])
			}
			head, _ := v.SplitAt(end)
			_, chunk := head.SplitAt(int(off))
			if !yield(chunk) {
				return
			}
		}
	}
}

func writePreamble(m *bytebuf.BytesMut, typ byte) {
	m.Put(magic0)
	m.Put(magic1)
	m.Put(typ)
}

func putUint16(m *bytebuf.BytesMut, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	m.PutBytes(b[:])
}

func putUint32(m *bytebuf.BytesMut, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	m.PutBytes(b[:])
}

// sealFrame patches the length field and appends the CRC.
func sealFrame(m *bytebuf.BytesMut) {
	raw := m.UnsafeBytes()
	total := uint32(len(raw) + crcSize)
	binary.LittleEndian.PutUint32(raw[3:], total)
	putUint32(m, crc32.ChecksumIEEE(raw[3:]))
}

// openFrame checks magic, type, length and CRC and returns the bytes
// between the length field and the CRC.
func openFrame(raw []byte, want byte) (flagsAndBody []byte, err error) {
	if len(raw) < headerSize+crcSize || raw[0] != magic0 || raw[1] != magic1 {
		return nil, ErrNotFrame
	}
	if raw[2] != want {
		return nil, errors.Wrapf(ErrNotFrame, "frame type 0x%02x, want 0x%02x", raw[2], want)
	}
	if n := binary.LittleEndian.Uint32(raw[3:]); int64(n) != int64(len(raw)) {
		return nil, errors.Wrapf(ErrLengthMismatch, "header says %d bytes, got %d", n, len(raw))
	}
	end := len(raw) - crcSize
	if got, want := crc32.ChecksumIEEE(raw[3:end]), binary.LittleEndian.Uint32(raw[end:]); got != want {
		return nil, errors.Wrapf(ErrCRCMismatch, "computed 0x%08x, frame has 0x%08x", got, want)
	}
	return raw[7:end], nil
}
