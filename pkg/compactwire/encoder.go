package compactwire

import (
	"math"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
	"github.com/rawbytedev/borrow/pkg/bytebuf"
)

// Encoder builds frames. It reuses one zstd encoder and is not safe for
// concurrent use.
type Encoder struct {
	opts Options
	zenc *zstd.Encoder
}

func NewEncoder(opts Options) (*Encoder, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	e := &Encoder{opts: opts}
	if opts.Compression == CompressionZstd {
		zenc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(opts.Level)))
		if err != nil {
			return nil, errors.Wrap(err, "compactwire: zstd encoder")
		}
		e.zenc = zenc
	}
	return e, nil
}

// Close releases the zstd encoder.
func (e *Encoder) Close() error {
	if e.zenc == nil {
		return nil
	}
	return e.zenc.Close()
}

// EncodeData wraps payload in a data frame. The payload is only read.
func (e *Encoder) EncodeData(payload *bytebuf.Bytes) (*bytebuf.Bytes, error) {
	var flags byte
	var offsets []uint32
	if e.opts.ChunkSize > 0 && !payload.IsEmpty() {
		flags |= FlagHasOffsetTable
		off := 0
		for c := range payload.Chunks(e.opts.ChunkSize).All() {
			offsets = append(offsets, uint32(off))
			off += c.Len()
		}
		if len(offsets) > math.MaxUint16 {
			return nil, errors.Wrapf(ErrTooManyChunks, "%d chunks of %d bytes", len(offsets), e.opts.ChunkSize)
		}
	}

	body := payload.UnsafeBytes()
	if e.zenc != nil {
		body = e.zenc.EncodeAll(body, nil)
		flags |= FlagCompressed
	}

	size := headerSize + len(body) + crcSize
	if flags&FlagHasOffsetTable != 0 {
		size += 2 + 4*len(offsets)
	}
	if int64(size) > math.MaxUint32 {
		return nil, errors.Wrapf(ErrLengthMismatch, "frame of %d bytes does not fit the length field", size)
	}

	m := bytebuf.WithCapacity(size)
	writePreamble(m, TypeData)
	putUint32(m, 0)
	m.Put(flags)
	if flags&FlagHasOffsetTable != 0 {
		putUint16(m, uint16(len(offsets)))
		for _, off := range offsets {
			putUint32(m, off)
		}
	}
	m.PutBytes(body)
	sealFrame(m)
	return m.Freeze(), nil
}

// EncodeError builds an error frame carrying code and msg.
func (e *Encoder) EncodeError(code byte, msg string) (*bytebuf.Bytes, error) {
	if len(msg) > math.MaxUint16 {
		return nil, errors.Errorf("compactwire: error message of %d bytes is too long", len(msg))
	}
	m := bytebuf.WithCapacity(headerSize + 2 + len(msg) + crcSize)
	writePreamble(m, TypeError)
	putUint32(m, 0)
	m.Put(code)
	putUint16(m, uint16(len(msg)))
	m.PutStr(msg)
	sealFrame(m)
	return m.Freeze(), nil
}
