package compactwire

import (
	"encoding/binary"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
	"github.com/rawbytedev/borrow/pkg/bytebuf"
	"github.com/sirupsen/logrus"
)

// Decoder parses frames. It is not safe for concurrent use.
type Decoder struct {
	opts Options
	zdec *zstd.Decoder
}

func NewDecoder(opts Options) (*Decoder, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	zdec, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(opts.MaxDecodedSize))
	if err != nil {
		return nil, errors.Wrap(err, "compactwire: zstd decoder")
	}
	return &Decoder{opts: opts, zdec: zdec}, nil
}

func (d *Decoder) Close() {
	d.zdec.Close()
}

// DecodeData validates a data frame and returns its contents. For an
// uncompressed frame the payload shares the frame's memory, so frame must
// not be written while the result is in use.
func (d *Decoder) DecodeData(frame *bytebuf.Bytes) (*Frame, error) {
	f, err := d.decodeData(frame.UnsafeBytes())
	if err != nil {
		d.reject(frame, err)
		return nil, err
	}
	return f, nil
}

func (d *Decoder) decodeData(raw []byte) (*Frame, error) {
	rest, err := openFrame(raw, TypeData)
	if err != nil {
		return nil, err
	}
	flags := rest[0]
	rest = rest[1:]
	if flags&^knownFlags != 0 {
		return nil, errors.Wrapf(ErrUnknownCompression, "flags 0x%02x", flags)
	}

	var offsets []uint32
	if flags&FlagHasOffsetTable != 0 {
		if len(rest) < 2 {
			return nil, errors.Wrap(ErrLengthMismatch, "truncated offset table")
		}
		n := int(binary.LittleEndian.Uint16(rest))
		rest = rest[2:]
		if len(rest) < 4*n {
			return nil, errors.Wrapf(ErrLengthMismatch, "offset table of %d entries", n)
		}
		offsets = make([]uint32, n)
		for i := range offsets {
			offsets[i] = binary.LittleEndian.Uint32(rest[4*i:])
		}
		rest = rest[4*n:]
	}

	var payload *bytebuf.Bytes
	if flags&FlagCompressed != 0 {
		out, err := d.zdec.DecodeAll(rest, nil)
		if err != nil {
			return nil, errors.Wrap(err, "compactwire: zstd")
		}
		payload = bytebuf.FromStatic(out)
	} else {
		payload = bytebuf.FromStatic(rest[:len(rest):len(rest)])
	}

	if err := checkOffsets(offsets, payload.Len()); err != nil {
		return nil, err
	}
	return &Frame{Type: TypeData, Flags: flags, Offsets: offsets, Payload: payload}, nil
}

// checkOffsets requires a table starting at 0 and strictly increasing
// inside the payload.
func checkOffsets(offsets []uint32, n int) error {
	for i, off := range offsets {
		switch {
		case i == 0 && off != 0,
			i > 0 && off <= offsets[i-1],
			int64(off) >= int64(n):
			return errors.Wrapf(ErrLengthMismatch, "chunk offset %d at %d in a %d byte payload", i, off, n)
		}
	}
	return nil
}

// DecodeError parses an error frame.
func (d *Decoder) DecodeError(frame *bytebuf.Bytes) (code byte, msg string, err error) {
	rest, err := openFrame(frame.UnsafeBytes(), TypeError)
	if err == nil && len(rest) < 3 {
		err = errors.Wrap(ErrLengthMismatch, "truncated error frame")
	}
	if err == nil {
		code = rest[0]
		n := int(binary.LittleEndian.Uint16(rest[1:]))
		if len(rest)-3 != n {
			err = errors.Wrapf(ErrLengthMismatch, "message of %d bytes, frame holds %d", n, len(rest)-3)
		} else {
			msg = string(rest[3:])
		}
	}
	if err != nil {
		d.reject(frame, err)
		return 0, "", err
	}
	return code, msg, nil
}

func (d *Decoder) reject(frame *bytebuf.Bytes, err error) {
	d.opts.Logger.WithFields(logrus.Fields{
		"len":   frame.Len(),
		"cause": errors.Cause(err).Error(),
	}).WithError(err).Debug("compactwire: frame rejected")
}
