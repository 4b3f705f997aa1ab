package bytebuf

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var ErrInvalidUTF8 = errors.New("invalid utf-8")

// Utf8Error is returned by TryToStr. Bytes is an untouched copy of the
// buffer, not a partial decode.
type Utf8Error struct {
	Bytes  []byte
	Offset int // first invalid byte
}

func (e *Utf8Error) Error() string {
	return fmt.Sprintf("bytebuf: %v at offset %d", ErrInvalidUTF8, e.Offset)
}

func (e *Utf8Error) Unwrap() error { return ErrInvalidUTF8 }

// ToStr decodes the buffer as UTF-8. Each maximal run of bytes that
// starts a sequence but cannot complete it becomes one U+FFFD; a byte that
// cannot start any sequence becomes one U+FFFD on its own.
func (x *buffer) ToStr() string {
	b := x.bytes()
	if utf8.Valid(b) {
		return string(b)
	}
	var sb strings.Builder
	sb.Grow(len(b) + 8)
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size == 1 {
			size = invalidPrefix(b)
		}
		sb.WriteRune(r)
		b = b[size:]
	}
	return sb.String()
}

// invalidPrefix returns how many bytes at the start of b belong to a
// truncated or broken sequence, at least 1. b must not start with a valid
// rune.
func invalidPrefix(b []byte) int {
	need, lo, hi := 0, byte(0x80), byte(0xBF)
	switch c := b[0]; {
	case c >= 0xC2 && c <= 0xDF:
		need = 1
	case c == 0xE0:
		need, lo = 2, 0xA0
	case c == 0xED:
		need, hi = 2, 0x9F
	case c >= 0xE1 && c <= 0xEF:
		need = 2
	case c == 0xF0:
		need, lo = 3, 0x90
	case c == 0xF4:
		need, hi = 3, 0x8F
	case c >= 0xF1 && c <= 0xF3:
		need = 3
	default:
		return 1
	}
	n := 1
	for n <= need && n < len(b) && b[n] >= lo && b[n] <= hi {
		n++
		lo, hi = 0x80, 0xBF
	}
	return n
}

// TryToStr decodes the buffer as UTF-8, failing with a *Utf8Error on the
// first invalid sequence.
func (x *buffer) TryToStr() (string, error) {
	b := x.bytes()
	for off := 0; off < len(b); {
		r, size := utf8.DecodeRune(b[off:])
		if r == utf8.RuneError && size == 1 {
			return "", &Utf8Error{Bytes: append([]byte{}, b...), Offset: off}
		}
		off += size
	}
	return string(b), nil
}
