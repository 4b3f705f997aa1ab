// Package common holds the unsigned varint encoding shared by bytebuf and
// its callers. The format is the one encoding/binary uses: seven bits per
// byte, least significant group first, high bit set on every byte but the
// last.
package common

// MaxVarintLen64 is the longest encoding of a uint64.
const MaxVarintLen64 = 10

// WriteVarUintTo appends varint-encoded x to dst using a small stack scratch.
func WriteVarUintTo(dst []byte, x uint64) []byte {
	var scratch [MaxVarintLen64]byte
	i := 0
	for x >= 0x80 {
		scratch[i] = byte(x) | 0x80
		x >>= 7
		i++
	}
	scratch[i] = byte(x)
	i++
	return append(dst, scratch[:i]...)
}

// ReadVarUint decodes a varint from b returning value and bytes consumed.
// It returns 0, 0 when b ends before the varint does or when the encoding
// runs past MaxVarintLen64 bytes.
func ReadVarUint(b []byte) (uint64, int) {
	var x uint64
	var s uint
	for i, c := range b {
		if i == MaxVarintLen64 {
			return 0, 0
		}
		x |= uint64(c&0x7F) << s
		if c&0x80 == 0 {
			return x, i + 1
		}
		s += 7
	}
	return 0, 0
}
