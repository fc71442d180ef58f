// Package varint implements Bitcoin's compact variable-length integer
// encoding.
package varint

import (
	"encoding/binary"

	"github.com/bitcoin-sv/bsvkernel/bsverrors"
)

// Encode returns the minimal VarInt encoding of n.
func Encode(n uint64) []byte {
	switch {
	case n < 0xFD:
		return []byte{byte(n)}
	case n <= 0xFFFF:
		buf := make([]byte, 3)
		buf[0] = 0xFD
		binary.LittleEndian.PutUint16(buf[1:], uint16(n))
		return buf
	case n <= 0xFFFFFFFF:
		buf := make([]byte, 5)
		buf[0] = 0xFE
		binary.LittleEndian.PutUint32(buf[1:], uint32(n))
		return buf
	default:
		buf := make([]byte, 9)
		buf[0] = 0xFF
		binary.LittleEndian.PutUint64(buf[1:], n)
		return buf
	}
}

// Size returns the number of bytes Encode(n) would produce.
func Size(n uint64) int {
	switch {
	case n < 0xFD:
		return 1
	case n <= 0xFFFF:
		return 3
	case n <= 0xFFFFFFFF:
		return 5
	default:
		return 9
	}
}

// Decode reads a VarInt from the front of buf, returning the value and the
// number of bytes consumed. If max > 0 and the decoded value exceeds it,
// Decode returns a MalformedLength-equivalent error.
func Decode(buf []byte, max uint64) (uint64, int, error) {
	if len(buf) < 1 {
		return 0, 0, bsverrors.New(bsverrors.KindInvalidLength, "varint: empty buffer")
	}

	prefix := buf[0]
	var value uint64
	var consumed int

	switch {
	case prefix < 0xFD:
		value = uint64(prefix)
		consumed = 1
	case prefix == 0xFD:
		if len(buf) < 3 {
			return 0, 0, bsverrors.New(bsverrors.KindInvalidLength, "varint: truncated uint16 form")
		}
		value = uint64(binary.LittleEndian.Uint16(buf[1:3]))
		consumed = 3
	case prefix == 0xFE:
		if len(buf) < 5 {
			return 0, 0, bsverrors.New(bsverrors.KindInvalidLength, "varint: truncated uint32 form")
		}
		value = uint64(binary.LittleEndian.Uint32(buf[1:5]))
		consumed = 5
	default:
		if len(buf) < 9 {
			return 0, 0, bsverrors.New(bsverrors.KindInvalidLength, "varint: truncated uint64 form")
		}
		value = binary.LittleEndian.Uint64(buf[1:9])
		consumed = 9
	}

	if max > 0 && value > max {
		return 0, 0, bsverrors.New(bsverrors.KindMalformedEncoding, "varint: value %d exceeds max %d", value, max)
	}

	return value, consumed, nil
}
