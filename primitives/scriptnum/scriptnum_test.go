package scriptnum

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []int64{0, 1, -1, 127, 128, -128, 255, 256, -256, 32767, -32767, 1 << 30, -(1 << 30)}
	for _, n := range cases {
		enc := Encode(n)
		decoded, err := Decode(enc, 8)
		require.NoError(t, err)
		require.Equal(t, n, decoded, "n=%d enc=%x", n, enc)
	}
}

func TestEncodeZeroIsEmpty(t *testing.T) {
	require.Empty(t, Encode(0))
}

func TestDecodeNegativeZeroQuirk(t *testing.T) {
	n, err := Decode([]byte{0x80}, 8)
	require.NoError(t, err)
	require.Equal(t, int64(0), n)
}

func TestDecodeEmptyIsZero(t *testing.T) {
	n, err := Decode(nil, 8)
	require.NoError(t, err)
	require.Equal(t, int64(0), n)
}

func TestDecodeEnforcesMaxLen(t *testing.T) {
	enc := Encode(1 << 40)
	_, err := Decode(enc, 4)
	require.Error(t, err)
}

func TestDecodeNonMinimalEncoding(t *testing.T) {
	// Trailing zero padding doesn't change the magnitude; the sign bit
	// stays on the final byte.
	n, err := Decode([]byte{0x01, 0x00, 0x00}, 8)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	n, err = Decode([]byte{0x01, 0x80}, 8)
	require.NoError(t, err)
	require.Equal(t, int64(-1), n)
}

func TestDecodeRejectsOversizedValue(t *testing.T) {
	wide := make([]byte, 9)
	wide[8] = 0x01
	_, err := Decode(wide, 16)
	require.Error(t, err)
}

func TestEncodeSignBitOverflow(t *testing.T) {
	// 128 needs a 2-byte encoding since the single-byte form's top bit
	// would otherwise be mistaken for the sign.
	require.Equal(t, []byte{0x80, 0x00}, Encode(128))
	require.Equal(t, []byte{0x80, 0x80}, Encode(-128))
}
