package varint

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []uint64{0, 1, 0xFC, 0xFD, 0xFFFF, 0x10000, 0xFFFFFFFF, 0x100000000, ^uint64(0)}
	for _, n := range cases {
		enc := Encode(n)
		require.Equal(t, Size(n), len(enc))

		decoded, consumed, err := Decode(enc, 0)
		require.NoError(t, err)
		require.Equal(t, n, decoded)
		require.Equal(t, len(enc), consumed)
	}
}

func TestEncodeFormSelection(t *testing.T) {
	require.Equal(t, []byte{0x00}, Encode(0))
	require.Equal(t, []byte{0xFC}, Encode(0xFC))
	require.Equal(t, byte(0xFD), Encode(0xFD)[0])
	require.Equal(t, byte(0xFE), Encode(0x10000)[0])
	require.Equal(t, byte(0xFF), Encode(0x100000000)[0])
}

func TestDecodeRejectsTruncatedInput(t *testing.T) {
	_, _, err := Decode([]byte{0xFD, 0x01}, 0)
	require.Error(t, err)

	_, _, err = Decode(nil, 0)
	require.Error(t, err)
}

func TestDecodeEnforcesMax(t *testing.T) {
	enc := Encode(1000)
	_, _, err := Decode(enc, 10)
	require.Error(t, err)
}
