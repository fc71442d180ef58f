package chainhash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStringReversesDisplayOrder(t *testing.T) {
	var h Hash
	h[0] = 0xAB
	h[31] = 0xCD
	require.Equal(t, "cd"+strings.Repeat("00", 30)+"ab", h.String())
}

func TestDisplayHexRoundTrip(t *testing.T) {
	var h Hash
	for i := range h {
		h[i] = byte(i)
	}

	parsed, err := NewFromDisplayHex(h.String())
	require.NoError(t, err)
	require.Equal(t, h, parsed)
}

func TestNewFromBytesRejectsBadLength(t *testing.T) {
	_, err := NewFromBytes(make([]byte, 31))
	require.Error(t, err)
}

func TestIsZero(t *testing.T) {
	var h Hash
	require.True(t, h.IsZero())
	h[5] = 1
	require.False(t, h.IsZero())
}
