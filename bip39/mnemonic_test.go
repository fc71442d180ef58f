package bip39

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToSeedVector(t *testing.T) {
	mnemonic := strings.Join(append(repeat("abandon", 11), "about"), " ")
	require.True(t, Validate(mnemonic))

	seed := ToSeed(mnemonic, "")
	require.Equal(t,
		"5eb00bbddcf069084889a8ab9155568165f5c453ccb85e70811aaed6f6da5fc19a5ac40b389cd370d086206dec8aa6c43daea6690f20ad3d8d48b2d2ce9e38e4",
		hex.EncodeToString(seed),
	)
}

func TestNewMnemonicRoundTrip(t *testing.T) {
	for _, bits := range []int{128, 160, 192, 224, 256} {
		mnemonic, err := NewMnemonic(bits)
		require.NoError(t, err)
		require.True(t, Validate(mnemonic))

		entropy, err := EntropyFromMnemonic(mnemonic)
		require.NoError(t, err)
		require.Len(t, entropy, bits/8)
	}
}

func TestNewMnemonicRejectsBadBitSize(t *testing.T) {
	_, err := NewMnemonic(100)
	require.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	require.False(t, Validate("not a valid mnemonic phrase at all"))
}

func repeat(word string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = word
	}
	return out
}
