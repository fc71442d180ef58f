package script

import (
	"testing"

	"github.com/bitcoin-sv/bsvkernel/chaincfg"
	"github.com/stretchr/testify/require"
)

func TestP2PKHScriptFromAddressAndBackRoundTrip(t *testing.T) {
	hash160 := make([]byte, 20)
	for i := range hash160 {
		hash160[i] = byte(i)
	}
	locking := Script{
		OpChunk(OpDup),
		OpChunk(OpHash160),
		DataChunk(hash160),
		OpChunk(OpEqualVerify),
		OpChunk(OpCheckSig),
	}

	addr, err := locking.Address(chaincfg.MainNet)
	require.NoError(t, err)

	rebuilt, err := P2PKHScriptFromAddress(addr, chaincfg.MainNet)
	require.NoError(t, err)
	require.Equal(t, locking, rebuilt)
}

func TestAddressRejectsNonP2PKH(t *testing.T) {
	_, err := Script{OpChunk(OpReturn)}.Address(chaincfg.MainNet)
	require.Error(t, err)
}

func TestP2PKHScriptFromAddressRejectsWrongNetwork(t *testing.T) {
	hash160 := make([]byte, 20)
	locking := Script{OpChunk(OpDup), OpChunk(OpHash160), DataChunk(hash160), OpChunk(OpEqualVerify), OpChunk(OpCheckSig)}
	addr, err := locking.Address(chaincfg.MainNet)
	require.NoError(t, err)

	_, err = P2PKHScriptFromAddress(addr, chaincfg.TestNet)
	require.Error(t, err)
}

func TestP2PKHScriptFromAddressRejectsGarbage(t *testing.T) {
	_, err := P2PKHScriptFromAddress("not a valid address", chaincfg.MainNet)
	require.Error(t, err)
}
