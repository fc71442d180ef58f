package spv

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenesisBlockRoundTrip(t *testing.T) {
	raw, err := hex.DecodeString(genesisBlockHex)
	require.NoError(t, err)

	block, err := FromBytes(raw)
	require.NoError(t, err)
	require.Len(t, block.Transactions, 1)
	require.True(t, block.IsGenesis())
	require.Equal(t, "000000000019d6689c085ae165831e934ff763ae46a2a6c172b3f1b60a8ce26f", block.Hash().String())

	require.Equal(t, block.Transactions[0].TXID(), block.CalcMerkleRoot())
	require.Equal(t, raw, block.Bytes())
}

func TestFromBytesRejectsTrailingBytes(t *testing.T) {
	raw, err := hex.DecodeString(genesisBlockHex)
	require.NoError(t, err)

	_, err = FromBytes(append(raw, 0x00))
	require.Error(t, err)
}
