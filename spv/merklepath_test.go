package spv

import (
	"testing"

	"github.com/bitcoin-sv/bsvkernel/chainhash"
	"github.com/bitcoin-sv/bsvkernel/crypto/hash"
	"github.com/stretchr/testify/require"
)

func fixedHash(b byte) chainhash.Hash {
	var h chainhash.Hash
	for i := range h {
		h[i] = b
	}
	return h
}

func TestMerklePathComputeRootTwoLeaves(t *testing.T) {
	leaf0 := fixedHash(0x01)
	leaf1 := fixedHash(0x02)

	path := &MerklePath{
		BlockHeight: 100,
		Levels: [][]PathElement{
			{
				{Offset: 0, Flags: LeafFlagTxID, TxID: leaf0},
				{Offset: 1, Flags: 0, Hash: leaf1},
			},
		},
	}

	want := hash.Sha256d(append(append([]byte{}, leaf0.Bytes()...), leaf1.Bytes()...))

	root, err := path.ComputeRoot(leaf0, 0)
	require.NoError(t, err)
	require.Equal(t, chainhash.Hash(want), root)
}

func TestMerklePathBytesRoundTrip(t *testing.T) {
	leaf0 := fixedHash(0x01)
	leaf1 := fixedHash(0x02)

	path := &MerklePath{
		BlockHeight: 42,
		Levels: [][]PathElement{
			{
				{Offset: 0, Flags: LeafFlagTxID, TxID: leaf0},
				{Offset: 1, Flags: 0, Hash: leaf1},
			},
		},
	}

	parsed, err := ParseMerklePath(path.Bytes())
	require.NoError(t, err)
	require.Equal(t, path.BlockHeight, parsed.BlockHeight)
	require.Equal(t, path.Levels, parsed.Levels)
}

func TestParseMerklePathRejectsMissingClientTxIDLeaf(t *testing.T) {
	leaf0 := fixedHash(0x01)
	leaf1 := fixedHash(0x02)

	path := &MerklePath{
		BlockHeight: 1,
		Levels: [][]PathElement{
			{
				{Offset: 0, Flags: 0, Hash: leaf0},
				{Offset: 1, Flags: 0, Hash: leaf1},
			},
		},
	}

	_, err := ParseMerklePath(path.Bytes())
	require.Error(t, err)
}

func TestParseMerklePathRejectsDuplicateOffsets(t *testing.T) {
	leaf0 := fixedHash(0x01)

	raw := []byte{0x01}       // block height 1
	raw = append(raw, 0x01)   // tree height 1
	raw = append(raw, 0x02)   // 2 elements in level 0
	raw = append(raw, 0x00)   // offset 0
	raw = append(raw, LeafFlagTxID)
	raw = append(raw, leaf0.Bytes()...)
	raw = append(raw, 0x00) // offset 0 again: duplicate
	raw = append(raw, 0x00)
	raw = append(raw, leaf0.Bytes()...)

	_, err := ParseMerklePath(raw)
	require.Error(t, err)
}

func TestParseMerklePathRejectsTrailingBytes(t *testing.T) {
	leaf0 := fixedHash(0x01)
	path := &MerklePath{
		BlockHeight: 1,
		Levels: [][]PathElement{
			{{Offset: 0, Flags: LeafFlagTxID, TxID: leaf0}},
		},
	}

	_, err := ParseMerklePath(append(path.Bytes(), 0xFF))
	require.Error(t, err)
}
