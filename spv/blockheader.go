// Package spv implements the SPV container types: fixed-size block
// headers, blocks, BRC-74 Merkle paths, and the BEEF v1/v2 transaction
// container. Hashes follow chainhash's byte-reversed display convention
// and the framing follows transaction's wire-codec style.
package spv

import (
	"encoding/binary"

	"github.com/bitcoin-sv/bsvkernel/bsverrors"
	"github.com/bitcoin-sv/bsvkernel/chainhash"
	"github.com/bitcoin-sv/bsvkernel/crypto/hash"
)

// HeaderSize is the fixed wire size of a block header.
const HeaderSize = 80

// BlockHeader is the fixed 80-byte block header.
type BlockHeader struct {
	Version    uint32
	PrevHash   chainhash.Hash
	MerkleRoot chainhash.Hash
	Time       uint32
	Bits       uint32
	Nonce      uint32
}

// Bytes serializes the header to its 80-byte wire form.
func (h *BlockHeader) Bytes() []byte {
	out := make([]byte, 0, HeaderSize)
	out = appendUint32LE(out, h.Version)
	out = append(out, h.PrevHash.Bytes()...)
	out = append(out, h.MerkleRoot.Bytes()...)
	out = appendUint32LE(out, h.Time)
	out = appendUint32LE(out, h.Bits)
	out = appendUint32LE(out, h.Nonce)
	return out
}

// ParseBlockHeader decodes an 80-byte block header.
func ParseBlockHeader(buf []byte) (*BlockHeader, error) {
	if len(buf) != HeaderSize {
		return nil, bsverrors.New(bsverrors.KindInvalidLength, "spv: block header must be %d bytes, got %d", HeaderSize, len(buf))
	}
	prevHash, err := chainhash.NewFromBytes(buf[4:36])
	if err != nil {
		return nil, err
	}
	merkleRoot, err := chainhash.NewFromBytes(buf[36:68])
	if err != nil {
		return nil, err
	}
	return &BlockHeader{
		Version:    binary.LittleEndian.Uint32(buf[0:4]),
		PrevHash:   prevHash,
		MerkleRoot: merkleRoot,
		Time:       binary.LittleEndian.Uint32(buf[68:72]),
		Bits:       binary.LittleEndian.Uint32(buf[72:76]),
		Nonce:      binary.LittleEndian.Uint32(buf[76:80]),
	}, nil
}

// Hash computes the block hash: sha256d(header).
func (h *BlockHeader) Hash() chainhash.Hash {
	return chainhash.Hash(hash.Sha256d(h.Bytes()))
}

// IsGenesis reports whether h has an all-zero previous-block hash.
func (h *BlockHeader) IsGenesis() bool {
	return h.PrevHash.IsZero()
}

func appendUint32LE(buf []byte, v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return append(buf, b[:]...)
}
