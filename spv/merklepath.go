package spv

import (
	"github.com/bitcoin-sv/bsvkernel/bsverrors"
	"github.com/bitcoin-sv/bsvkernel/chainhash"
	"github.com/bitcoin-sv/bsvkernel/crypto/hash"
	"github.com/bitcoin-sv/bsvkernel/primitives/varint"
)

// Leaf flag bits (BRC-74): which field is populated, and whether this leaf
// is the one a client is proving (and therefore drives compute_root).
const (
	LeafFlagDuplicate  byte = 1 << 0
	LeafFlagTxID       byte = 1 << 1
	leafFlagKnownBits       = LeafFlagDuplicate | LeafFlagTxID
)

// PathElement is a single node within a Merkle-path level.
type PathElement struct {
	Offset uint64
	Flags  byte
	Hash   chainhash.Hash // set unless Flags has LeafFlagDuplicate or LeafFlagTxID
	TxID   chainhash.Hash // set iff Flags has LeafFlagTxID
}

// IsDuplicate reports whether this element stands in for an odd trailing
// node paired with itself.
func (e PathElement) IsDuplicate() bool { return e.Flags&LeafFlagDuplicate != 0 }

// IsTxID reports whether this element carries the "client txid" flag.
func (e PathElement) IsTxID() bool { return e.Flags&LeafFlagTxID != 0 }

// nodeHash returns the hash this element contributes to pairing: TxID if
// flagged, else Hash.
func (e PathElement) nodeHash() chainhash.Hash {
	if e.IsTxID() {
		return e.TxID
	}
	return e.Hash
}

// MerklePath is a BRC-74 compact Merkle path: the block height it proves
// membership in, and one level of sibling nodes per tree height, from the
// leaves upward.
type MerklePath struct {
	BlockHeight uint64
	Levels      [][]PathElement
}

// Bytes serializes the path: varint(block_height) ∥ tree_height(1) ∥
// per level varint(count) ∥ { varint(offset) ∥ flags(1) ∥ hash(32)? }…
func (p *MerklePath) Bytes() []byte {
	out := varint.Encode(p.BlockHeight)
	out = append(out, byte(len(p.Levels)))
	for _, level := range p.Levels {
		out = append(out, varint.Encode(uint64(len(level)))...)
		for _, e := range level {
			out = append(out, varint.Encode(e.Offset)...)
			out = append(out, e.Flags)
			if !e.IsDuplicate() {
				if e.IsTxID() {
					out = append(out, e.TxID.Bytes()...)
				} else {
					out = append(out, e.Hash.Bytes()...)
				}
			}
		}
	}
	return out
}

// ParseMerklePath decodes a BRC-74 Merkle path, rejecting malformed
// lengths and duplicate offsets within a level (CVE-2012-2459 guard), and
// requiring level 0 to carry a client-txid leaf.
func ParseMerklePath(buf []byte) (*MerklePath, error) {
	path, consumed, err := parseMerklePathPrefix(buf)
	if err != nil {
		return nil, err
	}
	if consumed != len(buf) {
		return nil, bsverrors.New(bsverrors.KindInvalidLength, "spv: %d trailing bytes after merkle path", len(buf)-consumed)
	}
	if len(path.Levels) > 0 {
		hasTxID := false
		for _, e := range path.Levels[0] {
			if e.IsTxID() {
				hasTxID = true
				break
			}
		}
		if !hasTxID {
			return nil, bsverrors.New(bsverrors.KindInvariantViolation, "spv: merkle path level 0 has no client-txid leaf")
		}
	}
	return path, nil
}

// levelElementByOffset finds the element at a given offset within a level,
// if present.
func levelElementByOffset(level []PathElement, offset uint64) (PathElement, bool) {
	for _, e := range level {
		if e.Offset == offset {
			return e, true
		}
	}
	return PathElement{}, false
}

// ComputeRoot walks the path upward from txid at offsetAtLevel0, pairing
// with the sibling at offset XOR 1 at each level and hashing
// sha256d(left || right) (a duplicate sibling pairs the node with itself),
// returning the resulting Merkle root. A missing sibling fails with
// InvariantViolation, except on the last level when that level holds at
// most one element, where the walk stops.
func (p *MerklePath) ComputeRoot(txid chainhash.Hash, offsetAtLevel0 uint64) (chainhash.Hash, error) {
	current := txid
	offset := offsetAtLevel0

	for lvl, level := range p.Levels {
		siblingOffset := offset ^ 1
		sibling, ok := levelElementByOffset(level, siblingOffset)
		if !ok {
			if len(level) <= 1 && lvl == len(p.Levels)-1 {
				break
			}
			return chainhash.Hash{}, bsverrors.New(bsverrors.KindInvariantViolation, "spv: missing sibling at offset %d in merkle path level %d", siblingOffset, lvl)
		}

		siblingHash := current
		if !sibling.IsDuplicate() {
			siblingHash = sibling.nodeHash()
		}

		var left, right chainhash.Hash
		if offset%2 == 0 {
			left, right = current, siblingHash
		} else {
			left, right = siblingHash, current
		}

		buf := make([]byte, 0, 64)
		buf = append(buf, left.Bytes()...)
		buf = append(buf, right.Bytes()...)
		current = chainhash.Hash(hash.Sha256d(buf))
		offset /= 2
	}

	return current, nil
}
