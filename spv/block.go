package spv

import (
	"github.com/bitcoin-sv/bsvkernel/bsverrors"
	"github.com/bitcoin-sv/bsvkernel/chainhash"
	"github.com/bitcoin-sv/bsvkernel/crypto/hash"
	"github.com/bitcoin-sv/bsvkernel/primitives/varint"
	"github.com/bitcoin-sv/bsvkernel/transaction"
)

// Block is a header plus its ordered transaction list.
type Block struct {
	Header       *BlockHeader
	Transactions []*transaction.Transaction
}

// Bytes serializes the block: header ∥ varint(tx_count) ∥ transactions…
func (b *Block) Bytes() []byte {
	out := make([]byte, 0, HeaderSize+varint.Size(uint64(len(b.Transactions))))
	out = append(out, b.Header.Bytes()...)
	out = append(out, varint.Encode(uint64(len(b.Transactions)))...)
	for _, tx := range b.Transactions {
		out = append(out, tx.Bytes()...)
	}
	return out
}

// FromBytes parses a block from its wire form.
func FromBytes(buf []byte) (*Block, error) {
	if len(buf) < HeaderSize {
		return nil, bsverrors.New(bsverrors.KindInvalidLength, "spv: block truncated before header")
	}
	header, err := ParseBlockHeader(buf[:HeaderSize])
	if err != nil {
		return nil, err
	}
	i := HeaderSize

	txCount, n, err := varint.Decode(buf[i:], 0)
	if err != nil {
		return nil, err
	}
	i += n

	txs := make([]*transaction.Transaction, 0, txCount)
	for j := uint64(0); j < txCount; j++ {
		tx, consumed, err := transaction.FromBytesPrefix(buf[i:])
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
		i += consumed
	}

	if i != len(buf) {
		return nil, bsverrors.New(bsverrors.KindInvalidLength, "spv: %d trailing bytes after block transactions", len(buf)-i)
	}

	return &Block{Header: header, Transactions: txs}, nil
}

// Hash returns the block's hash: sha256d(header).
func (b *Block) Hash() chainhash.Hash {
	return b.Header.Hash()
}

// IsGenesis reports whether b's header has an all-zero previous-block hash.
func (b *Block) IsGenesis() bool {
	return b.Header.IsGenesis()
}

// CalcMerkleRoot recomputes the block's Merkle root from its transaction
// list, pairing adjacent txids level by level and hashing
// sha256d(left || right); an odd trailing node at any level is paired with
// itself.
func (b *Block) CalcMerkleRoot() chainhash.Hash {
	if len(b.Transactions) == 0 {
		return chainhash.Hash{}
	}

	level := make([]chainhash.Hash, len(b.Transactions))
	for i, tx := range b.Transactions {
		level[i] = tx.TXID()
	}

	for len(level) > 1 {
		next := make([]chainhash.Hash, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			left := level[i]
			right := left
			if i+1 < len(level) {
				right = level[i+1]
			}
			next = append(next, pairHash(left, right))
		}
		level = next
	}

	return level[0]
}

func pairHash(left, right chainhash.Hash) chainhash.Hash {
	buf := make([]byte, 0, 64)
	buf = append(buf, left.Bytes()...)
	buf = append(buf, right.Bytes()...)
	return chainhash.Hash(hash.Sha256d(buf))
}
