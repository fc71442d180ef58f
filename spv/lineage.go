package spv

import (
	"github.com/bitcoin-sv/bsvkernel/bsverrors"
	"github.com/bitcoin-sv/bsvkernel/chainhash"
	"github.com/bitcoin-sv/bsvkernel/crypto/hash"
	"github.com/bitcoin-sv/bsvkernel/transaction"
)

// TxFetcher resolves a txid to its raw transaction bytes, synchronously.
// The core never performs I/O itself; callers inject this to let lineage
// and BEEF resolution reach transactions outside the container they
// started from.
type TxFetcher func(txid chainhash.Hash) ([]byte, error)

// DefaultMaxLineageDepth bounds VerifyLineage's ancestor walk absent a
// caller-supplied limit.
const DefaultMaxLineageDepth = 1000

// FetchAndVerify calls fetcher for txid, checks sha256d(raw) == txid before
// trusting the result, and parses the raw bytes.
func FetchAndVerify(txid chainhash.Hash, fetcher TxFetcher) (*transaction.Transaction, error) {
	raw, err := fetcher(txid)
	if err != nil {
		return nil, bsverrors.New(bsverrors.KindInvariantViolation, "spv: fetch failed for txid %s", txid, err)
	}
	if got := chainhash.Hash(hash.Sha256d(raw)); got != txid {
		return nil, bsverrors.New(bsverrors.KindInvariantViolation, "spv: fetcher returned raw tx not matching requested txid %s", txid)
	}
	return transaction.FromBytes(raw)
}

// VerifyLineage walks tx's ancestry via fetcher, following only input 0 at
// each step. The walk stops successfully on reaching a coinbase
// transaction, and fails with InvariantViolation if maxDepth ancestors are
// exhausted first. Multi-input merges are only partially validated.
func VerifyLineage(tx *transaction.Transaction, fetcher TxFetcher, maxDepth int) error {
	current := tx
	for depth := 0; depth < maxDepth; depth++ {
		if current.IsCoinbase() {
			return nil
		}
		if len(current.Inputs) == 0 {
			return bsverrors.New(bsverrors.KindInvariantViolation, "spv: non-coinbase transaction has no inputs")
		}

		ancestor, err := FetchAndVerify(current.Inputs[0].SourceTXID, fetcher)
		if err != nil {
			return err
		}
		current = ancestor
	}
	if current.IsCoinbase() {
		return nil
	}
	return bsverrors.New(bsverrors.KindInvariantViolation, "spv: lineage depth exceeded %d", maxDepth)
}

// ResolveTxIDOnly fills in Tx for every TxIDOnly entry in beef by fetching
// and verifying it via fetcher, leaving already-populated entries
// untouched.
func (b *BEEF) ResolveTxIDOnly(fetcher TxFetcher) error {
	for _, entry := range b.Transactions {
		if entry.Format != TxIDOnly || entry.Tx != nil {
			continue
		}
		tx, err := FetchAndVerify(entry.TXID, fetcher)
		if err != nil {
			return err
		}
		entry.Tx = tx
	}
	return nil
}
