package spv

import (
	"errors"
	"testing"

	"github.com/bitcoin-sv/bsvkernel/chainhash"
	"github.com/bitcoin-sv/bsvkernel/script"
	"github.com/bitcoin-sv/bsvkernel/transaction"
	"github.com/stretchr/testify/require"
)

var errNotFound = errors.New("lineage_test: txid not found")

func coinbaseTx() *transaction.Transaction {
	tx := transaction.New()
	tx.AddInput(&transaction.Input{
		SourceTXID: chainhash.Hash{},
		SourceVout: 0xffffffff,
		Sequence:   transaction.SequenceFinal,
	})
	tx.AddOutput(&transaction.Output{Satoshis: 5000000000, LockingScript: script.Script{}})
	return tx
}

func childSpending(parent *transaction.Transaction) *transaction.Transaction {
	tx := transaction.New()
	tx.AddInput(&transaction.Input{
		SourceTXID:   parent.TXID(),
		SourceVout:   0,
		Sequence:     transaction.SequenceFinal,
		SourceOutput: parent.Outputs[0],
	})
	tx.AddOutput(&transaction.Output{Satoshis: parent.Outputs[0].Satoshis, LockingScript: script.Script{}})
	return tx
}

func TestVerifyLineageResolvesToCoinbase(t *testing.T) {
	gen := coinbaseTx()
	child := childSpending(gen)
	grandchild := childSpending(child)

	byTxID := map[chainhash.Hash][]byte{
		gen.TXID():   gen.Bytes(),
		child.TXID(): child.Bytes(),
	}
	fetcher := func(txid chainhash.Hash) ([]byte, error) {
		raw, ok := byTxID[txid]
		if !ok {
			return nil, errNotFound
		}
		return raw, nil
	}

	require.NoError(t, VerifyLineage(grandchild, fetcher, DefaultMaxLineageDepth))
}

func TestVerifyLineageFailsWhenFetcherMismatchesTxID(t *testing.T) {
	gen := coinbaseTx()
	child := childSpending(gen)

	fetcher := func(txid chainhash.Hash) ([]byte, error) {
		return child.Bytes(), nil // wrong tx regardless of requested txid
	}

	err := VerifyLineage(child, fetcher, DefaultMaxLineageDepth)
	require.Error(t, err)
}

func TestVerifyLineageFailsWhenDepthExceeded(t *testing.T) {
	gen := coinbaseTx()
	chain := []*transaction.Transaction{gen}
	for i := 0; i < 5; i++ {
		chain = append(chain, childSpending(chain[len(chain)-1]))
	}

	byTxID := make(map[chainhash.Hash][]byte, len(chain))
	for _, tx := range chain {
		byTxID[tx.TXID()] = tx.Bytes()
	}
	fetcher := func(txid chainhash.Hash) ([]byte, error) {
		raw, ok := byTxID[txid]
		if !ok {
			return nil, nil
		}
		return raw, nil
	}

	err := VerifyLineage(chain[len(chain)-1], fetcher, 2)
	require.Error(t, err)
}

func TestResolveTxIDOnlyFillsInTransaction(t *testing.T) {
	tx := coinbaseTx()
	beef := &BEEF{Transactions: []*TxEntry{{Format: TxIDOnly, TXID: tx.TXID()}}}

	fetcher := func(txid chainhash.Hash) ([]byte, error) {
		return tx.Bytes(), nil
	}

	require.NoError(t, beef.ResolveTxIDOnly(fetcher))
	require.NotNil(t, beef.Transactions[0].Tx)
	require.Equal(t, tx.TXID(), beef.Transactions[0].Tx.TXID())
}
