package sighash

import (
	"testing"

	"github.com/bitcoin-sv/bsvkernel/bkeys"
	"github.com/bitcoin-sv/bsvkernel/chainhash"
	"github.com/bitcoin-sv/bsvkernel/crypto/ecdsa"
	"github.com/bitcoin-sv/bsvkernel/script"
	"github.com/bitcoin-sv/bsvkernel/transaction"
	"github.com/stretchr/testify/require"
)

func buildSpendingTx(t *testing.T, lockingScript script.Script, satoshis uint64) *transaction.Transaction {
	t.Helper()
	tx := transaction.New()
	tx.AddInput(&transaction.Input{
		SourceTXID: chainhash.Hash{9, 9, 9},
		SourceVout: 0,
		Sequence:   transaction.SequenceFinal,
		SourceOutput: &transaction.Output{
			Satoshis:      satoshis,
			LockingScript: lockingScript,
		},
	})
	tx.AddOutput(&transaction.Output{Satoshis: satoshis - 500, LockingScript: script.Script{script.OpChunk(script.OpTrue)}})
	return tx
}

func TestHashRequiresForkID(t *testing.T) {
	tx := buildSpendingTx(t, script.Script{script.OpChunk(script.OpTrue)}, 1000)
	_, err := Hash(tx, 0, tx.Inputs[0].SourceOutput.LockingScript, All)
	require.Error(t, err)
}

func TestHashRejectsOutOfRangeInput(t *testing.T) {
	tx := buildSpendingTx(t, script.Script{script.OpChunk(script.OpTrue)}, 1000)
	_, err := Hash(tx, 5, tx.Inputs[0].SourceOutput.LockingScript, All|ForkID)
	require.Error(t, err)
}

func TestHashIsDeterministic(t *testing.T) {
	tx := buildSpendingTx(t, script.Script{script.OpChunk(script.OpTrue)}, 1000)
	h1, err := Hash(tx, 0, tx.Inputs[0].SourceOutput.LockingScript, All|ForkID)
	require.NoError(t, err)
	h2, err := Hash(tx, 0, tx.Inputs[0].SourceOutput.LockingScript, All|ForkID)
	require.NoError(t, err)
	require.Equal(t, h1, h2)
}

func TestHashChangesWithSighashType(t *testing.T) {
	tx := buildSpendingTx(t, script.Script{script.OpChunk(script.OpTrue)}, 1000)
	all, err := Hash(tx, 0, tx.Inputs[0].SourceOutput.LockingScript, All|ForkID)
	require.NoError(t, err)
	none, err := Hash(tx, 0, tx.Inputs[0].SourceOutput.LockingScript, None|ForkID)
	require.NoError(t, err)
	require.NotEqual(t, all, none)
}

func TestHashFeedsRealSignatureVerification(t *testing.T) {
	priv, err := bkeys.NewPrivateKey()
	require.NoError(t, err)
	pub := priv.PubKey()

	lockingScript := script.Script{
		script.OpChunk(script.OpDup), script.OpChunk(script.OpHash160),
		script.DataChunk(make([]byte, 20)), script.OpChunk(script.OpEqualVerify),
		script.OpChunk(script.OpCheckSig),
	}
	tx := buildSpendingTx(t, lockingScript, 1000)

	sighashType := All | ForkID
	digest, err := Hash(tx, 0, lockingScript, sighashType)
	require.NoError(t, err)

	sig := ecdsa.Sign(priv.D, digest)
	require.True(t, ecdsa.Verify(pub.Point, digest, sig))
}

func TestHashOutputsSingleOutOfRangeIsZero(t *testing.T) {
	tx := buildSpendingTx(t, script.Script{script.OpChunk(script.OpTrue)}, 1000)
	tx.Inputs = append(tx.Inputs, &transaction.Input{
		SourceTXID: chainhash.Hash{1},
		SourceVout: 1,
		Sequence:   transaction.SequenceFinal,
		SourceOutput: &transaction.Output{
			Satoshis:      1000,
			LockingScript: script.Script{script.OpChunk(script.OpTrue)},
		},
	})

	digest, err := Hash(tx, 1, tx.Inputs[1].SourceOutput.LockingScript, Single|ForkID)
	require.NoError(t, err)
	require.NotEmpty(t, digest)
	require.Equal(t, [32]byte{}, hashOutputs(tx, Single, 1))
}
