package transaction

import (
	"encoding/hex"
	"testing"

	"github.com/bitcoin-sv/bsvkernel/chainhash"
	"github.com/bitcoin-sv/bsvkernel/crypto/hash"
	"github.com/bitcoin-sv/bsvkernel/script"
	"github.com/stretchr/testify/require"
)

func sampleTx() *Transaction {
	tx := New()
	tx.AddInput(&Input{
		SourceTXID:      chainhash.Hash{1, 2, 3},
		SourceVout:      0,
		UnlockingScript: script.Script{script.DataChunk([]byte{0xde, 0xad})},
		Sequence:        SequenceFinal,
	})
	tx.AddOutput(&Output{
		Satoshis:      5000,
		LockingScript: script.Script{script.OpChunk(script.OpDup), script.OpChunk(script.OpHash160)},
	})
	tx.LockTime = 0
	return tx
}

func TestWireRoundTrip(t *testing.T) {
	tx := sampleTx()
	encoded := tx.Bytes()

	decoded, err := FromBytes(encoded)
	require.NoError(t, err)
	require.Equal(t, tx.Version, decoded.Version)
	require.Equal(t, tx.LockTime, decoded.LockTime)
	require.Len(t, decoded.Inputs, 1)
	require.Len(t, decoded.Outputs, 1)
	require.Equal(t, tx.Inputs[0].SourceTXID, decoded.Inputs[0].SourceTXID)
	require.Equal(t, tx.Outputs[0].Satoshis, decoded.Outputs[0].Satoshis)
	require.Equal(t, encoded, decoded.Bytes())
}

func TestFromBytesRejectsTrailingBytes(t *testing.T) {
	tx := sampleTx()
	encoded := append(tx.Bytes(), 0xff)
	_, err := FromBytes(encoded)
	require.Error(t, err)
}

func TestFromBytesRejectsTruncatedInput(t *testing.T) {
	tx := sampleTx()
	encoded := tx.Bytes()
	_, err := FromBytes(encoded[:10])
	require.Error(t, err)
}

func TestIsCoinbase(t *testing.T) {
	tx := New()
	tx.AddInput(&Input{SourceTXID: chainhash.Hash{}, SourceVout: CoinbaseSourceVout})
	require.True(t, tx.IsCoinbase())

	tx2 := sampleTx()
	require.False(t, tx2.IsCoinbase())
}

func TestTXIDIsDoubleSha256Reversed(t *testing.T) {
	tx := sampleTx()
	txid := tx.TXID()
	require.Len(t, txid.String(), 64)

	raw := hash.Sha256d(tx.Bytes())
	require.Equal(t, chainhash.Hash(raw), txid)
	reversed := make([]byte, len(raw))
	for i, b := range raw {
		reversed[len(raw)-1-i] = b
	}
	require.Equal(t, hex.EncodeToString(reversed), txid.String())

	// Recomputing must be deterministic.
	require.Equal(t, txid, tx.TXID())
}

func TestOutputRejectsValueAboveMaxSupply(t *testing.T) {
	o := &Output{Satoshis: MaxSatoshis + 1, LockingScript: script.Script{}}
	_, _, err := readOutput(o.Bytes())
	require.Error(t, err)
}

func TestTotalOutputSatoshis(t *testing.T) {
	tx := sampleTx()
	tx.AddOutput(&Output{Satoshis: 1000, LockingScript: script.Script{}})
	require.Equal(t, uint64(6000), tx.TotalOutputSatoshis())
}
