// Package transaction implements the Bitcoin transaction model: inputs,
// outputs, whole-transaction wire serialization, and txid computation.
package transaction

import (
	"encoding/binary"

	"github.com/bitcoin-sv/bsvkernel/bsverrors"
	"github.com/bitcoin-sv/bsvkernel/chainhash"
	"github.com/bitcoin-sv/bsvkernel/primitives/varint"
	"github.com/bitcoin-sv/bsvkernel/script"
)

// SequenceFinal is the default, non-locktime-enabling sequence number.
const SequenceFinal uint32 = 0xFFFFFFFF

// CoinbaseSourceVout is the sentinel previous-output index that marks an
// input as a coinbase input.
const CoinbaseSourceVout uint32 = 0xFFFFFFFF

// Input is a transaction input: a reference to a previous output, together
// with the unlocking script that satisfies it.
type Input struct {
	SourceTXID      chainhash.Hash
	SourceVout      uint32
	UnlockingScript script.Script
	Sequence        uint32

	// SourceOutput annotates the input with the output it spends, needed
	// by BIP-143 sighash computation. It is not part of the wire format.
	SourceOutput *Output
}

// IsCoinbase reports whether this input's outpoint is the coinbase
// sentinel (all-zero txid, vout 0xFFFFFFFF).
func (in *Input) IsCoinbase() bool {
	return in.SourceTXID.IsZero() && in.SourceVout == CoinbaseSourceVout
}

// Bytes serializes the input to its wire form: prev_txid(32) ∥
// prev_vout(u32 LE) ∥ varint(script_len) ∥ unlocking_script ∥ sequence(u32
// LE).
func (in *Input) Bytes() []byte {
	scriptBytes := in.UnlockingScript.Bytes()

	out := make([]byte, 0, 32+4+varint.Size(uint64(len(scriptBytes)))+len(scriptBytes)+4)
	out = append(out, in.SourceTXID.Bytes()...)
	out = appendUint32LE(out, in.SourceVout)
	out = append(out, varint.Encode(uint64(len(scriptBytes)))...)
	out = append(out, scriptBytes...)
	out = appendUint32LE(out, in.Sequence)
	return out
}

// readInput decodes one Input from buf, returning the input and the number
// of bytes consumed.
func readInput(buf []byte) (*Input, int, error) {
	if len(buf) < 36 {
		return nil, 0, bsverrors.New(bsverrors.KindInvalidLength, "transaction: input outpoint truncated")
	}
	txid, err := chainhash.NewFromBytes(buf[0:32])
	if err != nil {
		return nil, 0, err
	}
	vout := binary.LittleEndian.Uint32(buf[32:36])
	i := 36

	scriptLen, n, err := varint.Decode(buf[i:], 0)
	if err != nil {
		return nil, 0, err
	}
	i += n

	if uint64(len(buf)-i) < scriptLen {
		return nil, 0, bsverrors.New(bsverrors.KindInvalidLength, "transaction: input script truncated")
	}
	unlocking, err := script.Parse(buf[i : i+int(scriptLen)])
	if err != nil {
		return nil, 0, err
	}
	i += int(scriptLen)

	if len(buf)-i < 4 {
		return nil, 0, bsverrors.New(bsverrors.KindInvalidLength, "transaction: input sequence truncated")
	}
	sequence := binary.LittleEndian.Uint32(buf[i : i+4])
	i += 4

	return &Input{
		SourceTXID:      txid,
		SourceVout:      vout,
		UnlockingScript: unlocking,
		Sequence:        sequence,
	}, i, nil
}

func appendUint32LE(buf []byte, v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return append(buf, b[:]...)
}

func appendUint64LE(buf []byte, v uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return append(buf, b[:]...)
}
