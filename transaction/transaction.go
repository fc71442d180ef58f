package transaction

import (
	"encoding/binary"

	"github.com/bitcoin-sv/bsvkernel/bsverrors"
	"github.com/bitcoin-sv/bsvkernel/chainhash"
	"github.com/bitcoin-sv/bsvkernel/crypto/hash"
	"github.com/bitcoin-sv/bsvkernel/primitives/varint"
)

// Transaction is a Bitcoin transaction: a version, a list of inputs, a list
// of outputs, and a lock time.
type Transaction struct {
	Version  uint32
	Inputs   []*Input
	Outputs  []*Output
	LockTime uint32
}

// New builds an empty transaction with the default version (1).
func New() *Transaction {
	return &Transaction{Version: 1}
}

// AddInput appends an input to the transaction.
func (tx *Transaction) AddInput(in *Input) {
	tx.Inputs = append(tx.Inputs, in)
}

// AddOutput appends an output to the transaction.
func (tx *Transaction) AddOutput(out *Output) {
	tx.Outputs = append(tx.Outputs, out)
}

// IsCoinbase reports whether tx is a coinbase transaction: exactly one
// input, whose outpoint is the coinbase sentinel.
func (tx *Transaction) IsCoinbase() bool {
	return len(tx.Inputs) == 1 && tx.Inputs[0].IsCoinbase()
}

// Bytes serializes the transaction to its wire form: version(u32 LE) ∥
// varint(input_count) ∥ inputs… ∥ varint(output_count) ∥ outputs… ∥
// lock_time(u32 LE).
func (tx *Transaction) Bytes() []byte {
	var out []byte
	out = appendUint32LE(out, tx.Version)
	out = append(out, varint.Encode(uint64(len(tx.Inputs)))...)
	for _, in := range tx.Inputs {
		out = append(out, in.Bytes()...)
	}
	out = append(out, varint.Encode(uint64(len(tx.Outputs)))...)
	for _, o := range tx.Outputs {
		out = append(out, o.Bytes()...)
	}
	out = appendUint32LE(out, tx.LockTime)
	return out
}

// FromBytes parses a transaction from its wire form, rejecting any
// trailing bytes.
func FromBytes(buf []byte) (*Transaction, error) {
	tx, consumed, err := FromBytesPrefix(buf)
	if err != nil {
		return nil, err
	}
	if consumed != len(buf) {
		return nil, bsverrors.New(bsverrors.KindInvalidLength, "transaction: %d trailing bytes after lock_time", len(buf)-consumed)
	}
	return tx, nil
}

// FromBytesPrefix parses a single transaction occupying a prefix of buf,
// returning the transaction and the number of bytes consumed. Used where a
// transaction is embedded in a larger framing (a block, a BEEF container)
// and further bytes may follow.
func FromBytesPrefix(buf []byte) (*Transaction, int, error) {
	if len(buf) < 4 {
		return nil, 0, bsverrors.New(bsverrors.KindInvalidLength, "transaction: version truncated")
	}
	tx := &Transaction{Version: binary.LittleEndian.Uint32(buf[0:4])}
	i := 4

	inputCount, n, err := varint.Decode(buf[i:], 0)
	if err != nil {
		return nil, 0, err
	}
	i += n

	tx.Inputs = make([]*Input, 0, inputCount)
	for j := uint64(0); j < inputCount; j++ {
		in, consumed, err := readInput(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		tx.Inputs = append(tx.Inputs, in)
		i += consumed
	}

	outputCount, n, err := varint.Decode(buf[i:], 0)
	if err != nil {
		return nil, 0, err
	}
	i += n

	tx.Outputs = make([]*Output, 0, outputCount)
	for j := uint64(0); j < outputCount; j++ {
		o, consumed, err := readOutput(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		tx.Outputs = append(tx.Outputs, o)
		i += consumed
	}

	if len(buf)-i < 4 {
		return nil, 0, bsverrors.New(bsverrors.KindInvalidLength, "transaction: lock_time truncated")
	}
	tx.LockTime = binary.LittleEndian.Uint32(buf[i : i+4])
	i += 4

	return tx, i, nil
}

// TXID computes the transaction's id: double-SHA-256 of the wire
// serialization, displayed byte-reversed per chainhash convention.
func (tx *Transaction) TXID() chainhash.Hash {
	return chainhash.Hash(hash.Sha256d(tx.Bytes()))
}

// TotalOutputSatoshis sums every output's value.
func (tx *Transaction) TotalOutputSatoshis() uint64 {
	var total uint64
	for _, o := range tx.Outputs {
		total += o.Satoshis
	}
	return total
}
