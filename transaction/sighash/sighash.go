// Package sighash implements the BIP-143 signature-hash preimage, adapted
// for BSV's mandatory FORKID flag.
package sighash

import (
	"encoding/binary"

	"github.com/bitcoin-sv/bsvkernel/bsverrors"
	"github.com/bitcoin-sv/bsvkernel/crypto/hash"
	"github.com/bitcoin-sv/bsvkernel/primitives/varint"
	"github.com/bitcoin-sv/bsvkernel/script"
	"github.com/bitcoin-sv/bsvkernel/transaction"
)

// Base sighash types (low 5 bits of the sighash_type byte).
const (
	All    byte = 0x01
	None   byte = 0x02
	Single byte = 0x03
)

// Flag bits of the sighash_type byte.
const (
	AnyOneCanPay byte = 0x80
	ForkID       byte = 0x40
)

// BaseType extracts the low-5-bit base type from a sighash_type byte.
func BaseType(sighashType byte) byte {
	return sighashType & 0x1f
}

// Hash computes the BIP-143 signature hash for the inputIndex'th input of
// tx, using scriptCode as the subscript (the locking script, or the
// post-OP_CODESEPARATOR suffix of it) and the sighashType byte appended to
// signatures. The spent input must carry its SourceOutput annotation.
func Hash(tx *transaction.Transaction, inputIndex int, scriptCode script.Script, sighashType byte) ([32]byte, error) {
	if inputIndex < 0 || inputIndex >= len(tx.Inputs) {
		return [32]byte{}, bsverrors.New(bsverrors.KindInputIndexOutOfRange, "sighash: input index %d out of range (have %d)", inputIndex, len(tx.Inputs))
	}
	if sighashType&ForkID == 0 {
		return [32]byte{}, bsverrors.New(bsverrors.KindMissingForkID, "sighash: FORKID flag required")
	}

	in := tx.Inputs[inputIndex]
	if in.SourceOutput == nil {
		return [32]byte{}, bsverrors.New(bsverrors.KindInvariantViolation, "sighash: input %d missing SourceOutput annotation", inputIndex)
	}

	anyoneCanPay := sighashType&AnyOneCanPay != 0
	base := BaseType(sighashType)

	preimage := make([]byte, 0, 4+32+32+36+9+len(scriptCode.Bytes())+8+4+32+4+4)
	preimage = appendUint32LE(preimage, tx.Version)
	prevouts := hashPrevouts(tx, anyoneCanPay)
	preimage = append(preimage, prevouts[:]...)
	sequence := hashSequence(tx, anyoneCanPay, base)
	preimage = append(preimage, sequence[:]...)
	preimage = append(preimage, in.SourceTXID.Bytes()...)
	preimage = appendUint32LE(preimage, in.SourceVout)

	codeBytes := scriptCode.Bytes()
	preimage = append(preimage, varint.Encode(uint64(len(codeBytes)))...)
	preimage = append(preimage, codeBytes...)

	preimage = appendUint64LE(preimage, in.SourceOutput.Satoshis)
	preimage = appendUint32LE(preimage, in.Sequence)
	outputs := hashOutputs(tx, base, inputIndex)
	preimage = append(preimage, outputs[:]...)
	preimage = appendUint32LE(preimage, tx.LockTime)
	preimage = appendUint32LE(preimage, uint32(sighashType))

	return hash.Sha256d(preimage), nil
}

func hashPrevouts(tx *transaction.Transaction, anyoneCanPay bool) [32]byte {
	if anyoneCanPay {
		return [32]byte{}
	}
	var buf []byte
	for _, in := range tx.Inputs {
		buf = append(buf, in.SourceTXID.Bytes()...)
		buf = appendUint32LE(buf, in.SourceVout)
	}
	return hash.Sha256d(buf)
}

func hashSequence(tx *transaction.Transaction, anyoneCanPay bool, base byte) [32]byte {
	if anyoneCanPay || base == Single || base == None {
		return [32]byte{}
	}
	var buf []byte
	for _, in := range tx.Inputs {
		buf = appendUint32LE(buf, in.Sequence)
	}
	return hash.Sha256d(buf)
}

func hashOutputs(tx *transaction.Transaction, base byte, inputIndex int) [32]byte {
	switch base {
	case Single:
		if inputIndex >= len(tx.Outputs) {
			return [32]byte{}
		}
		return hash.Sha256d(tx.Outputs[inputIndex].Bytes())
	case None:
		return [32]byte{}
	default:
		var buf []byte
		for _, o := range tx.Outputs {
			buf = append(buf, o.Bytes()...)
		}
		return hash.Sha256d(buf)
	}
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
