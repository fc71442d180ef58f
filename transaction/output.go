package transaction

import (
	"encoding/binary"

	"github.com/bitcoin-sv/bsvkernel/bsverrors"
	"github.com/bitcoin-sv/bsvkernel/primitives/varint"
	"github.com/bitcoin-sv/bsvkernel/script"
)

// MaxSatoshis is the maximum number of satoshis that may ever exist
// (21,000,000 BSV at 10^8 satoshis each).
const MaxSatoshis = 21_000_000 * 100_000_000

// Output is a transaction output: an amount and the locking script that
// guards it.
type Output struct {
	Satoshis      uint64
	LockingScript script.Script
}

// Bytes serializes the output to its wire form: satoshis(u64 LE) ∥
// varint(script_len) ∥ locking_script.
func (o *Output) Bytes() []byte {
	scriptBytes := o.LockingScript.Bytes()
	out := make([]byte, 0, 8+varint.Size(uint64(len(scriptBytes)))+len(scriptBytes))
	out = appendUint64LE(out, o.Satoshis)
	out = append(out, varint.Encode(uint64(len(scriptBytes)))...)
	out = append(out, scriptBytes...)
	return out
}

// readOutput decodes one Output from buf, returning the output and the
// number of bytes consumed.
func readOutput(buf []byte) (*Output, int, error) {
	if len(buf) < 8 {
		return nil, 0, bsverrors.New(bsverrors.KindInvalidLength, "transaction: output amount truncated")
	}
	satoshis := binary.LittleEndian.Uint64(buf[0:8])
	if satoshis > MaxSatoshis {
		return nil, 0, bsverrors.New(bsverrors.KindInvalidLength, "transaction: output value %d exceeds max supply", satoshis)
	}
	i := 8

	scriptLen, n, err := varint.Decode(buf[i:], 0)
	if err != nil {
		return nil, 0, err
	}
	i += n

	if uint64(len(buf)-i) < scriptLen {
		return nil, 0, bsverrors.New(bsverrors.KindInvalidLength, "transaction: output script truncated")
	}
	locking, err := script.Parse(buf[i : i+int(scriptLen)])
	if err != nil {
		return nil, 0, err
	}
	i += int(scriptLen)

	return &Output{Satoshis: satoshis, LockingScript: locking}, i, nil
}
