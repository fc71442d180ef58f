package contract

import (
	"github.com/rs/zerolog"

	"github.com/bitcoin-sv/bsvkernel/bkeys"
	"github.com/bitcoin-sv/bsvkernel/crypto/ecdsa"
	"github.com/bitcoin-sv/bsvkernel/script"
	"github.com/bitcoin-sv/bsvkernel/script/interpreter"
	"github.com/bitcoin-sv/bsvkernel/transaction"
	"github.com/bitcoin-sv/bsvkernel/transaction/sighash"
)

// SimulateParams pairs a locking script template with the unlocking script
// that should satisfy it, for test-authoring custom script templates.
type SimulateParams struct {
	LockingScript   script.Script
	UnlockingScript script.Script

	// InputSatoshis annotates the simulated funding output; defaults to 1
	// if zero.
	InputSatoshis uint64

	// Trace, when non-nil, receives debug events describing the simulated
	// transaction pair and the evaluation outcome. Only the harness logs;
	// the library's own call paths never do.
	Trace *zerolog.Logger
}

// Simulate builds a funding transaction with no inputs and one output
// carrying lockingScript, a spending transaction whose sole input
// satisfies it with unlockingScript, installs a
// signature-checking hook that verifies ECDSA signatures against the
// BIP-143 sighash of the spending transaction, and runs the interpreter.
// Returns nil iff the composite script validates.
func Simulate(lockingScript, unlockingScript script.Script) error {
	return SimulateWithParams(SimulateParams{LockingScript: lockingScript, UnlockingScript: unlockingScript, InputSatoshis: 1})
}

// SimulateWithParams is Simulate with explicit funding-output satoshis.
func SimulateWithParams(p SimulateParams) error {
	satoshis := p.InputSatoshis
	if satoshis == 0 {
		satoshis = 1
	}

	funding := transaction.New()
	funding.AddOutput(&transaction.Output{Satoshis: satoshis, LockingScript: p.LockingScript})

	spending := transaction.New()
	spending.AddInput(&transaction.Input{
		SourceTXID:      funding.TXID(),
		SourceVout:      0,
		UnlockingScript: p.UnlockingScript,
		Sequence:        transaction.SequenceFinal,
		SourceOutput:    funding.Outputs[0],
	})
	spending.AddOutput(&transaction.Output{Satoshis: satoshis, LockingScript: script.Script{}})

	sighashFn := func(sigBody, pubKeyBytes []byte, sighashType byte) (bool, error) {
		sig, err := ecdsa.ParseDER(sigBody)
		if err != nil {
			return false, err
		}
		pub, err := bkeys.PublicKeyFromBytes(pubKeyBytes)
		if err != nil {
			return false, err
		}
		digest, err := sighash.Hash(spending, 0, p.LockingScript, sighashType)
		if err != nil {
			return false, err
		}
		return pub.VerifySignature(digest, sig), nil
	}

	if p.Trace != nil {
		p.Trace.Debug().
			Str("funding_txid", funding.TXID().String()).
			Uint64("satoshis", satoshis).
			Msg("simulate: built funding/spending pair")
	}

	engine := interpreter.NewEngine(interpreter.PostGenesisLimits, sighashFn)
	err := engine.Execute(p.UnlockingScript, p.LockingScript)
	if p.Trace != nil {
		if err != nil {
			p.Trace.Debug().Err(err).Msg("simulate: script evaluation failed")
		} else {
			p.Trace.Debug().Msg("simulate: script evaluation succeeded")
		}
	}
	return err
}

// SignatureDigest computes the BIP-143 sighash a SimulateParams caller
// would need to produce a valid unlocking-script signature for
// lockingScript against a single-input spend of satoshis with sighashType
// (convenience for contract-template test authoring).
func SignatureDigest(lockingScript script.Script, satoshis uint64, sighashType byte) ([32]byte, error) {
	funding := transaction.New()
	funding.AddOutput(&transaction.Output{Satoshis: satoshis, LockingScript: lockingScript})

	spending := transaction.New()
	spending.AddInput(&transaction.Input{
		SourceTXID:   funding.TXID(),
		SourceVout:   0,
		Sequence:     transaction.SequenceFinal,
		SourceOutput: funding.Outputs[0],
	})
	spending.AddOutput(&transaction.Output{Satoshis: satoshis, LockingScript: script.Script{}})

	return sighash.Hash(spending, 0, lockingScript, sighashType)
}
