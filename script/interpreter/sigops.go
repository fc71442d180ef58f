package interpreter

import (
	"github.com/bitcoin-sv/bsvkernel/bsverrors"
	"github.com/bitcoin-sv/bsvkernel/script"
)

// checkSig implements OP_CHECKSIG / OP_CHECKSIGVERIFY: pop pubkey then
// signature, and unless the signature is empty, delegate to sighashFn with
// the signature's trailing sighash-type byte split off.
func (e *Engine) checkSig(op script.Op) error {
	pubKey, err := e.pop()
	if err != nil {
		return err
	}
	sig, err := e.pop()
	if err != nil {
		return err
	}

	ok, err := e.verifyOne(sig, pubKey)
	if err != nil {
		return err
	}

	if op == script.OpCheckSigVerify {
		if !ok {
			return bsverrors.NewInterpretError(bsverrors.InterpCheckSigVerifyFailed, "interpreter: OP_CHECKSIGVERIFY failed")
		}
		return nil
	}
	e.push(boolBytes(ok))
	return nil
}

// verifyOne checks a single signature against a single pubkey. An empty
// signature is always treated as a non-match without invoking sighashFn.
func (e *Engine) verifyOne(sig, pubKey []byte) (bool, error) {
	if len(sig) == 0 {
		return false, nil
	}
	if e.sighashFn == nil {
		return false, bsverrors.NewInterpretError(bsverrors.InterpNoSighashFn, "interpreter: no signature hook installed")
	}
	sighashType := sig[len(sig)-1]
	sigBody := sig[:len(sig)-1]
	return e.sighashFn(sigBody, pubKey, sighashType)
}

// checkMultiSig implements OP_CHECKMULTISIG / OP_CHECKMULTISIGVERIFY,
// including the historic off-by-one dummy-element pop and the requirement
// that signatures match pubkeys in the same relative order.
func (e *Engine) checkMultiSig(op script.Op) error {
	nKeysInt, err := e.popNum()
	if err != nil {
		return err
	}
	if nKeysInt < 0 || nKeysInt > 20 {
		return bsverrors.NewInterpretError(bsverrors.InterpInvalidPubKeyCount, "interpreter: pubkey count %d out of range", nKeysInt)
	}
	nKeys := int(nKeysInt)

	e.opCount += int64(nKeys)
	if e.opCount > e.limits.MaxOps {
		return bsverrors.NewInterpretError(bsverrors.InterpTooManyOps, "interpreter: op count exceeded")
	}

	if err := e.need(nKeys); err != nil {
		return err
	}
	pubKeys := make([][]byte, nKeys)
	for i := nKeys - 1; i >= 0; i-- {
		pubKeys[i], err = e.pop()
		if err != nil {
			return err
		}
	}

	nSigsInt, err := e.popNum()
	if err != nil {
		return err
	}
	if nSigsInt < 0 || nSigsInt > int64(nKeys) {
		return bsverrors.NewInterpretError(bsverrors.InterpInvalidSigCount, "interpreter: signature count %d out of range", nSigsInt)
	}
	nSigs := int(nSigsInt)

	if err := e.need(nSigs); err != nil {
		return err
	}
	sigs := make([][]byte, nSigs)
	for i := nSigs - 1; i >= 0; i-- {
		sigs[i], err = e.pop()
		if err != nil {
			return err
		}
	}

	// Historic dummy-element bug: an extra item is popped and ignored.
	if _, err := e.pop(); err != nil {
		return err
	}

	ok, err := e.matchSigsToKeys(sigs, pubKeys)
	if err != nil {
		return err
	}

	if op == script.OpCheckMultiSigVerify {
		if !ok {
			return bsverrors.NewInterpretError(bsverrors.InterpCheckMultiSigVerifyFailed, "interpreter: OP_CHECKMULTISIGVERIFY failed")
		}
		return nil
	}
	e.push(boolBytes(ok))
	return nil
}

// matchSigsToKeys reports whether every signature in sigs matches some
// pubkey in pubKeys, consuming pubkeys in order (each pubkey may satisfy at
// most one signature, and signatures must match keys in non-decreasing
// relative position).
func (e *Engine) matchSigsToKeys(sigs, pubKeys [][]byte) (bool, error) {
	keyIdx := 0
	for _, sig := range sigs {
		matched := false
		for keyIdx < len(pubKeys) {
			ok, err := e.verifyOne(sig, pubKeys[keyIdx])
			keyIdx++
			if err != nil {
				return false, err
			}
			if ok {
				matched = true
				break
			}
		}
		if !matched {
			return false, nil
		}
	}
	return true, nil
}
