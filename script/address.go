package script

import (
	"github.com/bitcoin-sv/bsvkernel/bsverrors"
	"github.com/bitcoin-sv/bsvkernel/chaincfg"
	"github.com/bitcoin-sv/bsvkernel/primitives/base58"
)

// Address renders a P2PKH script as its Base58Check address under params,
// the inverse of P2PKHScriptFromAddress.
func (s Script) Address(params chaincfg.Params) (string, error) {
	if !s.IsP2PKH() {
		return "", bsverrors.New(bsverrors.KindInvariantViolation, "script: not a P2PKH locking script")
	}
	payload := make([]byte, 0, 21)
	payload = append(payload, params.LegacyPubKeyHashAddrID)
	payload = append(payload, s[2].Data...)
	return base58.CheckEncode(payload), nil
}

// P2PKHScriptFromAddress builds the standard OP_DUP OP_HASH160 <hash160>
// OP_EQUALVERIFY OP_CHECKSIG locking script for a Base58Check P2PKH
// address under params.
func P2PKHScriptFromAddress(address string, params chaincfg.Params) (Script, error) {
	payload, err := base58.CheckDecode(address)
	if err != nil {
		return nil, err
	}
	if len(payload) != 21 {
		return nil, bsverrors.New(bsverrors.KindInvalidLength, "script: decoded address payload must be 21 bytes, got %d", len(payload))
	}
	if payload[0] != params.LegacyPubKeyHashAddrID {
		return nil, bsverrors.New(bsverrors.KindMalformedEncoding, "script: address version byte 0x%02x does not match network", payload[0])
	}

	return Script{
		OpChunk(OpDup),
		OpChunk(OpHash160),
		DataChunk(payload[1:]),
		OpChunk(OpEqualVerify),
		OpChunk(OpCheckSig),
	}, nil
}
