package wallet

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/bitcoin-sv/bsvkernel/bsverrors"
)

const nonceHmacProtocol = "server hmac"

// CreateNonce implements the BRC-31 authentication nonce:
// base64(random(16) ∥ HMAC(random)), where the HMAC is derived under
// (security_level=1, protocol="server hmac", key_id=str(random)).
func (w *ProtoWallet) CreateNonce() (string, error) {
	random := make([]byte, 16)
	if _, err := rand.Read(random); err != nil {
		return "", bsverrors.New(bsverrors.KindInvalidScalar, "wallet: nonce randomness generation failed", err)
	}

	args := EncryptionArgs{Protocol: nonceHmacProtocol, KeyID: base64.StdEncoding.EncodeToString(random)}
	mac, err := w.CreateHmac(SecurityLevelApp, args, random)
	if err != nil {
		return "", err
	}

	out := make([]byte, 0, len(random)+len(mac))
	out = append(out, random...)
	out = append(out, mac[:]...)
	return base64.StdEncoding.EncodeToString(out), nil
}

// VerifyNonce checks a nonce produced by CreateNonce against w's own
// derived HMAC.
func (w *ProtoWallet) VerifyNonce(nonce string) (bool, error) {
	raw, err := base64.StdEncoding.DecodeString(nonce)
	if err != nil {
		return false, bsverrors.New(bsverrors.KindMalformedEncoding, "wallet: nonce is not valid base64", err)
	}
	if len(raw) != 16+32 {
		return false, bsverrors.New(bsverrors.KindInvalidLength, "wallet: nonce has wrong length")
	}
	random := raw[:16]
	var mac [32]byte
	copy(mac[:], raw[16:])

	args := EncryptionArgs{Protocol: nonceHmacProtocol, KeyID: base64.StdEncoding.EncodeToString(random)}
	return w.VerifyHmac(SecurityLevelApp, args, random, mac)
}
