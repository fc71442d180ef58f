package wallet

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/binary"

	"github.com/bitcoin-sv/bsvkernel/bkeys"
	"github.com/bitcoin-sv/bsvkernel/bsverrors"
	"github.com/bitcoin-sv/bsvkernel/crypto/ecdsa"
	"github.com/bitcoin-sv/bsvkernel/crypto/hash"
)

// EnvelopeVersion is the 4-byte magic prefixing both BRC-77 signed-message
// and BRC-78 encrypted-message envelopes.
const EnvelopeVersion uint32 = 0x42421033

const (
	messageEncryptionProtocol = "message encryption"
	messageSigningProtocol    = "message signing"
)

// EncryptMessage implements BRC-78: derives a child symmetric key under
// invoice "2-message encryption-{base64(key_id)}" for a fresh random
// key_id, and AES-256-GCM-encrypts plaintext for recipientPub. The
// envelope layout is version(4) ∥ sender_pub(33) ∥ recipient_pub(33) ∥
// key_id(32) ∥ iv(12) ∥ ciphertext ∥ tag(16).
func (w *ProtoWallet) EncryptMessage(recipientPub *bkeys.PublicKey, plaintext []byte) ([]byte, error) {
	keyID := make([]byte, 32)
	if _, err := rand.Read(keyID); err != nil {
		return nil, bsverrors.New(bsverrors.KindInvalidScalar, "wallet: message key id generation failed", err)
	}

	args := EncryptionArgs{
		Protocol:     messageEncryptionProtocol,
		KeyID:        base64.StdEncoding.EncodeToString(keyID),
		Counterparty: Other(recipientPub),
	}
	aesBlob, err := w.Encrypt(SecurityLevelCounterparty, args, plaintext, nil)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, 4+33+33+32+len(aesBlob))
	out = appendUint32LE(out, EnvelopeVersion)
	out = append(out, w.RootPublicKey().Compressed()...)
	out = append(out, recipientPub.Compressed()...)
	out = append(out, keyID...)
	out = append(out, aesBlob...)
	return out, nil
}

// DecryptMessage reverses EncryptMessage: w must be rooted at the
// recipient's private key. Returns the plaintext and the sender's public
// key recovered from the envelope.
func (w *ProtoWallet) DecryptMessage(envelope []byte) (plaintext []byte, senderPub *bkeys.PublicKey, err error) {
	if len(envelope) < 4+33+33+32 {
		return nil, nil, bsverrors.New(bsverrors.KindInvalidLength, "wallet: encrypted message envelope too short")
	}
	if binary.LittleEndian.Uint32(envelope[:4]) != EnvelopeVersion {
		return nil, nil, bsverrors.New(bsverrors.KindMalformedEncoding, "wallet: unrecognized message envelope version")
	}

	senderPub, err = bkeys.PublicKeyFromBytes(envelope[4:37])
	if err != nil {
		return nil, nil, err
	}
	keyID := envelope[70:102]
	aesBlob := envelope[102:]

	args := EncryptionArgs{
		Protocol:     messageEncryptionProtocol,
		KeyID:        base64.StdEncoding.EncodeToString(keyID),
		Counterparty: Other(senderPub),
	}
	plaintext, err = w.Decrypt(SecurityLevelCounterparty, args, aesBlob, nil)
	if err != nil {
		return nil, nil, err
	}
	return plaintext, senderPub, nil
}

// SignMessage implements BRC-77: signs sha256(message) with a child key
// derived under invoice "2-message signing-{base64(key_id)}", where
// recipient is the counterparty the signature is scoped to (Anyone() for a
// publicly verifiable signature). Envelope: version(4) ∥ sender_pub(33) ∥
// recipient_pub(33) ∥ key_id(32) ∥ DER-signature.
func (w *ProtoWallet) SignMessage(recipient Counterparty, message []byte) ([]byte, error) {
	keyID := make([]byte, 32)
	if _, err := rand.Read(keyID); err != nil {
		return nil, bsverrors.New(bsverrors.KindInvalidScalar, "wallet: message key id generation failed", err)
	}

	args := EncryptionArgs{
		Protocol:     messageSigningProtocol,
		KeyID:        base64.StdEncoding.EncodeToString(keyID),
		Counterparty: recipient,
	}
	sig, err := w.CreateSignature(SecurityLevelCounterparty, args, hash.Sha256(message))
	if err != nil {
		return nil, err
	}

	recipientPub := w.resolvedCounterpartyPubKey(defaultCounterparty(recipient, true))
	der := sig.DER()

	out := make([]byte, 0, 4+33+33+32+len(der))
	out = appendUint32LE(out, EnvelopeVersion)
	out = append(out, w.RootPublicKey().Compressed()...)
	out = append(out, recipientPub.Compressed()...)
	out = append(out, keyID...)
	out = append(out, der...)
	return out, nil
}

// VerifyMessageSignature reverses SignMessage: w must be rooted at the key
// the signature's recipient_pub field names (or any key, when that field
// is the well-known anyone key).
func VerifyMessageSignature(w *ProtoWallet, envelope, message []byte) (bool, error) {
	if len(envelope) < 4+33+33+32 {
		return false, bsverrors.New(bsverrors.KindInvalidLength, "wallet: signed message envelope too short")
	}
	if binary.LittleEndian.Uint32(envelope[:4]) != EnvelopeVersion {
		return false, bsverrors.New(bsverrors.KindMalformedEncoding, "wallet: unrecognized message envelope version")
	}

	senderPub, err := bkeys.PublicKeyFromBytes(envelope[4:37])
	if err != nil {
		return false, err
	}
	keyID := envelope[70:102]
	der := envelope[102:]

	sig, err := ecdsa.ParseDER(der)
	if err != nil {
		return false, err
	}

	args := EncryptionArgs{
		Protocol:     messageSigningProtocol,
		KeyID:        base64.StdEncoding.EncodeToString(keyID),
		Counterparty: Other(senderPub),
	}
	return w.VerifySignature(SecurityLevelCounterparty, args, hash.Sha256(message), sig)
}

func appendUint32LE(buf []byte, v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return append(buf, b[:]...)
}
