package wallet

import (
	"crypto/rand"

	"github.com/bitcoin-sv/bsvkernel/bkeys"
	"github.com/bitcoin-sv/bsvkernel/bsverrors"
	"github.com/bitcoin-sv/bsvkernel/crypto/aesgcm"
	"github.com/bitcoin-sv/bsvkernel/crypto/ecdsa"
	"github.com/bitcoin-sv/bsvkernel/crypto/hash"
)

// EncryptionArgs carries the (protocol, key_id, counterparty) scoping
// triple shared by every ProtoWallet call, plus the privileged-operation
// metadata the BRC-100 wallet interface threads through.
type EncryptionArgs struct {
	Protocol          string
	KeyID             string
	Counterparty      Counterparty
	Privileged        bool
	PrivilegedReason  string
	SeekPermission    bool
}

// ProtoWallet wraps a root key-deriver and exposes the BRC-42/43 key
// derivation operations: public-key lookup, symmetric encryption, digital
// signatures, and HMACs, each scoped by an EncryptionArgs triple.
type ProtoWallet struct {
	rootPriv *bkeys.PrivateKey
}

// New builds a ProtoWallet rooted at rootPriv.
func New(rootPriv *bkeys.PrivateKey) *ProtoWallet {
	return &ProtoWallet{rootPriv: rootPriv}
}

// RootPublicKey returns the wallet's own root public key.
func (w *ProtoWallet) RootPublicKey() *bkeys.PublicKey {
	return w.rootPriv.PubKey()
}

// defaultCounterparty fills in an uninitialized (zero-value) counterparty:
// most operations default to self; signature creation defaults to anyone.
func defaultCounterparty(c Counterparty, isSignatureCreation bool) Counterparty {
	if c.Kind == CounterpartySelf && c.Pub == nil {
		if isSignatureCreation {
			return Anyone()
		}
		return c
	}
	return c
}

// resolvedCounterpartyPubKey applies the "anyone substitutes to other(1*G)"
// rule from the symmetric-derivation algorithm.
func (w *ProtoWallet) resolvedCounterpartyPubKey(c Counterparty) *bkeys.PublicKey {
	return c.resolvePublicKey(w.rootPriv)
}

// GetPublicKey returns the derived public key for args, using w's root key
// (security_level/protocol/key_id scope the BRC-42 invoice).
func (w *ProtoWallet) GetPublicKey(securityLevel SecurityLevel, args EncryptionArgs) (*bkeys.PublicKey, error) {
	args.Counterparty = defaultCounterparty(args.Counterparty, false)
	counterpartyPub := w.resolvedCounterpartyPubKey(args.Counterparty)

	invoice, err := ComputeInvoiceNumber(securityLevel, args.Protocol, args.KeyID)
	if err != nil {
		return nil, err
	}
	derivedPriv, err := w.rootPriv.DeriveChild(counterpartyPub, invoice)
	if err != nil {
		return nil, err
	}
	return derivedPriv.PubKey(), nil
}

// symmetricKeys derives both the modern (sha256(x)) and legacy (raw x)
// symmetric keys for args, per the symmetric-derivation algorithm.
func (w *ProtoWallet) symmetricKeys(securityLevel SecurityLevel, args EncryptionArgs) (modern, legacy [32]byte, err error) {
	args.Counterparty = defaultCounterparty(args.Counterparty, false)
	counterpartyPub := w.resolvedCounterpartyPubKey(args.Counterparty)

	invoice, err := ComputeInvoiceNumber(securityLevel, args.Protocol, args.KeyID)
	if err != nil {
		return modern, legacy, err
	}

	derivedPriv, err := w.rootPriv.DeriveChild(counterpartyPub, invoice)
	if err != nil {
		return modern, legacy, err
	}
	derivedPub, err := counterpartyPub.DeriveChild(w.rootPriv, invoice)
	if err != nil {
		return modern, legacy, err
	}

	shared := derivedPriv.ECDH(derivedPub)
	x := xCoordBytes(shared)

	legacy = x
	modern = hash.Sha256(x[:])
	return modern, legacy, nil
}

func xCoordBytes(pub *bkeys.PublicKey) [32]byte {
	var out [32]byte
	b := pub.Point.X.Bytes()
	copy(out[32-len(b):], b)
	return out
}

// Encrypt derives the symmetric key for (securityLevel, args) and
// AES-256-GCM-encrypts plaintext with a fresh 12-byte IV, returning
// iv ∥ ciphertext ∥ tag.
func (w *ProtoWallet) Encrypt(securityLevel SecurityLevel, args EncryptionArgs, plaintext, aad []byte) ([]byte, error) {
	key, _, err := w.symmetricKeys(securityLevel, args)
	if err != nil {
		return nil, err
	}
	return sealAESGCM(key[:], plaintext, aad)
}

// Decrypt reverses Encrypt. It tries the modern key with a 12-byte IV
// first, then the legacy (raw x-coordinate) key with both 12- and 32-byte
// IV layouts, returning DecryptFailed only if every attempt fails.
func (w *ProtoWallet) Decrypt(securityLevel SecurityLevel, args EncryptionArgs, envelope, aad []byte) ([]byte, error) {
	modern, legacy, err := w.symmetricKeys(securityLevel, args)
	if err != nil {
		return nil, err
	}

	for _, ivLen := range []int{12, 32} {
		for _, key := range [][]byte{modern[:], legacy[:]} {
			if plaintext, ok := tryDecrypt(key, ivLen, envelope, aad); ok {
				return plaintext, nil
			}
		}
	}

	return nil, bsverrors.New(bsverrors.KindDecryptFailed, "wallet: decryption failed under modern and legacy keys")
}

// sealAESGCM AES-256-GCM-encrypts plaintext under a fresh 12-byte IV,
// returning iv ∥ ciphertext ∥ tag.
func sealAESGCM(key, plaintext, aad []byte) ([]byte, error) {
	iv := make([]byte, 12)
	if _, err := rand.Read(iv); err != nil {
		return nil, bsverrors.New(bsverrors.KindInvalidScalar, "wallet: iv generation failed", err)
	}

	ciphertext, tag, err := aesgcm.Encrypt(key, iv, aad, plaintext)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(iv)+len(ciphertext)+len(tag))
	out = append(out, iv...)
	out = append(out, ciphertext...)
	out = append(out, tag...)
	return out, nil
}

func tryDecrypt(key []byte, ivLen int, envelope, aad []byte) ([]byte, bool) {
	if len(envelope) < ivLen+aesgcm.TagSize {
		return nil, false
	}
	iv := envelope[:ivLen]
	ciphertext := envelope[ivLen : len(envelope)-aesgcm.TagSize]
	tag := envelope[len(envelope)-aesgcm.TagSize:]

	plaintext, err := aesgcm.Decrypt(key, iv, aad, ciphertext, tag)
	if err != nil {
		return nil, false
	}
	return plaintext, true
}

// CreateSignature signs digest with the derived child key for
// (securityLevel, args); counterparty defaults to anyone for signature
// creation.
func (w *ProtoWallet) CreateSignature(securityLevel SecurityLevel, args EncryptionArgs, digest [32]byte) (*ecdsa.Signature, error) {
	args.Counterparty = defaultCounterparty(args.Counterparty, true)
	counterpartyPub := w.resolvedCounterpartyPubKey(args.Counterparty)

	invoice, err := ComputeInvoiceNumber(securityLevel, args.Protocol, args.KeyID)
	if err != nil {
		return nil, err
	}
	derivedPriv, err := w.rootPriv.DeriveChild(counterpartyPub, invoice)
	if err != nil {
		return nil, err
	}
	return derivedPriv.Sign(digest), nil
}

// VerifySignature checks sig against digest using the counterparty-derived
// public key for (securityLevel, args).
func (w *ProtoWallet) VerifySignature(securityLevel SecurityLevel, args EncryptionArgs, digest [32]byte, sig *ecdsa.Signature) (bool, error) {
	args.Counterparty = defaultCounterparty(args.Counterparty, false)
	counterpartyPub := w.resolvedCounterpartyPubKey(args.Counterparty)

	invoice, err := ComputeInvoiceNumber(securityLevel, args.Protocol, args.KeyID)
	if err != nil {
		return false, err
	}
	derivedPub, err := counterpartyPub.DeriveChild(w.rootPriv, invoice)
	if err != nil {
		return false, err
	}
	return derivedPub.VerifySignature(digest, sig), nil
}

// CreateHmac computes HMAC-SHA-256(symkey, data) under the modern
// symmetric key for (securityLevel, args).
func (w *ProtoWallet) CreateHmac(securityLevel SecurityLevel, args EncryptionArgs, data []byte) ([32]byte, error) {
	key, _, err := w.symmetricKeys(securityLevel, args)
	if err != nil {
		return [32]byte{}, err
	}
	return hash.HmacSha256(key[:], data), nil
}

// VerifyHmac checks mac against data, trying the modern key first and
// falling back to the legacy key, using a constant-time comparison.
func (w *ProtoWallet) VerifyHmac(securityLevel SecurityLevel, args EncryptionArgs, data []byte, mac [32]byte) (bool, error) {
	modern, legacy, err := w.symmetricKeys(securityLevel, args)
	if err != nil {
		return false, err
	}

	got := hash.HmacSha256(modern[:], data)
	if hash.SecureCompare(got[:], mac[:]) {
		return true, nil
	}
	got = hash.HmacSha256(legacy[:], data)
	return hash.SecureCompare(got[:], mac[:]), nil
}
