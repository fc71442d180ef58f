// Package bkeys implements the private and public key types:
// generation, WIF import/export, ECDH, and serialization. Point and
// scalar math is delegated to crypto/ec; signing to crypto/ecdsa; WIF
// decoding to github.com/libsv/go-bk/wif.
package bkeys

import (
	"crypto/rand"
	"math/big"

	"github.com/libsv/go-bk/wif"

	"github.com/bitcoin-sv/bsvkernel/bsverrors"
	"github.com/bitcoin-sv/bsvkernel/chaincfg"
	"github.com/bitcoin-sv/bsvkernel/crypto/ec"
	"github.com/bitcoin-sv/bsvkernel/crypto/ecdsa"
	"github.com/bitcoin-sv/bsvkernel/crypto/hash"
	"github.com/bitcoin-sv/bsvkernel/primitives/base58"
)

// PrivateKey is a secp256k1 scalar d in (0, n). It must never be logged or
// exposed by default formatters; String intentionally redacts.
type PrivateKey struct {
	D *big.Int
}

// NewPrivateKey generates a private key using the OS CSPRNG.
func NewPrivateKey() (*PrivateKey, error) {
	for {
		d, err := rand.Int(rand.Reader, ec.N())
		if err != nil {
			return nil, bsverrors.New(bsverrors.KindInvalidScalar, "bkeys: random generation failed", err)
		}
		if d.Sign() != 0 {
			return &PrivateKey{D: d}, nil
		}
	}
}

// AnyonePrivateKey is the private key behind AnyonePublicKey (scalar 1).
// Used to root a ProtoWallet that verifies signatures made with the
// well-known anyone counterparty.
func AnyonePrivateKey() *PrivateKey {
	return &PrivateKey{D: big.NewInt(1)}
}

// PrivateKeyFromBytes parses a 32-byte big-endian scalar, rejecting values
// outside (0, n).
func PrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	if len(b) != 32 {
		return nil, bsverrors.New(bsverrors.KindInvalidLength, "bkeys: private key must be 32 bytes")
	}
	d := new(big.Int).SetBytes(b)
	if !ec.ValidScalar(d) {
		return nil, bsverrors.New(bsverrors.KindInvalidScalar, "bkeys: scalar out of range")
	}
	return &PrivateKey{D: d}, nil
}

// Bytes returns the private key as a 32-byte big-endian scalar.
func (p *PrivateKey) Bytes() []byte {
	out := make([]byte, 32)
	b := p.D.Bytes()
	copy(out[32-len(b):], b)
	return out
}

// PubKey returns the corresponding public key, d*G.
func (p *PrivateKey) PubKey() *PublicKey {
	return &PublicKey{Point: ec.MulToGenerator(p.D)}
}

// String redacts key material; never print a private key directly.
func (p *PrivateKey) String() string { return "PrivateKey(<redacted>)" }

// Sign produces a deterministic low-S ECDSA signature over a 32-byte
// digest (normally sha256d or sha256 of the message, per caller's choice).
func (p *PrivateKey) Sign(digest [32]byte) *ecdsa.Signature {
	return ecdsa.Sign(p.D, digest)
}

// SignMessage signs sha256(message).
func (p *PrivateKey) SignMessage(message []byte) *ecdsa.Signature {
	return p.Sign(hash.Sha256(message))
}

// ECDH computes the shared secret point d*P for this private key and a
// counterparty public key.
func (p *PrivateKey) ECDH(pub *PublicKey) *PublicKey {
	return &PublicKey{Point: pub.Point.Mul(p.D)}
}

// DeriveChild implements BRC-42 child private-key derivation relative to a
// counterparty public key and invoice number.
//
//	S = ECDH(d_root, P_cp)
//	h = HMAC_SHA256(key = compressed(S), data = invoice)
//	d_child = (d_root + int(h)) mod n
func (p *PrivateKey) DeriveChild(counterparty *PublicKey, invoice string) (*PrivateKey, error) {
	shared := p.ECDH(counterparty)
	h := hash.HmacSha256(shared.Compressed(), []byte(invoice))
	hInt := new(big.Int).SetBytes(h[:])

	dChild := ec.ScalarAdd(p.D, hInt)
	if dChild.Sign() == 0 {
		return nil, bsverrors.New(bsverrors.KindInvalidScalar, "bkeys: derived child scalar is zero, choose a different invoice")
	}

	return &PrivateKey{D: dChild}, nil
}

// WIF encodes the private key in Wallet Import Format: version byte, 32-byte
// scalar, an optional 0x01 compression flag, Base58Check-encoded.
func (p *PrivateKey) WIF(params chaincfg.Params, compressed bool) string {
	payload := make([]byte, 0, 34)
	payload = append(payload, params.PrivateKeyID)
	payload = append(payload, p.Bytes()...)
	if compressed {
		payload = append(payload, 0x01)
	}
	return base58.CheckEncode(payload)
}

// PrivateKeyFromWIF decodes a WIF string, returning the key, whether it
// encodes a compressed public key, and the network parameters it was
// minted under. The scalar itself is reconstructed via go-bk/wif's
// DecodeWIF; the version byte is read separately through Base58Check
// since go-bk/wif's single-string decoder has no notion of this
// library's multi-network chaincfg.Params selection.
func PrivateKeyFromWIF(wifStr string) (priv *PrivateKey, compressed bool, params chaincfg.Params, err error) {
	decoded, err := wif.DecodeWIF(wifStr)
	if err != nil {
		return nil, false, chaincfg.Params{}, bsverrors.New(bsverrors.KindMalformedEncoding, "wif: decode failed", err)
	}

	payload, err := base58.CheckDecode(wifStr)
	if err != nil {
		return nil, false, chaincfg.Params{}, err
	}
	if len(payload) != 33 && len(payload) != 34 {
		return nil, false, chaincfg.Params{}, bsverrors.New(bsverrors.KindInvalidLength, "wif: unexpected payload length %d", len(payload))
	}

	switch payload[0] {
	case chaincfg.MainNet.PrivateKeyID:
		params = chaincfg.MainNet
	case chaincfg.TestNet.PrivateKeyID:
		params = chaincfg.TestNet
	default:
		return nil, false, chaincfg.Params{}, bsverrors.New(bsverrors.KindMalformedEncoding, "wif: unrecognized version byte 0x%02x", payload[0])
	}

	d := decoded.PrivKey.D
	if !ec.ValidScalar(d) {
		return nil, false, chaincfg.Params{}, bsverrors.New(bsverrors.KindInvalidScalar, "bkeys: scalar out of range")
	}

	return &PrivateKey{D: d}, decoded.CompressPubKey, params, nil
}
