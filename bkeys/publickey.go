package bkeys

import (
	"math/big"

	"github.com/bitcoin-sv/bsvkernel/crypto/ec"
	"github.com/bitcoin-sv/bsvkernel/crypto/ecdsa"
	"github.com/bitcoin-sv/bsvkernel/crypto/hash"
)

// PublicKey is a secp256k1 point P = d*G.
type PublicKey struct {
	Point *ec.Point
}

// AnyonePublicKey is the well-known "anyone" public key, 1*G.
func AnyonePublicKey() *PublicKey {
	return &PublicKey{Point: ec.G()}
}

// PublicKeyFromBytes parses a 33-byte compressed or 65-byte uncompressed
// point, rejecting off-curve coordinates.
func PublicKeyFromBytes(b []byte) (*PublicKey, error) {
	pt, err := ec.ParsePoint(b)
	if err != nil {
		return nil, err
	}
	return &PublicKey{Point: pt}, nil
}

// Compressed returns the 33-byte compressed encoding.
func (p *PublicKey) Compressed() []byte {
	return p.Point.Compressed()
}

// Uncompressed returns the 65-byte uncompressed encoding.
func (p *PublicKey) Uncompressed() []byte {
	return p.Point.Uncompressed()
}

// Equal reports whether two public keys represent the same point.
func (p *PublicKey) Equal(other *PublicKey) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.Point.Equal(other.Point)
}

// DeriveChild implements the counterparty side of BRC-42 derivation: the
// holder of rootPriv computes p's derived public key without access to p's
// private key. h = HMAC-SHA256(ECDH(rootPriv, p), invoice), and the result
// equals the public half of the child that p's owner derives with
// (*PrivateKey).DeriveChild against rootPriv's public key.
//
//	P_child = P + int(h)*G
func (p *PublicKey) DeriveChild(rootPriv *PrivateKey, invoice string) (*PublicKey, error) {
	shared := rootPriv.ECDH(p)
	h := hash.HmacSha256(shared.Compressed(), []byte(invoice))
	hInt := new(big.Int).SetBytes(h[:])

	child := p.Point.Add(ec.MulToGenerator(hInt))
	return &PublicKey{Point: child}, nil
}

// VerifySignature checks an ECDSA signature over a 32-byte digest.
func (p *PublicKey) VerifySignature(digest [32]byte, sig *ecdsa.Signature) bool {
	return ecdsa.Verify(p.Point, digest, sig)
}
