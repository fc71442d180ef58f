// Package ecdsa implements deterministic (RFC 6979) ECDSA signing and
// verification over secp256k1 with low-S normalization and DER framing,
// composed on top of crypto/ec's curve operations.
package ecdsa

import (
	"math/big"

	"github.com/bitcoin-sv/bsvkernel/bsverrors"
	"github.com/bitcoin-sv/bsvkernel/crypto/ec"
)

// Signature is an ECDSA (r, s) pair.
type Signature struct {
	R, S *big.Int
}

// Sign produces a deterministic, low-S-normalized signature over hash
// using priv, following RFC 6979 for nonce generation.
func Sign(priv *big.Int, hash [32]byte) *Signature {
	z := new(big.Int).SetBytes(hash[:])
	gen := newNonceRFC6979(priv, hash)

	for {
		k := gen.next()

		R := ec.MulToGenerator(k)
		r := new(big.Int).Mod(R.X, ec.N())
		if r.Sign() == 0 {
			continue
		}

		kInv := ec.ScalarInverse(k)
		s := ec.ScalarMul(kInv, ec.ScalarAdd(z, ec.ScalarMul(r, priv)))
		if s.Sign() == 0 {
			continue
		}

		halfN := new(big.Int).Rsh(ec.N(), 1)
		if s.Cmp(halfN) > 0 {
			s = new(big.Int).Sub(ec.N(), s)
		}

		return &Signature{R: r, S: s}
	}
}

// Verify checks sig against hash and the public key point. Callers in
// malleability-sensitive contexts may additionally reject sig.IsHighS().
func Verify(pub *ec.Point, hash [32]byte, sig *Signature) bool {
	if sig.R.Sign() <= 0 || sig.R.Cmp(ec.N()) >= 0 {
		return false
	}
	if sig.S.Sign() <= 0 || sig.S.Cmp(ec.N()) >= 0 {
		return false
	}

	z := new(big.Int).SetBytes(hash[:])
	sInv := ec.ScalarInverse(sig.S)

	u1 := ec.ScalarMul(z, sInv)
	u2 := ec.ScalarMul(sig.R, sInv)

	p1 := ec.MulToGenerator(u1)
	p2 := pub.Mul(u2)
	R := p1.Add(p2)

	if R.X == nil || (R.X.Sign() == 0 && R.Y.Sign() == 0) {
		return false
	}

	return new(big.Int).Mod(R.X, ec.N()).Cmp(sig.R) == 0
}

// IsHighS reports whether s > n/2, the malleable form BIP-62 forbids.
func (s *Signature) IsHighS() bool {
	halfN := new(big.Int).Rsh(ec.N(), 1)
	return s.S.Cmp(halfN) > 0
}

// DER serializes the signature as 0x30 len 0x02 rlen r 0x02 slen s, with a
// leading 0x00 pad byte on any integer whose high bit is set.
func (s *Signature) DER() []byte {
	rb := derInt(s.R)
	sb := derInt(s.S)

	body := make([]byte, 0, 4+len(rb)+len(sb))
	body = append(body, 0x02, byte(len(rb)))
	body = append(body, rb...)
	body = append(body, 0x02, byte(len(sb)))
	body = append(body, sb...)

	out := make([]byte, 0, 2+len(body))
	out = append(out, 0x30, byte(len(body)))
	out = append(out, body...)
	return out
}

func derInt(x *big.Int) []byte {
	b := x.Bytes()
	if len(b) == 0 {
		b = []byte{0x00}
	}
	if b[0]&0x80 != 0 {
		padded := make([]byte, len(b)+1)
		copy(padded[1:], b)
		b = padded
	}
	return b
}

// ParseDER decodes a DER-encoded ECDSA signature, rejecting malformed
// framing and out-of-range r/s.
func ParseDER(der []byte) (*Signature, error) {
	if len(der) < 8 || der[0] != 0x30 {
		return nil, bsverrors.New(bsverrors.KindMalformedEncoding, "ecdsa: not a DER sequence")
	}

	seqLen := int(der[1])
	if seqLen != len(der)-2 {
		return nil, bsverrors.New(bsverrors.KindMalformedEncoding, "ecdsa: bad DER sequence length")
	}

	offset := 2
	r, n, err := derReadInt(der, offset)
	if err != nil {
		return nil, err
	}
	offset += n

	s, n, err := derReadInt(der, offset)
	if err != nil {
		return nil, err
	}
	offset += n

	if offset != len(der) {
		return nil, bsverrors.New(bsverrors.KindMalformedEncoding, "ecdsa: trailing bytes after DER signature")
	}

	if r.Sign() <= 0 || r.Cmp(ec.N()) >= 0 {
		return nil, bsverrors.New(bsverrors.KindInvalidSignature, "ecdsa: r out of range")
	}
	if s.Sign() <= 0 || s.Cmp(ec.N()) >= 0 {
		return nil, bsverrors.New(bsverrors.KindInvalidSignature, "ecdsa: s out of range")
	}

	return &Signature{R: r, S: s}, nil
}

func derReadInt(buf []byte, offset int) (*big.Int, int, error) {
	if offset+2 > len(buf) || buf[offset] != 0x02 {
		return nil, 0, bsverrors.New(bsverrors.KindMalformedEncoding, "ecdsa: expected DER integer")
	}
	length := int(buf[offset+1])
	start := offset + 2
	if start+length > len(buf) {
		return nil, 0, bsverrors.New(bsverrors.KindMalformedEncoding, "ecdsa: truncated DER integer")
	}
	return new(big.Int).SetBytes(buf[start : start+length]), 2 + length, nil
}
