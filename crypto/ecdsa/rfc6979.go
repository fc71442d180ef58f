package ecdsa

import (
	"crypto/hmac"
	"crypto/sha256"
	"math/big"

	"github.com/bitcoin-sv/bsvkernel/crypto/ec"
)

// nonceRFC6979 generates successive RFC 6979 candidate nonces for the given
// private scalar and message digest, instantiated with HMAC-SHA-256 and
// qlen = hlen = 256 (valid for secp256k1). Call next() to advance past a
// candidate that produced r == 0 or s == 0.
type nonceRFC6979 struct {
	k, v []byte
}

func newNonceRFC6979(priv *big.Int, hash [32]byte) *nonceRFC6979 {
	x := int2octets(priv)
	h1 := bits2octets(hash[:])

	v := bytesOf(0x01, 32)
	k := bytesOf(0x00, 32)

	k = hmacSHA256(k, concat(v, []byte{0x00}, x, h1))
	v = hmacSHA256(k, v)
	k = hmacSHA256(k, concat(v, []byte{0x01}, x, h1))
	v = hmacSHA256(k, v)

	return &nonceRFC6979{k: k, v: v}
}

// next returns the next candidate k in (0, n).
func (g *nonceRFC6979) next() *big.Int {
	for {
		g.v = hmacSHA256(g.k, g.v)
		t := g.v // qlen == hlen == 256, one HMAC block suffices

		k := bits2int(t)

		// Advance K and V before returning as well, so a later call after
		// a rejected r or s continues the RFC 6979 sequence.
		g.k = hmacSHA256(g.k, concat(g.v, []byte{0x00}))
		g.v = hmacSHA256(g.k, g.v)

		if k.Sign() > 0 && k.Cmp(ec.N()) < 0 {
			return k
		}
	}
}

func hmacSHA256(key, data []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(data) //nolint:errcheck
	return mac.Sum(nil)
}

func bytesOf(b byte, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = b
	}
	return out
}

func concat(parts ...[]byte) []byte {
	var total int
	for _, p := range parts {
		total += len(p)
	}
	out := make([]byte, 0, total)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// bits2int interprets b as a big-endian integer (qlen == hlen, no shift).
func bits2int(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}

// int2octets encodes x as a 32-byte big-endian integer.
func int2octets(x *big.Int) []byte {
	return leftPad(x.Bytes(), 32)
}

// bits2octets reduces h by at most one subtraction of n, per RFC 6979,
// then encodes the result as 32 bytes.
func bits2octets(h []byte) []byte {
	z := bits2int(h)
	if z.Cmp(ec.N()) >= 0 {
		z = new(big.Int).Sub(z, ec.N())
	}
	return leftPad(z.Bytes(), 32)
}

func leftPad(b []byte, size int) []byte {
	if len(b) >= size {
		return b[len(b)-size:]
	}
	out := make([]byte, size)
	copy(out[size-len(b):], b)
	return out
}
