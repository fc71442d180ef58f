// Package hash exposes the hash and HMAC primitives used throughout
// bsvkernel: SHA-256, double-SHA-256, RIPEMD-160, HASH160, SHA-512, and
// HMAC over SHA-256/SHA-512, built on crypto/sha256 and crypto/sha512
// directly; RIPEMD-160 comes from golang.org/x/crypto/ripemd160.
package hash

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"

	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // required by HASH160
)

// Sha256 returns the SHA-256 digest of data.
func Sha256(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// Sha256d returns SHA-256 applied twice, Bitcoin's standard double hash.
func Sha256d(data []byte) [32]byte {
	first := sha256.Sum256(data)
	return sha256.Sum256(first[:])
}

// Ripemd160 returns the RIPEMD-160 digest of data.
func Ripemd160(data []byte) [20]byte {
	h := ripemd160.New()
	h.Write(data) //nolint:errcheck // hash.Hash.Write never errors
	var out [20]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Hash160 returns RIPEMD160(SHA256(data)), the digest used for P2PKH/P2SH.
func Hash160(data []byte) [20]byte {
	sha := sha256.Sum256(data)
	return Ripemd160(sha[:])
}

// Sha512 returns the SHA-512 digest of data.
func Sha512(data []byte) [64]byte {
	return sha512.Sum512(data)
}

// HmacSha256 computes HMAC-SHA-256(key, data).
func HmacSha256(key, data []byte) [32]byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(data) //nolint:errcheck
	var out [32]byte
	copy(out[:], mac.Sum(nil))
	return out
}

// HmacSha512 computes HMAC-SHA-512(key, data).
func HmacSha512(key, data []byte) [64]byte {
	mac := hmac.New(sha512.New, key)
	mac.Write(data) //nolint:errcheck
	var out [64]byte
	copy(out[:], mac.Sum(nil))
	return out
}

// SecureCompare reports whether a and b are byte-equal, in time independent
// of where the first differing byte lies. Safe for comparing secrets such
// as HMAC tags, key material, or checksums.
func SecureCompare(a, b []byte) bool {
	if len(a) != len(b) {
		// Still run a constant-time comparison against a hash of both so
		// length alone (already visible to any caller holding both slices)
		// doesn't short-circuit timing on the content.
		ha := sha256.Sum256(a)
		hb := sha256.Sum256(b)
		subtle.ConstantTimeCompare(ha[:], hb[:])
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}
