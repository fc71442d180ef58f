// Package base58 implements Base58 and Base58Check over the Bitcoin
// alphabet, wiring github.com/btcsuite/btcd/btcutil/base58's raw codec and
// layering the double-SHA-256 checksum framing on top.
package base58

import (
	"github.com/btcsuite/btcd/btcutil/base58"

	"github.com/bitcoin-sv/bsvkernel/bsverrors"
	"github.com/bitcoin-sv/bsvkernel/crypto/hash"
)

// Encode returns the Base58 encoding of data, preserving leading 0x00 bytes
// as leading "1" characters (base58.Encode already does this).
func Encode(data []byte) string {
	return base58.Encode(data)
}

// Decode reverses Encode.
func Decode(s string) ([]byte, error) {
	decoded := base58.Decode(s)
	if len(decoded) == 0 && s != "" {
		return nil, bsverrors.New(bsverrors.KindMalformedEncoding, "base58: invalid character in input")
	}
	return decoded, nil
}

// checksumLen is the number of checksum bytes appended by Base58Check.
const checksumLen = 4

// CheckEncode appends a 4-byte sha256d checksum to data and Base58-encodes
// the result.
func CheckEncode(data []byte) string {
	sum := hash.Sha256d(data)
	payload := make([]byte, 0, len(data)+checksumLen)
	payload = append(payload, data...)
	payload = append(payload, sum[:checksumLen]...)
	return Encode(payload)
}

// CheckDecode reverses CheckEncode, verifying the checksum in constant time
// and returning only the payload (without the checksum suffix).
func CheckDecode(s string) ([]byte, error) {
	decoded, err := Decode(s)
	if err != nil {
		return nil, err
	}
	if len(decoded) < checksumLen {
		return nil, bsverrors.New(bsverrors.KindInvalidLength, "base58check: input shorter than checksum")
	}

	payload := decoded[:len(decoded)-checksumLen]
	checksum := decoded[len(decoded)-checksumLen:]

	sum := hash.Sha256d(payload)
	if !hash.SecureCompare(sum[:checksumLen], checksum) {
		return nil, bsverrors.New(bsverrors.KindMalformedEncoding, "base58check: checksum mismatch")
	}

	return payload, nil
}
