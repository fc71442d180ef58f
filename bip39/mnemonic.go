// Package bip39 implements BIP-39 mnemonic generation and seed derivation,
// wrapping github.com/tyler-smith/go-bip39 for the wordlist, checksum, and
// PBKDF2-HMAC-SHA512 seed stretch rather than reimplementing the 2048-word
// list by hand.
package bip39

import (
	"github.com/tyler-smith/go-bip39"

	"github.com/bitcoin-sv/bsvkernel/bsverrors"
)

// validEntropyBits enumerates the valid entropy sizes (12, 15, 18, 21, 24
// word mnemonics, per the BIP-39 table).
var validEntropyBits = map[int]bool{128: true, 160: true, 192: true, 224: true, 256: true}

// NewMnemonic generates a new mnemonic phrase from bitSize bits of fresh
// entropy (must be a multiple of 32 between 128 and 256).
func NewMnemonic(bitSize int) (string, error) {
	if !validEntropyBits[bitSize] {
		return "", bsverrors.New(bsverrors.KindInvalidLength, "bip39: entropy size must be one of 128/160/192/224/256 bits, got %d", bitSize)
	}
	entropy, err := bip39.NewEntropy(bitSize)
	if err != nil {
		return "", bsverrors.New(bsverrors.KindInvariantViolation, "bip39: entropy generation failed", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", bsverrors.New(bsverrors.KindInvariantViolation, "bip39: mnemonic encoding failed", err)
	}
	return mnemonic, nil
}

// MnemonicFromEntropy encodes a caller-supplied entropy byte slice as a
// mnemonic phrase, validating its checksum-bearing length.
func MnemonicFromEntropy(entropy []byte) (string, error) {
	if !validEntropyBits[len(entropy)*8] {
		return "", bsverrors.New(bsverrors.KindInvalidLength, "bip39: entropy must be 16/20/24/28/32 bytes, got %d", len(entropy))
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", bsverrors.New(bsverrors.KindInvariantViolation, "bip39: mnemonic encoding failed", err)
	}
	return mnemonic, nil
}

// Validate reports whether mnemonic is a well-formed BIP-39 phrase: every
// word in the wordlist and the final checksum bits correct.
func Validate(mnemonic string) bool {
	return bip39.IsMnemonicValid(mnemonic)
}

// EntropyFromMnemonic recovers the original entropy bytes from a mnemonic.
func EntropyFromMnemonic(mnemonic string) ([]byte, error) {
	entropy, err := bip39.EntropyFromMnemonic(mnemonic)
	if err != nil {
		return nil, bsverrors.New(bsverrors.KindMalformedEncoding, "bip39: invalid mnemonic", err)
	}
	return entropy, nil
}

// ToSeed derives the 64-byte BIP-32 seed from a mnemonic and an optional
// passphrase via PBKDF2-HMAC-SHA512 with 2048 iterations over
// "mnemonic"+passphrase.
func ToSeed(mnemonic, passphrase string) []byte {
	return bip39.NewSeed(mnemonic, passphrase)
}
