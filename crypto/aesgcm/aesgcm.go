// Package aesgcm implements the AES-256-GCM AEAD operations used by the
// wallet protocol (BRC-42/43 symmetric encryption) and certificate field
// encryption. Built entirely on the standard library's crypto/aes and
// crypto/cipher, Go's idiomatic AEAD path.
package aesgcm

import (
	"crypto/aes"
	"crypto/cipher"

	"github.com/bitcoin-sv/bsvkernel/bsverrors"
)

// KeySize is the required symmetric key length in bytes.
const KeySize = 32

// TagSize is the GCM authentication tag length in bytes.
const TagSize = 16

// Encrypt AES-256-GCM-encrypts plaintext under key, iv, and aad, returning
// the ciphertext and its 16-byte authentication tag separately.
func Encrypt(key, iv, aad, plaintext []byte) (ciphertext, tag []byte, err error) {
	if len(key) != KeySize {
		return nil, nil, bsverrors.New(bsverrors.KindInvalidLength, "aesgcm: key must be %d bytes", KeySize)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, nil, bsverrors.New(bsverrors.KindInvalidScalar, "aesgcm: new cipher", err)
	}

	gcm, err := cipher.NewGCMWithNonceSize(block, len(iv))
	if err != nil {
		return nil, nil, bsverrors.New(bsverrors.KindInvalidLength, "aesgcm: invalid iv size", err)
	}

	sealed := gcm.Seal(nil, iv, plaintext, aad)
	ciphertext = sealed[:len(sealed)-gcm.Overhead()]
	tag = sealed[len(sealed)-gcm.Overhead():]

	return ciphertext, tag, nil
}

// Decrypt reverses Encrypt, returning DecryptFailed if authentication fails.
func Decrypt(key, iv, aad, ciphertext, tag []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, bsverrors.New(bsverrors.KindInvalidLength, "aesgcm: key must be %d bytes", KeySize)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, bsverrors.New(bsverrors.KindInvalidScalar, "aesgcm: new cipher", err)
	}

	gcm, err := cipher.NewGCMWithNonceSize(block, len(iv))
	if err != nil {
		return nil, bsverrors.New(bsverrors.KindInvalidLength, "aesgcm: invalid iv size", err)
	}

	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := gcm.Open(nil, iv, sealed, aad)
	if err != nil {
		return nil, bsverrors.New(bsverrors.KindDecryptFailed, "aesgcm: authentication failed", err)
	}

	return plaintext, nil
}
