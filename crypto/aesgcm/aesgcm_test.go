package aesgcm

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func randBytes(n int) []byte {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return b
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key := randBytes(KeySize)
	iv := randBytes(12)
	aad := []byte("associated data")
	plaintext := []byte("the quick brown fox jumps over the lazy dog")

	ciphertext, tag, err := Encrypt(key, iv, aad, plaintext)
	require.NoError(t, err)
	require.Len(t, tag, TagSize)

	decrypted, err := Decrypt(key, iv, aad, ciphertext, tag)
	require.NoError(t, err)
	require.Equal(t, plaintext, decrypted)
}

func TestDecryptRejectsTamperedCiphertext(t *testing.T) {
	key := randBytes(KeySize)
	iv := randBytes(12)
	ciphertext, tag, err := Encrypt(key, iv, nil, []byte("secret"))
	require.NoError(t, err)

	ciphertext[0] ^= 0xFF
	_, err = Decrypt(key, iv, nil, ciphertext, tag)
	require.Error(t, err)
}

func TestEncryptRejectsBadKeySize(t *testing.T) {
	_, _, err := Encrypt(randBytes(16), randBytes(12), nil, []byte("x"))
	require.Error(t, err)
}
