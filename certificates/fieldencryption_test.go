package certificates

import (
	"testing"

	"github.com/bitcoin-sv/bsvkernel/chainhash"
	"github.com/bitcoin-sv/bsvkernel/wallet"
	"github.com/stretchr/testify/require"
)

func TestMasterCertificateRoundTrip(t *testing.T) {
	certifierPriv := newTestPriv(t)
	subjectPriv := newTestPriv(t)

	certifierWallet := wallet.New(certifierPriv)
	subjectWallet := wallet.New(subjectPriv)

	plaintext := map[string]string{"name": "Alice", "dob": "2000-01-01"}

	var certType, serial [32]byte
	certType[0] = 0x01
	serial[0] = 0x02

	mc, err := CreateMasterCertificate(certType, serial, subjectPriv.PubKey(), certifierPriv.PubKey(), RevocationOutpoint{TXID: chainhash.Hash{}}, plaintext, certifierWallet)
	require.NoError(t, err)

	ok, err := mc.Certificate.Verify()
	require.NoError(t, err)
	require.True(t, ok)

	for name, want := range plaintext {
		got, err := mc.DecryptField(name, subjectWallet)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestRevealFieldsToVerifierRoundTrip(t *testing.T) {
	certifierPriv := newTestPriv(t)
	subjectPriv := newTestPriv(t)
	verifierPriv := newTestPriv(t)

	certifierWallet := wallet.New(certifierPriv)
	subjectWallet := wallet.New(subjectPriv)
	verifierWallet := wallet.New(verifierPriv)

	plaintext := map[string]string{"name": "Alice", "dob": "2000-01-01", "ssn": "secret"}

	var certType, serial [32]byte
	serial[0] = 0x09

	mc, err := CreateMasterCertificate(certType, serial, subjectPriv.PubKey(), certifierPriv.PubKey(), RevocationOutpoint{}, plaintext, certifierWallet)
	require.NoError(t, err)

	keyring, err := mc.RevealFieldsToVerifier([]string{"name", "dob"}, verifierPriv.PubKey(), subjectWallet)
	require.NoError(t, err)
	require.Len(t, keyring, 2)

	revealed, err := keyring.DecryptFields(mc.Certificate, subjectPriv.PubKey(), verifierWallet)
	require.NoError(t, err)
	require.Equal(t, "Alice", revealed["name"])
	require.Equal(t, "2000-01-01", revealed["dob"])
	_, hasSSN := revealed["ssn"]
	require.False(t, hasSSN)
}

func TestDecryptFieldFailsForWrongSubject(t *testing.T) {
	certifierPriv := newTestPriv(t)
	subjectPriv := newTestPriv(t)
	otherPriv := newTestPriv(t)

	certifierWallet := wallet.New(certifierPriv)
	otherWallet := wallet.New(otherPriv)

	var certType, serial [32]byte
	mc, err := CreateMasterCertificate(certType, serial, subjectPriv.PubKey(), certifierPriv.PubKey(), RevocationOutpoint{}, map[string]string{"name": "Alice"}, certifierWallet)
	require.NoError(t, err)

	_, err = mc.DecryptField("name", otherWallet)
	require.Error(t, err)
}
