package wallet

import (
	"testing"

	"github.com/bitcoin-sv/bsvkernel/bkeys"
	"github.com/stretchr/testify/require"
)

func newTestProtoWallet(t *testing.T) (*ProtoWallet, *bkeys.PrivateKey) {
	t.Helper()
	priv, err := bkeys.NewPrivateKey()
	require.NoError(t, err)
	return New(priv), priv
}

func TestEncryptDecryptMessageRoundTrip(t *testing.T) {
	sender, _ := newTestProtoWallet(t)
	recipient, recipientPriv := newTestProtoWallet(t)

	envelope, err := sender.EncryptMessage(recipientPriv.PubKey(), []byte("hello there"))
	require.NoError(t, err)

	plaintext, senderPub, err := recipient.DecryptMessage(envelope)
	require.NoError(t, err)
	require.Equal(t, []byte("hello there"), plaintext)
	require.True(t, senderPub.Equal(sender.RootPublicKey()))
}

func TestDecryptMessageFailsForWrongRecipient(t *testing.T) {
	sender, _ := newTestProtoWallet(t)
	_, recipientPriv := newTestProtoWallet(t)
	wrongRecipient, _ := newTestProtoWallet(t)

	envelope, err := sender.EncryptMessage(recipientPriv.PubKey(), []byte("secret"))
	require.NoError(t, err)

	_, _, err = wrongRecipient.DecryptMessage(envelope)
	require.Error(t, err)
}

func TestSignVerifyMessageRoundTrip(t *testing.T) {
	sender, _ := newTestProtoWallet(t)
	recipient, recipientPriv := newTestProtoWallet(t)

	envelope, err := sender.SignMessage(Other(recipientPriv.PubKey()), []byte("attested"))
	require.NoError(t, err)

	ok, err := VerifyMessageSignature(recipient, envelope, []byte("attested"))
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerifyMessageSignatureFailsOnTamperedMessage(t *testing.T) {
	sender, _ := newTestProtoWallet(t)
	recipient, recipientPriv := newTestProtoWallet(t)

	envelope, err := sender.SignMessage(Other(recipientPriv.PubKey()), []byte("attested"))
	require.NoError(t, err)

	ok, err := VerifyMessageSignature(recipient, envelope, []byte("tampered"))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSignMessageToAnyoneIsPubliclyVerifiable(t *testing.T) {
	sender, _ := newTestProtoWallet(t)
	anyoneWallet := New(bkeys.AnyonePrivateKey())

	envelope, err := sender.SignMessage(Anyone(), []byte("public statement"))
	require.NoError(t, err)

	ok, err := VerifyMessageSignature(anyoneWallet, envelope, []byte("public statement"))
	require.NoError(t, err)
	require.True(t, ok)
}
