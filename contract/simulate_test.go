package contract

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/bitcoin-sv/bsvkernel/bkeys"
	"github.com/bitcoin-sv/bsvkernel/script"
	"github.com/bitcoin-sv/bsvkernel/transaction/sighash"
)

func TestSimulateCheckSigSucceeds(t *testing.T) {
	priv, err := bkeys.NewPrivateKey()
	require.NoError(t, err)
	pub := priv.PubKey()

	locking := New().Push(pub.Compressed()).OpCheckSig().Script()

	digest, err := SignatureDigest(locking, 1, sighash.All|sighash.ForkID)
	require.NoError(t, err)

	sig := priv.Sign(digest)
	sigBytes := append(append([]byte{}, sig.DER()...), sighash.All|sighash.ForkID)

	unlocking := New().Push(sigBytes).Script()

	require.NoError(t, Simulate(locking, unlocking))
}

func TestSimulateCheckSigFailsWithWrongKey(t *testing.T) {
	priv, err := bkeys.NewPrivateKey()
	require.NoError(t, err)
	pub := priv.PubKey()

	other, err := bkeys.NewPrivateKey()
	require.NoError(t, err)

	locking := New().Push(pub.Compressed()).OpCheckSig().Script()

	digest, err := SignatureDigest(locking, 1, sighash.All|sighash.ForkID)
	require.NoError(t, err)

	sig := other.Sign(digest)
	sigBytes := append(append([]byte{}, sig.DER()...), sighash.All|sighash.ForkID)

	unlocking := New().Push(sigBytes).Script()

	require.Error(t, Simulate(locking, unlocking))
}

func TestSimulateArithmeticScript(t *testing.T) {
	locking := New().PushInt(2).OpAdd().PushInt(5).OpEqual().Script()
	unlocking := New().PushInt(3).Script()

	require.NoError(t, Simulate(locking, unlocking))
}

func TestSimulateTraceLogsOutcome(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	err := SimulateWithParams(SimulateParams{
		LockingScript:   New().PushInt(1).Script(),
		UnlockingScript: script.Script{},
		Trace:           &logger,
	})
	require.NoError(t, err)
	require.Contains(t, buf.String(), "simulate: script evaluation succeeded")

	buf.Reset()
	err = SimulateWithParams(SimulateParams{
		LockingScript:   New().PushInt(0).Script(),
		UnlockingScript: script.Script{},
		Trace:           &logger,
	})
	require.Error(t, err)
	require.Contains(t, buf.String(), "simulate: script evaluation failed")
}
