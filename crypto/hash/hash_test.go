package hash

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestSha256Vector(t *testing.T) {
	got := Sha256([]byte("abc"))
	require.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", hex.EncodeToString(got[:]))
}

func TestSha256dVector(t *testing.T) {
	got := Sha256d([]byte("hello"))
	require.Equal(t, "9595c9df90075148eb06860365df33584b75bff782a510c6cd4883a419833d50", hex.EncodeToString(got[:]))
}

func TestRipemd160Vector(t *testing.T) {
	got := Ripemd160([]byte("abc"))
	require.Equal(t, "8eb208f7e05d987a9b044a8e98c6b087f15a0bfc", hex.EncodeToString(got[:]))
}

func TestHash160OfGeneratorPubKey(t *testing.T) {
	// hash160 of the compressed public key for scalar 1.
	pub := mustHex(t, "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798")
	got := Hash160(pub)
	require.Equal(t, "751e76e8199196d454941c45d1b3a323f1433bd6", hex.EncodeToString(got[:]))
}

func TestSha512Vector(t *testing.T) {
	got := Sha512([]byte("abc"))
	require.Equal(t,
		"ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a"+
			"2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f",
		hex.EncodeToString(got[:]))
}

func TestHmacVectors(t *testing.T) {
	// RFC 4231 test case 2.
	key := []byte("Jefe")
	data := []byte("what do ya want for nothing?")

	mac256 := HmacSha256(key, data)
	require.Equal(t, "5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843", hex.EncodeToString(mac256[:]))

	mac512 := HmacSha512(key, data)
	require.Equal(t,
		"164b7a7bfcf819e2e395fbe73b56e0a387bd64222e831fd610270cd7ea250554"+
			"9758bf75c05a994a6d034f65f8f0e6fdcaeab1a34d4a6b4b636e070a38bce737",
		hex.EncodeToString(mac512[:]))
}

func TestSecureCompare(t *testing.T) {
	require.True(t, SecureCompare([]byte("same"), []byte("same")))
	require.False(t, SecureCompare([]byte("same"), []byte("sane")))
	require.False(t, SecureCompare([]byte("short"), []byte("longer")))
	require.True(t, SecureCompare(nil, []byte{}))
}
