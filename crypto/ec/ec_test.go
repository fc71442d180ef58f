package ec

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGeneratorIsOnCurve(t *testing.T) {
	require.True(t, G().IsOnCurve())
}

func TestMulToGeneratorMatchesRepeatedAdd(t *testing.T) {
	three := MulToGenerator(big.NewInt(3))
	viaAdd := G().Add(G()).Add(G())
	require.True(t, three.Equal(viaAdd))
}

func TestCompressedUncompressedRoundTrip(t *testing.T) {
	p := MulToGenerator(big.NewInt(42))

	parsedCompressed, err := ParsePoint(p.Compressed())
	require.NoError(t, err)
	require.True(t, p.Equal(parsedCompressed))

	parsedUncompressed, err := ParsePoint(p.Uncompressed())
	require.NoError(t, err)
	require.True(t, p.Equal(parsedUncompressed))
}

func TestParsePointRejectsGarbage(t *testing.T) {
	_, err := ParsePoint(make([]byte, 33))
	require.Error(t, err)
}

func TestScalarArithmetic(t *testing.T) {
	a := big.NewInt(5)
	b := big.NewInt(7)

	sum := ScalarAdd(a, b)
	require.Equal(t, int64(12), sum.Int64())

	inv := ScalarInverse(a)
	require.Equal(t, 0, ScalarMul(a, inv).Cmp(big.NewInt(1)))
}

func TestValidScalar(t *testing.T) {
	require.False(t, ValidScalar(big.NewInt(0)))
	require.True(t, ValidScalar(big.NewInt(1)))
	require.False(t, ValidScalar(N()))
}
