package script

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBinaryRoundTripDirectPush(t *testing.T) {
	s := Script{DataChunk([]byte{1, 2, 3}), OpChunk(OpDup), OpChunk(OpEqual)}
	parsed, err := Parse(s.Bytes())
	require.NoError(t, err)
	require.Equal(t, s, parsed)
}

func TestBinaryRoundTripLargePush(t *testing.T) {
	data := make([]byte, 300)
	for i := range data {
		data[i] = byte(i)
	}
	s := Script{DataChunk(data)}
	enc := s.Bytes()
	require.Equal(t, byte(OpPushData2), enc[0])

	parsed, err := Parse(enc)
	require.NoError(t, err)
	require.Equal(t, s, parsed)
}

func TestParseRejectsTruncatedPush(t *testing.T) {
	_, err := Parse([]byte{0x05, 0x01, 0x02})
	require.Error(t, err)
}

func TestASMRoundTrip(t *testing.T) {
	s := Script{OpChunk(Op1), OpChunk(Op1), OpChunk(OpAdd), OpChunk(Op2), OpChunk(OpEqual)}
	asm := s.ASM()
	require.Equal(t, "OP_1 OP_1 OP_ADD OP_2 OP_EQUAL", asm)

	parsed, err := ParseASM(asm)
	require.NoError(t, err)
	require.Equal(t, s, parsed)
}

func TestASMUnknownOpcodeRoundTrip(t *testing.T) {
	s := Script{OpChunk(Op(0xc8))}
	asm := s.ASM()
	require.Equal(t, "OP_UNKNOWN200", asm)

	parsed, err := ParseASM(asm)
	require.NoError(t, err)
	require.Equal(t, s, parsed)
}

func TestASMAliases(t *testing.T) {
	parsed, err := ParseASM("OP_TRUE OP_FALSE OP_CHECKLOCKTIMEVERIFY")
	require.NoError(t, err)
	require.Equal(t, Script{OpChunk(Op1), OpChunk(Op0), OpChunk(OpCheckLockTimeVerify)}, parsed)
}

func TestIsP2PKH(t *testing.T) {
	hash := make([]byte, 20)
	s := Script{OpChunk(OpDup), OpChunk(OpHash160), DataChunk(hash), OpChunk(OpEqualVerify), OpChunk(OpCheckSig)}
	require.True(t, s.IsP2PKH())
	require.False(t, s.IsP2SH())
}

func TestIsP2SH(t *testing.T) {
	hash := make([]byte, 20)
	s := Script{OpChunk(OpHash160), DataChunk(hash), OpChunk(OpEqual)}
	require.True(t, s.IsP2SH())
	require.False(t, s.IsP2PKH())
}

func TestIsOpReturn(t *testing.T) {
	require.True(t, Script{OpChunk(OpReturn)}.IsOpReturn())
	require.True(t, Script{DataChunk(nil), OpChunk(OpReturn)}.IsOpReturn())
	require.False(t, Script{OpChunk(OpDup)}.IsOpReturn())
	require.False(t, Script{}.IsOpReturn())
}
