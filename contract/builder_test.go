package contract

import (
	"testing"

	"github.com/bitcoin-sv/bsvkernel/script"
	"github.com/stretchr/testify/require"
)

func TestPushIntSmallValuesUseOpN(t *testing.T) {
	b := New().PushInt(0).PushInt(1).PushInt(16).PushInt(-1)
	s := b.Script()
	require.Equal(t, script.Op0, s[0].Opcode)
	require.Equal(t, script.Op1, s[1].Opcode)
	require.Equal(t, script.Op(script.Op1+15), s[2].Opcode)
	require.Equal(t, script.Op1Negate, s[3].Opcode)
}

func TestPushIntLargeValueIsDataPush(t *testing.T) {
	b := New().PushInt(17)
	s := b.Script()
	require.True(t, s[0].IsData)
}

func TestOpIfBranchesBuildNestedChunks(t *testing.T) {
	b := New().OpIf(func(sub *Builder) {
		sub.OpDup()
	}, func(sub *Builder) {
		sub.OpDrop()
	})
	s := b.Script()
	require.Equal(t, script.OpIf, s[0].Opcode)
	require.Equal(t, script.OpDup, s[1].Opcode)
	require.Equal(t, script.OpElse, s[2].Opcode)
	require.Equal(t, script.OpDrop, s[3].Opcode)
	require.Equal(t, script.OpEndIf, s[4].Opcode)
}

func TestOpIfWithoutElse(t *testing.T) {
	b := New().OpIf(func(sub *Builder) { sub.OpVerify() }, nil)
	s := b.Script()
	require.Equal(t, script.OpIf, s[0].Opcode)
	require.Equal(t, script.OpVerify, s[1].Opcode)
	require.Equal(t, script.OpEndIf, s[2].Opcode)
}

func TestScriptReturnsCopy(t *testing.T) {
	b := New().OpDup()
	s1 := b.Script()
	b.OpDrop()
	s2 := b.Script()
	require.Len(t, s1, 1)
	require.Len(t, s2, 2)
}

func TestPushAppendsDataChunk(t *testing.T) {
	b := New().Push([]byte("hello"))
	s := b.Script()
	require.True(t, s[0].IsData)
	require.Equal(t, []byte("hello"), s[0].Data)
}
