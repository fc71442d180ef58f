// Package contract implements a chainable script-builder DSL: a
// fluent accumulator of script chunks with push helpers, per-opcode
// methods, callback-based flow control, and a simulate-and-verify harness
// for authoring custom script templates. Built on script.Script's chunk
// model; the harness composes a locking/unlocking script pair and hands
// it to the interpreter's Engine.
package contract

import (
	"github.com/bitcoin-sv/bsvkernel/primitives/scriptnum"
	"github.com/bitcoin-sv/bsvkernel/script"
)

// Builder accumulates script chunks. The zero value is an empty script.
type Builder struct {
	chunks script.Script
}

// New starts an empty builder.
func New() *Builder {
	return &Builder{}
}

// Script returns the accumulated script.
func (b *Builder) Script() script.Script {
	return append(script.Script(nil), b.chunks...)
}

// Push appends a raw data push.
func (b *Builder) Push(data []byte) *Builder {
	b.chunks = append(b.chunks, script.DataChunk(data))
	return b
}

// PushInt appends the minimal encoding of n: OP_1NEGATE/OP_0/OP_1..OP_16
// for the values those opcodes cover, else a ScriptNum data push.
func (b *Builder) PushInt(n int64) *Builder {
	switch {
	case n == 0:
		return b.op(script.Op0)
	case n == -1:
		return b.op(script.Op1Negate)
	case n >= 1 && n <= 16:
		return b.op(script.Op1 + script.Op(n-1))
	default:
		return b.Push(scriptnum.Encode(n))
	}
}

// op appends a non-data opcode chunk.
func (b *Builder) op(o script.Op) *Builder {
	b.chunks = append(b.chunks, script.OpChunk(o))
	return b
}

// OpIf appends OP_IF, the chunks built by then_, OP_ENDIF. A non-nil
// else_ is rendered between OP_ELSE and OP_ENDIF.
func (b *Builder) OpIf(then_ func(*Builder), else_ func(*Builder)) *Builder {
	return b.branch(script.OpIf, then_, else_)
}

// OpNotIf mirrors OpIf using OP_NOTIF.
func (b *Builder) OpNotIf(then_ func(*Builder), else_ func(*Builder)) *Builder {
	return b.branch(script.OpNotIf, then_, else_)
}

func (b *Builder) branch(open script.Op, then_ func(*Builder), else_ func(*Builder)) *Builder {
	b.op(open)
	if then_ != nil {
		sub := New()
		then_(sub)
		b.chunks = append(b.chunks, sub.chunks...)
	}
	if else_ != nil {
		b.op(script.OpElse)
		sub := New()
		else_(sub)
		b.chunks = append(b.chunks, sub.chunks...)
	}
	b.op(script.OpEndIf)
	return b
}
