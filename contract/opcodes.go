package contract

import "github.com/bitcoin-sv/bsvkernel/script"

// Op appends an arbitrary opcode chunk, for opcodes with no named helper
// below (e.g. the NOP expansion slots).
func (b *Builder) Op(o script.Op) *Builder {
	return b.op(o)
}

// Flow control.
func (b *Builder) OpNop() *Builder    { return b.op(script.OpNop) }
func (b *Builder) OpElse() *Builder   { return b.op(script.OpElse) }
func (b *Builder) OpEndIf() *Builder  { return b.op(script.OpEndIf) }
func (b *Builder) OpVerify() *Builder { return b.op(script.OpVerify) }
func (b *Builder) OpReturn() *Builder { return b.op(script.OpReturn) }

// Stack.
func (b *Builder) OpToAltStack() *Builder   { return b.op(script.OpToAltStack) }
func (b *Builder) OpFromAltStack() *Builder { return b.op(script.OpFromAltStack) }
func (b *Builder) Op2Drop() *Builder        { return b.op(script.Op2Drop) }
func (b *Builder) Op2Dup() *Builder         { return b.op(script.Op2Dup) }
func (b *Builder) Op3Dup() *Builder         { return b.op(script.Op3Dup) }
func (b *Builder) Op2Over() *Builder        { return b.op(script.Op2Over) }
func (b *Builder) Op2Rot() *Builder         { return b.op(script.Op2Rot) }
func (b *Builder) Op2Swap() *Builder        { return b.op(script.Op2Swap) }
func (b *Builder) OpIfDup() *Builder        { return b.op(script.OpIfDup) }
func (b *Builder) OpDepth() *Builder        { return b.op(script.OpDepth) }
func (b *Builder) OpDrop() *Builder         { return b.op(script.OpDrop) }
func (b *Builder) OpDup() *Builder          { return b.op(script.OpDup) }
func (b *Builder) OpNip() *Builder          { return b.op(script.OpNip) }
func (b *Builder) OpOver() *Builder         { return b.op(script.OpOver) }
func (b *Builder) OpPick() *Builder         { return b.op(script.OpPick) }
func (b *Builder) OpRoll() *Builder         { return b.op(script.OpRoll) }
func (b *Builder) OpRot() *Builder          { return b.op(script.OpRot) }
func (b *Builder) OpSwap() *Builder         { return b.op(script.OpSwap) }
func (b *Builder) OpTuck() *Builder         { return b.op(script.OpTuck) }

// Splice.
func (b *Builder) OpCat() *Builder     { return b.op(script.OpCat) }
func (b *Builder) OpSplit() *Builder   { return b.op(script.OpSplit) }
func (b *Builder) OpNum2Bin() *Builder { return b.op(script.OpNum2Bin) }
func (b *Builder) OpBin2Num() *Builder { return b.op(script.OpBin2Num) }
func (b *Builder) OpSize() *Builder    { return b.op(script.OpSize) }

// Bitwise.
func (b *Builder) OpInvert() *Builder      { return b.op(script.OpInvert) }
func (b *Builder) OpAnd() *Builder         { return b.op(script.OpAnd) }
func (b *Builder) OpOr() *Builder          { return b.op(script.OpOr) }
func (b *Builder) OpXor() *Builder         { return b.op(script.OpXor) }
func (b *Builder) OpEqual() *Builder       { return b.op(script.OpEqual) }
func (b *Builder) OpEqualVerify() *Builder { return b.op(script.OpEqualVerify) }

// Arithmetic.
func (b *Builder) Op1Add() *Builder               { return b.op(script.Op1Add) }
func (b *Builder) Op1Sub() *Builder               { return b.op(script.Op1Sub) }
func (b *Builder) OpNegate() *Builder             { return b.op(script.OpNegate) }
func (b *Builder) OpAbs() *Builder                { return b.op(script.OpAbs) }
func (b *Builder) OpNot() *Builder                { return b.op(script.OpNot) }
func (b *Builder) Op0NotEqual() *Builder          { return b.op(script.Op0NotEqual) }
func (b *Builder) OpAdd() *Builder                { return b.op(script.OpAdd) }
func (b *Builder) OpSub() *Builder                { return b.op(script.OpSub) }
func (b *Builder) OpMul() *Builder                { return b.op(script.OpMul) }
func (b *Builder) OpDiv() *Builder                { return b.op(script.OpDiv) }
func (b *Builder) OpMod() *Builder                { return b.op(script.OpMod) }
func (b *Builder) OpLShift() *Builder             { return b.op(script.OpLShift) }
func (b *Builder) OpRShift() *Builder             { return b.op(script.OpRShift) }
func (b *Builder) OpBoolAnd() *Builder            { return b.op(script.OpBoolAnd) }
func (b *Builder) OpBoolOr() *Builder             { return b.op(script.OpBoolOr) }
func (b *Builder) OpNumEqual() *Builder           { return b.op(script.OpNumEqual) }
func (b *Builder) OpNumEqualVerify() *Builder     { return b.op(script.OpNumEqualVerify) }
func (b *Builder) OpNumNotEqual() *Builder        { return b.op(script.OpNumNotEqual) }
func (b *Builder) OpLessThan() *Builder           { return b.op(script.OpLessThan) }
func (b *Builder) OpGreaterThan() *Builder        { return b.op(script.OpGreaterThan) }
func (b *Builder) OpLessThanOrEqual() *Builder    { return b.op(script.OpLessThanOrEqual) }
func (b *Builder) OpGreaterThanOrEqual() *Builder { return b.op(script.OpGreaterThanOrEqual) }
func (b *Builder) OpMin() *Builder                { return b.op(script.OpMin) }
func (b *Builder) OpMax() *Builder                { return b.op(script.OpMax) }
func (b *Builder) OpWithin() *Builder             { return b.op(script.OpWithin) }

// Hash / signature.
func (b *Builder) OpRipemd160() *Builder          { return b.op(script.OpRipemd160) }
func (b *Builder) OpSha1() *Builder               { return b.op(script.OpSha1) }
func (b *Builder) OpSha256() *Builder             { return b.op(script.OpSha256) }
func (b *Builder) OpHash160() *Builder            { return b.op(script.OpHash160) }
func (b *Builder) OpHash256() *Builder            { return b.op(script.OpHash256) }
func (b *Builder) OpCodeSeparator() *Builder      { return b.op(script.OpCodeSeparator) }
func (b *Builder) OpCheckSig() *Builder           { return b.op(script.OpCheckSig) }
func (b *Builder) OpCheckSigVerify() *Builder     { return b.op(script.OpCheckSigVerify) }
func (b *Builder) OpCheckMultiSig() *Builder       { return b.op(script.OpCheckMultiSig) }
func (b *Builder) OpCheckMultiSigVerify() *Builder { return b.op(script.OpCheckMultiSigVerify) }
