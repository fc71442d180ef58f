package interpreter

import (
	"crypto/sha1" //nolint:gosec // OP_SHA1 is a script primitive, not used for security here
	"crypto/sha256"

	"github.com/bitcoin-sv/bsvkernel/bsverrors"
	"github.com/bitcoin-sv/bsvkernel/crypto/hash"
	"github.com/bitcoin-sv/bsvkernel/primitives/scriptnum"
	"github.com/bitcoin-sv/bsvkernel/script"
)

func (e *Engine) dispatch(op script.Op) error {
	switch {
	case op == script.Op0:
		e.push(nil)
		return nil
	case op == script.Op1Negate:
		e.push(scriptnum.Encode(-1))
		return nil
	case op >= script.Op1 && op <= script.Op16:
		e.push(scriptnum.Encode(int64(op - script.Op1 + 1)))
		return nil
	}

	switch op {
	case script.OpNop,
		script.OpNop1, script.OpNop4, script.OpNop5, script.OpNop6,
		script.OpNop7, script.OpNop8, script.OpNop9, script.OpNop10,
		script.OpCheckLockTimeVerify, script.OpCheckSequenceVerify:
		return nil

	case script.OpVerify:
		v, err := e.pop()
		if err != nil {
			return err
		}
		if !isTruthy(v) {
			return bsverrors.NewInterpretError(bsverrors.InterpVerifyFailed, "interpreter: OP_VERIFY failed")
		}
		return nil

	case script.OpReturn:
		return bsverrors.NewInterpretError(bsverrors.InterpOpReturn, "interpreter: OP_RETURN")

	case script.OpToAltStack:
		v, err := e.pop()
		if err != nil {
			return err
		}
		e.altStack = append(e.altStack, v)
		return nil

	case script.OpFromAltStack:
		if len(e.altStack) == 0 {
			return bsverrors.NewInterpretError(bsverrors.InterpAltStackUnderflow, "interpreter: alt stack underflow")
		}
		v := e.altStack[len(e.altStack)-1]
		e.altStack = e.altStack[:len(e.altStack)-1]
		e.push(v)
		return nil

	case script.Op2Drop:
		if err := e.need(2); err != nil {
			return err
		}
		e.stack = e.stack[:len(e.stack)-2]
		return nil

	case script.Op2Dup:
		if err := e.need(2); err != nil {
			return err
		}
		n := len(e.stack)
		e.push(dup(e.stack[n-2]))
		e.push(dup(e.stack[n-1]))
		return nil

	case script.Op3Dup:
		if err := e.need(3); err != nil {
			return err
		}
		n := len(e.stack)
		e.push(dup(e.stack[n-3]))
		e.push(dup(e.stack[n-2]))
		e.push(dup(e.stack[n-1]))
		return nil

	case script.Op2Over:
		if err := e.need(4); err != nil {
			return err
		}
		n := len(e.stack)
		e.push(dup(e.stack[n-4]))
		e.push(dup(e.stack[n-3]))
		return nil

	case script.Op2Rot:
		if err := e.need(6); err != nil {
			return err
		}
		n := len(e.stack)
		a, b := e.stack[n-6], e.stack[n-5]
		copy(e.stack[n-6:], e.stack[n-4:])
		e.stack[n-2], e.stack[n-1] = a, b
		return nil

	case script.Op2Swap:
		if err := e.need(4); err != nil {
			return err
		}
		n := len(e.stack)
		e.stack[n-4], e.stack[n-2] = e.stack[n-2], e.stack[n-4]
		e.stack[n-3], e.stack[n-1] = e.stack[n-1], e.stack[n-3]
		return nil

	case script.OpIfDup:
		if err := e.need(1); err != nil {
			return err
		}
		if isTruthy(e.top()) {
			e.push(dup(e.top()))
		}
		return nil

	case script.OpDepth:
		e.push(scriptnum.Encode(int64(len(e.stack))))
		return nil

	case script.OpDrop:
		_, err := e.pop()
		return err

	case script.OpDup:
		if err := e.need(1); err != nil {
			return err
		}
		e.push(dup(e.top()))
		return nil

	case script.OpNip:
		if err := e.need(2); err != nil {
			return err
		}
		n := len(e.stack)
		e.stack = append(e.stack[:n-2], e.stack[n-1])
		return nil

	case script.OpOver:
		if err := e.need(2); err != nil {
			return err
		}
		n := len(e.stack)
		e.push(dup(e.stack[n-2]))
		return nil

	case script.OpPick, script.OpRoll:
		nInt, err := e.popNum()
		if err != nil {
			return err
		}
		if nInt < 0 || int(nInt) >= len(e.stack) {
			return bsverrors.NewInterpretError(bsverrors.InterpInvalidOperandSize, "interpreter: pick/roll index out of range")
		}
		idx := len(e.stack) - 1 - int(nInt)
		v := e.stack[idx]
		if op == script.OpRoll {
			e.stack = append(e.stack[:idx], e.stack[idx+1:]...)
		} else {
			v = dup(v)
		}
		e.push(v)
		return nil

	case script.OpRot:
		if err := e.need(3); err != nil {
			return err
		}
		n := len(e.stack)
		e.stack[n-3], e.stack[n-2], e.stack[n-1] = e.stack[n-2], e.stack[n-1], e.stack[n-3]
		return nil

	case script.OpSwap:
		if err := e.need(2); err != nil {
			return err
		}
		n := len(e.stack)
		e.stack[n-1], e.stack[n-2] = e.stack[n-2], e.stack[n-1]
		return nil

	case script.OpTuck:
		if err := e.need(2); err != nil {
			return err
		}
		n := len(e.stack)
		v := dup(e.stack[n-1])
		e.stack = append(e.stack[:n-2], v, e.stack[n-2], e.stack[n-1])
		return nil

	case script.OpCat:
		b, err := e.pop()
		if err != nil {
			return err
		}
		a, err := e.pop()
		if err != nil {
			return err
		}
		out := append(append([]byte{}, a...), b...)
		if int64(len(out)) > e.limits.MaxElementSize {
			return bsverrors.NewInterpretError(bsverrors.InterpElementSizeExceeded, "interpreter: OP_CAT result exceeds max element size")
		}
		e.push(out)
		return nil

	case script.OpSplit:
		nInt, err := e.popNum()
		if err != nil {
			return err
		}
		v, err := e.pop()
		if err != nil {
			return err
		}
		if nInt < 0 || int(nInt) > len(v) {
			return bsverrors.NewInterpretError(bsverrors.InterpInvalidSplitRange, "interpreter: OP_SPLIT index out of range")
		}
		e.push(append([]byte{}, v[:nInt]...))
		e.push(append([]byte{}, v[nInt:]...))
		return nil

	case script.OpNum2Bin:
		sizeInt, err := e.popNum()
		if err != nil {
			return err
		}
		v, err := e.pop()
		if err != nil {
			return err
		}
		if sizeInt > e.limits.MaxElementSize {
			return bsverrors.NewInterpretError(bsverrors.InterpElementSizeExceeded, "interpreter: OP_NUM2BIN size exceeds max element size")
		}
		out, err := num2bin(v, int(sizeInt))
		if err != nil {
			return err
		}
		e.push(out)
		return nil

	case script.OpBin2Num:
		v, err := e.pop()
		if err != nil {
			return err
		}
		n, err := scriptnum.Decode(v, len(v))
		if err != nil {
			return bsverrors.NewInterpretError(bsverrors.InterpInvalidOperandSize, "interpreter: OP_BIN2NUM invalid operand", err)
		}
		e.push(scriptnum.Encode(n))
		return nil

	case script.OpSize:
		if err := e.need(1); err != nil {
			return err
		}
		e.push(scriptnum.Encode(int64(len(e.top()))))
		return nil

	case script.OpInvert:
		v, err := e.pop()
		if err != nil {
			return err
		}
		out := make([]byte, len(v))
		for i, b := range v {
			out[i] = ^b
		}
		e.push(out)
		return nil

	case script.OpAnd, script.OpOr, script.OpXor:
		b, err := e.pop()
		if err != nil {
			return err
		}
		a, err := e.pop()
		if err != nil {
			return err
		}
		if len(a) != len(b) {
			return bsverrors.NewInterpretError(bsverrors.InterpInvalidOperandSize, "interpreter: bitwise op requires equal-length operands")
		}
		out := make([]byte, len(a))
		for i := range a {
			switch op {
			case script.OpAnd:
				out[i] = a[i] & b[i]
			case script.OpOr:
				out[i] = a[i] | b[i]
			default:
				out[i] = a[i] ^ b[i]
			}
		}
		e.push(out)
		return nil

	case script.OpEqual, script.OpEqualVerify:
		b, err := e.pop()
		if err != nil {
			return err
		}
		a, err := e.pop()
		if err != nil {
			return err
		}
		eq := bytesEqual(a, b)
		if op == script.OpEqualVerify {
			if !eq {
				return bsverrors.NewInterpretError(bsverrors.InterpEqualVerifyFailed, "interpreter: OP_EQUALVERIFY failed")
			}
			return nil
		}
		e.push(boolBytes(eq))
		return nil

	case script.Op1Add, script.Op1Sub, script.OpNegate, script.OpAbs, script.OpNot, script.Op0NotEqual:
		n, err := e.popNum()
		if err != nil {
			return err
		}
		var result int64
		switch op {
		case script.Op1Add:
			result = n + 1
		case script.Op1Sub:
			result = n - 1
		case script.OpNegate:
			result = -n
		case script.OpAbs:
			if n < 0 {
				result = -n
			} else {
				result = n
			}
		case script.OpNot:
			if n == 0 {
				result = 1
			}
		case script.Op0NotEqual:
			if n != 0 {
				result = 1
			}
		}
		e.push(scriptnum.Encode(result))
		return nil

	case script.OpAdd, script.OpSub, script.OpMul, script.OpDiv, script.OpMod,
		script.OpBoolAnd, script.OpBoolOr, script.OpNumEqual, script.OpNumEqualVerify,
		script.OpNumNotEqual, script.OpLessThan, script.OpGreaterThan,
		script.OpLessThanOrEqual, script.OpGreaterThanOrEqual, script.OpMin, script.OpMax:
		b, err := e.popNum()
		if err != nil {
			return err
		}
		a, err := e.popNum()
		if err != nil {
			return err
		}
		return e.binaryNumOp(op, a, b)

	case script.OpWithin:
		maxV, err := e.popNum()
		if err != nil {
			return err
		}
		minV, err := e.popNum()
		if err != nil {
			return err
		}
		x, err := e.popNum()
		if err != nil {
			return err
		}
		e.push(boolBytes(x >= minV && x < maxV))
		return nil

	case script.OpLShift, script.OpRShift:
		shift, err := e.popNum()
		if err != nil {
			return err
		}
		v, err := e.pop()
		if err != nil {
			return err
		}
		if shift < 0 {
			return bsverrors.NewInterpretError(bsverrors.InterpInvalidShift, "interpreter: negative shift count")
		}
		n, err := scriptnum.Decode(v, e.limits.MaxScriptNumLen)
		if err != nil {
			return bsverrors.NewInterpretError(bsverrors.InterpInvalidOperandSize, "interpreter: invalid shift operand", err)
		}
		if op == script.OpLShift {
			e.push(scriptnum.Encode(n << uint(shift)))
		} else {
			e.push(scriptnum.Encode(n >> uint(shift)))
		}
		return nil

	case script.OpRipemd160, script.OpSha1, script.OpSha256, script.OpHash160, script.OpHash256:
		v, err := e.pop()
		if err != nil {
			return err
		}
		e.push(hashOp(op, v))
		return nil

	case script.OpCheckSig, script.OpCheckSigVerify:
		return e.checkSig(op)

	case script.OpCheckMultiSig, script.OpCheckMultiSigVerify:
		return e.checkMultiSig(op)

	default:
		return bsverrors.NewUnknownOpcodeError(byte(op))
	}
}

func (e *Engine) binaryNumOp(op script.Op, a, b int64) error {
	switch op {
	case script.OpAdd:
		e.push(scriptnum.Encode(a + b))
	case script.OpSub:
		e.push(scriptnum.Encode(a - b))
	case script.OpMul:
		e.push(scriptnum.Encode(a * b))
	case script.OpDiv:
		if b == 0 {
			return bsverrors.NewInterpretError(bsverrors.InterpDivideByZero, "interpreter: division by zero")
		}
		e.push(scriptnum.Encode(a / b))
	case script.OpMod:
		if b == 0 {
			return bsverrors.NewInterpretError(bsverrors.InterpDivideByZero, "interpreter: modulo by zero")
		}
		e.push(scriptnum.Encode(a % b))
	case script.OpBoolAnd:
		e.push(boolBytes(a != 0 && b != 0))
	case script.OpBoolOr:
		e.push(boolBytes(a != 0 || b != 0))
	case script.OpNumEqual:
		e.push(boolBytes(a == b))
	case script.OpNumEqualVerify:
		if a != b {
			return bsverrors.NewInterpretError(bsverrors.InterpNumEqualVerifyFailed, "interpreter: OP_NUMEQUALVERIFY failed")
		}
	case script.OpNumNotEqual:
		e.push(boolBytes(a != b))
	case script.OpLessThan:
		e.push(boolBytes(a < b))
	case script.OpGreaterThan:
		e.push(boolBytes(a > b))
	case script.OpLessThanOrEqual:
		e.push(boolBytes(a <= b))
	case script.OpGreaterThanOrEqual:
		e.push(boolBytes(a >= b))
	case script.OpMin:
		if a < b {
			e.push(scriptnum.Encode(a))
		} else {
			e.push(scriptnum.Encode(b))
		}
	case script.OpMax:
		if a > b {
			e.push(scriptnum.Encode(a))
		} else {
			e.push(scriptnum.Encode(b))
		}
	}
	return nil
}

func hashOp(op script.Op, v []byte) []byte {
	switch op {
	case script.OpRipemd160:
		h := hash.Ripemd160(v)
		return h[:]
	case script.OpSha1:
		h := sha1.Sum(v) //nolint:gosec
		return h[:]
	case script.OpSha256:
		h := sha256.Sum256(v)
		return h[:]
	case script.OpHash160:
		return hash160(v)
	default: // OpHash256
		first := sha256.Sum256(v)
		second := sha256.Sum256(first[:])
		return second[:]
	}
}

func dup(v []byte) []byte { return append([]byte{}, v...) }

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func boolBytes(b bool) []byte {
	if b {
		return []byte{1}
	}
	return nil
}

func num2bin(v []byte, size int) ([]byte, error) {
	if size < 0 {
		return nil, bsverrors.NewInterpretError(bsverrors.InterpInvalidOperandSize, "interpreter: OP_NUM2BIN negative size")
	}
	if len(v) > size {
		return nil, bsverrors.NewInterpretError(bsverrors.InterpInvalidOperandSize, "interpreter: OP_NUM2BIN value larger than requested size")
	}
	if len(v) == 0 {
		return make([]byte, size), nil
	}

	signBit := v[len(v)-1] & 0x80
	unsigned := append([]byte{}, v...)
	unsigned[len(unsigned)-1] &^= 0x80

	out := make([]byte, size)
	copy(out, unsigned)
	if signBit != 0 {
		out[size-1] |= 0x80
	}
	return out, nil
}
