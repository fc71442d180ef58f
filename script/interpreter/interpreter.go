// Package interpreter implements the Bitcoin script stack machine: a data
// stack, alt stack, conditional stack, resource caps, and opcode dispatch
// over a Script, with a pluggable signature-checking hook and per-genesis
// resource-cap profiles.
package interpreter

import (
	"github.com/bitcoin-sv/bsvkernel/bsverrors"
	"github.com/bitcoin-sv/bsvkernel/crypto/hash"
	"github.com/bitcoin-sv/bsvkernel/primitives/scriptnum"
	"github.com/bitcoin-sv/bsvkernel/script"
)

// Limits is a resource-cap profile.
type Limits struct {
	MaxOps           int64
	MaxScriptNumLen  int
	MaxElementSize   int64
	MaxStackSize     int64
}

// PreGenesisLimits is the conservative cap profile for pre-genesis UTXOs.
var PreGenesisLimits = Limits{
	MaxOps:          500,
	MaxScriptNumLen: 4,
	MaxElementSize:  520,
	MaxStackSize:    1000,
}

// PostGenesisLimits is the expanded cap profile for post-genesis UTXOs.
// Callers accepting hostile scripts SHOULD tighten these.
var PostGenesisLimits = Limits{
	MaxOps:          500_000_000,
	MaxScriptNumLen: 750_000,
	MaxElementSize:  4_000_000_000,
	MaxStackSize:    4_000_000_000,
}

// LimitsFor selects the resource-cap profile for a UTXO.
func LimitsFor(utxoAfterGenesis bool) Limits {
	if utxoAfterGenesis {
		return PostGenesisLimits
	}
	return PreGenesisLimits
}

// SighashFn checks a signature over sigBody's pubkey and sighash type. It is
// called only when a signature check is needed.
type SighashFn func(sigBody, pubKeyBytes []byte, sighashType byte) (bool, error)

// Engine is a single script evaluation over an unlocking+locking script
// pair.
type Engine struct {
	limits    Limits
	sighashFn SighashFn

	stack    [][]byte
	altStack [][]byte

	// condStack holds, per open IF/NOTIF frame, whether that frame is
	// currently executing.
	condStack []bool

	opCount int64

	// codeSeparatorIdx is the chunk index of the most recent
	// OP_CODESEPARATOR within the script currently executing.
	codeSeparatorIdx int
}

// NewEngine builds an Engine with the given resource caps and signature
// hook. sighashFn may be nil; OP_CHECKSIG* then fails with NoSighashFn.
func NewEngine(limits Limits, sighashFn SighashFn) *Engine {
	return &Engine{limits: limits, sighashFn: sighashFn}
}

// Execute evaluates unlocking then locking, sharing the data stack across
// both, and reports whether the result is Ok (stack non-empty, top item
// truthy).
func (e *Engine) Execute(unlocking, locking script.Script) error {
	if err := e.runScript(unlocking); err != nil {
		return err
	}
	if len(e.condStack) != 0 {
		return bsverrors.NewInterpretError(bsverrors.InterpUnbalancedConditional, "interpreter: unlocking script left an open conditional frame")
	}

	e.altStack = nil
	e.opCount = 0
	e.codeSeparatorIdx = 0

	if err := e.runScript(locking); err != nil {
		return err
	}
	if len(e.condStack) != 0 {
		return bsverrors.NewInterpretError(bsverrors.InterpUnbalancedConditional, "interpreter: locking script left an open conditional frame")
	}

	if len(e.stack) == 0 {
		return bsverrors.NewInterpretError(bsverrors.InterpEmptyStack, "interpreter: empty stack after execution")
	}
	if !isTruthy(e.top()) {
		return bsverrors.NewInterpretError(bsverrors.InterpEvalFalse, "interpreter: top stack element is false")
	}
	return nil
}

// executing reports whether the conditional stack permits execution of the
// current chunk.
func (e *Engine) executing() bool {
	for _, frame := range e.condStack {
		if !frame {
			return false
		}
	}
	return true
}

func (e *Engine) runScript(s script.Script) error {
	for idx, chunk := range s {
		if chunk.IsData {
			if !e.executing() {
				continue
			}
			if int64(len(chunk.Data)) > e.limits.MaxElementSize {
				return bsverrors.NewInterpretError(bsverrors.InterpElementSizeExceeded, "interpreter: data push exceeds max element size")
			}
			e.push(chunk.Data)
			continue
		}

		op := chunk.Opcode

		// Conditional-flow opcodes are processed even when not
		// executing, to keep the conditional stack balanced.
		switch op {
		case script.OpIf, script.OpNotIf:
			if err := e.countOp(); err != nil {
				return err
			}
			if !e.executing() {
				e.condStack = append(e.condStack, false)
				continue
			}
			top, err := e.pop()
			if err != nil {
				return err
			}
			truth := isTruthy(top)
			if op == script.OpNotIf {
				truth = !truth
			}
			e.condStack = append(e.condStack, truth)
			continue

		case script.OpElse:
			if len(e.condStack) == 0 {
				return bsverrors.NewInterpretError(bsverrors.InterpUnbalancedConditional, "interpreter: OP_ELSE with no open conditional")
			}
			e.condStack[len(e.condStack)-1] = !e.condStack[len(e.condStack)-1]
			continue

		case script.OpEndIf:
			if len(e.condStack) == 0 {
				return bsverrors.NewInterpretError(bsverrors.InterpUnbalancedConditional, "interpreter: OP_ENDIF with no open conditional")
			}
			e.condStack = e.condStack[:len(e.condStack)-1]
			continue
		}

		if !e.executing() {
			continue
		}

		if err := e.countOp(); err != nil {
			return err
		}

		if op == script.OpCodeSeparator {
			e.codeSeparatorIdx = idx + 1
			continue
		}

		if err := e.dispatch(op); err != nil {
			return err
		}

		if int64(len(e.stack)) > e.limits.MaxStackSize {
			return bsverrors.NewInterpretError(bsverrors.InterpStackSizeExceeded, "interpreter: stack size exceeded")
		}
	}
	return nil
}

func (e *Engine) countOp() error {
	e.opCount++
	if e.opCount > e.limits.MaxOps {
		return bsverrors.NewInterpretError(bsverrors.InterpTooManyOps, "interpreter: op count exceeded")
	}
	return nil
}

func (e *Engine) push(v []byte) { e.stack = append(e.stack, v) }

func (e *Engine) top() []byte {
	return e.stack[len(e.stack)-1]
}

func (e *Engine) pop() ([]byte, error) {
	if len(e.stack) == 0 {
		return nil, bsverrors.NewInterpretError(bsverrors.InterpStackUnderflow, "interpreter: stack underflow")
	}
	v := e.stack[len(e.stack)-1]
	e.stack = e.stack[:len(e.stack)-1]
	return v, nil
}

func (e *Engine) need(n int) error {
	if len(e.stack) < n {
		return bsverrors.NewInterpretError(bsverrors.InterpStackUnderflow, "interpreter: need %d stack items, have %d", n, len(e.stack))
	}
	return nil
}

func (e *Engine) popNum() (int64, error) {
	v, err := e.pop()
	if err != nil {
		return 0, err
	}
	n, err := scriptnum.Decode(v, e.limits.MaxScriptNumLen)
	if err != nil {
		return 0, bsverrors.NewInterpretError(bsverrors.InterpInvalidOperandSize, "interpreter: invalid scriptnum operand", err)
	}
	return n, nil
}

// isTruthy implements script truthiness: non-empty and not a signed zero
// (all-zero bytes, optionally with 0x80 in the final byte).
func isTruthy(v []byte) bool {
	if len(v) == 0 {
		return false
	}
	for i, b := range v {
		if b != 0 {
			if i == len(v)-1 && b == 0x80 {
				return false
			}
			return true
		}
	}
	return false
}

func hash160(b []byte) []byte {
	h := hash.Hash160(b)
	return h[:]
}
