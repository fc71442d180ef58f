package script

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/bitcoin-sv/bsvkernel/bsverrors"
)

// Chunk is a single script element: either an opcode or a data push.
type Chunk struct {
	IsData bool
	Opcode Op
	Data   []byte
}

// OpChunk builds a non-data chunk for the given opcode.
func OpChunk(op Op) Chunk { return Chunk{Opcode: op} }

// DataChunk builds a data-push chunk.
func DataChunk(data []byte) Chunk { return Chunk{IsData: true, Data: data} }

// Script is an ordered sequence of chunks.
type Script []Chunk

// Bytes serializes the script to its binary wire form, choosing the minimal
// pushdata encoding for every data chunk.
func (s Script) Bytes() []byte {
	var out []byte
	for _, c := range s {
		if c.IsData {
			out = append(out, encodePush(c.Data)...)
		} else {
			out = append(out, byte(c.Opcode))
		}
	}
	return out
}

// encodePush returns the minimal pushdata encoding of data.
func encodePush(data []byte) []byte {
	n := len(data)
	switch {
	case n == 0:
		return []byte{0x00}
	case n <= 0x4b:
		return append([]byte{byte(n)}, data...)
	case n <= 0xff:
		return append([]byte{byte(OpPushData1), byte(n)}, data...)
	case n <= 0xffff:
		out := []byte{byte(OpPushData2), byte(n), byte(n >> 8)}
		return append(out, data...)
	default:
		out := []byte{
			byte(OpPushData4),
			byte(n), byte(n >> 8), byte(n >> 16), byte(n >> 24),
		}
		return append(out, data...)
	}
}

// Parse decodes a binary script into its chunk sequence. Truncated pushdata
// length prefixes or bodies yield DataTooSmall (InvalidLength).
func Parse(b []byte) (Script, error) {
	var out Script
	i := 0
	for i < len(b) {
		op := b[i]
		i++

		switch {
		case op == 0x00:
			out = append(out, DataChunk(nil))

		case op >= 0x01 && op <= 0x4b:
			n := int(op)
			if i+n > len(b) {
				return nil, bsverrors.New(bsverrors.KindInvalidLength, "script: direct push of %d bytes truncated", n)
			}
			out = append(out, DataChunk(b[i:i+n]))
			i += n

		case op == byte(OpPushData1):
			if i+1 > len(b) {
				return nil, bsverrors.New(bsverrors.KindInvalidLength, "script: OP_PUSHDATA1 length byte truncated")
			}
			n := int(b[i])
			i++
			if i+n > len(b) {
				return nil, bsverrors.New(bsverrors.KindInvalidLength, "script: OP_PUSHDATA1 body truncated")
			}
			out = append(out, DataChunk(b[i:i+n]))
			i += n

		case op == byte(OpPushData2):
			if i+2 > len(b) {
				return nil, bsverrors.New(bsverrors.KindInvalidLength, "script: OP_PUSHDATA2 length truncated")
			}
			n := int(b[i]) | int(b[i+1])<<8
			i += 2
			if i+n > len(b) {
				return nil, bsverrors.New(bsverrors.KindInvalidLength, "script: OP_PUSHDATA2 body truncated")
			}
			out = append(out, DataChunk(b[i:i+n]))
			i += n

		case op == byte(OpPushData4):
			if i+4 > len(b) {
				return nil, bsverrors.New(bsverrors.KindInvalidLength, "script: OP_PUSHDATA4 length truncated")
			}
			n := int(b[i]) | int(b[i+1])<<8 | int(b[i+2])<<16 | int(b[i+3])<<24
			i += 4
			if i+n > len(b) || n < 0 {
				return nil, bsverrors.New(bsverrors.KindInvalidLength, "script: OP_PUSHDATA4 body truncated")
			}
			out = append(out, DataChunk(b[i:i+n]))
			i += n

		default:
			out = append(out, OpChunk(Op(op)))
		}
	}
	return out, nil
}

// unknownOpName renders the OP_UNKNOWN{n} form for an unnamed opcode byte.
func unknownOpName(b byte) string {
	return fmt.Sprintf("OP_UNKNOWN%d", b)
}

// ASM renders the script as a space-separated ASM string: data pushes as
// lowercase hex (empty push as "OP_0"), opcodes by their canonical name.
func (s Script) ASM() string {
	parts := make([]string, 0, len(s))
	for _, c := range s {
		if c.IsData {
			if len(c.Data) == 0 {
				parts = append(parts, "OP_0")
			} else {
				parts = append(parts, hex.EncodeToString(c.Data))
			}
			continue
		}
		parts = append(parts, c.Opcode.Name())
	}
	return strings.Join(parts, " ")
}

// ParseASM parses an ASM string into a Script. Hex tokens become data
// pushes; OP_* tokens resolve by name, with OP_TRUE/OP_FALSE/CLTV/CSV
// aliases accepted.
func ParseASM(asm string) (Script, error) {
	asm = strings.TrimSpace(asm)
	if asm == "" {
		return Script{}, nil
	}

	var out Script
	for _, tok := range strings.Fields(asm) {
		if op, ok := asmAliases[tok]; ok {
			out = append(out, OpChunk(op))
			continue
		}
		if strings.HasPrefix(tok, "OP_UNKNOWN") {
			n, err := strconv.Atoi(strings.TrimPrefix(tok, "OP_UNKNOWN"))
			if err != nil || n < 0 || n > 255 {
				return nil, bsverrors.New(bsverrors.KindMalformedEncoding, "script: invalid %s token", tok)
			}
			out = append(out, OpChunk(Op(n)))
			continue
		}
		if tok == "OP_0" {
			out = append(out, DataChunk(nil))
			continue
		}
		if strings.HasPrefix(tok, "OP_") {
			op, ok := nameToOp(tok)
			if !ok {
				return nil, bsverrors.New(bsverrors.KindMalformedEncoding, "script: unknown opcode name %q", tok)
			}
			out = append(out, OpChunk(op))
			continue
		}
		data, err := hex.DecodeString(tok)
		if err != nil {
			return nil, bsverrors.New(bsverrors.KindMalformedEncoding, "script: invalid hex token %q", tok, err)
		}
		out = append(out, DataChunk(data))
	}
	return out, nil
}

var nameToOpTable map[string]Op

func nameToOp(name string) (Op, bool) {
	if nameToOpTable == nil {
		nameToOpTable = make(map[string]Op, len(opcodeNames))
		for op, n := range opcodeNames {
			nameToOpTable[n] = op
		}
	}
	op, ok := nameToOpTable[name]
	return op, ok
}
