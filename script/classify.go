package script

// IsP2PKH reports whether s matches
// OP_DUP OP_HASH160 <20 bytes> OP_EQUALVERIFY OP_CHECKSIG.
func (s Script) IsP2PKH() bool {
	if len(s) != 5 {
		return false
	}
	return !s[0].IsData && s[0].Opcode == OpDup &&
		!s[1].IsData && s[1].Opcode == OpHash160 &&
		s[2].IsData && len(s[2].Data) == 20 &&
		!s[3].IsData && s[3].Opcode == OpEqualVerify &&
		!s[4].IsData && s[4].Opcode == OpCheckSig
}

// IsP2SH reports whether s matches OP_HASH160 <20 bytes> OP_EQUAL.
func (s Script) IsP2SH() bool {
	if len(s) != 3 {
		return false
	}
	return !s[0].IsData && s[0].Opcode == OpHash160 &&
		s[1].IsData && len(s[1].Data) == 20 &&
		!s[2].IsData && s[2].Opcode == OpEqual
}

// IsOpReturn reports whether s begins with OP_RETURN, OP_FALSE OP_RETURN,
// or a leading empty data push followed by OP_RETURN.
func (s Script) IsOpReturn() bool {
	if len(s) == 0 {
		return false
	}
	if !s[0].IsData && s[0].Opcode == OpReturn {
		return true
	}
	if len(s) >= 2 {
		leadingEmpty := (s[0].IsData && len(s[0].Data) == 0) || (!s[0].IsData && s[0].Opcode == OpFalse)
		if leadingEmpty && !s[1].IsData && s[1].Opcode == OpReturn {
			return true
		}
	}
	return false
}
