// Package scriptnum implements the script stack-machine's little-endian
// signed integer encoding, including its negative-zero consensus quirk.
package scriptnum

import "github.com/bitcoin-sv/bsvkernel/bsverrors"

// Encode returns the minimal little-endian signed encoding of n. Zero
// encodes to the empty byte string.
func Encode(n int64) []byte {
	if n == 0 {
		return nil
	}

	neg := n < 0
	abs := n
	if neg {
		abs = -n
	}

	var result []byte
	for abs > 0 {
		result = append(result, byte(abs&0xff))
		abs >>= 8
	}

	// If the most significant byte has its high bit set, push an extra
	// byte to hold the sign bit.
	if result[len(result)-1]&0x80 != 0 {
		if neg {
			result = append(result, 0x80)
		} else {
			result = append(result, 0x00)
		}
	} else if neg {
		result[len(result)-1] |= 0x80
	}

	return result
}

// Decode interprets b as a ScriptNum, bounded to maxLen bytes (the
// interpreter's max_script_num_len resource cap). Negative zero (0x80)
// decodes to 0, a deliberate consensus quirk.
func Decode(b []byte, maxLen int) (int64, error) {
	if len(b) > maxLen {
		return 0, bsverrors.New(bsverrors.KindInvalidLength, "scriptnum: encoding exceeds max length %d", maxLen)
	}
	if len(b) == 0 {
		return 0, nil
	}

	neg := b[len(b)-1]&0x80 != 0

	mag := append([]byte{}, b...)
	mag[len(mag)-1] &^= 0x80

	// Non-minimal encodings carry trailing zero bytes; they don't change
	// the magnitude.
	end := len(mag)
	for end > 0 && mag[end-1] == 0 {
		end--
	}
	if end > 8 || (end == 8 && mag[7]&0x80 != 0) {
		return 0, bsverrors.New(bsverrors.KindMalformedEncoding, "scriptnum: value exceeds the 64-bit range")
	}

	var result int64
	for i := 0; i < end; i++ {
		result |= int64(mag[i]) << uint(8*i)
	}
	if neg {
		return -result, nil
	}
	return result, nil
}
