// Package chainhash provides the fixed 32-byte chain identifier type shared
// by transactions and blocks, layered on github.com/btcsuite/btcd/chaincfg/chainhash
// for the underlying array type and its byte-reversed hex display
// convention, with constructors returning this module's bsverrors taxonomy
// instead of plain errors.
package chainhash

import (
	bthash "github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/bitcoin-sv/bsvkernel/bsverrors"
)

// Size is the number of bytes in a chain hash.
const Size = bthash.HashSize

// Hash is a 32-byte identifier stored in internal (wire) byte order.
type Hash bthash.Hash

func (h Hash) lib() bthash.Hash { return bthash.Hash(h) }

// Bytes returns a copy of the hash's wire-order bytes.
func (h Hash) Bytes() []byte {
	lib := h.lib()
	return lib.CloneBytes()
}

// String renders the hash in Bitcoin's byte-reversed display convention,
// used for txids and block hashes.
func (h Hash) String() string {
	lib := h.lib()
	return lib.String()
}

// IsZero reports whether every byte of the hash is zero.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// NewFromBytes builds a Hash from wire-order bytes.
func NewFromBytes(b []byte) (Hash, error) {
	var lib bthash.Hash
	if err := lib.SetBytes(b); err != nil {
		return Hash{}, bsverrors.New(bsverrors.KindInvalidLength, "chainhash: expected %d bytes, got %d", Size, len(b))
	}
	return Hash(lib), nil
}

// NewFromDisplayHex parses the byte-reversed display-hex form (as printed
// by String) back into a Hash.
func NewFromDisplayHex(s string) (Hash, error) {
	lib, err := bthash.NewHashFromStr(s)
	if err != nil {
		return Hash{}, bsverrors.New(bsverrors.KindMalformedEncoding, "chainhash: invalid hex", err)
	}
	return Hash(*lib), nil
}
