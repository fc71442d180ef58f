// Package bip32 implements BIP-32 hierarchical-deterministic key derivation:
// master-key generation from a seed, normal and hardened child derivation,
// and xprv/xpub/tprv/tpub Base58Check serialization, with the version
// bytes taken from chaincfg.
package bip32

import (
	"encoding/binary"
	"math/big"
	"strconv"
	"strings"

	"github.com/bitcoin-sv/bsvkernel/bkeys"
	"github.com/bitcoin-sv/bsvkernel/bsverrors"
	"github.com/bitcoin-sv/bsvkernel/chaincfg"
	"github.com/bitcoin-sv/bsvkernel/crypto/ec"
	"github.com/bitcoin-sv/bsvkernel/crypto/hash"
)

func bigFromBytes(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}

// hardenedOffset marks a child index as hardened (BIP-32 §"Child key
// derivation").
const hardenedOffset = 0x80000000

// ExtendedKey is a node in a BIP-32 HD tree: either a private node (with an
// underlying PrivateKey) or a public-only node derived via public
// derivation.
type ExtendedKey struct {
	priv        *bkeys.PrivateKey // nil for public-only nodes
	pub         *bkeys.PublicKey
	chainCode   [32]byte
	depth       byte
	parentFP    [4]byte
	childNumber uint32
	params      chaincfg.Params
}

// NewMaster derives the master extended private key from a seed (16-64
// bytes of entropy, typically a BIP-39 seed), per BIP-32's
// HMAC-SHA512("Bitcoin seed", seed) root derivation.
func NewMaster(seed []byte, params chaincfg.Params) (*ExtendedKey, error) {
	if len(seed) < 16 || len(seed) > 64 {
		return nil, bsverrors.New(bsverrors.KindInvalidLength, "bip32: seed must be 16-64 bytes, got %d", len(seed))
	}

	sum := hash.HmacSha512([]byte("Bitcoin seed"), seed)

	priv, err := bkeys.PrivateKeyFromBytes(sum[:32])
	if err != nil {
		return nil, bsverrors.New(bsverrors.KindInvariantViolation, "bip32: master key derivation produced an invalid scalar", err)
	}

	ek := &ExtendedKey{
		priv:   priv,
		pub:    priv.PubKey(),
		depth:  0,
		params: params,
	}
	copy(ek.chainCode[:], sum[32:])
	return ek, nil
}

// IsPrivate reports whether this node carries a private key.
func (k *ExtendedKey) IsPrivate() bool { return k.priv != nil }

// PrivateKey returns the underlying private key, or nil for a public-only
// node.
func (k *ExtendedKey) PrivateKey() *bkeys.PrivateKey { return k.priv }

// PublicKey returns the node's public key.
func (k *ExtendedKey) PublicKey() *bkeys.PublicKey { return k.pub }

// Neuter strips the private key, returning a public-only extended key with
// the same chain code and derivation metadata.
func (k *ExtendedKey) Neuter() *ExtendedKey {
	return &ExtendedKey{
		pub:         k.pub,
		chainCode:   k.chainCode,
		depth:       k.depth,
		parentFP:    k.parentFP,
		childNumber: k.childNumber,
		params:      k.params,
	}
}

// fingerprint returns the first 4 bytes of hash160(compressed pubkey), used
// as the parent fingerprint in child nodes.
func (k *ExtendedKey) fingerprint() [4]byte {
	h := hash.Hash160(k.pub.Compressed())
	var fp [4]byte
	copy(fp[:], h[:4])
	return fp
}

// Child derives the child at the given index. index >= hardenedOffset
// requests hardened derivation, which requires a private node.
func (k *ExtendedKey) Child(index uint32) (*ExtendedKey, error) {
	hardened := index >= hardenedOffset

	if hardened && k.priv == nil {
		return nil, bsverrors.New(bsverrors.KindInvalidScalar, "bip32: cannot derive a hardened child from a public-only key")
	}

	var data []byte
	if hardened {
		data = append([]byte{0x00}, k.priv.Bytes()...)
	} else {
		data = append([]byte{}, k.pub.Compressed()...)
	}

	var idxBytes [4]byte
	binary.BigEndian.PutUint32(idxBytes[:], index)
	data = append(data, idxBytes[:]...)

	sum := hash.HmacSha512(k.chainCode[:], data)
	il, ir := sum[:32], sum[32:]

	ilInt := bigFromBytes(il)
	if ilInt.Cmp(ec.N()) >= 0 {
		return nil, bsverrors.New(bsverrors.KindInvalidScalar, "bip32: derived offset exceeds the curve order at index %d", index)
	}

	child := &ExtendedKey{
		depth:       k.depth + 1,
		parentFP:    k.fingerprint(),
		childNumber: index,
		params:      k.params,
	}
	copy(child.chainCode[:], ir)

	if k.priv != nil {
		dChild := ec.ScalarAdd(k.priv.D, ilInt)
		if dChild.Sign() == 0 {
			return nil, bsverrors.New(bsverrors.KindInvalidScalar, "bip32: derived child scalar is zero at index %d", index)
		}
		var buf [32]byte
		b := dChild.Bytes()
		copy(buf[32-len(b):], b)
		priv, err := bkeys.PrivateKeyFromBytes(buf[:])
		if err != nil {
			return nil, err
		}
		child.priv = priv
		child.pub = priv.PubKey()
		return child, nil
	}

	childPoint := k.pub.Point.Add(ec.MulToGenerator(ilInt))
	child.pub = &bkeys.PublicKey{Point: childPoint}
	return child, nil
}

// DerivePath walks a slash-separated path such as "m/0'/1/2'" (or "44h",
// "44H" for hardened markers) from this node.
func (k *ExtendedKey) DerivePath(path string) (*ExtendedKey, error) {
	segments := strings.Split(path, "/")
	cur := k
	for i, seg := range segments {
		if i == 0 && (seg == "m" || seg == "M" || seg == "") {
			continue
		}
		hardened := false
		if strings.HasSuffix(seg, "'") || strings.HasSuffix(seg, "h") || strings.HasSuffix(seg, "H") {
			hardened = true
			seg = seg[:len(seg)-1]
		}
		n, err := strconv.ParseUint(seg, 10, 32)
		if err != nil {
			return nil, bsverrors.New(bsverrors.KindMalformedEncoding, "bip32: invalid path segment %q", seg, err)
		}
		idx := uint32(n)
		if hardened {
			idx += hardenedOffset
		}
		cur, err = cur.Child(idx)
		if err != nil {
			return nil, err
		}
	}
	return cur, nil
}
