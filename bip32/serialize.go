package bip32

import (
	"encoding/binary"

	"github.com/bitcoin-sv/bsvkernel/bkeys"
	"github.com/bitcoin-sv/bsvkernel/bsverrors"
	"github.com/bitcoin-sv/bsvkernel/chaincfg"
	"github.com/bitcoin-sv/bsvkernel/primitives/base58"
)

// serializedLen is the fixed payload length of a BIP-32 extended key before
// the 4-byte Base58Check checksum: 4 (version) + 1 (depth) + 4 (parent
// fingerprint) + 4 (child number) + 32 (chain code) + 33 (key material).
const serializedLen = 78

// String serializes the extended key as Base58Check, using the xprv/xpub
// (mainnet) or tprv/tpub (testnet) version bytes.
func (k *ExtendedKey) String() string {
	buf := make([]byte, 0, serializedLen)

	var version [4]byte
	if k.priv != nil {
		version = k.params.HDPrivateKeyID
	} else {
		version = k.params.HDPublicKeyID
	}
	buf = append(buf, version[:]...)

	buf = append(buf, k.depth)
	buf = append(buf, k.parentFP[:]...)

	var childNo [4]byte
	binary.BigEndian.PutUint32(childNo[:], k.childNumber)
	buf = append(buf, childNo[:]...)

	buf = append(buf, k.chainCode[:]...)

	if k.priv != nil {
		buf = append(buf, 0x00)
		buf = append(buf, k.priv.Bytes()...)
	} else {
		buf = append(buf, k.pub.Compressed()...)
	}

	return base58.CheckEncode(buf)
}

// ParseExtendedKey decodes a Base58Check-encoded xprv/xpub/tprv/tpub string.
func ParseExtendedKey(s string) (*ExtendedKey, error) {
	payload, err := base58.CheckDecode(s)
	if err != nil {
		return nil, err
	}
	if len(payload) != serializedLen {
		return nil, bsverrors.New(bsverrors.KindInvalidLength, "bip32: extended key payload must be %d bytes, got %d", serializedLen, len(payload))
	}

	var version [4]byte
	copy(version[:], payload[0:4])

	params, isPriv, err := resolveVersion(version)
	if err != nil {
		return nil, err
	}

	k := &ExtendedKey{
		depth:  payload[4],
		params: params,
	}
	copy(k.parentFP[:], payload[5:9])
	k.childNumber = binary.BigEndian.Uint32(payload[9:13])
	copy(k.chainCode[:], payload[13:45])

	keyMaterial := payload[45:78]
	if isPriv {
		if keyMaterial[0] != 0x00 {
			return nil, bsverrors.New(bsverrors.KindMalformedEncoding, "bip32: private key material missing leading 0x00 pad")
		}
		priv, err := bkeys.PrivateKeyFromBytes(keyMaterial[1:])
		if err != nil {
			return nil, err
		}
		k.priv = priv
		k.pub = priv.PubKey()
	} else {
		pub, err := bkeys.PublicKeyFromBytes(keyMaterial)
		if err != nil {
			return nil, err
		}
		k.pub = pub
	}

	return k, nil
}

func resolveVersion(version [4]byte) (chaincfg.Params, bool, error) {
	switch version {
	case chaincfg.MainNet.HDPrivateKeyID:
		return chaincfg.MainNet, true, nil
	case chaincfg.MainNet.HDPublicKeyID:
		return chaincfg.MainNet, false, nil
	case chaincfg.TestNet.HDPrivateKeyID:
		return chaincfg.TestNet, true, nil
	case chaincfg.TestNet.HDPublicKeyID:
		return chaincfg.TestNet, false, nil
	default:
		return chaincfg.Params{}, false, bsverrors.New(bsverrors.KindMalformedEncoding, "bip32: unrecognized version bytes % x", version[:])
	}
}
