// Package chaincfg defines the network parameters this library needs:
// address/WIF version bytes, BIP-32 extended-key version bytes, and the
// height at which Genesis activates (gating the script interpreter's
// resource caps). Trimmed to drop the P2P/DNS-seed/checkpoint/
// consensus-deployment fields that belong to full-node chain-sync
// operation (out of scope here).
package chaincfg

// Params defines the subset of network parameters the core library
// actually consumes.
type Params struct {
	Name string

	// LegacyPubKeyHashAddrID / LegacyScriptHashAddrID are the version
	// bytes for P2PKH / P2SH Base58Check addresses.
	LegacyPubKeyHashAddrID byte
	LegacyScriptHashAddrID byte

	// PrivateKeyID is the WIF version byte.
	PrivateKeyID byte

	// HDPrivateKeyID / HDPublicKeyID are the BIP-32 extended-key version
	// bytes.
	HDPrivateKeyID [4]byte
	HDPublicKeyID  [4]byte

	// UahfForkHeight is the height at which the FORKID sighash flag
	// becomes mandatory.
	UahfForkHeight uint32

	// GenesisActivationHeight gates which resource-cap profile the script
	// interpreter uses.
	GenesisActivationHeight uint32
}

// MainNet is the Bitcoin SV production network.
var MainNet = Params{
	Name:                    "mainnet",
	LegacyPubKeyHashAddrID:  0x00,
	LegacyScriptHashAddrID:  0x05,
	PrivateKeyID:            0x80,
	HDPrivateKeyID:          [4]byte{0x04, 0x88, 0xad, 0xe4},
	HDPublicKeyID:           [4]byte{0x04, 0x88, 0xb2, 0x1e},
	UahfForkHeight:          478558,
	GenesisActivationHeight: 620538,
}

// TestNet is the Bitcoin SV public test network.
var TestNet = Params{
	Name:                    "testnet",
	LegacyPubKeyHashAddrID:  0x6f,
	LegacyScriptHashAddrID:  0xc4,
	PrivateKeyID:            0xef,
	HDPrivateKeyID:          [4]byte{0x04, 0x35, 0x83, 0x94},
	HDPublicKeyID:           [4]byte{0x04, 0x35, 0x87, 0xcf},
	UahfForkHeight:          1155875,
	GenesisActivationHeight: 1344302,
}
