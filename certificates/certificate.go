// Package certificates implements BRC-31 identity certificates: the binary
// wire format, certifier signing/verification over a ProtoWallet, per-field
// AES-256-GCM encryption, and the master/verifier keyring exchange used for
// selective field disclosure. Certificate framing composes
// wallet.ProtoWallet's derivation conventions (BRC-42/43) and
// primitives/varint's length prefixes rather than introducing a new codec.
package certificates

import (
	"bytes"
	"encoding/hex"
	"sort"

	"github.com/bitcoin-sv/bsvkernel/bkeys"
	"github.com/bitcoin-sv/bsvkernel/bsverrors"
	"github.com/bitcoin-sv/bsvkernel/chainhash"
	"github.com/bitcoin-sv/bsvkernel/crypto/ecdsa"
	"github.com/bitcoin-sv/bsvkernel/crypto/hash"
	"github.com/bitcoin-sv/bsvkernel/primitives/varint"
	"github.com/bitcoin-sv/bsvkernel/wallet"
)

const (
	certSignatureProtocol   = "certificate signature"
	fieldEncryptionProtocol = "certificate field encryption"
	typeOrSerialSize        = 32
	compressedPubKeySize    = 33
)

// RevocationOutpoint identifies the on-chain output whose spend revokes a
// certificate.
type RevocationOutpoint struct {
	TXID  chainhash.Hash
	Index uint32
}

// Certificate is a BRC-31 identity certificate. Fields are
// plaintext name→value pairs; see MasterCertificate for the
// encrypted-field variant a certifier issues to a subject.
type Certificate struct {
	Type               [32]byte
	Serial             [32]byte
	Subject            *bkeys.PublicKey
	Certifier          *bkeys.PublicKey
	RevocationOutpoint RevocationOutpoint
	Fields             map[string]string
	Signature          []byte // nil iff unsigned
}

// sortedFieldNames returns c.Fields' keys in ascending byte order, giving
// certificate serialization a deterministic field order.
func (c *Certificate) sortedFieldNames() []string {
	names := make([]string, 0, len(c.Fields))
	for name := range c.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// bodyBytes serializes everything but the trailing signature segment: the
// portion that is itself signed.
func (c *Certificate) bodyBytes() []byte {
	var buf bytes.Buffer
	buf.Write(c.Type[:])
	buf.Write(c.Serial[:])
	buf.Write(c.Subject.Compressed())
	buf.Write(c.Certifier.Compressed())
	buf.Write(c.RevocationOutpoint.TXID.Bytes())
	buf.Write(le32(c.RevocationOutpoint.Index))

	names := c.sortedFieldNames()
	buf.Write(varint.Encode(uint64(len(names))))
	for _, name := range names {
		value := c.Fields[name]
		buf.Write(varint.Encode(uint64(len(name))))
		buf.WriteString(name)
		buf.Write(varint.Encode(uint64(len(value))))
		buf.WriteString(value)
	}
	return buf.Bytes()
}

// Bytes serializes the certificate as its body, followed by
// varint(sig_len) ∥ signature iff signed.
func (c *Certificate) Bytes() []byte {
	out := c.bodyBytes()
	if c.Signature != nil {
		out = append(out, varint.Encode(uint64(len(c.Signature)))...)
		out = append(out, c.Signature...)
	}
	return out
}

// FromBytes parses a certificate, signed or unsigned, from its binary wire
// form.
func FromBytes(buf []byte) (*Certificate, error) {
	if len(buf) < 2*typeOrSerialSize+2*compressedPubKeySize+36 {
		return nil, bsverrors.New(bsverrors.KindInvalidLength, "certificates: truncated before field count")
	}

	c := &Certificate{Fields: map[string]string{}}
	i := 0
	copy(c.Type[:], buf[i:i+32])
	i += 32
	copy(c.Serial[:], buf[i:i+32])
	i += 32

	subject, err := bkeys.PublicKeyFromBytes(buf[i : i+compressedPubKeySize])
	if err != nil {
		return nil, err
	}
	c.Subject = subject
	i += compressedPubKeySize

	certifier, err := bkeys.PublicKeyFromBytes(buf[i : i+compressedPubKeySize])
	if err != nil {
		return nil, err
	}
	c.Certifier = certifier
	i += compressedPubKeySize

	txid, err := chainhash.NewFromBytes(buf[i : i+32])
	if err != nil {
		return nil, err
	}
	i += 32
	c.RevocationOutpoint = RevocationOutpoint{TXID: txid, Index: readLE32(buf[i : i+4])}
	i += 4

	fieldCount, n, err := varint.Decode(buf[i:], 0)
	if err != nil {
		return nil, err
	}
	i += n

	for f := uint64(0); f < fieldCount; f++ {
		nameLen, n, err := varint.Decode(buf[i:], 0)
		if err != nil {
			return nil, err
		}
		i += n
		if uint64(len(buf)-i) < nameLen {
			return nil, bsverrors.New(bsverrors.KindInvalidLength, "certificates: field name truncated")
		}
		name := string(buf[i : i+int(nameLen)])
		i += int(nameLen)

		valLen, n, err := varint.Decode(buf[i:], 0)
		if err != nil {
			return nil, err
		}
		i += n
		if uint64(len(buf)-i) < valLen {
			return nil, bsverrors.New(bsverrors.KindInvalidLength, "certificates: field value truncated")
		}
		c.Fields[name] = string(buf[i : i+int(valLen)])
		i += int(valLen)
	}

	if i == len(buf) {
		return c, nil
	}

	sigLen, n, err := varint.Decode(buf[i:], 0)
	if err != nil {
		return nil, err
	}
	i += n
	if uint64(len(buf)-i) != sigLen {
		return nil, bsverrors.New(bsverrors.KindInvalidLength, "certificates: %d trailing bytes after signature", len(buf)-i-int(sigLen))
	}
	c.Signature = append([]byte(nil), buf[i:]...)
	return c, nil
}

// signingArgs builds the EncryptionArgs scoping certificate
// signatures: security_level=2, protocol="certificate signature",
// key_id="{cert_type} {serial}", counterparty=anyone.
func (c *Certificate) signingArgs() wallet.EncryptionArgs {
	return wallet.EncryptionArgs{
		Protocol:     certSignatureProtocol,
		KeyID:        hex.EncodeToString(c.Type[:]) + " " + hex.EncodeToString(c.Serial[:]),
		Counterparty: wallet.Anyone(),
	}
}

// Sign signs the certificate's unsigned body using certifierWallet (rooted
// at the certifier's private key), populating c.Signature.
func (c *Certificate) Sign(certifierWallet *wallet.ProtoWallet) error {
	digest := hash.Sha256(c.bodyBytes())
	sig, err := certifierWallet.CreateSignature(wallet.SecurityLevelCounterparty, c.signingArgs(), digest)
	if err != nil {
		return err
	}
	c.Signature = sig.DER()
	return nil
}

// Verify checks c.Signature against the certifier's public key, using a
// ProtoWallet rooted at the well-known anyone key.
func (c *Certificate) Verify() (bool, error) {
	if c.Signature == nil {
		return false, bsverrors.New(bsverrors.KindInvalidSignature, "certificates: certificate is unsigned")
	}
	sig, err := ecdsa.ParseDER(c.Signature)
	if err != nil {
		return false, err
	}

	digest := hash.Sha256(c.bodyBytes())
	args := c.signingArgs()
	args.Counterparty = wallet.Other(c.Certifier)

	w := wallet.New(bkeys.AnyonePrivateKey())
	return w.VerifySignature(wallet.SecurityLevelCounterparty, args, digest, sig)
}

// hexSerial renders a certificate serial as lowercase hex, used in the
// "{serial} {field}" verifier-keyring key_id.
func hexSerial(serial [32]byte) string {
	return hex.EncodeToString(serial[:])
}

func le32(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

func readLE32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
