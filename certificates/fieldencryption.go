package certificates

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/bitcoin-sv/bsvkernel/bkeys"
	"github.com/bitcoin-sv/bsvkernel/bsverrors"
	"github.com/bitcoin-sv/bsvkernel/crypto/aesgcm"
	"github.com/bitcoin-sv/bsvkernel/wallet"
)

// MasterCertificate is a certificate whose fields have been encrypted for
// a specific subject: Fields holds base64(ciphertext) per field name, and
// Keyring holds base64(encrypted symmetric key) per field name, the key
// the subject can decrypt with their own wallet.
type MasterCertificate struct {
	Certificate *Certificate
	Keyring     map[string]string
}

// fieldEncryptionArgs scopes per-field symmetric key encryption/decryption
// to (security_level=2, protocol="certificate field encryption",
// key_id=field_name), counterparty as given by the caller.
func fieldEncryptionArgs(fieldName string, counterparty wallet.Counterparty) wallet.EncryptionArgs {
	return wallet.EncryptionArgs{
		Protocol:     fieldEncryptionProtocol,
		KeyID:        fieldName,
		Counterparty: counterparty,
	}
}

// CreateMasterCertificate builds a MasterCertificate from plaintext
// fields: for each field, the certifier generates a fresh AES-256-GCM key,
// encrypts the value, and encrypts that key for subjectPub using
// certifierWallet. The resulting Certificate carries the ciphertext field
// values (base64-encoded); Keyring carries the encrypted field keys.
func CreateMasterCertificate(certType, serial [32]byte, subjectPub, certifierPub *bkeys.PublicKey, revocation RevocationOutpoint, plaintextFields map[string]string, certifierWallet *wallet.ProtoWallet) (*MasterCertificate, error) {
	encryptedFields := make(map[string]string, len(plaintextFields))
	keyring := make(map[string]string, len(plaintextFields))

	for name, value := range plaintextFields {
		fieldKey := make([]byte, aesgcm.KeySize)
		if _, err := rand.Read(fieldKey); err != nil {
			return nil, bsverrors.New(bsverrors.KindInvalidScalar, "certificates: field key generation failed", err)
		}

		blobB64, err := encryptFieldBlob(value, fieldKey)
		if err != nil {
			return nil, err
		}
		encryptedFields[name] = blobB64

		encryptedKey, err := certifierWallet.Encrypt(wallet.SecurityLevelCounterparty, fieldEncryptionArgs(name, wallet.Other(subjectPub)), fieldKey, nil)
		if err != nil {
			return nil, err
		}
		keyring[name] = base64.StdEncoding.EncodeToString(encryptedKey)
	}

	cert := &Certificate{
		Type:               certType,
		Serial:             serial,
		Subject:            subjectPub,
		Certifier:          certifierPub,
		RevocationOutpoint: revocation,
		Fields:             encryptedFields,
	}
	if err := cert.Sign(certifierWallet); err != nil {
		return nil, err
	}

	return &MasterCertificate{Certificate: cert, Keyring: keyring}, nil
}

// DecryptField decrypts one field, given the subject's wallet (rooted at
// the subject's private key) and the certifier's public key as
// counterparty.
func (mc *MasterCertificate) DecryptField(fieldName string, subjectWallet *wallet.ProtoWallet) (string, error) {
	encryptedKeyB64, ok := mc.Keyring[fieldName]
	if !ok {
		return "", bsverrors.New(bsverrors.KindInvariantViolation, "certificates: no keyring entry for field %q", fieldName)
	}
	encryptedKey, err := base64.StdEncoding.DecodeString(encryptedKeyB64)
	if err != nil {
		return "", bsverrors.New(bsverrors.KindMalformedEncoding, "certificates: keyring entry is not valid base64", err)
	}
	fieldKey, err := subjectWallet.Decrypt(wallet.SecurityLevelCounterparty, fieldEncryptionArgs(fieldName, wallet.Other(mc.Certificate.Certifier)), encryptedKey, nil)
	if err != nil {
		return "", err
	}

	blobB64, ok := mc.Certificate.Fields[fieldName]
	if !ok {
		return "", bsverrors.New(bsverrors.KindInvariantViolation, "certificates: no such field %q", fieldName)
	}
	return decryptFieldBlob(blobB64, fieldKey)
}

// encryptFieldBlob AES-256-GCM-encrypts value under fieldKey with a fresh
// 12-byte IV, returning base64(iv ∥ ciphertext ∥ tag).
func encryptFieldBlob(value string, fieldKey []byte) (string, error) {
	iv := make([]byte, 12)
	if _, err := rand.Read(iv); err != nil {
		return "", bsverrors.New(bsverrors.KindInvalidScalar, "certificates: field iv generation failed", err)
	}
	ciphertext, tag, err := aesgcm.Encrypt(fieldKey, iv, nil, []byte(value))
	if err != nil {
		return "", err
	}
	blob := make([]byte, 0, len(iv)+len(ciphertext)+len(tag))
	blob = append(blob, iv...)
	blob = append(blob, ciphertext...)
	blob = append(blob, tag...)
	return base64.StdEncoding.EncodeToString(blob), nil
}

// decryptFieldBlob decrypts a base64(iv ∥ ciphertext ∥ tag) field value
// under fieldKey.
func decryptFieldBlob(blobB64 string, fieldKey []byte) (string, error) {
	blob, err := base64.StdEncoding.DecodeString(blobB64)
	if err != nil {
		return "", bsverrors.New(bsverrors.KindMalformedEncoding, "certificates: field value is not valid base64", err)
	}
	if len(blob) < 12+aesgcm.TagSize {
		return "", bsverrors.New(bsverrors.KindInvalidLength, "certificates: encrypted field blob too short")
	}
	iv := blob[:12]
	ciphertext := blob[12 : len(blob)-aesgcm.TagSize]
	tag := blob[len(blob)-aesgcm.TagSize:]

	plaintext, err := aesgcm.Decrypt(fieldKey, iv, nil, ciphertext, tag)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// VerifierKeyring is what a subject ships alongside a MasterCertificate's
// Certificate to disclose specific fields to a particular verifier: each
// field's symmetric key, re-encrypted for the verifier under
// key_id="{serial} {field}".
type VerifierKeyring map[string]string

// RevealFieldsToVerifier builds a VerifierKeyring for fieldNames: the
// subject decrypts each field's key from mc.Keyring and re-encrypts it for
// verifierPub.
func (mc *MasterCertificate) RevealFieldsToVerifier(fieldNames []string, verifierPub *bkeys.PublicKey, subjectWallet *wallet.ProtoWallet) (VerifierKeyring, error) {
	out := make(VerifierKeyring, len(fieldNames))
	serialHex := hexSerial(mc.Certificate.Serial)

	for _, name := range fieldNames {
		encryptedKeyB64, ok := mc.Keyring[name]
		if !ok {
			return nil, bsverrors.New(bsverrors.KindInvariantViolation, "certificates: no keyring entry for field %q", name)
		}
		encryptedKey, err := base64.StdEncoding.DecodeString(encryptedKeyB64)
		if err != nil {
			return nil, bsverrors.New(bsverrors.KindMalformedEncoding, "certificates: keyring entry is not valid base64", err)
		}
		fieldKey, err := subjectWallet.Decrypt(wallet.SecurityLevelCounterparty, fieldEncryptionArgs(name, wallet.Other(mc.Certificate.Certifier)), encryptedKey, nil)
		if err != nil {
			return nil, err
		}

		verifierArgs := wallet.EncryptionArgs{
			Protocol:     fieldEncryptionProtocol,
			KeyID:        serialHex + " " + name,
			Counterparty: wallet.Other(verifierPub),
		}
		reencrypted, err := subjectWallet.Encrypt(wallet.SecurityLevelCounterparty, verifierArgs, fieldKey, nil)
		if err != nil {
			return nil, err
		}
		out[name] = base64.StdEncoding.EncodeToString(reencrypted)
	}

	return out, nil
}

// DecryptFields reverses RevealFieldsToVerifier: verifierWallet (rooted at
// the verifier's private key) decrypts each field's re-encrypted key, then
// decrypts the field value from cert.
func (keyring VerifierKeyring) DecryptFields(cert *Certificate, subjectPub *bkeys.PublicKey, verifierWallet *wallet.ProtoWallet) (map[string]string, error) {
	serialHex := hexSerial(cert.Serial)
	out := make(map[string]string, len(keyring))

	for name, encryptedKeyB64 := range keyring {
		encryptedKey, err := base64.StdEncoding.DecodeString(encryptedKeyB64)
		if err != nil {
			return nil, bsverrors.New(bsverrors.KindMalformedEncoding, "certificates: verifier keyring entry is not valid base64", err)
		}

		args := wallet.EncryptionArgs{
			Protocol:     fieldEncryptionProtocol,
			KeyID:        serialHex + " " + name,
			Counterparty: wallet.Other(subjectPub),
		}
		fieldKey, err := verifierWallet.Decrypt(wallet.SecurityLevelCounterparty, args, encryptedKey, nil)
		if err != nil {
			return nil, err
		}

		blobB64, ok := cert.Fields[name]
		if !ok {
			return nil, bsverrors.New(bsverrors.KindInvariantViolation, "certificates: no such field %q", name)
		}
		plaintext, err := decryptFieldBlob(blobB64, fieldKey)
		if err != nil {
			return nil, err
		}
		out[name] = plaintext
	}

	return out, nil
}
