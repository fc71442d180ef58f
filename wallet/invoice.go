// Package wallet implements the BRC-42/43 wallet protocol on top of bkeys:
// protocol IDs, counterparties, invoice-number normalization, symmetric key
// derivation, and the BRC-77/BRC-78 message signing/encryption envelopes,
// built on bkeys' DeriveChild/ECDH primitives.
package wallet

import (
	"strconv"
	"strings"

	"github.com/bitcoin-sv/bsvkernel/bsverrors"
)

// SecurityLevel is the first component of a BRC-42 invoice number.
type SecurityLevel int

const (
	SecurityLevelSilent        SecurityLevel = 0
	SecurityLevelApp           SecurityLevel = 1
	SecurityLevelCounterparty  SecurityLevel = 2
)

// ComputeInvoiceNumber builds the normalized invoice string
// "{security_level}-{normalized_protocol}-{key_id}", rejecting malformed
// security levels, protocol names, and key ids.
func ComputeInvoiceNumber(securityLevel SecurityLevel, protocol, keyID string) (string, error) {
	if securityLevel < 0 || securityLevel > 2 {
		return "", bsverrors.New(bsverrors.KindConfigError, "wallet: security level %d out of range", int(securityLevel))
	}
	if len(keyID) < 1 || len(keyID) > 800 {
		return "", bsverrors.New(bsverrors.KindConfigError, "wallet: key id length %d out of range", len(keyID))
	}

	normalized := strings.ToLower(strings.TrimSpace(protocol))

	maxLen := 400
	if strings.HasPrefix(normalized, "specific linkage revelation ") {
		maxLen = 430
	}
	if len(normalized) < 5 || len(normalized) > maxLen {
		return "", bsverrors.New(bsverrors.KindConfigError, "wallet: protocol name length %d out of range", len(normalized))
	}
	if strings.Contains(normalized, "  ") {
		return "", bsverrors.New(bsverrors.KindConfigError, "wallet: protocol name contains a double space")
	}
	if strings.HasSuffix(normalized, " protocol") {
		return "", bsverrors.New(bsverrors.KindConfigError, "wallet: protocol name may not end with \" protocol\"")
	}
	for _, r := range normalized {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == ' ') {
			return "", bsverrors.New(bsverrors.KindConfigError, "wallet: protocol name contains disallowed character %q", r)
		}
	}

	return invoiceNumberString(securityLevel, normalized, keyID), nil
}

func invoiceNumberString(securityLevel SecurityLevel, normalizedProtocol, keyID string) string {
	return strconv.Itoa(int(securityLevel)) + "-" + normalizedProtocol + "-" + keyID
}
