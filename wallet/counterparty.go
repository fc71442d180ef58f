package wallet

import "github.com/bitcoin-sv/bsvkernel/bkeys"

// CounterpartyKind discriminates the three Counterparty variants.
type CounterpartyKind int

const (
	CounterpartySelf CounterpartyKind = iota
	CounterpartyAnyone
	CounterpartyOther
)

// Counterparty identifies the party a key is derived with respect to: self, the well-known anyone key, or a specific
// public key.
type Counterparty struct {
	Kind CounterpartyKind
	Pub  *bkeys.PublicKey // only set when Kind == CounterpartyOther
}

// Self builds the self counterparty.
func Self() Counterparty { return Counterparty{Kind: CounterpartySelf} }

// Anyone builds the well-known anyone counterparty.
func Anyone() Counterparty { return Counterparty{Kind: CounterpartyAnyone} }

// Other builds a counterparty identified by a specific public key.
func Other(pub *bkeys.PublicKey) Counterparty {
	return Counterparty{Kind: CounterpartyOther, Pub: pub}
}

// resolvePublicKey returns the public key this counterparty refers to, for
// a wallet rooted at rootPriv: self resolves to rootPriv's own public key,
// anyone to bkeys.AnyonePublicKey, other to its carried key.
func (c Counterparty) resolvePublicKey(rootPriv *bkeys.PrivateKey) *bkeys.PublicKey {
	switch c.Kind {
	case CounterpartySelf:
		return rootPriv.PubKey()
	case CounterpartyAnyone:
		return bkeys.AnyonePublicKey()
	default:
		return c.Pub
	}
}
