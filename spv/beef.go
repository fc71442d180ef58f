package spv

import (
	"encoding/binary"

	"github.com/bitcoin-sv/bsvkernel/bsverrors"
	"github.com/bitcoin-sv/bsvkernel/chainhash"
	"github.com/bitcoin-sv/bsvkernel/primitives/varint"
	"github.com/bitcoin-sv/bsvkernel/transaction"
)

// BEEF wire magic numbers.
const (
	magicV1     uint32 = 0x0100BEEF
	magicV2     uint32 = 0x0200BEEF
	atomicMagic uint32 = 0x01010101
)

// DataFormat classifies how a BEEF transaction entry carries its payload.
type DataFormat int

const (
	// RawTx: the entry carries only the raw transaction bytes.
	RawTx DataFormat = iota
	// RawTxAndBump: the entry carries the raw transaction plus an index
	// into the container's bump array.
	RawTxAndBump
	// TxIDOnly: the entry carries only a txid (v2 format 2), referencing
	// a transaction the caller is expected to already know.
	TxIDOnly
)

// TxEntry is one transaction record within a BEEF container.
type TxEntry struct {
	Format    DataFormat
	TXID      chainhash.Hash
	Tx        *transaction.Transaction // nil iff Format == TxIDOnly
	BumpIndex int                      // valid iff Format == RawTxAndBump
}

// BEEF is a parsed Background Evaluation Extended Format container: zero or
// more Merkle-path bumps, plus a set of transaction entries keyed by txid
// order of appearance.
type BEEF struct {
	Version      uint32
	AtomicTXID   *chainhash.Hash // non-nil iff this was wrapped in an Atomic BEEF prefix
	Bumps        []*MerklePath
	Transactions []*TxEntry
}

// ParseBEEF parses a BEEF v1 or v2 container, transparently skipping a
// leading Atomic BEEF prefix if present.
func ParseBEEF(buf []byte) (*BEEF, error) {
	var atomicTXID *chainhash.Hash
	if len(buf) >= 4 && binary.LittleEndian.Uint32(buf[:4]) == atomicMagic {
		if len(buf) < 4+32 {
			return nil, bsverrors.New(bsverrors.KindInvalidLength, "beef: atomic prefix truncated")
		}
		txid, err := chainhash.NewFromBytes(buf[4:36])
		if err != nil {
			return nil, err
		}
		atomicTXID = &txid
		buf = buf[36:]
	}

	if len(buf) < 4 {
		return nil, bsverrors.New(bsverrors.KindInvalidLength, "beef: truncated before magic")
	}
	magic := binary.LittleEndian.Uint32(buf[:4])
	i := 4

	var beef *BEEF
	var err error
	switch magic {
	case magicV1:
		beef, err = parseBEEFv1(buf, i)
	case magicV2:
		beef, err = parseBEEFv2(buf, i)
	default:
		return nil, bsverrors.New(bsverrors.KindMalformedEncoding, "beef: unrecognized magic 0x%08x", magic)
	}
	if err != nil {
		return nil, err
	}

	beef.AtomicTXID = atomicTXID
	if err := validateBumpIndices(beef); err != nil {
		return nil, err
	}
	return beef, nil
}

func parseBumps(buf []byte, i int) ([]*MerklePath, int, error) {
	numBumps, n, err := varint.Decode(buf[i:], 0)
	if err != nil {
		return nil, 0, err
	}
	i += n

	bumps := make([]*MerklePath, 0, numBumps)
	for b := uint64(0); b < numBumps; b++ {
		path, consumed, err := parseMerklePathPrefix(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		bumps = append(bumps, path)
		i += consumed
	}
	return bumps, i, nil
}

// parseMerklePathPrefix parses one Merkle path occupying a prefix of buf,
// returning the path and bytes consumed. BEEF embeds multiple paths back to
// back with no outer length prefix, so this walks the same field layout as
// ParseMerklePath without requiring the buffer to end exactly there.
func parseMerklePathPrefix(buf []byte) (*MerklePath, int, error) {
	blockHeight, n, err := varint.Decode(buf, 0)
	if err != nil {
		return nil, 0, err
	}
	i := n

	if i >= len(buf) {
		return nil, 0, bsverrors.New(bsverrors.KindInvalidLength, "beef: merkle path truncated before tree height")
	}
	treeHeight := int(buf[i])
	i++

	levels := make([][]PathElement, 0, treeHeight)
	for lvl := 0; lvl < treeHeight; lvl++ {
		count, n, err := varint.Decode(buf[i:], 0)
		if err != nil {
			return nil, 0, err
		}
		i += n

		level := make([]PathElement, 0, count)
		seenOffsets := make(map[uint64]bool, count)
		for k := uint64(0); k < count; k++ {
			offset, n, err := varint.Decode(buf[i:], 0)
			if err != nil {
				return nil, 0, err
			}
			i += n

			if seenOffsets[offset] {
				return nil, 0, bsverrors.New(bsverrors.KindInvariantViolation, "beef: duplicate offset %d in merkle path level %d", offset, lvl)
			}
			seenOffsets[offset] = true

			if i >= len(buf) {
				return nil, 0, bsverrors.New(bsverrors.KindInvalidLength, "beef: merkle path truncated before flags byte")
			}
			flags := buf[i]
			i++

			elem := PathElement{Offset: offset, Flags: flags}
			if flags&LeafFlagDuplicate == 0 {
				if i+32 > len(buf) {
					return nil, 0, bsverrors.New(bsverrors.KindInvalidLength, "beef: merkle path truncated before node hash")
				}
				h, err := chainhash.NewFromBytes(buf[i : i+32])
				if err != nil {
					return nil, 0, err
				}
				i += 32
				if flags&LeafFlagTxID != 0 {
					elem.TxID = h
				} else {
					elem.Hash = h
				}
			}
			level = append(level, elem)
		}
		levels = append(levels, level)
	}

	return &MerklePath{BlockHeight: blockHeight, Levels: levels}, i, nil
}

func parseBEEFv1(buf []byte, i int) (*BEEF, error) {
	bumps, i, err := parseBumps(buf, i)
	if err != nil {
		return nil, err
	}

	numTx, n, err := varint.Decode(buf[i:], 0)
	if err != nil {
		return nil, err
	}
	i += n

	entries := make([]*TxEntry, 0, numTx)
	for t := uint64(0); t < numTx; t++ {
		tx, consumed, err := transaction.FromBytesPrefix(buf[i:])
		if err != nil {
			return nil, err
		}
		i += consumed

		entry := &TxEntry{Format: RawTx, TXID: tx.TXID(), Tx: tx}

		if i >= len(buf) {
			// Legacy encoders omit the trailing flag byte at EOF; treat
			// as RawTx.
			entries = append(entries, entry)
			break
		}

		flag := buf[i]
		i++
		if flag == 1 {
			bumpIndex, n, err := varint.Decode(buf[i:], 0)
			if err != nil {
				return nil, err
			}
			i += n
			entry.Format = RawTxAndBump
			entry.BumpIndex = int(bumpIndex)
		}
		entries = append(entries, entry)
	}

	if i != len(buf) {
		return nil, bsverrors.New(bsverrors.KindInvalidLength, "beef: %d trailing bytes after v1 transactions", len(buf)-i)
	}

	return &BEEF{Version: 1, Bumps: bumps, Transactions: entries}, nil
}

func parseBEEFv2(buf []byte, i int) (*BEEF, error) {
	bumps, i, err := parseBumps(buf, i)
	if err != nil {
		return nil, err
	}

	numTx, n, err := varint.Decode(buf[i:], 0)
	if err != nil {
		return nil, err
	}
	i += n

	entries := make([]*TxEntry, 0, numTx)
	for t := uint64(0); t < numTx; t++ {
		if i >= len(buf) {
			return nil, bsverrors.New(bsverrors.KindInvalidLength, "beef: v2 truncated before tx format byte")
		}
		format := buf[i]
		i++

		switch format {
		case 0:
			tx, consumed, err := transaction.FromBytesPrefix(buf[i:])
			if err != nil {
				return nil, err
			}
			i += consumed
			entries = append(entries, &TxEntry{Format: RawTx, TXID: tx.TXID(), Tx: tx})

		case 1:
			bumpIndex, n, err := varint.Decode(buf[i:], 0)
			if err != nil {
				return nil, err
			}
			i += n
			tx, consumed, err := transaction.FromBytesPrefix(buf[i:])
			if err != nil {
				return nil, err
			}
			i += consumed
			entries = append(entries, &TxEntry{Format: RawTxAndBump, TXID: tx.TXID(), Tx: tx, BumpIndex: int(bumpIndex)})

		case 2:
			if i+32 > len(buf) {
				return nil, bsverrors.New(bsverrors.KindInvalidLength, "beef: v2 txid-only entry truncated")
			}
			txid, err := chainhash.NewFromBytes(buf[i : i+32])
			if err != nil {
				return nil, err
			}
			i += 32
			entries = append(entries, &TxEntry{Format: TxIDOnly, TXID: txid})

		default:
			return nil, bsverrors.New(bsverrors.KindMalformedEncoding, "beef: unknown v2 tx format %d", format)
		}
	}

	if i != len(buf) {
		return nil, bsverrors.New(bsverrors.KindInvalidLength, "beef: %d trailing bytes after v2 transactions", len(buf)-i)
	}

	return &BEEF{Version: 2, Bumps: bumps, Transactions: entries}, nil
}

func validateBumpIndices(beef *BEEF) error {
	for _, entry := range beef.Transactions {
		if entry.Format != RawTxAndBump {
			continue
		}
		if entry.BumpIndex < 0 || entry.BumpIndex >= len(beef.Bumps) {
			return bsverrors.New(bsverrors.KindInvariantViolation, "beef: tx %s references out-of-range bump index %d", entry.TXID, entry.BumpIndex)
		}
	}
	return nil
}
