// Package constants reads the fixed-layout binary constants table (§6.2):
// a legacy little-endian record format mandated byte-for-byte by an
// external producer, not a format this codebase controls — so it is
// parsed directly with encoding/binary rather than through a schema-driven
// codec (see DESIGN.md for the justification).
package constants

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
	"witness/internal/field"
)

// InputBinding mirrors graph.InputBinding; kept as a distinct type here so
// this package has no dependency on internal/graph beyond what the build
// pipeline needs to assemble one.
type InputBinding struct {
	Hash      uint64
	FirstSlot uint64
	Size      uint64
}

// Table is the decoded result of a constants file: everything the
// build-time pipeline needs to finish assembling a graph.Program.
type Table struct {
	InputMap       []InputBinding
	WitnessSignals []uint64
	Constants      []field.Element
}

const (
	// hasLongValFlag selects long_val over short_val as the constant's source.
	hasLongValFlag = 0x8000_0000
	// montgomeryFormFlag marks long_val as Montgomery-form, needing reduction.
	montgomeryFormFlag = 0x4000_0000
)

// Load parses the binary layout from a reader positioned at the start of
// the table: a 4x-uint64 header of section sizes, then the input hashmap,
// witness-to-signal list, constants table, and the deprecated io-map
// section, which is parsed (to keep the reader in sync with the producer's
// framing) and discarded — it is a front-end artifact not consumed at
// evaluation time (§9).
func Load(r io.Reader) (*Table, error) {
	var header [4]uint64
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, errors.Wrap(err, "constants: read header")
	}
	inputHashmapSize, witnessSize, constantsSize, ioMapSize := header[0], header[1], header[2], header[3]

	inputMap, err := readInputMap(r, inputHashmapSize)
	if err != nil {
		return nil, err
	}
	witness, err := readWitnessSignals(r, witnessSize)
	if err != nil {
		return nil, err
	}
	consts, err := readConstants(r, constantsSize)
	if err != nil {
		return nil, err
	}
	if err := discardIOMap(r, ioMapSize); err != nil {
		return nil, err
	}

	return &Table{InputMap: inputMap, WitnessSignals: witness, Constants: consts}, nil
}

func readInputMap(r io.Reader, n uint64) ([]InputBinding, error) {
	out := make([]InputBinding, n)
	for i := range out {
		var rec struct{ Hash, FirstSlot, Size uint64 }
		if err := binary.Read(r, binary.LittleEndian, &rec); err != nil {
			return nil, errors.Wrapf(err, "constants: input hashmap record %d", i)
		}
		out[i] = InputBinding{Hash: rec.Hash, FirstSlot: rec.FirstSlot, Size: rec.Size}
	}
	return out, nil
}

func readWitnessSignals(r io.Reader, n uint64) ([]uint64, error) {
	out := make([]uint64, n)
	for i := range out {
		if err := binary.Read(r, binary.LittleEndian, &out[i]); err != nil {
			return nil, errors.Wrapf(err, "constants: witness record %d", i)
		}
	}
	return out, nil
}

func readConstants(r io.Reader, n uint64) ([]field.Element, error) {
	out := make([]field.Element, n)
	for i := range out {
		var rec struct {
			ShortVal   int32
			TypeFlags  uint32
			LongVal    [32]byte
		}
		if err := binary.Read(r, binary.LittleEndian, &rec); err != nil {
			return nil, errors.Wrapf(err, "constants: constant record %d", i)
		}
		out[i] = decodeConstant(rec.ShortVal, rec.TypeFlags, rec.LongVal)
	}
	return out, nil
}

func decodeConstant(shortVal int32, typeFlags uint32, longVal [32]byte) field.Element {
	if typeFlags&hasLongValFlag != 0 {
		be := reverse32(longVal)
		if typeFlags&montgomeryFormFlag != 0 {
			return field.FromMontgomery(be)
		}
		return field.FromBytes32(be)
	}
	if shortVal >= 0 {
		return field.FromUint64(uint64(shortVal))
	}
	neg := field.FromUint64(uint64(-shortVal))
	return field.Zero.Sub(neg)
}

// reverse32 converts the table's little-endian long_val bytes (§6.2: "little-
// endian throughout", matching src/generate/mod.rs's U256::from_le_bytes)
// into the big-endian encoding field.FromBytes32/field.FromMontgomery expect.
func reverse32(le [32]byte) [32]byte {
	var be [32]byte
	for i, b := range le {
		be[31-i] = b
	}
	return be
}

// discardIOMap reads and throws away the deprecated template I/O table: n
// entries of {u64 key, u32 defCount}, each def of {u32 code, u32 offset,
// u32 lenCount, lenCount x u32 lengths}.
func discardIOMap(r io.Reader, n uint64) error {
	for i := uint64(0); i < n; i++ {
		var entry struct {
			Key       uint64
			DefCount  uint32
		}
		if err := binary.Read(r, binary.LittleEndian, &entry); err != nil {
			return errors.Wrapf(err, "constants: io-map entry %d", i)
		}
		for d := uint32(0); d < entry.DefCount; d++ {
			var def struct {
				Code, Offset, LenCount uint32
			}
			if err := binary.Read(r, binary.LittleEndian, &def); err != nil {
				return errors.Wrapf(err, "constants: io-map entry %d def %d", i, d)
			}
			lengths := make([]uint32, def.LenCount)
			if err := binary.Read(r, binary.LittleEndian, &lengths); err != nil {
				return errors.Wrapf(err, "constants: io-map entry %d def %d lengths", i, d)
			}
		}
	}
	return nil
}
