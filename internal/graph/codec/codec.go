// Package codec serializes and deserializes graph.Program to the compact
// binary layout described in SPEC_FULL.md §6.3, using CBOR as the framing
// format (fxamacker/cbor/v2) rather than a hand-rolled byte layout.
package codec

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
	"witness/internal/field"
	"witness/internal/graph"
)

// nodeDTO is the wire shape of a single graph.Node: a discriminant byte
// plus only the fields that discriminant uses. CBOR's map encoding already
// omits zero-valued optional fields efficiently, but the explicit
// discriminant keeps the format forward-readable without relying on that.
type nodeDTO struct {
	Kind  uint8    `cbor:"0,keyasint"`
	Slot  int      `cbor:"1,keyasint,omitempty"`
	Value [32]byte `cbor:"2,keyasint,omitempty"`
	Op    uint8    `cbor:"3,keyasint,omitempty"`
	Lhs   int      `cbor:"4,keyasint,omitempty"`
	Rhs   int      `cbor:"5,keyasint,omitempty"`
}

type bindingDTO struct {
	Hash      uint64 `cbor:"0,keyasint"`
	FirstSlot int    `cbor:"1,keyasint"`
	Size      int    `cbor:"2,keyasint"`
}

type programDTO struct {
	Nodes     []nodeDTO    `cbor:"0,keyasint"`
	Outputs   []int        `cbor:"1,keyasint"`
	InputsMap []bindingDTO `cbor:"2,keyasint,omitempty"`
}

func toDTO(p *graph.Program) programDTO {
	nodes := make([]nodeDTO, len(p.Nodes))
	for i, n := range p.Nodes {
		d := nodeDTO{Kind: uint8(n.Kind)}
		switch n.Kind {
		case graph.KindInput:
			d.Slot = n.Slot
		case graph.KindConstant, graph.KindMontConstant:
			d.Value = n.Value.Bytes32()
		case graph.KindOp:
			d.Op = uint8(n.Op)
			d.Lhs = n.Lhs
			d.Rhs = n.Rhs
		}
		nodes[i] = d
	}
	bindings := make([]bindingDTO, len(p.InputsMap))
	for i, b := range p.InputsMap {
		bindings[i] = bindingDTO{Hash: b.Hash, FirstSlot: b.FirstSlot, Size: b.Size}
	}
	return programDTO{
		Nodes:     nodes,
		Outputs:   append([]int(nil), p.Outputs...),
		InputsMap: bindings,
	}
}

func fromDTO(d programDTO) (*graph.Program, error) {
	nodes := make([]graph.Node, len(d.Nodes))
	for i, n := range d.Nodes {
		kind := graph.NodeKind(n.Kind)
		switch kind {
		case graph.KindInput:
			nodes[i] = graph.InputNode(n.Slot)
		case graph.KindConstant:
			nodes[i] = graph.ConstantNode(field.FromBytes32(n.Value))
		case graph.KindMontConstant:
			nodes[i] = graph.MontConstantNode(field.FromBytes32(n.Value))
		case graph.KindOp:
			nodes[i] = graph.OpNode(graph.Operation(n.Op), n.Lhs, n.Rhs)
		default:
			return nil, errors.Errorf("codec: node %d: unknown discriminant %d", i, n.Kind)
		}
	}
	bindings := make([]graph.InputBinding, len(d.InputsMap))
	for i, b := range d.InputsMap {
		bindings[i] = graph.InputBinding{Hash: b.Hash, FirstSlot: b.FirstSlot, Size: b.Size}
	}
	prog := &graph.Program{
		Nodes:     nodes,
		Outputs:   append([]int(nil), d.Outputs...),
		InputsMap: bindings,
	}
	graph.ResolveMontConstants(prog.Nodes)
	return prog, nil
}

// Serialize encodes p into the wire format. Constants that were in
// Montgomery form at call time are encoded as MontConstant nodes
// unchanged — Serialize is a pure marshal, it does not itself canonicalize
// (see graph.ResolveMontConstants, which Deserialize calls automatically).
func Serialize(p *graph.Program) ([]byte, error) {
	b, err := cbor.Marshal(toDTO(p))
	if err != nil {
		return nil, errors.Wrap(err, "codec: serialize")
	}
	return b, nil
}

// Deserialize decodes the wire format into a graph.Program, validating
// structural well-formedness (I1, operand ranges, discriminants) and
// eagerly resolving any MontConstant node per I2 before returning.
func Deserialize(b []byte) (*graph.Program, error) {
	var dto programDTO
	if err := cbor.Unmarshal(b, &dto); err != nil {
		return nil, errors.Wrap(err, "codec: deserialize")
	}
	prog, err := fromDTO(dto)
	if err != nil {
		return nil, err
	}
	if err := prog.Validate(); err != nil {
		return nil, errors.Wrap(err, "codec: deserialize")
	}
	return prog, nil
}
