// Package graph implements the expression-graph intermediate
// representation: a straight-line DAG of field operations, its optimizer,
// and the data needed to replay it as a witness evaluator.
package graph

import "witness/internal/field"

// Operation is the closed set of binary field/arithmetic operators a Node
// of kind Op may carry.
type Operation uint8

const (
	Mul Operation = iota
	Add
	Sub
	Div
	Idiv
	Mod
	Pow
	Eq
	Neq
	Lt
	Gt
	Leq
	Geq
	Land
	Lor
	Band
	Bor
	Bxor
	Shl
	Shr
)

var operationNames = [...]string{
	Mul: "Mul", Add: "Add", Sub: "Sub", Div: "Div", Idiv: "Idiv", Mod: "Mod",
	Pow: "Pow", Eq: "Eq", Neq: "Neq", Lt: "Lt", Gt: "Gt", Leq: "Leq",
	Geq: "Geq", Land: "Land", Lor: "Lor", Band: "Band", Bor: "Bor",
	Bxor: "Bxor", Shl: "Shl", Shr: "Shr",
}

func (o Operation) String() string {
	if int(o) < len(operationNames) && operationNames[o] != "" {
		return operationNames[o]
	}
	return "Operation(?)"
}

// commutative is the set of operators for which Eval(op, a, b) ==
// Eval(op, b, a); the optimizer's CSE pass keys these on an unordered
// operand pair.
var commutative = map[Operation]bool{
	Add: true, Mul: true, Eq: true, Neq: true,
	Band: true, Bor: true, Bxor: true, Land: true, Lor: true,
}

// Commutative reports whether op is order-independent in its operands.
func Commutative(op Operation) bool { return commutative[op] }

// NodeKind tags which variant of Node is populated.
type NodeKind uint8

const (
	KindInput NodeKind = iota
	KindConstant
	KindMontConstant
	KindOp
)

var nodeKindNames = [...]string{
	KindInput: "Input", KindConstant: "Constant",
	KindMontConstant: "MontConstant", KindOp: "Op",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) && nodeKindNames[k] != "" {
		return nodeKindNames[k]
	}
	return "NodeKind(?)"
}

// Node is a single entry of the graph's topologically-ordered node list.
// Exactly one of the kind-specific fields is meaningful, selected by Kind.
//
//   - KindInput:        Slot is the index into the caller's input buffer.
//   - KindConstant:     Value is the canonical field element.
//   - KindMontConstant: Value holds the Montgomery-form bytes; MUST be
//     converted to KindConstant before evaluation (see ResolveMontConstants
//     and Invariant I2) — the evaluator also resolves it on the fly as a
//     fallback, per §4.6.
//   - KindOp:           Op, Lhs, Rhs describe the operation; Lhs and Rhs
//     are indices strictly smaller than this node's own index (I1).
type Node struct {
	Kind  NodeKind
	Slot  int
	Value field.Element
	Op    Operation
	Lhs   int
	Rhs   int
}

// InputNode builds a KindInput node.
func InputNode(slot int) Node { return Node{Kind: KindInput, Slot: slot} }

// ConstantNode builds a KindConstant node from an already-canonical value.
func ConstantNode(v field.Element) Node { return Node{Kind: KindConstant, Value: v} }

// MontConstantNode builds a KindMontConstant node. montRaw carries the
// Montgomery-form bytes, not yet reduced to canonical form — callers must
// go through field.FromMontgomery (see ResolveMontConstants) before the
// value is safe to evaluate with.
func MontConstantNode(montRaw field.Element) Node {
	return Node{Kind: KindMontConstant, Value: montRaw}
}

// OpNode builds a KindOp node.
func OpNode(op Operation, lhs, rhs int) Node {
	return Node{Kind: KindOp, Op: op, Lhs: lhs, Rhs: rhs}
}

// IsConstantKind reports whether the node is a Constant or MontConstant
// leaf (as opposed to Input or Op).
func (n Node) IsConstantKind() bool {
	return n.Kind == KindConstant || n.Kind == KindMontConstant
}
