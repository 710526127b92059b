package graph

import (
	"fmt"
	"strings"
)

// Dump renders p as a topologically-ordered listing — one line
// per node, in the style of a compiler's IR dump. It is a debugging aid
// only; the codec package is the authority on the wire format.
func Dump(p *Program) string {
	var b strings.Builder
	for i, n := range p.Nodes {
		fmt.Fprintf(&b, "%%%d = %s\n", i, describe(n))
	}
	fmt.Fprintf(&b, "outputs = %v\n", p.Outputs)
	return b.String()
}

func describe(n Node) string {
	switch n.Kind {
	case KindInput:
		return fmt.Sprintf("input[%d]", n.Slot)
	case KindConstant:
		return fmt.Sprintf("const %s", n.Value.String())
	case KindMontConstant:
		return fmt.Sprintf("mont-const %x", n.Value.Bytes32())
	case KindOp:
		return fmt.Sprintf("%s %%%d, %%%d", n.Op, n.Lhs, n.Rhs)
	default:
		return "?"
	}
}
