package graphtext

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/pkg/errors"
	"witness/internal/field"
	"witness/internal/graph"
)

var opByName = buildOpByName()

func buildOpByName() map[string]graph.Operation {
	m := make(map[string]graph.Operation, 20)
	all := []graph.Operation{
		graph.Mul, graph.Add, graph.Sub, graph.Div, graph.Idiv, graph.Mod, graph.Pow,
		graph.Eq, graph.Neq, graph.Lt, graph.Gt, graph.Leq, graph.Geq,
		graph.Land, graph.Lor, graph.Band, graph.Bor, graph.Bxor, graph.Shl, graph.Shr,
	}
	for _, op := range all {
		m[strings.ToLower(op.String())] = op
	}
	return m
}

// ToProgram converts a parsed Document into a graph.Program. Node indices
// are assigned in listing order, matching I1's requirement that every
// operand precede its owner.
func ToProgram(doc *Document) (*graph.Program, error) {
	prog := &graph.Program{}
	for i, line := range doc.Lines {
		switch {
		case line.Input != nil:
			prog.Nodes = append(prog.Nodes, graph.InputNode(line.Input.Slot))
		case line.Const != nil:
			v, err := parseFieldLiteral(line.Const.Value)
			if err != nil {
				return nil, errors.Wrapf(err, "graphtext: line %d", i)
			}
			prog.Nodes = append(prog.Nodes, graph.ConstantNode(v))
		case line.Op != nil:
			op, ok := opByName[strings.ToLower(line.Op.Name)]
			if !ok {
				return nil, errors.Errorf("graphtext: line %d: unknown operator %q", i, line.Op.Name)
			}
			prog.Nodes = append(prog.Nodes, graph.OpNode(op, line.Op.Lhs, line.Op.Rhs))
		case line.Outputs != nil:
			prog.Outputs = append(prog.Outputs, line.Outputs.Indices...)
		}
	}
	return prog, nil
}

func parseFieldLiteral(s string) (field.Element, error) {
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		base = 16
		s = s[2:]
	}
	n, ok := new(big.Int).SetString(s, base)
	if !ok {
		return field.Element{}, errors.Errorf("graphtext: invalid numeric literal %q", s)
	}
	return field.FromBigInt(n), nil
}

// Render produces a graphtext listing for prog, the inverse of
// Parse+ToProgram for any program Parse could have produced (constants
// round-trip through their decimal value, not necessarily the original
// literal's base).
func Render(prog *graph.Program) string {
	var b strings.Builder
	for _, n := range prog.Nodes {
		switch n.Kind {
		case graph.KindInput:
			fmt.Fprintf(&b, "input %d\n", n.Slot)
		case graph.KindConstant:
			fmt.Fprintf(&b, "const %s\n", n.Value.String())
		case graph.KindMontConstant:
			fmt.Fprintf(&b, "const %s\n", n.Value.String())
		case graph.KindOp:
			fmt.Fprintf(&b, "op %s %d %d\n", strings.ToLower(n.Op.String()), n.Lhs, n.Rhs)
		}
	}
	fmt.Fprint(&b, "outputs [")
	for i, o := range prog.Outputs {
		if i > 0 {
			fmt.Fprint(&b, ", ")
		}
		fmt.Fprintf(&b, "%d", o)
	}
	fmt.Fprint(&b, "]\n")
	return b.String()
}
