// Package frontend is a stand-in for "the one-time circuit compilation
// front end" that SPEC_FULL.md's §1 scope explicitly excludes: it is not a
// circuit compiler. It exists only to give the recorder API a real,
// exercised caller inside this repository — a handful of representative
// circuits built directly against recorder.Recorder, the way a generated
// front end would, used by tests and by the CLI's build and demo
// subcommands.
package frontend

import (
	"witness/internal/field"
	"witness/internal/graph"
	"witness/internal/inputs"
	"witness/internal/recorder"
)

// Circuit is a named recorder program together with the input names it
// expects, in binding order matching its recorded input slots.
type Circuit struct {
	Name       string
	InputNames []string
	Program    *graph.Program
}

// scalarBindings builds the InputsMap for a circuit whose named inputs are
// each a single scalar recorded as r.Input(i) in names order — true of
// every circuit below. It is what lets the serialized graph round-trip
// through internal/inputs.Bind: without it, codec.Serialize ships an empty
// InputsMap and every named input at eval time looks unknown (§6.4, §4.7).
func scalarBindings(names []string) []graph.InputBinding {
	bindings := make([]graph.InputBinding, len(names))
	for i, name := range names {
		bindings[i] = graph.InputBinding{Hash: inputs.FNV1a(name), FirstSlot: i, Size: 1}
	}
	return bindings
}

// Multiplier builds z = x * y over two named inputs.
func Multiplier() Circuit {
	r := recorder.New()
	x := r.Input(0)
	y := r.Input(1)
	z, err := r.Binop(graph.Mul, x, y)
	if err != nil {
		panic("frontend: multiplier: " + err.Error())
	}
	names := []string{"x", "y"}
	prog := r.Snapshot([]recorder.Handle{z})
	prog.InputsMap = scalarBindings(names)
	return Circuit{Name: "multiplier", InputNames: names, Program: prog}
}

// Comparison builds a circuit with two outputs: lt = (a < b) and
// eq = (a == b), over named inputs a and b.
func Comparison() Circuit {
	r := recorder.New()
	a := r.Input(0)
	b := r.Input(1)
	lt, err := r.Binop(graph.Lt, a, b)
	if err != nil {
		panic("frontend: comparison: " + err.Error())
	}
	eq, err := r.Binop(graph.Eq, a, b)
	if err != nil {
		panic("frontend: comparison: " + err.Error())
	}
	names := []string{"a", "b"}
	prog := r.Snapshot([]recorder.Handle{lt, eq})
	prog.InputsMap = scalarBindings(names)
	return Circuit{Name: "comparison", InputNames: names, Program: prog}
}

// RoundConstantFold builds a small fragment in the style of a
// Poseidon-like permutation round: state = (x + roundConstant)^5, with the
// round constant recorded as a Constant (a stand-in for a value the real
// front end would pull from the constants table). Only x is a named
// input.
func RoundConstantFold(roundConstant field.Element) Circuit {
	r := recorder.New()
	x := r.Input(0)
	rc := r.Constant(roundConstant)
	sum, err := r.Binop(graph.Add, x, rc)
	if err != nil {
		panic("frontend: round-constant-fold: " + err.Error())
	}
	five := r.Constant(field.FromUint64(5))
	out, err := r.Binop(graph.Pow, sum, five)
	if err != nil {
		panic("frontend: round-constant-fold: " + err.Error())
	}
	names := []string{"x"}
	prog := r.Snapshot([]recorder.Handle{out})
	prog.InputsMap = scalarBindings(names)
	return Circuit{Name: "round-constant-fold", InputNames: names, Program: prog}
}

// NamedInputs zips c's declared input names against values, in slot order,
// for passing to internal/inputs.Bind.
func (c Circuit) NamedInputs(values ...field.Element) map[string][]field.Element {
	out := make(map[string][]field.Element, len(c.InputNames))
	for i, name := range c.InputNames {
		if i < len(values) {
			out[name] = []field.Element{values[i]}
		}
	}
	return out
}
