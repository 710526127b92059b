// Package witness is the runtime library entry point (§6.4): load a
// serialized graph, learn its input buffer size, and calculate a witness
// from named input values. It has no dependency on how the graph was
// produced — optimized or not, by the in-tree frontend stand-in or a real
// circuit compiler.
package witness

import (
	"github.com/pkg/errors"
	"witness/internal/evaluator"
	"witness/internal/field"
	"witness/internal/graph"
	"witness/internal/graph/codec"
	"witness/internal/inputs"
)

// Graph is a deserialized, ready-to-evaluate expression graph.
type Graph = graph.Program

// InitGraph deserializes bytes produced by the build-time pipeline
// (graph.bin) into a Graph, failing on any malformed input.
func InitGraph(data []byte) (*Graph, error) {
	g, err := codec.Deserialize(data)
	if err != nil {
		return nil, errors.Wrap(err, "witness: init graph")
	}
	return g, nil
}

// GetInputsSize returns the size of the input buffer g expects: one more
// than the largest Input slot referenced anywhere in the graph.
func GetInputsSize(g *Graph) int {
	return g.InputsSize()
}

// CalculateWitness binds named inputs against g's input map, evaluates the
// graph, and returns the witness vector in output order.
func CalculateWitness(g *Graph, named map[string][]field.Element) ([]field.Element, error) {
	buf, err := inputs.Bind(g, named)
	if err != nil {
		return nil, errors.Wrap(err, "witness: calculate witness")
	}
	out, err := evaluator.Evaluate(g, buf)
	if err != nil {
		return nil, errors.Wrap(err, "witness: calculate witness")
	}
	return out, nil
}
