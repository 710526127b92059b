package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"witness"
	"witness/internal/field"
	"witness/internal/frontend"
	"witness/internal/graph/codec"
	"witness/internal/graph/optimize"
)

var circuits = map[string]func() frontend.Circuit{
	"multiplier": frontend.Multiplier,
	"comparison": frontend.Comparison,
	"round-fold": func() frontend.Circuit { return frontend.RoundConstantFold(field.FromUint64(7)) },
}

func runBuild(name, out string) error {
	build, ok := circuits[name]
	if !ok {
		return errors.Errorf("witnessgen: unknown circuit %q (known: %s)", name, knownCircuitNames())
	}
	c := build()

	rounds, err := optimize.Default().Run(c.Program)
	if err != nil {
		return errors.Wrap(err, "witnessgen: optimize")
	}
	color.Yellow("optimized %q in %d fixed-point round(s), %d live node(s)", c.Name, rounds, len(c.Program.Nodes))

	data, err := codec.Serialize(c.Program)
	if err != nil {
		return errors.Wrap(err, "witnessgen: serialize")
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return errors.Wrap(err, "witnessgen: write graph")
	}
	color.Green("✓ wrote %s (%d bytes)", out, len(data))
	return nil
}

func runEval(graphPath string, rawInputs []string) error {
	data, err := os.ReadFile(graphPath)
	if err != nil {
		return errors.Wrap(err, "witnessgen: read graph")
	}
	g, err := witness.InitGraph(data)
	if err != nil {
		return errors.Wrap(err, "witnessgen: init graph")
	}

	named, err := parseInputs(rawInputs)
	if err != nil {
		return err
	}

	out, err := witness.CalculateWitness(g, named)
	if err != nil {
		return errors.Wrap(err, "witnessgen: calculate witness")
	}
	for i, v := range out {
		color.Cyan("out[%d] = %s", i, v.String())
	}
	return nil
}

func runDemo() error {
	for name, build := range circuits {
		c := build()
		if _, err := optimize.Default().Run(c.Program); err != nil {
			return errors.Wrapf(err, "witnessgen: demo: optimize %q", name)
		}
		color.Yellow("%s: %d live node(s), inputs=%v", c.Name, len(c.Program.Nodes), c.InputNames)
	}
	return nil
}

// parseInputs turns a list of "name=value" flags into single-element named
// input vectors (every demo circuit here takes scalar, not vector, inputs).
func parseInputs(raw []string) (map[string][]field.Element, error) {
	out := make(map[string][]field.Element, len(raw))
	for _, kv := range raw {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			return nil, errors.Errorf("witnessgen: malformed --input %q, want name=value", kv)
		}
		n, err := strconv.ParseUint(parts[1], 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "witnessgen: --input %q", kv)
		}
		out[parts[0]] = []field.Element{field.FromUint64(n)}
	}
	return out, nil
}

func knownCircuitNames() string {
	names := make([]string, 0, len(circuits))
	for n := range circuits {
		names = append(names, n)
	}
	return fmt.Sprintf("%v", names)
}
