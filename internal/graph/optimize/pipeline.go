// Package optimize implements the graph-rewriting pipeline run between
// recording and serialization: constant folding, algebraic simplification,
// common-subexpression elimination, dead-code elimination and
// renumbering, applied in that order. The first three repeat until none
// reports a change; dead-code elimination and renumbering then run once.
package optimize

import (
	"witness/internal/graph"
	"witness/internal/obs"
)

// Pass is a single graph rewrite. Apply mutates prog in place (nodes may be
// reordered or removed entirely) and reports whether it changed anything.
type Pass interface {
	Name() string
	Apply(prog *graph.Program) (bool, error)
}

// Pipeline runs an ordered sequence of passes to a fixed point.
type Pipeline struct {
	passes []Pass
}

// Default returns the standard pipeline described in SPEC_FULL.md §4.4:
// fold, simplify and CSE repeat together until none of them fire, then DCE
// and renumbering run once each as a final cleanup — DCE can only ever
// shrink the live set, and renumbering only relabels it, so neither needs
// to participate in the fixed-point loop.
func Default() *Pipeline {
	return &Pipeline{passes: []Pass{
		&ConstantFolding{},
		&AlgebraicSimplification{},
		&CommonSubexpressionElimination{},
	}}
}

// Run applies the fixed-point passes until none changes the graph, then
// runs DeadCodeElimination and Renumber once. It returns the number of
// fixed-point iterations performed (P4: re-running Run again after it
// returns must report 0 further changes from the fixed-point passes).
func (pl *Pipeline) Run(prog *graph.Program) (int, error) {
	rounds := 0
	for {
		changed := false
		for _, pass := range pl.passes {
			did, err := pass.Apply(prog)
			if err != nil {
				return rounds, err
			}
			if did {
				obs.Logger.Debug().Str("pass", pass.Name()).Int("round", rounds).Msg("pass changed graph")
			}
			changed = changed || did
		}
		rounds++
		if !changed {
			break
		}
	}

	if did, err := (&DeadCodeElimination{}).Apply(prog); err != nil {
		return rounds, err
	} else if did {
		obs.Logger.Debug().Str("pass", "dead-code-elimination").Msg("pass changed graph")
	}
	if did, err := (&Renumber{}).Apply(prog); err != nil {
		return rounds, err
	} else if did {
		obs.Logger.Debug().Str("pass", "renumber").Msg("pass changed graph")
	}
	return rounds, nil
}
