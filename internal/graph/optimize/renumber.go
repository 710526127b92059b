package optimize

import "witness/internal/graph"

// Renumber coalesces Input slots into a dense 0..k-1 range (§4.4.6, option
// (b): remap rather than leave sparse). It operates on whole InputsMap
// binding ranges, not on individual Input nodes: each binding's
// [FirstSlot, FirstSlot+Size) range is assigned a new base in InputsMap
// order, and every surviving Input node's Slot is shifted by that binding's
// constant offset. This is deliberately not "renumber by first appearance
// of an Input node in the node list" — for a multi-slot binding, an
// interior slot's Input node can have been removed by DeadCodeElimination
// while the binding itself (and its other slots) survives, and per-node
// first-appearance order has no way to reconstruct the original
// slot-within-binding offset for the nodes that are left. Keying off
// InputsMap instead keeps every slot in a binding shifted identically
// regardless of which of its Input nodes are still live, so a slot is never
// misassigned to a different binding's range.
//
// A graph with no InputsMap (nothing yet describes which slots belong
// together) is left untouched: without binding boundaries there is no safe
// way to coalesce without risking exactly this kind of corruption.
type Renumber struct{}

func (*Renumber) Name() string { return "renumber" }

func (*Renumber) Apply(prog *graph.Program) (bool, error) {
	if len(prog.InputsMap) == 0 {
		return false, nil
	}

	type binRange struct {
		oldBase, size, newBase int
	}
	ranges := make([]binRange, len(prog.InputsMap))
	next := 0
	for i, b := range prog.InputsMap {
		ranges[i] = binRange{oldBase: b.FirstSlot, size: b.Size, newBase: next}
		next += b.Size
	}

	changed := false
	for i, n := range prog.Nodes {
		if n.Kind != graph.KindInput {
			continue
		}
		for _, rg := range ranges {
			if n.Slot < rg.oldBase || n.Slot >= rg.oldBase+rg.size {
				continue
			}
			newSlot := rg.newBase + (n.Slot - rg.oldBase)
			if newSlot != n.Slot {
				changed = true
			}
			prog.Nodes[i].Slot = newSlot
			break
		}
	}

	for i, rg := range ranges {
		if rg.newBase != prog.InputsMap[i].FirstSlot {
			changed = true
		}
		prog.InputsMap[i].FirstSlot = rg.newBase
	}
	return changed, nil
}
