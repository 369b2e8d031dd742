package misp

import "github.com/crillab/gophermdd/mdd"

// MinFreeVariableSelector branches on the unbound vertex that is free in the fewest states
// of the current layer, so that the next layer grows as little as possible.
// Ties go to the lowest vertex.
type MinFreeVariableSelector struct{}

// Select implements mdd.VariableSelector.
func (MinFreeVariableSelector) Select(vars []mdd.Variable, layer *mdd.Layer) (mdd.Variable, bool) {
	counts := make([]int, len(vars))
	for _, s := range layer.States() {
		f, ok := s.Representation().(freeSet)
		if !ok {
			continue
		}
		f.set.Each(func(u int) {
			if u < len(counts) {
				counts[u]++
			}
		})
	}
	best := -1
	for i, v := range vars {
		if v.Bound() {
			continue
		}
		if best == -1 || counts[i] < counts[best] {
			best = i
		}
	}
	if best == -1 {
		return mdd.Variable{}, false
	}
	return vars[best], true
}

// VariableSelector returns the branching heuristic suited to pb.
func (pb *Problem) VariableSelector() mdd.VariableSelector { return MinFreeVariableSelector{} }
