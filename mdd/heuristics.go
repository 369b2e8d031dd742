package mdd

import "sort"

// A VariableSelector chooses the next variable to branch on.
type VariableSelector interface {
	// Select returns an unbound variable among vars, given the states of the current layer.
	// vars must not be modified. ok is false if all variables are bound.
	Select(vars []Variable, layer *Layer) (v Variable, ok bool)
}

// A MergeSelector chooses which states of a layer must be merged when building a relaxed diagram.
type MergeSelector interface {
	// Select returns n distinct states of layer.
	Select(layer *Layer, n int) []*State
}

// A DeleteSelector chooses which states of a layer must be dropped when building a restricted diagram.
type DeleteSelector interface {
	// Select returns n distinct states of layer.
	Select(layer *Layer, n int) []*State
}

// SimpleVariableSelector selects the unbound variable with the lowest identifier.
type SimpleVariableSelector struct{}

// Select implements VariableSelector.
func (SimpleVariableSelector) Select(vars []Variable, _ *Layer) (Variable, bool) {
	for _, v := range vars {
		if !v.Bound() {
			return v, true
		}
	}
	return Variable{}, false
}

// MinLPMergeSelector merges the states with the lowest rank.
type MinLPMergeSelector struct{}

// Select implements MergeSelector.
func (MinLPMergeSelector) Select(layer *Layer, n int) []*State {
	return lowestRanked(layer, n)
}

// MinLPDeleteSelector deletes the states with the lowest rank.
type MinLPDeleteSelector struct{}

// Select implements DeleteSelector.
func (MinLPDeleteSelector) Select(layer *Layer, n int) []*State {
	return lowestRanked(layer, n)
}

// rankedStates sorts states by increasing rank. Ties keep their layer order.
type rankedStates struct {
	states []*State
	ranks  []float64
}

func (rs rankedStates) Len() int           { return len(rs.states) }
func (rs rankedStates) Less(i, j int) bool { return rs.ranks[i] < rs.ranks[j] }
func (rs rankedStates) Swap(i, j int) {
	rs.states[i], rs.states[j] = rs.states[j], rs.states[i]
	rs.ranks[i], rs.ranks[j] = rs.ranks[j], rs.ranks[i]
}

func lowestRanked(layer *Layer, n int) []*State {
	states := append([]*State(nil), layer.States()...)
	ranks := make([]float64, len(states))
	for i, s := range states {
		ranks[i] = s.Rank()
	}
	sort.Stable(rankedStates{states: states, ranks: ranks})
	if n > len(states) {
		n = len(states)
	}
	if n < 0 {
		n = 0
	}
	return states[:n]
}
