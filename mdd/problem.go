package mdd

// A Problem describes a discrete maximization problem as a transition model.
type Problem interface {
	// Root returns the initial state, with no bound variable.
	Root() *State
	// NbVars returns the number of decision variables.
	NbVars() int
	// Successors returns every feasible way of extending s by binding v.
	// It returns no state if s cannot be extended.
	// An error is a defect in the problem and aborts the search.
	Successors(s *State, v Variable) ([]*State, error)
	// Merge returns a state whose representation over-approximates the feasible completions
	// of all given states, and whose value is at least the best of their values.
	Merge(states []*State) *State
}
