package mdd

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// A Representation is the problem-specific part of a state: an equivalence class of partial
// solutions that share the same set of feasible completions.
// Equal and Hash must be consistent with each other.
type Representation interface {
	// Equal is true iff both representations describe the same equivalence class.
	Equal(other Representation) bool
	// Hash returns a structural hash of the representation.
	Hash() uint64
	// Rank estimates how promising s is; heuristics keep higher-ranked states precise.
	Rank(s *State) float64
	// Copy returns a deep, independent copy.
	Copy() Representation
}

// nodeRef is the index of a state in the arena of the compilation that created it.
type nodeRef int32

const noRef nodeRef = -1

// A State is a node of a decision diagram.
// It associates a representation with the best exact path known to reach it.
type State struct {
	repr         Representation
	vars         []Variable // Shared between siblings; never modified in place
	value        float64    // Value of the best path reaching this node
	relaxedValue float64    // Upper bound on the best completion from this node
	exact        bool       // False once the node was produced by a merge or absorbed an inexact node
	layer        int        // Number of bound variables
	ref          nodeRef    // Position in the arena of the current compilation
	parents      []nodeRef  // Exact nodes whose paths this node over-approximates; sorted, only set when !exact
}

// NewState returns an exact state.
// Its layer number is the number of bound variables in vars.
// vars is not copied: it must not be modified afterwards.
func NewState(repr Representation, vars []Variable, value float64) *State {
	layer := 0
	for _, v := range vars {
		if v.Bound() {
			layer++
		}
	}
	return &State{
		repr:         repr,
		vars:         vars,
		value:        value,
		relaxedValue: value,
		exact:        true,
		layer:        layer,
		ref:          noRef,
	}
}

// Successor returns a new state reached from s by binding variable varID to val.
// The successor inherits s's exactness. If the assignment is invalid, an *InvalidAssignmentError
// describing s is returned.
func (s *State) Successor(repr Representation, value float64, varID, val int) (*State, error) {
	succ := &State{
		repr:         repr,
		vars:         s.vars,
		value:        value,
		relaxedValue: value,
		exact:        s.exact,
		layer:        s.layer,
		ref:          noRef,
		parents:      s.parents,
	}
	if err := succ.Assign(varID, val); err != nil {
		var iae *InvalidAssignmentError
		if errors.As(err, &iae) {
			iae.State = s.String()
		}
		return nil, err
	}
	return succ, nil
}

// Assign binds the variable varID to val along the path of s.
// The variable slice is copied first, so siblings sharing it are not affected.
func (s *State) Assign(varID, val int) error {
	if varID < 0 || varID >= len(s.vars) {
		return &InvalidAssignmentError{Var: varID, Value: val, Reason: "unknown variable", State: s.String()}
	}
	vars := make([]Variable, len(s.vars))
	copy(vars, s.vars)
	if err := vars[varID].Assign(val); err != nil {
		return err
	}
	s.vars = vars
	s.layer++
	return nil
}

// Copy returns a copy of s with a deep copy of its representation.
// The copy does not belong to any compilation.
func (s *State) Copy() *State {
	cp := *s
	cp.repr = s.repr.Copy()
	cp.ref = noRef
	if s.parents != nil {
		cp.parents = append([]nodeRef(nil), s.parents...)
	}
	return &cp
}

// Update merges other, which must have an equal representation, into s.
// s keeps the best value and path of both; it stays exact only if both were exact.
func (s *State) Update(other *State) {
	var refs []nodeRef
	if !s.exact || !other.exact {
		refs = unionRefs(s.exactRefs(), other.exactRefs())
	}
	if other.value > s.value {
		s.value = other.value
		s.vars = other.vars
	}
	s.relaxedValue = math.Max(s.relaxedValue, other.relaxedValue)
	s.exact = s.exact && other.exact
	if !s.exact {
		s.parents = refs
	}
}

// exactRefs returns the exact nodes s stands for: s itself if it is exact, its exact parents otherwise.
func (s *State) exactRefs() []nodeRef {
	if s.exact {
		if s.ref == noRef {
			return nil
		}
		return []nodeRef{s.ref}
	}
	return s.parents
}

// unionRefs returns the sorted union of two sorted slices, without modifying them.
func unionRefs(a, b []nodeRef) []nodeRef {
	res := make([]nodeRef, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			res = append(res, a[i])
			i++
		case a[i] > b[j]:
			res = append(res, b[j])
			j++
		default:
			res = append(res, a[i])
			i++
			j++
		}
	}
	res = append(res, a[i:]...)
	return append(res, b[j:]...)
}

// Representation returns the problem-specific part of s.
func (s *State) Representation() Representation { return s.repr }

// Value returns the value of the best known path to s.
func (s *State) Value() float64 { return s.value }

// RelaxedValue returns an upper bound on the best solution going through s.
func (s *State) RelaxedValue() float64 { return s.relaxedValue }

// SetRelaxedValue sets the upper bound of s. Values below s.Value() are raised to it.
func (s *State) SetRelaxedValue(v float64) {
	s.relaxedValue = math.Max(v, s.value)
}

// IsExact is true iff s was never merged with other states.
func (s *State) IsExact() bool { return s.exact }

// SetExact changes the exactness of s. Making s exact again forgets its exact parents.
func (s *State) SetExact(exact bool) {
	s.exact = exact
	if exact {
		s.parents = nil
	}
}

// NbExactParents returns the number of exact nodes s over-approximates.
func (s *State) NbExactParents() int { return len(s.parents) }

// LayerNumber returns the number of variables bound along the path to s.
func (s *State) LayerNumber() int { return s.layer }

// NbVars returns the total number of variables of the problem.
func (s *State) NbVars() int { return len(s.vars) }

// IsFinal is true iff all variables are bound.
func (s *State) IsFinal() bool { return s.layer == len(s.vars) }

// Variable returns the i-th variable along the path to s.
func (s *State) Variable(i int) Variable { return s.vars[i] }

// IsBound is true iff the i-th variable is bound along the path to s.
func (s *State) IsBound(i int) bool { return s.vars[i].Bound() }

// Variables returns a copy of the variables along the path to s.
func (s *State) Variables() []Variable {
	return append([]Variable(nil), s.vars...)
}

// Assignment returns the value of each variable, or -1 for unbound ones.
func (s *State) Assignment() []int {
	res := make([]int, len(s.vars))
	for i, v := range s.vars {
		res[i] = v.Value()
	}
	return res
}

// Rank returns the rank of s according to its representation.
func (s *State) Rank() float64 { return s.repr.Rank(s) }

// Equal is true iff s and other have equal representations.
func (s *State) Equal(other *State) bool {
	return other != nil && s.repr.Equal(other.repr)
}

// Hash returns the hash of the representation of s.
func (s *State) Hash() uint64 { return s.repr.Hash() }

// Compare orders states by relaxed value, then by value, then by rank.
// It returns -1, 0 or 1.
func (s *State) Compare(other *State) int {
	if c := compareFloats(s.relaxedValue, other.relaxedValue); c != 0 {
		return c
	}
	if c := compareFloats(s.value, other.value); c != 0 {
		return c
	}
	return compareFloats(s.Rank(), other.Rank())
}

func compareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (s *State) String() string {
	return fmt.Sprintf("State{layer: %d, value: %g, relaxed: %g, exact: %t, repr: %v}", s.layer, s.value, s.relaxedValue, s.exact, s.repr)
}
