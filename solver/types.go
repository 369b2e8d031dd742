package solver

import (
	"fmt"
	"strings"

	"github.com/crillab/gophermdd/mdd"
)

// Status is the outcome of a search.
type Status byte

const (
	// Indeterminate means the budget was exhausted before any solution was found.
	Indeterminate = Status(iota)
	// Feasible means a solution was found, but the budget was exhausted before it was proven optimal.
	Feasible
	// Optimal means the search completed: the solution is a global optimum.
	Optimal
	// Infeasible means the search completed without finding any solution.
	Infeasible
)

func (s Status) String() string {
	switch s {
	case Indeterminate:
		return "INDETERMINATE"
	case Feasible:
		return "FEASIBLE"
	case Optimal:
		return "OPTIMAL"
	case Infeasible:
		return "INFEASIBLE"
	default:
		panic("invalid status")
	}
}

// Stats are statistics about the search.
// They are provided for information purpose only.
type Stats struct {
	NbIterations   int // How many states were popped from the frontier
	NbPruned       int // How many popped states could not improve the incumbent
	NbRestricted   int // How many restricted diagrams were compiled
	NbRelaxed      int // How many relaxed diagrams were compiled
	NbCutsetStates int // How many states were pushed back in the frontier
	NbImprovements int // How many times the incumbent was improved
	MaxFrontier    int // Largest size of the frontier
}

// A Result is the best solution found by a search.
// Best is nil iff the status is Indeterminate or Infeasible.
type Result struct {
	Status     Status
	Best       *mdd.State
	Value      float64 // Objective value of Best
	Assignment []int   // Value of each variable in Best
	Stats      Stats
}

func (r Result) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "s %v\n", r.Status)
	if r.Best == nil {
		return sb.String()
	}
	fmt.Fprintf(&sb, "o %g\n", r.Value)
	sb.WriteString("v")
	for i, val := range r.Assignment {
		fmt.Fprintf(&sb, " x%d=%d", i, val)
	}
	sb.WriteString("\n")
	return sb.String()
}
