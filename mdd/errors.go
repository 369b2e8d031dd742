package mdd

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidAssignment is matched by every *InvalidAssignmentError.
	ErrInvalidAssignment = errors.New("invalid assignment")
	// ErrInvalidSelection means a heuristic broke its contract, e.g. by selecting a bound variable.
	ErrInvalidSelection = errors.New("invalid selection")
	// ErrInvalidSuccessor means a Problem returned a successor that does not bind exactly one more variable.
	ErrInvalidSuccessor = errors.New("invalid successor")
)

// An InvalidAssignmentError is returned when a variable is bound to a value outside of its domain,
// or when it is bound twice along the same path.
// It always denotes a defect in a Problem's successor function, so callers should not try to recover from it.
type InvalidAssignmentError struct {
	Var        int    // Identifier of the offending variable
	Value      int    // Value that was being assigned
	DomainSize int    // Size of the variable's domain, or 0 if the variable does not exist
	Reason     string // Why the assignment was refused
	State      string // Description of the state being extended, if known
}

func (e *InvalidAssignmentError) Error() string {
	msg := fmt.Sprintf("cannot assign %d to variable %d (domain size %d): %s", e.Value, e.Var, e.DomainSize, e.Reason)
	if e.State != "" {
		msg += " in " + e.State
	}
	return msg
}

// Is makes errors.Is(err, ErrInvalidAssignment) true for all invalid assignments.
func (e *InvalidAssignmentError) Is(target error) bool {
	return target == ErrInvalidAssignment
}
