package mdd

import "fmt"

// A Variable is a decision with a finite domain [0, DomainSize).
// Its identity never changes; its binding only changes through Assign.
type Variable struct {
	ID         int
	DomainSize int
	value      int
	bound      bool
}

// NewVariable returns an unbound variable.
func NewVariable(id, domainSize int) Variable {
	return Variable{ID: id, DomainSize: domainSize}
}

// NewVariables returns n unbound variables with identifiers 0 to n-1 sharing the same domain size.
func NewVariables(n, domainSize int) []Variable {
	vars := make([]Variable, n)
	for i := range vars {
		vars[i] = NewVariable(i, domainSize)
	}
	return vars
}

// Assign binds v to value.
// It fails with an *InvalidAssignmentError if value is out of v's domain or if v is already bound.
func (v *Variable) Assign(value int) error {
	if value < 0 || value >= v.DomainSize {
		return &InvalidAssignmentError{Var: v.ID, Value: value, DomainSize: v.DomainSize, Reason: "value out of domain"}
	}
	if v.bound {
		return &InvalidAssignmentError{Var: v.ID, Value: value, DomainSize: v.DomainSize, Reason: fmt.Sprintf("already bound to %d", v.value)}
	}
	v.value = value
	v.bound = true
	return nil
}

// Bound is true iff v was assigned a value.
func (v Variable) Bound() bool { return v.bound }

// Value returns the value v is bound to, or -1 if v is unbound.
func (v Variable) Value() int {
	if !v.bound {
		return -1
	}
	return v.value
}

func (v Variable) String() string {
	if !v.bound {
		return fmt.Sprintf("x%d", v.ID)
	}
	return fmt.Sprintf("x%d=%d", v.ID, v.value)
}
