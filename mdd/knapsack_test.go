package mdd

import (
	"fmt"
	"math/rand"
)

// knapsack is a 0/1 knapsack problem: a state is the remaining capacity.
type knapsack struct {
	weights  []int
	profits  []float64
	capacity int
}

type capacity int

func (c capacity) Equal(other Representation) bool {
	o, ok := other.(capacity)
	return ok && c == o
}

func (c capacity) Hash() uint64               { return uint64(c) }
func (c capacity) Rank(s *State) float64      { return s.Value() }
func (c capacity) Copy() Representation       { return c }
func (c capacity) String() string             { return fmt.Sprintf("cap=%d", int(c)) }
func (k *knapsack) NbVars() int               { return len(k.weights) }
func (k *knapsack) Root() *State              { return NewState(capacity(k.capacity), NewVariables(len(k.weights), 2), 0) }
func (k *knapsack) remaining(s *State) int    { return int(s.Representation().(capacity)) }
func (k *knapsack) fits(s *State, i int) bool { return k.weights[i] <= k.remaining(s) }

func (k *knapsack) Successors(s *State, v Variable) ([]*State, error) {
	left := k.remaining(s)
	out, err := s.Successor(capacity(left), s.Value(), v.ID, 0)
	if err != nil {
		return nil, err
	}
	if !k.fits(s, v.ID) {
		return []*State{out}, nil
	}
	in, err := s.Successor(capacity(left-k.weights[v.ID]), s.Value()+k.profits[v.ID], v.ID, 1)
	if err != nil {
		return nil, err
	}
	return []*State{out, in}, nil
}

// Merge keeps the largest capacity: every completion of a merged state stays possible.
func (k *knapsack) Merge(states []*State) *State {
	best := states[0]
	left := 0
	for _, s := range states {
		if k.remaining(s) > left {
			left = k.remaining(s)
		}
		if s.Value() > best.Value() {
			best = s
		}
	}
	merged := NewState(capacity(left), best.Variables(), best.Value())
	merged.SetExact(false)
	return merged
}

// bruteForce returns the optimal profit of the completions of assignment.
// A negative value in assignment means the variable is free.
func (k *knapsack) bruteForce(assignment []int) float64 {
	var free []int
	load, profit := 0, 0.0
	for i, val := range assignment {
		switch val {
		case 1:
			load += k.weights[i]
			profit += k.profits[i]
		case -1:
			free = append(free, i)
		}
	}
	if load > k.capacity {
		return -1
	}
	best := -1.0
	for mask := 0; mask < 1<<uint(len(free)); mask++ {
		l, p := load, profit
		for j, i := range free {
			if mask&(1<<uint(j)) != 0 {
				l += k.weights[i]
				p += k.profits[i]
			}
		}
		if l <= k.capacity && p > best {
			best = p
		}
	}
	return best
}

func (k *knapsack) optimum() float64 {
	free := make([]int, len(k.weights))
	for i := range free {
		free[i] = -1
	}
	return k.bruteForce(free)
}

func randomKnapsack(r *rand.Rand, n int) *knapsack {
	k := &knapsack{weights: make([]int, n), profits: make([]float64, n)}
	total := 0
	for i := 0; i < n; i++ {
		k.weights[i] = 1 + r.Intn(20)
		k.profits[i] = float64(1 + r.Intn(30))
		total += k.weights[i]
	}
	k.capacity = total / 2
	return k
}
