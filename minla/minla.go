// Package minla describes the minimum linear arrangement problem as an mdd.Problem.
//
// Vertices of a weighted graph must be placed on distinct positions 0 to n-1 so that the sum,
// over all edges, of the weight times the distance between endpoints is minimal.
// Variable i is the vertex placed at position i. Since diagrams are maximized,
// the value of a state is the opposite of the cost of its partial arrangement.
//
// The cost is computed incrementally: placing a vertex adds the weight of every edge between a
// placed vertex and a free one, as each of these edges spans one more position.
package minla

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/crillab/gophermdd/internal/bitset"
	"github.com/crillab/gophermdd/mdd"
)

// An Edge links two vertices, numbered from 0.
type Edge struct {
	U, V   int
	Weight float64
}

type neighbour struct {
	v int
	w float64
}

// A Problem is an instance of the minimum linear arrangement problem.
type Problem struct {
	adj      [][]neighbour
	edges    []Edge
	root     *mdd.State
	expected float64
	known    bool
}

// New returns the problem of arranging n vertices linked by the given edges.
// Weights must be positive; parallel edges add their weights.
func New(n int, edges []Edge) (*Problem, error) {
	if n < 0 {
		return nil, errors.Errorf("negative number of vertices %d", n)
	}
	weights := make(map[[2]int]float64)
	var keys [][2]int
	for _, e := range edges {
		if e.U < 0 || e.U >= n || e.V < 0 || e.V >= n {
			return nil, errors.Errorf("edge %d-%d out of range [0, %d)", e.U, e.V, n)
		}
		if e.U == e.V {
			return nil, errors.Errorf("self loop on vertex %d", e.U)
		}
		if e.Weight <= 0 {
			return nil, errors.Errorf("edge %d-%d has non positive weight %g", e.U, e.V, e.Weight)
		}
		key := [2]int{e.U, e.V}
		if e.V < e.U {
			key = [2]int{e.V, e.U}
		}
		if _, ok := weights[key]; !ok {
			keys = append(keys, key)
		}
		weights[key] += e.Weight
	}
	pb := &Problem{adj: make([][]neighbour, n)}
	for _, key := range keys {
		w := weights[key]
		pb.adj[key[0]] = append(pb.adj[key[0]], neighbour{key[1], w})
		pb.adj[key[1]] = append(pb.adj[key[1]], neighbour{key[0], w})
		pb.edges = append(pb.edges, Edge{U: key[0], V: key[1], Weight: w})
	}
	pb.root = mdd.NewState(placement{free: bitset.Full(n)}, mdd.NewVariables(n, n), 0)
	return pb, nil
}

// Root implements mdd.Problem: no vertex is placed.
func (pb *Problem) Root() *mdd.State { return pb.root }

// NbVars implements mdd.Problem.
func (pb *Problem) NbVars() int { return len(pb.adj) }

// Edges returns the edges of the graph, parallel edges being merged. The slice must not be modified.
func (pb *Problem) Edges() []Edge { return pb.edges }

// Expected returns the opposite of the optimal cost announced by the instance, if any.
func (pb *Problem) Expected() (float64, bool) { return pb.expected, pb.known }

// Cost returns the cost of placing vertex order[i] at position i.
func (pb *Problem) Cost(order []int) float64 {
	pos := make([]int, len(order))
	for i, u := range order {
		pos[u] = i
	}
	cost := 0.0
	for _, e := range pb.edges {
		d := pos[e.U] - pos[e.V]
		if d < 0 {
			d = -d
		}
		cost += e.Weight * float64(d)
	}
	return cost
}

// VariableSelector returns the branching heuristic suited to pb:
// positions must be filled in order for costs to be right.
func (pb *Problem) VariableSelector() mdd.VariableSelector { return mdd.SimpleVariableSelector{} }

// cut returns the weight of the edges between free vertices and the other ones.
func (pb *Problem) cut(free *bitset.Set) float64 {
	cut := 0.0
	free.Each(func(u int) {
		for _, n := range pb.adj[u] {
			if !free.Has(n.v) {
				cut += n.w
			}
		}
	})
	return cut
}

// Successors implements mdd.Problem: any free vertex can be placed at position v.
func (pb *Problem) Successors(s *mdd.State, v mdd.Variable) ([]*mdd.State, error) {
	p := s.Representation().(placement)
	succs := make([]*mdd.State, 0, p.free.Count())
	var err error
	p.free.Each(func(u int) {
		if err != nil {
			return
		}
		free := p.free.Clone()
		free.Remove(u)
		value := s.Value()
		if !p.relaxed {
			value -= pb.cut(free)
		}
		var succ *mdd.State
		succ, err = s.Successor(placement{free: free, relaxed: p.relaxed}, value, v.ID, u)
		succs = append(succs, succ)
	})
	if err != nil {
		return nil, err
	}
	return succs, nil
}

// Merge implements mdd.Problem.
// A vertex is free in the merged state if it is free in one of the states, and placing
// vertices below a merged state costs nothing: its completions can only be better than
// the actual ones.
func (pb *Problem) Merge(states []*mdd.State) *mdd.State {
	var (
		free *bitset.Set
		best *mdd.State
	)
	for _, s := range states {
		p := s.Representation().(placement)
		if free == nil {
			free = p.free.Clone()
		} else {
			free.Or(p.free)
		}
		if best == nil || s.Value() > best.Value() {
			best = s
		}
	}
	merged := mdd.NewState(placement{free: free, relaxed: true}, best.Variables(), best.Value())
	merged.SetExact(false)
	return merged
}

// placement is the set of vertices that are not placed yet.
// Once relaxed, the set may hold more vertices than there are free positions.
type placement struct {
	free    *bitset.Set
	relaxed bool
}

func (p placement) Equal(other mdd.Representation) bool {
	o, ok := other.(placement)
	return ok && p.relaxed == o.relaxed && p.free.Equal(o.free)
}

func (p placement) Hash() uint64 {
	h := p.free.Hash()
	if p.relaxed {
		h = ^h
	}
	return h
}

func (p placement) Rank(s *mdd.State) float64 { return s.Value() }

func (p placement) Copy() mdd.Representation {
	return placement{free: p.free.Clone(), relaxed: p.relaxed}
}

func (p placement) String() string {
	if p.relaxed {
		return fmt.Sprintf("relaxed%v", p.free)
	}
	return fmt.Sprintf("free%v", p.free)
}
