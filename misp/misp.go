// Package misp describes the maximum weighted independent set problem as an mdd.Problem.
//
// There is one binary variable per vertex: 1 means the vertex is in the set.
// A state is the set of vertices that can still be added to the set, so two partial
// solutions leaving the same vertices free have the same completions.
package misp

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/crillab/gophermdd/internal/bitset"
	"github.com/crillab/gophermdd/mdd"
)

// An Edge links two vertices, numbered from 0.
type Edge struct {
	U, V int
}

// A Problem is an instance of the maximum weighted independent set problem.
type Problem struct {
	weights  []float64
	adj      [][]int
	root     *mdd.State
	expected float64 // Optimum announced by the instance file, if any
	known    bool
}

// New returns the problem of finding an independent set of maximal weight
// in the graph with len(weights) vertices and the given edges.
func New(weights []float64, edges []Edge) (*Problem, error) {
	n := len(weights)
	adj := make([][]int, n)
	for _, e := range edges {
		if e.U < 0 || e.U >= n || e.V < 0 || e.V >= n {
			return nil, errors.Errorf("edge %d-%d out of range [0, %d)", e.U, e.V, n)
		}
		if e.U == e.V {
			return nil, errors.Errorf("self loop on vertex %d", e.U)
		}
		adj[e.U] = append(adj[e.U], e.V)
		adj[e.V] = append(adj[e.V], e.U)
	}
	return NewFromGraph(weights, adj)
}

// NewFromGraph is like New, but the graph is given as adjacency lists.
// adj[u] must hold every neighbour of u.
func NewFromGraph(weights []float64, adj [][]int) (*Problem, error) {
	n := len(weights)
	if len(adj) != n {
		return nil, errors.Errorf("%d adjacency lists for %d vertices", len(adj), n)
	}
	for u, neighbours := range adj {
		for _, v := range neighbours {
			if v < 0 || v >= n {
				return nil, errors.Errorf("neighbour %d of vertex %d out of range [0, %d)", v, u, n)
			}
		}
	}
	pb := &Problem{weights: weights, adj: adj}
	pb.root = mdd.NewState(freeSet{bitset.Full(n)}, mdd.NewVariables(n, 2), 0)
	return pb, nil
}

// Root implements mdd.Problem: every vertex is free.
func (pb *Problem) Root() *mdd.State { return pb.root }

// NbVars implements mdd.Problem.
func (pb *Problem) NbVars() int { return len(pb.weights) }

// Weight returns the weight of vertex u.
func (pb *Problem) Weight(u int) float64 { return pb.weights[u] }

// Neighbours returns the neighbours of vertex u. The slice must not be modified.
func (pb *Problem) Neighbours(u int) []int { return pb.adj[u] }

// Expected returns the optimum announced by the instance, if any.
func (pb *Problem) Expected() (float64, bool) { return pb.expected, pb.known }

// Successors implements mdd.Problem.
// Leaving u out is always possible; taking it is possible only if it is still free,
// and makes its neighbours unavailable.
func (pb *Problem) Successors(s *mdd.State, v mdd.Variable) ([]*mdd.State, error) {
	u := v.ID
	free := s.Representation().(freeSet).set

	out := free.Clone()
	out.Remove(u)
	dontTake, err := s.Successor(freeSet{out}, s.Value(), u, 0)
	if err != nil {
		return nil, err
	}
	if !free.Has(u) {
		return []*mdd.State{dontTake}, nil
	}

	in := out.Clone()
	for _, w := range pb.adj[u] {
		in.Remove(w)
	}
	take, err := s.Successor(freeSet{in}, s.Value()+pb.weights[u], u, 1)
	if err != nil {
		return nil, err
	}
	return []*mdd.State{dontTake, take}, nil
}

// Merge implements mdd.Problem: a vertex is free in the merged state if it is free in one of the states.
// The merged state keeps the variables of the best state.
func (pb *Problem) Merge(states []*mdd.State) *mdd.State {
	var (
		free *bitset.Set
		best *mdd.State
	)
	for _, s := range states {
		set := s.Representation().(freeSet).set
		if free == nil {
			free = set.Clone()
		} else {
			free.Or(set)
		}
		if best == nil || s.Value() > best.Value() {
			best = s
		}
	}
	merged := mdd.NewState(freeSet{free}, best.Variables(), best.Value())
	merged.SetExact(false)
	return merged
}

// freeSet is the set of vertices that can still join the independent set.
type freeSet struct {
	set *bitset.Set
}

func (f freeSet) Equal(other mdd.Representation) bool {
	o, ok := other.(freeSet)
	return ok && f.set.Equal(o.set)
}

func (f freeSet) Hash() uint64 { return f.set.Hash() }

// Rank is the value of the state: states with heavy sets are kept precise.
func (f freeSet) Rank(s *mdd.State) float64 { return s.Value() }

func (f freeSet) Copy() mdd.Representation { return freeSet{f.set.Clone()} }

func (f freeSet) String() string { return fmt.Sprintf("free%v", f.set) }

// IsFree is true iff vertex u can still be added to the set of s.
func IsFree(s *mdd.State, u int) bool {
	f, ok := s.Representation().(freeSet)
	return ok && f.set.Has(u)
}
