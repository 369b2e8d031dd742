package mdd

// An arena stores every node created during one compilation.
// Exact parents are indices in it, so they stay valid after their layer was discarded.
type arena struct {
	nodes []*State
}

func (a *arena) register(s *State) {
	s.ref = nodeRef(len(a.nodes))
	a.nodes = append(a.nodes, s)
}

func (a *arena) resolve(refs []nodeRef) []*State {
	res := make([]*State, len(refs))
	for i, r := range refs {
		res[i] = a.nodes[r]
	}
	return res
}

// A Layer is the set of states at a given depth of a diagram.
// States with equal representations are the same node: adding one unites them.
// Iteration order is the insertion order.
type Layer struct {
	depth  int
	states []*State
	index  map[uint64][]int // For each hash, positions in states
	arena  *arena
}

// NewLayer returns an empty layer at the given depth.
func NewLayer(depth int) *Layer {
	return &Layer{depth: depth, index: make(map[uint64][]int)}
}

func newArenaLayer(depth int, a *arena) *Layer {
	l := NewLayer(depth)
	l.arena = a
	return l
}

// Depth returns the number of bound variables of the states of l.
func (l *Layer) Depth() int { return l.depth }

// Width returns the number of states in l.
func (l *Layer) Width() int { return len(l.states) }

// States returns the states of l in insertion order.
// The slice must not be modified.
func (l *Layer) States() []*State { return l.states }

func (l *Layer) lookup(s *State) int {
	for _, pos := range l.index[s.Hash()] {
		if l.states[pos].Equal(s) {
			return pos
		}
	}
	return -1
}

// Contains is true iff l holds a state equal to s.
func (l *Layer) Contains(s *State) bool {
	return l.lookup(s) != -1
}

// Add inserts s into l and returns the node now representing it.
// If an equal state is already there, both are united, keeping the best value.
func (l *Layer) Add(s *State) *State {
	pos := l.lookup(s)
	if pos == -1 {
		h := s.Hash()
		l.index[h] = append(l.index[h], len(l.states))
		l.states = append(l.states, s)
		return s
	}
	existing := l.states[pos]
	if existing.exact && !s.exact && l.arena != nil {
		// existing's exact paths are absorbed: it stays in the arena as is, and a fresh node replaces it.
		united := *existing
		united.exact = false
		united.parents = existing.exactRefs()
		l.arena.register(&united)
		l.states[pos] = &united
		existing = &united
	}
	existing.Update(s)
	return existing
}

// Remove removes the given states from l.
func (l *Layer) Remove(states ...*State) {
	if len(states) == 0 {
		return
	}
	removed := make(map[*State]bool, len(states))
	for _, s := range states {
		removed[s] = true
	}
	kept := l.states[:0]
	for _, s := range l.states {
		if !removed[s] {
			kept = append(kept, s)
		}
	}
	for i := len(kept); i < len(l.states); i++ {
		l.states[i] = nil
	}
	l.states = kept
	l.reindex()
}

func (l *Layer) reindex() {
	l.index = make(map[uint64][]int, len(l.states))
	for i, s := range l.states {
		h := s.Hash()
		l.index[h] = append(l.index[h], i)
	}
}

// Best returns the state of l with the highest value, or nil if l is empty.
// Ties are broken by insertion order.
func (l *Layer) Best() *State {
	var best *State
	for _, s := range l.states {
		if best == nil || s.value > best.value {
			best = s
		}
	}
	return best
}
