/******************************************************************************************[Heap.h]
Copyright (c) 2003-2006, Niklas Een, Niklas Sorensson
Copyright (c) 2007-2010, Niklas Sorensson

Permission is hereby granted, free of charge, to any person obtaining a copy of this software and
associated documentation files (the "Software"), to deal in the Software without restriction,
including without limitation the rights to use, copy, modify, merge, publish, distribute,
sublicense, and/or sell copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all copies or
substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR IMPLIED, INCLUDING BUT
NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM,
DAMAGES OR OTHER LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT
OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
**************************************************************************************************/

package solver

import (
	"github.com/pkg/errors"

	"github.com/crillab/gophermdd/mdd"
)

// FrontierOrder is the order in which pending states are explored.
type FrontierOrder byte

const (
	// LeastPromisingFirst pops the state with the lowest relaxed value first.
	LeastPromisingFirst = FrontierOrder(iota)
	// MostPromisingFirst pops the state with the highest relaxed value first, as in best-first search.
	MostPromisingFirst
)

func (o FrontierOrder) String() string {
	switch o {
	case LeastPromisingFirst:
		return "least-promising-first"
	case MostPromisingFirst:
		return "most-promising-first"
	default:
		panic("invalid frontier order")
	}
}

// ParseFrontierOrder returns the order with the given name.
func ParseFrontierOrder(name string) (FrontierOrder, error) {
	switch name {
	case "", "least-promising-first", "least":
		return LeastPromisingFirst, nil
	case "most-promising-first", "most", "best-first":
		return MostPromisingFirst, nil
	default:
		return 0, errors.Wrapf(ErrInvalidConfig, "unknown frontier order %q", name)
	}
}

type item struct {
	state *mdd.State
	seq   uint64 // Insertion rank, to break ties deterministically
}

// A frontier is a binary heap of pending states. This is
// strongly inspired from Minisat's mtl/Heap.h.
// States are compared with mdd.State.Compare; equal states are popped in insertion order.
type frontier struct {
	order   FrontierOrder
	content []item
	seq     uint64
}

func newFrontier(order FrontierOrder) *frontier {
	return &frontier{order: order}
}

func (q *frontier) lt(a, b item) bool {
	c := a.state.Compare(b.state)
	if c == 0 {
		return a.seq < b.seq
	}
	if q.order == MostPromisingFirst {
		return c > 0
	}
	return c < 0
}

// Traversal functions.
func left(i int) int   { return i*2 + 1 }
func right(i int) int  { return (i + 1) * 2 }
func parent(i int) int { return (i - 1) >> 1 }

func (q *frontier) percolateUp(i int) {
	x := q.content[i]
	p := parent(i)
	for i != 0 && q.lt(x, q.content[p]) {
		q.content[i] = q.content[p]
		i = p
		p = parent(p)
	}
	q.content[i] = x
}

func (q *frontier) percolateDown(i int) {
	x := q.content[i]
	for left(i) < len(q.content) {
		child := left(i)
		if right(i) < len(q.content) && q.lt(q.content[right(i)], q.content[child]) {
			child = right(i)
		}
		if !q.lt(q.content[child], x) {
			break
		}
		q.content[i] = q.content[child]
		i = child
	}
	q.content[i] = x
}

func (q *frontier) len() int    { return len(q.content) }
func (q *frontier) empty() bool { return len(q.content) == 0 }

func (q *frontier) push(s *mdd.State) {
	q.content = append(q.content, item{state: s, seq: q.seq})
	q.seq++
	q.percolateUp(len(q.content) - 1)
}

func (q *frontier) pop() *mdd.State {
	x := q.content[0]
	last := len(q.content) - 1
	q.content[0] = q.content[last]
	q.content[last] = item{}
	q.content = q.content[:last]
	if len(q.content) > 1 {
		q.percolateDown(0)
	}
	return x.state
}
