package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crillab/gophermdd/mdd"
)

// label is a representation that only identifies a state.
type label int

func (l label) Equal(other mdd.Representation) bool {
	o, ok := other.(label)
	return ok && l == o
}

func (l label) Hash() uint64              { return uint64(l) }
func (l label) Rank(s *mdd.State) float64 { return s.Value() }
func (l label) Copy() mdd.Representation  { return l }

func labelled(id int, value, bound float64) *mdd.State {
	s := mdd.NewState(label(id), mdd.NewVariables(2, 2), value)
	s.SetRelaxedValue(bound)
	return s
}

func drain(q *frontier) []int {
	var ids []int
	for !q.empty() {
		ids = append(ids, int(q.pop().Representation().(label)))
	}
	return ids
}

func TestFrontierLeastPromisingFirst(t *testing.T) {
	q := newFrontier(LeastPromisingFirst)
	q.push(labelled(0, 0, 3))
	q.push(labelled(1, 0, 1))
	q.push(labelled(2, 0, 2))
	q.push(labelled(3, 0, 1))
	q.push(labelled(4, 1, 1))
	require.Equal(t, 5, q.len())
	assert.Equal(t, []int{1, 3, 4, 2, 0}, drain(q))
}

func TestFrontierMostPromisingFirst(t *testing.T) {
	q := newFrontier(MostPromisingFirst)
	q.push(labelled(0, 0, 3))
	q.push(labelled(1, 0, 1))
	q.push(labelled(2, 0, 2))
	q.push(labelled(3, 0, 1))
	q.push(labelled(4, 1, 1))
	assert.Equal(t, []int{0, 2, 4, 1, 3}, drain(q))
}

func TestFrontierManyEqual(t *testing.T) {
	q := newFrontier(LeastPromisingFirst)
	for i := 0; i < 100; i++ {
		q.push(labelled(i, 0, 0))
	}
	ids := drain(q)
	for i, id := range ids {
		assert.Equal(t, i, id, "equal states must be popped in insertion order")
	}
}

func TestParseFrontierOrder(t *testing.T) {
	for _, order := range []FrontierOrder{LeastPromisingFirst, MostPromisingFirst} {
		parsed, err := ParseFrontierOrder(order.String())
		require.NoError(t, err)
		assert.Equal(t, order, parsed)
	}
	_, err := ParseFrontierOrder("random")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
