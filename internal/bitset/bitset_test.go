package bitset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFull(t *testing.T) {
	for _, size := range []int{0, 1, 63, 64, 65, 130} {
		s := Full(size)
		assert.Equal(t, size, s.Count(), "size %d", size)
		assert.False(t, s.Has(size))
		assert.False(t, s.Has(-1))
	}
}

func TestAddRemove(t *testing.T) {
	s := New(70)
	s.Add(0)
	s.Add(69)
	s.Add(70) // out of range, ignored
	require.Equal(t, []int{0, 69}, s.Slice())
	s.Remove(0)
	assert.False(t, s.Has(0))
	assert.Equal(t, "{69}", s.String())
}

func TestCloneIsIndependent(t *testing.T) {
	s := Full(10)
	c := s.Clone()
	c.Remove(3)
	assert.True(t, s.Has(3))
	assert.False(t, c.Has(3))
	assert.False(t, s.Equal(c))
}

func TestOrAnd(t *testing.T) {
	a, b := New(8), New(8)
	a.Add(1)
	a.Add(2)
	b.Add(2)
	b.Add(5)
	u := a.Clone()
	u.Or(b)
	assert.Equal(t, []int{1, 2, 5}, u.Slice())
	i := a.Clone()
	i.And(b)
	assert.Equal(t, []int{2}, i.Slice())
}

func TestHashConsistentWithEqual(t *testing.T) {
	a := Full(100)
	b := New(100)
	for i := 0; i < 100; i++ {
		b.Add(i)
	}
	require.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())
	b.Remove(42)
	assert.NotEqual(t, a.Hash(), b.Hash())
	assert.False(t, New(3).Equal(New(4)))
}
