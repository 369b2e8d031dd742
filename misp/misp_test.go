package misp

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crillab/gophermdd/mdd"
)

func weighted(t *testing.T) *Problem {
	pb, err := New([]float64{3, 4, 2, 2, 7}, []Edge{{0, 1}, {0, 2}, {1, 2}, {1, 3}, {2, 3}, {3, 4}})
	require.NoError(t, err)
	return pb
}

func TestNewInvalid(t *testing.T) {
	_, err := New([]float64{1, 1}, []Edge{{0, 2}})
	assert.Error(t, err)
	_, err = New([]float64{1, 1}, []Edge{{1, 1}})
	assert.Error(t, err)
	_, err = NewFromGraph([]float64{1}, [][]int{{0}, {}})
	assert.Error(t, err)
}

func TestSuccessors(t *testing.T) {
	pb := weighted(t)
	root := pb.Root()
	for u := 0; u < 5; u++ {
		assert.True(t, IsFree(root, u))
	}

	succs, err := pb.Successors(root, root.Variable(1))
	require.NoError(t, err)
	require.Len(t, succs, 2)
	out, in := succs[0], succs[1]
	assert.Equal(t, 0, out.Variable(1).Value())
	assert.Equal(t, 0.0, out.Value())
	assert.Equal(t, 1, in.Variable(1).Value())
	assert.Equal(t, 4.0, in.Value())
	for u, free := range []bool{true, false, true, true, true} {
		assert.Equal(t, free, IsFree(out, u), "vertex %d after leaving 1 out", u)
	}
	for u, free := range []bool{false, false, false, false, true} {
		assert.Equal(t, free, IsFree(in, u), "vertex %d after taking 1", u)
	}

	// Vertex 0 is no longer free once 1 is taken: it can only be left out.
	succs, err = pb.Successors(in, in.Variable(0))
	require.NoError(t, err)
	require.Len(t, succs, 1)
	assert.Equal(t, 0, succs[0].Variable(0).Value())
	assert.Equal(t, 4.0, succs[0].Value())
}

func TestMerge(t *testing.T) {
	pb := weighted(t)
	root := pb.Root()
	succs, err := pb.Successors(root, root.Variable(3))
	require.NoError(t, err)
	merged := pb.Merge(succs)
	assert.False(t, merged.IsExact())
	assert.Equal(t, 2.0, merged.Value())
	assert.Equal(t, 1, merged.Variable(3).Value(), "merged state follows the best path")
	for u, free := range []bool{true, true, true, false, true} {
		assert.Equal(t, free, IsFree(merged, u), "vertex %d", u)
	}
}

func TestMinFreeVariableSelector(t *testing.T) {
	pb := weighted(t)
	root := pb.Root()
	layer := mdd.NewLayer(0)
	layer.Add(root)
	v, ok := MinFreeVariableSelector{}.Select(root.Variables(), layer)
	require.True(t, ok)
	assert.Equal(t, 0, v.ID, "ties go to the lowest vertex")

	succs, err := pb.Successors(root, root.Variable(3))
	require.NoError(t, err)
	layer = mdd.NewLayer(1)
	for _, s := range succs {
		layer.Add(s)
	}
	// Vertices 1, 2 and 4 are free only when 3 is left out.
	v, ok = MinFreeVariableSelector{}.Select(succs[0].Variables(), layer)
	require.True(t, ok)
	assert.Equal(t, 1, v.ID)
}

func TestExactCompilation(t *testing.T) {
	pb := weighted(t)
	d, err := mdd.NewCompiler(pb, mdd.WithVariableSelector(MinFreeVariableSelector{})).Exact(context.Background(), pb.Root())
	require.NoError(t, err)
	require.True(t, d.Exact)
	assert.Equal(t, 11.0, d.Best.Value())
	assert.Equal(t, []int{0, 1, 0, 0, 1}, d.Best.Assignment())
}

func TestParseDIMACS(t *testing.T) {
	f, err := os.Open("testdata/small.clq")
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	pb, err := ParseDIMACS(f)
	require.NoError(t, err)
	assert.Equal(t, 5, pb.NbVars())
	expected, ok := pb.Expected()
	require.True(t, ok)
	assert.Equal(t, 3.0, expected)
	// In the complement graph, 1 (vertex 2 in the file) is only linked to 3 and 4.
	assert.Equal(t, []int{3, 4}, pb.Neighbours(1))
	assert.Equal(t, 1.0, pb.Weight(4))

	d, err := mdd.NewCompiler(pb).Exact(context.Background(), pb.Root())
	require.NoError(t, err)
	assert.Equal(t, 3.0, d.Best.Value())
}

func TestParseDIMACSJohnson(t *testing.T) {
	f, err := os.Open("testdata/johnson8-2-4.clq")
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	pb, err := ParseDIMACS(f)
	require.NoError(t, err)
	assert.Equal(t, 28, pb.NbVars())
	// Each pair of {1..8} shares an element with 12 other pairs.
	for u := 0; u < pb.NbVars(); u++ {
		assert.Len(t, pb.Neighbours(u), 12)
	}
}

func TestParseDIMACSInvalid(t *testing.T) {
	for name, content := range map[string]string{
		"no header":        "c nothing\n",
		"edge before p":    "e 1 2\np edge 2 1\n",
		"vertex too big":   "p edge 2 1\ne 1 3\n",
		"wrong edge count": "p edge 3 2\ne 1 2\n",
		"bad header":       "p edge two 1\n",
		"unknown format":   "p cnf 2 1\n",
		"bad optimum":      "c opt many\np edge 1 0\n",
		"garbage":          "p edge 2 1\nx 1 2\n",
	} {
		_, err := ParseDIMACS(strings.NewReader(content))
		assert.Error(t, err, name)
	}
}

func TestParseDIMACSNoOptimum(t *testing.T) {
	pb, err := ParseDIMACS(strings.NewReader("p edge 3 1\ne 1 2"))
	require.NoError(t, err)
	_, ok := pb.Expected()
	assert.False(t, ok)
	assert.Equal(t, []int{2}, pb.Neighbours(0))
	assert.Equal(t, []int{0, 1}, pb.Neighbours(2))
}
