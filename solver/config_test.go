package solver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crillab/gophermdd/mdd"
	"github.com/crillab/gophermdd/misp"
)

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(`
max_width: 50
timeout: 1m30s
frontier_order: most-promising-first
verbose: true
variables: simple
`))
	require.NoError(t, err)
	assert.Equal(t, Config{
		MaxWidth:      50,
		Timeout:       90 * time.Second,
		FrontierOrder: "most-promising-first",
		Verbose:       true,
		Merge:         HeuristicMinLP,
		Delete:        HeuristicMinLP,
		Variables:     HeuristicSimple,
	}, cfg)
}

func TestLoadConfigEmpty(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigInvalid(t *testing.T) {
	for name, content := range map[string]string{
		"unknown field":  "width: 3\n",
		"negative width": "max_width: -2\n",
		"bad timeout":    "timeout: soon\n",
		"bad order":      "frontier_order: random\n",
		"bad merge":      "merge: maxlp\n",
		"bad variables":  "variables: magic\n",
	} {
		_, err := LoadConfig(strings.NewReader(content))
		assert.ErrorIs(t, err, ErrInvalidConfig, name)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gophermdd.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_width: 2\n"), 0o600))
	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.MaxWidth)

	_, err = LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestWithConfig(t *testing.T) {
	pb, err := misp.New([]float64{1, 1}, nil)
	require.NoError(t, err)

	s, err := New(pb, WithConfig(Config{MaxWidth: 3, FrontierOrder: "most", Variables: HeuristicSimple}))
	require.NoError(t, err)
	assert.Equal(t, 3, s.maxWidth)
	assert.Equal(t, MostPromisingFirst, s.order)
	assert.Equal(t, mdd.SimpleVariableSelector{}, s.vars)

	s, err = New(pb, WithConfig(DefaultConfig()))
	require.NoError(t, err)
	assert.Equal(t, misp.MinFreeVariableSelector{}, s.vars, "problems may suggest their own branching heuristic")
	res, err := s.Solve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2.0, res.Value)

	_, err = New(pb, WithConfig(Config{MaxWidth: -1}))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
