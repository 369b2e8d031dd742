package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crillab/gophermdd/solver"
)

func run(t *testing.T, args ...string) (string, error) {
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSolveCommand(t *testing.T) {
	out, err := run(t, "solve", "--width", "2", "misp/testdata/small.clq")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "c solving misp/testdata/small.clq\nc expected optimum: 3\n"), out)
	assert.Contains(t, out, "s OPTIMAL\no 3\n")
}

func TestSolveCommandVerbose(t *testing.T) {
	out, err := run(t, "solve", "-v", "minla/testdata/grid2x3.gra")
	require.NoError(t, err)
	assert.Contains(t, out, "c nb iterations: ")
	assert.Contains(t, out, "s OPTIMAL\no -11\n")
}

func TestSolveCommandConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gophermdd.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_width: 1\nfrontier_order: most\n"), 0o600))
	out, err := run(t, "solve", "--config", path, "misp/testdata/small.clq")
	require.NoError(t, err)
	assert.Contains(t, out, "s OPTIMAL\no 3\n")

	require.NoError(t, os.WriteFile(path, []byte("max_width: -1\n"), 0o600))
	_, err = run(t, "solve", "--config", path, "misp/testdata/small.clq")
	assert.ErrorIs(t, err, solver.ErrInvalidConfig)
}

func TestSolveCommandErrors(t *testing.T) {
	_, err := run(t, "solve")
	assert.Error(t, err, "an instance is required")
	_, err = run(t, "solve", "instance.cnf")
	assert.Error(t, err)
	_, err = run(t, "solve", "missing.clq")
	assert.Error(t, err)
	_, err = run(t, "solve", "--log-level", "chatty", "misp/testdata/small.clq")
	assert.Error(t, err)
}

func TestBench(t *testing.T) {
	paths := []string{"misp/testdata/johnson8-2-4.clq", "minla/testdata/cycle5.gra", "misp/testdata/small.clq"}
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	lines, err := bench(context.Background(), paths, 2, solver.Config{MaxWidth: 4}, logger)
	require.NoError(t, err)
	require.Len(t, lines, 3)
	for i, line := range lines {
		fields := strings.Split(line, "\t")
		require.Len(t, fields, 4, line)
		assert.Equal(t, paths[i], fields[0])
		assert.Equal(t, "OPTIMAL", fields[1])
	}
	assert.Equal(t, "4", strings.Split(lines[0], "\t")[2])
	assert.Equal(t, "-8", strings.Split(lines[1], "\t")[2])
	assert.Equal(t, "3", strings.Split(lines[2], "\t")[2])
}

func TestBenchError(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	paths := []string{"nowhere.gra", "misp/testdata/johnson8-2-4.clq"}
	lines, err := bench(context.Background(), paths, 1, solver.DefaultConfig(), logger)
	assert.Error(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "nowhere.gra\tERROR", lines[0])
	fields := strings.Split(lines[1], "\t")
	require.Len(t, fields, 4, lines[1])
	assert.Equal(t, "OPTIMAL", fields[1], "other instances run to completion")
	assert.Equal(t, "4", fields[2])
}
