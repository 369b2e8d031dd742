package minla

import (
	"bufio"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// words reads whitespace-separated integers.
type words struct {
	sc  *bufio.Scanner
	pos int // Number of words read so far
}

func (w *words) next() (string, error) {
	if !w.sc.Scan() {
		if err := w.sc.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	w.pos++
	return w.sc.Text(), nil
}

func (w *words) readInt(what string) (int, error) {
	tok, err := w.next()
	if err != nil {
		return 0, errors.Wrapf(err, "could not read %s", what)
	}
	val, err := strconv.Atoi(tok)
	if err != nil {
		return 0, errors.Errorf("%s not an int at word %d: %q", what, w.pos, tok)
	}
	return val, nil
}

// ParseGra parses a graph in the .gra format: an optional "opt <cost>" header,
// the number of vertices and of edges, the degree of each vertex, then the neighbours of each vertex.
// Every edge has weight 1, even if it appears in both adjacency lists.
func ParseGra(f io.Reader) (*Problem, error) {
	sc := bufio.NewScanner(f)
	sc.Split(bufio.ScanWords)
	w := &words{sc: sc}
	var (
		opt   float64
		known bool
	)
	first, err := w.next()
	if err != nil {
		return nil, errors.Wrap(err, "could not read .gra header")
	}
	if first == "opt" {
		tok, err := w.next()
		if err != nil {
			return nil, errors.Wrap(err, "could not read optimum")
		}
		if opt, err = strconv.ParseFloat(tok, 64); err != nil {
			return nil, errors.Errorf("optimum not a number: %q", tok)
		}
		known = true
		if first, err = w.next(); err != nil {
			return nil, errors.Wrap(err, "could not read number of vertices")
		}
	}
	n, err := strconv.Atoi(first)
	if err != nil || n < 0 {
		return nil, errors.Errorf("nb vertices not a natural: %q", first)
	}
	m, err := w.readInt("nb edges")
	if err != nil {
		return nil, err
	}
	deg := make([]int, n)
	total := 0
	for i := range deg {
		if deg[i], err = w.readInt("degree"); err != nil {
			return nil, err
		}
		if deg[i] < 0 {
			return nil, errors.Errorf("negative degree %d for vertex %d", deg[i], i)
		}
		total += deg[i]
	}
	if total != 2*m {
		return nil, errors.Errorf("degrees sum to %d, expected %d for %d edges", total, 2*m, m)
	}
	var edges []Edge
	seen := make(map[[2]int]bool, m)
	for u := 0; u < n; u++ {
		for k := 0; k < deg[u]; k++ {
			v, err := w.readInt("neighbour")
			if err != nil {
				return nil, err
			}
			key := [2]int{u, v}
			if v < u {
				key = [2]int{v, u}
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			edges = append(edges, Edge{U: u, V: v, Weight: 1})
		}
	}
	pb, err := New(n, edges)
	if err != nil {
		return nil, errors.Wrap(err, "invalid .gra graph")
	}
	pb.expected, pb.known = -opt, known
	return pb, nil
}
