package misp

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParseDIMACS parses a graph in DIMACS edge format and returns the maximum clique problem
// on it, expressed as an unweighted independent set problem on the complement graph.
// A comment line "c opt <v>" records the expected optimum.
func ParseDIMACS(f io.Reader) (*Problem, error) {
	r := bufio.NewReader(f)
	var (
		nbVertices = -1
		nbEdges    int
		edges      [][2]int
		expected   float64
		known      bool
		lineNb     int
	)
	for {
		line, err := r.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, errors.Wrap(err, "could not read DIMACS graph")
		}
		lineNb++
		fields := strings.Fields(line)
		if len(fields) > 0 {
			switch fields[0] {
			case "c":
				if len(fields) > 2 && fields[1] == "opt" {
					expected, err = strconv.ParseFloat(fields[2], 64)
					if err != nil {
						return nil, errors.Wrapf(err, "line %d: invalid optimum %q", lineNb, fields[2])
					}
					known = true
				}
			case "p":
				if nbVertices != -1 {
					return nil, errors.Errorf("line %d: duplicate header", lineNb)
				}
				nbVertices, nbEdges, err = parseHeader(fields)
				if err != nil {
					return nil, errors.Wrapf(err, "line %d: cannot parse DIMACS header", lineNb)
				}
				edges = make([][2]int, 0, nbEdges)
			case "e":
				if nbVertices == -1 {
					return nil, errors.Errorf("line %d: edge before header", lineNb)
				}
				u, v, err := parseEdge(fields, nbVertices)
				if err != nil {
					return nil, errors.Wrapf(err, "line %d", lineNb)
				}
				edges = append(edges, [2]int{u, v})
			default:
				return nil, errors.Errorf("line %d: unexpected line %q", lineNb, strings.TrimSpace(line))
			}
		}
		if err == io.EOF {
			break
		}
	}
	if nbVertices == -1 {
		return nil, errors.New("no DIMACS header found")
	}
	if len(edges) != nbEdges {
		return nil, errors.Errorf("header announced %d edges, found %d", nbEdges, len(edges))
	}
	pb, err := NewFromGraph(unitWeights(nbVertices), complement(nbVertices, edges))
	if err != nil {
		return nil, err
	}
	pb.expected, pb.known = expected, known
	return pb, nil
}

func parseHeader(fields []string) (nbVertices, nbEdges int, err error) {
	if len(fields) != 4 {
		return 0, 0, errors.Errorf("invalid syntax %q in header", strings.Join(fields, " "))
	}
	if fields[1] != "edge" && fields[1] != "col" {
		return 0, 0, errors.Errorf("unsupported format %q", fields[1])
	}
	nbVertices, err = strconv.Atoi(fields[2])
	if err != nil || nbVertices < 0 {
		return 0, 0, errors.Errorf("nb vertices not a natural: %q", fields[2])
	}
	nbEdges, err = strconv.Atoi(fields[3])
	if err != nil || nbEdges < 0 {
		return 0, 0, errors.Errorf("nb edges not a natural: %q", fields[3])
	}
	return nbVertices, nbEdges, nil
}

// parseEdge returns the 0-based vertices of an "e u v" line.
func parseEdge(fields []string, nbVertices int) (u, v int, err error) {
	if len(fields) != 3 {
		return 0, 0, errors.Errorf("invalid edge %q", strings.Join(fields, " "))
	}
	if u, err = strconv.Atoi(fields[1]); err != nil {
		return 0, 0, errors.Errorf("vertex not an int: %q", fields[1])
	}
	if v, err = strconv.Atoi(fields[2]); err != nil {
		return 0, 0, errors.Errorf("vertex not an int: %q", fields[2])
	}
	if u < 1 || u > nbVertices || v < 1 || v > nbVertices {
		return 0, 0, errors.Errorf("edge %d-%d out of range [1, %d]", u, v, nbVertices)
	}
	return u - 1, v - 1, nil
}

func unitWeights(n int) []float64 {
	weights := make([]float64, n)
	for i := range weights {
		weights[i] = 1
	}
	return weights
}

// complement returns the adjacency lists of the complement of the graph with the given edges.
func complement(n int, edges [][2]int) [][]int {
	linked := make([][]bool, n)
	for i := range linked {
		linked[i] = make([]bool, n)
	}
	for _, e := range edges {
		linked[e[0]][e[1]] = true
		linked[e[1]][e[0]] = true
	}
	adj := make([][]int, n)
	for u := 0; u < n; u++ {
		for v := 0; v < n; v++ {
			if u != v && !linked[u][v] {
				adj[u] = append(adj[u], v)
			}
		}
	}
	return adj
}
