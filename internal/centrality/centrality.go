// Package centrality computes exact, normalized betweenness centrality on
// undirected graphs. The reference method enumerates every shortest path of
// every vertex pair; Brandes' dependency accumulation is provided as a faster
// method that yields the same scores.
package centrality

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/papapumpkin/pivot/internal/graph"
	"github.com/papapumpkin/pivot/internal/paths"
)

// ErrPrecondition is returned when the graph has fewer than three vertices,
// for which the normalization factor (n-1)(n-2) is zero.
var ErrPrecondition = errors.New("betweenness centrality needs at least 3 vertices")

// ErrDisconnected is returned when some vertex pair has no connecting path.
// Such a pair is never counted as a zero contribution.
var ErrDisconnected = errors.New("graph is disconnected")

// Method selects the algorithm used to score vertices.
type Method string

// Supported scoring methods.
const (
	MethodEnumerate Method = "enumerate" // full shortest-path enumeration per pair
	MethodBrandes   Method = "brandes"   // Brandes dependency accumulation
)

// ParseMethod converts a configuration string into a Method.
func ParseMethod(s string) (Method, error) {
	switch m := Method(s); m {
	case MethodEnumerate, MethodBrandes:
		return m, nil
	default:
		return "", fmt.Errorf("unknown centrality method %q (want %q or %q)", s, MethodEnumerate, MethodBrandes)
	}
}

// Options configures a Calculator.
type Options struct {
	// Workers bounds how many vertex pairs are evaluated concurrently.
	// Values below 2 evaluate pairs sequentially.
	Workers int

	// MaxPaths is forwarded to the path enumerator as its arena budget.
	MaxPaths int
}

// pair is an unordered vertex pair {I, J}.
type pair struct {
	I, J graph.Vertex
}

// Calculator scores vertices of one graph. It is safe for concurrent use.
type Calculator struct {
	g    *graph.Graph
	enum *paths.Enumerator
	opts Options
}

// NewCalculator returns a Calculator over g.
func NewCalculator(g *graph.Graph, opts Options) *Calculator {
	return &Calculator{
		g:    g,
		enum: paths.NewEnumerator(g, paths.Options{MaxPaths: opts.MaxPaths}),
		opts: opts,
	}
}

// Enumerator returns the path enumerator backing the calculator.
func (c *Calculator) Enumerator() *paths.Enumerator {
	return c.enum
}

// Centrality returns the normalized betweenness centrality of v:
//
//	C(v) = 2 * S / ((n-1)(n-2)),  S = sum over pairs {i,j}, i,j != v, of through/total
//
// where total counts the shortest i-j paths and through counts those that
// contain v. Per-pair fractions are summed in a fixed pair order, so the
// score does not depend on Workers.
func (c *Calculator) Centrality(ctx context.Context, v graph.Vertex) (float64, error) {
	if !c.g.Has(v) {
		return 0, fmt.Errorf("%w: %d", graph.ErrUnknownVertex, v)
	}
	n := c.g.Len()
	if n < 3 {
		return 0, fmt.Errorf("%w: have %d", ErrPrecondition, n)
	}

	pairs := c.pairsExcluding(v)
	fractions := make([]float64, len(pairs))

	if c.opts.Workers < 2 {
		for k, p := range pairs {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
			f, err := c.fraction(p, v)
			if err != nil {
				return 0, err
			}
			fractions[k] = f
		}
	} else {
		eg, egCtx := errgroup.WithContext(ctx)
		eg.SetLimit(c.opts.Workers)
		for k, p := range pairs {
			eg.Go(func() error {
				if err := egCtx.Err(); err != nil {
					return err
				}
				f, err := c.fraction(p, v)
				if err != nil {
					return err
				}
				fractions[k] = f
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return 0, err
		}
	}

	var sum float64
	for _, f := range fractions {
		sum += f
	}
	return 2 * sum / float64((n-1)*(n-2)), nil
}

// PairDependency returns, for every vertex lying on at least one shortest
// path between i and j, the fraction of those paths that contain it. Both
// endpoints always map to 1.
func (c *Calculator) PairDependency(i, j graph.Vertex) (map[graph.Vertex]float64, error) {
	ps, err := c.enum.AllShortestPaths(i, j)
	if err != nil {
		return nil, c.wrapPairErr(pair{i, j}, err)
	}
	if len(ps) == 0 {
		return nil, fmt.Errorf("%w: pair {%d,%d} has no shortest path", ErrDisconnected, i, j)
	}

	counts := make(map[graph.Vertex]int)
	for _, p := range ps {
		for _, v := range p {
			counts[v]++
		}
	}
	dep := make(map[graph.Vertex]float64, len(counts))
	for v, k := range counts {
		dep[v] = float64(k) / float64(len(ps))
	}
	return dep, nil
}

// fraction returns through/total for pair p and vertex v.
func (c *Calculator) fraction(p pair, v graph.Vertex) (float64, error) {
	total, through, err := c.enum.Count(p.I, p.J, v)
	if err != nil {
		return 0, c.wrapPairErr(p, err)
	}
	if total == 0 {
		return 0, fmt.Errorf("%w: pair {%d,%d} has no shortest path", ErrDisconnected, p.I, p.J)
	}
	return float64(through) / float64(total), nil
}

func (c *Calculator) wrapPairErr(p pair, err error) error {
	if errors.Is(err, paths.ErrNotFound) {
		return fmt.Errorf("%w: pair {%d,%d}: %w", ErrDisconnected, p.I, p.J, err)
	}
	return fmt.Errorf("pair {%d,%d}: %w", p.I, p.J, err)
}

// pairsExcluding lists the unordered pairs of distinct vertices other than v,
// in graph insertion order.
func (c *Calculator) pairsExcluding(v graph.Vertex) []pair {
	vs := c.g.Vertices()
	out := make([]pair, 0, (len(vs)-1)*(len(vs)-2)/2)
	for a := 0; a < len(vs); a++ {
		if vs[a] == v {
			continue
		}
		for b := a + 1; b < len(vs); b++ {
			if vs[b] == v {
				continue
			}
			out = append(out, pair{vs[a], vs[b]})
		}
	}
	return out
}
