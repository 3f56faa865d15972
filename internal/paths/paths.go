// Package paths answers shortest-path queries on an unweighted graph: the
// minimum hop distance between two vertices and the complete set of simple
// paths that achieve it.
//
// Enumeration is breadth-first over a frontier of partial paths. Partial paths
// live in an index arena so that branches share their common prefix, and the
// arena size can be capped to bound work on adversarial graphs.
package paths

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/papapumpkin/pivot/internal/graph"
)

// ErrNotFound signals that no path connects the two vertices. It is an
// expected outcome on disconnected input, not a fault.
var ErrNotFound = errors.New("no connecting path")

// ErrResourceExceeded is returned when enumeration would grow the path arena
// beyond Options.MaxPaths.
var ErrResourceExceeded = errors.New("path budget exceeded")

// Path is a simple path listed from source to target.
type Path []graph.Vertex

// Len returns the number of edges on the path.
func (p Path) Len() int {
	return len(p) - 1
}

// Contains reports whether v lies on the path, endpoints included.
func (p Path) Contains(v graph.Vertex) bool {
	for _, x := range p {
		if x == v {
			return true
		}
	}
	return false
}

// Reverse returns a reversed copy of the path.
func (p Path) Reverse() Path {
	r := make(Path, len(p))
	for i, v := range p {
		r[len(p)-1-i] = v
	}
	return r
}

// String renders the path as "1 -> 2 -> 3".
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, v := range p {
		parts[i] = strconv.Itoa(int(v))
	}
	return strings.Join(parts, " -> ")
}

// Options configures an Enumerator.
type Options struct {
	// MaxPaths caps the number of partial-path nodes a single enumeration
	// may allocate. Zero means unbounded.
	MaxPaths int
}

// Enumerator runs shortest-path queries against one graph. It holds no
// per-query state and is safe for concurrent use.
type Enumerator struct {
	g    *graph.Graph
	opts Options
}

// NewEnumerator returns an Enumerator over g.
func NewEnumerator(g *graph.Graph, opts Options) *Enumerator {
	return &Enumerator{g: g, opts: opts}
}

// Graph returns the graph the enumerator queries.
func (e *Enumerator) Graph() *graph.Graph {
	return e.g
}

// MinDistance returns the minimum number of edges between source and target.
// Expansion proceeds in rounds from source; the round in which target first
// joins the frontier is the distance. Returns ErrNotFound when the frontier
// empties without reaching target.
func (e *Enumerator) MinDistance(source, target graph.Vertex) (int, error) {
	if err := e.checkVertices(source, target); err != nil {
		return 0, err
	}
	if source == target {
		return 0, nil
	}

	visited := map[graph.Vertex]bool{source: true}
	frontier := []graph.Vertex{source}
	for round := 1; len(frontier) > 0; round++ {
		var next []graph.Vertex
		for _, u := range frontier {
			for _, w := range e.g.Neighbors(u) {
				if w == target {
					return round, nil
				}
				if !visited[w] {
					visited[w] = true
					next = append(next, w)
				}
			}
		}
		frontier = next
	}
	return 0, fmt.Errorf("%w: %d to %d", ErrNotFound, source, target)
}

// AllShortestPaths returns every distinct simple path from source to target
// whose length equals MinDistance(source, target). Paths are ordered by the
// neighbor order in which they were discovered. When source equals target the
// only path is the single-vertex path [source].
func (e *Enumerator) AllShortestPaths(source, target graph.Vertex) ([]Path, error) {
	if err := e.checkVertices(source, target); err != nil {
		return nil, err
	}
	if source == target {
		return []Path{{source}}, nil
	}

	toTarget := e.distancesFrom(target)
	dist, ok := toTarget[source]
	if !ok {
		return nil, fmt.Errorf("%w: %d to %d", ErrNotFound, source, target)
	}

	ar := newArena(source, e.opts.MaxPaths)
	frontier := []int{0}
	for round := 1; round <= dist; round++ {
		remaining := dist - round
		next := make([]int, 0, len(frontier))
		for _, idx := range frontier {
			u := ar.nodes[idx].vertex
			for _, w := range e.g.Neighbors(u) {
				// A vertex farther from target than the rounds left cannot
				// finish on time.
				if d, reach := toTarget[w]; !reach || d > remaining {
					continue
				}
				if ar.contains(idx, w) {
					continue
				}
				child, err := ar.extend(idx, w)
				if err != nil {
					return nil, fmt.Errorf("%w: %d to %d after %d nodes",
						err, source, target, len(ar.nodes))
				}
				next = append(next, child)
			}
		}
		frontier = next
	}

	result := make([]Path, 0, len(frontier))
	for _, idx := range frontier {
		if ar.nodes[idx].vertex == target {
			result = append(result, ar.materialize(idx))
		}
	}
	return result, nil
}

// Count enumerates the shortest paths between source and target and returns
// how many there are and how many of them pass through via.
func (e *Enumerator) Count(source, target, via graph.Vertex) (total, through int, err error) {
	ps, err := e.AllShortestPaths(source, target)
	if err != nil {
		return 0, 0, err
	}
	for _, p := range ps {
		if p.Contains(via) {
			through++
		}
	}
	return len(ps), through, nil
}

// distancesFrom returns the hop distance from v to every vertex reachable
// from it.
func (e *Enumerator) distancesFrom(v graph.Vertex) map[graph.Vertex]int {
	dist := map[graph.Vertex]int{v: 0}
	queue := []graph.Vertex{v}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, w := range e.g.Neighbors(u) {
			if _, seen := dist[w]; !seen {
				dist[w] = dist[u] + 1
				queue = append(queue, w)
			}
		}
	}
	return dist
}

func (e *Enumerator) checkVertices(vs ...graph.Vertex) error {
	for _, v := range vs {
		if !e.g.Has(v) {
			return fmt.Errorf("%w: %d", graph.ErrUnknownVertex, v)
		}
	}
	return nil
}
