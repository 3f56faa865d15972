package centrality

import (
	"context"
	"fmt"

	"github.com/papapumpkin/pivot/internal/graph"
)

// Brandes computes normalized betweenness centrality for every vertex using
// Brandes' algorithm: one BFS per source counts shortest paths (sigma), then a
// reverse sweep accumulates pair dependencies. Each unordered pair is visited
// from both endpoints, so dividing by (n-1)(n-2) gives the same normalization
// as Centrality.
//
// The graph must be connected; otherwise ErrDisconnected is returned rather
// than scores that silently ignore unreachable pairs.
func Brandes(ctx context.Context, g *graph.Graph) (map[graph.Vertex]float64, error) {
	n := g.Len()
	if n < 3 {
		return nil, fmt.Errorf("%w: have %d", ErrPrecondition, n)
	}
	if err := graph.RequireConnected(g); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDisconnected, err)
	}

	cb := make(map[graph.Vertex]float64, n)
	for _, v := range g.Vertices() {
		cb[v] = 0
	}

	for _, s := range g.Vertices() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		stack, sigma, pred := brandesBFS(g, s)
		brandesAccumulate(g, s, stack, sigma, pred, cb)
	}

	normFactor := float64((n - 1) * (n - 2))
	for v := range cb {
		cb[v] /= normFactor
	}
	return cb, nil
}

// brandesBFS performs the BFS phase from source s. It returns the visit
// stack (reverse order drives back-propagation), shortest-path counts, and
// predecessor lists.
func brandesBFS(g *graph.Graph, s graph.Vertex) ([]graph.Vertex, map[graph.Vertex]float64, map[graph.Vertex][]graph.Vertex) {
	n := g.Len()
	stack := make([]graph.Vertex, 0, n)
	pred := make(map[graph.Vertex][]graph.Vertex, n)
	sigma := make(map[graph.Vertex]float64, n)
	dist := make(map[graph.Vertex]int, n)

	for _, v := range g.Vertices() {
		dist[v] = -1
	}
	sigma[s] = 1
	dist[s] = 0

	queue := []graph.Vertex{s}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		stack = append(stack, v)

		for _, w := range g.Neighbors(v) {
			if dist[w] < 0 {
				dist[w] = dist[v] + 1
				queue = append(queue, w)
			}
			if dist[w] == dist[v]+1 {
				sigma[w] += sigma[v]
				pred[w] = append(pred[w], v)
			}
		}
	}

	return stack, sigma, pred
}

// brandesAccumulate back-propagates pair dependencies from source s into cb.
func brandesAccumulate(g *graph.Graph, s graph.Vertex, stack []graph.Vertex, sigma map[graph.Vertex]float64, pred map[graph.Vertex][]graph.Vertex, cb map[graph.Vertex]float64) {
	delta := make(map[graph.Vertex]float64, g.Len())

	for i := len(stack) - 1; i >= 0; i-- {
		w := stack[i]
		for _, v := range pred[w] {
			delta[v] += (sigma[v] / sigma[w]) * (1 + delta[w])
		}
		if w != s {
			cb[w] += delta[w]
		}
	}
}
