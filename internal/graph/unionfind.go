package graph

import (
	"errors"
	"fmt"
)

// ErrDisconnected is returned by RequireConnected when the graph has more
// than one connected component.
var ErrDisconnected = errors.New("graph is not connected")

// UnionFind implements a disjoint-set structure over vertices with path
// compression and union by rank.
type UnionFind struct {
	parent map[Vertex]Vertex
	rank   map[Vertex]int
}

// NewUnionFind creates an empty UnionFind.
func NewUnionFind() *UnionFind {
	return &UnionFind{
		parent: make(map[Vertex]Vertex),
		rank:   make(map[Vertex]int),
	}
}

// Add inserts x as its own singleton set. Adding an existing element is a
// no-op.
func (uf *UnionFind) Add(x Vertex) {
	if _, ok := uf.parent[x]; ok {
		return
	}
	uf.parent[x] = x
	uf.rank[x] = 0
}

// Find returns the representative of the set containing x, adding x as a
// singleton first if needed.
func (uf *UnionFind) Find(x Vertex) Vertex {
	if _, ok := uf.parent[x]; !ok {
		uf.Add(x)
		return x
	}
	if uf.parent[x] != x {
		uf.parent[x] = uf.Find(uf.parent[x]) // path compression
	}
	return uf.parent[x]
}

// Union merges the sets containing x and y.
func (uf *UnionFind) Union(x, y Vertex) {
	rx := uf.Find(x)
	ry := uf.Find(y)
	if rx == ry {
		return
	}
	switch {
	case uf.rank[rx] < uf.rank[ry]:
		uf.parent[rx] = ry
	case uf.rank[rx] > uf.rank[ry]:
		uf.parent[ry] = rx
	default:
		uf.parent[ry] = rx
		uf.rank[rx]++
	}
}

// Connected reports whether x and y are in the same set.
func (uf *UnionFind) Connected(x, y Vertex) bool {
	return uf.Find(x) == uf.Find(y)
}

// Components partitions g into connected components. Members of each
// component keep graph insertion order, and components are ordered by the
// position of their first member.
func Components(g *Graph) [][]Vertex {
	if g.Len() == 0 {
		return nil
	}

	uf := NewUnionFind()
	for _, v := range g.vertices {
		uf.Add(v)
	}
	for _, e := range g.edges {
		uf.Union(e.A, e.B)
	}

	groups := make(map[Vertex][]Vertex)
	var roots []Vertex
	for _, v := range g.vertices {
		root := uf.Find(v)
		if _, ok := groups[root]; !ok {
			roots = append(roots, root)
		}
		groups[root] = append(groups[root], v)
	}

	comps := make([][]Vertex, 0, len(roots))
	for _, r := range roots {
		comps = append(comps, groups[r])
	}
	return comps
}

// RequireConnected returns ErrDisconnected if g has more than one connected
// component. The empty graph is considered connected.
func RequireConnected(g *Graph) error {
	comps := Components(g)
	if len(comps) <= 1 {
		return nil
	}
	return fmt.Errorf("%w: %d components, first two start at %d and %d",
		ErrDisconnected, len(comps), comps[0][0], comps[1][0])
}
