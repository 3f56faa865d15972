// Package graph provides the validated, immutable undirected graph that every
// centrality computation runs on. A Graph is built once from vertex and edge
// literals, rejected outright if any structural rule is violated, and never
// mutated afterwards, so it can be shared across goroutines without locking.
package graph

import (
	"errors"
	"fmt"
)

// ErrValidation is wrapped by every error returned from graph construction.
var ErrValidation = errors.New("invalid graph")

// ErrNonIntegerVertex is returned when a vertex or edge endpoint is not an
// integer value.
var ErrNonIntegerVertex = errors.New("vertex is not an integer")

// ErrDuplicateVertex is returned when the same vertex is listed twice.
var ErrDuplicateVertex = errors.New("duplicate vertex")

// ErrUnknownEndpoint is returned when an edge references a vertex that is not
// in the vertex list.
var ErrUnknownEndpoint = errors.New("edge endpoint not in vertices")

// ErrDuplicateEdge is returned when two edges are equal after
// canonicalization, e.g. (1,2) and (2,1).
var ErrDuplicateEdge = errors.New("duplicate edge")

// ErrSelfLoop is returned when an edge joins a vertex to itself.
var ErrSelfLoop = errors.New("self-loop edge")

// ErrMalformedEdge is returned when an untyped edge value is not a pair.
var ErrMalformedEdge = errors.New("edge is not a pair")

// ErrUnknownVertex is returned by queries that reference a vertex the graph
// does not contain.
var ErrUnknownVertex = errors.New("vertex not in graph")

// Vertex identifies a vertex. Identifiers are unique within a graph.
type Vertex int

// Edge is an undirected edge in canonical form: A < B.
type Edge struct {
	A, B Vertex
}

// Canonical returns the canonical form of the unordered pair {a, b}.
func Canonical(a, b Vertex) Edge {
	if b < a {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

// String renders the edge as "(a,b)".
func (e Edge) String() string {
	return fmt.Sprintf("(%d,%d)", e.A, e.B)
}

// Graph is a validated, simple, undirected, unweighted graph. The zero value
// is not usable; construct graphs with New or FromValues.
type Graph struct {
	vertices []Vertex
	edges    []Edge
	index    map[Vertex]int
	adj      Adjacency
}

// New validates the given vertices and edges and returns the resulting graph.
// Vertex order is preserved. Edges are canonicalized before duplicate checks,
// so (1,2) and (2,1) collide. Validation stops at the first violation and no
// graph is returned alongside an error.
func New(vertices []Vertex, edges []Edge) (*Graph, error) {
	index := make(map[Vertex]int, len(vertices))
	for i, v := range vertices {
		if _, dup := index[v]; dup {
			return nil, fmt.Errorf("%w: %w: %d", ErrValidation, ErrDuplicateVertex, v)
		}
		index[v] = i
	}

	canon := make([]Edge, 0, len(edges))
	seen := make(map[Edge]bool, len(edges))
	for _, e := range edges {
		if _, ok := index[e.A]; !ok {
			return nil, fmt.Errorf("%w: %w: %d in %s", ErrValidation, ErrUnknownEndpoint, e.A, e)
		}
		if _, ok := index[e.B]; !ok {
			return nil, fmt.Errorf("%w: %w: %d in %s", ErrValidation, ErrUnknownEndpoint, e.B, e)
		}
		if e.A == e.B {
			return nil, fmt.Errorf("%w: %w: %s", ErrValidation, ErrSelfLoop, e)
		}
		c := Canonical(e.A, e.B)
		if seen[c] {
			return nil, fmt.Errorf("%w: %w: %s", ErrValidation, ErrDuplicateEdge, c)
		}
		seen[c] = true
		canon = append(canon, c)
	}

	vs := make([]Vertex, len(vertices))
	copy(vs, vertices)

	return &Graph{
		vertices: vs,
		edges:    canon,
		index:    index,
		adj:      BuildAdjacency(vs, canon),
	}, nil
}

// Vertices returns the vertices in insertion order. The caller must not
// modify the returned slice.
func (g *Graph) Vertices() []Vertex {
	return g.vertices
}

// Edges returns the canonical edges in insertion order. The caller must not
// modify the returned slice.
func (g *Graph) Edges() []Edge {
	return g.edges
}

// Len returns the number of vertices.
func (g *Graph) Len() int {
	return len(g.vertices)
}

// Has reports whether v is a vertex of g.
func (g *Graph) Has(v Vertex) bool {
	_, ok := g.index[v]
	return ok
}

// Index returns the insertion position of v, or -1 if v is not in g.
func (g *Graph) Index(v Vertex) int {
	i, ok := g.index[v]
	if !ok {
		return -1
	}
	return i
}

// HasEdge reports whether a and b are adjacent.
func (g *Graph) HasEdge(a, b Vertex) bool {
	for _, w := range g.adj[a] {
		if w == b {
			return true
		}
	}
	return false
}

// Adjacency returns the cached adjacency index. It is shared, read-only state.
func (g *Graph) Adjacency() Adjacency {
	return g.adj
}

// Neighbors returns the neighbors of v in edge order, or nil if v has none
// or is not in the graph.
func (g *Graph) Neighbors(v Vertex) []Vertex {
	return g.adj[v]
}
