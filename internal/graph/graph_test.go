package graph

import (
	"errors"
	"testing"
)

// buildSample creates the six-vertex graph used across packages:
//
//	1 - 2 - 3
//	|  /    |
//	5 ----- 4 - 6
func buildSample(t *testing.T) *Graph {
	t.Helper()
	g, err := New(
		[]Vertex{1, 2, 3, 4, 5, 6},
		[]Edge{{1, 2}, {1, 5}, {2, 3}, {2, 5}, {3, 4}, {4, 5}, {4, 6}},
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func TestCanonical(t *testing.T) {
	t.Parallel()
	tests := []struct {
		a, b Vertex
		want Edge
	}{
		{1, 2, Edge{1, 2}},
		{2, 1, Edge{1, 2}},
		{-3, 7, Edge{-3, 7}},
		{7, -3, Edge{-3, 7}},
	}
	for _, tt := range tests {
		if got := Canonical(tt.a, tt.b); got != tt.want {
			t.Errorf("Canonical(%d, %d) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestNew_Valid(t *testing.T) {
	t.Parallel()
	g := buildSample(t)

	if g.Len() != 6 {
		t.Errorf("Len() = %d, want 6", g.Len())
	}
	if got := len(g.Edges()); got != 7 {
		t.Errorf("len(Edges()) = %d, want 7", got)
	}
	for i, v := range []Vertex{1, 2, 3, 4, 5, 6} {
		if g.Vertices()[i] != v {
			t.Errorf("Vertices()[%d] = %d, want %d", i, g.Vertices()[i], v)
		}
		if g.Index(v) != i {
			t.Errorf("Index(%d) = %d, want %d", v, g.Index(v), i)
		}
	}
	if g.Index(99) != -1 {
		t.Errorf("Index(99) = %d, want -1", g.Index(99))
	}
	if !g.Has(4) || g.Has(7) {
		t.Error("Has reports wrong membership")
	}
	if !g.HasEdge(5, 1) || !g.HasEdge(1, 5) {
		t.Error("HasEdge(1,5) should hold in both directions")
	}
	if g.HasEdge(1, 3) {
		t.Error("HasEdge(1,3) = true, want false")
	}
}

func TestNew_CanonicalizesEdges(t *testing.T) {
	t.Parallel()
	g, err := New([]Vertex{3, 1, 2}, []Edge{{3, 1}, {2, 1}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	want := []Edge{{1, 3}, {1, 2}}
	for i, e := range g.Edges() {
		if e != want[i] {
			t.Errorf("Edges()[%d] = %v, want %v", i, e, want[i])
		}
	}
}

func TestNew_Rejects(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		vertices []Vertex
		edges    []Edge
		want     error
	}{
		{
			name:     "duplicate vertex",
			vertices: []Vertex{1, 1, 2},
			want:     ErrDuplicateVertex,
		},
		{
			name:     "unknown endpoint",
			vertices: []Vertex{1, 2, 3},
			edges:    []Edge{{1, 4}},
			want:     ErrUnknownEndpoint,
		},
		{
			name:     "mirrored duplicate edge",
			vertices: []Vertex{1, 2},
			edges:    []Edge{{1, 2}, {2, 1}},
			want:     ErrDuplicateEdge,
		},
		{
			name:     "exact duplicate edge",
			vertices: []Vertex{1, 2, 3},
			edges:    []Edge{{2, 3}, {2, 3}},
			want:     ErrDuplicateEdge,
		},
		{
			name:     "self loop",
			vertices: []Vertex{1, 2},
			edges:    []Edge{{2, 2}},
			want:     ErrSelfLoop,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g, err := New(tt.vertices, tt.edges)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if g != nil {
				t.Error("expected nil graph alongside error")
			}
			if !errors.Is(err, ErrValidation) {
				t.Errorf("error %v does not wrap ErrValidation", err)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("error %v does not wrap %v", err, tt.want)
			}
		})
	}
}

func TestNew_CopiesVertices(t *testing.T) {
	t.Parallel()
	in := []Vertex{1, 2, 3}
	g, err := New(in, []Edge{{1, 2}, {2, 3}})
	if err != nil {
		t.Fatal(err)
	}
	in[0] = 42
	if g.Vertices()[0] != 1 {
		t.Errorf("graph observed caller mutation: Vertices()[0] = %d", g.Vertices()[0])
	}
}

func TestNew_Empty(t *testing.T) {
	t.Parallel()
	g, err := New(nil, nil)
	if err != nil {
		t.Fatalf("New(nil, nil): %v", err)
	}
	if g.Len() != 0 {
		t.Errorf("Len() = %d, want 0", g.Len())
	}
}

func TestFromValues(t *testing.T) {
	t.Parallel()

	t.Run("mixed integer kinds", func(t *testing.T) {
		g, err := FromValues(
			[]any{int64(1), int32(2), uint8(3)},
			[][]any{{int64(1), 2}, {uint(3), int16(2)}},
		)
		if err != nil {
			t.Fatalf("FromValues: %v", err)
		}
		if !g.HasEdge(2, 3) {
			t.Error("expected edge (2,3)")
		}
	})

	tests := []struct {
		name     string
		vertices []any
		edges    [][]any
		want     error
	}{
		{"string vertex", []any{1, "2"}, nil, ErrNonIntegerVertex},
		{"float vertex", []any{1, 2.0}, nil, ErrNonIntegerVertex},
		{"nil vertex", []any{nil}, nil, ErrNonIntegerVertex},
		{"float endpoint", []any{1, 2}, [][]any{{1, 2.5}}, ErrNonIntegerVertex},
		{"triple edge", []any{1, 2, 3}, [][]any{{1, 2, 3}}, ErrMalformedEdge},
		{"single edge", []any{1, 2}, [][]any{{1}}, ErrMalformedEdge},
		{"duplicate after conversion", []any{int64(1), 1}, nil, ErrDuplicateVertex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromValues(tt.vertices, tt.edges)
			if !errors.Is(err, tt.want) {
				t.Fatalf("FromValues error = %v, want %v", err, tt.want)
			}
			if !errors.Is(err, ErrValidation) {
				t.Errorf("error %v does not wrap ErrValidation", err)
			}
		})
	}
}
