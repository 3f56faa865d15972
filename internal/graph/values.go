package graph

import (
	"fmt"
	"math"
)

// FromValues builds a graph from untyped vertex and edge values, as produced
// by decoding TOML or reading database records. Every vertex and every edge
// endpoint must be an integer value; floats, strings and other kinds are
// rejected with ErrNonIntegerVertex even when they look integral. Each edge
// must hold exactly two endpoints.
func FromValues(vertices []any, edges [][]any) (*Graph, error) {
	vs := make([]Vertex, 0, len(vertices))
	for i, raw := range vertices {
		v, err := toVertex(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: vertex #%d: %w", ErrValidation, i, err)
		}
		vs = append(vs, v)
	}

	es := make([]Edge, 0, len(edges))
	for i, pair := range edges {
		if len(pair) != 2 {
			return nil, fmt.Errorf("%w: %w: edge #%d has %d endpoints", ErrValidation, ErrMalformedEdge, i, len(pair))
		}
		a, err := toVertex(pair[0])
		if err != nil {
			return nil, fmt.Errorf("%w: edge #%d: %w", ErrValidation, i, err)
		}
		b, err := toVertex(pair[1])
		if err != nil {
			return nil, fmt.Errorf("%w: edge #%d: %w", ErrValidation, i, err)
		}
		es = append(es, Edge{A: a, B: b})
	}

	return New(vs, es)
}

// toVertex converts an integer-kinded value to a Vertex.
func toVertex(raw any) (Vertex, error) {
	switch x := raw.(type) {
	case Vertex:
		return x, nil
	case int:
		return Vertex(x), nil
	case int8:
		return Vertex(x), nil
	case int16:
		return Vertex(x), nil
	case int32:
		return Vertex(x), nil
	case int64:
		if int64(int(x)) != x {
			return 0, fmt.Errorf("%w: %d overflows int", ErrNonIntegerVertex, x)
		}
		return Vertex(x), nil
	case uint:
		if x > math.MaxInt {
			return 0, fmt.Errorf("%w: %d overflows int", ErrNonIntegerVertex, x)
		}
		return Vertex(x), nil
	case uint8:
		return Vertex(x), nil
	case uint16:
		return Vertex(x), nil
	case uint32:
		return Vertex(x), nil
	case uint64:
		if x > math.MaxInt {
			return 0, fmt.Errorf("%w: %d overflows int", ErrNonIntegerVertex, x)
		}
		return Vertex(x), nil
	default:
		return 0, fmt.Errorf("%w: %v (%T)", ErrNonIntegerVertex, raw, raw)
	}
}
