package source

import (
	"context"

	"github.com/papapumpkin/pivot/internal/graph"
)

// Builtin serves the six-vertex sample graph used when no file or database
// is configured.
type Builtin struct{}

// Name returns "builtin".
func (Builtin) Name() string { return "builtin" }

// Load returns a fresh copy of the sample graph.
func (Builtin) Load(_ context.Context) (*graph.Graph, error) {
	return graph.New(
		[]graph.Vertex{1, 2, 3, 4, 5, 6},
		[]graph.Edge{{A: 1, B: 2}, {A: 1, B: 5}, {A: 2, B: 3}, {A: 2, B: 5}, {A: 3, B: 4}, {A: 4, B: 5}, {A: 4, B: 6}},
	)
}
