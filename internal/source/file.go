package source

import (
	"context"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/papapumpkin/pivot/internal/graph"
)

// File loads a graph from a TOML document of the form
//
//	vertices = [1, 2, 3]
//	edges = [[1, 2], [2, 3]]
type File struct {
	Path string
}

type graphDocument struct {
	Vertices []any   `toml:"vertices"`
	Edges    [][]any `toml:"edges"`
}

// Name returns the file path.
func (f File) Name() string { return f.Path }

// Load reads and parses the file.
func (f File) Load(_ context.Context) (*graph.Graph, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("reading graph file: %w", err)
	}
	g, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Path, err)
	}
	return g, nil
}

// Parse decodes a TOML graph document. Values are left untyped so that
// graph.FromValues can reject non-integer vertices precisely.
func Parse(data []byte) (*graph.Graph, error) {
	var doc graphDocument
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return graph.FromValues(doc.Vertices, doc.Edges)
}
