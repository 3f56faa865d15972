// Package source loads graphs from the places pivot can read them: a
// compiled-in sample, a TOML file on disk, or a Neo4j database.
package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/papapumpkin/pivot/internal/config"
	"github.com/papapumpkin/pivot/internal/graph"
)

// ErrDecode is returned when a graph document cannot be parsed.
var ErrDecode = errors.New("decoding graph")

// Source loads a graph. Implementations validate through graph.New or
// graph.FromValues, so a returned graph always satisfies the model rules.
type Source interface {
	// Load reads and validates the graph.
	Load(ctx context.Context) (*graph.Graph, error)

	// Name identifies the source in logs and telemetry.
	Name() string
}

// FromConfig returns the Source selected by cfg.Source.
func FromConfig(cfg config.Config) (Source, error) {
	switch cfg.Source {
	case config.SourceBuiltin, "":
		return Builtin{}, nil
	case config.SourceFile:
		return File{Path: cfg.GraphFile}, nil
	case config.SourceNeo4j:
		return NewNeo4j(cfg.Neo4j)
	default:
		return nil, fmt.Errorf("unknown graph source %q", cfg.Source)
	}
}
