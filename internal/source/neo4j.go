package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/papapumpkin/pivot/internal/config"
	"github.com/papapumpkin/pivot/internal/graph"
)

var (
	// ErrMissingURI is returned when the neo4j source has no connection URI.
	ErrMissingURI = errors.New("neo4j uri is required")

	// ErrMalformedRecord is returned when a query row lacks a required column.
	ErrMalformedRecord = errors.New("malformed neo4j record")
)

// record is one result row keyed by column name.
type record map[string]any

// readFunc runs a read-only Cypher query and returns every row.
type readFunc func(ctx context.Context, cypher string) ([]record, error)

// Neo4j loads a graph from a Neo4j (or Bolt-compatible) database using the
// configured vertex and edge queries.
type Neo4j struct {
	cfg  config.Neo4jConfig
	read readFunc
}

// NewNeo4j returns a Neo4j source. No connection is made until Load.
func NewNeo4j(cfg config.Neo4jConfig) (*Neo4j, error) {
	if cfg.URI == "" {
		return nil, ErrMissingURI
	}
	return &Neo4j{cfg: cfg}, nil
}

// Name returns the connection URI.
func (n *Neo4j) Name() string { return n.cfg.URI }

// Load connects, runs the vertex and edge queries, and builds the graph.
func (n *Neo4j) Load(ctx context.Context) (*graph.Graph, error) {
	read := n.read
	if read == nil {
		driver, err := n.connect(ctx)
		if err != nil {
			return nil, err
		}
		defer driver.Close(ctx)
		read = n.reader(driver)
	}

	vertexRows, err := read(ctx, n.cfg.VertexQuery)
	if err != nil {
		return nil, fmt.Errorf("running vertex query: %w", err)
	}
	edgeRows, err := read(ctx, n.cfg.EdgeQuery)
	if err != nil {
		return nil, fmt.Errorf("running edge query: %w", err)
	}
	return graphFromRecords(vertexRows, edgeRows)
}

func (n *Neo4j) connect(ctx context.Context) (neo4j.DriverWithContext, error) {
	auth := neo4j.NoAuth()
	if n.cfg.Username != "" {
		auth = neo4j.BasicAuth(n.cfg.Username, n.cfg.Password, "")
	}

	driver, err := neo4j.NewDriverWithContext(n.cfg.URI, auth)
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("verify graph connectivity: %w", err)
	}
	return driver, nil
}

func (n *Neo4j) reader(driver neo4j.DriverWithContext) readFunc {
	return func(ctx context.Context, cypher string) ([]record, error) {
		session := driver.NewSession(ctx, neo4j.SessionConfig{
			DatabaseName: n.cfg.Database,
			AccessMode:   neo4j.AccessModeRead,
		})
		defer session.Close(ctx)

		res, err := session.Run(ctx, cypher, nil)
		if err != nil {
			return nil, err
		}

		var rows []record
		for res.Next(ctx) {
			rec := res.Record()
			row := make(record, len(rec.Keys))
			for _, key := range rec.Keys {
				value, _ := rec.Get(key)
				row[key] = value
			}
			rows = append(rows, row)
		}
		if err := res.Err(); err != nil {
			return nil, err
		}
		return rows, nil
	}
}

// graphFromRecords maps "id" rows to vertices and "a","b" rows to edges.
// Neo4j integers arrive as int64 and pass through graph.FromValues.
func graphFromRecords(vertexRows, edgeRows []record) (*graph.Graph, error) {
	vertices := make([]any, 0, len(vertexRows))
	for i, row := range vertexRows {
		id, ok := row["id"]
		if !ok {
			return nil, fmt.Errorf("%w: vertex row %d has no id column", ErrMalformedRecord, i)
		}
		vertices = append(vertices, id)
	}

	edges := make([][]any, 0, len(edgeRows))
	for i, row := range edgeRows {
		a, okA := row["a"]
		b, okB := row["b"]
		if !okA || !okB {
			return nil, fmt.Errorf("%w: edge row %d needs a and b columns", ErrMalformedRecord, i)
		}
		edges = append(edges, []any{a, b})
	}
	return graph.FromValues(vertices, edges)
}
