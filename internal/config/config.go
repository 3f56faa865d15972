// Package config loads pivot's runtime configuration through viper.
package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/viper"
)

// ErrInvalid is returned by Validate when a setting is out of range.
var ErrInvalid = errors.New("invalid configuration")

// Graph source kinds.
const (
	SourceBuiltin = "builtin"
	SourceFile    = "file"
	SourceNeo4j   = "neo4j"
)

// LogConfig controls the structured logger.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// Neo4jConfig holds connection settings and the Cypher queries used to read
// a graph out of Neo4j. VertexQuery must return an "id" column and
// EdgeQuery must return "a" and "b" columns.
type Neo4jConfig struct {
	URI         string `mapstructure:"uri"`
	Database    string `mapstructure:"database"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	VertexQuery string `mapstructure:"vertex_query"`
	EdgeQuery   string `mapstructure:"edge_query"`
}

// Config holds all runtime configuration for a pivot invocation.
// Values are populated from .pivot.yaml, PIVOT_* env vars, and CLI flags.
type Config struct {
	GraphFile        string      `mapstructure:"graph_file"`
	Source           string      `mapstructure:"source"`
	Method           string      `mapstructure:"method"`
	Workers          int         `mapstructure:"workers"`
	PairWorkers      int         `mapstructure:"pair_workers"`
	MaxPaths         int         `mapstructure:"max_paths"`
	RequireConnected bool        `mapstructure:"require_connected"`
	Format           string      `mapstructure:"format"`
	TelemetryFile    string      `mapstructure:"telemetry_file"`
	Log              LogConfig   `mapstructure:"log"`
	Neo4j            Neo4jConfig `mapstructure:"neo4j"`
}

// Default Cypher queries for the neo4j source.
const (
	DefaultVertexQuery = "MATCH (n:Vertex) RETURN n.id AS id ORDER BY id"
	DefaultEdgeQuery   = "MATCH (a:Vertex)-[:EDGE]-(b:Vertex) WHERE a.id < b.id RETURN a.id AS a, b.id AS b ORDER BY a, b"
)

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags. The result is
// validated before it is returned.
func Load() (Config, error) {
	viper.SetDefault("graph_file", "")
	viper.SetDefault("source", "")
	viper.SetDefault("method", "enumerate")
	viper.SetDefault("workers", 0)
	viper.SetDefault("pair_workers", 1)
	viper.SetDefault("max_paths", 0)
	viper.SetDefault("require_connected", false)
	viper.SetDefault("format", "summary")
	viper.SetDefault("telemetry_file", "")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")
	viper.SetDefault("log.file", "")
	viper.SetDefault("log.max_size_mb", 10)
	viper.SetDefault("log.max_age_days", 7)
	viper.SetDefault("neo4j.uri", "")
	viper.SetDefault("neo4j.database", "neo4j")
	viper.SetDefault("neo4j.username", "")
	viper.SetDefault("neo4j.password", "")
	viper.SetDefault("neo4j.vertex_query", DefaultVertexQuery)
	viper.SetDefault("neo4j.edge_query", DefaultEdgeQuery)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Source = resolveSource(cfg.Source, cfg.GraphFile)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// resolveSource picks the graph source when none was configured: a graph
// file implies the file source, otherwise the builtin sample is used.
func resolveSource(source, graphFile string) string {
	if source != "" {
		return source
	}
	if graphFile != "" {
		return SourceFile
	}
	return SourceBuiltin
}

// Validate rejects unknown enumeration values, negative counts, and source
// settings that cannot be satisfied.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, msg string) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrInvalid, msg))
		}
	}

	check(slices.Contains([]string{SourceBuiltin, SourceFile, SourceNeo4j}, c.Source), fmt.Sprintf("source %q (want builtin, file, or neo4j)", c.Source))
	check(slices.Contains([]string{"enumerate", "brandes"}, c.Method), fmt.Sprintf("method %q (want enumerate or brandes)", c.Method))
	check(slices.Contains([]string{"summary", "table", "json"}, c.Format), fmt.Sprintf("format %q (want summary, table, or json)", c.Format))
	check(c.Workers >= 0, fmt.Sprintf("workers %d must not be negative", c.Workers))
	check(c.PairWorkers >= 0, fmt.Sprintf("pair_workers %d must not be negative", c.PairWorkers))
	check(c.MaxPaths >= 0, fmt.Sprintf("max_paths %d must not be negative", c.MaxPaths))
	check(slices.Contains([]string{"debug", "info", "warn", "error"}, c.Log.Level), fmt.Sprintf("log.level %q (want debug, info, warn, or error)", c.Log.Level))
	check(slices.Contains([]string{"text", "json"}, c.Log.Format), fmt.Sprintf("log.format %q (want text or json)", c.Log.Format))
	check(c.Log.MaxSizeMB >= 0, fmt.Sprintf("log.max_size_mb %d must not be negative", c.Log.MaxSizeMB))
	check(c.Log.MaxAgeDays >= 0, fmt.Sprintf("log.max_age_days %d must not be negative", c.Log.MaxAgeDays))

	if c.Source == SourceFile {
		check(c.GraphFile != "", "source file requires graph_file")
	}
	if c.Source == SourceNeo4j {
		check(c.Neo4j.URI != "", "source neo4j requires neo4j.uri")
		check(c.Neo4j.VertexQuery != "" && c.Neo4j.EdgeQuery != "", "source neo4j requires vertex and edge queries")
	}
	return errors.Join(errs...)
}
