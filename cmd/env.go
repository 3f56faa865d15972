package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/pivot/internal/centrality"
	"github.com/papapumpkin/pivot/internal/config"
	"github.com/papapumpkin/pivot/internal/graph"
	"github.com/papapumpkin/pivot/internal/logging"
	"github.com/papapumpkin/pivot/internal/rank"
	"github.com/papapumpkin/pivot/internal/source"
	"github.com/papapumpkin/pivot/internal/telemetry"
)

// env bundles what every subcommand needs after configuration is loaded.
type env struct {
	cfg     config.Config
	log     *slog.Logger
	src     source.Source
	emitter *telemetry.Emitter
	runID   string
}

// newEnv loads configuration, builds the logger, and resolves the graph
// source. Callers must call close when done.
func newEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("graph") && !cmd.Flags().Changed("source") {
		cfg.Source = config.SourceFile
	}

	e := &env{
		cfg:   cfg,
		log:   logging.New(cfg.Log),
		runID: strconv.FormatInt(time.Now().UnixNano(), 36),
	}
	e.src, err = source.FromConfig(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.TelemetryFile != "" {
		e.emitter, err = telemetry.NewEmitter(cfg.TelemetryFile)
		if err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (e *env) close() {
	if err := e.emitter.Close(); err != nil {
		e.log.Warn("closing telemetry", "error", err)
	}
}

// loadGraph reads the graph from the configured source and, when
// require_connected is set, rejects disconnected graphs up front.
func (e *env) loadGraph(ctx context.Context) (*graph.Graph, error) {
	start := time.Now()
	g, err := e.src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading graph from %s: %w", e.src.Name(), err)
	}
	e.log.Debug("graph loaded",
		"source", e.src.Name(),
		"vertices", g.Len(),
		"edges", len(g.Edges()),
		"elapsed", time.Since(start))
	_ = e.emitter.Emit(telemetry.Event{
		Kind:   telemetry.KindGraphLoaded,
		RunID:  e.runID,
		Source: e.src.Name(),
		Data:   map[string]int{"vertices": g.Len(), "edges": len(g.Edges())},
	})

	if e.cfg.RequireConnected {
		if err := graph.RequireConnected(g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (e *env) rankOptions() (rank.Options, error) {
	method, err := centrality.ParseMethod(e.cfg.Method)
	if err != nil {
		return rank.Options{}, err
	}
	workers := e.cfg.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return rank.Options{
		Method:      method,
		Workers:     workers,
		PairWorkers: e.cfg.PairWorkers,
		MaxPaths:    e.cfg.MaxPaths,
		Emitter:     e.emitter,
		RunID:       e.runID,
	}, nil
}

// calculatorOptions maps rank options onto a single-vertex calculator. Only
// one vertex is scored, so the pair-level worker count applies.
func calculatorOptions(opts rank.Options) centrality.Options {
	return centrality.Options{
		Workers:  opts.PairWorkers,
		MaxPaths: opts.MaxPaths,
	}
}

func parseVertex(arg string) (graph.Vertex, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", graph.ErrNonIntegerVertex, arg)
	}
	return graph.Vertex(n), nil
}

func formatScore(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
