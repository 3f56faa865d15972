// Package rank scores every vertex of a graph by betweenness centrality and
// selects the vertex, or tie set of vertices, holding the maximum score.
package rank

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/papapumpkin/pivot/internal/centrality"
	"github.com/papapumpkin/pivot/internal/graph"
	"github.com/papapumpkin/pivot/internal/telemetry"
)

// Options configures a ranking run.
type Options struct {
	// Method selects the scoring algorithm.
	Method centrality.Method

	// Workers bounds how many vertices are scored concurrently.
	Workers int

	// PairWorkers bounds pair-level concurrency inside each vertex score.
	// Only used by the enumerate method.
	PairWorkers int

	// MaxPaths caps path enumeration per vertex pair. Zero means unbounded.
	MaxPaths int

	// Emitter receives progress events. A nil Emitter records nothing.
	Emitter *telemetry.Emitter

	// RunID tags emitted events.
	RunID string
}

// DefaultOptions returns production defaults: exhaustive enumeration, one
// vertex per available CPU, sequential pairs, and no path budget.
func DefaultOptions() Options {
	return Options{
		Method:      centrality.MethodEnumerate,
		Workers:     runtime.GOMAXPROCS(0),
		PairWorkers: 1,
	}
}

// Ranking is the outcome of a ranking run.
type Ranking struct {
	// Vertices is the tie set holding the maximum score, in graph
	// insertion order.
	Vertices []graph.Vertex

	// Score is the maximum centrality observed.
	Score float64

	// Scores holds the centrality of every vertex.
	Scores map[graph.Vertex]float64
}

// IsTop reports whether v belongs to the tie set.
func (r Ranking) IsTop(v graph.Vertex) bool {
	for _, t := range r.Vertices {
		if t == v {
			return true
		}
	}
	return false
}

// TopByCentrality scores every vertex of g and returns the vertices sharing
// the maximum score. Any scoring error aborts the whole run; no partial
// ranking is returned.
func TopByCentrality(ctx context.Context, g *graph.Graph, opts Options) (Ranking, error) {
	scores, err := Scores(ctx, g, opts)
	if err != nil {
		return Ranking{}, err
	}
	r := Select(g, scores)
	emit(opts, telemetry.KindRankDone, map[string]any{"top": r.Vertices, "score": r.Score})
	return r, nil
}

// Scores computes the centrality of every vertex of g with the configured
// method.
func Scores(ctx context.Context, g *graph.Graph, opts Options) (map[graph.Vertex]float64, error) {
	emit(opts, telemetry.KindRankStart, map[string]any{
		"vertices": g.Len(),
		"edges":    len(g.Edges()),
		"method":   string(opts.Method),
	})

	var (
		scores map[graph.Vertex]float64
		err    error
	)
	switch opts.Method {
	case centrality.MethodBrandes:
		scores, err = centrality.Brandes(ctx, g)
	case centrality.MethodEnumerate, "":
		scores, err = enumerateScores(ctx, g, opts)
	default:
		err = fmt.Errorf("unknown centrality method %q", opts.Method)
	}
	if err != nil {
		emit(opts, telemetry.KindRankFailed, map[string]any{"error": err.Error()})
		return nil, err
	}
	return scores, nil
}

// enumerateScores fans vertex scoring out over a bounded errgroup. The first
// error cancels the remaining workers.
func enumerateScores(ctx context.Context, g *graph.Graph, opts Options) (map[graph.Vertex]float64, error) {
	calc := centrality.NewCalculator(g, centrality.Options{
		Workers:  opts.PairWorkers,
		MaxPaths: opts.MaxPaths,
	})

	vs := g.Vertices()
	results := make([]float64, len(vs))

	eg, egCtx := errgroup.WithContext(ctx)
	if opts.Workers > 0 {
		eg.SetLimit(opts.Workers)
	}
	for i, v := range vs {
		eg.Go(func() error {
			s, err := calc.Centrality(egCtx, v)
			if err != nil {
				return fmt.Errorf("scoring vertex %d: %w", v, err)
			}
			results[i] = s
			emit(opts, telemetry.KindVertexScored, map[string]any{"vertex": int(v), "score": s})
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	scores := make(map[graph.Vertex]float64, len(vs))
	for i, v := range vs {
		scores[v] = results[i]
	}
	return scores, nil
}

// Select extracts the maximum score and every vertex whose score equals it
// exactly. Vertices are visited in graph insertion order.
func Select(g *graph.Graph, scores map[graph.Vertex]float64) Ranking {
	r := Ranking{Scores: scores}
	first := true
	for _, v := range g.Vertices() {
		s, ok := scores[v]
		if !ok {
			continue
		}
		switch {
		case first || s > r.Score:
			r.Score = s
			r.Vertices = []graph.Vertex{v}
			first = false
		case s == r.Score:
			r.Vertices = append(r.Vertices, v)
		}
	}
	return r
}

func emit(opts Options, kind string, data any) {
	_ = opts.Emitter.Emit(telemetry.Event{
		Kind:  kind,
		RunID: opts.RunID,
		Data:  data,
	})
}
