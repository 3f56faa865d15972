package rank

import (
	"context"

	"github.com/papapumpkin/pivot/internal/graph"
)

// Analyzer is the primary entry point for ranking a single graph. It wraps
// the graph, the ranking options, and the cached result behind one API:
// construct it, call Analyze, then query scores or render reports.
type Analyzer struct {
	g       *graph.Graph
	opts    Options
	ranking *Ranking
}

// NewAnalyzer creates an Analyzer for g.
func NewAnalyzer(g *graph.Graph, opts Options) *Analyzer {
	return &Analyzer{g: g, opts: opts}
}

// Analyze scores every vertex and caches the ranking. On error the previous
// ranking, if any, is discarded so stale results are never reported.
func (a *Analyzer) Analyze(ctx context.Context) error {
	a.ranking = nil
	r, err := TopByCentrality(ctx, a.g, a.opts)
	if err != nil {
		return err
	}
	a.ranking = &r
	return nil
}

// Top returns the cached ranking. The boolean is false until Analyze has
// succeeded.
func (a *Analyzer) Top() (Ranking, bool) {
	if a.ranking == nil {
		return Ranking{}, false
	}
	return *a.ranking, true
}

// Scores returns the centrality of every vertex, or nil before Analyze.
func (a *Analyzer) Scores() map[graph.Vertex]float64 {
	if a.ranking == nil {
		return nil
	}
	out := make(map[graph.Vertex]float64, len(a.ranking.Scores))
	for v, s := range a.ranking.Scores {
		out[v] = s
	}
	return out
}

// Graph returns the analyzed graph.
func (a *Analyzer) Graph() *graph.Graph {
	return a.g
}

// Len returns the number of vertices in the analyzed graph.
func (a *Analyzer) Len() int {
	return a.g.Len()
}

// Report renders the cached ranking with the given strategy.
func (a *Analyzer) Report(strategy ReportStrategy) string {
	return strategy.Render(a.g, a.ranking)
}
