package rank

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/papapumpkin/pivot/internal/centrality"
	"github.com/papapumpkin/pivot/internal/graph"
	"github.com/papapumpkin/pivot/internal/telemetry"
)

// --- Test fixtures ---

func mustGraph(t *testing.T, vertices []graph.Vertex, edges []graph.Edge) *graph.Graph {
	t.Helper()
	g, err := graph.New(vertices, edges)
	if err != nil {
		t.Fatalf("graph.New: %v", err)
	}
	return g
}

// buildSample creates the six-vertex reference graph:
//
//	1 - 2 - 3
//	|  /    |
//	5 ----- 4 - 6
func buildSample(t *testing.T) *graph.Graph {
	t.Helper()
	return mustGraph(t,
		[]graph.Vertex{1, 2, 3, 4, 5, 6},
		[]graph.Edge{{A: 1, B: 2}, {A: 1, B: 5}, {A: 2, B: 3}, {A: 2, B: 5}, {A: 3, B: 4}, {A: 4, B: 5}, {A: 4, B: 6}},
	)
}

func buildCycle(t *testing.T) *graph.Graph {
	t.Helper()
	return mustGraph(t,
		[]graph.Vertex{1, 2, 3, 4, 5},
		[]graph.Edge{{A: 1, B: 2}, {A: 2, B: 3}, {A: 3, B: 4}, {A: 4, B: 5}, {A: 5, B: 1}},
	)
}

const floatTol = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < floatTol
}

func vertexList(vs []graph.Vertex) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = string(rune('0' + v))
	}
	return strings.Join(parts, ",")
}

// --- TopByCentrality ---

func TestTopByCentrality_Sample(t *testing.T) {
	t.Parallel()
	g := buildSample(t)

	for _, method := range []centrality.Method{centrality.MethodEnumerate, centrality.MethodBrandes} {
		t.Run(string(method), func(t *testing.T) {
			opts := DefaultOptions()
			opts.Method = method
			r, err := TopByCentrality(context.Background(), g, opts)
			if err != nil {
				t.Fatalf("TopByCentrality: %v", err)
			}
			// Every route to the leaf 6 crosses 4, which puts 4 ahead of 5.
			if got := vertexList(r.Vertices); got != "4" {
				t.Errorf("top = %s, want 4", got)
			}
			if !approxEqual(r.Score, 0.45) {
				t.Errorf("score = %v, want 0.45", r.Score)
			}
			if r.Score <= 0 || r.Score > 1 {
				t.Errorf("score %v outside (0,1]", r.Score)
			}
			if !(r.Scores[5] > r.Scores[6]) {
				t.Errorf("C(5)=%v should exceed C(6)=%v", r.Scores[5], r.Scores[6])
			}
			if r.Scores[6] != 0 {
				t.Errorf("leaf C(6) = %v, want 0", r.Scores[6])
			}
			if len(r.Scores) != 6 {
				t.Errorf("len(Scores) = %d, want 6", len(r.Scores))
			}
		})
	}
}

func TestTopByCentrality_PathGraph(t *testing.T) {
	t.Parallel()
	g := mustGraph(t, []graph.Vertex{1, 2, 3}, []graph.Edge{{A: 1, B: 2}, {A: 2, B: 3}})

	r, err := TopByCentrality(context.Background(), g, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if got := vertexList(r.Vertices); got != "2" {
		t.Errorf("top = %s, want 2", got)
	}
	if r.Score != 1.0 {
		t.Errorf("score = %v, want exactly 1.0", r.Score)
	}
}

func TestTopByCentrality_Ties(t *testing.T) {
	t.Parallel()

	t.Run("cycle", func(t *testing.T) {
		r, err := TopByCentrality(context.Background(), buildCycle(t), DefaultOptions())
		if err != nil {
			t.Fatal(err)
		}
		if got := vertexList(r.Vertices); got != "1,2,3,4,5" {
			t.Errorf("top = %s, want every vertex", got)
		}
	})

	t.Run("complete graph ties at zero", func(t *testing.T) {
		g := mustGraph(t,
			[]graph.Vertex{4, 3, 2, 1},
			[]graph.Edge{{A: 1, B: 2}, {A: 1, B: 3}, {A: 1, B: 4}, {A: 2, B: 3}, {A: 2, B: 4}, {A: 3, B: 4}},
		)
		r, err := TopByCentrality(context.Background(), g, DefaultOptions())
		if err != nil {
			t.Fatal(err)
		}
		if got := vertexList(r.Vertices); got != "4,3,2,1" {
			t.Errorf("top = %s, want insertion order 4,3,2,1", got)
		}
		if r.Score != 0 {
			t.Errorf("score = %v, want 0", r.Score)
		}
	})
}

func TestTopByCentrality_WorkerCountsAgree(t *testing.T) {
	t.Parallel()
	g := buildSample(t)

	base := DefaultOptions()
	base.Workers = 1
	want, err := TopByCentrality(context.Background(), g, base)
	if err != nil {
		t.Fatal(err)
	}
	for _, workers := range []int{2, 8} {
		opts := DefaultOptions()
		opts.Workers = workers
		opts.PairWorkers = 3
		got, err := TopByCentrality(context.Background(), g, opts)
		if err != nil {
			t.Fatal(err)
		}
		for v, s := range want.Scores {
			if got.Scores[v] != s {
				t.Errorf("workers=%d: C(%d) = %v, want %v", workers, v, got.Scores[v], s)
			}
		}
	}
}

func TestTopByCentrality_Errors(t *testing.T) {
	t.Parallel()

	t.Run("precondition", func(t *testing.T) {
		g := mustGraph(t, []graph.Vertex{1, 2}, []graph.Edge{{A: 1, B: 2}})
		for _, m := range []centrality.Method{centrality.MethodEnumerate, centrality.MethodBrandes} {
			opts := DefaultOptions()
			opts.Method = m
			_, err := TopByCentrality(context.Background(), g, opts)
			if !errors.Is(err, centrality.ErrPrecondition) {
				t.Errorf("%s: err = %v, want ErrPrecondition", m, err)
			}
		}
	})

	t.Run("disconnected", func(t *testing.T) {
		g := mustGraph(t, []graph.Vertex{1, 2, 3, 4}, []graph.Edge{{A: 1, B: 2}, {A: 2, B: 3}})
		r, err := TopByCentrality(context.Background(), g, DefaultOptions())
		if !errors.Is(err, centrality.ErrDisconnected) {
			t.Errorf("err = %v, want ErrDisconnected", err)
		}
		if r.Vertices != nil || r.Scores != nil {
			t.Errorf("expected no partial ranking, got %+v", r)
		}
	})

	t.Run("unknown method", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Method = "sampled"
		if _, err := TopByCentrality(context.Background(), buildSample(t), opts); err == nil {
			t.Error("expected error for unknown method")
		}
	})
}

// --- Select ---

func TestSelect_ExactEquality(t *testing.T) {
	t.Parallel()
	g := mustGraph(t, []graph.Vertex{1, 2, 3}, []graph.Edge{{A: 1, B: 2}, {A: 2, B: 3}})

	r := Select(g, map[graph.Vertex]float64{1: 0.1, 2: 0.1 + 1e-12, 3: 0.1})
	if got := vertexList(r.Vertices); got != "2" {
		t.Errorf("top = %s, want 2 (no tolerance band)", got)
	}

	r = Select(g, map[graph.Vertex]float64{1: 0.5, 2: 0.25, 3: 0.5})
	if got := vertexList(r.Vertices); got != "1,3" {
		t.Errorf("top = %s, want 1,3", got)
	}
	if !r.IsTop(3) || r.IsTop(2) {
		t.Error("IsTop reports wrong membership")
	}
}

// --- Telemetry ---

func TestTopByCentrality_EmitsEvents(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "rank.jsonl")
	em, err := telemetry.NewEmitter(path)
	if err != nil {
		t.Fatal(err)
	}

	opts := DefaultOptions()
	opts.Emitter = em
	opts.RunID = "run-1"
	if _, err := TopByCentrality(context.Background(), buildSample(t), opts); err != nil {
		t.Fatal(err)
	}
	if err := em.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if n := strings.Count(out, `"kind":"`+telemetry.KindVertexScored+`"`); n != 6 {
		t.Errorf("vertex_scored events = %d, want 6", n)
	}
	for _, kind := range []string{telemetry.KindRankStart, telemetry.KindRankDone} {
		if !strings.Contains(out, `"kind":"`+kind+`"`) {
			t.Errorf("missing %s event", kind)
		}
	}
	if strings.Count(out, `"run":"run-1"`) != 8 {
		t.Errorf("expected every event tagged with run-1:\n%s", out)
	}
}
