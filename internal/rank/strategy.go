package rank

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/pivot/internal/graph"
)

// noRanking is rendered by every strategy when Analyze has not succeeded.
const noRanking = "No ranking computed. Call Analyze() first."

// ReportStrategy defines how to present a ranking. Each implementation
// produces a distinct view of the same result.
type ReportStrategy interface {
	Render(g *graph.Graph, r *Ranking) string
}

// ParseFormat returns the report strategy registered under name: "summary",
// "table", or "json".
func ParseFormat(name string) (ReportStrategy, error) {
	switch name {
	case "summary", "":
		return SummaryStrategy{}, nil
	case "table":
		return TableStrategy{}, nil
	case "json":
		return JSONStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown report format %q (want summary, table, or json)", name)
	}
}

// SummaryStrategy renders the one-line answer: tie count, maximum score, and
// the comma-separated tie set.
type SummaryStrategy struct{}

// Render produces e.g. "Answer: k=2, SBC=0.25, Top 2 nodes: 3, 7".
func (s SummaryStrategy) Render(_ *graph.Graph, r *Ranking) string {
	if r == nil {
		return noRanking
	}
	k := len(r.Vertices)
	noun := "node"
	if k != 1 {
		noun = "nodes"
	}
	return fmt.Sprintf("Answer: k=%d, SBC=%s, Top %d %s: %s",
		k, formatScore(r.Score), k, noun, joinVertices(r.Vertices))
}

// TableStrategy renders every vertex ranked by score, marking the tie set.
type TableStrategy struct{}

var (
	styleTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00BFFF"))
	styleHeader = lipgloss.NewStyle().Bold(true).Underline(true)
	styleTop    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700"))
)

// Render produces a ranked table with a star against each top vertex.
func (s TableStrategy) Render(g *graph.Graph, r *Ranking) string {
	if r == nil {
		return noRanking
	}
	order := rankedVertices(g, r)

	var b strings.Builder
	b.WriteString(styleTitle.Render("# Betweenness Ranking"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s\n", styleHeader.Render(fmt.Sprintf("%-4s %-8s %-10s", "rank", "vertex", "score")))
	for i, v := range order {
		line := fmt.Sprintf("%-4d %-8d %-10.6f", i+1, v, r.Scores[v])
		if r.IsTop(v) {
			line += " " + styleTop.Render("★ top")
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "\n%d vertices, %d edges, %d at maximum\n",
		g.Len(), len(g.Edges()), len(r.Vertices))
	return b.String()
}

// JSONStrategy renders the ranking as an indented JSON document.
type JSONStrategy struct{}

type jsonScore struct {
	Vertex int     `json:"vertex"`
	Score  float64 `json:"score"`
}

type jsonReport struct {
	K      int         `json:"k"`
	Score  float64     `json:"score"`
	Top    []int       `json:"top"`
	Scores []jsonScore `json:"scores"`
}

// Render produces the JSON document; scores are listed in rank order.
func (s JSONStrategy) Render(g *graph.Graph, r *Ranking) string {
	if r == nil {
		return noRanking
	}
	rep := jsonReport{
		K:     len(r.Vertices),
		Score: r.Score,
		Top:   make([]int, 0, len(r.Vertices)),
	}
	for _, v := range r.Vertices {
		rep.Top = append(rep.Top, int(v))
	}
	for _, v := range rankedVertices(g, r) {
		rep.Scores = append(rep.Scores, jsonScore{Vertex: int(v), Score: r.Scores[v]})
	}
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(data)
}

// --- helpers ---

// rankedVertices returns the scored vertices sorted by score descending,
// with graph insertion order as tiebreaker.
func rankedVertices(g *graph.Graph, r *Ranking) []graph.Vertex {
	order := make([]graph.Vertex, 0, len(r.Scores))
	for _, v := range g.Vertices() {
		if _, ok := r.Scores[v]; ok {
			order = append(order, v)
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return r.Scores[order[i]] > r.Scores[order[j]]
	})
	return order
}

func formatScore(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func joinVertices(vs []graph.Vertex) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.Itoa(int(v))
	}
	return strings.Join(parts, ", ")
}
