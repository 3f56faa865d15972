package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/pivot/internal/centrality"
	"github.com/papapumpkin/pivot/internal/graph"
)

var centralityCmd = &cobra.Command{
	Use:   "centrality <vertex>",
	Short: "Print the betweenness centrality of one vertex",
	Args:  cobra.ExactArgs(1),
	RunE:  runCentrality,
}

func init() {
	rootCmd.AddCommand(centralityCmd)
}

func runCentrality(cmd *cobra.Command, args []string) error {
	v, err := parseVertex(args[0])
	if err != nil {
		return err
	}
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	opts, err := e.rankOptions()
	if err != nil {
		return err
	}
	g, err := e.loadGraph(cmd.Context())
	if err != nil {
		return err
	}

	var score float64
	switch opts.Method {
	case centrality.MethodBrandes:
		if !g.Has(v) {
			return fmt.Errorf("%w: %d", graph.ErrUnknownVertex, v)
		}
		scores, err := centrality.Brandes(cmd.Context(), g)
		if err != nil {
			return err
		}
		score = scores[v]
	default:
		calc := centrality.NewCalculator(g, calculatorOptions(opts))
		score, err = calc.Centrality(cmd.Context(), v)
		if err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "C(%d) = %s\n", v, formatScore(score))
	return nil
}
