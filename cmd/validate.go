package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/pivot/internal/graph"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that the configured graph loads and is connected",
	Args:  cobra.NoArgs,
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()
	// Connectivity is reported below rather than failing the load.
	e.cfg.RequireConnected = false

	g, err := e.loadGraph(cmd.Context())
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ graph: %v\n", err)
		return errors.New("validation failed")
	}
	fmt.Fprintf(os.Stderr, "✓ graph loaded from %s: %d vertices, %d edges\n",
		e.src.Name(), g.Len(), len(g.Edges()))

	ok := true
	if comps := graph.Components(g); len(comps) > 1 {
		fmt.Fprintf(os.Stderr, "✗ graph is disconnected: %d components\n", len(comps))
		for i, c := range comps {
			fmt.Fprintf(os.Stderr, "    component %d: %v\n", i+1, c)
		}
		ok = false
	} else {
		fmt.Fprintln(os.Stderr, "✓ graph is connected")
	}

	if g.Len() < 3 {
		fmt.Fprintf(os.Stderr, "✗ betweenness needs at least 3 vertices, have %d\n", g.Len())
		ok = false
	}

	if !ok {
		return errors.New("validation failed")
	}
	return nil
}
