package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/pivot/internal/paths"
)

var pathsCmd = &cobra.Command{
	Use:   "paths <source> <target>",
	Short: "List every shortest path between two vertices",
	Args:  cobra.ExactArgs(2),
	RunE:  runPaths,
}

func init() {
	rootCmd.AddCommand(pathsCmd)
}

func runPaths(cmd *cobra.Command, args []string) error {
	s, err := parseVertex(args[0])
	if err != nil {
		return err
	}
	t, err := parseVertex(args[1])
	if err != nil {
		return err
	}
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	g, err := e.loadGraph(cmd.Context())
	if err != nil {
		return err
	}
	enum := paths.NewEnumerator(g, paths.Options{MaxPaths: e.cfg.MaxPaths})

	dist, err := enum.MinDistance(s, t)
	if err != nil {
		return err
	}
	all, err := enum.AllShortestPaths(s, t)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "distance %d to %d: %d (%d shortest paths)\n", s, t, dist, len(all))
	for _, p := range all {
		fmt.Fprintf(out, "  %s\n", p)
	}
	return nil
}
