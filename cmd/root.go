package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "pivot",
	Short: "Find the most central vertices of an undirected graph",
	Long: `Pivot ranks every vertex of a connected undirected graph by exact
shortest-path betweenness centrality and reports the vertex, or tie set of
vertices, with the highest score.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default .pivot.yaml)")
	flags.String("graph", "", "TOML graph file (implies --source file)")
	flags.String("source", "", "graph source: builtin, file, or neo4j")
	flags.String("method", "", "scoring method: enumerate or brandes")
	flags.Int("workers", 0, "vertices scored concurrently (default GOMAXPROCS)")
	flags.Int("max-paths", 0, "cap on paths held per vertex pair (0 = unbounded)")
	flags.Bool("require-connected", false, "reject disconnected graphs before scoring")
	flags.String("telemetry", "", "append JSONL telemetry events to this file")
	flags.String("log-level", "", "log level: debug, info, warn, or error")

	bind := map[string]string{
		"graph_file":        "graph",
		"source":            "source",
		"method":            "method",
		"workers":           "workers",
		"max_paths":         "max-paths",
		"require_connected": "require-connected",
		"telemetry_file":    "telemetry",
		"log.level":         "log-level",
	}
	for key, flag := range bind {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".pivot")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("PIVOT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}
