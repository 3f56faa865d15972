package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papapumpkin/pivot/internal/config"
	"github.com/papapumpkin/pivot/internal/rank"
	"github.com/papapumpkin/pivot/internal/source"
	"github.com/papapumpkin/pivot/internal/telemetry"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank every vertex and report the most central",
	Long: `Scores every vertex by betweenness centrality and prints the vertex, or
tie set of vertices, with the maximum score.

With --watch, the graph file is re-read and re-ranked whenever it changes.`,
	Args: cobra.NoArgs,
	RunE: runRank,
}

func init() {
	rankCmd.Flags().String("format", "", "report format: summary, table, or json")
	rankCmd.Flags().Bool("watch", false, "re-rank when the graph file changes")
	_ = viper.BindPFlag("format", rankCmd.Flags().Lookup("format"))
	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, _ []string) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	strategy, err := rank.ParseFormat(e.cfg.Format)
	if err != nil {
		return err
	}
	opts, err := e.rankOptions()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	if err := rankOnce(ctx, e, opts, strategy, out); err != nil {
		return err
	}

	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		return watchAndRank(ctx, e, opts, strategy, out)
	}
	return nil
}

func rankOnce(ctx context.Context, e *env, opts rank.Options, strategy rank.ReportStrategy, out io.Writer) error {
	g, err := e.loadGraph(ctx)
	if err != nil {
		return err
	}

	start := time.Now()
	a := rank.NewAnalyzer(g, opts)
	if err := a.Analyze(ctx); err != nil {
		return fmt.Errorf("ranking %d vertices: %w", a.Len(), err)
	}
	top, _ := a.Top()
	e.log.Info("ranking complete",
		"method", opts.Method,
		"vertices", a.Len(),
		"top", len(top.Vertices),
		"score", top.Score,
		"elapsed", time.Since(start))

	fmt.Fprintln(out, a.Report(strategy))
	return nil
}

// watchAndRank re-ranks on every settled change to the graph file until ctx
// is cancelled. Failures on a changed file are logged and the watch goes on.
func watchAndRank(ctx context.Context, e *env, opts rank.Options, strategy rank.ReportStrategy, out io.Writer) error {
	if e.cfg.Source != config.SourceFile {
		return errors.New("--watch requires a graph file (--graph or source: file)")
	}
	w, err := source.NewWatcher(e.cfg.GraphFile)
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	if err := w.Start(); err != nil {
		return fmt.Errorf("watching %s: %w", e.cfg.GraphFile, err)
	}
	defer w.Stop()

	e.log.Info("watching graph file", "file", w.File)
	for {
		select {
		case <-ctx.Done():
			return nil
		case change := <-w.Changes:
			_ = e.emitter.Emit(telemetry.Event{
				Kind:   telemetry.KindGraphChanged,
				RunID:  e.runID,
				Source: change.File,
				Data:   map[string]string{"change": change.Kind.String()},
			})
			if change.Kind == source.ChangeRemoved {
				e.log.Warn("graph file removed; waiting for it to return", "file", change.File)
				continue
			}
			if err := rankOnce(ctx, e, opts, strategy, out); err != nil {
				e.log.Error("re-rank failed", "error", err)
			}
		}
	}
}
