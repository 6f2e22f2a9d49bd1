// Package cmd implements the hpagen command-line interface: one
// subcommand per pipeline stage plus an exec subcommand that runs all
// eight in order, with shared global flags for store locations, scope,
// and logging.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/hpagen/app"
	"github.com/katalvlaran/hpagen/config"
	"github.com/katalvlaran/hpagen/logging"
)

var cfgFile string

// rootCmd is the base command; the stage subcommands are registered in
// stages.go's init() and exec in exec.go's init().
var rootCmd = &cobra.Command{
	Use:          "hpagen",
	Short:        "Offline hierarchical pathfinding precomputation pipeline",
	SilenceUsage: true,
	Long: `hpagen precomputes a hierarchical pathfinding graph over a tile world:
clusters, entrances, intra- and inter-cluster edges, teleport links, and
jump-point acceleration data, written to a SQLite output store.

Run a single stage directly (e.g. "hpagen build-clusters"), or run the
whole pipeline in order with "hpagen exec".`,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./hpagen.yaml)")
	flags.String("tiles-db", "tiles.db", "path to the read-only input tiles database")
	flags.String("out-db", "out.db", "path to the output database")
	flags.String("planes", "", "comma-separated plane ids in scope (default: all)")
	flags.String("chunk-range", "", "chunk rectangle in scope, xmin:xmax,zmin:zmax (default: unbounded)")
	flags.Int("threads", 0, "worker count for parallel stages (default: runtime.NumCPU())")
	flags.Bool("dry-run", false, "log each stage as skipped; no stage is computed and nothing is written to the output store")
	flags.Bool("store-paths", false, "persist full breakpoint-compressed paths on intra-cluster edges")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("log-format", "text", "log format: text or json")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig resolves the layered Config for the current command's flags.
func loadConfig(fs *pflag.FlagSet) (*config.Config, error) {
	return config.Load(cfgFile, fs)
}

// openApp loads config, builds a logger, and opens the store-backed App.
func openApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		return nil, err
	}
	logger, runID := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	return app.Open(context.Background(), cfg, logger, runID.String())
}

// runStage is the shared body for every single-stage subcommand: open the
// store, run exactly one stage, close, report.
func runStage(cmd *cobra.Command, stage func(a *app.App) error) error {
	a, err := openApp(cmd)
	if err != nil {
		return fmt.Errorf("hpagen: %w", err)
	}
	defer a.Close()

	if err := stage(a); err != nil {
		return fmt.Errorf("hpagen: %w", err)
	}
	return nil
}
