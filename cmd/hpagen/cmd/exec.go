package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/hpagen/pipeline"
)

var (
	execResume bool
	execForce  bool
)

var execCmd = &cobra.Command{
	Use:   "exec",
	Short: "Run all eight stages in order",
	Long: `Runs the cluster builder, entrance discovery, teleport entrance
materialization, the intra-cluster connector, the intra-cluster trimmer,
the inter-cluster connector, teleport edge wiring, and JPS acceleration,
in that order.

With --resume, the leading stages whose output already reflects a
completed run are skipped, up to the first stage that is not complete. With --force, every stage's own output is cleared first and the
stage always re-runs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return fmt.Errorf("hpagen: %w", err)
		}
		defer a.Close()

		result, err := pipeline.Execute(context.Background(), a.Executor(), pipeline.Options{
			Resume: execResume,
			Force:  execForce,
		})
		if err != nil {
			return fmt.Errorf("hpagen: %w", err)
		}

		cmd.Printf("ran: %v\nskipped: %v\n", result.Ran, result.Skipped)
		return nil
	},
}

func init() {
	execCmd.Flags().BoolVar(&execResume, "resume", false, "skip stages already complete")
	execCmd.Flags().BoolVar(&execForce, "force", false, "clear and re-run every stage")
	rootCmd.AddCommand(execCmd)
}
