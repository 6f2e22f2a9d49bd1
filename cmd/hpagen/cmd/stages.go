package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/hpagen/app"
	"github.com/katalvlaran/hpagen/pipeline"
)

func init() {
	rootCmd.AddCommand(
		stageCmd("build-clusters", "Partition walkable tiles into bounded-box clusters", pipeline.StageBuild),
		stageCmd("entrance-discovery", "Discover boundary entrances between adjacent clusters", pipeline.StageEntrances),
		stageCmd("teleport-entrances", "Materialize entrance rows for teleport edge endpoints", pipeline.StageTeleportEntrances),
		stageCmd("intra-connector", "Compute intra-cluster shortest paths between entrances", pipeline.StageIntra),
		stageCmd("intra-trim", "Cap intra-cluster edges fanning out per entrance", pipeline.StageIntraTrim),
		stageCmd("inter-connector", "Wire unit-cost edges across matched boundary entrances", pipeline.StageInter),
		stageCmd("teleport-edges", "Wire directed interconnections for teleport edges", pipeline.StageTeleportEdges),
		stageCmd("jps-accelerator", "Precompute jump-point spans and jumps", pipeline.StageJPS),
	)
}

func stageCmd(use, short string, stage pipeline.Stage) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStage(cmd, func(a *app.App) error {
				return a.RunStage(context.Background(), stage)
			})
		},
	}
}
