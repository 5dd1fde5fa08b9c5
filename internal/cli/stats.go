package cli

import (
	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Player statistics commands",
	}

	cmd.AddCommand(newStatsFetchCmd("current", "Show current statistics", "/stats"))
	cmd.AddCommand(newStatsFetchCmd("history", "Show statistics history", "/stats_hist"))

	return cmd
}

func newStatsFetchCmd(use, short, path string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result StatsResult

			if err := client.Get(cmd.Context(), path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}
