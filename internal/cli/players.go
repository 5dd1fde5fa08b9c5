package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPlayersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "players",
		Short: "Player directory commands",
	}

	cmd.AddCommand(newPlayersListCmd())
	cmd.AddCommand(newPlayersCreateCmd())

	return cmd
}

func newPlayersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all players",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result PlayersResult

			if err := client.Get(cmd.Context(), "/players", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newPlayersCreateCmd() *cobra.Command {
	var playerID, epicID string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a player id with its Epic account id",
		RunE: func(cmd *cobra.Command, args []string) error {
			if playerID == "" || epicID == "" {
				return fmt.Errorf("--player-id and --epic-id are required")
			}

			req := map[string]string{
				"PLAYER_ID": playerID,
				"EPIC_ID":   epicID,
			}
			var result MessageResult

			if err := client.Put(cmd.Context(), "/player_create", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&playerID, "player-id", "", "Player id (required)")
	cmd.Flags().StringVar(&epicID, "epic-id", "", "Epic account id (required)")
	_ = cmd.MarkFlagRequired("player-id")
	_ = cmd.MarkFlagRequired("epic-id")

	return cmd
}
