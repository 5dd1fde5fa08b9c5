package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrative commands run against the configured storage",
	}
	cmd.AddCommand(newSetPasswordCmd())
	return cmd
}

func newSetPasswordCmd() *cobra.Command {
	var playerID, password string

	cmd := &cobra.Command{
		Use:   "set-password",
		Short: "Set the login password for an existing player",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if playerID == "" || password == "" {
				return errors.New("--player-id and --password are required")
			}

			_, logger, app, err := setup(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			if err := app.AuthService.SetPassword(cmd.Context(), playerID, password); err != nil {
				logger.Error("failed to set password",
					slog.String("player_id", playerID),
					slog.String("error", err.Error()),
				)
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Password set for %s\n", playerID)
			return nil
		},
	}

	cmd.Flags().StringVar(&playerID, "player-id", "", "Player id (required)")
	cmd.Flags().StringVar(&password, "password", "", "New password (required)")
	return cmd
}
