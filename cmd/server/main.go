package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mcoot/fnstats/internal/api"
	"github.com/mcoot/fnstats/internal/config"
	"github.com/mcoot/fnstats/internal/factory"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "fnstats-server",
		Short:        "Serve the player statistics API",
		SilenceUsage: true,
		RunE:         runServe,
	}
	config.AddFlags(cmd)

	cmd.AddCommand(newAdminCmd())
	return cmd
}

// setup loads config and wires the application. The caller closes the app.
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, *factory.App, error) {
	cfg, err := config.Load(cmd)
	if err != nil {
		return nil, nil, nil, err
	}

	level, _ := cfg.SlogLevel()
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	app, err := factory.New(cmd.Context(), cfg.Factory(logger))
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		return nil, nil, nil, err
	}
	return cfg, logger, app, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	cmd.SetContext(ctx)

	cfg, logger, app, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("failed to close storage", slog.String("error", err.Error()))
		}
	}()

	router := api.NewRouter(api.RouterConfig{
		Logger:      logger,
		Storage:     app.Storage,
		AuthService: app.AuthService,
	})

	server := api.NewServer(router, api.ServerConfig{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}, logger)

	logger.Info("server starting",
		slog.String("addr", server.Addr()),
		slog.String("storage", cfg.StorageType),
	)

	if err := server.Run(ctx); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("server stopped")
	return nil
}
