package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketplace_escrow/internal/adapter/http/routes"
	"marketplace_escrow/internal/config"
	"marketplace_escrow/pkg"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var Version = "dev"

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "escrow-api",
		Short:         "Order settlement and escrow lifecycle service",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), configPath)
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv("CONFIG_PATH"), "path to a YAML config file")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP API and the clearing sweeper",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runServe(cmd.Context(), configPath)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create the tables of the configured store",
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, logger, err := bootstrap(configPath)
				if err != nil {
					return err
				}
				defer logger.Sync() //nolint:errcheck
				if err := routes.Migrate(cmd.Context(), cfg, logger); err != nil {
					return err
				}
				logger.Info("[migrate] store is up to date", zap.String("driver", cfg.Store.Driver))
				return nil
			},
		},
		newSweepCmd(&configPath),
	)
	return root
}

func newSweepCmd(configPath *string) *cobra.Command {
	var (
		limit int
		at    string
	)
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Release orders whose clearing period has elapsed, once",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var now time.Time
			if at != "" {
				t, err := time.Parse(time.RFC3339, at)
				if err != nil {
					return err
				}
				now = t.UTC()
			}

			cfg, logger, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			app, err := routes.Build(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer app.Close()

			res, err := app.Settlement.SweepClearing(cmd.Context(), now, limit)
			if err != nil {
				return err
			}
			logger.Info("[sweep] done",
				zap.Int("scanned", res.Scanned),
				zap.Int("released", res.Released),
				zap.Int("skipped", res.Skipped),
				zap.Int("failed", res.Failed))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum orders to release (0 uses the configured batch size)")
	cmd.Flags().StringVar(&at, "at", "", "sweep as of this RFC3339 time instead of now")
	return cmd
}

func runServe(ctx context.Context, configPath string) error {
	cfg, logger, err := bootstrap(configPath)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return routes.Run(ctx, cfg, logger)
}

func bootstrap(configPath string) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	logger, err := pkg.NewLogger(cfg.Logger.Options())
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
