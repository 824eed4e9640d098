package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/baharkarakas/blog-api/internal/config"
	"github.com/baharkarakas/blog-api/internal/logger"
)

func newMigrateCmd(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Args:  cobra.NoArgs,
		Short: "Apply postgres migrations or create mongo indexes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*cfgFile)
			if err != nil {
				return err
			}
			slog.SetDefault(logger.New(cfg.Env))

			set, err := openStore(cmd.Context(), cfg, true)
			if err != nil {
				return err
			}
			slog.Info("store ready", "driver", cfg.StoreDriver)
			return set.Close(cmd.Context())
		},
	}
}
