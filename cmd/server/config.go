package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ochronus/hello-inertia/core/logger"
)

func configCmd(flags *loadFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration with the secret key redacted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			log := logger.New(logger.WithOutput(cmd.OutOrStdout()), logger.WithJSONFormatter())
			log.Info("resolved configuration",
				slog.Any("config", cfg),
				slog.Bool("cookie_secure", cfg.CookieSecure()),
				logger.Duration(cfg.CookieTTL()),
				logger.Addr(cfg.Addr()),
				slog.String("base_url", cfg.BaseURL()),
				slog.String("config_dir", flags.dir),
			)
			return nil
		},
	}
}
