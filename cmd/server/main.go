package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ochronus/hello-inertia/app"
	"github.com/ochronus/hello-inertia/core/config"
	"github.com/ochronus/hello-inertia/core/logger"
	"github.com/ochronus/hello-inertia/middleware"
)

const serviceName = "auth-example"

// Version information set at build time.
var version = "dev"

func main() {
	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

type loadFlags struct {
	dir    string
	dotenv string
}

func (f *loadFlags) register(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&f.dir, "config-dir", config.DefaultDir, "directory holding default.* and local.* config files")
	cmd.PersistentFlags().StringVar(&f.dotenv, "dotenv", config.DefaultDotEnv, "path of the .env file; empty disables it")
}

func (f *loadFlags) load() (*config.Config, error) {
	return config.Load(config.WithDir(f.dir), config.WithDotEnv(f.dotenv))
}

func rootCmd() *cobra.Command {
	flags := &loadFlags{}

	cmd := &cobra.Command{
		Use:   serviceName,
		Short: "Inertia demo backend with cookie sessions and optional SSR",
		Long: `Serves the Inertia frontend, keeps the login identity in a protected
cookie and supervises the optional node SSR renderer.

Configuration is layered: built-in defaults, config/default.*, config/local.*,
APP__* environment variables, then the PORT and INERTIA_SSR overrides.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), flags, cmd.OutOrStdout())
		},
	}
	flags.register(cmd)

	cmd.AddCommand(
		serveCmd(flags),
		keygenCmd(),
		configCmd(flags),
	)
	return cmd
}

func serveCmd(flags *loadFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), flags, cmd.OutOrStdout())
		},
	}
}

// serve returns startup and runtime failures without logging them; main
// reports the returned error once.
func serve(ctx context.Context, flags *loadFlags, out io.Writer) error {
	cfg, err := flags.load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	log := newLogger(cfg, out)
	logger.SetAsDefault(log)
	log.Info("configuration loaded", slog.Any("config", cfg))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, app.WithLogger(log))
	if err != nil {
		return fmt.Errorf("initialize application: %w", err)
	}

	if err := a.Run(ctx); err != nil {
		return fmt.Errorf("run application: %w", err)
	}
	log.Info("application stopped")
	return nil
}

func newLogger(cfg *config.Config, out io.Writer) *slog.Logger {
	opts := []logger.Option{
		logger.WithOutput(out),
		logger.WithContextExtractors(func(ctx context.Context) (slog.Attr, bool) {
			id, ok := middleware.GetRequestID(ctx)
			return logger.RequestID(id), ok
		}),
	}
	if cfg.Mode() == config.ModeProd {
		opts = append(opts, logger.WithProduction(serviceName))
	} else {
		opts = append(opts, logger.WithDevelopment(serviceName))
	}
	return logger.New(opts...)
}
