// Command demo serves the colour site whose pages live under app/routes.
//
// Routes are discovered at startup by walking the routes directory and
// resolving each file through the generated registry, so the binary runs
// from the project checkout:
//
//	go run ./cmd/demo
//	AUTOROUTE_STORE_DRIVER=postgres AUTOROUTE_STORE_DATABASE_URL=postgres://... go run ./cmd/demo
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/autoroute/internal/config"
	"github.com/vango-dev/autoroute/internal/errors"
	"github.com/vango-dev/autoroute/internal/logger"
)

type flags struct {
	dir      string
	addr     string
	logLevel string
	seed     bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:           "demo",
		Short:         "Serve the autoroute colour demo",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(f)
			if err != nil {
				return err
			}
			level, err := logger.ParseLevel(cfg.LogLevel)
			if err != nil {
				return errors.New("E122").WithDetail(err.Error())
			}
			log := logger.New(cmd.ErrOrStderr(), logger.WithLevel(level))
			return serve(cmd.Context(), cfg, log, f.addr, f.seed)
		},
	}

	cmd.Flags().StringVarP(&f.dir, "dir", "C", ".", "Project directory")
	cmd.Flags().StringVar(&f.addr, "addr", "", "Listen address (overrides server.host and server.port)")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.Flags().BoolVar(&f.seed, "seed", true, "Create the default colours on startup")

	return cmd
}

func loadConfig(f *flags) (*config.Config, error) {
	root, err := config.FindProjectRoot(f.dir)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
