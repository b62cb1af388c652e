// Command autoroute discovers convention-based routes and generates the
// registration code that wires them into a router.Registry.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/vango-dev/autoroute/internal/config"
	"github.com/vango-dev/autoroute/internal/errors"
	"github.com/vango-dev/autoroute/internal/logger"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globalFlags are shared by every command.
type globalFlags struct {
	dir      string
	logLevel string
	noColor  bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "autoroute",
		Short: "Convention-based route discovery for Go web apps",
		Long: `autoroute turns a directory of Go files into an ordered routing table.

Every file under the routes directory that exposes a view becomes a route:

  index.go          → /
  current-time.go   → /current-time
  colors/index.go   → /colors
  colors/add.go     → /colors/add

A view sets its own URL or name with doc comment directives:

  //route:url /colors/<slug:slug>
  //route:name colors_slug

Literal routes are ordered before parameter routes, so /colors/add is never
captured by /colors/<slug:slug>.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flags.noColor {
				errors.DisableColors()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.dir, "dir", "C", ".", "Project directory")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		genCmd(flags),
		routesCmd(flags),
		newCmd(flags),
		versionCmd(),
	)

	return rootCmd
}

// loadConfig finds the project root from the --dir flag and loads its config.
func (f *globalFlags) loadConfig() (*config.Config, error) {
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
	return cfg, nil
}

// newLogger builds the discovery logger for a command.
func (f *globalFlags) newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	return logger.New(cmd.ErrOrStderr(), logger.WithLevel(level), logger.WithNoColor(f.noColor))
}

// printer writes CLI status lines, colored when w is a terminal.
type printer struct {
	w     io.Writer
	color bool
}

func newPrinter(w io.Writer, noColor bool) *printer {
	p := &printer{w: w}
	if f, ok := w.(*os.File); ok && !noColor {
		p.color = isatty.IsTerminal(f.Fd())
	}
	return p
}

func (p *printer) paint(code, text string) string {
	if !p.color {
		return text
	}
	return code + text + "\033[0m"
}

// success prints a success message.
func (p *printer) success(format string, args ...any) {
	fmt.Fprintf(p.w, "%s %s\n", p.paint("\033[32m", "✓"), fmt.Sprintf(format, args...))
}

// info prints an info message.
func (p *printer) info(format string, args ...any) {
	fmt.Fprintf(p.w, "  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func (p *printer) warn(format string, args ...any) {
	fmt.Fprintf(p.w, "%s %s\n", p.paint("\033[33m", "⚠"), fmt.Sprintf(format, args...))
}
