package main

import (
	stderrors "errors"

	"github.com/spf13/cobra"

	"github.com/vango-dev/autoroute/internal/codegen"
	"github.com/vango-dev/autoroute/internal/config"
	"github.com/vango-dev/autoroute/internal/errors"
	"github.com/vango-dev/autoroute/pkg/router"
)

// =============================================================================
// autoroute gen
// =============================================================================

func genCmd(flags *globalFlags) *cobra.Command {
	var (
		output string
		check  bool
	)

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate routes_gen.go from route files",
		Long: `Scan the routes directory and generate the routes_gen.go file.

Every file that exposes a view (an exported function named View or ending
in View) is registered under its module identifier, together with any
//route:url and //route:name directives found in the view's doc comment.

The output is deterministic - running it multiple times produces identical
output unless the routes change. With --check nothing is written and the
command fails when the file on disk is out of date.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen(cmd, flags, output, check)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: <routes>/routes_gen.go)")
	cmd.Flags().BoolVar(&check, "check", false, "Fail if the generated file is out of date instead of writing it")

	return cmd
}

func runGen(cmd *cobra.Command, flags *globalFlags, output string, check bool) error {
	cfg, err := flags.loadConfig()
	if err != nil {
		return err
	}

	routesDir := cfg.RoutesPath()
	if output == "" {
		output = cfg.OutputPath()
	}

	p := newPrinter(cmd.OutOrStdout(), flags.noColor)
	p.info("Scanning %s...", routesDir)

	routes, err := discoverSource(cmd, flags, cfg)
	if err != nil {
		return err
	}
	p.info("Found %d routes", len(routes))

	if err := router.Validate(routes); err != nil {
		var multi *router.MultiValidationError
		if stderrors.As(err, &multi) {
			for _, ve := range multi.Errors {
				p.warn("%s", ve.Message)
			}
		}
	}

	routesImport, err := cfg.ImportPath(routesDir)
	if err != nil {
		return err
	}

	gen := codegen.NewGenerator(routes, routesImport)
	if check {
		if err := gen.Check(output); err != nil {
			return err
		}
		p.success("%s is up to date", output)
		return nil
	}

	changed, err := gen.WriteFile(output)
	if err != nil {
		return err
	}
	if changed {
		p.success("Generated %s", output)
	} else {
		p.success("%s is up to date", output)
	}
	return nil
}

// discoverSource runs discovery over the configured routes directory with
// the source loader.
func discoverSource(cmd *cobra.Command, flags *globalFlags, cfg *config.Config) ([]router.Route[router.SourceView], error) {
	opts := append(cfg.RouterOptions(), router.WithLogger(flags.newLogger(cmd, cfg)))

	routes, err := router.Discover[router.SourceView](cfg.RoutesPath(), router.NewSourceLoader(), opts...)
	if err != nil {
		return nil, errors.FromRouteError(err)
	}
	return routes, nil
}
