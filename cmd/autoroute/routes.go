package main

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vango-dev/autoroute/internal/errors"
	"github.com/vango-dev/autoroute/pkg/router"
)

// =============================================================================
// autoroute routes
// =============================================================================

// routeJSON is the --json representation of a route.
type routeJSON struct {
	Pattern string `json:"pattern"`
	Name    string `json:"name"`
	Module  string `json:"module"`
	View    string `json:"view"`
	File    string `json:"file"`
}

func routesCmd(flags *globalFlags) *cobra.Command {
	var (
		check  bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Print the routing table in match order",
		Long: `Discover routes and print them in the order a first-match-wins router
tries them.

With --check, duplicate patterns and duplicate names are reported and the
command fails.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoutes(cmd, flags, check, asJSON)
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Fail on duplicate patterns or names")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print routes as JSON")

	return cmd
}

func runRoutes(cmd *cobra.Command, flags *globalFlags, check, asJSON bool) error {
	cfg, err := flags.loadConfig()
	if err != nil {
		return err
	}

	routes, err := discoverSource(cmd, flags, cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		rows := make([]routeJSON, len(routes))
		for i, r := range routes {
			rows[i] = routeJSON{
				Pattern: r.Pattern,
				Name:    r.Name,
				Module:  r.Module,
				View:    viewRef(r.Handler),
				File:    relFile(cfg.RoutesPath(), r.File),
			}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rows); err != nil {
			return err
		}
	} else {
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "PATTERN\tNAME\tMODULE\tVIEW")
		for _, r := range routes {
			fmt.Fprintf(tw, "/%s\t%s\t%s\t%s\n", r.Pattern, r.Name, r.Module, viewRef(r.Handler))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if !check {
		return nil
	}

	if err := router.Validate(routes); err != nil {
		var multi *router.MultiValidationError
		if stderrors.As(err, &multi) {
			for _, ve := range multi.Errors {
				fmt.Fprint(cmd.ErrOrStderr(), router.FormatValidationError(ve))
			}
		}
		return errors.FromRouteError(err)
	}
	return nil
}

func viewRef(v router.SourceView) string {
	return v.Package + "." + v.Func
}

func relFile(root, file string) string {
	rel, err := filepath.Rel(root, file)
	if err != nil {
		return file
	}
	return filepath.ToSlash(rel)
}
