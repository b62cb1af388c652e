package main

import (
	"bytes"
	"go/format"
	"go/parser"
	"go/token"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"
	"unicode"

	"github.com/spf13/cobra"
	"golang.org/x/mod/module"

	"github.com/vango-dev/autoroute/internal/codegen"
	"github.com/vango-dev/autoroute/internal/errors"
	"github.com/vango-dev/autoroute/pkg/router"
)

// =============================================================================
// autoroute new
// =============================================================================

func newCmd(flags *globalFlags) *cobra.Command {
	var url, name string

	cmd := &cobra.Command{
		Use:   "new <path>",
		Short: "Create a new route file",
		Long: `Create a route file with a view function.

The path uses the file-based routing conventions:
  index          → /
  about          → /about
  colors/index   → /colors
  colors/edit    → /colors/edit

The go tool does not build files whose names start with '<', so a
parameter route is created under a plain name and given its URL with
--url, which writes a //route:url directive into the view's doc comment.

Examples:
  autoroute new about
  autoroute new colors/edit --name colors_edit
  autoroute new colors/detail --url '/colors/<int:id>'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(cmd, flags, args[0], url, name)
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "URL override written as a //route:url directive")
	cmd.Flags().StringVar(&name, "name", "", "Route name written as a //route:name directive")

	return cmd
}

type scaffold struct {
	Package string
	Func    string
	Pattern string
	URL     string
	Name    string
	Params  []router.Placeholder
}

var scaffoldTemplate = template.Must(template.New("route").Parse(`package {{ .Package }}

import (
	"fmt"
	"net/http"
{{ if .Params }}
	"github.com/vango-dev/autoroute/pkg/router"
{{ end }}
)

// {{ .Func }} handles /{{ .Pattern }}.
{{- if or .URL .Name }}
//
{{- end }}
{{- if .URL }}
//route:url {{ .URL }}
{{- end }}
{{- if .Name }}
//route:name {{ .Name }}
{{- end }}
func {{ .Func }}(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
{{- range .Params }}
	{{ .Name }} := router.Param(r, {{ printf "%q" .Name }})
{{- end }}
	fmt.Fprintln(w, "/{{ .Pattern }}"{{ range .Params }}, {{ .Name }}{{ end }})
}
`))

func runNew(cmd *cobra.Command, flags *globalFlags, routePath, url, name string) error {
	cfg, err := flags.loadConfig()
	if err != nil {
		return err
	}

	rel := strings.TrimSuffix(strings.Trim(filepath.ToSlash(routePath), "/"), ".go")
	if rel == "" {
		rel = cfg.IndexName
	}

	routesDir := cfg.RoutesPath()
	file := filepath.Join(routesDir, filepath.FromSlash(rel)+".go")
	if _, err := os.Stat(file); err == nil {
		return errors.Newf(errors.CategoryCLI, "file already exists: %s", file).
			WithSuggestion("Choose a different path or remove the existing file")
	}

	dir := path.Dir(rel)
	if dir == "." {
		dir = ""
	}
	if dir != "" {
		if err := module.CheckImportPath("routes/" + dir); err != nil {
			return errors.New("E141").
				WithDetail(err.Error()).
				WithSuggestion("Use a plain directory and set the URL with --url, e.g. autoroute new colors/detail --url '/colors/<slug:slug>'")
		}
	}

	base := path.Base(rel)
	c := router.Candidate{Segments: strings.Split(rel, "/"), IsIndex: base == cfg.IndexName}
	pattern := router.DerivePattern(c, cfg.TrailingSlash)
	if !codegen.BuildableFileName(base) {
		return errors.New("E142").
			WithDetail("The go tool ignores or rejects " + base + ".go.").
			WithSuggestion("autoroute new " + path.Join(dir, "detail") + " --url '/" + pattern + "'")
	}

	data := scaffold{
		Package: packageName(filepath.Join(routesDir, filepath.FromSlash(dir)), dir),
		Func:    viewName(base, c.IsIndex),
		Pattern: pattern,
		URL:     url,
		Name:    name,
	}
	if url != "" {
		data.Pattern = strings.Trim(url, "/")
		data.Params = router.Placeholders(url)
	}

	var buf bytes.Buffer
	if err := scaffoldTemplate.Execute(&buf, data); err != nil {
		return err
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return errors.New("E140").Wrap(err)
	}

	if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(file, src, 0644); err != nil {
		return err
	}

	p := newPrinter(cmd.OutOrStdout(), flags.noColor)
	p.success("Created %s", file)
	p.info("Run 'autoroute gen' to register it")
	return nil
}

// packageName returns the package declared by existing Go files in dir, or a
// name derived from the directory.
func packageName(fsDir, dir string) string {
	entries, _ := os.ReadDir(fsDir)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".go") || strings.HasSuffix(e.Name(), "_test.go") {
			continue
		}
		f, err := parser.ParseFile(token.NewFileSet(), filepath.Join(fsDir, e.Name()), nil, parser.PackageClauseOnly)
		if err == nil {
			return f.Name.Name
		}
	}

	if dir == "" {
		return "routes"
	}
	name := strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return unicode.ToLower(r)
		}
		return -1
	}, path.Base(dir))
	if name == "" || !token.IsIdentifier(name) || token.IsKeyword(name) {
		return "routes"
	}
	return name
}

// viewName turns a file base name into a view function name:
// current-time → CurrentTimeView, <slug:slug> → SlugView.
func viewName(base string, isIndex bool) string {
	if isIndex {
		return "IndexView"
	}

	var sb strings.Builder
	for _, part := range strings.Split(router.DeriveName(base), router.NameJoiner) {
		if part == "" {
			continue
		}
		runes := []rune(part)
		runes[0] = unicode.ToUpper(runes[0])
		sb.WriteString(string(runes))
	}
	if sb.Len() == 0 || !token.IsIdentifier(sb.String()) {
		return "View"
	}
	return sb.String() + "View"
}
