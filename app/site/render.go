package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/vango-dev/autoroute/pkg/router"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

type pages struct {
	byName map[string]*template.Template
}

// parsePages parses each page together with the layout.
func parsePages(url func(string, ...string) (string, error)) (*pages, error) {
	funcs := template.FuncMap{"url": url}

	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	p := &pages{byName: make(map[string]*template.Template)}
	for _, file := range files {
		if file == layoutFile {
			continue
		}
		name := strings.TrimSuffix(path.Base(file), ".html")
		tmpl, err := template.New(path.Base(layoutFile)).Funcs(funcs).ParseFS(templateFS, layoutFile, file)
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		p.byName[name] = tmpl
	}
	return p, nil
}

// Page is the data every page template receives.
type Page struct {
	Title string
	Route string
	Data  any
}

// Render executes the named page into w. The page is rendered to a buffer
// first so a template error still yields a clean 500.
func (e *Env) Render(w http.ResponseWriter, r *http.Request, status int, name, title string, data any) {
	tmpl, ok := e.pages.byName[name]
	if !ok {
		e.Error(w, r, http.StatusInternalServerError, fmt.Errorf("unknown page %q", name))
		return
	}

	var buf bytes.Buffer
	page := Page{Title: title, Route: router.RouteName(r), Data: data}
	if err := tmpl.Execute(&buf, page); err != nil {
		e.Error(w, r, http.StatusInternalServerError, fmt.Errorf("render %s: %w", name, err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
