package router

import (
	"go/ast"
	"go/parser"
	"go/token"
	"path"
	"strconv"
	"strings"
)

// Override directives recognised in a view's doc comment.
const (
	DirectiveURL  = "//route:url"
	DirectiveName = "//route:name"
)

// SourceView describes a view found by parsing a route file.
type SourceView struct {
	// Package is the Go package name declared by the file.
	Package string

	// Func is the view function name (e.g., "AddView").
	Func string

	// Dir is the slash-separated directory relative to the routes root.
	Dir string
}

// SourceLoader loads units by parsing Go source files.
//
// The view is the first exported top-level function named "View" or ending
// in "View" with the signature of an http.HandlerFunc. Files that fail to
// parse are load errors.
type SourceLoader struct {
	fset *token.FileSet
}

// NewSourceLoader creates a source loader.
func NewSourceLoader() *SourceLoader {
	return &SourceLoader{fset: token.NewFileSet()}
}

// Load implements Loader.
func (l *SourceLoader) Load(c Candidate) (*Unit[SourceView], error) {
	f, err := parser.ParseFile(l.fset, c.Path, nil, parser.ParseComments)
	if err != nil {
		return nil, err
	}

	httpName, ok := importName(f, "net/http")
	if !ok {
		return nil, nil
	}

	for _, decl := range f.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv != nil || fn.Name == nil || !fn.Name.IsExported() {
			continue
		}
		if !strings.HasSuffix(fn.Name.Name, "View") || !isHandlerFunc(fn.Type, httpName) {
			continue
		}

		return &Unit[SourceView]{
			View: SourceView{
				Package: f.Name.Name,
				Func:    fn.Name.Name,
				Dir:     c.Dir(),
			},
			Override: parseDirectives(fn.Doc),
		}, nil
	}

	return nil, nil
}

// importName returns the name under which f imports pkgPath: the local
// alias, "." for a dot import, or the last path element.
func importName(f *ast.File, pkgPath string) (string, bool) {
	for _, spec := range f.Imports {
		p, err := strconv.Unquote(spec.Path.Value)
		if err != nil || p != pkgPath {
			continue
		}
		if spec.Name != nil {
			if spec.Name.Name == "_" {
				continue
			}
			return spec.Name.Name, true
		}
		return path.Base(p), true
	}
	return "", false
}

// isHandlerFunc reports whether ft is func(http.ResponseWriter, *http.Request)
// with no type parameters and no results.
func isHandlerFunc(ft *ast.FuncType, httpName string) bool {
	if ft.TypeParams != nil || (ft.Results != nil && len(ft.Results.List) > 0) {
		return false
	}

	var types []ast.Expr
	for _, field := range ft.Params.List {
		n := len(field.Names)
		if n == 0 {
			n = 1
		}
		for range n {
			types = append(types, field.Type)
		}
	}
	if len(types) != 2 {
		return false
	}

	star, ok := types[1].(*ast.StarExpr)
	return isHTTPType(types[0], httpName, "ResponseWriter") &&
		ok && isHTTPType(star.X, httpName, "Request")
}

// isHTTPType reports whether expr names net/http's typ under httpName.
func isHTTPType(expr ast.Expr, httpName, typ string) bool {
	if httpName == "." {
		id, ok := expr.(*ast.Ident)
		return ok && id.Name == typ
	}
	sel, ok := expr.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != typ {
		return false
	}
	pkg, ok := sel.X.(*ast.Ident)
	return ok && pkg.Name == httpName
}

// parseDirectives reads //route:url and //route:name lines.
func parseDirectives(doc *ast.CommentGroup) Override {
	var o Override
	if doc == nil {
		return o
	}

	for _, c := range doc.List {
		if v, ok := directiveValue(c.Text, DirectiveURL); ok {
			o.URL = &v
		}
		if v, ok := directiveValue(c.Text, DirectiveName); ok {
			o.Name = &v
		}
	}
	return o
}

func directiveValue(text, directive string) (string, bool) {
	rest, ok := strings.CutPrefix(text, directive)
	if !ok {
		return "", false
	}
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

// ImportPath returns the import path of the view's package given the
// import path of the routes root.
func (v SourceView) ImportPath(rootImport string) string {
	if v.Dir == "" {
		return rootImport
	}
	return path.Join(rootImport, v.Dir)
}
