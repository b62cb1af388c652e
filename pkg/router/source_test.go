package router

import (
	"errors"
	"reflect"
	"testing"
)

var sourceTree = map[string]string{
	"index.go": `package routes

import "net/http"

//route:name home
func IndexView(w http.ResponseWriter, r *http.Request) {}
`,
	"current-time.go": `package routes

import "net/http"

// CurrentTimeView renders the clock.
func CurrentTimeView(w http.ResponseWriter, r *http.Request) {}
`,
	"helpers.go": `package routes

func render() {}

type page struct{}

func (page) View() {}

func privateView() {}
`,
	"colors/index.go": `package colors

import "net/http"

// Color list.
//
//route:url /palette/
//route:name palette
func ListView(w http.ResponseWriter, r *http.Request) {}
`,
	"colors/add.go": `package colors

import "net/http"

//route:urlx ignored
func AddView(http.ResponseWriter, *http.Request) {}

func AlsoView(w http.ResponseWriter, r *http.Request) {}
`,
}

func TestSourceLoaderDiscover(t *testing.T) {
	dir := writeTree(t, sourceTree)

	routes, err := Discover[SourceView](dir, NewSourceLoader())
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}

	wantPatterns := []string{"palette", "current-time", "colors/add", ""}
	if got := patterns(routes); !reflect.DeepEqual(got, wantPatterns) {
		t.Errorf("patterns = %q, want %q", got, wantPatterns)
	}

	wantNames := []string{"palette", "current_time", "colors_add", "home"}
	if got := names(routes); !reflect.DeepEqual(got, wantNames) {
		t.Errorf("names = %q, want %q", got, wantNames)
	}

	wantViews := []SourceView{
		{Package: "colors", Func: "ListView", Dir: "colors"},
		{Package: "routes", Func: "CurrentTimeView", Dir: ""},
		{Package: "colors", Func: "AddView", Dir: "colors"},
		{Package: "routes", Func: "IndexView", Dir: ""},
	}
	for i, r := range routes {
		if r.Handler != wantViews[i] {
			t.Errorf("routes[%d].Handler = %+v, want %+v", i, r.Handler, wantViews[i])
		}
	}
}

func TestSourceLoaderSkipsNonHandlers(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"helpers.go": `package routes

func PreviewView(s string) string { return s }
`,
		"generic.go": `package routes

import "net/http"

func GenericView[T any](w http.ResponseWriter, r *http.Request) {}
`,
		"results.go": `package routes

import "net/http"

func ResultView(w http.ResponseWriter, r *http.Request) error { return nil }
`,
		"value.go": `package routes

import "net/http"

func ValueView(w http.ResponseWriter, r http.Request) {}
`,
		"extra.go": `package routes

import "net/http"

func ExtraView(w http.ResponseWriter, r *http.Request, n int) {}
`,
		"other.go": `package routes

import "example.com/http"

func OtherView(w http.ResponseWriter, r *http.Request) {}
`,
		"aliased.go": `package routes

import web "net/http"

func AliasedView(rw web.ResponseWriter, req *web.Request) {}
`,
		"dotted.go": `package routes

import . "net/http"

func DottedView(w ResponseWriter, r *Request) {}
`,
	})

	routes, err := Discover[SourceView](dir, NewSourceLoader())
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}

	var funcs []string
	for _, r := range routes {
		funcs = append(funcs, r.Handler.Func)
	}
	want := []string{"DottedView", "AliasedView"}
	if !reflect.DeepEqual(funcs, want) {
		t.Errorf("views = %q, want %q", funcs, want)
	}
}

func TestSourceLoaderParseError(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"index.go":         "package routes\n\nimport \"net/http\"\n\nfunc IndexView(w http.ResponseWriter, r *http.Request) {}\n",
		"colors/broken.go": "package colors\n\nfunc BrokenView( {\n",
	})

	_, err := Discover[SourceView](dir, NewSourceLoader())
	if !errors.Is(err, ErrLoad) {
		t.Fatalf("error = %v, want ErrLoad", err)
	}

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error %T is not a *ConfigError", err)
	}
	if cfgErr.Module != "colors/broken" {
		t.Errorf("Module = %q, want colors/broken", cfgErr.Module)
	}
}

func TestSourceViewImportPath(t *testing.T) {
	tests := []struct {
		dir  string
		want string
	}{
		{"", "example.com/app/routes"},
		{"colors", "example.com/app/routes/colors"},
		{"a/b", "example.com/app/routes/a/b"},
	}
	for _, tt := range tests {
		v := SourceView{Dir: tt.dir}
		if got := v.ImportPath("example.com/app/routes"); got != tt.want {
			t.Errorf("ImportPath(%q) = %q, want %q", tt.dir, got, tt.want)
		}
	}
}

func TestDirectiveValue(t *testing.T) {
	tests := []struct {
		text   string
		want   string
		wantOK bool
	}{
		{"//route:url /x/", "/x/", true},
		{"//route:url\t/x/ ", "/x/", true},
		{"//route:url", "", true},
		{"//route:urls /x/", "", false},
		{"// route:url /x/", "", false},
	}
	for _, tt := range tests {
		got, ok := directiveValue(tt.text, DirectiveURL)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("directiveValue(%q) = (%q, %v), want (%q, %v)", tt.text, got, ok, tt.want, tt.wantOK)
		}
	}
}
