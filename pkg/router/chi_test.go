package router

import (
	"errors"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestChiPattern(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
		wantErr error
	}{
		{pattern: "", want: "/"},
		{pattern: "colors", want: "/colors"},
		{pattern: "colors/", want: "/colors/"},
		{pattern: "colors/<slug:slug>", want: "/colors/{slug:[-a-zA-Z0-9_]+}"},
		{pattern: "items/<name>", want: "/items/{name}"},
		{pattern: "items/<int:id>/edit", want: "/items/{id:[0-9]+}/edit"},
		{pattern: "files/<path:rest>", want: "/files/*"},
		{pattern: "x/<float:n>", wantErr: ErrUnknownConverter},
	}

	for _, tt := range tests {
		got, err := ChiPattern(tt.pattern)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ChiPattern(%q) error = %v, want %v", tt.pattern, err, tt.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("ChiPattern(%q) error = %v", tt.pattern, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ChiPattern(%q) = %q, want %q", tt.pattern, got, tt.want)
		}
	}
}

func TestChiPatternPathNotLast(t *testing.T) {
	if _, err := ChiPattern("files/<path:rest>/raw"); err == nil {
		t.Error("expected error for a path placeholder before the last segment")
	}
	if _, err := ChiPattern("files/x<path:rest>"); err == nil {
		t.Error("expected error for a path placeholder inside a segment")
	}
}

func TestChi(t *testing.T) {
	r := chi.NewRouter()
	err := Chi(r, []HTTPRoute{
		route("current-time", "current_time"),
		route("colors/add", "colors_add"),
		route("colors", "colors"),
		route("colors/<slug:slug>", "colors_slug"),
		route("files/<path:rest>", "files"),
		route("", "home"),
	})
	if err != nil {
		t.Fatalf("Chi() error = %v", err)
	}

	tests := []struct {
		target   string
		wantCode int
		wantBody string
	}{
		{"/", http.StatusOK, "home"},
		{"/colors", http.StatusOK, "colors"},
		{"/colors/add", http.StatusOK, "colors_add"},
		{"/colors/teal", http.StatusOK, "colors_slug slug=teal"},
		{"/files/a/b.txt", http.StatusOK, "files rest=a/b.txt"},
		{"/colors/te.al", http.StatusNotFound, "404 page not found\n"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := serve(r, http.MethodGet, tt.target)
			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if rec.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestChiInvalidPattern(t *testing.T) {
	err := Chi(chi.NewRouter(), []HTTPRoute{route("x/<float:n>", "x_n")})
	if !errors.Is(err, ErrUnknownConverter) {
		t.Errorf("Chi() error = %v, want ErrUnknownConverter", err)
	}
}
