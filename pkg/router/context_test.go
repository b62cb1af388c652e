package router

import (
	"net/http/httptest"
	"testing"
)

func TestCaptureReusesHolder(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)

	r1, info := Capture(r)
	r2, again := Capture(r1)
	if info != again || r1 != r2 {
		t.Error("Capture() installed a second holder")
	}
	if RouteFromContext(r.Context()) != nil {
		t.Error("Capture() modified the original request")
	}
}

func TestParamAccessorsWithoutRoute(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)

	if Params(r) != nil {
		t.Error("Params() should be nil before dispatch")
	}
	if Param(r, "slug") != "" {
		t.Error("Param() should be empty before dispatch")
	}
	if RouteName(r) != "" {
		t.Error("RouteName() should be empty before dispatch")
	}
}

func TestBind(t *testing.T) {
	r := httptest.NewRequest("GET", "/colors/red", nil)
	r = bind(r, "colors_slug", "colors/<slug:slug>", map[string]string{"slug": "red"})

	if RouteName(r) != "colors_slug" {
		t.Errorf("RouteName() = %q", RouteName(r))
	}
	if Param(r, "slug") != "red" {
		t.Errorf("Param(slug) = %q", Param(r, "slug"))
	}
	if RouteFromContext(r.Context()).Pattern != "colors/<slug:slug>" {
		t.Errorf("Pattern = %q", RouteFromContext(r.Context()).Pattern)
	}
}
