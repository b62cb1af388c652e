package router

import (
	"context"
	"net/http"
)

// RouteInfo describes the route that served a request.
type RouteInfo struct {
	// Name is the route name ("" when nothing matched).
	Name string

	// Pattern is the matched pattern.
	Pattern string

	// Params are the decoded placeholder values.
	Params map[string]string
}

type routeInfoKey struct{}

// Capture installs an empty RouteInfo in the request context. The table
// fills it during dispatch, so middleware wrapping the table can read the
// matched route after calling next.
func Capture(r *http.Request) (*http.Request, *RouteInfo) {
	if info := RouteFromContext(r.Context()); info != nil {
		return r, info
	}
	info := &RouteInfo{}
	return r.WithContext(context.WithValue(r.Context(), routeInfoKey{}, info)), info
}

// RouteFromContext returns the RouteInfo stored in ctx, or nil.
func RouteFromContext(ctx context.Context) *RouteInfo {
	info, _ := ctx.Value(routeInfoKey{}).(*RouteInfo)
	return info
}

// Params returns the route parameters of a dispatched request.
func Params(r *http.Request) map[string]string {
	if info := RouteFromContext(r.Context()); info != nil {
		return info.Params
	}
	return nil
}

// Param returns a single route parameter ("" when absent).
func Param(r *http.Request, name string) string {
	return Params(r)[name]
}

// RouteName returns the name of the route that served r.
func RouteName(r *http.Request) string {
	if info := RouteFromContext(r.Context()); info != nil {
		return info.Name
	}
	return ""
}

// bind records the matched route on r, reusing a captured RouteInfo.
func bind(r *http.Request, name, pattern string, params map[string]string) *http.Request {
	r, info := Capture(r)
	info.Name = name
	info.Pattern = pattern
	info.Params = params
	return r
}
