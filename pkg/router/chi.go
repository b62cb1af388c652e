package router

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Chi registers routes on a chi router in table order.
//
// Placeholders are translated to chi syntax: "<int:id>" becomes
// "{id:[0-9]+}" and "<name>" becomes "{name}". A "path" placeholder must be
// the whole last segment and becomes chi's "*" wildcard. Views see their
// parameters through Params, as with Table.
//
// chi prefers static segments over parameters on its own, so the table
// order only decides between routes chi would otherwise treat as equal.
func Chi(r chi.Router, routes []HTTPRoute) error {
	for _, route := range routes {
		pattern, err := ChiPattern(route.Pattern)
		if err != nil {
			return fmt.Errorf("route %q (%s): %w", route.Name, route.File, err)
		}
		r.Handle(pattern, chiHandler(route))
	}
	return nil
}

// ChiPattern converts a route pattern to a chi pattern with a leading slash.
func ChiPattern(pattern string) (string, error) {
	segments := strings.Split(pattern, "/")
	for i, seg := range segments {
		params := Placeholders(seg)
		for _, p := range params {
			if p.Type == "path" {
				if i != len(segments)-1 || seg != p.Segment {
					return "", fmt.Errorf("path placeholder %s must be the last whole segment", p.Segment)
				}
				segments[i] = "*"
				continue
			}

			expr, err := converterRegexp(p.Type)
			if err != nil {
				return "", err
			}
			replacement := "{" + p.Name + "}"
			if p.Type != "str" {
				replacement = "{" + p.Name + ":" + expr + "}"
			}
			segments[i] = strings.Replace(segments[i], p.Segment, replacement, 1)
		}
	}
	return "/" + strings.Join(segments, "/"), nil
}

func chiHandler(route HTTPRoute) http.Handler {
	params := Placeholders(route.Pattern)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		values := make(map[string]string, len(params))
		for _, p := range params {
			key := p.Name
			if p.Type == "path" {
				key = "*"
			}
			values[p.Name] = chi.URLParam(r, key)
		}
		route.Handler.ServeHTTP(w, bind(r, route.Name, route.Pattern, values))
	})
}
