// Package middleware provides net/http middleware that reports requests by
// the name of the route that served them.
//
// Every middleware here calls router.Capture before dispatching, so the
// route table records the matched route on a holder the middleware still
// sees after next returns. Wrap the table (or a chi router mounting it):
//
//	r := chi.NewRouter()
//	r.Use(
//	    middleware.Logger(log),
//	    middleware.Prometheus(),
//	    middleware.OpenTelemetry(),
//	)
//	r.Mount("/", table)
//	r.Handle("/metrics", promhttp.Handler())
//
// # Prometheus Metrics
//
// Prometheus records requests_total, request_duration_seconds and
// requests_in_flight. The route label is the route name, or "unmatched"
// when the table served a 404.
//
// # OpenTelemetry
//
// OpenTelemetry starts a server span per request and renames it after the
// matched pattern. The tracer comes from the global provider unless
// WithTracerProvider is given.
package middleware
