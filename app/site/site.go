// Package site holds what every view of the demo needs: the colour store,
// the logger, the route table for building links, form validation and
// page rendering.
//
// The server installs one Env with Middleware; views fetch it with
// FromRequest.
package site

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/vango-dev/autoroute/app/colors"
	"github.com/vango-dev/autoroute/pkg/router"
)

// Env is the request-scoped environment of the demo views.
type Env struct {
	Store colors.Store
	Log   *slog.Logger

	// Table reverses route names into URLs. It is set once routes are
	// discovered, before the server starts.
	Table *router.Table

	// Now is the clock (default: time.Now).
	Now func() time.Time

	// Tick is the interval of the current-time stream (default: one second).
	Tick time.Duration

	pages *pages
	forms *FormValidator
}

// New creates an Env over store. Templates are parsed here so a broken
// template fails at startup.
func New(store colors.Store, log *slog.Logger) (*Env, error) {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	e := &Env{
		Store: store,
		Log:   log,
		Now:   time.Now,
		Tick:  time.Second,
		forms: NewFormValidator(),
	}

	p, err := parsePages(e.url)
	if err != nil {
		return nil, err
	}
	e.pages = p
	return e, nil
}

// URL reverses a route name with key/value params.
func (e *Env) URL(name string, kv ...string) (string, error) {
	return e.url(name, kv...)
}

func (e *Env) url(name string, kv ...string) (string, error) {
	if e.Table == nil {
		return "", router.ErrNoReverseMatch
	}
	return e.Table.URLFunc()(name, kv...)
}

// Forms returns the form validator.
func (e *Env) Forms() *FormValidator {
	return e.forms
}

type envKey struct{}

// Middleware makes env available to every view through FromRequest.
func Middleware(env *Env) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithEnv(r.Context(), env)))
		})
	}
}

// WithEnv returns a context carrying env.
func WithEnv(ctx context.Context, env *Env) context.Context {
	return context.WithValue(ctx, envKey{}, env)
}

// FromRequest returns the Env installed by Middleware. It panics when none
// is installed, which is a wiring bug.
func FromRequest(r *http.Request) *Env {
	env, ok := r.Context().Value(envKey{}).(*Env)
	if !ok {
		panic("site: no Env in request context")
	}
	return env
}

// Error logs err and writes a plain error page with the status text.
func (e *Env) Error(w http.ResponseWriter, r *http.Request, status int, err error) {
	if err != nil {
		e.Log.ErrorContext(r.Context(), "view failed",
			slog.String("route", router.RouteName(r)),
			slog.Int("status", status),
			slog.Any("error", err),
		)
	}
	http.Error(w, http.StatusText(status), status)
}
