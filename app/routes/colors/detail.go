package colors

import (
	"errors"
	"net/http"

	palette "github.com/vango-dev/autoroute/app/colors"
	"github.com/vango-dev/autoroute/app/site"
	"github.com/vango-dev/autoroute/pkg/router"
)

// DetailView shows one colour. The file keeps a plain name because the Go
// toolchain rejects source files starting with "<", so the URL comes from
// the directive.
//
//route:url /colors/<slug:slug>
//route:name colors_slug
func DetailView(w http.ResponseWriter, r *http.Request) {
	env := site.FromRequest(r)

	var params struct {
		Slug string `param:"slug"`
	}
	if err := router.DecodeParams(router.Params(r), &params); err != nil {
		env.Error(w, r, http.StatusBadRequest, nil)
		return
	}

	c, err := env.Store.Get(r.Context(), params.Slug)
	if errors.Is(err, palette.ErrNotFound) {
		env.Error(w, r, http.StatusNotFound, nil)
		return
	}
	if err != nil {
		env.Error(w, r, http.StatusInternalServerError, err)
		return
	}
	env.Render(w, r, http.StatusOK, "colors_detail", c.Name, c)
}
