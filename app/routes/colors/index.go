package colors

import (
	"net/http"

	"github.com/vango-dev/autoroute/app/site"
)

// ListView lists every colour.
func ListView(w http.ResponseWriter, r *http.Request) {
	env := site.FromRequest(r)
	list, err := env.Store.List(r.Context())
	if err != nil {
		env.Error(w, r, http.StatusInternalServerError, err)
		return
	}
	env.Render(w, r, http.StatusOK, "colors_list", "Colors", list)
}
