// Package routes is the demo's route tree. Each file with an exported
// View function is a page; its path under this directory is its URL.
package routes

import (
	"net/http"

	"github.com/vango-dev/autoroute/app/site"
)

// IndexView lists the route table.
//
//route:name home
func IndexView(w http.ResponseWriter, r *http.Request) {
	env := site.FromRequest(r)
	env.Render(w, r, http.StatusOK, "home", "autoroute", env.Table.Routes())
}
