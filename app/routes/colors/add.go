package colors

import (
	"errors"
	"net/http"

	palette "github.com/vango-dev/autoroute/app/colors"
	"github.com/vango-dev/autoroute/app/site"
)

type addForm struct {
	Name string `form:"name" validate:"required,max=40"`
	Hex  string `form:"hex" validate:"required,hexcolor"`
}

type addPage struct {
	Form   addForm
	Errors site.FormErrors
}

// AddView shows the add-colour form and creates the colour on POST.
func AddView(w http.ResponseWriter, r *http.Request) {
	env := site.FromRequest(r)

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		env.Render(w, r, http.StatusOK, "colors_add", "Add a color", addPage{})
		return
	case http.MethodPost:
	default:
		w.Header().Set("Allow", "GET, HEAD, POST")
		env.Error(w, r, http.StatusMethodNotAllowed, nil)
		return
	}

	if err := r.ParseForm(); err != nil {
		env.Error(w, r, http.StatusBadRequest, nil)
		return
	}
	form := addForm{Name: r.PostForm.Get("name"), Hex: r.PostForm.Get("hex")}

	invalid := func(errs site.FormErrors) {
		env.Render(w, r, http.StatusUnprocessableEntity, "colors_add", "Add a color", addPage{Form: form, Errors: errs})
	}

	if err := env.Forms().Validate(&form); err != nil {
		var errs site.FormErrors
		if !errors.As(err, &errs) {
			env.Error(w, r, http.StatusInternalServerError, err)
			return
		}
		invalid(errs)
		return
	}

	c, err := palette.New(form.Name, form.Hex, env.Now())
	if err != nil {
		invalid(site.FormErrors{"name": "must contain a letter or digit"})
		return
	}

	switch err := env.Store.Create(r.Context(), c); {
	case errors.Is(err, palette.ErrExists):
		invalid(site.FormErrors{"name": "is already taken"})
		return
	case err != nil:
		env.Error(w, r, http.StatusInternalServerError, err)
		return
	}

	target, err := env.URL("colors_slug", "slug", c.Slug)
	if err != nil {
		env.Error(w, r, http.StatusInternalServerError, err)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
