// Package router implements convention-based route discovery.
//
// The router provides:
//   - File-system based route discovery from a routes directory
//   - Canonical URL pattern and route name derivation
//   - Deterministic ordering (literal segments before parameters)
//   - Per-view URL and name overrides
//   - An ordered, first-match-wins table and a chi adapter
//
// # File Structure Convention
//
// Routes are defined by Go files under the routes directory:
//
//	app/routes/
//	├── index.go               → ""
//	├── current-time.go        → "current-time"
//	├── helpers.go             → (no view, skipped)
//	└── colors/
//	    ├── index.go           → "colors"
//	    ├── add.go             → "colors/add"
//	    └── <slug:slug>.go     → "colors/<slug:slug>"
//
// Patterns never start with a slash. Placeholder segments keep their
// <type:name> syntax; the consumer of the table interprets them.
//
// The go tool refuses to build a file named <slug:slug>.go, so such files
// are discovered and listed but cannot hold a compiled view. Give the view
// a plain file name and set its URL with a //route:url directive instead.
//
// # Views
//
// A route file exposes its view as an exported function named View or
// ending in View. The doc comment may override the derived values:
//
//	//route:url /custom
//	//route:name custom_name
//	func DetailView(w http.ResponseWriter, r *http.Request)
//
// # Names
//
// Route names are derived from the pattern: converter prefixes and angle
// brackets are dropped, and every "/" and "-" becomes NameJoiner:
//
//	colors/<slug:slug> → colors_slug
//	current-time       → current_time
//
// # Usage
//
//	routes, err := router.Discover[http.Handler]("app/routes", router.DefaultRegistry,
//	    router.WithTrailingSlash(true),
//	    router.WithExclude("*_draft.go"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	table, err := router.NewTable(routes)
//	http.ListenAndServe(":8080", table)
package router
