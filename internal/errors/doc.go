// Package errors provides structured, actionable error messages for the
// autoroute CLI.
//
// # Error Categories
//
// Errors are organized into categories:
//   - discovery: Route files that cannot be found or loaded
//   - validation: Duplicate patterns or names, unknown converters
//   - config: autoroute.json / autoroute.yaml and environment overrides
//   - codegen: Failures writing the generated routes file
//   - cli: Command usage and out-of-date checks
//
// # Error Codes
//
// Each error has a unique code (e.g., "E100") that maps to:
//   - A short message describing the error
//   - A detailed explanation
//   - A documentation URL
//
// # Usage
//
//	routes, err := router.Discover(dir, router.NewSourceLoader())
//	if err != nil {
//	    errors.PrintError(errors.FromRouteError(err))
//	}
//
//	// Output:
//	// ERROR E100: Route file failed to load
//	//
//	//   app/routes/colors/add.go:6:17
//	//
//	//      4 │ import "net/http"
//	//      5 │
//	//   →  6 │ func AddView(w http.ResponseWriter {
//	//        │                 ^
//	//      7 │ }
//	//
//	//   Learn more: https://autoroute.dev/docs/errors/E100
package errors
