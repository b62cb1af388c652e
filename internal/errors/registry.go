package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Discovery Errors (E100-E109)
	// ============================================

	"E100": {
		Category: CategoryDiscovery,
		Message:  "Route file failed to load",
		Detail:   "A file under the routes directory could not be loaded. Discovery stops instead of dropping the route.",
		DocURL:   "https://autoroute.dev/docs/errors/E100",
	},
	"E101": {
		Category: CategoryDiscovery,
		Message:  "Routes directory not found",
		Detail:   "The configured routes directory does not exist.",
		DocURL:   "https://autoroute.dev/docs/errors/E101",
	},
	"E102": {
		Category: CategoryDiscovery,
		Message:  "Invalid exclude pattern",
		Detail:   "The exclude glob could not be compiled.",
		DocURL:   "https://autoroute.dev/docs/errors/E102",
	},

	// ============================================
	// Validation Errors (E110-E119)
	// ============================================

	"E110": {
		Category: CategoryValidation,
		Message:  "Duplicate route pattern",
		Detail:   "Two files resolve to the same URL pattern. Only the first one can ever match.",
		DocURL:   "https://autoroute.dev/docs/errors/E110",
	},
	"E111": {
		Category: CategoryValidation,
		Message:  "Duplicate route name",
		Detail:   "Two routes share a name. Reverse lookups resolve to the first one.",
		DocURL:   "https://autoroute.dev/docs/errors/E111",
	},
	"E112": {
		Category: CategoryValidation,
		Message:  "Unknown path converter",
		Detail:   "A placeholder uses a converter type other than str, int, slug, uuid or path.",
		DocURL:   "https://autoroute.dev/docs/errors/E112",
	},

	// ============================================
	// Configuration Errors (E120-E139)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "The configuration file could not be parsed.",
		DocURL:   "https://autoroute.dev/docs/errors/E120",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Project root not found",
		Detail:   "No autoroute.json, autoroute.yaml or go.mod was found in this directory or any parent.",
		DocURL:   "https://autoroute.dev/docs/errors/E121",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Invalid environment override",
		Detail:   "An AUTOROUTE_* environment variable could not be parsed.",
		DocURL:   "https://autoroute.dev/docs/errors/E122",
	},

	// ============================================
	// Code Generation Errors (E140-E159)
	// ============================================

	"E140": {
		Category: CategoryCodegen,
		Message:  "Generated code failed to format",
		Detail:   "The generated routes file is not valid Go.",
		DocURL:   "https://autoroute.dev/docs/errors/E140",
	},
	"E141": {
		Category: CategoryCodegen,
		Message:  "Route directory is not importable",
		Detail:   "A directory holding a view is not a valid Go import path element. Parameter directories cannot hold views; set the URL with a //route:url directive instead.",
		DocURL:   "https://autoroute.dev/docs/errors/E141",
	},
	"E142": {
		Category: CategoryCodegen,
		Message:  "Route file name is not buildable",
		Detail:   "The Go toolchain only builds source files whose names start with a letter or digit, so a parameter file such as <slug:slug>.go cannot hold a compiled view. Name the file plainly and set the URL with a //route:url directive.",
		DocURL:   "https://autoroute.dev/docs/errors/E142",
	},

	// ============================================
	// CLI Errors (E160-E179)
	// ============================================

	"E160": {
		Category: CategoryCLI,
		Message:  "Generated routes are out of date",
		Detail:   "The routes file on disk differs from what discovery produces.",
		DocURL:   "https://autoroute.dev/docs/errors/E160",
	},
	"E161": {
		Category: CategoryCLI,
		Message:  "Module path not found",
		Detail:   "The module path could not be read from go.mod.",
		DocURL:   "https://autoroute.dev/docs/errors/E161",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
