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
	// Query engine errors (Q001-Q019)
	// ============================================

	"Q001": {
		Category: CategoryQuery,
		Message:  "Source not found",
		Detail:   "A query read a source key that has never been set, or that was removed earlier in this run.",
		DocURL:   "https://querido.dev/docs/errors/Q001",
	},
	"Q002": {
		Category: CategoryQuery,
		Message:  "Param not found",
		Detail:   "A dependency referenced a parameter tuple that is no longer interned in this database.",
		DocURL:   "https://querido.dev/docs/errors/Q002",
	},
	"Q003": {
		Category: CategoryQuery,
		Message:  "Cyclic dependency",
		Detail:   "A memoized function re-entered its own DerivedNodeId, directly or transitively, while it was still executing.",
		DocURL:   "https://querido.dev/docs/errors/Q003",
	},

	// ============================================
	// Parse errors (Q100-Q119)
	// ============================================

	"Q100": {
		Category: CategoryParse,
		Message:  "Unterminated tagged literal",
		Detail:   "A `data`...`` literal was opened but never closed before the end of the file.",
		DocURL:   "https://querido.dev/docs/errors/Q100",
	},
	"Q101": {
		Category: CategoryParse,
		Message:  "Invalid selection syntax",
		Detail:   "The body of a tagged literal could not be parsed as a selection set.",
		DocURL:   "https://querido.dev/docs/errors/Q101",
	},
	"Q102": {
		Category: CategoryParse,
		Message:  "Source file unreadable",
		Detail:   "The source file could not be read from disk.",
		DocURL:   "https://querido.dev/docs/errors/Q102",
	},

	// ============================================
	// Schema errors (Q200-Q219)
	// ============================================

	"Q200": {
		Category: CategorySchema,
		Message:  "Unknown type",
		Detail:   "A selection references a type that isn't declared in the schema.",
		DocURL:   "https://querido.dev/docs/errors/Q200",
	},
	"Q201": {
		Category: CategorySchema,
		Message:  "Unknown field",
		Detail:   "A selection references a field that doesn't exist on its parent type.",
		DocURL:   "https://querido.dev/docs/errors/Q201",
	},
	"Q202": {
		Category: CategorySchema,
		Message:  "Non-scalar leaf selection",
		Detail:   "A selection on an object-typed field must itself select sub-fields; it cannot be a leaf.",
		DocURL:   "https://querido.dev/docs/errors/Q202",
	},
	"Q203": {
		Category: CategorySchema,
		Message:  "Missing required argument",
		Detail:   "A field was selected without one of its required arguments.",
		DocURL:   "https://querido.dev/docs/errors/Q203",
	},

	// ============================================
	// Artifact errors (Q300-Q319)
	// ============================================

	"Q300": {
		Category: CategoryArtifact,
		Message:  "Artifact write failed",
		Detail:   "A generated artifact file could not be written to the output directory.",
		DocURL:   "https://querido.dev/docs/errors/Q300",
	},
	"Q301": {
		Category: CategoryArtifact,
		Message:  "Artifact archive upload failed",
		Detail:   "Uploading the generated artifact bundle to the configured remote archive failed.",
		DocURL:   "https://querido.dev/docs/errors/Q301",
	},

	// ============================================
	// Watch errors (Q400-Q419)
	// ============================================

	"Q400": {
		Category: CategoryWatch,
		Message:  "Watch path does not exist",
		Detail:   "A configured watch path could not be found on disk.",
		DocURL:   "https://querido.dev/docs/errors/Q400",
	},

	// ============================================
	// Configuration errors (Q500-Q519)
	// ============================================

	"Q500": {
		Category: CategoryConfig,
		Message:  "Invalid querido.json",
		Detail:   "The querido.json configuration file is malformed.",
		DocURL:   "https://querido.dev/docs/errors/Q500",
	},
	"Q501": {
		Category: CategoryConfig,
		Message:  "Missing required configuration",
		Detail:   "A required configuration value is not set.",
		DocURL:   "https://querido.dev/docs/errors/Q501",
	},
	"Q502": {
		Category: CategoryConfig,
		Message:  "No querido.json found",
		Detail:   "No querido.json was found in this directory or any parent directory.",
		DocURL:   "https://querido.dev/docs/errors/Q502",
	},

	// ============================================
	// CLI errors (Q600-Q619)
	// ============================================

	"Q600": {
		Category: CategoryCLI,
		Message:  "Not a Querido project",
		Detail:   "The current directory is not a Querido project. Run this command from a directory with querido.json.",
		DocURL:   "https://querido.dev/docs/errors/Q600",
	},
	"Q601": {
		Category: CategoryCLI,
		Message:  "Compile failed",
		Detail:   "The compile pass reported one or more errors; see above for details.",
		DocURL:   "https://querido.dev/docs/errors/Q601",
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
