package devserver

import (
	"time"

	"github.com/vango-dev/querido/internal/config"
)

// Config configures a Server.
type Config struct {
	// Addr is the HTTP listen address (e.g. ":4824").
	Addr string

	// Project is the loaded querido.json.
	Project *config.Config

	// Debounce overrides the project's configured watch debounce. Zero
	// means "use Project.Watch.Debounce".
	Debounce time.Duration

	// Verbose enables per-recompile log lines.
	Verbose bool
}

func (c Config) addr() string {
	if c.Addr == "" {
		return ":4824"
	}
	return c.Addr
}
