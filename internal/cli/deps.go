package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/xolan/well/internal/config"
	"github.com/xolan/well/internal/service"
)

// Deps contains all dependencies for CLI operations
type Deps struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	Exit   func(code int)

	// Services
	Services *service.Services

	// Credential returns the AI API key, or "" when none is configured.
	Credential func() string
}

// NewDeps creates a new Deps with the given services, writing to the
// process's standard streams.
func NewDeps(services *service.Services) *Deps {
	return &Deps{
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Stdin:      os.Stdin,
		Exit:       os.Exit,
		Services:   services,
		Credential: config.Credential,
	}
}

// Fail prints an error block to Stderr and exits with status 1.
// Empty details or hint lines are omitted.
func (d *Deps) Fail(msg string, details error, hint string) {
	_, _ = fmt.Fprintf(d.Stderr, "Error: %s\n", msg)
	if details != nil {
		_, _ = fmt.Fprintf(d.Stderr, "Details: %v\n", details)
	}
	if hint != "" {
		_, _ = fmt.Fprintf(d.Stderr, "Hint: %s\n", hint)
	}
	d.Exit(1)
}
