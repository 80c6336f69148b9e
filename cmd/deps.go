package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xolan/well/internal/cli"
	"github.com/xolan/well/internal/config"
	"github.com/xolan/well/internal/osutil"
	"github.com/xolan/well/internal/service"
)

// Deps holds external dependencies for CLI commands, enabling testability.
type Deps struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	Exit   func(code int)

	// NewServices builds the service graph once flags are parsed.
	NewServices func(opts service.Options) (*service.Services, error)
	// LoadEnv loads .env files before the credential is read.
	LoadEnv func() error
}

// DefaultDeps returns the default production dependencies.
func DefaultDeps() *Deps {
	return &Deps{
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Stdin:       os.Stdin,
		Exit:        os.Exit,
		NewServices: service.NewServices,
		LoadEnv:     loadEnv,
	}
}

func loadEnv() error {
	dir, err := osutil.AppDir()
	if err != nil {
		dir = ""
	}
	return config.LoadEnv(dir)
}

// deps is the global dependencies instance used by commands.
// In production, this is DefaultDeps(). Tests can replace it.
var deps = DefaultDeps()

// SetDeps sets the global dependencies (for testing).
func SetDeps(d *Deps) {
	deps = d
}

// ResetDeps resets dependencies to defaults (for testing cleanup).
func ResetDeps() {
	deps = DefaultDeps()
}

// credential prefers --api-key over the environment.
func credential() string {
	if key := strings.TrimSpace(apiKeyFlag); key != "" {
		return key
	}
	return config.Credential()
}

// openServices builds the services for this invocation. On failure it
// reports the error and exits, returning nil.
func openServices() *service.Services {
	if deps.LoadEnv != nil {
		if err := deps.LoadEnv(); err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Warning: %v\n", err)
		}
	}

	services, err := deps.NewServices(service.Options{Ephemeral: ephemeralFlag})
	if err != nil {
		d := cliDeps(nil)
		d.Fail("Failed to initialize", err, "Check the config file with 'well config' and that the data directory is writable")
		return nil
	}
	return services
}

func cliDeps(services *service.Services) *cli.Deps {
	return &cli.Deps{
		Stdout:     deps.Stdout,
		Stderr:     deps.Stderr,
		Stdin:      deps.Stdin,
		Exit:       deps.Exit,
		Services:   services,
		Credential: credential,
	}
}

// withServices runs fn with CLI deps over freshly built services and
// releases them afterwards.
func withServices(fn func(d *cli.Deps)) {
	services := openServices()
	if services == nil {
		return
	}
	defer func() { _ = services.Close() }()

	fn(cliDeps(services))
}
