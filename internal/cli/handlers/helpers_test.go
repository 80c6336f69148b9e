package handlers

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xolan/well/internal/cli"
	"github.com/xolan/well/internal/config"
	"github.com/xolan/well/internal/service"
	"github.com/xolan/well/internal/storage"
)

// fixedNow is Sunday 2024-03-10 14:30 UTC.
var fixedNow = time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC)

func testConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.Timezone = "UTC"
	return cfg
}

func newDeps(t *testing.T, store storage.Store, cfg config.Config) (*cli.Deps, *bytes.Buffer, *bytes.Buffer, *int) {
	t.Helper()
	tmpDir := t.TempDir()

	n := 0
	services := service.NewServicesWith(store, filepath.Join(tmpDir, "config.toml"), cfg, nil,
		service.WithClock(func() time.Time { return fixedNow }),
		service.WithIDGenerator(func() string { n++; return fmt.Sprintf("id-%d", n) }),
	)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	exitCode := 0

	deps := &cli.Deps{
		Stdout:     stdout,
		Stderr:     stderr,
		Stdin:      strings.NewReader(""),
		Exit:       func(code int) { exitCode = code },
		Services:   services,
		Credential: func() string { return "" },
	}

	return deps, stdout, stderr, &exitCode
}

func setupTestDeps(t *testing.T) (*cli.Deps, *bytes.Buffer, *bytes.Buffer, *int) {
	t.Helper()
	return newDeps(t, storage.NewMemoryStore(), testConfig())
}

// setupJSONLDeps backs the services with JSONL files in a temp dir.
func setupJSONLDeps(t *testing.T) (*cli.Deps, *storage.JSONLStore, *bytes.Buffer, *bytes.Buffer, *int) {
	t.Helper()
	store := storage.NewJSONLStore(t.TempDir(), nil)
	deps, stdout, stderr, exitCode := newDeps(t, store, testConfig())
	return deps, store, stdout, stderr, exitCode
}

// reset clears captured output between steps of one test.
func reset(stdout, stderr *bytes.Buffer, exitCode *int) {
	stdout.Reset()
	stderr.Reset()
	*exitCode = 0
}
