package cmd

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/xolan/well/internal/config"
	"github.com/xolan/well/internal/storage"
)

// summaryServer answers every request with text and records the key query
// parameter it received.
func summaryServer(t *testing.T, text string) (*httptest.Server, func() []string) {
	t.Helper()
	var mu sync.Mutex
	var keys []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		keys = append(keys, r.URL.Query().Get("key"))
		mu.Unlock()
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"` + text + `"}]}}]}`))
	}))
	t.Cleanup(srv.Close)
	return srv, func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), keys...)
	}
}

func TestSummary_APIKeyFlag(t *testing.T) {
	srv, keys := summaryServer(t, "Well done today.")
	cfg := testConfig()
	cfg.AI.BaseURL = srv.URL
	env := setupTestDeps(t, storage.NewMemoryStore(), cfg)
	t.Setenv(config.APIKeyEnv, "env-key")

	if err := execute(env, "summary", "--api-key", "flag-key"); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if env.exitCode != 0 {
		t.Fatalf("Expected exit code 0, got %d (stderr: %s)", env.exitCode, env.stderr.String())
	}
	if !strings.Contains(env.stdout.String(), "Well done today.") {
		t.Errorf("Unexpected output: %s", env.stdout.String())
	}
	if got := keys(); len(got) != 1 || got[0] != "flag-key" {
		t.Errorf("Expected one request with the flag key, got %v", got)
	}
}

func TestSummary_EnvCredential(t *testing.T) {
	srv, keys := summaryServer(t, "Keep going.")
	cfg := testConfig()
	cfg.AI.BaseURL = srv.URL
	env := setupTestDeps(t, storage.NewMemoryStore(), cfg)
	t.Setenv(config.APIKeyEnv, "env-key")

	if err := execute(env, "summary", "--api-key", ""); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if got := keys(); len(got) != 1 || got[0] != "env-key" {
		t.Errorf("Expected one request with the env key, got %v", got)
	}
}

func TestSummary_NoCredential(t *testing.T) {
	srv, keys := summaryServer(t, "unused")
	cfg := testConfig()
	cfg.AI.BaseURL = srv.URL
	env := setupTestDeps(t, storage.NewMemoryStore(), cfg)
	t.Setenv(config.APIKeyEnv, "")

	_ = execute(env, "summary", "--api-key", "")

	if env.exitCode != 1 {
		t.Errorf("Expected exit code 1, got %d", env.exitCode)
	}
	if !strings.Contains(env.stderr.String(), "Error: missing API credential") {
		t.Errorf("Unexpected stderr: %s", env.stderr.String())
	}
	if got := keys(); len(got) != 0 {
		t.Errorf("Expected no request, got %v", got)
	}
}

func TestSummary_DryRun(t *testing.T) {
	srv, keys := summaryServer(t, "unused")
	cfg := testConfig()
	cfg.AI.BaseURL = srv.URL
	env := setupTestDeps(t, storage.NewMemoryStore(), cfg)
	t.Setenv(config.APIKeyEnv, "")
	t.Cleanup(func() { _ = summaryCmd.Flags().Set("dry-run", "false") })

	if err := execute(env, "summary", "--dry-run", "--api-key", ""); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if env.exitCode != 0 {
		t.Fatalf("Expected exit code 0, got %d (stderr: %s)", env.exitCode, env.stderr.String())
	}
	if !strings.Contains(env.stdout.String(), "Meditation: 0 of 15 minutes") {
		t.Errorf("Unexpected output: %s", env.stdout.String())
	}
	if got := keys(); len(got) != 0 {
		t.Errorf("Expected no request, got %v", got)
	}
}
