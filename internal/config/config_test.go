package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xolan/well/internal/osutil"
)

// Helper to create a temporary config file
func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, ConfigFile)
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}
	return tmpFile
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Timezone != "Local" {
		t.Errorf("DefaultConfig().Timezone = %q, expected %q", cfg.Timezone, "Local")
	}
	if cfg.Theme != "dracula" {
		t.Errorf("DefaultConfig().Theme = %q, expected %q", cfg.Theme, "dracula")
	}
	if cfg.Goals.Water != 8 || cfg.Goals.Sleep != 8 || cfg.Goals.Exercise != 30 || cfg.Goals.Meditation != 15 {
		t.Errorf("DefaultConfig().Goals = %+v, expected 8/8/30/15", cfg.Goals)
	}
	if cfg.AI.Temperature != 0.7 || cfg.AI.TopK != 40 || cfg.AI.TopP != 0.95 || cfg.AI.MaxOutputTokens != 1024 {
		t.Errorf("DefaultConfig().AI = %+v, unexpected generation parameters", cfg.AI)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() returned error: %v", err)
	}
}

func TestLoad_ValidConfig(t *testing.T) {
	tests := []struct {
		name             string
		configContent    string
		expectedTimezone string
		expectedWater    float64
		expectedModel    string
		expectedLevel    string
	}{
		{
			name: "all sections set",
			configContent: `timezone = "America/New_York"
theme = "nord"

[goals]
water = 10
sleep = 7.5
exercise = 45
meditation = 20

[ai]
model = "gemini-pro"

[log]
level = "debug"
format = "json"`,
			expectedTimezone: "America/New_York",
			expectedWater:    10,
			expectedModel:    "gemini-pro",
			expectedLevel:    "debug",
		},
		{
			name:             "empty file keeps defaults",
			configContent:    ``,
			expectedTimezone: "Local",
			expectedWater:    8,
			expectedModel:    DefaultModel,
			expectedLevel:    "info",
		},
		{
			name: "partial goals keep other defaults",
			configContent: `[goals]
water = 6`,
			expectedTimezone: "Local",
			expectedWater:    6,
			expectedModel:    DefaultModel,
			expectedLevel:    "info",
		},
		{
			name: "uppercase log level normalized",
			configContent: `[log]
level = "WARN"`,
			expectedTimezone: "Local",
			expectedWater:    8,
			expectedModel:    DefaultModel,
			expectedLevel:    "warn",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpFile := createTempConfigFile(t, tt.configContent)

			cfg, err := Load(tmpFile)
			if err != nil {
				t.Fatalf("Load() returned unexpected error: %v", err)
			}

			if cfg.Timezone != tt.expectedTimezone {
				t.Errorf("Timezone = %q, expected %q", cfg.Timezone, tt.expectedTimezone)
			}
			if cfg.Goals.Water != tt.expectedWater {
				t.Errorf("Goals.Water = %v, expected %v", cfg.Goals.Water, tt.expectedWater)
			}
			if cfg.AI.Model != tt.expectedModel {
				t.Errorf("AI.Model = %q, expected %q", cfg.AI.Model, tt.expectedModel)
			}
			if cfg.Log.Level != tt.expectedLevel {
				t.Errorf("Log.Level = %q, expected %q", cfg.Log.Level, tt.expectedLevel)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	nonExistentFile := filepath.Join(t.TempDir(), "does_not_exist.toml")

	_, err := Load(nonExistentFile)
	if err == nil {
		t.Error("Load() should return error for non-existent file")
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	tests := []struct {
		name          string
		configContent string
	}{
		{"malformed string", `timezone = "Local`},
		{"invalid syntax", `this is not valid TOML at all`},
		{"missing quotes", `timezone = Local`},
		{"unclosed brackets", "[goals\nwater = 8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpFile := createTempConfigFile(t, tt.configContent)

			_, err := Load(tmpFile)
			if err == nil {
				t.Fatal("Load() should return error for invalid TOML")
			}
			if !strings.Contains(err.Error(), "failed to parse config file") {
				t.Errorf("Error should mention parse failure, got: %v", err)
			}
		})
	}
}

func TestLoad_UnknownKeys(t *testing.T) {
	tmpFile := createTempConfigFile(t, `timezone = "Local"
api_key = "secret"

[goals]
steps = 10000`)

	_, err := Load(tmpFile)
	if err == nil {
		t.Fatal("Load() should reject unknown keys")
	}
	if !strings.Contains(err.Error(), "api_key") || !strings.Contains(err.Error(), "goals.steps") {
		t.Errorf("Error should list unknown keys, got: %v", err)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name          string
		configContent string
		expectedError string
	}{
		{"bad timezone", `timezone = "Mars/Olympus"`, "invalid timezone"},
		{"zero water goal", "[goals]\nwater = 0", `goal "water"`},
		{"negative sleep goal", "[goals]\nsleep = -1", `goal "sleep"`},
		{"relative base url", "[ai]\nbase_url = \"localhost\"", "ai.base_url"},
		{"temperature too high", "[ai]\ntemperature = 3.5", "ai.temperature"},
		{"top_p zero", "[ai]\ntop_p = 0.0", "ai.top_p"},
		{"zero rate", "[ai]\nrequests_per_minute = 0", "ai.requests_per_minute"},
		{"bad log level", "[log]\nlevel = \"loud\"", "invalid log level"},
		{"bad log format", "[log]\nformat = \"xml\"", "invalid log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpFile := createTempConfigFile(t, tt.configContent)

			_, err := Load(tmpFile)
			if err == nil {
				t.Fatalf("Load() should return error for %s", tt.name)
			}
			if !strings.Contains(err.Error(), tt.expectedError) {
				t.Errorf("Error = %v, expected it to contain %q", err, tt.expectedError)
			}
		})
	}
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	nonExistentFile := filepath.Join(t.TempDir(), "does_not_exist.toml")

	cfg, err := LoadOrDefault(nonExistentFile)
	if err != nil {
		t.Fatalf("LoadOrDefault() returned unexpected error: %v", err)
	}

	if cfg != DefaultConfig() {
		t.Errorf("LoadOrDefault() = %+v, expected defaults", cfg)
	}
}

func TestLoadOrDefault_ValidFile(t *testing.T) {
	tmpFile := createTempConfigFile(t, `timezone = "Europe/London"`)

	cfg, err := LoadOrDefault(tmpFile)
	if err != nil {
		t.Fatalf("LoadOrDefault() returned unexpected error: %v", err)
	}
	if cfg.Timezone != "Europe/London" {
		t.Errorf("Timezone = %q, expected %q", cfg.Timezone, "Europe/London")
	}
}

func TestLoadOrDefault_InvalidFile(t *testing.T) {
	tmpFile := createTempConfigFile(t, `timezone = `)

	_, err := LoadOrDefault(tmpFile)
	if err == nil {
		t.Error("LoadOrDefault() should return error for an invalid file")
	}
}

func TestNormalize(t *testing.T) {
	cfg := Config{
		Timezone: "  ",
		Theme:    " nord ",
		Goals:    DefaultConfig().Goals,
		AI:       DefaultConfig().AI,
	}
	cfg.AI.BaseURL = "https://example.com/v1/ "
	cfg.Log.Level = " DEBUG"
	cfg.Log.Format = "JSON "

	cfg.Normalize()

	if cfg.Timezone != "Local" {
		t.Errorf("Timezone = %q, expected %q", cfg.Timezone, "Local")
	}
	if cfg.Theme != "nord" {
		t.Errorf("Theme = %q, expected %q", cfg.Theme, "nord")
	}
	if cfg.AI.BaseURL != "https://example.com/v1" {
		t.Errorf("AI.BaseURL = %q, expected trailing slash trimmed", cfg.AI.BaseURL)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v, expected lower-cased values", cfg.Log)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() after Normalize() returned error: %v", err)
	}
}

func TestLocation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timezone = "Asia/Tokyo"
	if got := cfg.Location().String(); got != "Asia/Tokyo" {
		t.Errorf("Location() = %q, expected %q", got, "Asia/Tokyo")
	}

	cfg.Timezone = "Nowhere/Special"
	if cfg.Location() != time.Local {
		t.Errorf("Location() for unknown zone = %v, expected time.Local", cfg.Location())
	}
}

func TestAIConfig_Timeout(t *testing.T) {
	ai := DefaultConfig().AI
	if ai.Timeout() != DefaultTimeoutSeconds*time.Second {
		t.Errorf("Timeout() = %v, expected %ds", ai.Timeout(), DefaultTimeoutSeconds)
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, EnvFile), []byte(APIKeyEnv+"=from-file\n"), 0600); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}

	t.Setenv(APIKeyEnv, "")
	_ = os.Unsetenv(APIKeyEnv)

	if err := LoadEnv(dir); err != nil {
		t.Fatalf("LoadEnv() returned unexpected error: %v", err)
	}
	if got := Credential(); got != "from-file" {
		t.Errorf("Credential() = %q, expected %q", got, "from-file")
	}
}

func TestLoadEnv_DoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, EnvFile), []byte(APIKeyEnv+"=from-file\n"), 0600); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}
	t.Setenv(APIKeyEnv, "from-env")

	if err := LoadEnv(dir); err != nil {
		t.Fatalf("LoadEnv() returned unexpected error: %v", err)
	}
	if got := Credential(); got != "from-env" {
		t.Errorf("Credential() = %q, expected %q", got, "from-env")
	}
}

func TestLoadEnv_MissingFile(t *testing.T) {
	if err := LoadEnv(t.TempDir()); err != nil {
		t.Errorf("LoadEnv() should ignore missing files, got: %v", err)
	}
}

func TestGetConfigPath(t *testing.T) {
	defer osutil.ResetProvider()

	tmpDir := t.TempDir()
	osutil.SetProvider(&mockPathProvider{
		userConfigDirFn: func() (string, error) { return tmpDir, nil },
	})

	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() returned error: %v", err)
	}

	expected := filepath.Join(tmpDir, osutil.AppName, ConfigFile)
	if path != expected {
		t.Errorf("GetConfigPath() = %q, expected %q", path, expected)
	}
}

func TestGenerateSampleConfig(t *testing.T) {
	content := GenerateSampleConfig()

	expectedStrings := []string{
		"# well configuration file",
		"# timezone",
		"[goals]",
		"# water = 8",
		"[ai]",
		APIKeyEnv,
		"# top_k = 40",
		"[log]",
		"America/New_York",
	}

	for _, expected := range expectedStrings {
		if !strings.Contains(content, expected) {
			t.Errorf("GenerateSampleConfig() missing expected content: %q", expected)
		}
	}
}

func TestGenerateSampleConfig_LoadsAsDefaults(t *testing.T) {
	tmpFile := createTempConfigFile(t, GenerateSampleConfig())

	cfg, err := Load(tmpFile)
	if err != nil {
		t.Fatalf("Load(sample) returned error: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("Load(sample) = %+v, expected defaults", cfg)
	}
}

func TestGetConfigPath_UserConfigDirError(t *testing.T) {
	defer osutil.ResetProvider()

	osutil.SetProvider(&mockPathProvider{
		userConfigDirFn: func() (string, error) {
			return "", os.ErrPermission
		},
	})

	_, err := GetConfigPath()
	if err == nil {
		t.Error("GetConfigPath() should return error when UserConfigDir fails")
	}
}

func TestGetConfigPath_MkdirAllError(t *testing.T) {
	defer osutil.ResetProvider()

	tmpDir := t.TempDir()
	osutil.SetProvider(&mockPathProvider{
		userConfigDirFn: func() (string, error) {
			return tmpDir, nil
		},
		mkdirAllFn: func(path string, perm os.FileMode) error {
			return os.ErrPermission
		},
	})

	_, err := GetConfigPath()
	if err == nil {
		t.Error("GetConfigPath() should return error when MkdirAll fails")
	}
}

// mockPathProvider is a test helper for mocking osutil.PathProvider
type mockPathProvider struct {
	userConfigDirFn func() (string, error)
	mkdirAllFn      func(path string, perm os.FileMode) error
}

func (m *mockPathProvider) UserConfigDir() (string, error) {
	if m.userConfigDirFn != nil {
		return m.userConfigDirFn()
	}
	return "", nil
}

func (m *mockPathProvider) MkdirAll(path string, perm os.FileMode) error {
	if m.mkdirAllFn != nil {
		return m.mkdirAllFn(path, perm)
	}
	return os.MkdirAll(path, perm)
}
