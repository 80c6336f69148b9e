package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/xolan/well/internal/logging"
	"github.com/xolan/well/internal/osutil"
	"github.com/xolan/well/internal/record"
)

const (
	// ConfigFile is the name of the TOML configuration file
	ConfigFile = "config.toml"
	// EnvFile is the optional dotenv file read from the working directory and the app directory
	EnvFile = ".env"
	// APIKeyEnv names the environment variable holding the AI credential
	APIKeyEnv = "WELL_API_KEY"
)

// Defaults for the [ai] table.
const (
	DefaultBaseURL           = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel             = "gemini-1.5-flash"
	DefaultTemperature       = 0.7
	DefaultTopK              = 40
	DefaultTopP              = 0.95
	DefaultMaxOutputTokens   = 1024
	DefaultTimeoutSeconds    = 30
	DefaultRequestsPerMinute = 6
)

// AIConfig configures the summary request. The credential is deliberately
// absent: it comes from the environment or a flag and is never written.
type AIConfig struct {
	BaseURL           string  `toml:"base_url"`
	Model             string  `toml:"model"`
	Temperature       float64 `toml:"temperature"`
	TopK              int     `toml:"top_k"`
	TopP              float64 `toml:"top_p"`
	MaxOutputTokens   int     `toml:"max_output_tokens"`
	TimeoutSeconds    int     `toml:"timeout_seconds"`
	RequestsPerMinute int     `toml:"requests_per_minute"`
}

// Timeout returns TimeoutSeconds as a duration.
func (a AIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// Config represents the application configuration
type Config struct {
	// Timezone resolves "today" (IANA timezone name, e.g., "America/New_York", or "Local")
	Timezone string `toml:"timezone"`
	// Theme is the bubbletint theme ID used by the TUI
	Theme string `toml:"theme"`

	Goals record.GoalSet `toml:"goals"`
	AI    AIConfig       `toml:"ai"`
	Log   logging.Config `toml:"log"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Timezone: "Local",
		Theme:    "dracula",
		Goals:    record.DefaultGoals(),
		AI: AIConfig{
			BaseURL:           DefaultBaseURL,
			Model:             DefaultModel,
			Temperature:       DefaultTemperature,
			TopK:              DefaultTopK,
			TopP:              DefaultTopP,
			MaxOutputTokens:   DefaultMaxOutputTokens,
			TimeoutSeconds:    DefaultTimeoutSeconds,
			RequestsPerMinute: DefaultRequestsPerMinute,
		},
		Log: logging.DefaultConfig(),
	}
}

// GetConfigPath returns the path to the config file, creating the app
// directory if it doesn't exist.
func GetConfigPath() (string, error) {
	return osutil.AppFile(ConfigFile)
}

// Load reads and validates the config file at path. Keys missing from the
// file keep their defaults; unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		var perr toml.ParseError
		if errors.As(err, &perr) {
			return cfg, fmt.Errorf("failed to parse config file: %s", perr.ErrorWithPosition())
		}
		if os.IsNotExist(err) || os.IsPermission(err) {
			return cfg, err
		}
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return cfg, fmt.Errorf("unknown config key(s): %s", strings.Join(keys, ", "))
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadOrDefault loads the config at path, or returns defaults when the file
// does not exist. Any other failure is returned.
func LoadOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return DefaultConfig(), err
	}
	return Load(path)
}

// Normalize lower-cases enum values and trims strings.
func (c *Config) Normalize() {
	c.Timezone = strings.TrimSpace(c.Timezone)
	if c.Timezone == "" {
		c.Timezone = "Local"
	}
	c.Theme = strings.TrimSpace(c.Theme)
	c.AI.BaseURL = strings.TrimRight(strings.TrimSpace(c.AI.BaseURL), "/")
	c.AI.Model = strings.TrimSpace(c.AI.Model)
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
}

// Validate checks every setting and returns the first problem found.
func (c Config) Validate() error {
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	if err := c.Goals.Validate(); err != nil {
		return err
	}
	if err := c.AI.Validate(); err != nil {
		return err
	}
	return c.Log.Validate()
}

// Validate checks the [ai] table.
func (a AIConfig) Validate() error {
	u, err := url.Parse(a.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid ai.base_url %q: must be an absolute URL", a.BaseURL)
	}
	switch {
	case a.Model == "":
		return fmt.Errorf("ai.model cannot be empty")
	case a.Temperature < 0 || a.Temperature > 2:
		return fmt.Errorf("ai.temperature must be between 0 and 2, got %v", a.Temperature)
	case a.TopK < 1:
		return fmt.Errorf("ai.top_k must be at least 1, got %d", a.TopK)
	case a.TopP <= 0 || a.TopP > 1:
		return fmt.Errorf("ai.top_p must be in (0, 1], got %v", a.TopP)
	case a.MaxOutputTokens < 1:
		return fmt.Errorf("ai.max_output_tokens must be at least 1, got %d", a.MaxOutputTokens)
	case a.TimeoutSeconds < 1:
		return fmt.Errorf("ai.timeout_seconds must be at least 1, got %d", a.TimeoutSeconds)
	case a.RequestsPerMinute < 1:
		return fmt.Errorf("ai.requests_per_minute must be at least 1, got %d", a.RequestsPerMinute)
	}
	return nil
}

// Location resolves Timezone. Validate has already rejected unknown names,
// so failures fall back to time.Local.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// LoadEnv loads EnvFile from the working directory and from dir without
// overriding variables already set. Missing files are ignored.
func LoadEnv(dir string) error {
	candidates := []string{EnvFile}
	if dir != "" {
		candidates = append(candidates, filepath.Join(dir, EnvFile))
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// Credential returns the AI credential from the environment.
func Credential() string {
	return strings.TrimSpace(os.Getenv(APIKeyEnv))
}

// GenerateSampleConfig returns a commented config file documenting every key.
func GenerateSampleConfig() string {
	d := DefaultConfig()
	return fmt.Sprintf(`# well configuration file
# Every setting is optional; commented values show the defaults.

# Timezone used to decide what "today" is.
# "Local" or an IANA name, e.g. America/New_York, Europe/London, Asia/Tokyo
# timezone = "Local"

# TUI theme (any bubbletint theme ID, e.g. dracula, nord)
# theme = "dracula"

[goals]
# water = %v        # cups per day
# sleep = %v        # hours per night
# exercise = %v    # minutes per day
# meditation = %v  # minutes per day

[ai]
# The API key is read from the %s environment variable (or a .env file),
# never from this file.
# base_url = %q
# model = %q
# temperature = %v
# top_k = %d
# top_p = %v
# max_output_tokens = %d
# timeout_seconds = %d
# requests_per_minute = %d

[log]
# level = "info"    # trace, debug, info, warn, error
# format = "text"   # text or json
# file = ""         # empty: well.log next to this file
`,
		d.Goals.Water, d.Goals.Sleep, d.Goals.Exercise, d.Goals.Meditation,
		APIKeyEnv,
		d.AI.BaseURL, d.AI.Model, d.AI.Temperature, d.AI.TopK, d.AI.TopP,
		d.AI.MaxOutputTokens, d.AI.TimeoutSeconds, d.AI.RequestsPerMinute)
}
