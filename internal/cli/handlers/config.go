package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xolan/well/internal/cli"
	"github.com/xolan/well/internal/config"
)

// ShowConfig displays the current configuration
func ShowConfig(deps *cli.Deps) {
	cfg := deps.Services.Config.Get()
	path := deps.Services.Config.GetPath()

	_, _ = fmt.Fprintln(deps.Stdout, "Configuration:")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Config file: %s\n", path)
	if deps.Services.Config.Exists() {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: File exists")
	} else {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: Using defaults (no config file)")
	}
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "timezone:   %s\n", cfg.Timezone)
	_, _ = fmt.Fprintf(deps.Stdout, "theme:      %s\n", cfg.Theme)

	_, _ = fmt.Fprintln(deps.Stdout, "\n[goals]")
	_, _ = fmt.Fprintf(deps.Stdout, "water:      %s cups\n", cli.FormatNumber(cfg.Goals.Water))
	_, _ = fmt.Fprintf(deps.Stdout, "sleep:      %s hours\n", cli.FormatNumber(cfg.Goals.Sleep))
	_, _ = fmt.Fprintf(deps.Stdout, "exercise:   %s minutes\n", cli.FormatNumber(cfg.Goals.Exercise))
	_, _ = fmt.Fprintf(deps.Stdout, "meditation: %s minutes\n", cli.FormatNumber(cfg.Goals.Meditation))

	_, _ = fmt.Fprintln(deps.Stdout, "\n[ai]")
	_, _ = fmt.Fprintf(deps.Stdout, "base_url:   %s\n", cfg.AI.BaseURL)
	_, _ = fmt.Fprintf(deps.Stdout, "model:      %s\n", cfg.AI.Model)
	_, _ = fmt.Fprintf(deps.Stdout, "sampling:   temperature=%s top_k=%d top_p=%s\n",
		cli.FormatNumber(cfg.AI.Temperature), cfg.AI.TopK, strconv.FormatFloat(cfg.AI.TopP, 'f', -1, 64))
	_, _ = fmt.Fprintf(deps.Stdout, "limits:     %d tokens, %ds timeout, %d requests/min\n",
		cfg.AI.MaxOutputTokens, cfg.AI.TimeoutSeconds, cfg.AI.RequestsPerMinute)
	credential := "not set"
	if deps.Credential != nil && deps.Credential() != "" {
		credential = "set"
	}
	_, _ = fmt.Fprintf(deps.Stdout, "api key:    %s (%s)\n", credential, config.APIKeyEnv)

	_, _ = fmt.Fprintln(deps.Stdout, "\n[log]")
	_, _ = fmt.Fprintf(deps.Stdout, "level:      %s\n", cfg.Log.Level)
	_, _ = fmt.Fprintf(deps.Stdout, "format:     %s\n", cfg.Log.Format)
	file := cfg.Log.File
	if file == "" {
		file = "(default)"
	}
	_, _ = fmt.Fprintf(deps.Stdout, "file:       %s\n", file)
}

// InitConfig creates a sample config file
func InitConfig(deps *cli.Deps) {
	err := deps.Services.Config.Init()
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	path := deps.Services.Config.GetPath()
	_, _ = fmt.Fprintf(deps.Stdout, "Created config file: %s\n", path)
	_, _ = fmt.Fprintln(deps.Stdout, "Edit this file to customize your settings.")
}
