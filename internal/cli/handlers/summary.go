package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xolan/well/internal/ai"
	"github.com/xolan/well/internal/cli"
	"github.com/xolan/well/internal/config"
)

// Summary asks the AI service for a summary of today and prints it.
func Summary(ctx context.Context, deps *cli.Deps) {
	credential := ""
	if deps.Credential != nil {
		credential = deps.Credential()
	}

	res, err := deps.Services.Summary.Generate(ctx, credential)
	if err != nil {
		failSummary(deps, err)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Summary for %s\n", cli.FormatDate(res.Date))
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 60))
	_, _ = fmt.Fprintln(deps.Stdout, strings.TrimSpace(res.Text))
}

// SummaryPrompt prints the prompt Summary would send. Nothing is sent and
// no credential is needed.
func SummaryPrompt(deps *cli.Deps) {
	prompt, err := deps.Services.Summary.Prompt()
	if err != nil {
		deps.Fail("Failed to build prompt", err, "Run 'well validate' to check the storage files")
		return
	}
	_, _ = fmt.Fprintln(deps.Stdout, prompt)
}

func failSummary(deps *cli.Deps, err error) {
	var aiErr *ai.Error
	if !errors.As(err, &aiErr) {
		deps.Fail("Failed to generate summary", err, "")
		return
	}

	switch aiErr.Kind {
	case ai.KindConfiguration:
		deps.Fail(aiErr.Message, nil,
			fmt.Sprintf("Set %s in the environment or a .env file, or pass --api-key", config.APIKeyEnv))
	case ai.KindContent:
		deps.Fail(aiErr.Message, nil, "The service returned an empty answer; try again")
	default:
		msg := aiErr.Message
		if aiErr.StatusCode != 0 {
			msg = fmt.Sprintf("%s (HTTP %d)", msg, aiErr.StatusCode)
		}
		deps.Fail(msg, nil, "Check your network connection and the [ai] settings in the config file")
	}
}
