package ai

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xolan/well/internal/progress"
)

// Input is the data a summary is built from.
type Input struct {
	Date    string
	Metrics []progress.Metric
}

// BuildPrompt renders in as a coaching prompt. Each metric line carries
// consumed, goal, percent and whether the goal was met.
func BuildPrompt(in Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are a supportive wellness coach. Write a short, encouraging summary (3-4 sentences) of my day on %s.\n", in.Date)
	b.WriteString("Celebrate the goals I met and suggest one concrete improvement for a goal I missed.\n\n")
	b.WriteString("Today's progress:\n")

	for _, m := range in.Metrics {
		status := "missed"
		if m.Met {
			status = "met"
		}
		fmt.Fprintf(&b, "- %s: %s of %s %s (%.0f%%), goal %s\n",
			title(m.Name), num(m.Consumed), num(m.Goal), m.Unit, m.Percent, status)
	}

	fmt.Fprintf(&b, "\nGoals met: %d of %d.\n", progress.MetCount(in.Metrics), len(in.Metrics))
	return b.String()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
