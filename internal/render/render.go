// Package render produces Markdown and terminal output from a report.
package render

import (
	"fmt"
	"strings"

	"github.com/dshills/healthcheck/internal/audit"
)

// Markdown renders a report as a Markdown document.
func Markdown(r *audit.Report) string {
	var b strings.Builder

	// Summary
	fmt.Fprintf(&b, "# %s\n\n", heading(r))
	fmt.Fprintf(&b, "**Score:** %d%%\n", r.Result.Percentage)
	if r.Result.Title != "" {
		fmt.Fprintf(&b, "**Result:** %s\n", r.Result.Title)
	}
	fmt.Fprintf(&b, "**Answered:** %d / %d\n\n", r.Progress.Answered, r.Progress.Total)

	if r.Result.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", r.Result.Description)
	}
	if r.Result.Action != "" {
		fmt.Fprintf(&b, "**Next step:** %s\n\n", r.Result.Action)
	}

	// Call to action
	cta := r.Result.CTA
	if cta.URL != "" {
		b.WriteString("## Recommended\n\n")
		if cta.Context != "" {
			fmt.Fprintf(&b, "%s\n\n", cta.Context)
		}
		fmt.Fprintf(&b, "[%s](%s)\n\n", cta.Label, cta.URL)
		if cta.Subtext != "" {
			fmt.Fprintf(&b, "_%s_\n\n", cta.Subtext)
		}
	}

	// Breakdown
	if len(r.Breakdown) > 0 {
		b.WriteString("## Breakdown\n\n")
		b.WriteString("| Question | Status | Points | Answer |\n")
		b.WriteString("|---|---|---|---|\n")
		for _, qs := range r.Breakdown {
			fmt.Fprintf(&b, "| %d | %s | %s | %s |\n", qs.QuestionID, qs.Status, points(qs), escapeCell(qs.Option))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func heading(r *audit.Report) string {
	switch {
	case r.Input.BankTitle != "":
		return r.Input.BankTitle
	case r.Input.Bank != "":
		return r.Input.Bank + " health check"
	default:
		return "Health check"
	}
}

func points(qs audit.QuestionScore) string {
	if !qs.Status.Scorable() {
		return "-"
	}
	return fmt.Sprintf("%d/%d", qs.Points, qs.MaxPoints)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
