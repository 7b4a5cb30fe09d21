package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dshills/healthcheck/internal/audit"
	"github.com/muesli/reflow/wordwrap"
)

// ConsoleOptions controls terminal rendering.
type ConsoleOptions struct {
	Color     bool
	Breakdown bool
	Width     int
}

// TierColor picks the terminal colour for a tier rank: lowest red, highest
// green, anything between amber.
func TierColor(rank, ranks int) lipgloss.Color {
	switch {
	case rank <= 1:
		return lipgloss.Color("9") // red
	case rank >= ranks:
		return lipgloss.Color("10") // green
	default:
		return lipgloss.Color("11") // amber
	}
}

// Console renders a report for a terminal.
func Console(r *audit.Report, opts ConsoleOptions) string {
	width := opts.Width
	if width <= 0 {
		width = 72
	}

	plain := lipgloss.NewStyle()
	scoreStyle, titleStyle, dim, link := plain, plain, plain, plain
	if opts.Color {
		c := TierColor(r.Result.Rank, r.Result.Ranks)
		scoreStyle = lipgloss.NewStyle().Bold(true).Foreground(c)
		titleStyle = lipgloss.NewStyle().Bold(true).Italic(true).Foreground(c)
		dim = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		link = lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("13"))
	}
	wrap := func(s string) string { return wordwrap.String(s, width) }

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", heading(r))
	fmt.Fprintf(&b, "%s  %s\n", scoreStyle.Render(fmt.Sprintf("%d%%", r.Result.Percentage)), titleStyle.Render(r.Result.Title))
	fmt.Fprintf(&b, "%s\n\n", dim.Render(fmt.Sprintf("answered %d of %d", r.Progress.Answered, r.Progress.Total)))

	if r.Result.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", wrap(r.Result.Description))
	}
	if r.Result.Action != "" {
		fmt.Fprintf(&b, "%s\n\n", wrap("Next step: "+r.Result.Action))
	}

	cta := r.Result.CTA
	if cta.URL != "" {
		if cta.Context != "" {
			fmt.Fprintf(&b, "%s\n\n", wrap(cta.Context))
		}
		fmt.Fprintf(&b, "→ %s  %s\n", cta.Label, link.Render(cta.URL))
		if cta.Subtext != "" {
			fmt.Fprintf(&b, "  %s\n", dim.Render(cta.Subtext))
		}
	}

	if opts.Breakdown && len(r.Breakdown) > 0 {
		b.WriteString("\n")
		for _, qs := range r.Breakdown {
			mark := "·"
			switch qs.Status {
			case audit.StatusScored:
				mark = "✓"
				if qs.Points < qs.MaxPoints {
					mark = "✗"
				}
			case audit.StatusNA:
				mark = "–"
			case audit.StatusInvalid:
				mark = "?"
			}
			line := fmt.Sprintf("%s Q%d %-10s %5s", mark, qs.QuestionID, qs.Status, points(qs))
			fmt.Fprintln(&b, dim.Render(line))
		}
	}

	return b.String()
}
