package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// FormatForTerminal formats a WFLError for terminal output. Pass
// noColor true to render plain text (e.g. when stdout isn't a TTY or
// --no-color was given).
func (e WFLError) FormatForTerminal(noColor bool) string {
	var sb strings.Builder

	headerColor, lineColor, caretColor := severityColors(e.Severity)
	if noColor {
		headerColor.DisableColor()
		lineColor.DisableColor()
		caretColor.DisableColor()
	}

	headerColor.Fprintf(&sb, "%s: %s\n", strings.ToUpper(e.Severity.String()), e.Kind)
	fmt.Fprintf(&sb, "  %s\n", e.Message)

	if e.Location.File != "" {
		lineColor.Fprintf(&sb, "  --> %s:%d:%d\n", e.Location.File, e.Location.Line, e.Location.Column)
	}

	if len(e.Context.SourceLines) > 0 {
		sb.WriteString(formatSourceContext(e.Context, lineColor, caretColor, noColor))
	}

	if e.Suggestion != nil {
		sb.WriteString(formatSuggestion(*e.Suggestion, noColor))
	}

	if len(e.RelatedErrors) > 0 {
		sb.WriteString("\nRelated:\n")
		for i, related := range e.RelatedErrors {
			fmt.Fprintf(&sb, "  %d. %s:%d:%d: %s\n",
				i+1, related.Location.File, related.Location.Line, related.Location.Column, related.Message)
		}
	}

	return sb.String()
}

func severityColors(s Severity) (header, line, caret *color.Color) {
	switch s {
	case Info:
		return color.New(color.FgCyan, color.Bold), color.New(color.FgCyan), color.New(color.FgCyan)
	case Warning:
		return color.New(color.FgYellow, color.Bold), color.New(color.FgYellow), color.New(color.FgYellow)
	default:
		return color.New(color.FgRed, color.Bold), color.New(color.FgCyan), color.New(color.FgRed)
	}
}

// formatSourceContext renders the 3-before/error/3-after window with a
// caret underline beneath the offending span.
func formatSourceContext(ctx ErrorContext, lineColor, caretColor *color.Color, noColor bool) string {
	var sb strings.Builder
	gray := color.New(color.FgHiBlack)
	if noColor {
		gray.DisableColor()
	}

	lineColor.Fprintf(&sb, "   |\n")
	for i, line := range ctx.SourceLines {
		lineNum := i + 1
		c := gray
		if i == ctx.Highlight.Line {
			c = lineColor
		}
		c.Fprintf(&sb, "%2d | %s\n", lineNum, line)

		if i == ctx.Highlight.Line {
			lineColor.Fprintf(&sb, "   | ")
			sb.WriteString(strings.Repeat(" ", max(0, ctx.Highlight.Start)))
			highlightLen := ctx.Highlight.End - ctx.Highlight.Start
			if highlightLen <= 0 {
				highlightLen = 1
			}
			caretColor.Fprintf(&sb, "%s\n", strings.Repeat("^", highlightLen))
		}
	}
	lineColor.Fprintf(&sb, "   |\n")

	return sb.String()
}

// formatSuggestion renders an auto-fix suggestion.
func formatSuggestion(s FixSuggestion, noColor bool) string {
	var sb strings.Builder
	cyan := color.New(color.FgCyan, color.Bold)
	if noColor {
		cyan.DisableColor()
	}

	cyan.Fprintf(&sb, "\nHelp: ")
	fmt.Fprintf(&sb, "%s\n", s.Description)

	if s.NewCode != "" {
		for _, line := range strings.Split(s.NewCode, "\n") {
			fmt.Fprintf(&sb, "    %s\n", line)
		}
		if s.Confidence < 1.0 {
			fmt.Fprintf(&sb, "(confidence: %d%%)\n", int(s.Confidence*100))
		}
	}

	return sb.String()
}

// FormatSummary formats a one-line error/warning count summary.
func FormatSummary(errorCount, warningCount int, noColor bool) string {
	red := color.New(color.FgRed, color.Bold)
	yellow := color.New(color.FgYellow, color.Bold)
	if noColor {
		red.DisableColor()
		yellow.DisableColor()
	}

	var parts []string
	if errorCount > 0 {
		parts = append(parts, red.Sprintf("%d error(s)", errorCount))
	}
	if warningCount > 0 {
		parts = append(parts, yellow.Sprintf("%d warning(s)", warningCount))
	}

	if len(parts) == 0 {
		return "No errors or warnings\n"
	}
	return fmt.Sprintf("\nFailed with %s\n", strings.Join(parts, " and "))
}
