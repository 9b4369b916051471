package output

import (
	"fmt"
	"strings"
)

// MarkdownWriter writes modification reports as a Markdown table.
type MarkdownWriter struct{}

// Write outputs the modification report as Markdown.
func (w *MarkdownWriter) Write(report *ModificationReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	var sb strings.Builder
	sb.WriteString("# Sandbox Modifications\n\n")
	fmt.Fprintf(&sb, "- **Sandbox**: `%s`\n", report.Sandbox)
	fmt.Fprintf(&sb, "- **Period**: %s to %s\n", formatTime(report.From), formatTime(report.To))
	fmt.Fprintf(&sb, "- **Filter**: %s\n", report.Policy)
	fmt.Fprintf(&sb, "- **Total**: %d\n\n", len(report.Items))

	if len(report.Items) > 0 {
		sb.WriteString("| # | Type | Path | Revision | User | Modified | Comment |\n")
		sb.WriteString("|---|------|------|----------|------|----------|---------|\n")
		for i, m := range report.Items {
			fmt.Fprintf(&sb, "| %d | %s | `%s` | %s | %s | %s | %s |\n",
				i+1,
				m.Type,
				m.Path(),
				m.Version,
				escapeMarkdownCell(m.UserName),
				formatTime(m.ModifiedTime),
				escapeMarkdownCell(firstLine(m.Comment)),
			)
		}
	}

	_, err = fmt.Fprint(out, sb.String())
	return err
}

func escapeMarkdownCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
