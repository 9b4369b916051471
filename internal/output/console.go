package output

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/masmgr/sisync/internal/mks"
)

// ConsoleWriter writes modification reports to the console.
type ConsoleWriter struct{}

// Write outputs the modification report as a colored table.
func (w *ConsoleWriter) Write(report *ModificationReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	title := color.New(color.FgGreen)
	title.Fprintln(out, "Sandbox Modifications")
	fmt.Fprintf(out, "Sandbox: %s\n", report.Sandbox)
	fmt.Fprintf(out, "Period: %s to %s (%s filter)\n", formatTime(report.From), formatTime(report.To), report.Policy)
	added, modified, deleted := report.Counts()
	fmt.Fprintf(out, "Total: %d (added %d, modified %d, deleted %d)\n\n", len(report.Items), added, modified, deleted)

	if len(report.Items) == 0 {
		fmt.Fprintln(out, "No modifications found in the specified range.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tType\tPath\tRevision\tUser\tModified\tComment")
	for i, m := range report.Items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			i+1,
			typeColor(m.Type).Sprint(m.Type),
			m.Path(),
			m.Version,
			m.UserName,
			formatTime(m.ModifiedTime),
			firstLine(m.Comment),
		)
	}
	return tw.Flush()
}

func typeColor(t mks.ModificationType) *color.Color {
	switch t {
	case mks.ModificationAdded:
		return color.New(color.FgGreen)
	case mks.ModificationDeleted:
		return color.New(color.FgRed)
	default:
		return color.New(color.FgYellow)
	}
}

func firstLine(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' || s[i] == '\r' {
			return s[:i]
		}
	}
	return s
}
