package output

import (
	"time"

	"github.com/masmgr/sisync/internal/mks"
)

// Compile-time interface conformance checks.
var (
	_ ModificationReportWriter = (*ConsoleWriter)(nil)
	_ ModificationReportWriter = (*JSONWriter)(nil)
	_ ModificationReportWriter = (*CSVWriter)(nil)
	_ ModificationReportWriter = (*MarkdownWriter)(nil)
	_ ModificationReportWriter = (*CIWriter)(nil)
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	FormatConsole  OutputFormat = "console"
	FormatJSON     OutputFormat = "json"
	FormatCSV      OutputFormat = "csv"
	FormatMarkdown OutputFormat = "markdown"
	FormatCI       OutputFormat = "ci"
)

// OutputOptions controls output behavior.
type OutputOptions struct {
	Format     OutputFormat
	OutputPath string
}

// ModificationReport holds the modifications detected for one build cycle.
type ModificationReport struct {
	Sandbox     string
	From        time.Time
	To          time.Time
	GeneratedAt time.Time
	Policy      mks.FilterPolicy
	Items       []mks.Modification
}

// Counts returns the number of added, modified and deleted members.
func (r *ModificationReport) Counts() (added, modified, deleted int) {
	for _, m := range r.Items {
		switch m.Type {
		case mks.ModificationAdded:
			added++
		case mks.ModificationDeleted:
			deleted++
		default:
			modified++
		}
	}
	return added, modified, deleted
}

// ModificationReportWriter writes modification reports.
type ModificationReportWriter interface {
	Write(report *ModificationReport, options OutputOptions) error
}

// NewModificationWriter creates a report writer for the specified format.
func NewModificationWriter(format OutputFormat) ModificationReportWriter {
	switch format {
	case FormatJSON:
		return &JSONWriter{}
	case FormatCSV:
		return &CSVWriter{}
	case FormatMarkdown:
		return &MarkdownWriter{}
	case FormatCI:
		return &CIWriter{}
	default:
		return &ConsoleWriter{}
	}
}

// ParseFormat maps a format flag value to an OutputFormat. Unknown values fall back to console.
func ParseFormat(s string) OutputFormat {
	switch s {
	case "json":
		return FormatJSON
	case "csv":
		return FormatCSV
	case "markdown", "md":
		return FormatMarkdown
	case "ci", "ndjson":
		return FormatCI
	default:
		return FormatConsole
	}
}
