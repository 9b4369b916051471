package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// CIWriter writes modification reports as NDJSON (one JSON object per line) for CI pipelines.
type CIWriter struct{}

// CISummary is the first line of CI output, containing aggregate counts.
type CISummary struct {
	Type     string `json:"type"`
	Sandbox  string `json:"sandbox"`
	Policy   string `json:"policy"`
	Total    int    `json:"total"`
	Added    int    `json:"added"`
	Modified int    `json:"modified"`
	Deleted  int    `json:"deleted"`
}

// CIEntry represents a single modification in CI output.
type CIEntry struct {
	Type     string `json:"type"`
	Change   string `json:"change"`
	Path     string `json:"path"`
	Version  string `json:"version,omitempty"`
	User     string `json:"user,omitempty"`
	Modified string `json:"modified,omitempty"`
}

// Write outputs the modification report as NDJSON.
func (w *CIWriter) Write(report *ModificationReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	added, modified, deleted := report.Counts()
	summary := CISummary{
		Type:     "summary",
		Sandbox:  report.Sandbox,
		Policy:   report.Policy.String(),
		Total:    len(report.Items),
		Added:    added,
		Modified: modified,
		Deleted:  deleted,
	}
	if err := writeNDJSONLine(out, summary); err != nil {
		return err
	}

	for _, m := range report.Items {
		entry := CIEntry{
			Type:     "modification",
			Change:   m.Type.String(),
			Path:     m.Path(),
			Version:  m.Version,
			User:     m.UserName,
			Modified: formatRFC3339(m.ModifiedTime),
		}
		if err := writeNDJSONLine(out, entry); err != nil {
			return err
		}
	}
	return nil
}

func writeNDJSONLine(w io.Writer, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal NDJSON: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
