package output

import (
	"encoding/json"
	"fmt"
)

// JSONWriter writes modification reports as JSON.
type JSONWriter struct{}

// JSONReport is the JSON output structure for a modification report.
type JSONReport struct {
	Sandbox     string             `json:"sandbox"`
	From        string             `json:"from"`
	To          string             `json:"to"`
	GeneratedAt string             `json:"generatedAt"`
	Policy      string             `json:"policy"`
	Total       int                `json:"total"`
	Items       []JSONModification `json:"items"`
}

// JSONModification is the JSON output structure for a single modification.
type JSONModification struct {
	Type         string `json:"type"`
	Path         string `json:"path"`
	FileName     string `json:"fileName"`
	FolderName   string `json:"folderName,omitempty"`
	ModifiedTime string `json:"modifiedTime,omitempty"`
	UserName     string `json:"userName,omitempty"`
	Comment      string `json:"comment,omitempty"`
	Version      string `json:"version,omitempty"`
}

// Write outputs the modification report as JSON.
func (w *JSONWriter) Write(report *ModificationReport, options OutputOptions) error {
	items := make([]JSONModification, len(report.Items))
	for i, m := range report.Items {
		items[i] = JSONModification{
			Type:         m.Type.String(),
			Path:         m.Path(),
			FileName:     m.FileName,
			FolderName:   m.FolderName,
			ModifiedTime: formatRFC3339(m.ModifiedTime),
			UserName:     m.UserName,
			Comment:      m.Comment,
			Version:      m.Version,
		}
	}

	doc := JSONReport{
		Sandbox:     report.Sandbox,
		From:        formatRFC3339(report.From),
		To:          formatRFC3339(report.To),
		GeneratedAt: formatRFC3339(report.GeneratedAt),
		Policy:      report.Policy.String(),
		Total:       len(items),
		Items:       items,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}
	_, err = fmt.Fprintf(out, "%s\n", data)
	return err
}
