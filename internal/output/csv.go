package output

import (
	"encoding/csv"
)

// CSVWriter writes modification reports as CSV.
type CSVWriter struct{}

// Write outputs the modification report as CSV with a header row.
func (w *CSVWriter) Write(report *ModificationReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	cw := csv.NewWriter(out)
	if err := cw.Write([]string{"type", "folder", "file", "version", "user", "modified", "comment"}); err != nil {
		return err
	}
	for _, m := range report.Items {
		record := []string{
			m.Type.String(),
			m.FolderName,
			m.FileName,
			m.Version,
			m.UserName,
			formatRFC3339(m.ModifiedTime),
			m.Comment,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
