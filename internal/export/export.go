// Package export serializes submitted checklist answers into xlsx artifacts,
// one artifact per submission.
package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// Headers is the fixed column order of every result artifact.
var Headers = []string{"Timestamp", "Submitter", "Tab", "Equipment", "Status", "Justification"}

const timestampLayout = "2006-01-02 15:04:05"

// AnswerRecord is one submitted checklist answer. Records are created per
// submission, never mutated, and written once.
type AnswerRecord struct {
	Timestamp     time.Time
	Submitter     string // optional
	Tab           string
	Equipment     string
	Status        string
	Justification string
}

func (a AnswerRecord) row() []any {
	return []any{
		a.Timestamp.Format(timestampLayout),
		a.Submitter,
		a.Tab,
		a.Equipment,
		a.Status,
		a.Justification,
	}
}

// Write serializes the records to a new xlsx artifact at path: one header row
// followed by one row per record in insertion order. No deduplication or
// merging; distinct submissions must use distinct paths.
func Write(path string, records []AnswerRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	header := make([]any, len(Headers))
	for i, h := range Headers {
		header[i] = h
	}
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}

	for i, rec := range records {
		if err := setRow(f, sheet, i+2, rec.row()); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("writing results %s: %w", path, err)
	}
	return nil
}

// ArtifactName builds the deterministic artifact file name for a submission
// timestamp.
func ArtifactName(t time.Time) string {
	return fmt.Sprintf("resultados_%s.xlsx", t.Format("20060102_150405"))
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("row %d: %w", row, err)
	}
	return nil
}
