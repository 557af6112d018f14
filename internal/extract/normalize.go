package extract

import (
	"github.com/inspectform/inspectform/internal/schema"
	"github.com/inspectform/inspectform/internal/workbook"
)

// Field is one named cell of a normalized record.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Record is one normalized, schema-conformant checklist row. Fields are in
// schema column order and there are always exactly as many as the schema has
// columns.
type Record struct {
	Sheet  string  `json:"sheet"`
	Fields []Field `json:"fields"`
}

// Get returns the value of the named field, or "" if absent.
func (r Record) Get(name string) string {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

// Normalize reshapes the rows strictly after headerIdx into records with
// exactly len(columns) fields each.
//
// Rows whose first cell matches a repeated-header marker are dropped: multi
// block sheets repeat their header mid-sheet. Short rows are right-padded
// with empty values; columns beyond the schema width are dropped — only the
// first N semantic columns are meaningful per form type. Rows that are empty
// across every kept cell are dropped too.
func Normalize(sheet string, rows [][]workbook.Cell, headerIdx int, columns []string, reg *schema.Registry) []Record {
	if headerIdx+1 >= len(rows) {
		return []Record{}
	}

	out := make([]Record, 0, len(rows)-headerIdx-1)
	for _, row := range rows[headerIdx+1:] {
		if len(row) > 0 && reg.IsRepeatMarker(row[0].Text()) {
			continue
		}

		fields := make([]Field, len(columns))
		empty := true
		for i, name := range columns {
			value := ""
			if i < len(row) {
				value = row[i].Text()
			}
			if value != "" {
				empty = false
			}
			fields[i] = Field{Name: name, Value: value}
		}
		if empty {
			continue
		}

		out = append(out, Record{Sheet: sheet, Fields: fields})
	}
	return out
}
