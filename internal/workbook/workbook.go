// Package workbook reads Excel workbooks for the extraction engine. It wraps
// excelize behind the three collaborator operations the engine consumes:
// open, list sheet names, read sheet rows.
//
// Cells are a closed variant {Empty, Text, Number}. Classification happens
// here, at the read boundary; the engine converts to trimmed text only when
// normalizing.
package workbook

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// CellKind discriminates the cell variant.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
)

// Cell is one workbook cell. The raw string is kept verbatim so numeric cells
// round-trip without float formatting drift.
type Cell struct {
	Kind CellKind
	raw  string
}

// Classify builds a Cell from the raw string excelize yields.
func Classify(raw string) Cell {
	if strings.TrimSpace(raw) == "" {
		return Cell{Kind: CellEmpty}
	}
	if _, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
		return Cell{Kind: CellNumber, raw: raw}
	}
	return Cell{Kind: CellText, raw: raw}
}

// Text returns the cell as trimmed text; empty cells yield "".
func (c Cell) Text() string {
	return strings.TrimSpace(c.raw)
}

// IsEmpty reports whether the cell holds no value.
func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty
}

// Workbook is an open workbook. It is read-only; concurrent calls are safe
// because every request opens its own Workbook.
type Workbook struct {
	path string
	f    *excelize.File
}

// Open opens the workbook at path. This is the one fatal failure mode of the
// engine: an unreadable or unparseable workbook surfaces as an error instead
// of degrading.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	return &Workbook{path: path, f: f}, nil
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	return w.f.Close()
}

// Path returns the path the workbook was opened from.
func (w *Workbook) Path() string {
	return w.path
}

// SheetNames returns sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	return w.f.GetSheetList()
}

// Rows reads all rows of the named sheet. A missing sheet is an error; the
// caller decides whether that degrades (station segments) or not.
func (w *Workbook) Rows(sheet string) ([][]Cell, error) {
	raw, err := w.f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}

	rows := make([][]Cell, len(raw))
	for i, r := range raw {
		cells := make([]Cell, len(r))
		for j, v := range r {
			cells[j] = Classify(v)
		}
		rows[i] = cells
	}
	return rows, nil
}

// HasSheet reports whether the workbook contains the named sheet.
func (w *Workbook) HasSheet(sheet string) bool {
	idx, err := w.f.GetSheetIndex(sheet)
	return err == nil && idx >= 0
}
