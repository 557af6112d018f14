// Package extract is the tabular extraction and normalization engine. It
// locates unmarked header rows inside noisy sheet data, reshapes raw rows
// into schema-conformant records, and filters field sheets by station.
//
// Everything here is a pure, single-pass transform over rows the caller read
// from a workbook; no state survives between calls.
package extract

import (
	"github.com/inspectform/inspectform/internal/schema"
	"github.com/inspectform/inspectform/internal/workbook"
)

// LocateHeader returns the index of the most likely header row: the first row
// with at least three non-empty cells and at least one cell whose folded
// value equals a keyword. Keywords must already be folded (the registry folds
// them at construction).
//
// If no row qualifies, 0 is returned so a malformed sheet still degrades to a
// best-effort parse instead of aborting the batch. Earliest match wins.
func LocateHeader(rows [][]workbook.Cell, keywords []string) int {
	for idx, row := range rows {
		if countNonEmpty(row) < 3 {
			continue
		}
		if rowHasKeyword(row, keywords) {
			return idx
		}
	}
	return 0
}

// LocateHeaderPair is the field-sheet variant: header rows there are
// identified by the co-occurrence of two labels rather than one keyword.
// Falls back to 0 like LocateHeader.
func LocateHeaderPair(rows [][]workbook.Cell, first, second string) int {
	a, b := schema.Fold(first), schema.Fold(second)
	for idx, row := range rows {
		if rowHasCell(row, a) && rowHasCell(row, b) {
			return idx
		}
	}
	return 0
}

func countNonEmpty(row []workbook.Cell) int {
	n := 0
	for _, c := range row {
		if !c.IsEmpty() {
			n++
		}
	}
	return n
}

func rowHasKeyword(row []workbook.Cell, keywords []string) bool {
	for _, c := range row {
		if c.IsEmpty() {
			continue
		}
		folded := schema.Fold(c.Text())
		for _, kw := range keywords {
			if folded == kw {
				return true
			}
		}
	}
	return false
}

func rowHasCell(row []workbook.Cell, folded string) bool {
	for _, c := range row {
		if schema.Fold(c.Text()) == folded {
			return true
		}
	}
	return false
}
