package extract

import (
	"strings"

	"github.com/inspectform/inspectform/internal/schema"
	"github.com/inspectform/inspectform/internal/workbook"
)

// StationItems runs the field-form extraction mode: the configured field
// segments are read one by one, their header rows located by keyword pair,
// and the resulting records filtered to the requested station.
//
// Segment failures are independent: a segment whose sheet is missing or
// unreadable contributes nothing but never prevents the others from
// extracting.
func (s *Service) StationItems(wb *workbook.Workbook, station string) Result {
	res := emptyResult()
	for _, seg := range s.reg.Segments() {
		rows, err := wb.Rows(seg.Sheet)
		if err != nil {
			continue
		}

		headerIdx := LocateHeaderPair(rows, seg.HeaderKeywords[0], seg.HeaderKeywords[1])
		records := Normalize(seg.Sheet, rows, headerIdx, seg.Columns, s.reg)
		res.Items = append(res.Items, FilterByStation(records, station, s.reg)...)
	}
	return res
}

// FilterByStation keeps the records whose station field equals the requested
// station, comparing case-insensitively with surrounding whitespace trimmed,
// and drops the station field from the survivors — it is a filter key, not a
// display field.
//
// The station column is found by folded name against the registry's accepted
// spellings. When no field matches, filtering is skipped and all records are
// returned unchanged.
func FilterByStation(records []Record, station string, reg *schema.Registry) []Record {
	idx := stationFieldIndex(records, reg)
	if idx < 0 {
		return records
	}

	want := strings.TrimSpace(station)
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if !strings.EqualFold(strings.TrimSpace(rec.Fields[idx].Value), want) {
			continue
		}
		fields := make([]Field, 0, len(rec.Fields)-1)
		fields = append(fields, rec.Fields[:idx]...)
		fields = append(fields, rec.Fields[idx+1:]...)
		out = append(out, Record{Sheet: rec.Sheet, Fields: fields})
	}
	return out
}

func stationFieldIndex(records []Record, reg *schema.Registry) int {
	if len(records) == 0 {
		return -1
	}
	for i, f := range records[0].Fields {
		if reg.IsStationColumn(f.Name) {
			return i
		}
	}
	return -1
}
