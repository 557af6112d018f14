// Package schema holds the extraction configuration: the registry of form
// schemas mapping physical sheet names to logical checklists, and the keyword
// tables that drive header location and station filtering.
//
// A Registry is immutable after construction and is passed explicitly to the
// extraction service; there is no ambient global lookup.
package schema

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Form describes one logical checklist: which physical sheet it lives on
// (by title substring) and the ordered output columns.
type Form struct {
	ID            string   `json:"id"`
	TitleFragment string   `json:"title_fragment"`
	Description   string   `json:"description"`
	Columns       []string `json:"columns"`
}

// FieldSegment describes one specialized field sheet used in station-filtered
// extraction. HeaderKeywords are the two labels whose co-occurrence on a row
// marks it as the header; single-keyword matching is too loose on these
// sheets.
type FieldSegment struct {
	Sheet          string    `json:"sheet"`
	HeaderKeywords [2]string `json:"header_keywords"`
	Columns        []string  `json:"columns"`
}

// File is the serialized form of a Registry, used for the optional JSON
// override file so new workbook layouts are configuration, not code changes.
type File struct {
	Forms          []Form         `json:"forms"`
	HeaderKeywords []string       `json:"header_keywords"`
	RepeatMarkers  []string       `json:"repeat_markers"`
	StationAliases []string       `json:"station_aliases"`
	FieldSegments  []FieldSegment `json:"field_segments"`
}

// Registry is the process-wide extraction configuration. Declaration order of
// forms is significant: sheet matching scans in order and the first match
// wins.
type Registry struct {
	forms          []Form
	byID           map[string]Form
	headerKeywords []string // folded
	repeatMarkers  []string // folded
	stationAliases []string // folded
	segments       []FieldSegment
}

// New builds a Registry from a File and validates it.
func New(f File) (*Registry, error) {
	if len(f.Forms) == 0 {
		return nil, fmt.Errorf("schema: no forms defined")
	}
	if len(f.HeaderKeywords) == 0 {
		return nil, fmt.Errorf("schema: no header keywords defined")
	}

	r := &Registry{
		forms:    make([]Form, len(f.Forms)),
		byID:     make(map[string]Form, len(f.Forms)),
		segments: make([]FieldSegment, len(f.FieldSegments)),
	}
	copy(r.forms, f.Forms)
	copy(r.segments, f.FieldSegments)

	for _, form := range r.forms {
		if form.ID == "" {
			return nil, fmt.Errorf("schema: form with empty id")
		}
		if _, dup := r.byID[form.ID]; dup {
			return nil, fmt.Errorf("schema: duplicate form id %q", form.ID)
		}
		if form.TitleFragment == "" {
			return nil, fmt.Errorf("schema: form %q has empty title fragment", form.ID)
		}
		if len(form.Columns) == 0 {
			return nil, fmt.Errorf("schema: form %q has no columns", form.ID)
		}
		r.byID[form.ID] = form
	}

	for _, seg := range r.segments {
		if seg.Sheet == "" {
			return nil, fmt.Errorf("schema: field segment with empty sheet name")
		}
		if seg.HeaderKeywords[0] == "" || seg.HeaderKeywords[1] == "" {
			return nil, fmt.Errorf("schema: field segment %q needs two header keywords", seg.Sheet)
		}
		if len(seg.Columns) == 0 {
			return nil, fmt.Errorf("schema: field segment %q has no columns", seg.Sheet)
		}
	}

	r.headerKeywords = foldAll(f.HeaderKeywords)
	r.repeatMarkers = foldAll(f.RepeatMarkers)
	r.stationAliases = foldAll(f.StationAliases)
	return r, nil
}

// Lookup returns the form schema for the given id.
func (r *Registry) Lookup(id string) (Form, bool) {
	f, ok := r.byID[id]
	return f, ok
}

// Forms returns all form schemas in declaration order.
func (r *Registry) Forms() []Form {
	out := make([]Form, len(r.forms))
	copy(out, r.forms)
	return out
}

// Match returns the first form whose title fragment is a substring of the
// sheet name. Containment is case-sensitive: source workbooks append suffixes
// to sheet names but do not change their casing.
func (r *Registry) Match(sheetName string) (Form, bool) {
	for _, f := range r.forms {
		if strings.Contains(sheetName, f.TitleFragment) {
			return f, true
		}
	}
	return Form{}, false
}

// HeaderKeywords returns the folded keyword set for header location.
func (r *Registry) HeaderKeywords() []string {
	return r.headerKeywords
}

// IsRepeatMarker reports whether a row's first cell marks a repeated header
// row. Markers match by containment so variants like "SENSORES" hit the
// "SENSOR" marker.
func (r *Registry) IsRepeatMarker(firstCell string) bool {
	folded := Fold(firstCell)
	if folded == "" {
		return false
	}
	for _, m := range r.repeatMarkers {
		if strings.Contains(folded, m) {
			return true
		}
	}
	return false
}

// IsStationColumn reports whether a column name is an accepted spelling of
// the station column.
func (r *Registry) IsStationColumn(name string) bool {
	folded := Fold(name)
	for _, a := range r.stationAliases {
		if folded == a {
			return true
		}
	}
	return false
}

// Segments returns the field-form segments in declaration order.
func (r *Registry) Segments() []FieldSegment {
	out := make([]FieldSegment, len(r.segments))
	copy(out, r.segments)
	return out
}

// Fold normalizes a value for keyword comparison: surrounding whitespace
// trimmed, diacritics removed, upper-cased. The transform chain is built per
// call because chained transformers carry buffer state.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToUpper(strings.TrimSpace(folded))
}

func foldAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if f := Fold(v); f != "" {
			out = append(out, f)
		}
	}
	return out
}
