package extract

import (
	"sort"
	"strconv"
	"strings"

	"github.com/inspectform/inspectform/internal/schema"
	"github.com/inspectform/inspectform/internal/workbook"
)

// Service composes the engine for the web shell: it resolves sheets against
// the registry, locates headers, and normalizes rows. One Service is shared
// across requests; it holds only the immutable registry.
type Service struct {
	reg *schema.Registry
}

// NewService returns a Service backed by the given registry.
func NewService(reg *schema.Registry) *Service {
	return &Service{reg: reg}
}

// Registry exposes the service's registry to the shell.
func (s *Service) Registry() *schema.Registry {
	return s.reg
}

// Summary describes one resolvable form for the listing view.
type Summary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ItemCount   int    `json:"item_count"`
}

// Result is an extraction outcome: normalized records plus the column names
// that apply to all of them. Headers is empty when records span mixed
// schemas or the form id is unknown.
type Result struct {
	Headers []string `json:"headers"`
	Items   []Record `json:"items"`
}

func emptyResult() Result {
	return Result{Headers: []string{}, Items: []Record{}}
}

// Summaries lists every sheet in the workbook that matches a registered form,
// sorted by numeric form id ascending. A sheet that fails to read is skipped
// rather than failing the listing.
func (s *Service) Summaries(wb *workbook.Workbook) []Summary {
	out := []Summary{}
	for _, name := range wb.SheetNames() {
		form, ok := s.reg.Match(name)
		if !ok {
			continue
		}
		rows, err := wb.Rows(name)
		if err != nil {
			continue
		}

		headerIdx := LocateHeader(rows, s.reg.HeaderKeywords())

		// One row below the header is conventionally a stale example row;
		// the count excludes it. Floored so a header-only sheet reports 0.
		count := countNonBlankBelow(rows, headerIdx) - 1
		if count < 0 {
			count = 0
		}

		out = append(out, Summary{
			ID:          form.ID,
			Title:       name,
			Description: form.Description,
			ItemCount:   count,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return formOrder(out[i].ID) < formOrder(out[j].ID)
	})
	return out
}

// ResolveSheet finds the physical sheet for a form id. The second return is
// the form schema; ok is false when the id is unregistered or no sheet name
// contains the form's title fragment.
func (s *Service) ResolveSheet(wb *workbook.Workbook, formID string) (string, schema.Form, bool) {
	form, ok := s.reg.Lookup(formID)
	if !ok {
		return "", schema.Form{}, false
	}
	for _, name := range wb.SheetNames() {
		if strings.Contains(name, form.TitleFragment) {
			return name, form, true
		}
	}
	return "", form, false
}

// Items extracts the records for one form. Unknown form ids yield an empty
// result with empty headers; a known form whose sheet is absent or unreadable
// yields the form's headers with no items so the caller can still render the
// column layout.
func (s *Service) Items(wb *workbook.Workbook, formID string) Result {
	name, form, ok := s.ResolveSheet(wb, formID)
	if !ok {
		if form.ID == "" {
			return emptyResult()
		}
		return Result{Headers: form.Columns, Items: []Record{}}
	}

	rows, err := wb.Rows(name)
	if err != nil {
		return Result{Headers: form.Columns, Items: []Record{}}
	}

	headerIdx := LocateHeader(rows, s.reg.HeaderKeywords())
	items := Normalize(name, rows, headerIdx, form.Columns, s.reg)
	return Result{Headers: form.Columns, Items: items}
}

// AllItems extracts every matching sheet in the workbook. Headers is empty
// because the concatenated records span different schemas.
func (s *Service) AllItems(wb *workbook.Workbook) Result {
	res := emptyResult()
	for _, name := range wb.SheetNames() {
		form, ok := s.reg.Match(name)
		if !ok {
			continue
		}
		rows, err := wb.Rows(name)
		if err != nil {
			continue
		}
		headerIdx := LocateHeader(rows, s.reg.HeaderKeywords())
		res.Items = append(res.Items, Normalize(name, rows, headerIdx, form.Columns, s.reg)...)
	}
	return res
}

func countNonBlankBelow(rows [][]workbook.Cell, headerIdx int) int {
	if headerIdx+1 >= len(rows) {
		return 0
	}
	n := 0
	for _, row := range rows[headerIdx+1:] {
		if countNonEmpty(row) > 0 {
			n++
		}
	}
	return n
}

// formOrder sorts numeric form ids ascending; non-numeric ids sort last.
func formOrder(id string) int {
	n, err := strconv.Atoi(id)
	if err != nil {
		return int(^uint(0) >> 1)
	}
	return n
}
