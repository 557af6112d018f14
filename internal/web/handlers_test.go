package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/inspectform/inspectform/internal/config"
	"github.com/inspectform/inspectform/internal/extract"
	"github.com/inspectform/inspectform/internal/schema"
)

// newTestServer builds a server over a generated fixture workbook, with rate
// limiting off and no audit store.
func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "checklist.xlsx")

	f := excelize.NewFile()
	visual := "INSPEÇÃO VISUAL - LINE A"
	if _, err := f.NewSheet(visual); err != nil {
		t.Fatal(err)
	}
	f.SetSheetRow(visual, "A1", &[]any{"FT-5.82.AD.BA6XX-403 - ANEXO 1"})
	f.SetSheetRow(visual, "A2", &[]any{"SENSORES", "LOCAL INSTALADO", "TESTE REALIZADO", "OK", "NOK", "OBSERVAÇÕES"})
	f.SetSheetRow(visual, "A3", &[]any{"PT-100", "Forno A", "Continuidade", "x", "", ""})
	f.SetSheetRow(visual, "A4", &[]any{"TT-200", "Linha 3", "Aferição", "", "x", "recalibrar"})

	field := "CHECK LIST CAMPO - INSTRUMENTAÇÃO"
	if _, err := f.NewSheet(field); err != nil {
		t.Fatal(err)
	}
	f.SetSheetRow(field, "A1", &[]any{"TAG", "ESTAÇÃO", "DESCRIÇÃO", "TESTE REALIZADO", "OK", "NOK", "OBSERVAÇÕES"})
	f.SetSheetRow(field, "A2", &[]any{"PT-01", "LINE-A", "Pressão", "Continuidade", "x", "", ""})
	f.SetSheetRow(field, "A3", &[]any{"PT-02", "LINE-B", "Pressão", "Continuidade", "", "x", ""})

	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	f.Close()

	cfg := &config.Config{}
	cfg.Server.RequestTimeout = 60 * time.Second
	cfg.Workbook.Path = path
	cfg.Export.Dir = filepath.Join(dir, "resultados")
	cfg.Rate.Enabled = false

	return NewServer(cfg, extract.NewService(schema.Default()), nil), dir
}

func doRequest(t *testing.T, s *Server, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestHandleListForms(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/forms", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var summaries []extract.Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &summaries); err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 1 {
		t.Fatalf("len(summaries) = %d, want 1: %+v", len(summaries), summaries)
	}
	if summaries[0].ID != "2" {
		t.Errorf("ID = %q, want 2", summaries[0].ID)
	}
}

func TestHandleFormItems(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/forms/2", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var res extract.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if len(res.Headers) != 6 {
		t.Errorf("len(headers) = %d, want 6", len(res.Headers))
	}
	if len(res.Items) != 2 {
		t.Errorf("len(items) = %d, want 2", len(res.Items))
	}
}

func TestHandleFormItems_UnknownForm(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/forms/9", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 empty-state, not an error", rec.Code)
	}

	var res extract.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if len(res.Items) != 0 || len(res.Headers) != 0 {
		t.Errorf("unknown form result = %+v, want empty", res)
	}
}

func TestHandleStationItems(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/station/line-a", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var res extract.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if len(res.Items) != 1 {
		t.Fatalf("len(items) = %d, want 1: %+v", len(res.Items), res.Items)
	}
	for _, f := range res.Items[0].Fields {
		if f.Name == "ESTAÇÃO" {
			t.Error("station field still present in filtered output")
		}
	}
}

func TestHandleSubmit(t *testing.T) {
	s, dir := newTestServer(t)

	body, _ := json.Marshal(map[string]any{
		"submitter": "tec.campo",
		"answers": []map[string]string{
			{"tab": "INSPEÇÃO VISUAL - LINE A", "equipment": "PT-100", "status": "OK", "justification": ""},
			{"tab": "INSPEÇÃO VISUAL - LINE A", "equipment": "TT-200", "status": "NOK", "justification": "recalibrar"},
		},
	})

	rec := doRequest(t, s, http.MethodPost, "/api/submissions", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Artifact string `json:"artifact"`
		Count    int    `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 2 {
		t.Errorf("count = %d, want 2", resp.Count)
	}

	artifact := filepath.Join(dir, "resultados", resp.Artifact)
	if _, err := os.Stat(artifact); err != nil {
		t.Fatalf("artifact not written: %v", err)
	}

	f, err := excelize.OpenFile(artifact)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Errorf("artifact rows = %d, want 3 (header + 2 answers)", len(rows))
	}
}

func TestHandleSubmit_NoAnswers(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/submissions", []byte(`{"answers":[]}`))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleListSubmissions_Disabled(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/submissions", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Body.String(); got != "[]\n" {
		t.Errorf("body = %q, want empty list", got)
	}
}

func TestHandleListForms_WorkbookUnavailable(t *testing.T) {
	s, _ := newTestServer(t)
	s.cfg.Workbook.Path = filepath.Join(t.TempDir(), "gone.xlsx")

	rec := doRequest(t, s, http.MethodGet, "/api/forms", nil)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500 for unreadable workbook", rec.Code)
	}
}
