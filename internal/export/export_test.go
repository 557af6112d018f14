package export

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resultados.xlsx")
	ts := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	records := []AnswerRecord{
		{Timestamp: ts, Submitter: "tec.campo", Tab: "INSPEÇÃO VISUAL - LINE A", Equipment: "PT-100", Status: "OK", Justification: ""},
		{Timestamp: ts, Submitter: "tec.campo", Tab: "INSPEÇÃO VISUAL - LINE A", Equipment: "TT-200", Status: "NOK", Justification: "recalibrar"},
		{Timestamp: ts, Tab: "ATERRAMENTO", Equipment: "Malha Sul", Status: "NOK", Justification: "reaperto"},
	}

	if err := Write(path, records); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reading artifact: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		t.Fatal(err)
	}

	// One header row plus one row per record.
	if len(rows) != 4 {
		t.Fatalf("len(rows) = %d, want 4", len(rows))
	}
	if !reflect.DeepEqual(rows[0], Headers) {
		t.Errorf("header row = %v, want %v", rows[0], Headers)
	}

	if rows[1][0] != "2025-03-14 09:26:53" {
		t.Errorf("timestamp cell = %q", rows[1][0])
	}
	if rows[2][4] != "NOK" || rows[2][5] != "recalibrar" {
		t.Errorf("row 2 = %v", rows[2])
	}
	// Optional submitter exports as an empty cell, keeping the fixed width
	// for every data row that has a trailing value.
	if rows[3][1] != "" || rows[3][3] != "Malha Sul" {
		t.Errorf("row 3 = %v", rows[3])
	}
}

func TestWrite_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vazio.xlsx")
	if err := Write(path, nil); err != nil {
		t.Fatalf("Write(nil) error = %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Errorf("len(rows) = %d, want header only", len(rows))
	}
}

func TestArtifactName(t *testing.T) {
	ts := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	if got := ArtifactName(ts); got != "resultados_20250314_092653.xlsx" {
		t.Errorf("ArtifactName() = %q", got)
	}
}
