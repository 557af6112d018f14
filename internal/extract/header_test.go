package extract

import (
	"testing"

	"github.com/inspectform/inspectform/internal/schema"
	"github.com/inspectform/inspectform/internal/workbook"
)

func row(vals ...string) []workbook.Cell {
	cells := make([]workbook.Cell, len(vals))
	for i, v := range vals {
		cells[i] = workbook.Classify(v)
	}
	return cells
}

func TestLocateHeader(t *testing.T) {
	keywords := schema.Default().HeaderKeywords()

	tests := []struct {
		name string
		rows [][]workbook.Cell
		want int
	}{
		{
			name: "header below noise",
			rows: [][]workbook.Cell{
				row("FT-5.82 ANEXO 1"),
				row("", "Comissionamento", ""),
				row(),
				row("EQUIPAMENTO", "QUANTIDADE", "TESTE", "OK"),
				row("Bomba", "2", "sim", "x"),
			},
			want: 3,
		},
		{
			name: "keyword but under three cells",
			rows: [][]workbook.Cell{
				row("EQUIPAMENTO", "OK"),
				row("SENSORES", "LOCAL", "TESTE"),
			},
			want: 1,
		},
		{
			name: "three cells but no keyword",
			rows: [][]workbook.Cell{
				row("a", "b", "c"),
				row("d", "e", "f"),
			},
			want: 0,
		},
		{
			name: "earliest match wins",
			rows: [][]workbook.Cell{
				row("SENSORES", "LOCAL", "TESTE"),
				row("SENSORES", "LOCAL", "TESTE"),
			},
			want: 0,
		},
		{
			name: "accent variants fold",
			rows: [][]workbook.Cell{
				row("título"),
				row("ESTACAO", "TAG", "OK"),
			},
			want: 1,
		},
		{name: "empty sheet", rows: nil, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LocateHeader(tt.rows, keywords); got != tt.want {
				t.Errorf("LocateHeader() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLocateHeader_Property(t *testing.T) {
	// Whatever index is returned: either the row has >= 3 non-empty cells,
	// or the index is the 0 fallback.
	keywords := schema.Default().HeaderKeywords()
	rows := [][]workbook.Cell{
		row("x"),
		row("TAG", "PONTO"),
		row("TAG", "PONTO", "SISTEMA", ""),
	}
	idx := LocateHeader(rows, keywords)
	if idx != 0 && countNonEmpty(rows[idx]) < 3 {
		t.Errorf("LocateHeader() = %d with %d non-empty cells", idx, countNonEmpty(rows[idx]))
	}
}

func TestLocateHeaderPair(t *testing.T) {
	tests := []struct {
		name string
		rows [][]workbook.Cell
		want int
	}{
		{
			name: "pair co-occurrence required",
			rows: [][]workbook.Cell{
				row("TAG", "DESCRIÇÃO"),
				row("TAG", "ESTAÇÃO", "DESCRIÇÃO"),
			},
			want: 1,
		},
		{
			name: "accent-insensitive",
			rows: [][]workbook.Cell{
				row("tag", "estacao"),
			},
			want: 0,
		},
		{
			name: "no pair falls back to zero",
			rows: [][]workbook.Cell{
				row("a", "b"),
				row("c", "d"),
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LocateHeaderPair(tt.rows, "TAG", "ESTAÇÃO"); got != tt.want {
				t.Errorf("LocateHeaderPair() = %d, want %d", got, tt.want)
			}
		})
	}
}
