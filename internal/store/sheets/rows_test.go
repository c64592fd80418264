package sheets

import (
	"testing"

	"moneytracker/internal/core"
)

func TestParseRows(t *testing.T) {
	values := [][]any{
		{"a1", "mobile", "phone bill", "2024-01-02T03:04", 20000.0},
		{"a2", "", "refund", "2024-01-03T10:00", "-200"},
		{"", "orphan", "no id", "t", 1.0},
		{"a3", "food", "lunch", "t"},
		{"a4", "x", "y", "z", "abc"},
		{},
	}

	got := parseRows(values)
	if len(got) != 4 {
		t.Fatalf("parseRows() len = %d, want 4: %+v", len(got), got)
	}
	if got[0].ID != "a1" || got[0].Name != "mobile" || got[0].Price == nil || *got[0].Price != 20000 {
		t.Errorf("row 0 = %+v", got[0])
	}
	if got[1].Price == nil || *got[1].Price != -200 {
		t.Errorf("row 1 price = %v, want -200", got[1].Price)
	}
	if got[2].ID != "a3" || got[2].Price != nil {
		t.Errorf("row 2 = %+v, want a3 with nil price", got[2])
	}
	if got[3].Price != nil {
		t.Errorf("row 3 price = %v, want nil", got[3].Price)
	}
}

func TestParseRowsEmpty(t *testing.T) {
	got := parseRows(nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("parseRows(nil) = %#v, want empty non-nil slice", got)
	}
}

func TestToRow(t *testing.T) {
	row := toRow(core.Transaction{ID: "id", Name: "n", Description: "d", DateTime: "t", Price: core.Float(1.5)})
	if len(row) != len(Header) {
		t.Fatalf("toRow() len = %d, want %d", len(row), len(Header))
	}
	if row[4] != 1.5 {
		t.Errorf("price cell = %v, want 1.5", row[4])
	}

	row = toRow(core.Transaction{ID: "id"})
	if row[4] != "" {
		t.Errorf("nil price cell = %#v, want empty string", row[4])
	}
}

func TestRowRoundTrip(t *testing.T) {
	in := core.Transaction{ID: "x", Name: "salary", Description: "march", DateTime: "2024-03-01T09:00", Price: core.Float(-0.5)}
	out := parseRows([][]any{toRow(in)})
	if len(out) != 1 {
		t.Fatalf("len = %d, want 1", len(out))
	}
	if out[0].ID != in.ID || out[0].Name != in.Name || out[0].Description != in.Description || out[0].DateTime != in.DateTime {
		t.Errorf("round trip = %+v, want %+v", out[0], in)
	}
	if out[0].Price == nil || *out[0].Price != -0.5 {
		t.Errorf("round trip price = %v", out[0].Price)
	}
}
