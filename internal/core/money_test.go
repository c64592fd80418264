package core

import (
	"strconv"
	"testing"
)

func TestParseLeadingFloat(t *testing.T) {
	cases := []struct {
		in  string
		out float64
		ok  bool
	}{
		{"20000", 20000, true},
		{"-200", -200, true},
		{"+5", 5, true},
		{"1.5", 1.5, true},
		{".5", 0.5, true},
		{"3.", 3, true},
		{"1e3", 1000, true},
		{"12abc", 12, true},
		{"  42", 42, true},
		{"1e", 1, true},
		{"-0.25kg", -0.25, true},
		{"abc", 0, false},
		{"", 0, false},
		{"-", 0, false},
		{"Infinity", 0, false},
		{"-Infinity", 0, false},
		{"1e999", 0, false},
		{"$20", 0, false},
	}
	for _, tc := range cases {
		got := ParseLeadingFloat(tc.in)
		if tc.ok {
			if got == nil || *got != tc.out {
				t.Fatalf("%q expected %v, got %v", tc.in, tc.out, got)
			}
		} else if got != nil {
			t.Fatalf("%q expected nil, got %v", tc.in, *got)
		}
	}
}

func TestParseEntry(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantPrice *float64
		wantName  string
	}{
		{"price and label", "20000 mobile", Float(20000), "mobile"},
		{"no space", "-200", Float(-200), ""},
		{"label keeps later spaces", "-45.5 new tv for the den", Float(-45.5), "new tv for the den"},
		{"non-numeric token", "abc food", nil, "food"},
		{"leading space", " 300 rent", nil, "300 rent"},
		{"double space", "10  coffee", Float(10), " coffee"},
		{"empty", "", nil, ""},
		{"trailing space", "15 ", Float(15), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, name := ParseEntry(tt.raw)
			if name != tt.wantName {
				t.Errorf("ParseEntry(%q) name = %q, want %q", tt.raw, name, tt.wantName)
			}
			switch {
			case tt.wantPrice == nil && price != nil:
				t.Errorf("ParseEntry(%q) price = %v, want nil", tt.raw, *price)
			case tt.wantPrice != nil && price == nil:
				t.Errorf("ParseEntry(%q) price = nil, want %v", tt.raw, *tt.wantPrice)
			case tt.wantPrice != nil && *price != *tt.wantPrice:
				t.Errorf("ParseEntry(%q) price = %v, want %v", tt.raw, *price, *tt.wantPrice)
			}
		})
	}
}

func TestParseEntryNumericTokens(t *testing.T) {
	for _, v := range []float64{0, 1, -1, 0.01, 1234.5, -99999.75, 20000} {
		raw := strconv.FormatFloat(v, 'f', -1, 64) + " label here"
		price, name := ParseEntry(raw)
		if price == nil || *price != v {
			t.Fatalf("%q: price = %v, want %v", raw, price, v)
		}
		if name != "label here" {
			t.Fatalf("%q: name = %q", raw, name)
		}
	}
}
