package compliance

import (
	"math"
	"testing"
)

func TestParseReading(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		raw    string
		bound  bool
		units  []string
		status parseStatus
		want   reading
	}{
		{"plain", "0.45", false, ohmUnits, parseOK, reading{value: 0.45}},
		{"padded", "  1.5 ", false, ohmUnits, parseOK, reading{value: 1.5}},
		{"integer", "2", false, ohmUnits, parseOK, reading{value: 2}},
		{"leading dot", ".5", false, ohmUnits, parseOK, reading{value: 0.5}},
		{"exponent", "1e3", false, ohmUnits, parseOK, reading{value: 1000}},
		{"full width", "１．５", false, ohmUnits, parseOK, reading{value: 1.5}},
		{"ohm symbol", "0.8Ω", false, ohmUnits, parseOK, reading{value: 0.8}},
		{"ohm sign", "0.8 Ω", false, ohmUnits, parseOK, reading{value: 0.8}},
		{"ohms word", "0.8 Ohms", false, ohmUnits, parseOK, reading{value: 0.8}},
		{"megohm", "200 MΩ", false, megohmUnits, parseOK, reading{value: 200}},
		{"megohm word", "200Mohm", false, megohmUnits, parseOK, reading{value: 200}},
		{"millisecond", "25ms", false, millisecUnits, parseOK, reading{value: 25}},
		{"kiloamp", "1.6 kA", false, kiloampUnits, parseOK, reading{value: 1.6}},
		{"bound", ">999", true, megohmUnits, parseOK, reading{value: 999, bound: true}},
		{"bound spaced", "> 200 MΩ", true, megohmUnits, parseOK, reading{value: 200, bound: true}},
		{"bound full width", "＞999", true, megohmUnits, parseOK, reading{value: 999, bound: true}},
		{"bound at least", "≥999", true, megohmUnits, parseOK, reading{value: 999, bound: true}},
		{"empty", "", false, ohmUnits, parseBlank, reading{}},
		{"spaces", "   ", false, ohmUnits, parseBlank, reading{}},
		{"not applicable", "N/A", false, ohmUnits, parseBlank, reading{}},
		{"not applicable short", "na", false, ohmUnits, parseBlank, reading{}},
		{"dash", "-", false, ohmUnits, parseBlank, reading{}},
		{"em dash", "—", false, ohmUnits, parseBlank, reading{}},
		{"negative", "-0.5", false, ohmUnits, parseNegative, reading{}},
		{"text", "abc", false, ohmUnits, parseInvalid, reading{}},
		{"comma decimal", "1,5", false, ohmUnits, parseInvalid, reading{}},
		{"nan", "NaN", false, ohmUnits, parseInvalid, reading{}},
		{"infinity", "Inf", false, ohmUnits, parseInvalid, reading{}},
		{"hex", "0x10", false, ohmUnits, parseInvalid, reading{}},
		{"overflow", "1e400", false, ohmUnits, parseInvalid, reading{}},
		{"bound not allowed", ">999", false, ohmUnits, parseInvalid, reading{}},
		{"wrong unit", "0.8 MΩ", false, ohmUnits, parseInvalid, reading{}},
		{"unknown unit", "0.8 V", false, ohmUnits, parseInvalid, reading{}},
		{"unit only", "Ω", false, ohmUnits, parseInvalid, reading{}},
		{"marker only", ">", true, megohmUnits, parseInvalid, reading{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, status := parseReading(tt.raw, tt.bound, tt.units)
			if status != tt.status {
				t.Fatalf("parseReading(%q) status = %v, want %v", tt.raw, status, tt.status)
			}
			if got != tt.want {
				t.Errorf("parseReading(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestFormatValue(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   float64
		want string
	}{
		{1.5, "1.5"},
		{2, "2"},
		{0.01, "0.01"},
		{999, "999"},
	}
	for _, tt := range tests {
		if got := formatValue(tt.in); got != tt.want {
			t.Errorf("formatValue(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := formatLimit(1.37); got != "1.37" {
		t.Errorf("formatLimit(1.37) = %q, want %q", got, "1.37")
	}
	if got := formatLimit(1); got != "1.00" {
		t.Errorf("formatLimit(1) = %q, want %q", got, "1.00")
	}
}

func FuzzParseReading(f *testing.F) {
	for _, seed := range []string{"", "0.45", ">999", "１．５", "N/A", "-1", "1e400", "200 MΩ", "≥", "abc"} {
		f.Add(seed, true)
		f.Add(seed, false)
	}
	f.Fuzz(func(t *testing.T, raw string, bound bool) {
		r, status := parseReading(raw, bound, megohmUnits)
		switch status {
		case parseOK:
			if r.value < 0 || math.IsNaN(r.value) || math.IsInf(r.value, 0) {
				t.Errorf("parseReading(%q) accepted %v", raw, r.value)
			}
			if r.bound && !bound {
				t.Errorf("parseReading(%q) set bound without allowBound", raw)
			}
		default:
			if r != (reading{}) {
				t.Errorf("parseReading(%q) status %v returned %+v", raw, status, r)
			}
		}
	})
}
