package compliance

import (
	"testing"
	"time"
)

func TestZsTable_Coverage(t *testing.T) {
	t.Parallel()
	for _, curve := range DeviceCurves {
		for _, rating := range DeviceRatings {
			id := DeviceIdentifier(curve, rating)
			limit, ok := MaxZs(id)
			if !ok {
				t.Errorf("MaxZs(%q) not found", id)
				continue
			}
			if limit <= 0 {
				t.Errorf("MaxZs(%q) = %v, want > 0", id, limit)
			}
		}
	}
	if got, want := len(ZsTable()), len(DeviceCurves)*len(DeviceRatings); got != want {
		t.Errorf("len(ZsTable()) = %d, want %d", got, want)
	}
}

func TestZsTable_DecreasesWithRating(t *testing.T) {
	t.Parallel()
	for _, curve := range DeviceCurves {
		prev := 0.0
		for i, rating := range DeviceRatings {
			limit, _ := MaxZs(DeviceIdentifier(curve, rating))
			if i > 0 && limit >= prev {
				t.Errorf("%s%d limit %v not below previous %v", curve, rating, limit, prev)
			}
			prev = limit
		}
	}
}

func TestZsTable_KnownValues(t *testing.T) {
	t.Parallel()
	tests := map[string]float64{
		"B6":   7.28,
		"B32":  1.37,
		"C16":  1.37,
		"C32":  0.68,
		"D6":   1.82,
		"D125": 0.09,
	}
	for id, want := range tests {
		got, ok := MaxZs(id)
		if !ok || got != want {
			t.Errorf("MaxZs(%q) = %v, %v; want %v, true", id, got, ok, want)
		}
	}
}

func TestMaxZs_Unknown(t *testing.T) {
	t.Parallel()
	for _, id := range []string{"", "B33", "b32", "E32", " B32"} {
		if _, ok := MaxZs(id); ok {
			t.Errorf("MaxZs(%q) found, want not found", id)
		}
	}
}

func TestZsTable_ReturnsCopy(t *testing.T) {
	t.Parallel()
	table := ZsTable()
	table["B32"] = 99
	if got, _ := MaxZs("B32"); got != 1.37 {
		t.Errorf("MaxZs(B32) = %v after mutating copy, want 1.37", got)
	}
}

func TestRCDMaxDisconnection(t *testing.T) {
	t.Parallel()
	for _, class := range RCDClasses {
		d, ok := RCDMaxDisconnection(class)
		if !ok {
			t.Errorf("RCDMaxDisconnection(%q) not found", class)
			continue
		}
		if d != 300*time.Millisecond {
			t.Errorf("RCDMaxDisconnection(%q) = %v, want 300ms", class, d)
		}
	}
	if _, ok := RCDMaxDisconnection("10mA"); ok {
		t.Error("RCDMaxDisconnection(10mA) found, want not found")
	}
}

func TestRCDClass(t *testing.T) {
	t.Parallel()
	tests := []struct {
		rating string
		class  string
		ok     bool
	}{
		{"30", "30mA", true},
		{"30mA", "30mA", true},
		{"30 mA", "30mA", true},
		{"30MA", "30mA", true},
		{" 100 ", "100mA", true},
		{"300.0", "300mA", true},
		{"500", "500mA", true},
		{"45", "45mA", false},
		{"0.03", "0.03mA", false},
		{"0", "", false},
		{"-30", "", false},
		{"abc", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.rating, func(t *testing.T) {
			t.Parallel()
			class, ok := RCDClass(tt.rating)
			if class != tt.class || ok != tt.ok {
				t.Errorf("RCDClass(%q) = %q, %v; want %q, %v", tt.rating, class, ok, tt.class, tt.ok)
			}
		})
	}
}
