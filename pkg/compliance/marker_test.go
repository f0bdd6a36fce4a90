package compliance

import "testing"

func TestParseMarker(t *testing.T) {
	t.Parallel()
	tests := []struct {
		raw  string
		want Marker
	}{
		{"✓", MarkerCorrect},
		{"✔", MarkerCorrect},
		{" ✓ ", MarkerCorrect},
		{"correct", MarkerCorrect},
		{"CORRECT", MarkerCorrect},
		{"Pass", MarkerCorrect},
		{"✗", MarkerIncorrect},
		{"✘", MarkerIncorrect},
		{"Incorrect", MarkerIncorrect},
		{"FAIL", MarkerIncorrect},
		{"", MarkerBlank},
		{"  ", MarkerBlank},
		{"N/A", MarkerBlank},
		{"ok", MarkerUnclear},
		{"not correct", MarkerUnclear},
		{"x", MarkerUnclear},
		{"✓✓", MarkerUnclear},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			if got := ParseMarker(tt.raw); got != tt.want {
				t.Errorf("ParseMarker(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestMarkerString(t *testing.T) {
	t.Parallel()
	tests := map[Marker]string{
		MarkerBlank:     "blank",
		MarkerCorrect:   "correct",
		MarkerIncorrect: "incorrect",
		MarkerUnclear:   "unclear",
		Marker(42):      "unknown",
	}
	for m, want := range tests {
		if got := m.String(); got != want {
			t.Errorf("Marker(%d).String() = %q, want %q", uint8(m), got, want)
		}
	}
}
