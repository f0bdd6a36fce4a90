package compliance

// Marker is the interpretation of a check/cross field such as polarity.
type Marker uint8

const (
	// MarkerBlank means nothing (or "N/A") was entered.
	MarkerBlank Marker = iota
	// MarkerCorrect is a check mark, "correct" or "pass".
	MarkerCorrect
	// MarkerIncorrect is a cross mark, "incorrect" or "fail".
	MarkerIncorrect
	// MarkerUnclear is any other text.
	MarkerUnclear
)

// Canonical symbols written on certificates.
const (
	SymbolCorrect   = "✓"
	SymbolIncorrect = "✗"
)

// markerTokens is the accepted vocabulary, case-folded.
var markerTokens = map[string]Marker{
	"✓":         MarkerCorrect,
	"✔":         MarkerCorrect,
	"☑":         MarkerCorrect,
	"correct":   MarkerCorrect,
	"pass":      MarkerCorrect,
	"✗":         MarkerIncorrect,
	"✘":         MarkerIncorrect,
	"☒":         MarkerIncorrect,
	"incorrect": MarkerIncorrect,
	"fail":      MarkerIncorrect,
}

// ParseMarker classifies a raw check/cross value. Matching is exact after
// normalisation and case folding; "not correct" is unclear, not correct.
func ParseMarker(raw string) Marker {
	s := normalize(raw)
	if isBlank(s) {
		return MarkerBlank
	}
	if m, ok := markerTokens[fold(s)]; ok {
		return m
	}
	return MarkerUnclear
}

func (m Marker) String() string {
	switch m {
	case MarkerBlank:
		return "blank"
	case MarkerCorrect:
		return "correct"
	case MarkerIncorrect:
		return "incorrect"
	case MarkerUnclear:
		return "unclear"
	}
	return "unknown"
}
