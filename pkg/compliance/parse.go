package compliance

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// numberPattern accepts plain decimal notation with an optional exponent.
// strconv.ParseFloat alone would also accept "NaN", "Inf" and hex floats.
var numberPattern = regexp.MustCompile(`^[+-]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?$`)

// Unit suffixes, already case-folded. Longer suffixes come first so that
// "mω" is not mistaken for "ω".
var (
	ohmUnits       = []string{"ohms", "ohm", "ω"}
	megohmUnits    = []string{"megohms", "megohm", "mohms", "mohm", "mω"}
	millisecUnits  = []string{"msec", "ms"}
	kiloampUnits   = []string{"ka"}
	notApplicables = map[string]bool{"n/a": true, "na": true, "n.a.": true, "-": true, "–": true, "—": true}
)

// normalize applies NFKC so that full-width digits and symbols typed on
// mobile keyboards read as ASCII, then trims surrounding space.
func normalize(raw string) string {
	return strings.TrimSpace(norm.NFKC.String(raw))
}

// fold returns the case-folded form of s. A Caser is stateful, so a fresh
// one is created per call.
func fold(s string) string {
	return cases.Fold().String(s)
}

// isBlank reports whether a normalised value carries no reading.
func isBlank(s string) bool {
	return s == "" || notApplicables[fold(s)]
}

type parseStatus int

const (
	parseOK parseStatus = iota
	parseBlank
	parseInvalid
	parseNegative
)

// reading is a parsed measurement. bound is set when the value carried a
// ">" or "≥" marker, meaning the true value is at least value.
type reading struct {
	value float64
	bound bool
}

// parseReading turns raw form text into a reading. Markers are accepted only
// when allowBound is set; a unit suffix is accepted only from units.
func parseReading(raw string, allowBound bool, units []string) (reading, parseStatus) {
	s := normalize(raw)
	if isBlank(s) {
		return reading{}, parseBlank
	}

	var r reading
	if allowBound {
		for _, marker := range []string{">", "≥"} {
			if strings.HasPrefix(s, marker) {
				r.bound = true
				s = strings.TrimSpace(strings.TrimPrefix(s, marker))
				break
			}
		}
	}

	s = fold(s)
	for _, u := range units {
		if strings.HasSuffix(s, u) {
			s = strings.TrimSpace(strings.TrimSuffix(s, u))
			break
		}
	}

	if !numberPattern.MatchString(s) {
		return reading{}, parseInvalid
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return reading{}, parseInvalid
	}
	if v < 0 {
		return reading{}, parseNegative
	}
	r.value = v
	return r, parseOK
}

// formatValue renders a parsed value without trailing zeros.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatLimit renders a table limit with two decimals, as printed in
// BS 7671.
func formatLimit(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
