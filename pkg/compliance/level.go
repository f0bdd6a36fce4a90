// Package compliance classifies the readings of an electrical installation
// test record against the BS 7671 limit tables and folds the per-field
// results into a single verdict.
//
// Every function in this package is pure: it performs no I/O, keeps no state
// between calls and never panics on malformed input. Bad input is reported as
// a ValidationResult, never as an error.
package compliance

import "fmt"

// Level is the outcome of checking a single field.
type Level uint8

const (
	// Pass means the reading complies.
	Pass Level = iota
	// Warning means the reading is incomplete or needs investigation but is
	// not disqualifying on its own.
	Warning
	// Fail means the reading is non-compliant or could not be interpreted.
	Fail
)

// String returns the lowercase name of the level.
func (l Level) String() string {
	switch l {
	case Pass:
		return "pass"
	case Warning:
		return "warning"
	case Fail:
		return "fail"
	}
	return fmt.Sprintf("Level(%d)", uint8(l))
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	switch l {
	case Pass, Warning, Fail:
		return []byte(l.String()), nil
	}
	return nil, fmt.Errorf("invalid level %d", uint8(l))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLevel parses "pass", "warning" or "fail".
func ParseLevel(s string) (Level, error) {
	switch s {
	case "pass":
		return Pass, nil
	case "warning":
		return Warning, nil
	case "fail":
		return Fail, nil
	}
	return Pass, fmt.Errorf("unknown level %q (expected pass, warning or fail)", s)
}

// Worse returns the more severe of two levels.
func Worse(a, b Level) Level {
	if b > a {
		return b
	}
	return a
}
