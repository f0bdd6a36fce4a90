package compliance

import (
	"strings"
	"time"
)

// quantity describes how one kind of reading is parsed and what an empty
// reading means.
type quantity struct {
	name  string
	units []string
	bound bool
	blank func() ValidationResult
}

// read parses raw. When ok is false, res is the result to return as is.
func (q quantity) read(raw string) (r reading, res ValidationResult, ok bool) {
	r, status := parseReading(raw, q.bound, q.units)
	switch status {
	case parseBlank:
		return r, q.blank(), false
	case parseInvalid:
		return r, failed("Invalid format for %s: %q is not a number", q.name, strings.TrimSpace(raw)), false
	case parseNegative:
		return r, failed("Invalid format for %s: %q is negative", q.name, strings.TrimSpace(raw)), false
	}
	return r, ValidationResult{}, true
}

// ValidateR1R2 checks the combined line and protective conductor resistance.
// There is no regulatory ceiling at this granularity, so implausible values
// warn rather than fail.
func ValidateR1R2(raw string) ValidationResult {
	q := quantity{
		name:  "R1+R2",
		units: ohmUnits,
		blank: func() ValidationResult {
			return warned("R1+R2 not recorded: protective conductor continuity must be measured")
		},
	}
	r, res, ok := q.read(raw)
	if !ok {
		return res
	}
	if r.value < MinR1R2 || r.value > MaxR1R2 {
		return warned("R1+R2 of %sΩ is outside the expected %s–%sΩ range for a final circuit; verify the reading",
			formatValue(r.value), formatValue(MinR1R2), formatValue(MaxR1R2))
	}
	return passed("R1+R2 of %sΩ confirms protective conductor continuity", formatValue(r.value))
}

// ValidateRingContinuity checks one end-to-end ring conductor reading.
// conductor names the conductor in messages ("live", "neutral"). A blank
// reading passes because not every circuit is a ring.
func ValidateRingContinuity(raw, conductor string) ValidationResult {
	q := quantity{
		name:  "ring continuity (" + conductor + ")",
		units: ohmUnits,
		blank: func() ValidationResult {
			return passed("Ring continuity (%s) not applicable: not a ring final circuit", conductor).suggest("N/A")
		},
	}
	r, res, ok := q.read(raw)
	if !ok {
		return res
	}
	if r.value > MaxRingContinuity {
		return warned("Ring continuity (%s) of %sΩ exceeds %sΩ; check for a loose or high-resistance connection",
			conductor, formatValue(r.value), formatLimit(MaxRingContinuity))
	}
	return passed("Ring continuity (%s) of %sΩ is within %sΩ", conductor, formatValue(r.value), formatLimit(MaxRingContinuity))
}

// ValidateInsulation checks one insulation resistance reading in MΩ. pair
// names the conductors tested ("L-N", "L-E", "N-E"). A ">" marker with a
// bound of 999 or more is an instrument over-range reading and always
// passes; any other value is classified by its number.
func ValidateInsulation(raw, pair string) ValidationResult {
	q := quantity{
		name:  "insulation resistance " + pair,
		units: megohmUnits,
		bound: true,
		blank: func() ValidationResult {
			return warned("Insulation resistance %s not recorded", pair)
		},
	}
	r, res, ok := q.read(raw)
	if !ok {
		return res
	}
	value := formatValue(r.value)
	if r.bound {
		value = ">" + value
	}
	switch {
	case r.bound && r.value >= InsulationSaturation:
		return passed("Insulation resistance %s %sMΩ: excellent", pair, value)
	case r.value < MinInsulationResistance:
		return failed("Insulation resistance %s of %sMΩ is below the %sMΩ minimum (BS 7671 Table 64)",
			pair, value, formatLimit(MinInsulationResistance))
	case r.value < InsulationWarningThreshold:
		return warned("Insulation resistance %s of %sMΩ is low but above the %sMΩ minimum; investigate",
			pair, value, formatLimit(MinInsulationResistance))
	}
	return passed("Insulation resistance %s of %sMΩ is satisfactory", pair, value)
}

// ValidatePolarity checks the polarity marker. An incorrect polarity is a
// safety issue.
func ValidatePolarity(raw string) ValidationResult {
	switch ParseMarker(raw) {
	case MarkerCorrect:
		return passed("Polarity confirmed correct")
	case MarkerIncorrect:
		return failed("SAFETY ISSUE: incorrect polarity recorded; the circuit must not be energised until corrected")
	case MarkerUnclear:
		return warned("Polarity result %q is unclear; record %s for correct or %s for incorrect",
			strings.TrimSpace(raw), SymbolCorrect, SymbolIncorrect)
	}
	return warned("Polarity check required")
}

// ValidateFunctionalTesting checks the functional test marker.
func ValidateFunctionalTesting(raw string) ValidationResult {
	switch ParseMarker(raw) {
	case MarkerCorrect:
		return passed("Functional testing satisfactory")
	case MarkerIncorrect:
		return failed("Functional testing failed: switchgear, controls or interlocks did not operate correctly")
	case MarkerUnclear:
		return warned("Functional testing result %q is unclear; record %s for correct or %s for incorrect",
			strings.TrimSpace(raw), SymbolCorrect, SymbolIncorrect)
	}
	return warned("Functional testing check required")
}

// ValidateZs checks the measured earth fault loop impedance against the
// limit of the protective device. When the device is not in the catalog the
// reading only gets a plausibility check and the result says so.
func ValidateZs(raw, device string, catalog *Catalog) ValidationResult {
	q := quantity{
		name:  "Zs",
		units: ohmUnits,
		blank: func() ValidationResult {
			return warned("Zs not recorded: earth fault loop impedance must be measured")
		},
	}
	r, res, ok := q.read(raw)
	if !ok {
		return res
	}

	device = strings.TrimSpace(device)
	entry, found := catalog.Lookup(device)
	if !found {
		return genericZs(r.value, device)
	}

	limit := entry.ZsLimit
	value := formatValue(r.value)
	var out ValidationResult
	switch {
	case r.value > limit:
		out = failed("Zs of %sΩ exceeds the %sΩ maximum for %s (BS 7671 Table 41.3)", value, formatLimit(limit), entry.Identifier)
	case r.value > limit*ZsWarningRatio && r.value < limit:
		out = warned("Zs of %sΩ is approaching the %sΩ limit for %s", value, formatLimit(limit), entry.Identifier)
	default:
		out = passed("Zs of %sΩ is within the %sΩ limit for %s", value, formatLimit(limit), entry.Identifier)
	}
	return out.suggest(formatLimit(limit))
}

func genericZs(value float64, device string) ValidationResult {
	why := "no protective device recorded"
	if device != "" {
		why = "protective device " + quote(device) + " is not in the catalog"
	}
	v := formatValue(value)
	switch {
	case value < MinPlausibleZs:
		return warned("Zs of %sΩ is unusually low; check lead nulling and measurement accuracy (provisional: %s)", v, why)
	case value > GenericMaxZs:
		return warned("Zs of %sΩ is high for a typical final circuit (provisional: %s)", v, why)
	}
	return passed("Zs of %sΩ is plausible (provisional until the protective device is matched: %s)", v, why)
}

// ValidateRCD checks the 1×IΔn trip time against the maximum for the RCD's
// rated residual current. No rating means no RCD, which passes.
func ValidateRCD(rating, oneX string) ValidationResult {
	if isBlank(normalize(rating)) {
		return passed("RCD test not applicable: no RCD protects this circuit")
	}
	q := quantity{
		name:  "RCD trip time",
		units: millisecUnits,
		bound: true,
		blank: func() ValidationResult {
			return warned("RCD trip time at 1×IΔn not recorded for the %s RCD", strings.TrimSpace(rating))
		},
	}
	r, res, ok := q.read(oneX)
	if !ok {
		return res
	}

	class, known := RCDClass(rating)
	if !known {
		return warned("RCD rating %q is not recognised; cannot verify the trip time", strings.TrimSpace(rating))
	}
	maxTime, _ := RCDMaxDisconnection(class)
	maxMs := float64(maxTime / time.Millisecond)
	limit := formatValue(maxMs)

	switch {
	case r.bound && r.value >= maxMs:
		return failed("RCD did not disconnect within %sms at 1×IΔn (reading >%sms) for a %s RCD",
			limit, formatValue(r.value), class).suggest(limit)
	case r.bound:
		return warned("RCD trip time reading >%sms is indeterminate against the %sms maximum for a %s RCD; retest",
			formatValue(r.value), limit, class).suggest(limit)
	case r.value > maxMs:
		return failed("RCD trip time of %sms exceeds the %sms maximum for a %s RCD",
			formatValue(r.value), limit, class).suggest(limit)
	}
	return passed("RCD trip time of %sms is within the %sms maximum for a %s RCD",
		formatValue(r.value), limit, class).suggest(limit)
}

// ValidatePFC checks one prospective fault current reading in kA. path
// names the fault path ("L-N", "L-E"). The reading is recommended rather
// than mandatory, so every problem is a warning.
func ValidatePFC(raw, path string) ValidationResult {
	q := quantity{
		name:  "prospective fault current " + path,
		units: kiloampUnits,
		blank: func() ValidationResult {
			return warned("Prospective fault current %s not recorded; recommended to confirm device breaking capacity", path)
		},
	}
	r, res, ok := q.read(raw)
	if !ok {
		return res
	}
	v := formatValue(r.value)
	switch {
	case r.value < MinPFC:
		return warned("Prospective fault current %s of %skA is below %skA; check supply adequacy", path, v, formatValue(MinPFC))
	case r.value > MaxPFC:
		return warned("Prospective fault current %s of %skA exceeds %skA; confirm device breaking capacity", path, v, formatValue(MaxPFC))
	}
	return passed("Prospective fault current %s of %skA is within the expected range", path, v)
}

func quote(s string) string {
	return `"` + s + `"`
}
