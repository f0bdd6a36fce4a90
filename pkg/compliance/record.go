package compliance

// TestRecord holds one circuit's readings exactly as they were entered.
//
// All values are raw text. Units: resistances and Zs in Ω, insulation in
// MΩ, RCD rating in mA, RCD trip time in ms at 1×IΔn, PFC in kA.
// Insulation readings may carry a ">" marker for an instrument over-range
// result (">999"). Polarity and FunctionalTesting use the check/cross
// vocabulary understood by ParseMarker.
type TestRecord struct {
	R1R2                   string `json:"r1r2,omitempty" yaml:"r1r2,omitempty"`
	RingContinuityLive     string `json:"ringContinuityLive,omitempty" yaml:"ringContinuityLive,omitempty"`
	RingContinuityNeutral  string `json:"ringContinuityNeutral,omitempty" yaml:"ringContinuityNeutral,omitempty"`
	InsulationLiveNeutral  string `json:"insulationLiveNeutral,omitempty" yaml:"insulationLiveNeutral,omitempty"`
	InsulationLiveEarth    string `json:"insulationLiveEarth,omitempty" yaml:"insulationLiveEarth,omitempty"`
	InsulationNeutralEarth string `json:"insulationNeutralEarth,omitempty" yaml:"insulationNeutralEarth,omitempty"`
	Polarity               string `json:"polarity,omitempty" yaml:"polarity,omitempty"`
	Zs                     string `json:"zs,omitempty" yaml:"zs,omitempty"`
	ProtectiveDevice       string `json:"protectiveDevice,omitempty" yaml:"protectiveDevice,omitempty"`
	RCDRating              string `json:"rcdRating,omitempty" yaml:"rcdRating,omitempty"`
	RCDOneX                string `json:"rcdOneX,omitempty" yaml:"rcdOneX,omitempty"`
	PFCLiveNeutral         string `json:"pfcLiveNeutral,omitempty" yaml:"pfcLiveNeutral,omitempty"`
	PFCLiveEarth           string `json:"pfcLiveEarth,omitempty" yaml:"pfcLiveEarth,omitempty"`
	FunctionalTesting      string `json:"functionalTesting,omitempty" yaml:"functionalTesting,omitempty"`
}

// recordKeys maps the JSON key of every TestRecord field to its storage.
func (r *TestRecord) recordKeys() map[string]*string {
	return map[string]*string{
		"r1r2":                   &r.R1R2,
		"ringContinuityLive":     &r.RingContinuityLive,
		"ringContinuityNeutral":  &r.RingContinuityNeutral,
		"insulationLiveNeutral":  &r.InsulationLiveNeutral,
		"insulationLiveEarth":    &r.InsulationLiveEarth,
		"insulationNeutralEarth": &r.InsulationNeutralEarth,
		"polarity":               &r.Polarity,
		"zs":                     &r.Zs,
		"protectiveDevice":       &r.ProtectiveDevice,
		"rcdRating":              &r.RCDRating,
		"rcdOneX":                &r.RCDOneX,
		"pfcLiveNeutral":         &r.PFCLiveNeutral,
		"pfcLiveEarth":           &r.PFCLiveEarth,
		"functionalTesting":      &r.FunctionalTesting,
	}
}

// Set assigns a raw value by JSON key and reports whether the key exists.
func (r *TestRecord) Set(key, value string) bool {
	p, ok := r.recordKeys()[key]
	if !ok {
		return false
	}
	*p = value
	return true
}

// Value returns the raw value stored under a JSON key.
func (r TestRecord) Value(key string) (string, bool) {
	p, ok := r.recordKeys()[key]
	if !ok {
		return "", false
	}
	return *p, true
}

// RecordKeys lists the JSON keys of TestRecord in declaration order.
func RecordKeys() []string {
	return []string{
		"r1r2",
		"ringContinuityLive",
		"ringContinuityNeutral",
		"insulationLiveNeutral",
		"insulationLiveEarth",
		"insulationNeutralEarth",
		"polarity",
		"zs",
		"protectiveDevice",
		"rcdRating",
		"rcdOneX",
		"pfcLiveNeutral",
		"pfcLiveEarth",
		"functionalTesting",
	}
}
