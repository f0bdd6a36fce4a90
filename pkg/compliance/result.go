package compliance

import "fmt"

// ValidationResult is the outcome for one field of a test record.
//
// Level and IsValid always agree: Pass is valid, Warning and Fail are not.
// Values are built through passed, warned and failed so the pairing cannot
// drift.
type ValidationResult struct {
	IsValid        bool   `json:"isValid" yaml:"isValid"`
	Level          Level  `json:"level" yaml:"level"`
	Message        string `json:"message" yaml:"message"`
	SuggestedValue string `json:"suggestedValue,omitempty" yaml:"suggestedValue,omitempty"`
}

func passed(format string, args ...any) ValidationResult {
	return ValidationResult{IsValid: true, Level: Pass, Message: fmt.Sprintf(format, args...)}
}

func warned(format string, args ...any) ValidationResult {
	return ValidationResult{IsValid: false, Level: Warning, Message: fmt.Sprintf(format, args...)}
}

func failed(format string, args ...any) ValidationResult {
	return ValidationResult{IsValid: false, Level: Fail, Message: fmt.Sprintf(format, args...)}
}

func (r ValidationResult) suggest(value string) ValidationResult {
	r.SuggestedValue = value
	return r
}

// Field names one validated quantity of a test record.
type Field string

// Validated fields. The names match the JSON keys of TestRecord.
const (
	FieldR1R2                   Field = "r1r2"
	FieldRingContinuityLive     Field = "ringContinuityLive"
	FieldRingContinuityNeutral  Field = "ringContinuityNeutral"
	FieldInsulationLiveNeutral  Field = "insulationLiveNeutral"
	FieldInsulationLiveEarth    Field = "insulationLiveEarth"
	FieldInsulationNeutralEarth Field = "insulationNeutralEarth"
	FieldPolarity               Field = "polarity"
	FieldZs                     Field = "zs"
	FieldRCD                    Field = "rcdOneX"
	FieldPFCLiveNeutral         Field = "pfcLiveNeutral"
	FieldPFCLiveEarth           Field = "pfcLiveEarth"
	FieldFunctionalTesting      Field = "functionalTesting"
)

// fieldOrder is the evaluation order. CriticalIssues follow it.
var fieldOrder = [...]Field{
	FieldR1R2,
	FieldRingContinuityLive,
	FieldRingContinuityNeutral,
	FieldInsulationLiveNeutral,
	FieldInsulationLiveEarth,
	FieldInsulationNeutralEarth,
	FieldPolarity,
	FieldZs,
	FieldRCD,
	FieldPFCLiveNeutral,
	FieldPFCLiveEarth,
	FieldFunctionalTesting,
}

// Fields returns every validated field in evaluation order.
func Fields() []Field {
	out := make([]Field, len(fieldOrder))
	copy(out, fieldOrder[:])
	return out
}

// TestValidationResults holds exactly one result per validated field.
type TestValidationResults struct {
	R1R2                   ValidationResult `json:"r1r2" yaml:"r1r2"`
	RingContinuityLive     ValidationResult `json:"ringContinuityLive" yaml:"ringContinuityLive"`
	RingContinuityNeutral  ValidationResult `json:"ringContinuityNeutral" yaml:"ringContinuityNeutral"`
	InsulationLiveNeutral  ValidationResult `json:"insulationLiveNeutral" yaml:"insulationLiveNeutral"`
	InsulationLiveEarth    ValidationResult `json:"insulationLiveEarth" yaml:"insulationLiveEarth"`
	InsulationNeutralEarth ValidationResult `json:"insulationNeutralEarth" yaml:"insulationNeutralEarth"`
	Polarity               ValidationResult `json:"polarity" yaml:"polarity"`
	Zs                     ValidationResult `json:"zs" yaml:"zs"`
	RCD                    ValidationResult `json:"rcdOneX" yaml:"rcdOneX"`
	PFCLiveNeutral         ValidationResult `json:"pfcLiveNeutral" yaml:"pfcLiveNeutral"`
	PFCLiveEarth           ValidationResult `json:"pfcLiveEarth" yaml:"pfcLiveEarth"`
	FunctionalTesting      ValidationResult `json:"functionalTesting" yaml:"functionalTesting"`
}

// FieldResult pairs a field with its result.
type FieldResult struct {
	Field  Field
	Result ValidationResult
}

func (r *TestValidationResults) slot(f Field) *ValidationResult {
	switch f {
	case FieldR1R2:
		return &r.R1R2
	case FieldRingContinuityLive:
		return &r.RingContinuityLive
	case FieldRingContinuityNeutral:
		return &r.RingContinuityNeutral
	case FieldInsulationLiveNeutral:
		return &r.InsulationLiveNeutral
	case FieldInsulationLiveEarth:
		return &r.InsulationLiveEarth
	case FieldInsulationNeutralEarth:
		return &r.InsulationNeutralEarth
	case FieldPolarity:
		return &r.Polarity
	case FieldZs:
		return &r.Zs
	case FieldRCD:
		return &r.RCD
	case FieldPFCLiveNeutral:
		return &r.PFCLiveNeutral
	case FieldPFCLiveEarth:
		return &r.PFCLiveEarth
	case FieldFunctionalTesting:
		return &r.FunctionalTesting
	}
	return nil
}

// Get returns the result for a field. The boolean is false for an unknown
// field name.
func (r TestValidationResults) Get(f Field) (ValidationResult, bool) {
	p := r.slot(f)
	if p == nil {
		return ValidationResult{}, false
	}
	return *p, true
}

// Set replaces the result for a field and reports whether the field exists.
func (r *TestValidationResults) Set(f Field, v ValidationResult) bool {
	p := r.slot(f)
	if p == nil {
		return false
	}
	*p = v
	return true
}

// Entries returns all results in evaluation order.
func (r TestValidationResults) Entries() []FieldResult {
	out := make([]FieldResult, 0, len(fieldOrder))
	for _, f := range fieldOrder {
		out = append(out, FieldResult{Field: f, Result: *r.slot(f)})
	}
	return out
}

// ComplianceVerdict is the overall outcome of one test record.
type ComplianceVerdict struct {
	Status         Level    `json:"status" yaml:"status"`
	CriticalIssues []string `json:"criticalIssues" yaml:"criticalIssues"`
}
