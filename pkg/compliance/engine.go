package compliance

// ValidateTestResult validates every field of record. devices is the
// protective-device catalog as supplied by the caller; see NewCatalog for
// duplicate handling.
func ValidateTestResult(record TestRecord, devices []DeviceEntry) TestValidationResults {
	return Validate(record, NewCatalog(devices))
}

// Validate validates every field of record against catalog. A nil catalog
// sends every Zs reading down the provisional path.
func Validate(record TestRecord, catalog *Catalog) TestValidationResults {
	return TestValidationResults{
		R1R2:                   ValidateR1R2(record.R1R2),
		RingContinuityLive:     ValidateRingContinuity(record.RingContinuityLive, "live"),
		RingContinuityNeutral:  ValidateRingContinuity(record.RingContinuityNeutral, "neutral"),
		InsulationLiveNeutral:  ValidateInsulation(record.InsulationLiveNeutral, "L-N"),
		InsulationLiveEarth:    ValidateInsulation(record.InsulationLiveEarth, "L-E"),
		InsulationNeutralEarth: ValidateInsulation(record.InsulationNeutralEarth, "N-E"),
		Polarity:               ValidatePolarity(record.Polarity),
		Zs:                     ValidateZs(record.Zs, record.ProtectiveDevice, catalog),
		RCD:                    ValidateRCD(record.RCDRating, record.RCDOneX),
		PFCLiveNeutral:         ValidatePFC(record.PFCLiveNeutral, "L-N"),
		PFCLiveEarth:           ValidatePFC(record.PFCLiveEarth, "L-E"),
		FunctionalTesting:      ValidateFunctionalTesting(record.FunctionalTesting),
	}
}

// OverallCompliance folds field results into a verdict. The status is the
// worst field level; CriticalIssues lists the messages of failing fields in
// evaluation order and is never nil.
func OverallCompliance(results TestValidationResults) ComplianceVerdict {
	v := ComplianceVerdict{Status: Pass, CriticalIssues: []string{}}
	for _, e := range results.Entries() {
		v.Status = Worse(v.Status, e.Result.Level)
		if e.Result.Level == Fail {
			v.CriticalIssues = append(v.CriticalIssues, e.Result.Message)
		}
	}
	return v
}

// Check validates record and returns both the field results and the verdict.
func Check(record TestRecord, catalog *Catalog) (TestValidationResults, ComplianceVerdict) {
	results := Validate(record, catalog)
	return results, OverallCompliance(results)
}
