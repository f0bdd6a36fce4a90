package compliance

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Scalar limits for installations up to 500 V.
const (
	// MinInsulationResistance is the regulatory minimum in MΩ (Table 64).
	MinInsulationResistance = 1.0
	// InsulationWarningThreshold is the level in MΩ below which a passing
	// reading is still flagged for investigation.
	InsulationWarningThreshold = 2.0
	// InsulationSaturation is the over-range reading in MΩ reported by
	// common test instruments.
	InsulationSaturation = 999.0

	// MaxRingContinuity is the end-to-end ring conductor ceiling in Ω.
	MaxRingContinuity = 1.67

	// MinR1R2 and MaxR1R2 bound a plausible R1+R2 for a final circuit, in Ω.
	MinR1R2 = 0.01
	MaxR1R2 = 5.0

	// MinPFC and MaxPFC bound a plausible prospective fault current, in kA.
	MinPFC = 0.1
	MaxPFC = 25.0

	// ZsWarningRatio is the fraction of the Zs limit above which a reading
	// is reported as approaching the limit.
	ZsWarningRatio = 0.9
	// MinPlausibleZs and GenericMaxZs drive the check used when the
	// protective device is unknown, in Ω.
	MinPlausibleZs = 0.1
	GenericMaxZs   = 1.67
)

// DeviceCurves lists the MCB/RCBO trip curves in the Zs table.
var DeviceCurves = []string{"B", "C", "D"}

// DeviceRatings lists the rated currents in the Zs table, in amperes.
var DeviceRatings = []int{6, 10, 16, 20, 25, 32, 40, 50, 63, 80, 100, 125}

// zsTable is BS 7671 Table 41.3: maximum earth fault loop impedance in Ω for
// 0.4 s disconnection with MCBs to BS EN 60898 and RCBOs to BS EN 61009.
var zsTable = map[string]float64{
	"B6": 7.28, "B10": 4.37, "B16": 2.73, "B20": 2.19, "B25": 1.75, "B32": 1.37,
	"B40": 1.09, "B50": 0.87, "B63": 0.69, "B80": 0.55, "B100": 0.44, "B125": 0.35,

	"C6": 3.64, "C10": 2.19, "C16": 1.37, "C20": 1.09, "C25": 0.87, "C32": 0.68,
	"C40": 0.55, "C50": 0.44, "C63": 0.35, "C80": 0.27, "C100": 0.22, "C125": 0.17,

	"D6": 1.82, "D10": 1.09, "D16": 0.68, "D20": 0.55, "D25": 0.44, "D32": 0.34,
	"D40": 0.27, "D50": 0.22, "D63": 0.17, "D80": 0.14, "D100": 0.11, "D125": 0.09,
}

// rcdTable is the maximum disconnection time at 1×IΔn per rated residual
// current. Only the single-multiplier test is evaluated.
var rcdTable = map[string]time.Duration{
	"30mA":  300 * time.Millisecond,
	"100mA": 300 * time.Millisecond,
	"300mA": 300 * time.Millisecond,
	"500mA": 300 * time.Millisecond,
}

// RCDClasses lists the rated residual current classes in table order.
var RCDClasses = []string{"30mA", "100mA", "300mA", "500mA"}

// DeviceIdentifier joins a trip curve and a rating, e.g. ("B", 32) -> "B32".
func DeviceIdentifier(curve string, rating int) string {
	return curve + strconv.Itoa(rating)
}

// MaxZs returns the Table 41.3 limit for a device identifier such as "B32".
func MaxZs(identifier string) (float64, bool) {
	limit, ok := zsTable[identifier]
	return limit, ok
}

// ZsTable returns a copy of the Zs limit table.
func ZsTable() map[string]float64 {
	out := make(map[string]float64, len(zsTable))
	for k, v := range zsTable {
		out[k] = v
	}
	return out
}

// RCDMaxDisconnection returns the 1×IΔn disconnection limit for a class
// such as "30mA".
func RCDMaxDisconnection(class string) (time.Duration, bool) {
	d, ok := rcdTable[class]
	return d, ok
}

// RCDClass resolves a rating as entered ("30", "30mA", "30 mA") to its
// class key. The boolean is false when the rating cannot be read or has no
// entry in the table; the returned class is still formatted when the number
// could be read so callers can mention it.
func RCDClass(rating string) (string, bool) {
	s := fold(normalize(rating))
	s = strings.TrimSpace(strings.TrimSuffix(s, "ma"))
	if !numberPattern.MatchString(s) {
		return "", false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return "", false
	}
	var class string
	if v < 1e9 && v == float64(int64(v)) {
		class = fmt.Sprintf("%dmA", int64(v))
	} else {
		class = strconv.FormatFloat(v, 'f', -1, 64) + "mA"
	}
	_, ok := rcdTable[class]
	return class, ok
}
