package calculator

import "math"

// SafetyModelMaxFrequency is the highest frequency the threshold comparison
// is asserted valid for. No frequency derating is applied.
const SafetyModelMaxFrequency = 2000.0

// SafetyDisclaimer accompanies every safety verdict
const SafetyDisclaimer = "Safety is a plain comparison of total current against a fixed threshold, " +
	"with no frequency-dependent derating. It is only valid for excitation up to 2 kHz."

// IsSafe reports whether the total current is strictly below the threshold.
// A NaN threshold is treated as no threshold.
func IsSafe(total, threshold float64) bool {
	if math.IsNaN(threshold) {
		threshold = math.Inf(1)
	}
	return total < threshold
}
