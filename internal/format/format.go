// Package format renders engine values for people. Non-finite values render
// as "--" so error states stay visible without breaking layouts.
package format

import (
	"fmt"
	"math"
)

// Missing is shown in place of NaN or infinite values
const Missing = "--"

var prefixes = []struct {
	scale  float64
	symbol string
}{
	{1e9, "G"},
	{1e6, "M"},
	{1e3, "k"},
	{1, ""},
	{1e-3, "m"},
	{1e-6, "µ"},
	{1e-9, "n"},
	{1e-12, "p"},
}

// SI formats value with the largest SI prefix that keeps the mantissa at or
// above 1, e.g. SI(7.0711e-6, "A") is "7.071 µA".
func SI(value float64, unit string) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Missing
	}
	if value == 0 {
		return fmt.Sprintf("0 %s", unit)
	}

	abs := math.Abs(value)
	if abs >= 1e12 || abs < 1e-12 {
		return fmt.Sprintf("%.3e %s", value, unit)
	}
	for _, p := range prefixes {
		if abs >= p.scale {
			return fmt.Sprintf("%.3f %s%s", value/p.scale, p.symbol, unit)
		}
	}
	return fmt.Sprintf("%.3e %s", value, unit)
}

// Percent formats a percentage with one decimal
func Percent(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Missing
	}
	return fmt.Sprintf("%.1f%%", value)
}

// Degrees formats an angle in degrees
func Degrees(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Missing
	}
	return fmt.Sprintf("%.2f°", value)
}

// Frequency formats a frequency in Hz
func Frequency(value float64) string {
	return SI(value, "Hz")
}
