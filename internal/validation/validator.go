package validation

import (
	"errors"
	"fmt"
	"math"

	"github.com/sandeepzgk/ESR-System-sub000/internal/numeric"
	"github.com/sandeepzgk/ESR-System-sub000/pkg/models"
)

const (
	MinSineFrequency = 0.001
	MaxSineFrequency = 1e9

	// Below this ωRC the capacitor branch is negligible, above the inverse
	// bound the resistor branch is.
	ResistiveOmegaRC  = 1e-10
	CapacitiveOmegaRC = 1e10
)

// Limits are the configurable noise-frequency limits
type Limits struct {
	NoiseMinFrequency float64
	NoiseMaxFrequency float64
}

// DefaultLimits returns the 1 Hz to 2 kHz noise band limits
func DefaultLimits() Limits {
	return Limits{NoiseMinFrequency: 1, NoiseMaxFrequency: 2000}
}

// Validate checks the limits themselves
func (l Limits) Validate() error {
	if !numeric.Finite(l.NoiseMinFrequency, l.NoiseMaxFrequency) || l.NoiseMinFrequency <= 0 {
		return fmt.Errorf("noise frequency limits must be positive and finite, got [%g, %g]", l.NoiseMinFrequency, l.NoiseMaxFrequency)
	}
	if l.NoiseMinFrequency >= l.NoiseMaxFrequency {
		return fmt.Errorf("noise minimum frequency limit %g must be below maximum %g", l.NoiseMinFrequency, l.NoiseMaxFrequency)
	}
	return nil
}

// Bound is an inclusive absolute physical range
type Bound struct {
	Parameter models.ParameterName
	Label     string
	Unit      string
	Min       float64
	Max       float64
}

// PhysicalBounds are checked in order for every parameter set
var PhysicalBounds = []Bound{
	{Parameter: models.ParamVoltage, Label: "Voltage", Unit: "V", Min: 1e-6, Max: 1e4},
	{Parameter: models.ParamResistance, Label: "Resistance", Unit: "Ω", Min: 1e-6, Max: 1e12},
	{Parameter: models.ParamCapacitance, Label: "Capacitance", Unit: "F", Min: 1e-15, Max: 1},
}

// Contains reports whether v is finite and inside the bound
func (b Bound) Contains(v float64) bool {
	return numeric.Finite(v) && v >= b.Min && v <= b.Max
}

func (b Bound) warning(v float64) string {
	return fmt.Sprintf("%s (%g %s) must be a finite value between %g %s and %g %s",
		b.Label, v, b.Unit, b.Min, b.Unit, b.Max, b.Unit)
}

var (
	ErrBandMissing    = errors.New("noise frequency band requires both a minimum and a maximum frequency")
	ErrBandNotFinite  = errors.New("noise frequency band edges must be finite")
	ErrBandOrder      = errors.New("minimum noise frequency must be less than maximum noise frequency")
	ErrBandBelowLimit = errors.New("minimum noise frequency is below the supported range")
	ErrBandAboveLimit = errors.New("maximum noise frequency is above the supported range")
)

// CheckNoiseBand verifies a noise band against the limits. Absent edges are
// NaN. Ordering is checked before the range limits, and at most one of the
// ordering and range errors is returned.
func CheckNoiseBand(fMin, fMax float64, limits Limits) error {
	switch {
	case math.IsNaN(fMin) || math.IsNaN(fMax):
		return ErrBandMissing
	case !numeric.Finite(fMin, fMax):
		return ErrBandNotFinite
	case fMin >= fMax:
		return fmt.Errorf("%w (got %g Hz and %g Hz)", ErrBandOrder, fMin, fMax)
	case fMin < limits.NoiseMinFrequency:
		return fmt.Errorf("%w: %g Hz is below %g Hz", ErrBandBelowLimit, fMin, limits.NoiseMinFrequency)
	case fMax > limits.NoiseMaxFrequency:
		return fmt.Errorf("%w: %g Hz is above %g Hz", ErrBandAboveLimit, fMax, limits.NoiseMaxFrequency)
	}
	return nil
}

// Validator produces advisory warnings for a normalized parameter set
type Validator struct {
	limits Limits
}

func NewValidator(limits Limits) *Validator {
	return &Validator{limits: limits}
}

// Validate returns every warning that applies, in check order. An empty list
// means no warnings. Warnings never block computation.
func (v *Validator) Validate(p models.Parameters) []string {
	warnings := []string{}
	if p == nil {
		return append(warnings, "No parameters supplied")
	}

	values := p.Values()
	for _, b := range PhysicalBounds {
		x := valueOf(values, b.Parameter)
		if !b.Contains(x) {
			warnings = append(warnings, b.warning(x))
		}
	}

	switch params := p.(type) {
	case models.SineParameters:
		warnings = append(warnings, sineWarnings(params)...)
	case models.NoiseParameters:
		if err := CheckNoiseBand(params.MinFrequency, params.MaxFrequency, v.limits); err != nil {
			warnings = append(warnings, Describe(err))
		}
	}
	return warnings
}

func sineWarnings(p models.SineParameters) []string {
	var warnings []string
	f := p.Frequency
	if !numeric.Finite(f) || f < MinSineFrequency || f > MaxSineFrequency {
		warnings = append(warnings, fmt.Sprintf("Frequency (%g Hz) must be provided and between %g Hz and %g Hz",
			f, MinSineFrequency, MaxSineFrequency))
	}

	omegaRC := 2 * math.Pi * f * p.Resistance * p.Capacitance
	switch {
	case !numeric.Finite(omegaRC):
		warnings = append(warnings, "Invalid parameter combination: ωRC is not a finite number")
	case omegaRC < ResistiveOmegaRC:
		warnings = append(warnings, fmt.Sprintf("ωRC = %g: circuit is extremely resistive, capacitor negligible", omegaRC))
	case omegaRC > CapacitiveOmegaRC:
		warnings = append(warnings, fmt.Sprintf("ωRC = %g: circuit is extremely capacitive, resistor negligible", omegaRC))
	}
	return warnings
}

func valueOf(v models.CircuitValues, name models.ParameterName) float64 {
	switch name {
	case models.ParamVoltage:
		return v.Voltage
	case models.ParamResistance:
		return v.Resistance
	case models.ParamCapacitance:
		return v.Capacitance
	case models.ParamSafeCurrentThreshold:
		return v.SafeCurrentThreshold
	}
	return math.NaN()
}

// Describe renders an error as a user-facing sentence
func Describe(err error) string {
	s := err.Error()
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
