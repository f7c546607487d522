package calculator

import (
	"math"

	"github.com/sandeepzgk/ESR-System-sub000/internal/numeric"
	"github.com/sandeepzgk/ESR-System-sub000/pkg/models"
)

// PeakToPeakToRMS converts a sine peak-to-peak amplitude to RMS
func PeakToPeakToRMS(vpp float64) float64 {
	return vpp / (2 * math.Sqrt2)
}

// sineSolution is the closed-form AC steady state at one frequency
type sineSolution struct {
	vrms       float64
	omega      float64
	omegaRC    float64
	resistive  float64
	capacitive float64
	total      float64
	phase      float64
	pf         float64
	impedance  float64
}

func solveSineAt(vpp, r, c, f float64) sineSolution {
	s := sineSolution{
		vrms:  PeakToPeakToRMS(vpp),
		omega: 2 * math.Pi * f,
	}
	s.omegaRC = s.omega * r * c
	s.resistive = numeric.Divide(s.vrms, r)
	s.capacitive = numeric.PositiveProduct(s.vrms, s.omega, c)
	s.total = numeric.Hypot(s.resistive, s.capacitive)

	theta := math.Atan(s.omegaRC)
	s.phase = theta * 180 / math.Pi
	s.pf = math.Cos(theta)
	s.impedance = ParallelImpedance(r, s.omegaRC)
	return s
}

// ParallelImpedance is |Z| of R in parallel with C, R/sqrt(1+(ωRC)²).
// A non-positive R has no meaningful impedance and yields +Inf.
func ParallelImpedance(r, omegaRC float64) float64 {
	if r <= 0 {
		return math.Inf(1)
	}
	return r / math.Sqrt(1+omegaRC*omegaRC)
}

// SineRegime classifies a circuit by its ωRC
func SineRegime(omegaRC float64) models.Regime {
	switch {
	case !numeric.Finite(omegaRC):
		return models.RegimeIndeterminate
	case omegaRC < 1:
		return models.RegimeResistive
	case omegaRC > 1:
		return models.RegimeCapacitive
	default:
		return models.RegimeTransition
	}
}

// SolveSine computes the steady-state currents for a single-frequency
// excitation. Voltage is peak-to-peak.
func SolveSine(p models.SineParameters) models.CircuitResult {
	s := solveSineAt(p.Voltage, p.Resistance, p.Capacitance, p.Frequency)

	return models.CircuitResult{
		Mode:                 models.SignalSine,
		ResistiveCurrent:     s.resistive,
		CapacitiveCurrent:    s.capacitive,
		TotalCurrent:         s.total,
		ResistivePercentage:  numeric.Percent(s.resistive, s.total),
		CapacitivePercentage: numeric.Percent(s.capacitive, s.total),
		IsSafe:               IsSafe(s.total, p.SafeCurrentThreshold),
		Regime:               SineRegime(s.omegaRC),
		Parameters:           p,
		Sine: &models.SineDetails{
			OmegaRC:          s.omegaRC,
			AngularFrequency: s.omega,
			PhaseAngle:       s.phase,
			PowerFactor:      s.pf,
			Impedance:        s.impedance,
		},
	}
}
