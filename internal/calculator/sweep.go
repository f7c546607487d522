package calculator

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/sandeepzgk/ESR-System-sub000/internal/numeric"
	"github.com/sandeepzgk/ESR-System-sub000/pkg/models"
)

const (
	// SweepPoints is the number of log-spaced samples generated per sweep
	SweepPoints = 100

	SweepMinFrequency = 0.001
	SweepMaxFrequency = 1e6

	sweepSpan = 10.0
	// a generated sample this close to the operating frequency is replaced
	// by the exact operating point instead of inserting a new one
	operatingTolerance = 0.01
)

const (
	ErrSweepNoiseMode = "Frequency response analysis is not applicable in noise mode"
	ErrSweepFrequency = "Frequency response requires a positive, finite operating frequency"
	ErrSweepMode      = "Frequency response requires sine-mode parameters"
)

// TransitionFrequency is the frequency where ωRC = 1, or 0 when R or C is
// not positive
func TransitionFrequency(r, c float64) float64 {
	if !(r > 0) || !(c > 0) || !numeric.Finite(r, c) {
		return 0
	}
	return 1 / (2 * math.Pi * r * c)
}

func emptyResponse(reason string) models.FrequencyResponse {
	return models.FrequencyResponse{
		Points:         []models.FrequencyPoint{},
		OperatingIndex: -1,
		Error:          reason,
	}
}

// Sweep samples the sine-mode response over [f/10, 10f], clamped to
// [0.001 Hz, 1 MHz]. The series is sorted by frequency and contains the exact
// operating frequency once. Noise mode returns an empty series with an error.
func Sweep(p models.Parameters) models.FrequencyResponse {
	if p == nil {
		return emptyResponse(ErrSweepMode)
	}
	if p.Mode() == models.SignalNoise {
		return emptyResponse(ErrSweepNoiseMode)
	}
	sine, ok := p.(models.SineParameters)
	if !ok {
		return emptyResponse(ErrSweepMode)
	}

	f := sine.Frequency
	if !(f > 0) || math.IsInf(f, 0) {
		return emptyResponse(ErrSweepFrequency)
	}

	lo := numeric.Clamp(f/sweepSpan, SweepMinFrequency, SweepMaxFrequency)
	hi := numeric.Clamp(f*sweepSpan, SweepMinFrequency, SweepMaxFrequency)
	freqs := floats.LogSpan(make([]float64, SweepPoints, SweepPoints+1), lo, hi)
	freqs = placeOperatingPoint(freqs, f)

	points := make([]models.FrequencyPoint, len(freqs))
	for i, fs := range freqs {
		s := solveSineAt(sine.Voltage, sine.Resistance, sine.Capacitance, fs)
		points[i] = models.FrequencyPoint{
			Frequency:  fs,
			Impedance:  s.impedance,
			Current:    s.total,
			PhaseAngle: s.phase,
			OmegaRC:    s.omegaRC,
		}
	}

	idx, _ := slices.BinarySearch(freqs, f)
	return models.FrequencyResponse{
		Points:              points,
		TransitionFrequency: TransitionFrequency(sine.Resistance, sine.Capacitance),
		OperatingFrequency:  f,
		OperatingIndex:      idx,
	}
}

// placeOperatingPoint makes f appear exactly once in the ascending series:
// the nearest sample within tolerance is snapped to f, otherwise f is
// inserted in order.
func placeOperatingPoint(freqs []float64, f float64) []float64 {
	nearest := 0
	for i := range freqs {
		if math.Abs(freqs[i]-f) < math.Abs(freqs[nearest]-f) {
			nearest = i
		}
	}
	if math.Abs(freqs[nearest]-f) <= operatingTolerance*f {
		freqs[nearest] = f
	} else {
		freqs = append(freqs, f)
	}
	// a clamped window can collapse to a single frequency, so order is not
	// guaranteed by the snap alone
	slices.Sort(freqs)
	return freqs
}
