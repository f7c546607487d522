package calculator

import (
	"math"

	"github.com/sandeepzgk/ESR-System-sub000/internal/numeric"
	"github.com/sandeepzgk/ESR-System-sub000/internal/validation"
	"github.com/sandeepzgk/ESR-System-sub000/pkg/models"
)

const (
	noiseResistiveBelow  = 0.5
	noiseCapacitiveAbove = 1.5
)

// BandCapacitiveCurrent is the RMS capacitor current for white noise of
// RMS voltage vrms spread flat over [fMin, fMax].
//
// The voltage PSD is S_v = V²/(fMax-fMin) and the capacitor admittance is
// 2πfC, so the current PSD is S_v·(2πC)²·f². Integrating f² over the band
// gives (fMax³-fMin³)/3, and the RMS current is the square root of the
// mean-square total.
func BandCapacitiveCurrent(vrms, c, fMin, fMax float64) float64 {
	psd := numeric.Divide(vrms*vrms, fMax-fMin)
	// a non-positive capacitance carries no current, as in sine mode
	admittance := numeric.PositiveProduct(2*math.Pi, c)
	admittance *= admittance
	integral := (fMax*fMax*fMax - fMin*fMin*fMin) / 3
	return numeric.Sqrt(psd * admittance * integral)
}

// EffectiveOmegaRC approximates ωRC at the band center frequency. It is an
// interpretability aid whose regime thresholds were tuned against this exact
// definition; it is not an exact physical quantity for a broadband signal.
func EffectiveOmegaRC(r, c, fMin, fMax float64) float64 {
	center := (fMin + fMax) / 2
	return 2 * math.Pi * center * r * c
}

// NoiseRegime classifies a noise-mode circuit by its effective ωRC
func NoiseRegime(effectiveOmegaRC float64) models.Regime {
	switch {
	case !numeric.Finite(effectiveOmegaRC):
		return models.RegimeIndeterminate
	case effectiveOmegaRC < noiseResistiveBelow:
		return models.RegimeMostlyResistive
	case effectiveOmegaRC > noiseCapacitiveAbove:
		return models.RegimeMostlyCapacitive
	default:
		return models.RegimeTransitionRegion
	}
}

// SolveNoise computes the currents for band-limited white noise. Voltage is
// already RMS. An invalid band is a recoverable outcome: currents are zero,
// the result is safe and ValidationError explains the band problem.
func SolveNoise(p models.NoiseParameters, limits validation.Limits) models.CircuitResult {
	band := p.Band()
	if err := validation.CheckNoiseBand(band.Min, band.Max, limits); err != nil {
		return models.CircuitResult{
			Mode:       models.SignalNoise,
			IsSafe:     true,
			Regime:     models.RegimeIndeterminate,
			Parameters: p,
			Noise: &models.NoiseDetails{
				EffectiveOmegaRC: math.NaN(),
				Bandwidth:        band,
				ValidationError:  validation.Describe(err),
			},
		}
	}

	resistive := numeric.Divide(p.Voltage, p.Resistance)
	capacitive := BandCapacitiveCurrent(p.Voltage, p.Capacitance, band.Min, band.Max)
	total := numeric.Hypot(resistive, capacitive)
	effective := EffectiveOmegaRC(p.Resistance, p.Capacitance, band.Min, band.Max)

	return models.CircuitResult{
		Mode:                 models.SignalNoise,
		ResistiveCurrent:     resistive,
		CapacitiveCurrent:    capacitive,
		TotalCurrent:         total,
		ResistivePercentage:  numeric.Percent(resistive, total),
		CapacitivePercentage: numeric.Percent(capacitive, total),
		IsSafe:               IsSafe(total, p.SafeCurrentThreshold),
		Regime:               NoiseRegime(effective),
		Parameters:           p,
		Noise: &models.NoiseDetails{
			EffectiveOmegaRC: effective,
			Bandwidth:        band,
		},
	}
}
