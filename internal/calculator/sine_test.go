package calculator

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepzgk/ESR-System-sub000/pkg/models"
)

func sineParams(vpp, r, c, f float64) models.SineParameters {
	return models.SineParameters{
		CircuitValues: models.CircuitValues{
			Voltage:              vpp,
			Resistance:           r,
			Capacitance:          c,
			SafeCurrentThreshold: models.NoThreshold,
		},
		Frequency: f,
	}
}

func TestSolveSine_ReferenceCircuit(t *testing.T) {
	// 50 kΩ ∥ 50 nF at 50 Hz, 1 Vpp
	res := SolveSine(sineParams(1, 50e3, 50e-9, 50))

	require.NotNil(t, res.Sine)
	assert.Nil(t, res.Noise)
	assert.Equal(t, models.SignalSine, res.Mode)
	assert.Empty(t, res.CalculationError)

	assert.InDelta(t, 0.35355, PeakToPeakToRMS(1), 1e-5)
	assert.InDelta(t, math.Pi/4, res.Sine.OmegaRC, 1e-12)
	assert.InDelta(t, 2*math.Pi*50, res.Sine.AngularFrequency, 1e-12)
	assert.Equal(t, models.RegimeResistive, res.Regime)
	assert.InDelta(t, 7.0711e-6, res.ResistiveCurrent, 1e-9)
	assert.InDelta(t, 5.5536e-6, res.CapacitiveCurrent, 1e-9)
	assert.InDelta(t, 8.9913e-6, res.TotalCurrent, 1e-9)
	assert.InDelta(t, 38.146, res.Sine.PhaseAngle, 1e-3)
	assert.InDelta(t, 50e3/math.Sqrt(1+math.Pi*math.Pi/16), res.Sine.Impedance, 1e-6)
	assert.True(t, res.IsSafe, "no threshold means always safe")
}

func TestSolveSine_TransitionPoint(t *testing.T) {
	assert.Equal(t, models.RegimeTransition, SineRegime(1))

	res := SolveSine(sineParams(1, 1, 1, 1/(2*math.Pi)))
	require.Equal(t, 1.0, res.Sine.OmegaRC)
	assert.Equal(t, models.RegimeTransition, res.Regime)
	assert.InDelta(t, 45.0, res.Sine.PhaseAngle, 1e-9)
	assert.InDelta(t, 1/math.Sqrt2, res.Sine.PowerFactor, 1e-12)
	assert.InDelta(t, 0.7071, res.Sine.PowerFactor, 1e-4)
}

func TestSineRegime(t *testing.T) {
	tests := []struct {
		omegaRC float64
		want    models.Regime
	}{
		{0, models.RegimeResistive},
		{0.999, models.RegimeResistive},
		{1, models.RegimeTransition},
		{1.001, models.RegimeCapacitive},
		{1e30, models.RegimeCapacitive},
		{math.NaN(), models.RegimeIndeterminate},
		{math.Inf(1), models.RegimeIndeterminate},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SineRegime(tt.omegaRC), "ωRC=%g", tt.omegaRC)
	}
}

func TestSolveSine_CurrentDecomposition(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	logUniform := func(lo, hi float64) float64 {
		return math.Pow(10, math.Log10(lo)+rng.Float64()*(math.Log10(hi)-math.Log10(lo)))
	}

	for i := 0; i < 500; i++ {
		p := sineParams(logUniform(1e-3, 100), logUniform(1, 1e9), logUniform(1e-12, 1e-3), logUniform(0.01, 1e6))
		res := SolveSine(p)

		sumSq := res.ResistiveCurrent*res.ResistiveCurrent + res.CapacitiveCurrent*res.CapacitiveCurrent
		assert.InEpsilon(t, sumSq, res.TotalCurrent*res.TotalCurrent, 1e-9, "params %+v", p)

		pr, pc := res.ResistivePercentage/100, res.CapacitivePercentage/100
		assert.InDelta(t, 1.0, pr*pr+pc*pc, 1e-9, "params %+v", p)
	}
}

func TestSolveSine_Idempotent(t *testing.T) {
	p := sineParams(3.3, 12e3, 220e-9, 440)
	assert.Equal(t, SolveSine(p), SolveSine(p))
}

func TestSolveSine_Degenerate(t *testing.T) {
	t.Run("zero resistance", func(t *testing.T) {
		res := SolveSine(sineParams(1, 0, 1e-6, 50))
		assert.Zero(t, res.ResistiveCurrent)
		assert.True(t, math.IsInf(res.Sine.Impedance, 1))
		assert.InDelta(t, 100.0, res.CapacitivePercentage, 1e-12)
	})

	t.Run("negative capacitance has no capacitive current", func(t *testing.T) {
		res := SolveSine(sineParams(1, 1e3, -1e-6, 50))
		assert.Zero(t, res.CapacitiveCurrent)
		assert.Equal(t, models.RegimeResistive, res.Regime)
	})

	t.Run("missing frequency", func(t *testing.T) {
		res := SolveSine(sineParams(1, 1e3, 1e-6, math.NaN()))
		assert.Zero(t, res.CapacitiveCurrent)
		assert.Equal(t, models.RegimeIndeterminate, res.Regime)
		assert.True(t, math.IsNaN(res.Sine.PhaseAngle), "invalid values are emitted, not clamped")
	})

	t.Run("extreme capacitive stays finite", func(t *testing.T) {
		res := SolveSine(sineParams(1, 1e12, 1, 1e9))
		assert.False(t, math.IsNaN(res.TotalCurrent))
		assert.False(t, math.IsInf(res.TotalCurrent, 0))
		assert.Equal(t, models.RegimeCapacitive, res.Regime)
	})
}

func TestSolveSine_SafetyThreshold(t *testing.T) {
	p := sineParams(1, 50e3, 50e-9, 50)

	p.SafeCurrentThreshold = 5e-6
	assert.False(t, SolveSine(p).IsSafe)

	p.SafeCurrentThreshold = 10e-6
	assert.True(t, SolveSine(p).IsSafe)
}

func TestIsSafe(t *testing.T) {
	assert.True(t, IsSafe(1, 2))
	assert.False(t, IsSafe(2, 2), "threshold is exclusive")
	assert.False(t, IsSafe(3, 2))
	assert.True(t, IsSafe(1e9, math.Inf(1)))
	assert.True(t, IsSafe(1e9, math.NaN()))
	assert.Contains(t, SafetyDisclaimer, "2 kHz")
}
