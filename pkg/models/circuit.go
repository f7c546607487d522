package models

import "math"

// SignalMode selects which solver and which frequency parameters apply
type SignalMode string

const (
	SignalSine  SignalMode = "sine"
	SignalNoise SignalMode = "noise"
)

// Valid reports whether the mode is one of the known signal modes
func (m SignalMode) Valid() bool {
	return m == SignalSine || m == SignalNoise
}

// ParameterName identifies a normalizable circuit parameter
type ParameterName string

const (
	ParamVoltage              ParameterName = "voltage"
	ParamResistance           ParameterName = "resistance"
	ParamCapacitance          ParameterName = "capacitance"
	ParamFrequency            ParameterName = "frequency"
	ParamNoiseMinFrequency    ParameterName = "noiseMinFrequency"
	ParamNoiseMaxFrequency    ParameterName = "noiseMaxFrequency"
	ParamSafeCurrentThreshold ParameterName = "safeCurrentThreshold"
)

// Quantity is a raw numeric value paired with its unit symbol
type Quantity struct {
	Value float64 `json:"value" doc:"Numeric value in the given unit"`
	Unit  string  `json:"unit" doc:"Unit symbol, e.g. kΩ, nF, Hz"`
}

// RawParameters is the un-normalized parameter set submitted by a client.
// Frequency applies to sine mode, the noise band edges to noise mode.
type RawParameters struct {
	SignalType           SignalMode `json:"signal_type" enum:"sine,noise" doc:"Excitation type"`
	Voltage              Quantity   `json:"voltage" doc:"Peak-to-peak voltage in sine mode, RMS voltage in noise mode"`
	Resistance           Quantity   `json:"resistance" doc:"Parallel resistance"`
	Capacitance          Quantity   `json:"capacitance" doc:"Parallel capacitance"`
	Frequency            *Quantity  `json:"frequency,omitempty" doc:"Sine frequency"`
	NoiseMinFrequency    *Quantity  `json:"noise_min_frequency,omitempty" doc:"Lower edge of the noise band"`
	NoiseMaxFrequency    *Quantity  `json:"noise_max_frequency,omitempty" doc:"Upper edge of the noise band"`
	SafeCurrentThreshold *Quantity  `json:"safe_current_threshold,omitempty" doc:"Total current below which the circuit is reported safe"`
}

// Parameters is a normalized parameter set in SI units. The concrete type is
// either SineParameters or NoiseParameters.
type Parameters interface {
	Mode() SignalMode
	Values() CircuitValues
}

// CircuitValues holds the SI values shared by both signal modes.
// SafeCurrentThreshold is +Inf when no threshold was supplied.
type CircuitValues struct {
	Voltage              float64
	Resistance           float64
	Capacitance          float64
	SafeCurrentThreshold float64
}

// SineParameters is the normalized set for single-frequency excitation.
// Voltage is peak-to-peak. Frequency is NaN when absent.
type SineParameters struct {
	CircuitValues
	Frequency float64
}

func (SineParameters) Mode() SignalMode { return SignalSine }
func (p SineParameters) Values() CircuitValues { return p.CircuitValues }

// NoiseParameters is the normalized set for band-limited white noise.
// Voltage is RMS. Band edges are NaN when absent.
type NoiseParameters struct {
	CircuitValues
	MinFrequency float64
	MaxFrequency float64
}

func (NoiseParameters) Mode() SignalMode { return SignalNoise }
func (p NoiseParameters) Values() CircuitValues { return p.CircuitValues }

// Band returns the noise bandwidth of the parameter set
func (p NoiseParameters) Band() Bandwidth {
	return Bandwidth{Min: p.MinFrequency, Max: p.MaxFrequency}
}

// Regime is the qualitative classification of circuit behavior
type Regime string

const (
	RegimeResistive     Regime = "Resistive"
	RegimeCapacitive    Regime = "Capacitive"
	RegimeTransition    Regime = "Transition Point"
	RegimeIndeterminate Regime = "Indeterminate"

	RegimeMostlyResistive  Regime = "Predominantly Resistive"
	RegimeMostlyCapacitive Regime = "Predominantly Capacitive"
	RegimeTransitionRegion Regime = "Transition Region"
)

// Bandwidth is a noise frequency band in Hz
type Bandwidth struct {
	Min float64
	Max float64
}

// CircuitResult is the solver output. Exactly one of Sine or Noise is set,
// matching Mode.
type CircuitResult struct {
	Mode                 SignalMode
	ResistiveCurrent     float64
	CapacitiveCurrent    float64
	TotalCurrent         float64
	ResistivePercentage  float64
	CapacitivePercentage float64
	IsSafe               bool
	Regime               Regime
	Parameters           Parameters
	CalculationError     string

	Sine  *SineDetails
	Noise *NoiseDetails
}

// SineDetails holds the fields only meaningful for sine excitation
type SineDetails struct {
	OmegaRC          float64
	AngularFrequency float64
	PhaseAngle       float64 // degrees
	PowerFactor      float64
	Impedance        float64
}

// NoiseDetails holds the fields only meaningful for noise excitation.
// EffectiveOmegaRC is evaluated at the band center frequency and is an
// interpretability aid, not an exact physical quantity.
type NoiseDetails struct {
	EffectiveOmegaRC float64
	Bandwidth        Bandwidth
	ValidationError  string
}

// Evaluation is the full pipeline output for one raw parameter set
type Evaluation struct {
	Parameters  Parameters
	Diagnostics []string
	Warnings    []string
	Result      CircuitResult
	Response    FrequencyResponse
	Disclaimer  string
	Error       string
}

// NoThreshold is the safety threshold used when none is supplied
var NoThreshold = math.Inf(1)
