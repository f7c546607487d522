package models

import (
	"time"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Body HealthResponseBody
}

// HealthResponseBody is the body of the health check response
type HealthResponseBody struct {
	Status  string    `json:"status" example:"healthy" doc:"Service health status"`
	Version string    `json:"version" example:"1.0.0" doc:"API version"`
	Time    time.Time `json:"time" doc:"Current server time"`
}

// UnitBody describes one unit accepted for a parameter
type UnitBody struct {
	Symbol   string  `json:"symbol" doc:"Unit symbol"`
	Factor   float64 `json:"factor" doc:"Multiplier to the SI base unit"`
	RangeMin float64 `json:"range_min" doc:"Lower slider bound in this unit"`
	RangeMax float64 `json:"range_max" doc:"Upper slider bound in this unit"`
}

// ParameterUnitsBody lists the units of one parameter
type ParameterUnitsBody struct {
	Parameter ParameterName `json:"parameter" doc:"Parameter name"`
	SIUnit    string        `json:"si_unit" doc:"SI base unit"`
	Units     []UnitBody    `json:"units" doc:"Accepted units"`
}

// ListUnitsResponse represents the unit catalogue
type ListUnitsResponse struct {
	Body struct {
		Parameters []ParameterUnitsBody `json:"parameters" doc:"Units per parameter"`
	}
}

// NormalizeRequest converts a single quantity to SI
type NormalizeRequest struct {
	Body struct {
		Parameter ParameterName `json:"parameter" enum:"voltage,resistance,capacitance,frequency,noiseMinFrequency,noiseMaxFrequency,safeCurrentThreshold" doc:"Parameter the value belongs to"`
		Value     float64       `json:"value" doc:"Numeric value in the given unit"`
		Unit      string        `json:"unit" doc:"Unit symbol"`
	}
}

// NormalizeResponse carries the SI value and a diagnostic when the unit fell back
type NormalizeResponse struct {
	Body struct {
		Value      Real   `json:"value" doc:"Value in SI units"`
		Diagnostic string `json:"diagnostic,omitempty" doc:"Set when the unit was not recognized and the raw value was kept"`
	}
}

// ParameterSetRequest is any operation that takes a raw parameter set
type ParameterSetRequest struct {
	Body RawParameters
}

// ParametersBody is a normalized parameter set in SI units
type ParametersBody struct {
	SignalType           SignalMode `json:"signal_type" doc:"Excitation type"`
	Voltage              Real       `json:"voltage" doc:"Volts, peak-to-peak for sine and RMS for noise"`
	Resistance           Real       `json:"resistance" doc:"Ohms"`
	Capacitance          Real       `json:"capacitance" doc:"Farads"`
	Frequency            *Real      `json:"frequency,omitempty" doc:"Hz, sine mode only"`
	NoiseMinFrequency    *Real      `json:"noise_min_frequency,omitempty" doc:"Hz, noise mode only"`
	NoiseMaxFrequency    *Real      `json:"noise_max_frequency,omitempty" doc:"Hz, noise mode only"`
	SafeCurrentThreshold *Real      `json:"safe_current_threshold,omitempty" doc:"Amperes, omitted when no threshold is set"`
}

// ValidateResponse represents the advisory warnings for a parameter set
type ValidateResponse struct {
	Body struct {
		Parameters  ParametersBody `json:"parameters" doc:"Normalized parameters"`
		Diagnostics []string       `json:"diagnostics" doc:"Unit conversion fallbacks"`
		Warnings    []string       `json:"warnings" doc:"Validation warnings, empty when the set is valid"`
		Valid       bool           `json:"valid" doc:"True when there are no warnings"`
	}
}

// SineBody holds sine-only result fields
type SineBody struct {
	OmegaRC          Real `json:"omega_rc" doc:"Dimensionless ωRC"`
	AngularFrequency Real `json:"angular_frequency" doc:"rad/s"`
	PhaseAngle       Real `json:"phase_angle" doc:"Degrees"`
	PowerFactor      Real `json:"power_factor" doc:"cos φ"`
	Impedance        Real `json:"impedance" doc:"Ohms"`
}

// BandwidthBody is a noise band in Hz
type BandwidthBody struct {
	Min Real `json:"min" doc:"Lower edge in Hz"`
	Max Real `json:"max" doc:"Upper edge in Hz"`
}

// NoiseBody holds noise-only result fields
type NoiseBody struct {
	EffectiveOmegaRC Real          `json:"effective_omega_rc" doc:"ωRC at the band center"`
	Bandwidth        BandwidthBody `json:"bandwidth" doc:"Noise band"`
	ValidationError  string        `json:"validation_error,omitempty" doc:"Set when the band was invalid and currents were zeroed"`
}

// ResultBody is the solver output
type ResultBody struct {
	SignalType           SignalMode `json:"signal_type" doc:"Excitation type"`
	ResistiveCurrent     Real       `json:"resistive_current" doc:"Amperes RMS"`
	CapacitiveCurrent    Real       `json:"capacitive_current" doc:"Amperes RMS"`
	TotalCurrent         Real       `json:"total_current" doc:"Amperes RMS"`
	ResistivePercentage  Real       `json:"resistive_percentage" doc:"I_R / I_total in percent"`
	CapacitivePercentage Real       `json:"capacitive_percentage" doc:"I_C / I_total in percent"`
	IsSafe               bool       `json:"is_safe" doc:"Total current is below the threshold"`
	Regime               Regime     `json:"regime" doc:"Circuit behavior classification"`
	CalculationError     string     `json:"calculation_error,omitempty" doc:"Set when the solver failed internally"`
	Sine                 *SineBody  `json:"sine,omitempty" doc:"Sine-only fields"`
	Noise                *NoiseBody `json:"noise,omitempty" doc:"Noise-only fields"`
}

// PointBody is one frequency response sample
type PointBody struct {
	Frequency  Real `json:"frequency" doc:"Hz"`
	Impedance  Real `json:"impedance" doc:"Ohms"`
	Current    Real `json:"current" doc:"Amperes RMS"`
	PhaseAngle Real `json:"phase_angle" doc:"Degrees"`
	OmegaRC    Real `json:"omega_rc" doc:"Dimensionless ωRC"`
}

// SweepBody is the frequency response series
type SweepBody struct {
	Points              []PointBody `json:"points" doc:"Samples sorted by frequency"`
	TransitionFrequency Real        `json:"transition_frequency" doc:"Frequency where ωRC = 1, 0 when undefined"`
	OperatingFrequency  Real        `json:"operating_frequency" doc:"Sine frequency"`
	OperatingIndex      int         `json:"operating_index" doc:"Index of the operating point, -1 when empty"`
	Error               string      `json:"error,omitempty" doc:"Why the series is empty"`
}

// SweepResponse represents the frequency response of a parameter set
type SweepResponse struct {
	Body SweepBody
}

// EvaluationBody is the full pipeline output
type EvaluationBody struct {
	Parameters  *ParametersBody   `json:"parameters,omitempty" doc:"Normalized parameters"`
	Diagnostics []string          `json:"diagnostics" doc:"Unit conversion fallbacks"`
	Warnings    []string          `json:"warnings" doc:"Validation warnings"`
	Result      *ResultBody       `json:"result,omitempty" doc:"Solver output"`
	Response    *SweepBody        `json:"response,omitempty" doc:"Frequency response, sine mode only"`
	Display     map[string]string `json:"display,omitempty" doc:"Human-readable renderings of the headline values"`
	Disclaimer  string            `json:"disclaimer,omitempty" doc:"Safety model applicability note"`
	Error       string            `json:"error,omitempty" doc:"Set when the parameter set could not be evaluated"`
}

// CalculateResponse represents a single evaluation
type CalculateResponse struct {
	Body EvaluationBody
}

// ChartResponse is an HTML page rendering the frequency response
type ChartResponse struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

// BatchRequest evaluates several parameter sets at once
type BatchRequest struct {
	Body struct {
		Items []RawParameters `json:"items" minItems:"1" doc:"Independent parameter sets"`
	}
}

// BatchResponse carries the evaluations in request order
type BatchResponse struct {
	Body struct {
		Results []EvaluationBody `json:"results" doc:"Evaluations in request order"`
	}
}

// ReportResponseBody points at an exported report
type ReportResponseBody struct {
	ID            string `json:"id" doc:"Report identifier"`
	ChartURL      string `json:"chart_url" doc:"Pre-signed URL of the HTML chart"`
	PlotURL       string `json:"plot_url,omitempty" doc:"Pre-signed URL of the SVG impedance plot, sine mode only"`
	EvaluationURL string `json:"evaluation_url" doc:"Pre-signed URL of the JSON evaluation"`
	ExpiresIn     int    `json:"expires_in" doc:"URL expiration time in seconds"`
}

// CreateReportResponse represents the response from exporting a report
type CreateReportResponse struct {
	Body ReportResponseBody
}
