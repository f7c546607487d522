package models

import "math"

// NewParametersBody converts a normalized set for transport. Absent
// frequencies and an unset threshold are omitted.
func NewParametersBody(p Parameters) *ParametersBody {
	if p == nil {
		return nil
	}
	v := p.Values()
	body := &ParametersBody{
		SignalType:  p.Mode(),
		Voltage:     Real(v.Voltage),
		Resistance:  Real(v.Resistance),
		Capacitance: Real(v.Capacitance),
	}
	if !math.IsInf(v.SafeCurrentThreshold, 1) {
		body.SafeCurrentThreshold = RealPtr(v.SafeCurrentThreshold)
	}

	switch params := p.(type) {
	case SineParameters:
		body.Frequency = RealPtr(params.Frequency)
	case NoiseParameters:
		body.NoiseMinFrequency = RealPtr(params.MinFrequency)
		body.NoiseMaxFrequency = RealPtr(params.MaxFrequency)
	}
	return body
}

// NewResultBody converts a solver result for transport
func NewResultBody(r CircuitResult) *ResultBody {
	body := &ResultBody{
		SignalType:           r.Mode,
		ResistiveCurrent:     Real(r.ResistiveCurrent),
		CapacitiveCurrent:    Real(r.CapacitiveCurrent),
		TotalCurrent:         Real(r.TotalCurrent),
		ResistivePercentage:  Real(r.ResistivePercentage),
		CapacitivePercentage: Real(r.CapacitivePercentage),
		IsSafe:               r.IsSafe,
		Regime:               r.Regime,
		CalculationError:     r.CalculationError,
	}
	if s := r.Sine; s != nil {
		body.Sine = &SineBody{
			OmegaRC:          Real(s.OmegaRC),
			AngularFrequency: Real(s.AngularFrequency),
			PhaseAngle:       Real(s.PhaseAngle),
			PowerFactor:      Real(s.PowerFactor),
			Impedance:        Real(s.Impedance),
		}
	}
	if n := r.Noise; n != nil {
		body.Noise = &NoiseBody{
			EffectiveOmegaRC: Real(n.EffectiveOmegaRC),
			Bandwidth:        BandwidthBody{Min: Real(n.Bandwidth.Min), Max: Real(n.Bandwidth.Max)},
			ValidationError:  n.ValidationError,
		}
	}
	return body
}

// NewSweepBody converts a frequency response for transport
func NewSweepBody(r FrequencyResponse) SweepBody {
	points := make([]PointBody, len(r.Points))
	for i, p := range r.Points {
		points[i] = PointBody{
			Frequency:  Real(p.Frequency),
			Impedance:  Real(p.Impedance),
			Current:    Real(p.Current),
			PhaseAngle: Real(p.PhaseAngle),
			OmegaRC:    Real(p.OmegaRC),
		}
	}
	return SweepBody{
		Points:              points,
		TransitionFrequency: Real(r.TransitionFrequency),
		OperatingFrequency:  Real(r.OperatingFrequency),
		OperatingIndex:      r.OperatingIndex,
		Error:               r.Error,
	}
}

// NewEvaluationBody converts a pipeline result for transport. A failed
// evaluation carries only its diagnostics and error.
func NewEvaluationBody(e Evaluation) EvaluationBody {
	body := EvaluationBody{
		Diagnostics: nonNil(e.Diagnostics),
		Warnings:    nonNil(e.Warnings),
		Disclaimer:  e.Disclaimer,
		Error:       e.Error,
	}
	if e.Parameters == nil {
		return body
	}
	body.Parameters = NewParametersBody(e.Parameters)
	body.Result = NewResultBody(e.Result)
	sweep := NewSweepBody(e.Response)
	body.Response = &sweep
	return body
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
