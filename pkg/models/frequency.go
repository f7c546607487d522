package models

import "iter"

// FrequencyPoint is one sample of the sine-mode frequency response
type FrequencyPoint struct {
	Frequency  float64
	Impedance  float64
	Current    float64
	PhaseAngle float64
	OmegaRC    float64
}

// FrequencyResponse is a log-spaced sweep sorted ascending by frequency.
// OperatingIndex is -1 when the series is empty, in which case Error explains why.
type FrequencyResponse struct {
	Points              []FrequencyPoint
	TransitionFrequency float64
	OperatingFrequency  float64
	OperatingIndex      int
	Error               string
}

// Samples yields the sweep points in frequency order
func (r FrequencyResponse) Samples() iter.Seq2[int, FrequencyPoint] {
	return func(yield func(int, FrequencyPoint) bool) {
		for i, p := range r.Points {
			if !yield(i, p) {
				return
			}
		}
	}
}

// OperatingPoint returns the sample at the operating frequency
func (r FrequencyResponse) OperatingPoint() (FrequencyPoint, bool) {
	if r.OperatingIndex < 0 || r.OperatingIndex >= len(r.Points) {
		return FrequencyPoint{}, false
	}
	return r.Points[r.OperatingIndex], true
}
