package units

import (
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"

	"github.com/sandeepzgk/ESR-System-sub000/pkg/models"
)

var (
	ErrUnknownParameter = errors.New("unknown parameter")
	ErrUnknownUnit      = errors.New("unknown unit")
	ErrUnknownMode      = errors.New("unknown signal type")
)

// DefaultRange is the slider range used when a unit is not registered
var DefaultRange = Range{Min: 1, Max: 1000}

// Range is the slider/display range of a value expressed in a given unit
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Unit is a registered unit symbol with its SI factor and slider range
type Unit struct {
	Symbol string  `json:"symbol"`
	Factor float64 `json:"factor"`
	Range  Range   `json:"range"`
	Alias  bool    `json:"-"`
}

// ParameterUnits lists the units accepted by one parameter kind
type ParameterUnits struct {
	Parameter models.ParameterName `json:"parameter"`
	SIUnit    string               `json:"si_unit"`
	Units     []Unit               `json:"units"`
}

var (
	voltageUnits = []Unit{
		{Symbol: "µV", Factor: 1e-6, Range: Range{1, 1000}},
		{Symbol: "uV", Factor: 1e-6, Range: Range{1, 1000}, Alias: true},
		{Symbol: "mV", Factor: 1e-3, Range: Range{1, 1000}},
		{Symbol: "V", Factor: 1, Range: Range{0.1, 100}},
		{Symbol: "kV", Factor: 1e3, Range: Range{0.1, 10}},
	}
	resistanceUnits = []Unit{
		{Symbol: "Ω", Factor: 1, Range: Range{1, 1000}},
		{Symbol: "ohm", Factor: 1, Range: Range{1, 1000}, Alias: true},
		{Symbol: "kΩ", Factor: 1e3, Range: Range{1, 1000}},
		{Symbol: "kohm", Factor: 1e3, Range: Range{1, 1000}, Alias: true},
		{Symbol: "MΩ", Factor: 1e6, Range: Range{1, 100}},
		{Symbol: "Mohm", Factor: 1e6, Range: Range{1, 100}, Alias: true},
	}
	capacitanceUnits = []Unit{
		{Symbol: "pF", Factor: 1e-12, Range: Range{1, 1000}},
		{Symbol: "nF", Factor: 1e-9, Range: Range{1, 1000}},
		{Symbol: "µF", Factor: 1e-6, Range: Range{1, 1000}},
		{Symbol: "uF", Factor: 1e-6, Range: Range{1, 1000}, Alias: true},
		{Symbol: "mF", Factor: 1e-3, Range: Range{1, 100}},
		{Symbol: "F", Factor: 1, Range: Range{0.1, 10}},
	}
	frequencyUnits = []Unit{
		{Symbol: "Hz", Factor: 1, Range: Range{1, 1000}},
		{Symbol: "kHz", Factor: 1e3, Range: Range{1, 1000}},
		{Symbol: "MHz", Factor: 1e6, Range: Range{1, 1000}},
	}
	noiseFrequencyUnits = []Unit{
		{Symbol: "Hz", Factor: 1, Range: Range{1, 2000}},
		{Symbol: "kHz", Factor: 1e3, Range: Range{0.001, 2}},
	}
	currentUnits = []Unit{
		{Symbol: "µA", Factor: 1e-6, Range: Range{1, 1000}},
		{Symbol: "uA", Factor: 1e-6, Range: Range{1, 1000}, Alias: true},
		{Symbol: "mA", Factor: 1e-3, Range: Range{0.1, 100}},
		{Symbol: "A", Factor: 1, Range: Range{0.001, 10}},
	}
)

var catalogue = []ParameterUnits{
	{Parameter: models.ParamVoltage, SIUnit: "V", Units: voltageUnits},
	{Parameter: models.ParamResistance, SIUnit: "Ω", Units: resistanceUnits},
	{Parameter: models.ParamCapacitance, SIUnit: "F", Units: capacitanceUnits},
	{Parameter: models.ParamFrequency, SIUnit: "Hz", Units: frequencyUnits},
	{Parameter: models.ParamNoiseMinFrequency, SIUnit: "Hz", Units: noiseFrequencyUnits},
	{Parameter: models.ParamNoiseMaxFrequency, SIUnit: "Hz", Units: noiseFrequencyUnits},
	{Parameter: models.ParamSafeCurrentThreshold, SIUnit: "A", Units: currentUnits},
}

func lookup(param models.ParameterName, symbol string) (Unit, error) {
	for _, pu := range catalogue {
		if pu.Parameter != param {
			continue
		}
		for _, u := range pu.Units {
			if u.Symbol == symbol {
				return u, nil
			}
		}
		return Unit{}, fmt.Errorf("%w %q for %s", ErrUnknownUnit, symbol, param)
	}
	return Unit{}, fmt.Errorf("%w %q", ErrUnknownParameter, param)
}

// Factor returns the SI factor of a unit registered for the parameter
func Factor(param models.ParameterName, symbol string) (float64, error) {
	u, err := lookup(param, symbol)
	if err != nil {
		return 0, err
	}
	return u.Factor, nil
}

// Convert returns value × factor(unit). On an unknown parameter or unit the
// raw value is returned unchanged together with the lookup error.
func Convert(param models.ParameterName, q models.Quantity) (float64, error) {
	factor, err := Factor(param, q.Unit)
	if err != nil {
		return q.Value, err
	}
	return q.Value * factor, nil
}

// Normalize converts a quantity to SI units. Unknown parameters or units
// never fail: the raw value passes through and a warning is logged.
func Normalize(param models.ParameterName, q models.Quantity) float64 {
	v, err := Convert(param, q)
	if err != nil {
		log.Warn().Err(err).Str("parameter", string(param)).Float64("value", q.Value).Msg("Unit conversion fell back to raw value")
	}
	return v
}

// RangeFor returns the slider range for a parameter expressed in the unit
func RangeFor(param models.ParameterName, symbol string) Range {
	u, err := lookup(param, symbol)
	if err != nil {
		return DefaultRange
	}
	return u.Range
}

// Catalogue returns the registered units per parameter, aliases excluded
func Catalogue() []ParameterUnits {
	out := make([]ParameterUnits, 0, len(catalogue))
	for _, pu := range catalogue {
		units := make([]Unit, 0, len(pu.Units))
		for _, u := range pu.Units {
			if !u.Alias {
				units = append(units, u)
			}
		}
		out = append(out, ParameterUnits{Parameter: pu.Parameter, SIUnit: pu.SIUnit, Units: units})
	}
	return out
}

// NormalizeSet converts a raw parameter set into the mode-specific normalized
// set. Conversion fallbacks are reported as diagnostics; only an unknown signal
// type is an error since the mode is never inferred.
func NormalizeSet(raw models.RawParameters) (models.Parameters, []string, error) {
	var diagnostics []string
	convert := func(param models.ParameterName, q *models.Quantity, absent float64) float64 {
		if q == nil {
			return absent
		}
		v, err := Convert(param, *q)
		if err != nil {
			log.Warn().Err(err).Str("parameter", string(param)).Msg("Unit conversion fell back to raw value")
			diagnostics = append(diagnostics, err.Error())
		}
		return v
	}

	values := models.CircuitValues{
		Voltage:              convert(models.ParamVoltage, &raw.Voltage, math.NaN()),
		Resistance:           convert(models.ParamResistance, &raw.Resistance, math.NaN()),
		Capacitance:          convert(models.ParamCapacitance, &raw.Capacitance, math.NaN()),
		SafeCurrentThreshold: convert(models.ParamSafeCurrentThreshold, raw.SafeCurrentThreshold, models.NoThreshold),
	}

	switch raw.SignalType {
	case models.SignalSine:
		return models.SineParameters{
			CircuitValues: values,
			Frequency:     convert(models.ParamFrequency, raw.Frequency, math.NaN()),
		}, diagnostics, nil
	case models.SignalNoise:
		return models.NoiseParameters{
			CircuitValues: values,
			MinFrequency:  convert(models.ParamNoiseMinFrequency, raw.NoiseMinFrequency, math.NaN()),
			MaxFrequency:  convert(models.ParamNoiseMaxFrequency, raw.NoiseMaxFrequency, math.NaN()),
		}, diagnostics, nil
	}
	return nil, diagnostics, fmt.Errorf("%w %q: expected sine or noise", ErrUnknownMode, raw.SignalType)
}
