// Package calculator implements the parallel RC network engine: the sine and
// noise solvers, the frequency sweep and the safety comparison. Every
// operation is a deterministic function of its inputs and resolves to a value;
// nothing here returns an error for a degenerate circuit.
package calculator

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"

	"github.com/sandeepzgk/ESR-System-sub000/internal/units"
	"github.com/sandeepzgk/ESR-System-sub000/internal/validation"
	"github.com/sandeepzgk/ESR-System-sub000/pkg/models"
)

// CalculationFailed is reported when a solver fails unexpectedly
const CalculationFailed = "Calculation failed due to an unexpected internal error"

// Engine ties the normalizer, validator and solvers together
type Engine struct {
	limits    validation.Limits
	validator *validation.Validator
}

// NewEngine creates an engine using the given noise-frequency limits
func NewEngine(limits validation.Limits) *Engine {
	return &Engine{
		limits:    limits,
		validator: validation.NewValidator(limits),
	}
}

// Limits returns the noise-frequency limits of the engine
func (e *Engine) Limits() validation.Limits {
	return e.limits
}

// Normalize converts a raw parameter set to SI units
func (e *Engine) Normalize(raw models.RawParameters) (models.Parameters, []string, error) {
	return units.NormalizeSet(raw)
}

// Validate returns advisory warnings for the parameter set
func (e *Engine) Validate(p models.Parameters) []string {
	return e.validator.Validate(p)
}

// Solve runs the solver selected by the parameter set's mode
func (e *Engine) Solve(p models.Parameters) models.CircuitResult {
	return e.guard(p, func() models.CircuitResult {
		switch params := p.(type) {
		case models.SineParameters:
			return SolveSine(params)
		case models.NoiseParameters:
			return SolveNoise(params, e.limits)
		}
		panic(fmt.Sprintf("unsupported parameter set %T", p))
	})
}

// Sweep builds the frequency response series for the parameter set
func (e *Engine) Sweep(p models.Parameters) models.FrequencyResponse {
	return Sweep(p)
}

// Evaluate runs the whole pipeline: normalize, validate, solve and, in sine
// mode, sweep. Only an unknown signal type is an error.
func (e *Engine) Evaluate(raw models.RawParameters) (models.Evaluation, error) {
	params, diagnostics, err := e.Normalize(raw)
	if err != nil {
		return models.Evaluation{Diagnostics: diagnostics, Error: err.Error()}, err
	}

	warnings := e.Validate(params)
	if len(warnings) > 0 {
		log.Debug().Str("mode", string(params.Mode())).Strs("warnings", warnings).Msg("Parameter warnings")
	}

	return models.Evaluation{
		Parameters:  params,
		Diagnostics: diagnostics,
		Warnings:    warnings,
		Result:      e.Solve(params),
		Response:    e.Sweep(params),
		Disclaimer:  SafetyDisclaimer,
	}, nil
}

// guard converts a solver panic into a zeroed, safe result carrying
// CalculationError. Internal failure never reports a circuit as unsafe.
func (e *Engine) guard(p models.Parameters, solve func() models.CircuitResult) (result models.CircuitResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Circuit solver failed")
			result = failedResult(p)
		}
	}()
	return solve()
}

func failedResult(p models.Parameters) models.CircuitResult {
	result := models.CircuitResult{
		Mode:             models.SignalSine,
		IsSafe:           true,
		Regime:           models.RegimeIndeterminate,
		Parameters:       p,
		CalculationError: CalculationFailed,
	}
	if p != nil && p.Mode() == models.SignalNoise {
		result.Mode = models.SignalNoise
		noise, _ := p.(models.NoiseParameters)
		result.Noise = &models.NoiseDetails{EffectiveOmegaRC: math.NaN(), Bandwidth: noise.Band()}
		return result
	}
	result.Sine = &models.SineDetails{}
	return result
}
