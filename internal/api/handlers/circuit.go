package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog/log"

	"github.com/sandeepzgk/ESR-System-sub000/internal/calculator"
	"github.com/sandeepzgk/ESR-System-sub000/internal/chart"
	"github.com/sandeepzgk/ESR-System-sub000/internal/format"
	"github.com/sandeepzgk/ESR-System-sub000/internal/reports"
	"github.com/sandeepzgk/ESR-System-sub000/internal/units"
	"github.com/sandeepzgk/ESR-System-sub000/pkg/models"
)

// BatchOptions bounds the batch operation
type BatchOptions struct {
	Workers  int
	MaxItems int
}

// CircuitHandler handles circuit evaluation requests
type CircuitHandler struct {
	engine  *calculator.Engine
	reports reports.Service
	batch   BatchOptions
}

// NewCircuitHandler creates a new circuit handler. reportSvc may be nil, in
// which case report export answers 503.
func NewCircuitHandler(engine *calculator.Engine, reportSvc reports.Service, batch BatchOptions) *CircuitHandler {
	return &CircuitHandler{
		engine:  engine,
		reports: reportSvc,
		batch:   batch,
	}
}

// ListUnits returns the unit catalogue
func (h *CircuitHandler) ListUnits(ctx context.Context, _ *struct{}) (*models.ListUnitsResponse, error) {
	resp := &models.ListUnitsResponse{}
	for _, pu := range units.Catalogue() {
		entry := models.ParameterUnitsBody{
			Parameter: pu.Parameter,
			SIUnit:    pu.SIUnit,
			Units:     make([]models.UnitBody, 0, len(pu.Units)),
		}
		for _, u := range pu.Units {
			entry.Units = append(entry.Units, models.UnitBody{
				Symbol:   u.Symbol,
				Factor:   u.Factor,
				RangeMin: u.Range.Min,
				RangeMax: u.Range.Max,
			})
		}
		resp.Body.Parameters = append(resp.Body.Parameters, entry)
	}
	return resp, nil
}

// Normalize converts a single quantity to SI units
func (h *CircuitHandler) Normalize(ctx context.Context, req *models.NormalizeRequest) (*models.NormalizeResponse, error) {
	value, err := units.Convert(req.Body.Parameter, models.Quantity{Value: req.Body.Value, Unit: req.Body.Unit})
	if errors.Is(err, units.ErrUnknownParameter) {
		return nil, huma.Error422UnprocessableEntity("Unknown parameter", err)
	}

	resp := &models.NormalizeResponse{}
	resp.Body.Value = models.Real(value)
	if err != nil {
		log.Warn().Err(err).Str("parameter", string(req.Body.Parameter)).Msg("Unit conversion fell back to raw value")
		resp.Body.Diagnostic = err.Error()
	}
	return resp, nil
}

// Validate returns the advisory warnings for a parameter set
func (h *CircuitHandler) Validate(ctx context.Context, req *models.ParameterSetRequest) (*models.ValidateResponse, error) {
	params, diagnostics, err := h.engine.Normalize(req.Body)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity("Invalid parameter set", err)
	}

	warnings := h.engine.Validate(params)
	resp := &models.ValidateResponse{}
	resp.Body.Parameters = *models.NewParametersBody(params)
	resp.Body.Diagnostics = nonNil(diagnostics)
	resp.Body.Warnings = warnings
	resp.Body.Valid = len(warnings) == 0
	return resp, nil
}

// Calculate runs the full evaluation pipeline
func (h *CircuitHandler) Calculate(ctx context.Context, req *models.ParameterSetRequest) (*models.CalculateResponse, error) {
	eval, err := h.engine.Evaluate(req.Body)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity("Invalid parameter set", err)
	}
	log.Info().
		Str("mode", string(eval.Result.Mode)).
		Str("regime", string(eval.Result.Regime)).
		Bool("safe", eval.Result.IsSafe).
		Int("warnings", len(eval.Warnings)).
		Msg("Circuit evaluated")

	return &models.CalculateResponse{Body: evaluationBody(eval)}, nil
}

// Sweep returns the frequency response series. Noise mode yields an empty
// series with an explanation rather than an error.
func (h *CircuitHandler) Sweep(ctx context.Context, req *models.ParameterSetRequest) (*models.SweepResponse, error) {
	params, _, err := h.engine.Normalize(req.Body)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity("Invalid parameter set", err)
	}
	return &models.SweepResponse{Body: models.NewSweepBody(h.engine.Sweep(params))}, nil
}

// Chart renders the frequency response as an HTML page
func (h *CircuitHandler) Chart(ctx context.Context, req *models.ParameterSetRequest) (*models.ChartResponse, error) {
	eval, err := h.engine.Evaluate(req.Body)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity("Invalid parameter set", err)
	}

	var buf bytes.Buffer
	if err := chart.Render(&buf, eval.Response, eval.Result); err != nil {
		return nil, huma.Error500InternalServerError("Failed to render chart", err)
	}
	return &models.ChartResponse{
		ContentType: "text/html; charset=utf-8",
		Body:        buf.Bytes(),
	}, nil
}

// Batch evaluates several independent parameter sets. Items that cannot be
// evaluated carry their error in place; the request itself succeeds.
func (h *CircuitHandler) Batch(ctx context.Context, req *models.BatchRequest) (*models.BatchResponse, error) {
	if n := len(req.Body.Items); n > h.batch.MaxItems {
		return nil, huma.Error422UnprocessableEntity(
			fmt.Sprintf("Batch of %d items exceeds the limit of %d", n, h.batch.MaxItems))
	}

	evals := h.engine.EvaluateBatch(ctx, req.Body.Items, h.batch.Workers)
	resp := &models.BatchResponse{}
	resp.Body.Results = make([]models.EvaluationBody, len(evals))
	for i, eval := range evals {
		resp.Body.Results[i] = evaluationBody(eval)
	}
	log.Info().Int("items", len(evals)).Msg("Batch evaluated")
	return resp, nil
}

// CreateReport exports the chart and evaluation to object storage
func (h *CircuitHandler) CreateReport(ctx context.Context, req *models.ParameterSetRequest) (*models.CreateReportResponse, error) {
	if h.reports == nil {
		return nil, huma.Error503ServiceUnavailable("Report export is not configured")
	}

	report, err := h.reports.Export(ctx, req.Body)
	if err != nil {
		if errors.Is(err, reports.ErrInvalidParameters) {
			return nil, huma.Error422UnprocessableEntity("Invalid parameter set", err)
		}
		log.Error().Err(err).Msg("Report export failed")
		return nil, huma.Error502BadGateway("Failed to export report. Please try again.", err)
	}

	return &models.CreateReportResponse{
		Body: models.ReportResponseBody{
			ID:            report.ID.String(),
			ChartURL:      report.ChartURL,
			PlotURL:       report.PlotURL,
			EvaluationURL: report.EvaluationURL,
			ExpiresIn:     int(report.ExpiresIn.Seconds()),
		},
	}, nil
}

func evaluationBody(eval models.Evaluation) models.EvaluationBody {
	body := models.NewEvaluationBody(eval)
	if eval.Parameters != nil {
		body.Display = display(eval)
	}
	return body
}

// display renders the headline values for people
func display(eval models.Evaluation) map[string]string {
	r := eval.Result
	out := map[string]string{
		"resistive_current":     format.SI(r.ResistiveCurrent, "A"),
		"capacitive_current":    format.SI(r.CapacitiveCurrent, "A"),
		"total_current":         format.SI(r.TotalCurrent, "A"),
		"resistive_percentage":  format.Percent(r.ResistivePercentage),
		"capacitive_percentage": format.Percent(r.CapacitivePercentage),
	}
	if s := r.Sine; s != nil {
		out["impedance"] = format.SI(s.Impedance, "Ω")
		out["phase_angle"] = format.Degrees(s.PhaseAngle)
	}
	if eval.Response.TransitionFrequency > 0 {
		out["transition_frequency"] = format.Frequency(eval.Response.TransitionFrequency)
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
