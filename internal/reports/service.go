// Package reports exports an evaluation as downloadable artifacts: the
// response chart and a JSON snapshot. Nothing exported is read back.
package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sandeepzgk/ESR-System-sub000/internal/calculator"
	"github.com/sandeepzgk/ESR-System-sub000/internal/chart"
	"github.com/sandeepzgk/ESR-System-sub000/internal/storage"
	"github.com/sandeepzgk/ESR-System-sub000/pkg/models"
)

// ErrInvalidParameters is returned when the parameter set cannot be evaluated
var ErrInvalidParameters = errors.New("parameter set cannot be evaluated")

const (
	chartContentType      = "text/html; charset=utf-8"
	plotContentType       = "image/svg+xml"
	evaluationContentType = "application/json"
)

// Report locates the uploaded artifacts of one export. The plot is only
// present when the response series has drawable points.
type Report struct {
	ID            uuid.UUID
	ChartKey      string
	PlotKey       string
	EvaluationKey string
	ChartURL      string
	PlotURL       string
	EvaluationURL string
	ExpiresIn     time.Duration
}

type Service interface {
	Export(ctx context.Context, raw models.RawParameters) (*Report, error)
}

type reportService struct {
	store  storage.ObjectStore
	engine *calculator.Engine
}

func NewService(store storage.ObjectStore, engine *calculator.Engine) Service {
	return &reportService{
		store:  store,
		engine: engine,
	}
}

// Export evaluates raw, uploads chart.html, response.svg and evaluation.json
// under reports/<id>/ and returns pre-signed download URLs
func (s *reportService) Export(ctx context.Context, raw models.RawParameters) (*Report, error) {
	eval, err := s.engine.Evaluate(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameters, err)
	}

	var page bytes.Buffer
	if err := chart.Render(&page, eval.Response, eval.Result); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}

	var plot bytes.Buffer
	hasPlot := true
	if err := chart.RenderSVG(&plot, eval.Response); err != nil {
		if !errors.Is(err, chart.ErrNoData) {
			return nil, fmt.Errorf("failed to render plot: %w", err)
		}
		hasPlot = false
	}

	snapshot, err := json.MarshalIndent(models.NewEvaluationBody(eval), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode evaluation: %w", err)
	}

	id := uuid.New()
	report := &Report{
		ID:            id,
		ChartKey:      fmt.Sprintf("reports/%s/chart.html", id),
		EvaluationKey: fmt.Sprintf("reports/%s/evaluation.json", id),
		ExpiresIn:     s.store.URLExpiry(),
	}
	if hasPlot {
		report.PlotKey = fmt.Sprintf("reports/%s/response.svg", id)
	}
	log.Info().Str("reportID", id.String()).Str("mode", string(eval.Result.Mode)).Msg("Exporting report")

	artifacts := []struct {
		key         string
		body        []byte
		contentType string
		url         *string
	}{
		{report.ChartKey, page.Bytes(), chartContentType, &report.ChartURL},
		{report.PlotKey, plot.Bytes(), plotContentType, &report.PlotURL},
		{report.EvaluationKey, snapshot, evaluationContentType, &report.EvaluationURL},
	}

	var uploaded []string
	for _, a := range artifacts {
		if a.key == "" {
			continue
		}
		if err := s.store.PutObject(ctx, a.key, a.body, a.contentType); err != nil {
			// a report is either complete or absent
			s.remove(ctx, uploaded)
			return nil, err
		}
		uploaded = append(uploaded, a.key)
	}

	for _, a := range artifacts {
		if a.key == "" {
			continue
		}
		if *a.url, err = s.store.GenerateDownloadURL(ctx, a.key); err != nil {
			s.remove(ctx, uploaded)
			return nil, err
		}
	}

	log.Info().Str("reportID", id.String()).Msg("Report exported")
	return report, nil
}

func (s *reportService) remove(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := s.store.DeleteObject(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Failed to remove partial report")
		}
	}
}
