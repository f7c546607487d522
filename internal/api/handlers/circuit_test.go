package handlers

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sandeepzgk/ESR-System-sub000/internal/calculator"
	"github.com/sandeepzgk/ESR-System-sub000/internal/reports"
	"github.com/sandeepzgk/ESR-System-sub000/internal/validation"
	"github.com/sandeepzgk/ESR-System-sub000/pkg/models"
)

// MockReportService implements reports.Service for testing
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Export(ctx context.Context, raw models.RawParameters) (*reports.Report, error) {
	args := m.Called(ctx, raw)
	report, _ := args.Get(0).(*reports.Report)
	return report, args.Error(1)
}

func newHandler(reportSvc reports.Service) *CircuitHandler {
	return NewCircuitHandler(calculator.NewEngine(validation.DefaultLimits()), reportSvc, BatchOptions{Workers: 2, MaxItems: 3})
}

func sineRequest() *models.ParameterSetRequest {
	return &models.ParameterSetRequest{
		Body: models.RawParameters{
			SignalType:  models.SignalSine,
			Voltage:     models.Quantity{Value: 1, Unit: "V"},
			Resistance:  models.Quantity{Value: 50, Unit: "kΩ"},
			Capacitance: models.Quantity{Value: 50, Unit: "nF"},
			Frequency:   &models.Quantity{Value: 50, Unit: "Hz"},
		},
	}
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var se huma.StatusError
	require.True(t, errors.As(err, &se), "expected a huma status error, got %v", err)
	return se.GetStatus()
}

func TestCalculate(t *testing.T) {
	h := newHandler(nil)

	resp, err := h.Calculate(context.Background(), sineRequest())
	require.NoError(t, err)

	body := resp.Body
	require.NotNil(t, body.Result)
	assert.Equal(t, models.RegimeResistive, body.Result.Regime)
	assert.InDelta(t, 7.0711e-6, float64(body.Result.ResistiveCurrent), 1e-9)
	assert.Equal(t, "7.071 µA", body.Display["resistive_current"])
	assert.Equal(t, "63.662 Hz", body.Display["transition_frequency"])
	assert.Equal(t, calculator.SafetyDisclaimer, body.Disclaimer)
	require.NotNil(t, body.Response)
	assert.Equal(t, 50, body.Response.OperatingIndex)
}

func TestCalculate_UnknownSignalType(t *testing.T) {
	h := newHandler(nil)
	req := sineRequest()
	req.Body.SignalType = "square"

	_, err := h.Calculate(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, statusOf(t, err))
}

func TestValidate(t *testing.T) {
	h := newHandler(nil)
	req := sineRequest()
	req.Body.Frequency = nil

	resp, err := h.Validate(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, resp.Body.Valid)
	assert.NotEmpty(t, resp.Body.Warnings)
	assert.Nil(t, resp.Body.Parameters.Frequency)
	assert.NotNil(t, resp.Body.Diagnostics)
}

func TestNormalize(t *testing.T) {
	h := newHandler(nil)

	req := &models.NormalizeRequest{}
	req.Body.Parameter = models.ParamCapacitance
	req.Body.Value = 50
	req.Body.Unit = "nF"
	resp, err := h.Normalize(context.Background(), req)
	require.NoError(t, err)
	assert.InDelta(t, 50e-9, float64(resp.Body.Value), 1e-20)
	assert.Empty(t, resp.Body.Diagnostic)

	req.Body.Unit = "gallon"
	resp, err = h.Normalize(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, models.Real(50), resp.Body.Value)
	assert.Contains(t, resp.Body.Diagnostic, "gallon")
}

func TestSweep_NoiseMode(t *testing.T) {
	h := newHandler(nil)
	req := sineRequest()
	req.Body.SignalType = models.SignalNoise
	req.Body.NoiseMinFrequency = &models.Quantity{Value: 20, Unit: "Hz"}
	req.Body.NoiseMaxFrequency = &models.Quantity{Value: 1990, Unit: "Hz"}

	resp, err := h.Sweep(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, resp.Body.Points)
	assert.Equal(t, -1, resp.Body.OperatingIndex)
	assert.Equal(t, calculator.ErrSweepNoiseMode, resp.Body.Error)
}

func TestChart(t *testing.T) {
	h := newHandler(nil)

	resp, err := h.Chart(context.Background(), sineRequest())
	require.NoError(t, err)
	assert.Equal(t, "text/html; charset=utf-8", resp.ContentType)
	assert.Contains(t, string(resp.Body), "Impedance")
}

func TestBatch(t *testing.T) {
	h := newHandler(nil)

	req := &models.BatchRequest{}
	bad := sineRequest().Body
	bad.SignalType = "square"
	req.Body.Items = []models.RawParameters{sineRequest().Body, bad}

	resp, err := h.Batch(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Body.Results, 2)
	assert.Empty(t, resp.Body.Results[0].Error)
	assert.NotEmpty(t, resp.Body.Results[0].Display)
	assert.NotEmpty(t, resp.Body.Results[1].Error)
	assert.Nil(t, resp.Body.Results[1].Result)

	req.Body.Items = make([]models.RawParameters, 4)
	_, err = h.Batch(context.Background(), req)
	assert.Equal(t, http.StatusUnprocessableEntity, statusOf(t, err))
}

func TestCreateReport(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name       string
		mockSetup  func(*MockReportService)
		disabled   bool
		wantStatus int
	}{
		{
			name: "exported",
			mockSetup: func(m *MockReportService) {
				m.On("Export", mock.Anything, mock.Anything).Return(&reports.Report{
					ID:            id,
					ChartURL:      "https://example.test/chart",
					PlotURL:       "https://example.test/plot",
					EvaluationURL: "https://example.test/evaluation",
					ExpiresIn:     2 * time.Hour,
				}, nil)
			},
		},
		{
			name:       "export disabled",
			disabled:   true,
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name: "invalid parameters",
			mockSetup: func(m *MockReportService) {
				m.On("Export", mock.Anything, mock.Anything).
					Return(nil, fmt.Errorf("%w: unknown signal type", reports.ErrInvalidParameters))
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "storage failure",
			mockSetup: func(m *MockReportService) {
				m.On("Export", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))
			},
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockReportService)
			if tt.mockSetup != nil {
				tt.mockSetup(svc)
			}
			h := newHandler(svc)
			if tt.disabled {
				h = newHandler(nil)
			}

			resp, err := h.CreateReport(context.Background(), sineRequest())
			if tt.wantStatus != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantStatus, statusOf(t, err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, id.String(), resp.Body.ID)
			assert.Equal(t, "https://example.test/plot", resp.Body.PlotURL)
			assert.Equal(t, 7200, resp.Body.ExpiresIn)
			svc.AssertExpectations(t)
		})
	}
}

func TestDisplay_NonFinite(t *testing.T) {
	eval := models.Evaluation{
		Result: models.CircuitResult{
			TotalCurrent: math.NaN(),
			Sine:         &models.SineDetails{Impedance: math.Inf(1)},
		},
	}
	out := display(eval)
	assert.Equal(t, "--", out["total_current"])
	assert.Equal(t, "--", out["impedance"])
	_, ok := out["transition_frequency"]
	assert.False(t, ok)
}
