package reports

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sandeepzgk/ESR-System-sub000/internal/calculator"
	"github.com/sandeepzgk/ESR-System-sub000/internal/validation"
	"github.com/sandeepzgk/ESR-System-sub000/pkg/models"
)

// MockObjectStore implements storage.ObjectStore for testing
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) PutObject(ctx context.Context, key string, body []byte, contentType string) error {
	args := m.Called(ctx, key, body, contentType)
	return args.Error(0)
}

func (m *MockObjectStore) DeleteObject(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockObjectStore) GenerateDownloadURL(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStore) EnsureBucket(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockObjectStore) URLExpiry() time.Duration {
	args := m.Called()
	return args.Get(0).(time.Duration)
}

func rawSine() models.RawParameters {
	return models.RawParameters{
		SignalType:  models.SignalSine,
		Voltage:     models.Quantity{Value: 1, Unit: "V"},
		Resistance:  models.Quantity{Value: 50, Unit: "kΩ"},
		Capacitance: models.Quantity{Value: 50, Unit: "nF"},
		Frequency:   &models.Quantity{Value: 50, Unit: "Hz"},
	}
}

func isKey(suffix string) any {
	return mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "reports/") && strings.HasSuffix(key, suffix)
	})
}

func TestExport(t *testing.T) {
	store := new(MockObjectStore)
	store.On("URLExpiry").Return(time.Hour)
	store.On("PutObject", mock.Anything, isKey("/chart.html"),
		mock.MatchedBy(func(body []byte) bool { return strings.Contains(string(body), "<html") }),
		chartContentType).Return(nil)
	store.On("PutObject", mock.Anything, isKey("/evaluation.json"),
		mock.MatchedBy(func(body []byte) bool {
			var eval models.EvaluationBody
			return json.Unmarshal(body, &eval) == nil && eval.Result != nil && eval.Result.Regime == models.RegimeResistive
		}),
		evaluationContentType).Return(nil)
	store.On("PutObject", mock.Anything, isKey("/response.svg"),
		mock.MatchedBy(func(body []byte) bool { return strings.Contains(string(body), "<svg") }),
		plotContentType).Return(nil)
	store.On("GenerateDownloadURL", mock.Anything, isKey("/chart.html")).Return("https://example.test/chart", nil)
	store.On("GenerateDownloadURL", mock.Anything, isKey("/response.svg")).Return("https://example.test/plot", nil)
	store.On("GenerateDownloadURL", mock.Anything, isKey("/evaluation.json")).Return("https://example.test/evaluation", nil)

	svc := NewService(store, calculator.NewEngine(validation.DefaultLimits()))
	report, err := svc.Export(context.Background(), rawSine())
	require.NoError(t, err)

	assert.Equal(t, "reports/"+report.ID.String()+"/chart.html", report.ChartKey)
	assert.Equal(t, "https://example.test/chart", report.ChartURL)
	assert.Equal(t, "https://example.test/plot", report.PlotURL)
	assert.Equal(t, "https://example.test/evaluation", report.EvaluationURL)
	assert.Equal(t, time.Hour, report.ExpiresIn)
	store.AssertExpectations(t)
}

func TestExport_NoiseModeSkipsPlot(t *testing.T) {
	store := new(MockObjectStore)
	store.On("URLExpiry").Return(time.Hour)
	store.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	store.On("GenerateDownloadURL", mock.Anything, mock.Anything).Return("https://example.test/x", nil)

	raw := rawSine()
	raw.SignalType = models.SignalNoise
	raw.Frequency = nil
	raw.NoiseMinFrequency = &models.Quantity{Value: 20, Unit: "Hz"}
	raw.NoiseMaxFrequency = &models.Quantity{Value: 1990, Unit: "Hz"}

	svc := NewService(store, calculator.NewEngine(validation.DefaultLimits()))
	report, err := svc.Export(context.Background(), raw)
	require.NoError(t, err)

	assert.Empty(t, report.PlotKey)
	assert.Empty(t, report.PlotURL)
	store.AssertNumberOfCalls(t, "PutObject", 2)
	store.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, plotContentType)
}

func TestExport_InvalidParameters(t *testing.T) {
	store := new(MockObjectStore)
	raw := rawSine()
	raw.SignalType = "triangle"

	svc := NewService(store, calculator.NewEngine(validation.DefaultLimits()))
	_, err := svc.Export(context.Background(), raw)
	require.ErrorIs(t, err, ErrInvalidParameters)
	store.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExport_RemovesPartialReport(t *testing.T) {
	store := new(MockObjectStore)
	store.On("URLExpiry").Return(time.Hour)
	store.On("PutObject", mock.Anything, isKey("/chart.html"), mock.Anything, chartContentType).Return(nil)
	store.On("PutObject", mock.Anything, isKey("/response.svg"), mock.Anything, plotContentType).Return(nil)
	store.On("PutObject", mock.Anything, isKey("/evaluation.json"), mock.Anything, evaluationContentType).
		Return(errors.New("connection reset"))
	store.On("DeleteObject", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(store, calculator.NewEngine(validation.DefaultLimits()))
	_, err := svc.Export(context.Background(), rawSine())
	require.Error(t, err)
	store.AssertCalled(t, "DeleteObject", mock.Anything, isKey("/chart.html"))
	store.AssertCalled(t, "DeleteObject", mock.Anything, isKey("/response.svg"))
	store.AssertNumberOfCalls(t, "DeleteObject", 2)
	store.AssertNotCalled(t, "GenerateDownloadURL", mock.Anything, mock.Anything)
}

func TestExport_RemovesReportWhenPresignFails(t *testing.T) {
	store := new(MockObjectStore)
	store.On("URLExpiry").Return(time.Hour)
	store.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	store.On("GenerateDownloadURL", mock.Anything, isKey("/chart.html")).Return("https://example.test/chart", nil)
	store.On("GenerateDownloadURL", mock.Anything, isKey("/response.svg")).Return("", errors.New("presign failed"))
	store.On("DeleteObject", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(store, calculator.NewEngine(validation.DefaultLimits()))
	report, err := svc.Export(context.Background(), rawSine())
	require.Error(t, err)
	assert.Nil(t, report)

	store.AssertNumberOfCalls(t, "PutObject", 3)
	store.AssertNumberOfCalls(t, "DeleteObject", 3)
	for _, suffix := range []string{"/chart.html", "/response.svg", "/evaluation.json"} {
		store.AssertCalled(t, "DeleteObject", mock.Anything, isKey(suffix))
	}
}
