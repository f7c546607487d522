package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/sandeepzgk/ESR-System-sub000/internal/api/handlers"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(api huma.API, circuitHandler *handlers.CircuitHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "listUnits",
		Method:      http.MethodGet,
		Path:        "/api/units",
		Summary:     "List units",
		Description: "Returns the accepted units, SI factors and slider ranges per parameter",
		Tags:        []string{"Units"},
	}, circuitHandler.ListUnits)

	huma.Register(api, huma.Operation{
		OperationID: "normalizeQuantity",
		Method:      http.MethodPost,
		Path:        "/api/normalize",
		Summary:     "Normalize a quantity",
		Description: "Converts a value in a display unit to SI. Unknown units fall back to the raw value with a diagnostic.",
		Tags:        []string{"Units"},
	}, circuitHandler.Normalize)

	huma.Register(api, huma.Operation{
		OperationID: "validateParameters",
		Method:      http.MethodPost,
		Path:        "/api/validate",
		Summary:     "Validate a parameter set",
		Description: "Returns advisory warnings. Warnings never block calculation.",
		Tags:        []string{"Circuit"},
	}, circuitHandler.Validate)

	huma.Register(api, huma.Operation{
		OperationID: "calculateCircuit",
		Method:      http.MethodPost,
		Path:        "/api/calculate",
		Summary:     "Evaluate a circuit",
		Description: "Normalizes, validates and solves the parameter set and, in sine mode, samples the frequency response",
		Tags:        []string{"Circuit"},
	}, circuitHandler.Calculate)

	huma.Register(api, huma.Operation{
		OperationID: "sweepFrequency",
		Method:      http.MethodPost,
		Path:        "/api/sweep",
		Summary:     "Frequency response",
		Description: "Returns the log-spaced frequency response around the operating frequency",
		Tags:        []string{"Circuit"},
	}, circuitHandler.Sweep)

	huma.Register(api, huma.Operation{
		OperationID: "renderChart",
		Method:      http.MethodPost,
		Path:        "/api/chart",
		Summary:     "Render response chart",
		Description: "Returns an HTML page charting impedance, current and phase against frequency",
		Tags:        []string{"Circuit"},
	}, circuitHandler.Chart)

	huma.Register(api, huma.Operation{
		OperationID: "evaluateBatch",
		Method:      http.MethodPost,
		Path:        "/api/batch",
		Summary:     "Evaluate several circuits",
		Description: "Evaluates independent parameter sets concurrently. Results keep request order.",
		Tags:        []string{"Circuit"},
	}, circuitHandler.Batch)

	huma.Register(api, huma.Operation{
		OperationID: "createReport",
		Method:      http.MethodPost,
		Path:        "/api/reports",
		Summary:     "Export a report",
		Description: "Uploads the chart and evaluation snapshot and returns download URLs",
		Tags:        []string{"Reports"},
	}, circuitHandler.CreateReport)
}
