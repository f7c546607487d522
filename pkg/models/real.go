package models

import (
	"fmt"
	"math"
	"strconv"

	"github.com/danielgtaylor/huma/v2"
)

// Real is a float64 that survives JSON encoding when it is NaN or infinite.
// Non-finite values are written as the strings "NaN", "Infinity" and "-Infinity".
type Real float64

// Schema documents Real in the OpenAPI output as a number or one of the
// non-finite markers
func (Real) Schema(r huma.Registry) *huma.Schema {
	return &huma.Schema{
		OneOf: []*huma.Schema{
			{Type: huma.TypeNumber},
			{Type: huma.TypeString, Enum: []any{"NaN", "Infinity", "-Infinity"}},
		},
	}
}

func (r Real) MarshalJSON() ([]byte, error) {
	f := float64(r)
	switch {
	case math.IsNaN(f):
		return []byte(`"NaN"`), nil
	case math.IsInf(f, 1):
		return []byte(`"Infinity"`), nil
	case math.IsInf(f, -1):
		return []byte(`"-Infinity"`), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

func (r *Real) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"NaN"`:
		*r = Real(math.NaN())
		return nil
	case `"Infinity"`:
		*r = Real(math.Inf(1))
		return nil
	case `"-Infinity"`:
		*r = Real(math.Inf(-1))
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid real %s: %w", data, err)
	}
	*r = Real(f)
	return nil
}

// RealPtr converts an optional value, mapping NaN (absent) to nil
func RealPtr(f float64) *Real {
	if math.IsNaN(f) {
		return nil
	}
	r := Real(f)
	return &r
}
