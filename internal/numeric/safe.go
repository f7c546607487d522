// Package numeric holds the saturating arithmetic shared by the sine and
// noise solvers. Each helper resolves a degenerate operand to 0 instead of
// propagating NaN or Inf into a current value.
package numeric

import "math"

// Finite reports whether every value is neither NaN nor infinite
func Finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Divide returns num/den, or 0 when den is zero or either operand is not finite
func Divide(num, den float64) float64 {
	if den == 0 || !Finite(num, den) {
		return 0
	}
	q := num / den
	if !Finite(q) {
		return 0
	}
	return q
}

// PositiveProduct multiplies the factors, returning 0 if any factor is
// non-positive or not finite
func PositiveProduct(factors ...float64) float64 {
	p := 1.0
	for _, f := range factors {
		if !(f > 0) || math.IsInf(f, 0) {
			return 0
		}
		p *= f
	}
	if !Finite(p) {
		return 0
	}
	return p
}

// Sqrt returns sqrt(max(0, x)). A negative radicand from floating-point
// underflow clamps to 0, as does a non-finite one.
func Sqrt(x float64) float64 {
	if !Finite(x) {
		return 0
	}
	return math.Sqrt(math.Max(0, x))
}

// Hypot returns sqrt(a²+b²), or 0 when either operand is not finite
func Hypot(a, b float64) float64 {
	if !Finite(a, b) {
		return 0
	}
	h := math.Hypot(a, b)
	if !Finite(h) {
		return 0
	}
	return h
}

// Percent returns 100*part/total, or 0 when total is zero or not finite
func Percent(part, total float64) float64 {
	return 100 * Divide(part, total)
}

// Clamp limits x to [lo, hi]
func Clamp(x, lo, hi float64) float64 {
	return math.Min(math.Max(x, lo), hi)
}
