package domain

import (
	"errors"
	"fmt"
	"math"
)

// Sampling limits. A definition outside them is reported as unusable rather
// than sampled.
const (
	// MaxBoundK is the largest |round(tmin)| or |round(tmax)| accepted.
	MaxBoundK = 1e9
	// MaxCurvePoints is the largest number of samples in one curve.
	MaxCurvePoints = 100_000
)

var (
	// ErrMissingCoefficient is returned by Validate when a, b, c, tmin or tmax
	// is missing or not finite.
	ErrMissingCoefficient = errors.New("coefficient or bound is not a finite number")

	// ErrEmptyDomain is returned by Validate when tmin >= tmax.
	ErrEmptyDomain = errors.New("tmin must be less than tmax")

	// ErrBoundOutOfRange is returned by Validate when a rounded bound
	// exceeds MaxBoundK in magnitude.
	ErrBoundOutOfRange = errors.New("temperature bound out of range")

	// ErrTooManyPoints is returned by Validate when the domain would sample
	// more than MaxCurvePoints temperatures.
	ErrTooManyPoints = errors.New("temperature domain too wide")
)

// PropertyDefinition models one property of one PCM as
// value(T) = A·T² + B·T + C over [Tmin, Tmax] kelvin.
type PropertyDefinition struct {
	PcmID        string  `json:"pcmId"`
	Name         string  `json:"name"`
	PropertyType string  `json:"propertyType"`
	A            Measure `json:"a"`
	B            Measure `json:"b"`
	C            Measure `json:"c"`
	Tmin         Measure `json:"tmin"`
	Tmax         Measure `json:"tmax"`
}

// Validate checks that the definition can be sampled. Unusable definitions
// stay in the catalog; the evaluator reports them instead of drawing them.
func (d PropertyDefinition) Validate() error {
	fields := []struct {
		name string
		m    Measure
	}{
		{"a", d.A}, {"b", d.B}, {"c", d.C}, {"tmin", d.Tmin}, {"tmax", d.Tmax},
	}
	for _, f := range fields {
		if !f.m.IsFinite() {
			return fmt.Errorf("%s: %w", f.name, ErrMissingCoefficient)
		}
	}
	lo, _ := d.Tmin.Float()
	hi, _ := d.Tmax.Float()
	if lo >= hi {
		return fmt.Errorf("tmin=%g tmax=%g: %w", lo, hi, ErrEmptyDomain)
	}
	start, end := roundK(lo), roundK(hi)
	if math.Abs(start) > MaxBoundK || math.Abs(end) > MaxBoundK {
		return fmt.Errorf("tmin=%g tmax=%g exceed ±%g K: %w", lo, hi, MaxBoundK, ErrBoundOutOfRange)
	}
	if n := end - start + 1; n > MaxCurvePoints {
		return fmt.Errorf("%.0f points exceed %d: %w", n, MaxCurvePoints, ErrTooManyPoints)
	}
	return nil
}

// roundK rounds half-integers toward +∞ (2.5 → 3, -2.5 → -2).
func roundK(x float64) float64 {
	return math.Floor(x + 0.5)
}

// ValueAt evaluates the polynomial at t. The caller must have validated d.
func (d PropertyDefinition) ValueAt(t float64) float64 {
	a, _ := d.A.Float()
	b, _ := d.B.Float()
	c, _ := d.C.Float()
	return a*t*t + b*t + c
}
