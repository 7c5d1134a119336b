package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// CurveOutcome tells a renderer what to draw for a curve request.
type CurveOutcome int

const (
	CurveReady CurveOutcome = iota
	CurveNothingSelected
	CurveNoPropertyData
	CurveNoMatch
	CurveInvalidDefinition
)

var curveOutcomeNames = map[CurveOutcome]string{
	CurveReady:             "ready",
	CurveNothingSelected:   "nothing_selected",
	CurveNoPropertyData:    "no_property_data",
	CurveNoMatch:           "no_match",
	CurveInvalidDefinition: "invalid_definition",
}

func (o CurveOutcome) String() string {
	if s, ok := curveOutcomeNames[o]; ok {
		return s
	}
	return fmt.Sprintf("CurveOutcome(%d)", int(o))
}

// MarshalText implements encoding.TextMarshaler.
func (o CurveOutcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// CurvePoint is one sample of a property curve.
type CurvePoint struct {
	TemperatureK int     `json:"temperatureK"`
	Value        float64 `json:"value"`
}

// MarshalJSON encodes non-finite values as null; a quadratic with huge
// coefficients can overflow.
func (p CurvePoint) MarshalJSON() ([]byte, error) {
	var v any = p.Value
	if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
		v = nil
	}
	return json.Marshal(struct {
		TemperatureK int `json:"temperatureK"`
		Value        any `json:"value"`
	}{p.TemperatureK, v})
}

// Curve is the result of evaluating one property for one PCM. Points is only
// populated when Outcome is CurveReady; the diagnostic fields are only
// populated for the failure outcomes that need them.
type Curve struct {
	Outcome      CurveOutcome        `json:"outcome"`
	PcmID        string              `json:"pcmId,omitempty"`
	PropertyType string              `json:"propertyType"`
	Definition   *PropertyDefinition `json:"definition,omitempty"`
	Points       []CurvePoint        `json:"points"`

	KnownPcmIDs        []string `json:"knownPcmIds,omitempty"`
	KnownPropertyTypes []string `json:"knownPropertyTypes,omitempty"`
	Reason             string   `json:"reason,omitempty"`
}

// Message is a one-line explanation suitable for the chart area.
func (c Curve) Message() string {
	switch c.Outcome {
	case CurveReady:
		return fmt.Sprintf("%d points for %s (%s).", len(c.Points), c.PcmID, c.PropertyType)
	case CurveNothingSelected:
		return "No PCM selected."
	case CurveNoPropertyData:
		return "No property data loaded."
	case CurveNoMatch:
		return fmt.Sprintf("No %q definition for %s. Known PCM ids: %s. Known property types: %s.",
			c.PropertyType, c.PcmID, joinOrNone(c.KnownPcmIDs), joinOrNone(c.KnownPropertyTypes))
	case CurveInvalidDefinition:
		return fmt.Sprintf("Invalid %q definition for %s: %s.", c.PropertyType, c.PcmID, c.Reason)
	default:
		return "No chart data available."
	}
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

// Evaluate samples the (pcmID, propertyType) definition at every integer
// kelvin between its rounded bounds. The first matching definition in defs
// wins. It never fails: every unusable request maps to a CurveOutcome.
func Evaluate(defs []PropertyDefinition, pcmID, propertyType string) Curve {
	curve := Curve{PcmID: pcmID, PropertyType: propertyType}

	if pcmID == "" {
		curve.Outcome = CurveNothingSelected
		return curve
	}
	if len(defs) == 0 {
		curve.Outcome = CurveNoPropertyData
		return curve
	}

	idx := -1
	for i := range defs {
		if defs[i].PcmID == pcmID && defs[i].PropertyType == propertyType {
			idx = i
			break
		}
	}
	if idx < 0 {
		curve.Outcome = CurveNoMatch
		curve.KnownPcmIDs, curve.KnownPropertyTypes = DistinctKeys(defs)
		return curve
	}

	def := defs[idx]
	curve.Definition = &def
	if err := def.Validate(); err != nil {
		curve.Outcome = CurveInvalidDefinition
		curve.Reason = err.Error()
		return curve
	}

	curve.Outcome = CurveReady
	curve.Points = Sample(def)
	return curve
}

// Sample evaluates def from round(tmin) to round(tmax) inclusive in steps of
// one kelvin, rounding halves toward +∞. An unusable definition yields nil.
func Sample(def PropertyDefinition) []CurvePoint {
	if def.Validate() != nil {
		return nil
	}
	lo, _ := def.Tmin.Float()
	hi, _ := def.Tmax.Float()
	start := int(roundK(lo))
	end := int(roundK(hi))

	points := make([]CurvePoint, 0, end-start+1)
	for t := start; t <= end; t++ {
		points = append(points, CurvePoint{TemperatureK: t, Value: def.ValueAt(float64(t))})
	}
	return points
}

// DistinctKeys returns the distinct PCM ids and property types in defs, each
// in first-seen order.
func DistinctKeys(defs []PropertyDefinition) (pcmIDs, propertyTypes []string) {
	seenIDs := make(map[string]struct{})
	seenTypes := make(map[string]struct{})
	for _, d := range defs {
		if _, ok := seenIDs[d.PcmID]; !ok {
			seenIDs[d.PcmID] = struct{}{}
			pcmIDs = append(pcmIDs, d.PcmID)
		}
		if _, ok := seenTypes[d.PropertyType]; !ok {
			seenTypes[d.PropertyType] = struct{}{}
			propertyTypes = append(propertyTypes, d.PropertyType)
		}
	}
	return pcmIDs, propertyTypes
}
