// Package render draws property curves as plain-text tables.
package render

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/couchcryptid/cryopcm-lab/internal/domain"
)

// barWidth is the width of the longest bar.
const barWidth = 40

// Table writes each curve as a temperature/value table with a bar per row.
type Table struct {
	w    io.Writer
	bars bool
}

// NewTable creates a Table renderer writing to w. bars adds a horizontal bar
// column scaled to the largest magnitude in the curve.
func NewTable(w io.Writer, bars bool) *Table {
	return &Table{w: w, bars: bars}
}

// DrawPropertyChart implements lab.ChartRenderer.
func (t *Table) DrawPropertyChart(propertyKey string, defs []domain.PropertyDefinition, selectedPcmID string) {
	t.Draw(domain.Evaluate(defs, selectedPcmID, propertyKey))
}

// Draw writes one evaluated curve. Non-ready outcomes print their message.
func (t *Table) Draw(c domain.Curve) {
	if c.Outcome != domain.CurveReady {
		fmt.Fprintf(t.w, "%s: %s\n", c.PropertyType, c.Message())
		return
	}

	title := c.PcmID
	if c.Definition != nil && c.Definition.Name != "" {
		title = c.PcmID + " (" + c.Definition.Name + ")"
	}
	fmt.Fprintf(t.w, "%s of %s\n", c.PropertyType, title)

	scale := maxMagnitude(c.Points)
	tw := tabwriter.NewWriter(t.w, 0, 0, 2, ' ', tabwriter.AlignRight)
	if t.bars {
		fmt.Fprintln(tw, "T (K)\tvalue\t\t")
	} else {
		fmt.Fprintln(tw, "T (K)\tvalue\t")
	}
	for _, p := range c.Points {
		if t.bars {
			fmt.Fprintf(tw, "%d\t%s\t%s\t\n", p.TemperatureK, formatValue(p.Value), bar(p.Value, scale))
		} else {
			fmt.Fprintf(tw, "%d\t%s\t\n", p.TemperatureK, formatValue(p.Value))
		}
	}
	_ = tw.Flush()
}

func formatValue(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "–"
	}
	return fmt.Sprintf("%.6g", v)
}

func maxMagnitude(points []domain.CurvePoint) float64 {
	var m float64
	for _, p := range points {
		if a := math.Abs(p.Value); a > m && !math.IsInf(a, 0) {
			m = a
		}
	}
	return m
}

// bar renders |v| relative to scale; negative values use '-'.
func bar(v, scale float64) string {
	if scale == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	n := int(math.Round(math.Abs(v) / scale * barWidth))
	ch := "#"
	if v < 0 {
		ch = "-"
	}
	return strings.Repeat(ch, n)
}
