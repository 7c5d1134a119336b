package render

import (
	"bytes"
	"io"

	"github.com/couchcryptid/cryopcm-lab/internal/domain"
)

// Frame is a Table that keeps only its most recent chart, the way a canvas is
// redrawn in place. WriteTo emits that chart once the caller is ready for it.
type Frame struct {
	buf   bytes.Buffer
	table *Table
}

// NewFrame creates an empty Frame. bars is passed to the underlying Table.
func NewFrame(bars bool) *Frame {
	f := &Frame{}
	f.table = NewTable(&f.buf, bars)
	return f
}

// DrawPropertyChart implements lab.ChartRenderer, replacing any earlier chart.
func (f *Frame) DrawPropertyChart(propertyKey string, defs []domain.PropertyDefinition, selectedPcmID string) {
	f.buf.Reset()
	f.table.DrawPropertyChart(propertyKey, defs, selectedPcmID)
}

// WriteTo writes the current chart to w and clears the frame.
func (f *Frame) WriteTo(w io.Writer) (int64, error) {
	return f.buf.WriteTo(w)
}
