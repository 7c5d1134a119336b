package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/couchcryptid/cryopcm-lab/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func squareDefs() []domain.PropertyDefinition {
	return []domain.PropertyDefinition{{
		PcmID:        "PCM-001",
		Name:         "Dummy A",
		PropertyType: "solid-specific-heat",
		A:            domain.Known(1),
		B:            domain.Known(0),
		C:            domain.Known(0),
		Tmin:         domain.Known(2),
		Tmax:         domain.Known(4),
	}}
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func TestTable_DrawsReadyCurve(t *testing.T) {
	var buf bytes.Buffer
	NewTable(&buf, false).DrawPropertyChart("solid-specific-heat", squareDefs(), "PCM-001")

	got := lines(buf.String())
	require.Len(t, got, 5)
	assert.Equal(t, "solid-specific-heat of PCM-001 (Dummy A)", got[0])
	assert.Equal(t, []string{"T", "(K)", "value"}, strings.Fields(got[1]))
	assert.Equal(t, []string{"2", "4"}, strings.Fields(got[2]))
	assert.Equal(t, []string{"3", "9"}, strings.Fields(got[3]))
	assert.Equal(t, []string{"4", "16"}, strings.Fields(got[4]))
}

func TestTable_Bars(t *testing.T) {
	var buf bytes.Buffer
	NewTable(&buf, true).DrawPropertyChart("solid-specific-heat", squareDefs(), "PCM-001")

	got := lines(buf.String())
	require.Len(t, got, 5)
	assert.Contains(t, got[4], strings.Repeat("#", barWidth), "largest value gets the full bar")
	assert.Contains(t, got[2], strings.Repeat("#", 10))
	assert.NotContains(t, got[2], strings.Repeat("#", 11))
}

func TestTable_NonReadyOutcomesPrintMessage(t *testing.T) {
	tests := []struct {
		name     string
		defs     []domain.PropertyDefinition
		selected string
		property string
		want     string
	}{
		{"nothing selected", squareDefs(), "", "solid-specific-heat", "No PCM selected."},
		{"no data", nil, "PCM-001", "solid-specific-heat", "No property data loaded."},
		{"no match", squareDefs(), "PCM-001", "density", "Known PCM ids: PCM-001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewTable(&buf, true).DrawPropertyChart(tt.property, tt.defs, tt.selected)
			assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
			assert.Contains(t, buf.String(), tt.want)
			assert.True(t, strings.HasPrefix(buf.String(), tt.property+": "))
		})
	}
}

func TestFrame_KeepsLatestChart(t *testing.T) {
	tests := []struct {
		name     string
		property []string
		want     string
	}{
		{"single draw", []string{"solid-specific-heat"}, "solid-specific-heat of PCM-001 (Dummy A)"},
		{"redraw replaces", []string{"solid-specific-heat", "density"}, `density: No "density" definition for PCM-001.`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFrame(false)
			for _, p := range tt.property {
				f.DrawPropertyChart(p, squareDefs(), "PCM-001")
			}

			var buf bytes.Buffer
			_, err := f.WriteTo(&buf)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(buf.String(), tt.want+"\n"), buf.String())
			assert.Equal(t, 1, strings.Count(buf.String(), "PCM-001"))

			buf.Reset()
			_, err = f.WriteTo(&buf)
			require.NoError(t, err)
			assert.Empty(t, buf.String(), "frame is cleared after writing")
		})
	}
}

func TestBar(t *testing.T) {
	assert.Empty(t, bar(5, 0))
	assert.Equal(t, strings.Repeat("-", barWidth/2), bar(-5, 10))
	assert.Equal(t, strings.Repeat("#", barWidth), bar(10, 10))
}
