package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func shippedOptions() options {
	return options{
		pcms:       filepath.Join("..", "..", "rawdata", "pcms.csv"),
		properties: filepath.Join("..", "..", "documentation", "property_data.csv"),
		property:   "solid-specific-heat",
		timeout:    time.Second,
	}
}

func TestRun_DefaultsToFirstPcm(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), shippedOptions(), &stdout, &stderr)

	assert.Equal(t, 0, code, stderr.String())
	out := stdout.String()
	assert.True(t, strings.HasPrefix(out, "Showing all PCMs (no filters applied yet).\n"))
	assert.Contains(t, out, "* PCM-001 — Dummy cryo-PCM A  melt 90.7 K  boil 111.6 K")
	assert.Contains(t, out, "  PCM-005 — Dummy cryo-PCM E  melt – K")
	assert.Contains(t, out, "solid-specific-heat of PCM-001 (Dummy cryo-PCM A)")
}

func TestRun_DrawsChartOnceAfterList(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*options)
		title  string
	}{
		{"defaults", func(*options) {}, "solid-specific-heat of PCM-001"},
		{"filtered and selected", func(o *options) { o.tmin, o.tmax, o.pcmID = "200", "300", "PCM-006" }, "solid-specific-heat of PCM-006"},
		{"other property", func(o *options) { o.property = "thermal-conductivity" }, "thermal-conductivity of PCM-001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := shippedOptions()
			tt.mutate(&opts)

			var stdout, stderr bytes.Buffer
			code := run(context.Background(), opts, &stdout, &stderr)

			assert.Equal(t, 0, code, stderr.String())
			out := stdout.String()
			assert.Equal(t, 1, strings.Count(out, " of PCM-"), out)
			assert.Greater(t, strings.Index(out, tt.title), strings.LastIndex(out, " K\n"))
		})
	}
}

func TestRun_FilterAndSelect(t *testing.T) {
	opts := shippedOptions()
	opts.tmin, opts.tmax = "200", "300"
	opts.pcmID = "PCM-006"
	opts.bars = true

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), opts, &stdout, &stderr)

	assert.Equal(t, 0, code, stderr.String())
	out := stdout.String()
	assert.Contains(t, out, "Search completed: 2 PCM(s) found.")
	assert.Contains(t, out, "  PCM-003 — Dummy cryo-PCM C")
	assert.Contains(t, out, "* PCM-006 — Dummy cryo-PCM F")
	assert.Contains(t, out, "solid-specific-heat of PCM-006")
	assert.Contains(t, out, "#")
}

func TestRun_SelectOutsideResults(t *testing.T) {
	opts := shippedOptions()
	opts.tmin, opts.tmax = "200", "300"
	opts.pcmID = "PCM-001"

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), opts, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "not in current results")
}

func TestRun_NoMatchPrintsDiagnostics(t *testing.T) {
	opts := shippedOptions()
	opts.property = "density"

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), opts, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), `density: No "density" definition for PCM-001.`)
	assert.Contains(t, stdout.String(), "Known property types: solid-specific-heat, liquid-specific-heat, thermal-conductivity")
}

func TestRun_MissingTableDegrades(t *testing.T) {
	opts := shippedOptions()
	opts.properties = filepath.Join(t.TempDir(), "missing.csv")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), opts, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Contains(t, stderr.String(), "load properties")
	assert.Contains(t, stdout.String(), "No property data loaded.")
}
