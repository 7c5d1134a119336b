// Command pcmcurve loads the PCM and property tables, applies an optional
// temperature window, selects a PCM and prints one property curve as a table.
//
// Usage:
//
//	go run ./cmd/pcmcurve -tmin 200 -tmax 300 -property solid-specific-heat
//	go run ./cmd/pcmcurve -pcm PCM-002 -bars
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/couchcryptid/cryopcm-lab/internal/adapter/render"
	"github.com/couchcryptid/cryopcm-lab/internal/adapter/source"
	"github.com/couchcryptid/cryopcm-lab/internal/domain"
	"github.com/couchcryptid/cryopcm-lab/internal/lab"
	"github.com/couchcryptid/cryopcm-lab/internal/observability"
	"github.com/couchcryptid/cryopcm-lab/internal/pipeline"
	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

type options struct {
	pcms       string
	properties string
	tmin       string
	tmax       string
	pcmID      string
	property   string
	bars       bool
	timeout    time.Duration
}

func main() {
	var opts options
	flag.StringVar(&opts.pcms, "pcms", sharedcfg.EnvOrDefault("PCM_SOURCE", "rawdata/pcms.csv"), "PCM table location")
	flag.StringVar(&opts.properties, "properties", sharedcfg.EnvOrDefault("PROPERTY_SOURCE", "documentation/property_data.csv"), "property model table location")
	flag.StringVar(&opts.tmin, "tmin", "", "lower bound of the temperature window (K)")
	flag.StringVar(&opts.tmax, "tmax", "", "upper bound of the temperature window (K)")
	flag.StringVar(&opts.pcmID, "pcm", "", "PCM id to select (default: first result)")
	flag.StringVar(&opts.property, "property", sharedcfg.EnvOrDefault("DEFAULT_PROPERTY", "solid-specific-heat"), "property type to plot")
	flag.BoolVar(&opts.bars, "bars", false, "draw a bar column")
	flag.DurationVar(&opts.timeout, "timeout", 10*time.Second, "per-source fetch timeout")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, opts, os.Stdout, os.Stderr))
}

func run(ctx context.Context, opts options, stdout, stderr io.Writer) int {
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	srcOpts := source.Options{Timeout: opts.timeout, Logger: logger}

	pcms, err := source.Open(ctx, opts.pcms, srcOpts)
	if err != nil {
		fmt.Fprintf(stderr, "pcmcurve: %v\n", err)
		return 1
	}
	properties, err := source.Open(ctx, opts.properties, srcOpts)
	if err != nil {
		fmt.Fprintf(stderr, "pcmcurve: %v\n", err)
		return 1
	}

	metrics := observability.NewMetricsUnregistered()
	loader := pipeline.New(pcms, properties, logger, metrics, 1)
	chart := render.NewFrame(opts.bars)
	session := lab.NewSession(loader, logger, metrics, lab.Options{DefaultProperty: opts.property, Renderer: chart})
	if err := session.LoadAll(ctx); err != nil {
		fmt.Fprintf(stderr, "pcmcurve: %v\n", err)
	}

	if opts.tmin != "" || opts.tmax != "" {
		session.Filter(domain.ParseWindow(opts.tmin, opts.tmax))
	}
	if opts.pcmID != "" {
		if err := session.SelectPcm(opts.pcmID); err != nil {
			fmt.Fprintf(stderr, "pcmcurve: %v\n", err)
			return 1
		}
	}

	view := session.View()
	fmt.Fprintln(stdout, view.Status.Message())
	for _, p := range view.Filtered {
		marker := " "
		if view.Selected != nil && view.Selected.ID == p.ID {
			marker = "*"
		}
		fmt.Fprintf(stdout, "%s %s  melt %s K  boil %s K\n", marker, p.Label(), p.MeltingPointK, p.BoilingPointK)
	}
	fmt.Fprintln(stdout)

	session.Redraw(opts.property)
	if _, err := chart.WriteTo(stdout); err != nil {
		fmt.Fprintf(stderr, "pcmcurve: %v\n", err)
		return 1
	}
	return 0
}
