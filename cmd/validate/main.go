// Command validate checks the integrity of the PCM table and the property
// model table: row counts, duplicate keys, unusable model definitions, links
// between the two tables and that every usable curve samples to finite values.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -pcms rawdata/pcms.csv \
//	  -properties documentation/property_data.csv
//
// Either flag also accepts http(s):// and s3:// locations.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/couchcryptid/cryopcm-lab/internal/adapter/source"
	"github.com/couchcryptid/cryopcm-lab/internal/catalog"
	"github.com/couchcryptid/cryopcm-lab/internal/domain"
	"github.com/couchcryptid/cryopcm-lab/internal/observability"
	"github.com/couchcryptid/cryopcm-lab/internal/pipeline"
	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
	notes  []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) notef(format string, args ...any) {
	p.notes = append(p.notes, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	pcms := flag.String("pcms", sharedcfg.EnvOrDefault("PCM_SOURCE", "rawdata/pcms.csv"), "PCM table location")
	properties := flag.String("properties", sharedcfg.EnvOrDefault("PROPERTY_SOURCE", "documentation/property_data.csv"), "property model table location")
	timeout := flag.Duration("timeout", 10*time.Second, "per-source fetch timeout")
	flag.Parse()

	if *pcms == "" || *properties == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(context.Background(), *pcms, *properties, *timeout, os.Stdout); code != 0 {
		os.Exit(code)
	}
}

func run(ctx context.Context, pcmURI, propertyURI string, timeout time.Duration, out io.Writer) int {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	opts := source.Options{Timeout: timeout, Logger: logger}

	fmt.Fprintln(out, "=== PCM Data Integrity Validation ===")
	fmt.Fprintln(out)

	pcmSrc, err := source.Open(ctx, pcmURI, opts)
	if err != nil {
		fmt.Fprintf(out, "FATAL: %v\n", err)
		return 1
	}
	propSrc, err := source.Open(ctx, propertyURI, opts)
	if err != nil {
		fmt.Fprintf(out, "FATAL: %v\n", err)
		return 1
	}

	loaded := pipeline.New(pcmSrc, propSrc, logger, observability.NewMetricsUnregistered(), 1).Load(ctx)
	if loaded.PcmErr != nil {
		fmt.Fprintf(out, "FATAL: load PCM table: %v\n", loaded.PcmErr)
		return 1
	}
	if loaded.PropertyErr != nil {
		fmt.Fprintf(out, "FATAL: load property table: %v\n", loaded.PropertyErr)
		return 1
	}

	phases := []*phase{
		validateCounts(loaded.Pcms, loaded.Properties),
		validatePcms(loaded.Pcms),
		validateModels(loaded.Properties),
		validateLinks(loaded.Pcms, loaded.Properties),
		validateSampling(loaded.Properties),
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Records: %d PCMs, %d property models\n", loaded.Pcms.Len(), loaded.Properties.Len())

	for _, p := range phases {
		for _, n := range p.notes {
			fmt.Fprintf(out, "  Note: %s\n", n)
		}
	}
	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(out, "\nValidation FAILED.")
	return 1
}

// ── Phase 1: Row counts ──

func validateCounts(pcms *catalog.PcmCatalog, props *catalog.PropertyCatalog) *phase {
	p := &phase{name: "Phase 1: Row Counts"}
	if pcms.Len() == 0 {
		p.errorf("PCM table has no data rows")
	}
	if props.Len() == 0 {
		p.errorf("property table has no data rows")
	}
	return p
}

// ── Phase 2: PCM records ──

func validatePcms(pcms *catalog.PcmCatalog) *phase {
	p := &phase{name: "Phase 2: PCM Records (ids, temperatures)"}

	for _, id := range pcms.DuplicateIDs() {
		p.errorf("duplicate PCM id %q (the last row wins)", id)
	}

	for i, rec := range pcms.All() {
		if rec.ID == "" {
			p.errorf("row %d: empty id", i+1)
		}
		melting, mOK := rec.MeltingPointK.Float()
		boiling, bOK := rec.BoilingPointK.Float()
		if !mOK || !bOK {
			p.notef("%s: melting or boiling point unknown; it never passes a temperature filter", rec.ID)
			continue
		}
		if melting >= boiling {
			p.errorf("%s: melting point %g K is not below boiling point %g K", rec.ID, melting, boiling)
		}
	}
	return p
}

// ── Phase 3: Property models ──

func validateModels(props *catalog.PropertyCatalog) *phase {
	p := &phase{name: "Phase 3: Property Models (usable, unique)"}

	for _, inv := range props.Invalid() {
		p.errorf("model %d (%s, %s): %v", inv.Index+1, inv.Definition.PcmID, inv.Definition.PropertyType, inv.Err)
	}
	for _, d := range props.Shadowed() {
		p.errorf("duplicate model (%s, %s) %q is ignored; the first definition wins", d.PcmID, d.PropertyType, d.Name)
	}
	return p
}

// ── Phase 4: Cross-references ──

func validateLinks(pcms *catalog.PcmCatalog, props *catalog.PropertyCatalog) *phase {
	p := &phase{name: "Phase 4: Cross-Reference (pcmId links)"}

	modelIDs, _ := props.Keys()
	withModels := make(map[string]bool, len(modelIDs))
	for _, id := range modelIDs {
		withModels[id] = true
		if _, ok := pcms.Lookup(id); !ok {
			p.errorf("property models reference unknown PCM id %q", id)
		}
	}

	for _, rec := range pcms.All() {
		if !withModels[rec.ID] {
			p.notef("%s has no property models", rec.ID)
		}
	}
	return p
}

// ── Phase 5: Curve sampling ──

func validateSampling(props *catalog.PropertyCatalog) *phase {
	p := &phase{name: "Phase 5: Curve Sampling (finite values)"}

	defs := props.All()
	pcmIDs, types := props.Keys()
	for _, id := range pcmIDs {
		for _, typ := range types {
			curve := domain.Evaluate(defs, id, typ)
			if curve.Outcome != domain.CurveReady {
				continue
			}
			if len(curve.Points) == 0 {
				p.errorf("(%s, %s): no sample points", id, typ)
			}
			for _, pt := range curve.Points {
				if math.IsNaN(pt.Value) || math.IsInf(pt.Value, 0) {
					p.errorf("(%s, %s): non-finite value at %d K", id, typ, pt.TemperatureK)
					break
				}
			}
		}
	}
	return p
}
