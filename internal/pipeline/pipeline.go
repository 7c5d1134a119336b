package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/couchcryptid/cryopcm-lab/internal/catalog"
	"github.com/couchcryptid/cryopcm-lab/internal/observability"
	sharedretry "github.com/couchcryptid/storm-data-shared/retry"
	"golang.org/x/sync/errgroup"
)

// Source label values used in logs and metrics.
const (
	SourcePcms       = "pcms"
	SourceProperties = "properties"
)

// Source retrieves the raw text of one table.
type Source interface {
	Fetch(ctx context.Context) (string, error)
}

// Catalogs is the result of one load. A failed source leaves an empty catalog
// and records its error; neither error stops the other source.
type Catalogs struct {
	Pcms        *catalog.PcmCatalog
	Properties  *catalog.PropertyCatalog
	PcmErr      error
	PropertyErr error
}

// Loader fetches and parses both tables.
type Loader struct {
	pcms       Source
	properties Source
	logger     *slog.Logger
	metrics    *observability.Metrics
	attempts   int
}

// New creates a Loader. attempts is the number of tries per source (minimum 1).
func New(pcms, properties Source, logger *slog.Logger, metrics *observability.Metrics, attempts int) *Loader {
	if attempts < 1 {
		attempts = 1
	}
	return &Loader{
		pcms:       pcms,
		properties: properties,
		logger:     logger,
		metrics:    metrics,
		attempts:   attempts,
	}
}

// Load fetches both sources concurrently and returns once both have
// finished. It never fails: an unavailable source yields an empty catalog.
func (l *Loader) Load(ctx context.Context) Catalogs {
	start := time.Now()
	var out Catalogs

	var g errgroup.Group
	g.Go(func() error {
		text, err := l.fetch(ctx, SourcePcms, l.pcms)
		out.PcmErr = err
		out.Pcms = catalog.ParsePcms(text)
		return nil
	})
	g.Go(func() error {
		text, err := l.fetch(ctx, SourceProperties, l.properties)
		out.PropertyErr = err
		out.Properties = catalog.ParseProperties(text)
		return nil
	})
	_ = g.Wait()

	invalid := out.Properties.Invalid()
	for _, inv := range invalid {
		l.logger.Warn("unusable property definition",
			"pcm_id", inv.Definition.PcmID,
			"property_type", inv.Definition.PropertyType,
			"row", inv.Index+1,
			"error", inv.Err,
		)
	}

	l.metrics.RecordsLoaded.WithLabelValues(SourcePcms).Set(float64(out.Pcms.Len()))
	l.metrics.RecordsLoaded.WithLabelValues(SourceProperties).Set(float64(out.Properties.Len()))
	l.metrics.InvalidDefinitions.Set(float64(len(invalid)))
	l.metrics.LoadDuration.Observe(time.Since(start).Seconds())

	l.logger.Info("catalogs loaded",
		"pcms", out.Pcms.Len(),
		"properties", out.Properties.Len(),
		"invalid_properties", len(invalid),
		"duration", time.Since(start),
	)
	return out
}

// fetch retrieves one source, retrying with exponential backoff. On final
// failure it returns "" so the parser produces an empty catalog.
func (l *Loader) fetch(ctx context.Context, name string, src Source) (string, error) {
	if src == nil {
		l.logger.Warn("source not configured", "source", name)
		l.metrics.SourceFetches.WithLabelValues(name, "error").Inc()
		return "", errNotConfigured(name)
	}

	// Start at 200ms, double each retry, cap at 2s.
	backoff := 200 * time.Millisecond
	maxBackoff := 2 * time.Second

	var lastErr error
	for attempt := 1; attempt <= l.attempts; attempt++ {
		start := time.Now()
		text, err := src.Fetch(ctx)
		l.metrics.SourceFetchDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
		if err == nil {
			l.metrics.SourceFetches.WithLabelValues(name, "success").Inc()
			return text, nil
		}

		lastErr = err
		l.metrics.SourceFetches.WithLabelValues(name, "error").Inc()
		l.logger.Warn("source fetch failed",
			"source", name,
			"attempt", attempt,
			"max_attempts", l.attempts,
			"error", err,
		)

		if attempt == l.attempts || ctx.Err() != nil {
			break
		}
		if !sharedretry.SleepWithContext(ctx, backoff) {
			break
		}
		backoff = sharedretry.NextBackoff(backoff, maxBackoff)
	}

	l.logger.Error("source unavailable, using empty catalog", "source", name, "error", lastErr)
	return "", lastErr
}
