// Package lab holds the interactive state of one catalog session: the loaded
// catalogs, the current filter result and the selected PCM.
package lab

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/couchcryptid/cryopcm-lab/internal/catalog"
	"github.com/couchcryptid/cryopcm-lab/internal/domain"
	"github.com/couchcryptid/cryopcm-lab/internal/observability"
	"github.com/couchcryptid/cryopcm-lab/internal/pipeline"
)

var (
	// ErrNotLoaded is returned by CheckReadiness before the first load.
	ErrNotLoaded = errors.New("catalogs not loaded")
	// ErrNotInResults is returned when selecting an id outside the current results.
	ErrNotInResults = errors.New("pcm not in current results")
)

// Loader produces both catalogs.
type Loader interface {
	Load(ctx context.Context) pipeline.Catalogs
}

// ChartRenderer draws the curve of propertyKey for the selected PCM. It is
// handed the whole definition list and evaluates it itself.
type ChartRenderer interface {
	DrawPropertyChart(propertyKey string, defs []domain.PropertyDefinition, selectedPcmID string)
}

// Options configures a Session.
type Options struct {
	DefaultProperty string
	Renderer        ChartRenderer // optional
}

// View is a consistent snapshot of the session for display.
type View struct {
	Status   domain.Status      `json:"status"`
	Window   domain.Window      `json:"window"`
	Filtered []domain.PcmRecord `json:"filtered"`
	Selected *domain.PcmRecord  `json:"selected"`
	Property string             `json:"property"`
	LoadedAt time.Time          `json:"loadedAt"`
}

// Session is safe for concurrent use.
type Session struct {
	loader   Loader
	renderer ChartRenderer
	logger   *slog.Logger
	metrics  *observability.Metrics

	mu         sync.Mutex
	pcms       *catalog.PcmCatalog
	properties *catalog.PropertyCatalog
	filtered   []domain.PcmRecord
	selectedID string
	window     domain.Window
	property   string
	status     domain.Status
	loaded     bool
	loadedAt   time.Time
}

// NewSession creates an unloaded session.
func NewSession(loader Loader, logger *slog.Logger, metrics *observability.Metrics, opts Options) *Session {
	return &Session{
		loader:     loader,
		renderer:   opts.Renderer,
		logger:     logger,
		metrics:    metrics,
		pcms:       catalog.NewPcmCatalog(nil),
		properties: catalog.NewPropertyCatalog(nil),
		filtered:   []domain.PcmRecord{},
		property:   opts.DefaultProperty,
		status:     domain.Status{Kind: domain.StatusNotLoaded},
	}
}

// LoadAll fetches both catalogs and resets the view to the full catalog with
// the first PCM selected. Source failures leave the affected catalog empty;
// the returned error joins them for the caller's information only.
func (s *Session) LoadAll(ctx context.Context) error {
	out := s.loader.Load(ctx)

	s.mu.Lock()
	s.pcms = out.Pcms
	s.properties = out.Properties
	s.window = domain.Window{}
	s.filtered = s.pcms.All()
	s.selectedID = firstID(s.filtered)
	if len(s.filtered) == 0 {
		s.status = domain.Status{Kind: domain.StatusNoData}
	} else {
		s.status = domain.Status{Kind: domain.StatusShowingAll}
	}
	s.loaded = true
	s.loadedAt = clock.Now()
	s.mu.Unlock()

	s.draw()

	var errs []error
	if out.PcmErr != nil {
		errs = append(errs, fmt.Errorf("load pcms: %w", out.PcmErr))
	}
	if out.PropertyErr != nil {
		errs = append(errs, fmt.Errorf("load properties: %w", out.PropertyErr))
	}
	return errors.Join(errs...)
}

// Filter replaces the results with the PCMs admitted by window and selects
// the first match. An inactive window shows the whole catalog.
func (s *Session) Filter(window domain.Window) domain.FilterResult {
	s.mu.Lock()
	res := domain.Filter(s.pcms.All(), window)
	s.window = window
	s.filtered = res.Matches
	s.selectedID = firstID(res.Matches)
	s.status = res.Status
	s.mu.Unlock()

	outcome := res.Status.Kind.String()
	if !res.Applied {
		outcome = "unfiltered"
	}
	s.metrics.FilterRuns.WithLabelValues(outcome).Inc()
	s.logger.Debug("filter applied", "applied", res.Applied, "matches", len(res.Matches))

	s.draw()
	return res
}

// ResetFilter shows the whole catalog again.
func (s *Session) ResetFilter() domain.FilterResult {
	s.mu.Lock()
	res := domain.Filter(s.pcms.All(), domain.Window{})
	res.Status = domain.Status{Kind: domain.StatusReset}
	s.window = domain.Window{}
	s.filtered = res.Matches
	s.selectedID = firstID(res.Matches)
	s.status = res.Status
	s.mu.Unlock()

	s.metrics.FilterRuns.WithLabelValues(domain.StatusReset.String()).Inc()
	s.draw()
	return res
}

// SelectPcm selects id, which must be among the current results.
func (s *Session) SelectPcm(id string) error {
	s.mu.Lock()
	found := false
	for _, p := range s.filtered {
		if p.ID == id {
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return fmt.Errorf("select %q: %w", id, ErrNotInResults)
	}
	s.selectedID = id
	s.mu.Unlock()

	s.draw()
	return nil
}

// Curve evaluates propertyType for the selected PCM. An empty propertyType
// means the session's current property.
func (s *Session) Curve(propertyType string) domain.Curve {
	s.mu.Lock()
	if propertyType == "" {
		propertyType = s.property
	}
	defs := s.properties.All()
	selected := s.selectedID
	s.mu.Unlock()

	curve := domain.Evaluate(defs, selected, propertyType)
	s.metrics.CurveEvaluations.WithLabelValues(curve.Outcome.String()).Inc()
	if curve.Outcome == domain.CurveReady {
		s.metrics.CurvePoints.Observe(float64(len(curve.Points)))
	}
	return curve
}

// Redraw makes propertyType the current property and redraws the chart.
func (s *Session) Redraw(propertyType string) {
	s.mu.Lock()
	if propertyType != "" {
		s.property = propertyType
	}
	s.mu.Unlock()
	s.draw()
}

// StatusMessage returns the current search-status line.
func (s *Session) StatusMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status.Message()
}

// Filtered returns a copy of the current results.
func (s *Session) Filtered() []domain.PcmRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append(make([]domain.PcmRecord, 0, len(s.filtered)), s.filtered...)
}

// Selected returns the selected record, if any.
func (s *Session) Selected() (domain.PcmRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedLocked()
}

// View returns a snapshot of the whole session state.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		Status:   s.status,
		Window:   s.window,
		Filtered: append(make([]domain.PcmRecord, 0, len(s.filtered)), s.filtered...),
		Property: s.property,
		LoadedAt: s.loadedAt,
	}
	if p, ok := s.selectedLocked(); ok {
		v.Selected = &p
	}
	return v
}

// CheckReadiness reports whether the first load has completed.
func (s *Session) CheckReadiness(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ErrNotLoaded
	}
	return nil
}

func (s *Session) selectedLocked() (domain.PcmRecord, bool) {
	if s.selectedID == "" {
		return domain.PcmRecord{}, false
	}
	return s.pcms.Lookup(s.selectedID)
}

// draw calls the renderer without holding the lock.
func (s *Session) draw() {
	if s.renderer == nil {
		return
	}
	s.mu.Lock()
	property := s.property
	defs := s.properties.All()
	selected := s.selectedID
	s.mu.Unlock()

	s.renderer.DrawPropertyChart(property, defs, selected)
}

func firstID(records []domain.PcmRecord) string {
	if len(records) == 0 {
		return ""
	}
	return records[0].ID
}
