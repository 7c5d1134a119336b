package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/cryopcm-lab/internal/domain"
	"github.com/couchcryptid/cryopcm-lab/internal/lab"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxFormBytes bounds form bodies on the POST routes.
const maxFormBytes = 1 << 20

// Lab is the session surface the API drives.
type Lab interface {
	sharedobs.ReadinessChecker
	LoadAll(ctx context.Context) error
	Filter(window domain.Window) domain.FilterResult
	ResetFilter() domain.FilterResult
	SelectPcm(id string) error
	Curve(propertyType string) domain.Curve
	View() lab.View
}

// CurvePublisher exports ready curves. Optional.
type CurvePublisher interface {
	PublishCurve(ctx context.Context, curve domain.Curve) error
}

// Server exposes the catalog API plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	lab        Lab
	publisher  CurvePublisher
	logger     *slog.Logger
}

// NewServer wires all routes. publisher may be nil.
func NewServer(addr string, l Lab, publisher CurvePublisher, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		lab:       l,
		publisher: publisher,
		logger:    logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(l))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/pcms", s.handleView)
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("POST /api/filter", s.handleFilter)
	mux.HandleFunc("POST /api/filter/reset", s.handleReset)
	mux.HandleFunc("POST /api/selection", s.handleSelect)
	mux.HandleFunc("GET /api/curve", s.handleCurve)
	mux.HandleFunc("POST /api/reload", s.handleReload)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleView(w http.ResponseWriter, _ *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, s.lab.View())
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, s.lab.View().Status)
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	s.lab.Filter(domain.ParseWindow(r.PostFormValue("tmin"), r.PostFormValue("tmax")))
	sharedobs.WriteJSON(w, http.StatusOK, s.lab.View())
}

func (s *Server) handleReset(w http.ResponseWriter, _ *http.Request) {
	s.lab.ResetFilter()
	sharedobs.WriteJSON(w, http.StatusOK, s.lab.View())
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	id := r.PostFormValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}
	if err := s.lab.SelectPcm(id); err != nil {
		if errors.Is(err, lab.ErrNotInResults) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, s.lab.View())
}

type curveResponse struct {
	domain.Curve
	Message string `json:"message"`
}

func (s *Server) handleCurve(w http.ResponseWriter, r *http.Request) {
	curve := s.lab.Curve(r.URL.Query().Get("property"))

	if s.publisher != nil && curve.Outcome == domain.CurveReady {
		if err := s.publisher.PublishCurve(r.Context(), curve); err != nil {
			s.logger.Warn("curve export failed",
				"pcm_id", curve.PcmID,
				"property_type", curve.PropertyType,
				"error", err,
			)
		}
	}
	sharedobs.WriteJSON(w, http.StatusOK, curveResponse{Curve: curve, Message: curve.Message()})
}

type reloadResponse struct {
	lab.View
	Warning string `json:"warning,omitempty"`
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	resp := reloadResponse{}
	if err := s.lab.LoadAll(r.Context()); err != nil {
		s.logger.Warn("reload degraded", "error", err)
		resp.Warning = err.Error()
	}
	resp.View = s.lab.View()
	sharedobs.WriteJSON(w, http.StatusOK, resp)
}

func parseForm(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form: "+err.Error())
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, status int, msg string) {
	sharedobs.WriteJSON(w, status, map[string]string{"error": msg})
}
