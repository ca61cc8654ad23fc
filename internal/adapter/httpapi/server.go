package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/saferoute/risk-report-service/internal/domain"
)

// Service runs assessment cycles and reports readiness.
type Service interface {
	Assess(ctx context.Context, sub domain.Submission) (domain.Report, error)
	Export(ctx context.Context, sub domain.Submission) (domain.ExportArtifact, error)
	CheckReadiness(ctx context.Context) error
}

// Server exposes the assessment API plus health, readiness, and metrics
// endpoints.
type Server struct {
	httpServer *http.Server
	service    Service
	logger     *slog.Logger
}

// NewServer creates the HTTP server and wires its routes.
func NewServer(addr string, service Service, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		service: service,
		logger:  logger,
	}

	// Method-restricted registrations, equivalent to Go 1.22+ "METHOD /path"
	// ServeMux patterns; written out for pre-1.22 toolchains.
	mux.Handle("/api/assessments", requireMethod(http.MethodPost, http.HandlerFunc(s.handleAssess)))
	mux.Handle("/api/assessments/export", requireMethod(http.MethodPost, http.HandlerFunc(s.handleExport)))
	mux.Handle("/healthz", requireMethod(http.MethodGet, http.HandlerFunc(s.handleHealth)))
	mux.Handle("/readyz", requireMethod(http.MethodGet, http.HandlerFunc(s.handleReady)))
	mux.Handle("/metrics", requireMethod(http.MethodGet, promhttp.Handler()))

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

func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	sub, ok := s.decodeSubmission(w, r)
	if !ok {
		return
	}

	report, err := s.service.Assess(r.Context(), sub)
	if err != nil {
		s.writeAssessError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sub, ok := s.decodeSubmission(w, r)
	if !ok {
		return
	}

	artifact, err := s.service.Export(r.Context(), sub)
	if err != nil {
		s.writeAssessError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, artifact)
}

func (s *Server) decodeSubmission(w http.ResponseWriter, r *http.Request) (domain.Submission, bool) {
	var sub domain.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return domain.Submission{}, false
	}
	return sub, true
}

// writeAssessError maps assessment failures onto the API's error contract.
// An unprocessable upstream response gets a generic retry message and never
// a partial report.
func (s *Server) writeAssessError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidSubmission):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrUnprocessableResponse):
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"error": "prediction service returned an unreadable response, please try again",
		})
	default:
		s.logger.Error("assessment failed", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "prediction failed"})
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.service.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// requireMethod rejects requests whose method does not match, mirroring the
// routing behavior of Go 1.22+ method patterns (GET also accepts HEAD).
func requireMethod(method string, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method && !(method == http.MethodGet && r.Method == http.MethodHead) {
			w.Header().Set("Allow", method)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		h.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response write
}
