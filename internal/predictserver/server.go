// Package predictserver is a local stand-in for the prediction service. It
// speaks the same /predict and /health contract as the trained model service.
package predictserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexanderramin/dilsehat/internal/domain"
	"github.com/alexanderramin/dilsehat/internal/predict"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// RiskThreshold is the probability, in percent, at or above which the
// service reports a detected risk.
const RiskThreshold = 50.0

const maxRequestBytes = 64 << 10

// Server serves the prediction contract.
type Server struct {
	scorer      Scorer
	log         *slog.Logger
	modelLoaded bool
}

type Option func(*Server)

// WithoutModel makes /predict answer 503 and /health report model_loaded
// false, like the real service started without its model file.
func WithoutModel() Option {
	return func(s *Server) { s.modelLoaded = false }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

func New(scorer Scorer, opts ...Option) *Server {
	s := &Server{
		scorer:      scorer,
		log:         slog.New(slog.DiscardHandler),
		modelLoaded: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes builds the chi router with the standard middleware stack.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(chiMiddleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Post("/predict", s.handlePredict)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, predict.HealthResponse{Status: "ok", ModelLoaded: s.modelLoaded})
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	if !s.modelLoaded {
		writeDetail(w, http.StatusServiceUnavailable, "Model not loaded")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes))
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "could not read body")
		return
	}
	a, err := decodeAssessment(body)
	if err != nil {
		s.log.Info("rejected prediction request", "request_id", chiMiddleware.GetReqID(r.Context()), "error", err)
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	p := s.scorer.Score(a)
	risk := p >= RiskThreshold
	msg := "Low Risk"
	if risk {
		msg = "High Risk"
	}
	writeJSON(w, http.StatusOK, predict.NewPredictResponse(domain.Result{
		RiskDetected:       risk,
		ProbabilityPercent: p,
		Message:            msg,
	}))
}

// decodeAssessment requires every wire field to be present and in domain.
func decodeAssessment(body []byte) (domain.Assessment, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return domain.Assessment{}, fmt.Errorf("body is not a JSON object: %w", err)
	}
	var missing []error
	for _, f := range domain.Fields {
		if _, ok := raw[f.Wire]; !ok {
			missing = append(missing, fmt.Errorf("%s: field required", f.Wire))
		}
	}
	if err := errors.Join(missing...); err != nil {
		return domain.Assessment{}, err
	}

	var req predict.PredictRequest
	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(&req); err != nil {
		return domain.Assessment{}, fmt.Errorf("invalid field type: %w", err)
	}
	return req.Assessment()
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", chiMiddleware.GetReqID(r.Context()),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"detail": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// ListenAndServe runs the server on addr until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("prediction stub listening", "addr", addr, "model_loaded", s.modelLoaded)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down prediction stub: %w", err)
	}
	s.log.Info("prediction stub stopped")
	return nil
}
