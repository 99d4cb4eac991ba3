// Package stubservice is a deterministic stand-in for the remote prediction
// service. It implements the /api/predict contract with fixed rules so the
// commands and integration tests can run without the real model.
package stubservice

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/goliatone/go-triage/pkg/contract"
	"github.com/goliatone/go-triage/pkg/model"
)

const maxRequestSize = 64 << 10

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTopN sets how many entries go into top3. Defaults to 3.
func WithTopN(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topN = n
		}
	}
}

// Service scores coerced snapshots.
type Service struct {
	logger *slog.Logger
	topN   int
}

// New builds a Service.
func New(options ...Option) *Service {
	s := &Service{
		logger: slog.Default(),
		topN:   3,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Evaluate scores a decoded request body. Bad input yields ok:false with a
// message, the same as the HTTP endpoint.
func (s *Service) Evaluate(body map[string]any) model.PredictionResponse {
	features, err := Coerce(body)
	if err != nil {
		return model.PredictionResponse{OK: false, Error: err.Error()}
	}
	scored := Score(features)
	return model.PredictionResponse{
		OK:      true,
		Top3:    scored.Top(s.topN),
		Classes: scored.Classes,
		Probs:   scored.Probs,
	}
}

// Predict scores req in process.
func (s *Service) Predict(ctx context.Context, req model.PredictionRequest) (model.PredictionResponse, error) {
	if err := ctx.Err(); err != nil {
		return model.PredictionResponse{}, err
	}
	return s.Evaluate(req.Map()), nil
}

// Handler serves POST /api/predict.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+contract.PredictPath, s.handlePredict)
	return mux
}

func (s *Service) handlePredict(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	data, err := io.ReadAll(io.LimitReader(r.Body, maxRequestSize))
	if err == nil {
		err = json.Unmarshal(data, &body)
	}
	if err != nil || body == nil {
		s.write(w, r, http.StatusBadRequest, model.PredictionResponse{OK: false, Error: "corpo JSON inválido"})
		return
	}

	resp := s.Evaluate(body)
	status := http.StatusOK
	if !resp.OK {
		status = http.StatusBadRequest
	}
	s.write(w, r, status, resp)
}

func (s *Service) write(w http.ResponseWriter, r *http.Request, status int, resp model.PredictionResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.ErrorContext(r.Context(), "encode prediction", "error", err)
		return
	}
	if resp.OK {
		s.logger.InfoContext(r.Context(), "prediction served", "first", resp.Top3[0].Label, "prob", resp.Top3[0].Probability)
		return
	}
	s.logger.WarnContext(r.Context(), "prediction rejected", "status", status, "error", resp.Error)
}
