// Package triage wires the triage presentation core from a Config: the
// prediction client, the page server and the orchestrator behind both.
package triage

import (
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/goliatone/go-triage/pkg/client"
	"github.com/goliatone/go-triage/pkg/config"
	"github.com/goliatone/go-triage/pkg/contract"
	"github.com/goliatone/go-triage/pkg/model"
	"github.com/goliatone/go-triage/pkg/orchestrator"
	"github.com/goliatone/go-triage/pkg/web"
)

// Request aliases the ordered prediction payload.
type Request = model.PredictionRequest

// Response aliases the prediction service reply.
type Response = model.PredictionResponse

// Entry aliases one ranked class of a response.
type Entry = model.Entry

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// NewPredictor builds the HTTP client for the configured prediction service.
// Body validation against the embedded contract follows cfg.Validate.
func NewPredictor(cfg config.Predictor) (*client.Client, error) {
	options := []client.Option{client.WithTimeout(cfg.Timeout.Duration)}
	if !cfg.ValidateBodies() {
		options = append(options, client.WithContract(nil))
	}
	c, err := client.New(cfg.BaseURL, options...)
	if err != nil {
		return nil, fmt.Errorf("triage: %w", err)
	}
	return c, nil
}

// NewWebServer builds the page server around predictor using the view
// settings and themes of cfg.
func NewWebServer(cfg config.Config, predictor orchestrator.Predictor, logger *slog.Logger) (*web.Server, error) {
	colors, err := cfg.Palette()
	if err != nil {
		return nil, fmt.Errorf("triage: %w", err)
	}
	return web.New(predictor,
		web.WithLogger(logger),
		web.WithPalette(colors),
		web.WithCaption(cfg.View.Caption),
		web.WithChartTitle(cfg.View.ChartTitle),
		web.WithTemplateDir(cfg.View.TemplatesDir),
	)
}

// ContractDocument returns the embedded OpenAPI description of the
// prediction endpoint.
func ContractDocument() []byte {
	return contract.Document()
}

// EmbeddedTemplates exposes the page template so callers can extend it.
func EmbeddedTemplates() fs.FS {
	return web.TemplatesFS()
}
