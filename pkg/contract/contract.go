// Package contract holds the OpenAPI description of the prediction endpoint
// and validates payloads against it with kin-openapi.
package contract

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
)

// PredictPath is the endpoint every request is posted to.
const PredictPath = "/api/predict"

const jsonMediaType = "application/json"

//go:embed openapi.yaml
var document []byte

var (
	// ErrSchemaViolation wraps every payload that does not match the contract.
	ErrSchemaViolation = errors.New("contract: payload violates schema")
	ErrNotJSON         = errors.New("contract: payload is not JSON")
)

// Document returns the raw embedded OpenAPI document.
func Document() []byte {
	return append([]byte(nil), document...)
}

// Contract holds the resolved request and response schemas.
type Contract struct {
	doc      *openapi3.T
	request  *openapi3.Schema
	response *openapi3.Schema
}

// Option configures Load.
type Option func(*loadConfig)

type loadConfig struct {
	data []byte
}

// WithDocument replaces the embedded document.
func WithDocument(data []byte) Option {
	return func(c *loadConfig) {
		if len(data) > 0 {
			c.data = data
		}
	}
}

// Load parses and validates the document and resolves the predict operation.
func Load(ctx context.Context, options ...Option) (*Contract, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := &loadConfig{data: document}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(cfg.data)
	if err != nil {
		return nil, fmt.Errorf("contract: load document: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("contract: validate document: %w", err)
	}

	if doc.Paths == nil {
		return nil, errors.New("contract: document does not contain any paths")
	}
	item := doc.Paths.Value(PredictPath)
	if item == nil || item.Post == nil {
		return nil, fmt.Errorf("contract: POST %s not described", PredictPath)
	}

	request, err := requestSchema(item.Post)
	if err != nil {
		return nil, err
	}
	response, err := responseSchema(item.Post, http.StatusOK)
	if err != nil {
		return nil, err
	}

	return &Contract{doc: doc, request: request, response: response}, nil
}

// MustLoad is Load for init-time wiring of the embedded document.
func MustLoad() *Contract {
	c, err := Load(context.Background())
	if err != nil {
		panic(err)
	}
	return c
}

// ValidateRequest checks an outgoing JSON body.
func (c *Contract) ValidateRequest(payload []byte) error {
	return visit(c.request, payload, openapi3.VisitAsRequest())
}

// ValidateResponse checks a received JSON body.
func (c *Contract) ValidateResponse(payload []byte) error {
	return visit(c.response, payload, openapi3.VisitAsResponse())
}

// Title returns the document title.
func (c *Contract) Title() string {
	if c.doc == nil || c.doc.Info == nil {
		return ""
	}
	return c.doc.Info.Title
}

func visit(schema *openapi3.Schema, payload []byte, mode openapi3.SchemaValidationOption) error {
	var value any
	if err := json.Unmarshal(payload, &value); err != nil {
		return fmt.Errorf("%w: %v", ErrNotJSON, err)
	}
	if err := schema.VisitJSON(value, mode, openapi3.MultiErrors()); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}
	return nil
}

func requestSchema(op *openapi3.Operation) (*openapi3.Schema, error) {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil, errors.New("contract: predict has no request body")
	}
	return mediaSchema(op.RequestBody.Value.Content, "request")
}

func responseSchema(op *openapi3.Operation, status int) (*openapi3.Schema, error) {
	if op.Responses == nil {
		return nil, errors.New("contract: predict has no responses")
	}
	ref := op.Responses.Status(status)
	if ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("contract: predict has no %d response", status)
	}
	return mediaSchema(ref.Value.Content, fmt.Sprintf("%d response", status))
}

func mediaSchema(content openapi3.Content, what string) (*openapi3.Schema, error) {
	mt := content.Get(jsonMediaType)
	if mt == nil || mt.Schema == nil || mt.Schema.Value == nil {
		return nil, fmt.Errorf("contract: %s has no %s schema", what, jsonMediaType)
	}
	return mt.Schema.Value, nil
}
