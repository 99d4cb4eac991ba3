// Package client posts prediction requests to the remote service. One call is
// one round trip: there is no retry.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-triage/pkg/contract"
	"github.com/goliatone/go-triage/pkg/model"
)

const maxBodySize = 1 << 20

var (
	// ErrTransport marks failures to reach the service or read its reply.
	ErrTransport = errors.New("client: transport failure")
	// ErrMalformed marks replies that are not a valid prediction response.
	ErrMalformed = errors.New("client: malformed response")
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds each round trip. Zero leaves the context untouched.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithContract validates outgoing and incoming bodies against c. A nil
// contract disables validation.
func WithContract(ct *contract.Contract) Option {
	return func(c *Client) {
		c.contract = ct
		c.validate = ct != nil
	}
}

// Client calls POST {base}/api/predict.
type Client struct {
	endpoint string
	http     *http.Client
	timeout  time.Duration
	contract *contract.Contract
	validate bool
}

// New builds a client for the service rooted at baseURL. The embedded
// contract is used unless WithContract says otherwise.
func New(baseURL string, options ...Option) (*Client, error) {
	endpoint, err := Endpoint(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		endpoint: endpoint,
		http:     http.DefaultClient,
		validate: true,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.validate && c.contract == nil {
		ct, err := contract.Load(context.Background())
		if err != nil {
			return nil, fmt.Errorf("client: %w", err)
		}
		c.contract = ct
	}
	return c, nil
}

// Endpoint joins baseURL with the predict path.
func Endpoint(baseURL string) (string, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return "", errors.New("client: base url is required")
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("client: parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("client: unsupported scheme %q", u.Scheme)
	}
	return u.JoinPath(contract.PredictPath).String(), nil
}

// URL returns the endpoint requests are posted to.
func (c *Client) URL() string {
	return c.endpoint
}

// Predict posts req and decodes the reply. Any status is accepted as long as
// the body is a prediction response, so ok:false replies carried on 4xx/5xx
// reach the caller with their message.
func (c *Client) Predict(ctx context.Context, req model.PredictionRequest) (model.PredictionResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return model.PredictionResponse{}, fmt.Errorf("client: encode request: %w", err)
	}
	if c.validate {
		if err := c.contract.ValidateRequest(body); err != nil {
			return model.PredictionResponse{}, fmt.Errorf("client: %w", err)
		}
	}

	reqCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return model.PredictionResponse{}, fmt.Errorf("client: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return model.PredictionResponse{}, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return model.PredictionResponse{}, fmt.Errorf("%w: read body: %v", ErrTransport, err)
	}

	return c.decode(resp.StatusCode, payload)
}

func (c *Client) decode(status int, payload []byte) (model.PredictionResponse, error) {
	if c.validate {
		if err := c.contract.ValidateResponse(payload); err != nil {
			return model.PredictionResponse{}, fmt.Errorf("%w: status %d: %v", ErrMalformed, status, err)
		}
	}

	var out model.PredictionResponse
	if err := json.Unmarshal(payload, &out); err != nil {
		return model.PredictionResponse{}, fmt.Errorf("%w: status %d: %v", ErrMalformed, status, err)
	}
	if out.OK && len(out.Top3) == 0 {
		return model.PredictionResponse{}, fmt.Errorf("%w: status %d: ok response without entries", ErrMalformed, status)
	}
	return out, nil
}
