// Package chart draws a categorical distribution as a donut. The Renderer is
// the sole owner of the live chart Handle: every render destroys the previous
// instance before a new one is created on the Canvas, and Dispose releases it
// explicitly. There is no incremental update path.
package chart

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/goliatone/go-triage/pkg/palette"
)

// PlaceholderLabel is the single label drawn before any prediction ran.
const PlaceholderLabel = "—"

var (
	ErrLengthMismatch     = errors.New("chart: labels and values differ in length")
	ErrEmptyDistribution  = errors.New("chart: distribution has no entries")
	ErrInvalidValue       = errors.New("chart: values must be finite and non-negative")
	ErrCanvasUnconfigured = errors.New("chart: canvas is required")
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithPalette overrides the default palette.
func WithPalette(p palette.Palette) Option {
	return func(r *Renderer) {
		if len(p) > 0 {
			r.palette = p
		}
	}
}

// Renderer owns the donut chart drawn on one Canvas.
type Renderer struct {
	mu      sync.Mutex
	canvas  Canvas
	palette palette.Palette
	handle  Handle
}

// New binds a Renderer to canvas.
func New(canvas Canvas, options ...Option) (*Renderer, error) {
	if canvas == nil {
		return nil, ErrCanvasUnconfigured
	}
	r := &Renderer{
		canvas:  canvas,
		palette: palette.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r, nil
}

// Render replaces the live chart with one drawn from labels and values.
// Values are raw magnitudes; the canvas derives proportions. Invalid input is
// rejected before the existing chart is touched.
func (r *Renderer) Render(labels []string, values []float64) error {
	if len(labels) != len(values) {
		return fmt.Errorf("%w: %d labels, %d values", ErrLengthMismatch, len(labels), len(values))
	}
	if len(values) == 0 {
		return ErrEmptyDistribution
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%w: index %d is %v", ErrInvalidValue, i, v)
		}
	}

	colors, err := r.palette.Take(len(values))
	if err != nil {
		return fmt.Errorf("chart: %w", err)
	}

	spec := Spec{
		Labels:         append([]string(nil), labels...),
		Values:         append([]float64(nil), values...),
		Colors:         colors,
		Cutout:         0.6,
		LegendPosition: LegendBottom,
		LegendBoxWidth: 14,
		BorderWidth:    0,
		HoverOffset:    4,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.disposeLocked()

	handle, err := r.canvas.Create(spec)
	if err != nil {
		return fmt.Errorf("chart: create: %w", err)
	}
	r.handle = handle
	return nil
}

// RenderPlaceholder draws the empty state: one full sector under
// PlaceholderLabel.
func (r *Renderer) RenderPlaceholder() error {
	return r.Render([]string{PlaceholderLabel}, []float64{1})
}

// Dispose destroys the live chart, if any. It is safe to call repeatedly.
func (r *Renderer) Dispose() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.disposeLocked()
}

// Live reports whether a chart instance currently exists.
func (r *Renderer) Live() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.handle != nil
}

// Palette returns the colors assigned by position.
func (r *Renderer) Palette() palette.Palette {
	return r.palette
}

func (r *Renderer) disposeLocked() {
	if r.handle == nil {
		return
	}
	r.handle.Destroy()
	r.handle = nil
}
