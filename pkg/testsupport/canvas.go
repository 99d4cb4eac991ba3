package testsupport

import (
	"sync"

	"github.com/goliatone/go-triage/pkg/chart"
)

// CountingCanvas records every chart created and destroyed on it.
type CountingCanvas struct {
	mu        sync.Mutex
	specs     []chart.Spec
	destroyed int
	live      int
}

var _ chart.Canvas = (*CountingCanvas)(nil)

// NewCountingCanvas returns an empty CountingCanvas.
func NewCountingCanvas() *CountingCanvas {
	return &CountingCanvas{}
}

func (c *CountingCanvas) Create(spec chart.Spec) (chart.Handle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.specs = append(c.specs, spec)
	c.live++
	return &countingHandle{canvas: c}, nil
}

// Created reports how many charts were created.
func (c *CountingCanvas) Created() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.specs)
}

// Destroyed reports how many charts were destroyed.
func (c *CountingCanvas) Destroyed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.destroyed
}

// Live reports how many charts exist right now.
func (c *CountingCanvas) Live() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.live
}

// Last returns the most recently created spec, or the zero Spec.
func (c *CountingCanvas) Last() chart.Spec {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.specs) == 0 {
		return chart.Spec{}
	}
	return c.specs[len(c.specs)-1]
}

type countingHandle struct {
	once   sync.Once
	canvas *CountingCanvas
}

func (h *countingHandle) Destroy() {
	h.once.Do(func() {
		h.canvas.mu.Lock()
		defer h.canvas.mu.Unlock()
		h.canvas.destroyed++
		h.canvas.live--
	})
}
