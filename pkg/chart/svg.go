package chart

import (
	"fmt"
	"sync"

	"github.com/goliatone/go-triage/pkg/render/template"
	"github.com/goliatone/go-triage/pkg/render/template/gotemplate"
)

const donutTemplate = "templates/donut.svg.tpl"

// SVGOption configures an SVGCanvas.
type SVGOption func(*SVGCanvas)

// WithTemplateRenderer swaps the template engine used to draw the donut. The
// renderer must resolve "templates/donut.svg.tpl".
func WithTemplateRenderer(renderer template.TemplateRenderer) SVGOption {
	return func(c *SVGCanvas) {
		if renderer != nil {
			c.templates = renderer
		}
	}
}

// WithTitle sets the accessible title of the drawn chart.
func WithTitle(title string) SVGOption {
	return func(c *SVGCanvas) {
		c.title = title
	}
}

// WithWidth sets the drawing width in pixels.
func WithWidth(width int) SVGOption {
	return func(c *SVGCanvas) {
		if width > 0 {
			c.width = width
		}
	}
}

// SVGCanvas is a Canvas that keeps the markup of the live chart in memory.
// Destroying a handle clears the markup only if that handle is still the
// current one.
type SVGCanvas struct {
	mu         sync.RWMutex
	templates  template.TemplateRenderer
	title      string
	width      int
	markup     []byte
	generation uint64
}

var _ Canvas = (*SVGCanvas)(nil)

// NewSVGCanvas builds a canvas backed by the embedded donut template.
func NewSVGCanvas(options ...SVGOption) (*SVGCanvas, error) {
	c := &SVGCanvas{
		title: "Distribuição de diagnósticos",
		width: defaultWidth,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}

	if c.templates == nil {
		engine, err := gotemplate.New(
			gotemplate.WithName("chart"),
			gotemplate.WithFS(TemplatesFS()),
		)
		if err != nil {
			return nil, fmt.Errorf("chart: configure template renderer: %w", err)
		}
		c.templates = engine
	}
	return c, nil
}

// Create draws spec and makes it the current markup.
func (c *SVGCanvas) Create(spec Spec) (Handle, error) {
	view := layout(spec, c.width, c.title)
	rendered, err := c.templates.RenderTemplate(donutTemplate, view)
	if err != nil {
		return nil, fmt.Errorf("chart: render svg: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.markup = []byte(rendered)
	return &svgHandle{canvas: c, generation: c.generation}, nil
}

// SVG returns a copy of the current markup, or nil when no chart is live.
func (c *SVGCanvas) SVG() []byte {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.markup == nil {
		return nil
	}
	out := make([]byte, len(c.markup))
	copy(out, c.markup)
	return out
}

// Inline returns the current markup passed through the SVG sanitizer, ready
// to be embedded in an HTML document.
func (c *SVGCanvas) Inline() string {
	markup := c.SVG()
	if markup == nil {
		return ""
	}
	return SanitizeSVG(string(markup))
}

func (c *SVGCanvas) release(generation uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generation == generation {
		c.markup = nil
	}
}

type svgHandle struct {
	once       sync.Once
	canvas     *SVGCanvas
	generation uint64
}

func (h *svgHandle) Destroy() {
	h.once.Do(func() {
		h.canvas.release(h.generation)
	})
}
