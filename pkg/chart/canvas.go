package chart

// LegendBottom places the legend rows under the ring.
const LegendBottom = "bottom"

// Spec is everything a Canvas needs to draw one donut. Visual parameters are
// fixed by the Renderer; only the distribution changes between renders.
type Spec struct {
	Labels []string
	Values []float64
	Colors []string

	// Cutout is the inner radius as a fraction of the outer radius.
	Cutout         float64
	LegendPosition string
	LegendBoxWidth int
	BorderWidth    int
	HoverOffset    int
}

// Handle is one live chart instance drawn on a Canvas.
type Handle interface {
	Destroy()
}

// Canvas is the fixed drawing target the donut is bound to.
type Canvas interface {
	Create(spec Spec) (Handle, error)
}

// CanvasFunc adapts a function to the Canvas interface.
type CanvasFunc func(spec Spec) (Handle, error)

func (f CanvasFunc) Create(spec Spec) (Handle, error) {
	return f(spec)
}
