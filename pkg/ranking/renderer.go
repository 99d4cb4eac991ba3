// Package ranking rebuilds the ranked bar list of a distribution. Every call
// replaces the whole container content; there is no diffing. Colors follow
// the same positional palette as the donut so entry i looks the same in both
// views.
package ranking

import (
	"errors"
	"fmt"
	"sync"

	"github.com/goliatone/go-triage/pkg/model"
	"github.com/goliatone/go-triage/pkg/palette"
)

// ErrContainerUnconfigured is returned when no container is supplied.
var ErrContainerUnconfigured = errors.New("ranking: container is required")

// Option configures a Renderer.
type Option func(*Renderer)

// WithCaption overrides DefaultCaption.
func WithCaption(caption string) Option {
	return func(r *Renderer) {
		r.caption = caption
	}
}

// WithPalette overrides the default palette.
func WithPalette(p palette.Palette) Option {
	return func(r *Renderer) {
		if len(p) > 0 {
			r.palette = p
		}
	}
}

// WithFormat selects the output format. HTML is the default.
func WithFormat(format Format) Option {
	return func(r *Renderer) {
		if format != nil {
			r.format = format
		}
	}
}

// Renderer owns the content of one ranking container.
type Renderer struct {
	mu        sync.Mutex
	container Container
	format    Format
	caption   string
	palette   palette.Palette
	last      View
}

// New binds a Renderer to container.
func New(container Container, options ...Option) (*Renderer, error) {
	if container == nil {
		return nil, ErrContainerUnconfigured
	}
	r := &Renderer{
		container: container,
		caption:   DefaultCaption,
		palette:   palette.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.format == nil {
		format, err := NewHTMLFormat(nil)
		if err != nil {
			return nil, err
		}
		r.format = format
	}
	return r, nil
}

// View builds the view model for top without touching the container.
func (r *Renderer) View(top []model.Entry) (View, error) {
	rows, err := Rows(top, r.palette)
	if err != nil {
		return View{}, err
	}
	return View{Caption: r.caption, Rows: rows}, nil
}

// Render replaces the container content with the caption followed by one row
// per entry, in received order.
func (r *Renderer) Render(top []model.Entry) error {
	commit, err := r.Prepare(top)
	if err != nil {
		return err
	}
	return commit()
}

// Prepare builds the rows and markup for top without touching the container.
// The returned commit swaps the container content; every error caused by the
// entries themselves is reported by Prepare.
func (r *Renderer) Prepare(top []model.Entry) (func() error, error) {
	view, err := r.View(top)
	if err != nil {
		return nil, err
	}
	markup, err := r.format.Render(view)
	if err != nil {
		return nil, err
	}

	commit := func() error {
		r.mu.Lock()
		defer r.mu.Unlock()

		if err := r.container.Replace(markup); err != nil {
			return fmt.Errorf("ranking: replace container: %w", err)
		}
		r.last = view
		return nil
	}
	return commit, nil
}

// Current returns the view model of the last successful render.
func (r *Renderer) Current() View {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := View{Caption: r.last.Caption}
	if r.last.Rows != nil {
		out.Rows = append([]Row(nil), r.last.Rows...)
	}
	return out
}

// Palette returns the colors assigned by position.
func (r *Renderer) Palette() palette.Palette {
	return r.palette
}

// Format returns the configured output format.
func (r *Renderer) Format() Format {
	return r.format
}
