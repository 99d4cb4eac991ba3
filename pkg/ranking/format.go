package ranking

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-triage/pkg/render"
	"github.com/goliatone/go-triage/pkg/render/template"
	"github.com/goliatone/go-triage/pkg/render/template/gotemplate"
)

const barsTemplate = "templates/bars.html.tpl"

// Format turns a View into container markup.
type Format interface {
	render.Format
	Render(view View) ([]byte, error)
}

// HTMLFormat renders the bar list through the template engine. Labels are
// escaped by the engine.
type HTMLFormat struct {
	templates template.TemplateRenderer
}

var _ Format = (*HTMLFormat)(nil)

// NewHTMLFormat builds the HTML format. A nil renderer selects the embedded
// template.
func NewHTMLFormat(renderer template.TemplateRenderer) (*HTMLFormat, error) {
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithName("ranking"),
			gotemplate.WithFS(TemplatesFS()),
		)
		if err != nil {
			return nil, fmt.Errorf("ranking: configure template renderer: %w", err)
		}
		renderer = engine
	}
	return &HTMLFormat{templates: renderer}, nil
}

func (f *HTMLFormat) Name() string        { return "html" }
func (f *HTMLFormat) ContentType() string { return "text/html; charset=utf-8" }

func (f *HTMLFormat) Render(view View) ([]byte, error) {
	out, err := f.templates.RenderTemplate(barsTemplate, view)
	if err != nil {
		return nil, fmt.Errorf("ranking: render html: %w", err)
	}
	return []byte(out), nil
}

// TextFormat draws the bars with block characters for terminals.
type TextFormat struct {
	Cells int
}

var _ Format = TextFormat{}

func (TextFormat) Name() string        { return "text" }
func (TextFormat) ContentType() string { return "text/plain; charset=utf-8" }

func (f TextFormat) Render(view View) ([]byte, error) {
	cells := f.Cells
	if cells <= 0 {
		cells = 20
	}

	labelWidth := 0
	for _, row := range view.Rows {
		if n := utf8.RuneCountInString(row.Label); n > labelWidth {
			labelWidth = n
		}
	}

	var b strings.Builder
	b.WriteString(view.Caption)
	b.WriteByte('\n')
	for _, row := range view.Rows {
		filled := clamp((row.Percent*cells+50)/100, 0, cells)
		b.WriteString(row.Label)
		b.WriteString(strings.Repeat(" ", labelWidth-utf8.RuneCountInString(row.Label)+2))
		b.WriteString(strings.Repeat("█", filled))
		b.WriteString(strings.Repeat("░", cells-filled))
		fmt.Fprintf(&b, " %4s\n", row.Text)
	}
	return []byte(b.String()), nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NewFormats returns a registry holding the built-in formats.
func NewFormats() (*render.Registry[Format], error) {
	htmlFormat, err := NewHTMLFormat(nil)
	if err != nil {
		return nil, err
	}
	registry := render.NewRegistry[Format]()
	if err := registry.Register(htmlFormat); err != nil {
		return nil, err
	}
	if err := registry.Register(TextFormat{}); err != nil {
		return nil, err
	}
	return registry, nil
}

// LookupFormat resolves a built-in format by name.
func LookupFormat(name string) (Format, error) {
	formats, err := NewFormats()
	if err != nil {
		return nil, err
	}
	format, err := formats.Get(strings.TrimSpace(name))
	if err != nil {
		return nil, fmt.Errorf("ranking: unknown format %q, available: %s", name, strings.Join(formats.List(), ", "))
	}
	return format, nil
}
