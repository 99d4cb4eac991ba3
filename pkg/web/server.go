// Package web serves the triage page: the catalog driven form, the donut and
// the ranked bars. The page holds a single view per process; POST / runs one
// submission through the orchestrator and re-renders the page, keeping the
// previous chart and bars when the submission fails.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/goliatone/go-triage/pkg/chart"
	"github.com/goliatone/go-triage/pkg/model"
	"github.com/goliatone/go-triage/pkg/orchestrator"
	"github.com/goliatone/go-triage/pkg/palette"
	"github.com/goliatone/go-triage/pkg/ranking"
	"github.com/goliatone/go-triage/pkg/render/template"
	"github.com/goliatone/go-triage/pkg/render/template/gotemplate"
	"github.com/goliatone/go-triage/pkg/snapshot"
)

const (
	pageTemplate = "templates/page.html.tpl"
	maxFormSize  = 64 << 10
	busyMessage  = "Uma predição já está em andamento."

	missingFieldsMessage = "campos ausentes: "
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPalette sets the colors shared by the donut and the bars.
func WithPalette(p palette.Palette) Option {
	return func(s *Server) {
		if len(p) > 0 {
			s.palette = p
		}
	}
}

// WithCaption overrides the ranking caption.
func WithCaption(caption string) Option {
	return func(s *Server) {
		if caption != "" {
			s.caption = caption
		}
	}
}

// WithTitle sets the page heading.
func WithTitle(title string) Option {
	return func(s *Server) {
		if title != "" {
			s.title = title
		}
	}
}

// WithChartTitle sets the accessible title of the donut.
func WithChartTitle(title string) Option {
	return func(s *Server) {
		if title != "" {
			s.chartTitle = title
		}
	}
}

// WithCatalog overrides the form fields.
func WithCatalog(catalog model.Catalog) Option {
	return func(s *Server) {
		if len(catalog) > 0 {
			s.catalog = catalog
		}
	}
}

// WithTemplateDir makes templates under dir take precedence over the
// embedded ones. A page override lives at dir/templates/page.html.tpl.
func WithTemplateDir(dir string) Option {
	return func(s *Server) {
		s.templateDir = dir
	}
}

// WithTemplateRenderer swaps the engine rendering the page. It must resolve
// "templates/page.html.tpl".
func WithTemplateRenderer(renderer template.TemplateRenderer) Option {
	return func(s *Server) {
		if renderer != nil {
			s.templates = renderer
		}
	}
}

// Server owns the page wide chart and bar list.
type Server struct {
	logger      *slog.Logger
	palette     palette.Palette
	caption     string
	title       string
	chartTitle  string
	catalog     model.Catalog
	templates   template.TemplateRenderer
	templateDir string

	canvas *chart.SVGCanvas
	donut  *chart.Renderer
	bars   *ranking.Buffer
	orch   *orchestrator.Orchestrator

	mu   sync.Mutex
	form url.Values
}

// New wires the views and the orchestrator around predictor and draws the
// placeholder chart.
func New(predictor orchestrator.Predictor, options ...Option) (*Server, error) {
	if predictor == nil {
		return nil, errors.New("web: predictor is required")
	}
	s := &Server{
		logger:     slog.Default(),
		palette:    palette.Default(),
		caption:    ranking.DefaultCaption,
		title:      "Triagem de sintomas",
		chartTitle: "Distribuição de diagnósticos",
		catalog:    model.DefaultCatalog(),
		bars:       &ranking.Buffer{},
		form:       url.Values{},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	if s.templates == nil {
		engine, err := gotemplate.New(
			gotemplate.WithName("web"),
			gotemplate.WithBaseDir(s.templateDir),
			gotemplate.WithFS(TemplatesFS()),
		)
		if err != nil {
			return nil, fmt.Errorf("web: configure template renderer: %w", err)
		}
		s.templates = engine
	}
	if err := s.templates.GlobalContext(map[string]any{"title": s.title}); err != nil {
		return nil, fmt.Errorf("web: page globals: %w", err)
	}

	canvas, err := chart.NewSVGCanvas(chart.WithTitle(s.chartTitle))
	if err != nil {
		return nil, fmt.Errorf("web: %w", err)
	}
	donut, err := chart.New(canvas, chart.WithPalette(s.palette))
	if err != nil {
		return nil, fmt.Errorf("web: %w", err)
	}
	if err := donut.RenderPlaceholder(); err != nil {
		return nil, fmt.Errorf("web: placeholder chart: %w", err)
	}
	list, err := ranking.New(s.bars, ranking.WithPalette(s.palette), ranking.WithCaption(s.caption))
	if err != nil {
		return nil, fmt.Errorf("web: %w", err)
	}

	s.canvas = canvas
	s.donut = donut
	s.orch = orchestrator.New(
		orchestrator.WithReader(snapshot.NewReader(s.catalog)),
		orchestrator.WithPredictor(predictor),
		orchestrator.WithChart(donut),
		orchestrator.WithRanking(list),
		orchestrator.WithNotifier(alertNotifier{}),
		orchestrator.WithLogger(s.logger),
	)
	if err := s.orch.Err(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close releases the live chart.
func (s *Server) Close() {
	s.donut.Dispose()
}

// Handler routes the page endpoints.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("POST /{$}", s.handleSubmit)
	mux.HandleFunc("GET /chart.svg", s.handleChart)
	return mux
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	form := s.form
	s.mu.Unlock()
	s.writePage(w, r, http.StatusOK, form, "")
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	form := r.PostForm
	src := snapshot.FromForm(form, s.catalog)

	if err := snapshot.Verify(src, s.catalog); err != nil {
		var missing *snapshot.MissingControlError
		alert := orchestrator.AlertPrefix + err.Error()
		if errors.As(err, &missing) {
			alert = orchestrator.AlertPrefix + missingFieldsMessage + strings.Join(missing.Fields, ", ")
		}
		s.logger.WarnContext(r.Context(), "submission rejected", "error", err)
		s.writePage(w, r, http.StatusBadRequest, form, alert)
		return
	}

	ctx, slot := withAlertSlot(r.Context())
	result := s.orch.SubmitFrom(ctx, src)

	status := http.StatusOK
	alert := slot.message()
	switch result.Status {
	case orchestrator.StatusBusy:
		status = http.StatusConflict
		alert = busyMessage
	case orchestrator.StatusFailed:
		if result.Failure != nil && result.Failure.Kind == orchestrator.KindTransport {
			status = http.StatusBadGateway
		}
	}

	if result.Status != orchestrator.StatusBusy {
		s.mu.Lock()
		s.form = form
		s.mu.Unlock()
	}

	s.writePage(w, r, status, form, alert)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	svg := s.canvas.SVG()
	if svg == nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(svg)
}

func (s *Server) writePage(w http.ResponseWriter, r *http.Request, status int, form url.Values, alert string) {
	view := pageView{
		Fields: fieldViews(s.catalog, form),
		Chart:  s.canvas.Inline(),
		Bars:   s.bars.String(),
		Alert:  alert,
	}
	out, err := s.templates.RenderTemplate(pageTemplate, view)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "render page", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(out))
}

type alertKey struct{}

type alertSlot struct {
	mu   sync.Mutex
	text string
}

func (a *alertSlot) message() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.text
}

func withAlertSlot(ctx context.Context) (context.Context, *alertSlot) {
	slot := &alertSlot{}
	return context.WithValue(ctx, alertKey{}, slot), slot
}

// alertNotifier stores the alert in the slot of the request being served.
type alertNotifier struct{}

func (alertNotifier) Notify(ctx context.Context, failure *orchestrator.Failure) {
	slot, ok := ctx.Value(alertKey{}).(*alertSlot)
	if !ok || failure == nil {
		return
	}
	slot.mu.Lock()
	slot.text = failure.Alert()
	slot.mu.Unlock()
}
