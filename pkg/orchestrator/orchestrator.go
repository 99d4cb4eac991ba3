package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/goliatone/go-triage/pkg/client"
	"github.com/goliatone/go-triage/pkg/model"
	"github.com/goliatone/go-triage/pkg/snapshot"
)

// Reader snapshots the form controls.
type Reader interface {
	Read(src snapshot.Source) model.PredictionRequest
}

// Predictor performs the single round trip to the prediction service.
type Predictor interface {
	Predict(ctx context.Context, req model.PredictionRequest) (model.PredictionResponse, error)
}

// PredictorFunc adapts a function to the Predictor interface.
type PredictorFunc func(ctx context.Context, req model.PredictionRequest) (model.PredictionResponse, error)

func (f PredictorFunc) Predict(ctx context.Context, req model.PredictionRequest) (model.PredictionResponse, error) {
	return f(ctx, req)
}

// DistributionRenderer draws the donut.
type DistributionRenderer interface {
	Render(labels []string, values []float64) error
}

// RankingRenderer rebuilds the ranked bars in two steps: Prepare validates
// the entries and builds the markup, the returned commit swaps it in.
type RankingRenderer interface {
	Prepare(top []model.Entry) (commit func() error, err error)
}

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithReader overrides the default snapshot reader.
func WithReader(reader Reader) Option {
	return func(o *Orchestrator) {
		o.reader = reader
	}
}

// WithSource sets the control source used by Submit.
func WithSource(src snapshot.Source) Option {
	return func(o *Orchestrator) {
		o.source = src
	}
}

// WithPredictor injects the prediction service.
func WithPredictor(predictor Predictor) Option {
	return func(o *Orchestrator) {
		o.predictor = predictor
	}
}

// WithChart injects the distribution renderer.
func WithChart(renderer DistributionRenderer) Option {
	return func(o *Orchestrator) {
		o.chart = renderer
	}
}

// WithRanking injects the ranking renderer.
func WithRanking(renderer RankingRenderer) Option {
	return func(o *Orchestrator) {
		o.ranking = renderer
	}
}

// WithNotifier sets where failures are surfaced.
func WithNotifier(notifier Notifier) Option {
	return func(o *Orchestrator) {
		o.notifier = notifier
	}
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// Orchestrator runs submissions. At most one submission is in flight; others
// arriving meanwhile are ignored and reported as busy.
type Orchestrator struct {
	reader        Reader
	source        snapshot.Source
	predictor     Predictor
	chart         DistributionRenderer
	ranking       RankingRenderer
	notifier      Notifier
	logger        *slog.Logger
	initialiseErr error
	pending       atomic.Bool
}

// New constructs an Orchestrator. Missing optional collaborators get the
// built-in defaults; missing required ones are reported by every Submit.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

func (o *Orchestrator) applyDefaults() {
	if o.reader == nil {
		o.reader = snapshot.NewReader(model.DefaultCatalog())
	}
	if o.notifier == nil {
		o.notifier = nopNotifier{}
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	var missing []error
	if o.predictor == nil {
		missing = append(missing, errors.New("orchestrator: predictor is required"))
	}
	if o.chart == nil {
		missing = append(missing, errors.New("orchestrator: chart renderer is required"))
	}
	if o.ranking == nil {
		missing = append(missing, errors.New("orchestrator: ranking renderer is required"))
	}
	o.initialiseErr = errors.Join(missing...)
}

// Err reports configuration problems found by New.
func (o *Orchestrator) Err() error {
	return o.initialiseErr
}

// Pending reports whether a submission is in flight.
func (o *Orchestrator) Pending() bool {
	return o.pending.Load()
}

// Submit snapshots the configured source and runs one prediction.
func (o *Orchestrator) Submit(ctx context.Context) Result {
	return o.SubmitFrom(ctx, o.source)
}

// SubmitFrom runs one prediction for the controls in src.
func (o *Orchestrator) SubmitFrom(ctx context.Context, src snapshot.Source) Result {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := o.initialiseErr; err != nil {
		return Result{Status: StatusFailed, Failure: &Failure{Kind: KindConfig, Message: err.Error(), Err: err}}
	}
	if src == nil {
		panic("orchestrator: control source is required")
	}

	if !o.pending.CompareAndSwap(false, true) {
		o.logger.DebugContext(ctx, "submission ignored, another is pending")
		return Result{Status: StatusBusy}
	}
	defer o.pending.Store(false)

	started := time.Now()
	req := o.reader.Read(src)
	result := Result{Request: req}

	if err := ctx.Err(); err != nil {
		return o.fail(ctx, result, started, &Failure{Kind: KindTransport, Message: err.Error(), Err: err})
	}

	resp, err := o.predictor.Predict(ctx, req)
	if err != nil {
		return o.fail(ctx, result, started, classify(err))
	}
	if !resp.OK {
		message := resp.FailureMessage()
		return o.fail(ctx, result, started, &Failure{Kind: KindService, Message: message})
	}
	if len(resp.Top3) == 0 {
		err := fmt.Errorf("%w: ok response without entries", client.ErrMalformed)
		return o.fail(ctx, result, started, &Failure{Kind: KindMalformed, Message: err.Error(), Err: err})
	}

	top := append([]model.Entry(nil), resp.Top3...)
	// The bars are prepared before the donut is replaced so a ranking
	// rejection leaves both views on the previous prediction.
	commitBars, err := o.ranking.Prepare(top)
	if err != nil {
		return o.fail(ctx, result, started, &Failure{Kind: KindRender, Message: err.Error(), Err: err})
	}
	if err := o.chart.Render(model.Labels(top), model.Probabilities(top)); err != nil {
		return o.fail(ctx, result, started, &Failure{Kind: KindRender, Message: err.Error(), Err: err})
	}
	if err := commitBars(); err != nil {
		return o.fail(ctx, result, started, &Failure{Kind: KindRender, Message: err.Error(), Err: err})
	}

	result.Status = StatusRendered
	result.Top = top
	result.Duration = time.Since(started)
	o.logger.InfoContext(ctx, "prediction rendered",
		"entries", len(top),
		"first", top[0].Label,
		"duration", result.Duration,
	)
	return result
}

func (o *Orchestrator) fail(ctx context.Context, result Result, started time.Time, failure *Failure) Result {
	result.Status = StatusFailed
	result.Failure = failure
	result.Duration = time.Since(started)
	o.logger.WarnContext(ctx, "prediction failed",
		"kind", string(failure.Kind),
		"message", failure.Message,
		"duration", result.Duration,
	)
	o.notifier.Notify(ctx, failure)
	return result
}

func classify(err error) *Failure {
	switch {
	case errors.Is(err, client.ErrMalformed):
		return &Failure{Kind: KindMalformed, Message: err.Error(), Err: err}
	default:
		return &Failure{Kind: KindTransport, Message: err.Error(), Err: err}
	}
}
