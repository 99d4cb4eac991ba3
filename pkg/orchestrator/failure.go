package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
)

// ErrBusy is reported when a submission arrives while another is pending.
var ErrBusy = errors.New("orchestrator: submission already in flight")

// AlertPrefix precedes every user visible failure message.
const AlertPrefix = "Erro: "

// Kind classifies a failed submission.
type Kind string

const (
	KindTransport Kind = "transport"
	KindMalformed Kind = "malformed"
	KindService   Kind = "service"
	KindRender    Kind = "render"
	KindConfig    Kind = "config"
)

// Failure is the structured outcome of a submission that did not render.
type Failure struct {
	Kind    Kind
	Message string
	Err     error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("orchestrator: %s: %s", f.Kind, f.Message)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Alert is the text shown to the user.
func (f *Failure) Alert() string {
	return AlertPrefix + f.Message
}

// Notifier surfaces failures to the user. Notify blocks until the user has
// been told.
type Notifier interface {
	Notify(ctx context.Context, failure *Failure)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, failure *Failure)

func (f NotifierFunc) Notify(ctx context.Context, failure *Failure) {
	f(ctx, failure)
}

// AlertNotifier writes one alert line per failure.
type AlertNotifier struct {
	mu  sync.Mutex
	out io.Writer
}

// NewAlertNotifier writes alerts to out.
func NewAlertNotifier(out io.Writer) *AlertNotifier {
	return &AlertNotifier{out: out}
}

func (n *AlertNotifier) Notify(_ context.Context, failure *Failure) {
	if n == nil || n.out == nil || failure == nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	_, _ = io.WriteString(n.out, failure.Alert()+"\n")
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, *Failure) {}
