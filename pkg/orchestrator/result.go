package orchestrator

import (
	"time"

	"github.com/goliatone/go-triage/pkg/model"
)

// Status is the terminal state of one submission.
type Status string

const (
	StatusRendered Status = "rendered"
	StatusFailed   Status = "failed"
	StatusBusy     Status = "busy"
)

// Result describes what a submission did. Request is the payload that was
// sent; Top is the distribution both views now show.
type Result struct {
	Status   Status
	Request  model.PredictionRequest
	Top      []model.Entry
	Failure  *Failure
	Duration time.Duration
}

// Err returns nil when the views were updated, ErrBusy when the submission
// was ignored, or the Failure.
func (r Result) Err() error {
	switch r.Status {
	case StatusRendered:
		return nil
	case StatusBusy:
		return ErrBusy
	}
	if r.Failure != nil {
		return r.Failure
	}
	return nil
}
