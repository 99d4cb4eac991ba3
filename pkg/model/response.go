package model

import "math"

// DefaultFailureMessage is surfaced when the service reports a failure
// without a message.
const DefaultFailureMessage = "Erro desconhecido"

// Entry is one ranked diagnosis returned by the service.
type Entry struct {
	Label       string  `json:"label"`
	Probability float64 `json:"prob"`
}

// PredictionResponse mirrors the JSON body returned by /api/predict.
// Classes and Probs carry the full sorted distribution when the service
// includes it; the views only consume Top3.
type PredictionResponse struct {
	OK      bool      `json:"ok"`
	Top3    []Entry   `json:"top3,omitempty"`
	Error   string    `json:"error,omitempty"`
	Classes []string  `json:"classes,omitempty"`
	Probs   []float64 `json:"probs,omitempty"`
}

// FailureMessage returns the service message or the default fallback.
func (r PredictionResponse) FailureMessage() string {
	if r.Error != "" {
		return r.Error
	}
	return DefaultFailureMessage
}

// Labels returns the entry labels in order.
func Labels(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, entry := range entries {
		out[i] = entry.Label
	}
	return out
}

// Probabilities returns the entry probabilities in order.
func Probabilities(entries []Entry) []float64 {
	out := make([]float64, len(entries))
	for i, entry := range entries {
		out[i] = entry.Probability
	}
	return out
}

// Percent converts a probability into a whole percentage, rounding to the
// nearest integer (0.995 -> 100).
func Percent(probability float64) int {
	return int(math.Round(probability * 100))
}
