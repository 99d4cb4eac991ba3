package stubservice

import (
	"sort"

	"github.com/goliatone/go-triage/pkg/model"
)

// Classes lists the diagnoses the stand-in service knows, in rule priority
// order.
var Classes = []string{
	"Diabetes Tipo 1",
	"Pneumonia",
	"Crise Asmática",
	"Hipotensão",
	"Desidratação",
	"Gripe",
}

const (
	baseWeight = 0.2
	ruleBonus  = 3.0
)

// Scored is the full distribution sorted by descending probability.
type Scored struct {
	Classes []string
	Probs   []float64
}

// Top returns the first n entries.
func (s Scored) Top(n int) []model.Entry {
	if n > len(s.Classes) {
		n = len(s.Classes)
	}
	out := make([]model.Entry, n)
	for i := 0; i < n; i++ {
		out[i] = model.Entry{Label: s.Classes[i], Probability: s.Probs[i]}
	}
	return out
}

// Score weighs every class from partial evidence and boosts the first class
// whose complete rule holds. Weights are normalized to sum to 1. Ties keep
// Classes order.
func Score(f Features) Scored {
	weights := []float64{
		baseWeight + b(f.Flags.SedeExcessiva)*1.5 + b(f.Idade < 18) + b(f.Temperatura > 36.5)*0.5,
		baseWeight + b(f.Flags.Tosse) + b(f.Flags.FaltaAr) + b(f.Saturacao < 93)*1.5,
		baseWeight + b(f.Flags.FaltaAr)*1.5 + b(f.Saturacao < 90)*1.5,
		baseWeight + b(f.PressaoSistolica < 90)*2 + b(f.PressaoDiastolica < 60)*2,
		baseWeight + b(f.Flags.Vomitos)*1.5 + b(f.Flags.SedeExcessiva),
		baseWeight + 1 + b(f.Temperatura > 37.5) + b(f.Flags.Tosse)*0.5 + b(f.Flags.Fadiga)*0.5,
	}
	weights[matchingRule(f)] += ruleBonus

	total := 0.0
	for _, w := range weights {
		total += w
	}

	idx := make([]int, len(Classes))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, c int) bool {
		return weights[idx[a]] > weights[idx[c]]
	})

	out := Scored{
		Classes: make([]string, len(idx)),
		Probs:   make([]float64, len(idx)),
	}
	for i, k := range idx {
		out.Classes[i] = Classes[k]
		out.Probs[i] = weights[k] / total
	}
	return out
}

// matchingRule returns the index of the first class whose rule holds. Gripe
// is the fallback.
func matchingRule(f Features) int {
	switch {
	case f.Flags.SedeExcessiva && f.Idade < 18 && f.Temperatura > 36.5:
		return 0
	case f.Flags.Tosse && f.Flags.FaltaAr && f.Saturacao < 93:
		return 1
	case f.Flags.FaltaAr && f.Saturacao < 90:
		return 2
	case f.PressaoSistolica < 90 || f.PressaoDiastolica < 60:
		return 3
	case f.Flags.Vomitos && f.Flags.SedeExcessiva:
		return 4
	}
	return 5
}

func b(v bool) float64 {
	if v {
		return 1
	}
	return 0
}
