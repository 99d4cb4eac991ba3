package snapshot

import (
	"math"
	"strconv"
	"strings"

	"github.com/goliatone/go-triage/pkg/model"
)

// NormalizeText trims surrounding whitespace. Empty results are allowed.
func NormalizeText(raw string) model.Value {
	return model.StringValue(strings.TrimSpace(raw))
}

// NormalizeEnum passes the selected option through untouched.
func NormalizeEnum(raw string) model.Value {
	return model.StringValue(raw)
}

// NormalizeNumeric substitutes 0 for an empty control. Decimal input becomes
// a number; anything else is forwarded as text for the service to coerce.
func NormalizeNumeric(raw string) model.Value {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return model.NumberValue(0)
	}
	n, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return model.StringValue(trimmed)
	}
	return model.NumberValue(n)
}

// NormalizeFlag maps a checkbox state onto 1/0.
func NormalizeFlag(checked bool) model.Value {
	return model.FlagValue(checked)
}
