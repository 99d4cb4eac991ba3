package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-triage/pkg/model"
	"github.com/goliatone/go-triage/pkg/snapshot"
)

// ScenarioTop3 is the happy path distribution used across package tests.
func ScenarioTop3() []model.Entry {
	return []model.Entry{
		{Label: "Gripe", Probability: 0.62},
		{Label: "Dengue", Probability: 0.25},
		{Label: "Covid-19", Probability: 0.13},
	}
}

// SuccessResponse wraps entries into an ok:true response.
func SuccessResponse(entries []model.Entry) model.PredictionResponse {
	return model.PredictionResponse{OK: true, Top3: entries}
}

// FailureResponse builds an ok:false response carrying message.
func FailureResponse(message string) model.PredictionResponse {
	return model.PredictionResponse{OK: false, Error: message}
}

// FilledControls returns a control source with every catalog field populated
// with plausible values.
func FilledControls() *snapshot.Controls {
	controls := snapshot.Blank(model.DefaultCatalog())
	controls.
		Set("nome", "Maria").
		Set("sexo", "Feminino").
		Set("idade", "34").
		Set("temperatura", "38.5").
		Set("frequencia_cardiaca", "96").
		Set("pressao_sistolica", "120").
		Set("pressao_diastolica", "80").
		Set("saturacao", "97").
		Set("sintomas_texto", "dor no corpo").
		Check("tosse", true).
		Check("fadiga", true)
	return controls
}

// MustJSON marshals v or fails the test.
func MustJSON(t *testing.T, v any) []byte {
	t.Helper()

	payload, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal json: %v", err)
	}
	return payload
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureOutput runs render against a buffer and returns both the returned
// string and what was written, so tests can assert they match.
func CaptureOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	return out, buf.String()
}
