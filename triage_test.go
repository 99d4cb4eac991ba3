package triage

import (
	"io/fs"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-triage/pkg/config"
	"github.com/goliatone/go-triage/pkg/model"
	"github.com/goliatone/go-triage/pkg/snapshot"
	"github.com/goliatone/go-triage/pkg/stubservice"
	"github.com/goliatone/go-triage/pkg/testsupport"
)

func TestEmbeddedTemplatesContainsPage(t *testing.T) {
	data, err := fs.ReadFile(EmbeddedTemplates(), "templates/page.html.tpl")
	if err != nil {
		t.Fatalf("expected page template to be readable: %v", err)
	}
	if !strings.Contains(string(data), `id="btnDiag"`) {
		t.Fatalf("expected page template to include the submit button")
	}
}

func TestContractDocumentDescribesPredict(t *testing.T) {
	if !strings.Contains(string(ContractDocument()), "/api/predict:") {
		t.Fatalf("expected contract to describe the predict endpoint")
	}
}

func TestNewPredictorAgainstStubService(t *testing.T) {
	stub := httptest.NewServer(stubservice.New().Handler())
	t.Cleanup(stub.Close)

	cfg := config.Default().Predictor
	cfg.BaseURL = stub.URL
	cfg.Timeout = config.Duration{Duration: 2 * time.Second}

	predictor, err := NewPredictor(cfg)
	if err != nil {
		t.Fatalf("new predictor: %v", err)
	}
	req := snapshot.NewReader(model.DefaultCatalog()).Read(testsupport.FilledControls())
	resp, err := predictor.Predict(testsupport.Context(), req)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if !resp.OK || len(resp.Top3) == 0 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestNewPredictorRejectsBadURL(t *testing.T) {
	cfg := config.Default().Predictor
	cfg.BaseURL = "localhost:5000"
	if _, err := NewPredictor(cfg); err == nil {
		t.Fatalf("expected error for a base URL without scheme")
	}
}

func TestNewWebServerServesPage(t *testing.T) {
	srv, err := NewWebServer(config.Default(), stubservice.New(), nil)
	if err != nil {
		t.Fatalf("new web server: %v", err)
	}
	t.Cleanup(srv.Close)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), config.Default().View.ChartTitle) {
		t.Fatalf("chart title missing from page")
	}
}
