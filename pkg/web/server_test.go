package web_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/goliatone/go-triage/pkg/client"
	"github.com/goliatone/go-triage/pkg/model"
	"github.com/goliatone/go-triage/pkg/orchestrator"
	"github.com/goliatone/go-triage/pkg/testsupport"
	"github.com/goliatone/go-triage/pkg/web"
)

type scriptedPredictor struct {
	mu    sync.Mutex
	reply model.PredictionResponse
	last  model.PredictionRequest
}

func (p *scriptedPredictor) Predict(_ context.Context, req model.PredictionRequest) (model.PredictionResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.last = req
	return p.reply, nil
}

func (p *scriptedPredictor) set(reply model.PredictionResponse) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reply = reply
}

func newServer(t *testing.T, predictor orchestrator.Predictor) *httptest.Server {
	t.Helper()
	srv, err := web.New(predictor)
	if err != nil {
		t.Fatalf("new web server: %v", err)
	}
	t.Cleanup(srv.Close)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func filledForm() url.Values {
	return url.Values{
		"nome":                {"Maria"},
		"sexo":                {"Feminino"},
		"idade":               {"34"},
		"temperatura":         {"38.5"},
		"frequencia_cardiaca": {"96"},
		"pressao_sistolica":   {"120"},
		"pressao_diastolica":  {"80"},
		"saturacao":           {"97"},
		"sintomas_texto":      {"dor no corpo"},
		"tosse":               {"1"},
		"fadiga":              {"1"},
	}
}

func get(t *testing.T, target string) (int, string, string) {
	t.Helper()
	res, err := http.Get(target)
	if err != nil {
		t.Fatalf("get %s: %v", target, err)
	}
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)
	return res.StatusCode, res.Header.Get("Content-Type"), string(body)
}

func post(t *testing.T, target string, form url.Values) (int, string) {
	t.Helper()
	res, err := http.PostForm(target, form)
	if err != nil {
		t.Fatalf("post %s: %v", target, err)
	}
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)
	return res.StatusCode, string(body)
}

func TestPage_InitialState(t *testing.T) {
	ts := newServer(t, &scriptedPredictor{})

	status, ctype, body := get(t, ts.URL+"/")
	if status != http.StatusOK || !strings.HasPrefix(ctype, "text/html") {
		t.Fatalf("status=%d content-type=%q", status, ctype)
	}
	for _, field := range model.DefaultCatalog() {
		if !strings.Contains(body, `name="`+field.Name+`"`) {
			t.Fatalf("field %s missing from form", field.Name)
		}
	}
	if !strings.Contains(body, `id="btnDiag"`) || !strings.Contains(body, "<svg") {
		t.Fatalf("page missing button or placeholder chart:\n%s", body)
	}
	if strings.Contains(body, `role="alert"`) {
		t.Fatalf("initial page should not alert")
	}

	status, ctype, _ = get(t, ts.URL+"/chart.svg")
	if status != http.StatusOK || ctype != "image/svg+xml" {
		t.Fatalf("chart endpoint status=%d content-type=%q", status, ctype)
	}
}

func TestSubmit_RendersPrediction(t *testing.T) {
	predictor := &scriptedPredictor{reply: testsupport.SuccessResponse(testsupport.ScenarioTop3())}
	ts := newServer(t, predictor)

	status, body := post(t, ts.URL+"/", filledForm())
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	for _, want := range []string{"Gripe", "width: 62%;", "Dengue", "width: 25%;", "Covid-19", "width: 13%;"} {
		if !strings.Contains(body, want) {
			t.Fatalf("page missing %q", want)
		}
	}
	if !strings.Contains(body, `value="Maria"`) || !strings.Contains(body, `name="tosse" value="1" checked`) {
		t.Fatalf("form values were not kept")
	}

	if got, _ := predictor.last.Get("temperatura"); got.Str() != "38.5" {
		t.Fatalf("temperatura = %q", got.Str())
	}
	if got, _ := predictor.last.Get("vomitos"); got.Str() != "0" {
		t.Fatalf("unchecked flag = %q", got.Str())
	}

	_, _, svg := get(t, ts.URL+"/chart.svg")
	if !strings.Contains(svg, "<title>Gripe: 62%</title>") {
		t.Fatalf("chart not redrawn:\n%s", svg)
	}
}

func TestSubmit_FailureKeepsPreviousResult(t *testing.T) {
	predictor := &scriptedPredictor{reply: testsupport.SuccessResponse(testsupport.ScenarioTop3())}
	ts := newServer(t, predictor)

	if status, _ := post(t, ts.URL+"/", filledForm()); status != http.StatusOK {
		t.Fatalf("first submission status = %d", status)
	}
	_, _, before := get(t, ts.URL+"/chart.svg")

	predictor.set(testsupport.FailureResponse("modelo indisponível"))
	status, body := post(t, ts.URL+"/", filledForm())
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if !strings.Contains(body, "Erro: modelo indisponível") {
		t.Fatalf("alert missing:\n%s", body)
	}
	if !strings.Contains(body, "width: 62%;") {
		t.Fatalf("previous bars lost")
	}
	if _, _, after := get(t, ts.URL+"/chart.svg"); after != before {
		t.Fatalf("failure redrew the chart")
	}

	// The alert belongs to the failed submission only.
	_, _, page := get(t, ts.URL+"/")
	if strings.Contains(page, `role="alert"`) {
		t.Fatalf("alert leaked into a later page view")
	}
}

func TestNew_RequiresPredictor(t *testing.T) {
	if _, err := web.New(nil); err == nil {
		t.Fatalf("expected error without predictor")
	}
}

func TestSubmit_MissingFieldsAnswersBadRequest(t *testing.T) {
	predictor := &scriptedPredictor{reply: testsupport.SuccessResponse(testsupport.ScenarioTop3())}
	ts := newServer(t, predictor)

	status, body := post(t, ts.URL+"/", url.Values{"idade": {"30"}})
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d", status)
	}
	if !strings.Contains(body, "Erro: campos ausentes: nome, sexo") {
		t.Fatalf("alert does not name the missing fields:\n%s", body)
	}
	if strings.Contains(body, "campos ausentes: nome, sexo, idade") {
		t.Fatalf("posted field reported as missing")
	}
	if predictor.last.Len() != 0 {
		t.Fatalf("incomplete form reached the predictor")
	}

	// Flags are optional in a posted form: browsers omit unchecked boxes.
	form := filledForm()
	form.Del("tosse")
	form.Del("fadiga")
	if status, _ := post(t, ts.URL+"/", form); status != http.StatusOK {
		t.Fatalf("form without checked flags: status = %d", status)
	}
}

func TestSubmit_StatusMapping(t *testing.T) {
	closed := testsupport.NewPredictServer(t, http.StatusOK, testsupport.SuccessResponse(testsupport.ScenarioTop3()))
	unreachable, err := client.New(closed.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	closed.Close()

	gateway := testsupport.NewRawPredictServer(t, http.StatusBadGateway, "text/html", []byte("<html>502</html>"))
	malformed, err := client.New(gateway.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	tests := []struct {
		name      string
		predictor orchestrator.Predictor
		want      int
		wantAlert bool
	}{
		{name: "success", predictor: &scriptedPredictor{reply: testsupport.SuccessResponse(testsupport.ScenarioTop3())}, want: http.StatusOK},
		{name: "service failure", predictor: &scriptedPredictor{reply: testsupport.FailureResponse("modelo indisponível")}, want: http.StatusOK, wantAlert: true},
		{name: "transport failure", predictor: unreachable, want: http.StatusBadGateway, wantAlert: true},
		{name: "malformed reply", predictor: malformed, want: http.StatusOK, wantAlert: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newServer(t, tt.predictor)
			status, body := post(t, ts.URL+"/", filledForm())
			if status != tt.want {
				t.Fatalf("status = %d, want %d", status, tt.want)
			}
			if got := strings.Contains(body, `role="alert"`); got != tt.wantAlert {
				t.Fatalf("alert shown = %v, want %v", got, tt.wantAlert)
			}
		})
	}
}

func TestSubmit_BusyAnswersConflictAndKeepsForm(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	predictor := orchestrator.PredictorFunc(func(context.Context, model.PredictionRequest) (model.PredictionResponse, error) {
		once.Do(func() { close(entered) })
		<-release
		return testsupport.SuccessResponse(testsupport.ScenarioTop3()), nil
	})
	ts := newServer(t, predictor)

	done := make(chan int)
	go func() {
		res, err := http.PostForm(ts.URL+"/", filledForm())
		if err != nil {
			done <- 0
			return
		}
		res.Body.Close()
		done <- res.StatusCode
	}()
	<-entered

	rejected := filledForm()
	rejected.Set("nome", "Joana")
	status, body := post(t, ts.URL+"/", rejected)
	if status != http.StatusConflict {
		t.Fatalf("status = %d, want 409", status)
	}
	if !strings.Contains(body, `role="alert"`) {
		t.Fatalf("busy page should carry a notice")
	}

	close(release)
	if first := <-done; first != http.StatusOK {
		t.Fatalf("first submission status = %d", first)
	}

	_, _, page := get(t, ts.URL+"/")
	if strings.Contains(page, `value="Joana"`) || !strings.Contains(page, `value="Maria"`) {
		t.Fatalf("page should echo the rendered submission, not the rejected one")
	}
}

func TestNew_TemplateDirOverridesPage(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "templates"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	page := []byte(`<main>{{ title }}|{% for field in fields %}{{ field.name }};{% endfor %}</main>`)
	if err := os.WriteFile(filepath.Join(dir, "templates", "page.html.tpl"), page, 0o644); err != nil {
		t.Fatalf("write page: %v", err)
	}

	srv, err := web.New(&scriptedPredictor{}, web.WithTemplateDir(dir), web.WithTitle("Clínica"))
	if err != nil {
		t.Fatalf("new web server: %v", err)
	}
	t.Cleanup(srv.Close)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	_, _, body := get(t, ts.URL+"/")
	if !strings.HasPrefix(body, "<main>Clínica|nome;sexo;idade;") {
		t.Fatalf("override page not used:\n%s", body)
	}
}
