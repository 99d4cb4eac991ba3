package client_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-triage/pkg/client"
	"github.com/goliatone/go-triage/pkg/model"
	"github.com/goliatone/go-triage/pkg/snapshot"
	"github.com/goliatone/go-triage/pkg/testsupport"
)

func readFilled() model.PredictionRequest {
	return snapshot.NewReader(model.DefaultCatalog()).Read(testsupport.FilledControls())
}

func TestEndpoint(t *testing.T) {
	tests := []struct {
		base    string
		want    string
		wantErr bool
	}{
		{base: "http://localhost:5000", want: "http://localhost:5000/api/predict"},
		{base: "https://triage.example/", want: "https://triage.example/api/predict"},
		{base: "http://gw.local/triage", want: "http://gw.local/triage/api/predict"},
		{base: "", wantErr: true},
		{base: "ftp://host", wantErr: true},
	}

	for _, tt := range tests {
		got, err := client.Endpoint(tt.base)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("Endpoint(%q) expected error", tt.base)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Endpoint(%q): %v", tt.base, err)
		}
		if got != tt.want {
			t.Fatalf("Endpoint(%q) = %q, want %q", tt.base, got, tt.want)
		}
	}
}

func TestPredict_Success(t *testing.T) {
	server := testsupport.NewPredictServer(t, http.StatusOK, testsupport.SuccessResponse(testsupport.ScenarioTop3()))
	c, err := client.New(server.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	resp, err := c.Predict(testsupport.Context(), readFilled())
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if diff := cmp.Diff(testsupport.ScenarioTop3(), resp.Top3); diff != "" {
		t.Fatalf("top3 mismatch (-want +got):\n%s", diff)
	}

	body := server.LastBody(t)
	if body["temperatura"] != 38.5 || body["tosse"] != float64(1) || body["vomitos"] != float64(0) {
		t.Fatalf("unexpected request body: %v", body)
	}
}

func TestPredict_ServiceFailureOnErrorStatus(t *testing.T) {
	server := testsupport.NewPredictServer(t, http.StatusBadRequest, testsupport.FailureResponse("modelo indisponível"))
	c, err := client.New(server.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	resp, err := c.Predict(testsupport.Context(), readFilled())
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if resp.OK || resp.FailureMessage() != "modelo indisponível" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestPredict_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		payload string
	}{
		{name: "html gateway error", status: http.StatusBadGateway, payload: "<html>bad gateway</html>"},
		{name: "missing ok", status: http.StatusOK, payload: `{"top3":[]}`},
		{name: "ok without entries", status: http.StatusOK, payload: `{"ok":true}`},
		{name: "probability out of range", status: http.StatusOK, payload: `{"ok":true,"top3":[{"label":"a","prob":7}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := testsupport.NewRawPredictServer(t, tt.status, "application/json", []byte(tt.payload))
			c, err := client.New(server.URL)
			if err != nil {
				t.Fatalf("new client: %v", err)
			}
			_, err = c.Predict(testsupport.Context(), readFilled())
			if !errors.Is(err, client.ErrMalformed) {
				t.Fatalf("expected ErrMalformed, got %v", err)
			}
			if server.Requests() != 1 {
				t.Fatalf("requests = %d, want exactly 1", server.Requests())
			}
		})
	}
}

func TestPredict_TransportFailureIsNotRetried(t *testing.T) {
	server := testsupport.NewPredictServer(t, http.StatusOK, testsupport.SuccessResponse(testsupport.ScenarioTop3()))
	url := server.URL
	server.Close()

	c, err := client.New(url, client.WithTimeout(time.Second))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = c.Predict(testsupport.Context(), readFilled())
	if !errors.Is(err, client.ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestPredict_WithoutContractSkipsValidation(t *testing.T) {
	server := testsupport.NewRawPredictServer(t, http.StatusOK, "application/json",
		[]byte(`{"ok":true,"top3":[{"label":"a","prob":7}]}`))
	c, err := client.New(server.URL, client.WithContract(nil))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	resp, err := c.Predict(testsupport.Context(), readFilled())
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if resp.Top3[0].Probability != 7 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
