package contract_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-triage/pkg/contract"
	"github.com/goliatone/go-triage/pkg/model"
	"github.com/goliatone/go-triage/pkg/snapshot"
	"github.com/goliatone/go-triage/pkg/testsupport"
)

func TestLoad_EmbeddedDocument(t *testing.T) {
	c, err := contract.Load(testsupport.Context())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Title() != "Triage prediction service" {
		t.Fatalf("title = %q", c.Title())
	}
}

func TestLoad_RejectsDocumentWithoutPredict(t *testing.T) {
	doc := []byte(`openapi: 3.0.3
info: {title: other, version: "1"}
paths:
  /health:
    get:
      responses:
        "200": {description: ok}
`)
	if _, err := contract.Load(testsupport.Context(), contract.WithDocument(doc)); err == nil {
		t.Fatalf("expected error for document without the predict operation")
	}
}

func TestValidateRequest_ReaderPayload(t *testing.T) {
	c := contract.MustLoad()
	reader := snapshot.NewReader(model.DefaultCatalog())

	payload := testsupport.MustJSON(t, reader.Read(testsupport.FilledControls()))
	if err := c.ValidateRequest(payload); err != nil {
		t.Fatalf("filled snapshot rejected: %v", err)
	}

	blank := testsupport.MustJSON(t, reader.Read(snapshot.Blank(model.DefaultCatalog())))
	if err := c.ValidateRequest(blank); err != nil {
		t.Fatalf("blank snapshot rejected: %v", err)
	}
}

func TestValidateRequest_MissingField(t *testing.T) {
	c := contract.MustLoad()
	err := c.ValidateRequest([]byte(`{"nome":"Ana"}`))
	if !errors.Is(err, contract.ErrSchemaViolation) {
		t.Fatalf("expected ErrSchemaViolation, got %v", err)
	}
}

func TestValidateResponse(t *testing.T) {
	c := contract.MustLoad()

	tests := []struct {
		name    string
		payload string
		want    error
	}{
		{name: "success", payload: `{"ok":true,"top3":[{"label":"Gripe","prob":0.62},{"label":"Dengue","prob":0.25}]}`},
		{name: "failure", payload: `{"ok":false,"error":"modelo indisponível"}`},
		{name: "failure without message", payload: `{"ok":false}`},
		{name: "missing ok", payload: `{"top3":[]}`, want: contract.ErrSchemaViolation},
		{name: "probability above one", payload: `{"ok":true,"top3":[{"label":"Gripe","prob":1.5}]}`, want: contract.ErrSchemaViolation},
		{name: "label not string", payload: `{"ok":true,"top3":[{"label":3,"prob":0.5}]}`, want: contract.ErrSchemaViolation},
		{name: "html body", payload: `<html>502</html>`, want: contract.ErrNotJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.ValidateResponse([]byte(tt.payload))
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
		})
	}
}
