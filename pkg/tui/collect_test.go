package tui_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-triage/pkg/model"
	"github.com/goliatone/go-triage/pkg/orchestrator"
	"github.com/goliatone/go-triage/pkg/snapshot"
	"github.com/goliatone/go-triage/pkg/testsupport"
	"github.com/goliatone/go-triage/pkg/tui"
)

type scriptedDriver struct {
	inputs   map[string]string
	confirms map[string]bool
	selects  map[string]int
	asked    []string
	infos    []string
	failOn   string
	defaults map[string]any
}

func (d *scriptedDriver) Input(_ context.Context, cfg tui.InputConfig) (string, error) {
	d.asked = append(d.asked, cfg.Message)
	d.remember(cfg.Message, cfg.Default)
	if cfg.Message == d.failOn {
		return "", tui.ErrAborted
	}
	return d.inputs[cfg.Message], nil
}

func (d *scriptedDriver) Confirm(_ context.Context, cfg tui.ConfirmConfig) (bool, error) {
	d.asked = append(d.asked, cfg.Message)
	d.remember(cfg.Message, cfg.Default)
	return d.confirms[cfg.Message], nil
}

func (d *scriptedDriver) Select(_ context.Context, cfg tui.SelectConfig) (int, error) {
	d.asked = append(d.asked, cfg.Message)
	d.remember(cfg.Message, cfg.DefaultIndex)
	return d.selects[cfg.Message], nil
}

func (d *scriptedDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func (d *scriptedDriver) remember(message string, def any) {
	if d.defaults == nil {
		d.defaults = make(map[string]any)
	}
	d.defaults[message] = def
}

func labelOf(t *testing.T, name string) string {
	t.Helper()
	field, ok := model.DefaultCatalog().Lookup(name)
	if !ok {
		t.Fatalf("field %s not in catalog", name)
	}
	return field.Label
}

func TestCollect_PromptsEveryFieldInOrder(t *testing.T) {
	catalog := model.DefaultCatalog()
	driver := &scriptedDriver{
		inputs: map[string]string{
			labelOf(t, "nome"):        "  Maria ",
			labelOf(t, "temperatura"): "38.2",
		},
		confirms: map[string]bool{labelOf(t, "tosse"): true},
		selects:  map[string]int{labelOf(t, "sexo"): 1},
	}

	controls, err := tui.Collect(testsupport.Context(), driver, catalog, nil)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	var want []string
	for _, field := range catalog {
		want = append(want, field.Label)
	}
	if diff := cmp.Diff(want, driver.asked); diff != "" {
		t.Fatalf("prompt order (-want +got):\n%s", diff)
	}

	if err := snapshot.Verify(controls, catalog); err != nil {
		t.Fatalf("collected controls incomplete: %v", err)
	}
	req := snapshot.NewReader(catalog).Read(controls)
	checks := map[string]string{
		"nome":        "Maria",
		"sexo":        "Feminino",
		"temperatura": "38.2",
		"idade":       "0",
		"tosse":       "1",
		"fadiga":      "0",
	}
	for name, want := range checks {
		got, _ := req.Get(name)
		if got.Str() != want {
			t.Fatalf("%s = %q, want %q", name, got.Str(), want)
		}
	}
}

func TestCollect_OffersPreviousAnswers(t *testing.T) {
	previous := testsupport.FilledControls()
	driver := &scriptedDriver{}

	if _, err := tui.Collect(testsupport.Context(), driver, model.DefaultCatalog(), previous); err != nil {
		t.Fatalf("collect: %v", err)
	}
	if got := driver.defaults[labelOf(t, "nome")]; got != "Maria" {
		t.Fatalf("nome default = %v", got)
	}
	if got := driver.defaults[labelOf(t, "tosse")]; got != true {
		t.Fatalf("tosse default = %v", got)
	}
	if got := driver.defaults[labelOf(t, "sexo")]; got != 1 {
		t.Fatalf("sexo default index = %v", got)
	}
}

func TestCollect_Aborted(t *testing.T) {
	driver := &scriptedDriver{failOn: labelOf(t, "idade")}
	_, err := tui.Collect(testsupport.Context(), driver, model.DefaultCatalog(), nil)
	if !errors.Is(err, tui.ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestNotifier(t *testing.T) {
	driver := &scriptedDriver{}
	tui.Notifier{Driver: driver}.Notify(testsupport.Context(), &orchestrator.Failure{
		Kind:    orchestrator.KindService,
		Message: "modelo indisponível",
	})
	if diff := cmp.Diff([]string{"Erro: modelo indisponível"}, driver.infos); diff != "" {
		t.Fatalf("infos (-want +got):\n%s", diff)
	}
}
