// Package tui collects the triage form in a terminal and surfaces failures
// there. It is the terminal counterpart of the web page: Collect yields a
// snapshot.Source and Notifier implements orchestrator.Notifier.
package tui

import (
	"context"
	"fmt"

	"github.com/goliatone/go-triage/pkg/model"
	"github.com/goliatone/go-triage/pkg/orchestrator"
	"github.com/goliatone/go-triage/pkg/snapshot"
)

const numericHelp = "Deixe em branco para enviar 0."

// Collect prompts for every catalog field in order. Previous answers in
// defaults are offered as prompt defaults; pass nil on the first round.
func Collect(ctx context.Context, driver PromptDriver, catalog model.Catalog, defaults *snapshot.Controls) (*snapshot.Controls, error) {
	if driver == nil {
		return nil, fmt.Errorf("tui: prompt driver is required")
	}
	if len(catalog) == 0 {
		catalog = model.DefaultCatalog()
	}

	controls := snapshot.NewControls()
	for _, field := range catalog {
		message := field.Label
		if message == "" {
			message = field.Name
		}

		switch field.Kind {
		case model.FieldKindFlag:
			def, _ := defaults.Checked(field.Name)
			checked, err := driver.Confirm(ctx, ConfirmConfig{Message: message, Default: def})
			if err != nil {
				return nil, fmt.Errorf("tui: %s: %w", field.Name, err)
			}
			controls.Check(field.Name, checked)

		case model.FieldKindEnum:
			def, _ := defaults.Value(field.Name)
			idx, err := driver.Select(ctx, SelectConfig{
				Message:      message,
				Options:      field.Options,
				DefaultIndex: indexOf(field.Options, def),
			})
			if err != nil {
				return nil, fmt.Errorf("tui: %s: %w", field.Name, err)
			}
			value := ""
			if idx >= 0 && idx < len(field.Options) {
				value = field.Options[idx]
			}
			controls.Set(field.Name, value)

		default:
			def, _ := defaults.Value(field.Name)
			cfg := InputConfig{Message: message, Default: def}
			if field.Kind == model.FieldKindNumeric {
				cfg.Help = numericHelp
			}
			value, err := driver.Input(ctx, cfg)
			if err != nil {
				return nil, fmt.Errorf("tui: %s: %w", field.Name, err)
			}
			controls.Set(field.Name, value)
		}
	}
	return controls, nil
}

// Notifier shows failures through the prompt driver.
type Notifier struct {
	Driver PromptDriver
}

var _ orchestrator.Notifier = Notifier{}

func (n Notifier) Notify(ctx context.Context, failure *orchestrator.Failure) {
	if n.Driver == nil || failure == nil {
		return
	}
	_ = n.Driver.Info(ctx, failure.Alert())
}
