package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	triage "github.com/goliatone/go-triage"
	"github.com/goliatone/go-triage/pkg/chart"
	"github.com/goliatone/go-triage/pkg/config"
	"github.com/goliatone/go-triage/pkg/model"
	"github.com/goliatone/go-triage/pkg/orchestrator"
	"github.com/goliatone/go-triage/pkg/ranking"
	"github.com/goliatone/go-triage/pkg/snapshot"
	"github.com/goliatone/go-triage/pkg/stubservice"
	"github.com/goliatone/go-triage/pkg/tui"
)

func main() {
	configPath := flag.String("config", "triage.yaml", "configuration file (defaults apply when missing)")
	predictURL := flag.String("predict-url", "", "prediction service base URL, overrides predictor.base_url")
	embedded := flag.Bool("embedded", false, "score with the built-in rule based service")
	chartOut := flag.String("chart", "", "write the donut SVG to this file after every prediction")
	formatName := flag.String("format", "text", "ranking output format (text, html)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *predictURL != "" {
		cfg.Predictor.BaseURL = *predictURL
	}
	logger := cfg.Logger()

	var predictor orchestrator.Predictor
	if *embedded {
		predictor = stubservice.New(stubservice.WithLogger(logger))
	} else {
		c, err := triage.NewPredictor(cfg.Predictor)
		if err != nil {
			log.Fatalf("Failed to configure predictor: %v", err)
		}
		predictor = c
	}

	colors, err := cfg.Palette()
	if err != nil {
		log.Fatalf("Failed to resolve palette: %v", err)
	}
	canvas, err := chart.NewSVGCanvas(chart.WithTitle(cfg.View.ChartTitle))
	if err != nil {
		log.Fatalf("Failed to build chart canvas: %v", err)
	}
	donut, err := chart.New(canvas, chart.WithPalette(colors))
	if err != nil {
		log.Fatalf("Failed to build chart: %v", err)
	}
	defer donut.Dispose()

	format, err := ranking.LookupFormat(*formatName)
	if err != nil {
		log.Fatalf("Failed to select format: %v", err)
	}

	bars, err := ranking.New(
		ranking.ContainerFunc(func(markup []byte) error {
			_, err := fmt.Fprintln(os.Stdout, string(markup))
			return err
		}),
		ranking.WithFormat(format),
		ranking.WithPalette(colors),
		ranking.WithCaption(cfg.View.Caption),
	)
	if err != nil {
		log.Fatalf("Failed to build ranking: %v", err)
	}

	driver := tui.NewSurveyDriver(os.Stdout)
	orch := triage.NewOrchestrator(
		orchestrator.WithPredictor(predictor),
		orchestrator.WithChart(donut),
		orchestrator.WithRanking(bars),
		orchestrator.WithNotifier(tui.Notifier{Driver: driver}),
		orchestrator.WithLogger(logger),
	)
	if err := orch.Err(); err != nil {
		log.Fatalf("Failed to configure orchestrator: %v", err)
	}

	ctx := context.Background()
	catalog := model.DefaultCatalog()
	var previous *snapshot.Controls
	for {
		controls, err := tui.Collect(ctx, driver, catalog, previous)
		if errors.Is(err, tui.ErrAborted) {
			return
		}
		if err != nil {
			log.Fatalf("Failed to collect form: %v", err)
		}
		previous = controls

		result := orch.SubmitFrom(ctx, controls)
		if result.Status == orchestrator.StatusRendered && *chartOut != "" {
			if err := os.WriteFile(*chartOut, canvas.SVG(), 0o644); err != nil {
				log.Fatalf("Failed to write chart: %v", err)
			}
			fmt.Printf("Chart written to %s\n", *chartOut)
		}

		again, err := driver.Confirm(ctx, tui.ConfirmConfig{Message: "Nova triagem?", Default: true})
		if err != nil || !again {
			return
		}
	}
}
