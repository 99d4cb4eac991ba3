package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	triage "github.com/goliatone/go-triage"
	"github.com/goliatone/go-triage/pkg/config"
	"github.com/goliatone/go-triage/pkg/orchestrator"
	"github.com/goliatone/go-triage/pkg/stubservice"
)

func main() {
	configPath := flag.String("config", "triage.yaml", "configuration file (defaults apply when missing)")
	addr := flag.String("addr", "", "listen address, overrides server.addr")
	predictURL := flag.String("predict-url", "", "prediction service base URL, overrides predictor.base_url")
	embedded := flag.Bool("embedded", false, "score submissions with the built-in rule based service instead of calling out")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
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

	srv, err := triage.NewWebServer(cfg, predictor, logger)
	if err != nil {
		log.Fatalf("Failed to build server: %v", err)
	}
	defer srv.Close()

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("serving triage page", "addr", cfg.Server.Addr, "embedded", *embedded)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server failed: %v", err)
	}
}
