package main

import (
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/goliatone/go-triage/pkg/config"
	"github.com/goliatone/go-triage/pkg/stubservice"
)

func main() {
	addr := flag.String("addr", ":5000", "listen address")
	topN := flag.Int("top", 3, "number of ranked entries returned")
	level := flag.String("log-level", "info", "logging level")
	flag.Parse()

	cfg := config.Default()
	cfg.Logging.Level = *level
	if _, err := config.ParseLevel(*level); err != nil {
		log.Fatalf("Invalid log level: %v", err)
	}
	logger := cfg.Logger()

	svc := stubservice.New(stubservice.WithLogger(logger), stubservice.WithTopN(*topN))
	server := &http.Server{
		Addr:              *addr,
		Handler:           svc.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("serving prediction stub", "addr", *addr, "top", *topN)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
