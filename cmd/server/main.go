// Package main runs the pokecapture HTTP API server.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/pokecapture/service/internal/app/runtime"
)

func main() {
	app, err := runtime.NewApplication()
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("server failed: %v", err)
	}

	if err := app.Shutdown(context.Background()); err != nil {
		log.Fatalf("shutdown failed: %v", err)
	}
}
