package main

import (
	"context"
	"log"

	"monarch-crm-be/internal/bootstrap"
	"monarch-crm-be/internal/config"
	"monarch-crm-be/internal/server"
	"monarch-crm-be/internal/tracer"

	"github.com/fatih/color"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	banner := color.New(color.FgHiYellow, color.Bold)
	banner.Println("  MONARCH & CO :: Luxury Real Estate CRM")
	color.New(color.FgHiBlack).Printf("  env=%s port=%s\n\n", cfg.App.Environment, cfg.App.Port)

	// 2. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)

	// 3. Initialize Server
	srv := server.New(cfg, container)

	// 4. Run Server
	log.Fatal(srv.Run())
}
