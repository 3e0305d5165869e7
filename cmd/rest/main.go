package main

import (
	"context"
	"log"

	"rfx-retrieval-be/internal/bootstrap"
	"rfx-retrieval-be/internal/config"
	"rfx-retrieval-be/internal/server"
	"rfx-retrieval-be/internal/tracer"
	"rfx-retrieval-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Vectorizer Service...")
		if err := container.VectorizerService.Consume(context.Background()); err != nil {
			log.Printf("Background Vectorizer Error: %v", err)
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
