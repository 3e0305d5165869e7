package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/fatih/color"

	"rfx-retrieval-be/internal/bootstrap"
	"rfx-retrieval-be/internal/config"
	"rfx-retrieval-be/pkg/database"
)

// Maintenance sweep: embeds documents still waiting for vectors and
// drops expired research cache rows. Safe to run while the REST server
// is up; chunk embedding is idempotent.
func main() {
	purgeOnly := flag.Bool("purge-only", false, "only purge expired research cache, skip vectorization")
	timeout := flag.Duration("timeout", 30*time.Minute, "overall run timeout")
	flag.Parse()

	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	bold := color.New(color.Bold)
	bold.Println("=== Retrieval Maintenance Sweep ===")

	if !*purgeOnly {
		color.Cyan("Vectorizing pending documents...")
		embedded, err := container.VectorizerService.VectorizePending(ctx)
		if err != nil {
			color.Red("✗ Vectorization failed after %d chunks: %v", embedded, err)
			os.Exit(1)
		}
		if embedded == 0 {
			color.Yellow("Nothing to embed (all documents vectorized or provider unavailable)")
		} else {
			color.Green("✓ Embedded %d chunks", embedded)
		}
	}

	color.Cyan("Purging expired research cache...")
	deleted, err := container.ResearchService.PurgeExpired(ctx)
	if err != nil {
		color.Red("✗ Purge failed: %v", err)
		os.Exit(1)
	}
	color.Green("✓ Deleted %d expired cache entries", deleted)

	bold.Println("Done.")
}
