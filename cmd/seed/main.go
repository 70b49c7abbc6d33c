package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"

	"contractpad/internal/config"
	"contractpad/internal/seed"
	serviceDocsys "contractpad/internal/service/docsystem"
	"contractpad/internal/service/history"
	"contractpad/internal/service/suggestion"
	"contractpad/internal/storage"
)

func main() {
	clearData := flag.Bool("clear-data", false, "Delete every project before seeding")
	clearOnly := flag.Bool("clear-only", false, "Delete every project and exit without seeding")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && (*clearData || *clearOnly) {
		log.Fatalf("BLOCKED: cannot clear data in production environment")
	}

	logger, logCloser, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logCloser.Close()

	ctx := context.Background()
	st, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer st.Close()

	// Seeding runs outside the server, so history is only needed for the
	// services' bookkeeping and is dropped on exit
	engine := history.NewEngine(cfg.HistoryLimit)
	locks := serviceDocsys.NewDocumentLocks()
	projects := serviceDocsys.NewProjectService(st.Projects, st.Documents, engine, locks, logger)
	docs := serviceDocsys.NewDocumentService(st.Documents, engine, suggestion.NewApplier(engine, logger),
		locks, serviceDocsys.NewResourceValidator(st.Projects), logger)

	seeder := seed.NewSeeder(projects, docs, logger)

	if *clearData || *clearOnly {
		removed, err := seeder.ClearAll(ctx)
		if err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
		log.Printf("Cleared %d projects", removed)
		if *clearOnly {
			return
		}
	}

	project, err := seeder.SeedSample(ctx)
	if err != nil {
		log.Fatalf("Failed to seed: %v", err)
	}
	log.Printf("Seeded project %q (ID: %s)", project.Name, project.ID)
}
