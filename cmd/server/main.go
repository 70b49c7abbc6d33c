package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"contractpad/internal/config"
	"contractpad/internal/handler"
	"contractpad/internal/middleware"
	serviceAssist "contractpad/internal/service/assist"
	serviceDocsys "contractpad/internal/service/docsystem"
	"contractpad/internal/service/history"
	"contractpad/internal/service/suggestion"
	"contractpad/internal/storage"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, logCloser, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logCloser.Close()
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"addr", cfg.Addr(),
		"storage", cfg.StorageDriver,
		"history_limit", cfg.HistoryLimit,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer st.Close()

	rules, err := serviceAssist.LoadRules(cfg.RulesFile)
	if err != nil {
		log.Fatalf("Failed to load suggestion rules: %v", err)
	}
	logger.Info("suggestion rules loaded", "count", len(rules), "file", cfg.RulesFile)

	// One shared instance of each piece of editing state
	historyEngine := history.NewEngine(cfg.HistoryLimit)
	pending := suggestion.NewPendingSet()
	applier := suggestion.NewApplier(historyEngine, logger)
	locks := serviceDocsys.NewDocumentLocks()

	// Document services
	validator := serviceDocsys.NewResourceValidator(st.Projects)
	projectService := serviceDocsys.NewProjectService(st.Projects, st.Documents, historyEngine, locks, logger)
	docService := serviceDocsys.NewDocumentService(st.Documents, historyEngine, applier, locks, validator, logger)
	prefsService := serviceDocsys.NewPreferencesService(st.Preferences, logger)

	// Assistant services
	generator := serviceAssist.NewRuleGenerator(rules, logger)
	chatService := serviceAssist.NewChatService(st.Documents, generator, pending, validator, logger)
	suggestionService := serviceAssist.NewSuggestionService(st.Documents, applier, pending, locks, logger)
	compiler := serviceAssist.NewMockCompiler(logger)

	logger.Info("services initialized")

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, &handler.Handlers{
		Projects:    handler.NewProjectHandler(projectService, logger),
		Documents:   handler.NewDocumentHandler(docService, logger),
		Chat:        handler.NewChatHandler(chatService, logger),
		Suggestions: handler.NewSuggestionHandler(suggestionService, logger),
		Compile:     handler.NewCompileHandler(docService, compiler, logger),
		Preferences: handler.NewPreferencesHandler(prefsService, logger),
	})

	// Order: CORS → RequestLogger → Recovery → Routes
	var h http.Handler = mux
	h = middleware.Recovery(logger)(h)
	h = middleware.RequestLogger(logger)(h)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}()

	logger.Info("server listening", "addr", cfg.Addr())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
	logger.Info("server stopped")
}
