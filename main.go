package main

import (
	"context"
	"database/sql"
	"log"
	"net"
	"net/http"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver for database/sql (migrations)
	"go.uber.org/zap"

	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/config"
	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/database"
	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/datastore"
	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/handlers"
	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/llm"
	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/logging"
	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/middleware"
	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/repositories"
	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/services"
	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/sqlguard"
	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/translator"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("database", cfg.Database.Host),
		zap.String("dataset_backend", cfg.Dataset.Backend),
		zap.String("ai_provider", cfg.AI.Provider))

	ctx := context.Background()

	// Engine store: profiles and the interaction log.
	db, err := database.NewConnection(ctx, &database.Config{
		URL:            cfg.Database.ConnectionString(),
		MaxConnections: cfg.Database.MaxConnections,
	})
	if err != nil {
		logger.Fatal("Failed to connect to engine database", zap.Error(err))
	}
	defer db.Close()

	migrationDB, err := sql.Open("pgx", cfg.Database.ConnectionString())
	if err != nil {
		logger.Fatal("Failed to open migration connection", zap.Error(err))
	}
	if err := database.RunMigrations(migrationDB, cfg.Database.MigrationsPath, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	_ = migrationDB.Close()

	// Dataset store: the fixed retail dataset participants query.
	store, err := datastore.NewStore(ctx, &cfg.Dataset, logger)
	if err != nil {
		logger.Fatal("Failed to open dataset store", zap.Error(err))
	}
	defer func() { _ = store.Close() }()

	completer, err := llm.NewCompleter(&cfg.AI, logger)
	if err != nil {
		logger.Fatal("Failed to create AI client", zap.Error(err))
	}

	profileRepo := repositories.NewUserProfileRepository(db)
	interactionRepo := repositories.NewInteractionRepository(db)

	guard := sqlguard.New(cfg.Guard.ReadOnly, cfg.Guard.InjectionCheck, logger)
	profileService := services.NewProfileService(profileRepo, logger)
	decisionService := services.NewDecisionService(completer, logger)
	explanationService := services.NewExplanationService(completer, logger)
	assistantService := services.NewAssistantService(
		translator.New(completer, store, logger),
		store,
		guard,
		decisionService,
		explanationService,
		profileService,
		interactionRepo,
		logger,
	)
	assessmentService, err := services.NewAssessmentService(profileRepo, logger)
	if err != nil {
		logger.Fatal("Failed to load questionnaire", zap.Error(err))
	}
	evaluationService := services.NewEvaluationService(interactionRepo, logger)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewChatHandler(assistantService, logger).RegisterRoutes(mux)
	handlers.NewAssessmentHandler(assessmentService, logger).RegisterRoutes(mux)
	handlers.NewFeedbackHandler(evaluationService, logger).RegisterRoutes(mux)
	handlers.NewEvaluationHandler(evaluationService, logger).RegisterRoutes(mux)

	handler := middleware.RequestLogger(logger)(mux)

	addr := net.JoinHostPort(cfg.BindAddr, cfg.Port)
	logger.Info("Starting sqlcoach-engine",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}
