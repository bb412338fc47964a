package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"janmanch/internal/auth"
	"janmanch/internal/catalog"
	"janmanch/internal/config"
	"janmanch/internal/domain/repositories"
	"janmanch/internal/handler"
	"janmanch/internal/middleware"
	"janmanch/internal/repository/kv"
	"janmanch/internal/repository/postgres"
	"janmanch/internal/service/board"
	"janmanch/internal/service/session"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	var logOutput io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, 10)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOutput = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOutput, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"provider_configured", cfg.ProviderConfigured(),
	)

	ctx := context.Background()

	// The local store always opens: it holds the session slot for the
	// local-only identity variant, and the record collections unless a
	// hosted database is configured.
	store, err := kv.Open(cfg.StorePath, logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	var (
		problemRepo  repositories.ProblemRepository
		solutionRepo repositories.SolutionRepository
		commentRepo  repositories.CommentRepository
	)
	if cfg.DatabaseURL != "" {
		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to create connection pool: %v", err)
		}
		defer pool.Close()

		repoConfig := &postgres.RepositoryConfig{
			Pool:   pool,
			Tables: postgres.NewTableNames(cfg.Environment + "_"),
			Logger: logger,
		}
		problemRepo = postgres.NewProblemRepository(repoConfig)
		solutionRepo = postgres.NewSolutionRepository(repoConfig)
		commentRepo = postgres.NewCommentRepository(repoConfig)
		logger.Info("records backed by hosted database")
	} else {
		problemRepo = kv.NewProblemRepository(store)
		solutionRepo = kv.NewSolutionRepository(store)
		commentRepo = kv.NewCommentRepository(store)
		logger.Info("records backed by local store", "path", cfg.StorePath)
	}

	// Category catalog (embedded seed set)
	categories, err := catalog.New()
	if err != nil {
		log.Fatalf("Failed to load category catalog: %v", err)
	}

	boardService := board.New(board.Config{
		Problems:  problemRepo,
		Solutions: solutionRepo,
		Comments:  commentRepo,
		Catalog:   categories,
		Logger:    logger,
	})

	// Identity: hosted provider when configured, local variant otherwise.
	var (
		provider auth.Provider
		verifier auth.TokenVerifier
	)
	if cfg.ProviderConfigured() {
		provider = auth.NewRemoteProvider(cfg.SupabaseURL, cfg.SupabaseKey, logger)

		verifier, err = auth.NewJWKSVerifier(cfg.SupabaseJWKSURL, logger)
		if err != nil {
			log.Fatalf("Failed to create token verifier: %v", err)
		}
		defer verifier.Close()
	} else {
		provider = auth.NewLocalProvider(kv.NewSessionStore(store), logger)
		logger.Warn("identity provider not configured; using local-only identity")
	}

	sessions := session.New(provider, logger)
	if err := sessions.Init(ctx); err != nil {
		log.Fatalf("Failed to initialize session service: %v", err)
	}
	defer sessions.Close()

	// Handlers
	categoryHandler := handler.NewCategoryHandler(boardService, logger)
	problemHandler := handler.NewProblemHandler(boardService, logger)
	solutionHandler := handler.NewSolutionHandler(boardService, logger)
	commentHandler := handler.NewCommentHandler(boardService, logger)
	authHandler := handler.NewAuthHandler(sessions, logger)

	logger.Info("services initialized")

	// HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)

	// Category routes
	mux.HandleFunc("GET /api/categories", categoryHandler.ListCategories)
	mux.HandleFunc("GET /api/categories/{slug}", categoryHandler.GetCategory)

	// Problem routes
	mux.HandleFunc("GET /api/problems", problemHandler.ListProblems)
	mux.HandleFunc("POST /api/problems", problemHandler.CreateProblem)
	mux.HandleFunc("GET /api/problems/{id}", problemHandler.GetProblem)
	mux.HandleFunc("PATCH /api/problems/{id}", problemHandler.UpdateProblem)
	mux.HandleFunc("POST /api/problems/{id}/views", problemHandler.RecordView)
	mux.HandleFunc("POST /api/problems/{id}/vote", problemHandler.VoteProblem)
	mux.HandleFunc("GET /api/problems/{id}/solutions", problemHandler.ListSolutions)

	// Solution routes
	mux.HandleFunc("GET /api/solutions", solutionHandler.ListSolutions)
	mux.HandleFunc("POST /api/solutions", solutionHandler.CreateSolution)
	mux.HandleFunc("GET /api/solutions/{id}", solutionHandler.GetSolution)
	mux.HandleFunc("PATCH /api/solutions/{id}", solutionHandler.UpdateSolution)
	mux.HandleFunc("POST /api/solutions/{id}/vote", solutionHandler.VoteSolution)
	mux.HandleFunc("POST /api/solutions/{id}/accept", solutionHandler.AcceptSolution)

	// Comment routes
	mux.HandleFunc("GET /api/comments", commentHandler.ListComments)
	mux.HandleFunc("POST /api/comments", commentHandler.CreateComment)
	mux.HandleFunc("GET /api/comments/{id}", commentHandler.GetComment)

	// Auth routes
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /api/auth/session", authHandler.GetSession)

	// Build middleware chain. Applied in reverse order (they wrap each
	// other): CORS → Recovery → Identity → Routes
	var httpHandler http.Handler = mux
	httpHandler = middleware.Identity(verifier, sessions)(httpHandler)
	httpHandler = middleware.Recovery(logger)(httpHandler)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	httpHandler = corsHandler.Handler(httpHandler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
