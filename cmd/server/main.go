package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"carscope-api/internal/client"
	"carscope-api/internal/config"
	"carscope-api/internal/database"
	"carscope-api/internal/enrich"
	"carscope-api/internal/handler"
	"carscope-api/internal/repository"
	"carscope-api/internal/service"
)

func main() {
	// Local overrides; absence is fine in deployed environments.
	_ = godotenv.Load()

	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	slog.Info("starting carscope-api")

	if cfg.Gemini.APIKey == "" {
		slog.Error("GEMINI_API_KEY is required")
		os.Exit(1)
	}

	// Database
	slog.Info("connecting to database", "host", cfg.Database.Host, "database", cfg.Database.Name)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	db, err := database.Connect(ctx, database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		Name:     cfg.Database.Name,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		SSLMode:  cfg.Database.SSLMode,
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	cancel()
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.RunMigrations(context.Background(), db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database ready")

	// Clients
	vision := client.NewGeminiClient(
		cfg.Gemini.APIKey,
		cfg.Gemini.Model,
		cfg.Gemini.MaxRetries,
		cfg.Gemini.RetryDelay,
		logger,
	)
	search := client.NewGoogleSearchClient(
		cfg.Search.APIKey,
		cfg.Search.CX,
		cfg.Search.RequestsPerSecond,
		logger,
	)
	fetcher := client.NewHTTPFetcher(10 * time.Second)

	// Enrichment and pipeline
	resolver := enrich.NewResolver(
		search,
		vision,
		fetcher,
		cfg.Cache.TTL,
		cfg.Cache.SizeLimit,
		cfg.Gemini.MaxRetries,
		cfg.Gemini.RetryDelay,
		logger,
	)
	analysisRepo := repository.NewAnalysisRepo(db)
	analyzer := service.NewAnalyzer(vision, resolver, analysisRepo, cfg.MaxImageBytes, logger)

	// Handlers
	healthHandler := handler.NewHealthHandler(db)
	analyzeHandler := handler.NewAnalyzeHandler(analyzer, cfg.MaxImageBytes, logger)
	historyHandler := handler.NewAnalysisHistoryHandler(analysisRepo)
	enrichHandler := handler.NewEnrichHandler(resolver)

	// Router
	r := chi.NewRouter()

	// Middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	// CORS middleware
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	})

	// Routes
	r.Get("/health", healthHandler.Check)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyze", analyzeHandler.Analyze)
		r.Get("/analyses", historyHandler.List)
		r.Get("/analyses/{id}", historyHandler.Get)
		r.Get("/logo", enrichHandler.Logo)
		r.Get("/production", enrichHandler.Production)
		r.Get("/price", enrichHandler.Price)
	})

	// Server
	srv := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		slog.Info("server started", "port", cfg.APIPort)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("error shutting down server", "error", err)
	}

	slog.Info("server stopped")
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
