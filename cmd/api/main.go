// Package main provides the entrypoint for the toolroom API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/toolroom/toolroom/internal/account"
	"github.com/toolroom/toolroom/internal/api"
	"github.com/toolroom/toolroom/internal/api/middleware"
	"github.com/toolroom/toolroom/internal/assistant"
	"github.com/toolroom/toolroom/internal/catalog"
	"github.com/toolroom/toolroom/internal/chat"
	"github.com/toolroom/toolroom/internal/database"
	"github.com/toolroom/toolroom/internal/telemetry"
	"github.com/toolroom/toolroom/internal/upload"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "toolroom-api"

	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting toolroom API")

	port := getEnvOrDefault("APP_PORT", "8080")
	env := getEnvOrDefault("APP_ENV", "development")
	otlpEndpoint := getEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317")

	// Initialize OpenTelemetry
	ctx := context.Background()
	telemetryEnabled := os.Getenv("OTEL_ENABLED") == "true"

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    env,
		OTLPEndpoint:   otlpEndpoint,
		Enabled:        telemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if telemetryEnabled {
		log.Info().
			Str("otlp_endpoint", otlpEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Choose the storage backend: in-memory by default, Postgres when asked
	var (
		accountRepo account.Repository
		catalogRepo catalog.Repository
		chatRepo    chat.Repository
	)
	switch backend := getEnvOrDefault("STORAGE_BACKEND", "memory"); backend {
	case "postgres":
		dbConfig := database.ConfigFromEnv()
		pool, err := database.Connect(ctx, dbConfig)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()

		if err := database.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
		log.Info().
			Str("host", dbConfig.Host).
			Int("port", dbConfig.Port).
			Str("database", dbConfig.Database).
			Msg("database connected")

		accountRepo = account.NewPostgresRepository(pool)
		catalogRepo = catalog.NewPostgresRepository(pool)
		chatRepo = chat.NewPostgresRepository(pool)
	case "memory":
		log.Info().Msg("using in-memory storage, data is lost on restart")
		accountRepo = account.NewInMemoryRepository()
		catalogRepo = catalog.NewInMemoryRepository()
		chatRepo = chat.NewInMemoryRepository()
	default:
		log.Fatal().Str("backend", backend).Msg("unknown STORAGE_BACKEND")
	}

	// Initialize account service and session tokens
	signingKey := os.Getenv("SESSION_SIGNING_KEY")
	if signingKey == "" {
		signingKey = "local-dev-signing-key-change-in-production"
		log.Warn().Msg("using default session signing key - not secure for production")
	}
	tokenService := account.NewTokenService(account.TokenConfig{
		SigningKey: signingKey,
		Issuer:     serviceName,
	})
	accountService := account.NewService(account.ServiceConfig{
		Repository:   accountRepo,
		TokenService: tokenService,
		Logger:       log,
	})
	log.Info().Msg("account service initialized")

	adminUsername := os.Getenv("ADMIN_USERNAME")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminUsername != "" && adminPassword != "" {
		if err := accountService.EnsureAdmin(ctx, adminUsername, adminPassword); err != nil {
			log.Fatal().Err(err).Msg("failed to seed admin account")
		}
	} else {
		log.Warn().Msg("ADMIN_USERNAME/ADMIN_PASSWORD not set - no admin account seeded")
	}

	// Initialize catalog and chat services
	catalogService := catalog.NewService(catalog.ServiceConfig{
		Repository:  catalogRepo,
		Transcripts: chatRepo,
		Logger:      log,
	})
	log.Info().Msg("catalog service initialized")

	// Initialize the assistant provider. A missing API key degrades chat to
	// the fallback reply rather than failing startup.
	var provider assistant.Provider = assistant.Disabled{}
	geminiKey := os.Getenv("GEMINI_API_KEY")
	if geminiKey != "" {
		gemini, err := assistant.NewGemini(ctx, assistant.GeminiConfig{
			APIKey: geminiKey,
			Model:  os.Getenv("GEMINI_MODEL"),
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize assistant provider")
		}
		defer func() {
			if closeErr := gemini.Close(); closeErr != nil {
				log.Error().Err(closeErr).Msg("failed to close assistant provider")
			}
		}()
		provider = assistant.NewBreaker("gemini", gemini)
		log.Info().Msg("assistant provider initialized")
	} else {
		log.Warn().Msg("GEMINI_API_KEY not set - chat will answer with the fallback reply")
	}

	chatService := chat.NewService(chat.ServiceConfig{
		Repository: chatRepo,
		Provider:   provider,
		Logger:     log,
	})
	log.Info().Msg("chat service initialized")

	// Initialize upload storage
	maxUploadBytes, _ := strconv.ParseInt(getEnvOrDefault("MAX_UPLOAD_BYTES", "10485760"), 10, 64)
	uploadStore, err := upload.NewStore(getEnvOrDefault("UPLOAD_DIR", "uploads"), maxUploadBytes)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize upload storage")
	}
	log.Info().Str("dir", uploadStore.Dir()).Msg("upload storage initialized")

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:     Version,
		BuildTime:   BuildTime,
		Logger:      log,
		ServiceName: serviceName,
		Metrics:     metrics,
		Accounts:    accountService,
		Catalog:     catalogService,
		Chat:        chatService,
		Uploads:     uploadStore,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}

func getEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
