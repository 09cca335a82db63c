// Package api provides the HTTP API for the workshop equipment service.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/toolroom/toolroom/internal/account"
	"github.com/toolroom/toolroom/internal/api/handler"
	"github.com/toolroom/toolroom/internal/api/middleware"
	"github.com/toolroom/toolroom/internal/catalog"
	"github.com/toolroom/toolroom/internal/chat"
	"github.com/toolroom/toolroom/internal/upload"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version     string
	BuildTime   string
	Logger      zerolog.Logger
	ServiceName string
	Metrics     *middleware.Metrics
	Accounts    *account.Service
	Catalog     *catalog.Service
	Chat        *chat.Service
	Uploads     *upload.Store
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "toolroom-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type on responses
	r.Use(middleware.RequireJSON)          // JSON request bodies (multipart uploads exempt)

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime)
	authHandler := handler.NewAuthHandler(cfg.Accounts, cfg.Logger)
	categoryHandler := handler.NewCategoryHandler(cfg.Catalog, cfg.Logger)
	deviceHandler := handler.NewDeviceHandler(cfg.Catalog, cfg.Logger)
	chatHandler := handler.NewChatHandler(cfg.Catalog, cfg.Chat, cfg.Logger)
	uploadHandler := handler.NewUploadHandler(cfg.Uploads, cfg.Logger)

	authMiddleware := middleware.Auth(cfg.Accounts)

	r.Route("/api", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.Health)
		})

		// Auth endpoints
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.With(authMiddleware).Get("/me", authHandler.Me)
		})

		// Admin-only mutations share an auth + admin chain
		admin := chi.Chain(authMiddleware, middleware.Admin)

		r.Route("/device-categories", func(r chi.Router) {
			r.Get("/", categoryHandler.List)
			r.With(admin...).Post("/", categoryHandler.Create)
			r.With(admin...).Delete("/{categoryID}", categoryHandler.Delete)
		})
		r.Get("/categories/{categoryID}/devices", categoryHandler.ListDevices)

		r.Route("/devices", func(r chi.Router) {
			r.With(admin...).Get("/", deviceHandler.List)
			r.With(admin...).Post("/", deviceHandler.Create)
			r.Route("/{deviceID}", func(r chi.Router) {
				r.Get("/", deviceHandler.Get)
				r.With(admin...).Patch("/", deviceHandler.Update)
				r.With(admin...).Delete("/", deviceHandler.Delete)

				r.Get("/messages", chatHandler.List)
				r.Post("/chat", chatHandler.Send)
				r.Delete("/chat", chatHandler.Clear)
			})
		})

		r.Post("/upload", uploadHandler.Upload)
	})

	// Uploaded images are served as plain static files
	r.Handle("/uploads/*", http.StripPrefix("/uploads/",
		http.FileServer(http.Dir(cfg.Uploads.Dir()))))

	return r
}
