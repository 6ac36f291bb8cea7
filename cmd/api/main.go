package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/quotedesk-api/internal/application/service"
	"github.com/sangkips/quotedesk-api/internal/config"
	"github.com/sangkips/quotedesk-api/internal/infrastructure/database"
	"github.com/sangkips/quotedesk-api/internal/infrastructure/repository"
	"github.com/sangkips/quotedesk-api/internal/presentation/http/handler"
	"github.com/sangkips/quotedesk-api/internal/presentation/http/middleware"
	"github.com/sangkips/quotedesk-api/internal/presentation/http/routes"
	"github.com/sangkips/quotedesk-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed the component catalog
	if cfg.Database.Seed {
		created, err := database.SeedComponents(db, nil)
		if err != nil {
			log.Printf("Warning: Failed to seed components: %v", err)
		} else {
			log.Printf("Seeded %d components", created)
		}
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.ExpiryHours)

	// Initialize repositories
	partyRepo := repository.NewPartyRepository(db)
	componentRepo := repository.NewComponentRepository(db)
	quotationRepo := repository.NewQuotationRepository(db)
	counterRepo := repository.NewCounterRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	partyService := service.NewPartyService(partyRepo, counterRepo)
	componentService := service.NewComponentService(componentRepo)
	quotationService := service.NewQuotationService(quotationRepo, partyRepo, counterRepo, cfg.Quotation, cfg.Business)

	// Initialize handlers
	handlers := &routes.Handlers{
		Party:     handler.NewPartyHandler(partyService),
		Component: handler.NewComponentHandler(componentService),
		Quotation: handler.NewQuotationHandler(quotationService),
	}

	rateLimiter := middleware.NewClientRateLimiter(
		middleware.RateLimiterConfigFor(cfg.RateLimit.Requests, cfg.RateLimit.Duration),
	)
	defer rateLimiter.Stop()

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "5000"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
		log.Printf("Environment: %s", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
}
