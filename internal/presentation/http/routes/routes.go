package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/quotedesk-api/internal/config"
	domainRepo "github.com/sangkips/quotedesk-api/internal/domain/repository"
	"github.com/sangkips/quotedesk-api/internal/presentation/http/dto/response"
	"github.com/sangkips/quotedesk-api/internal/presentation/http/handler"
	"github.com/sangkips/quotedesk-api/internal/presentation/http/middleware"
	"github.com/sangkips/quotedesk-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Party     *handler.PartyHandler
	Component *handler.ComponentHandler
	Quotation *handler.QuotationHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.ClientRateLimiter
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	response.ShowErrorDetail = deps.Cfg.App.IsDevelopment()
	// Money is rendered as JSON numbers rather than strings.
	decimal.MarshalJSONWithoutQuotes = true

	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"service":   deps.Cfg.App.Name,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	api := router.Group("/api")
	if deps.RateLimiter != nil {
		api.Use(deps.RateLimiter.Middleware())
	}
	if deps.Cfg.Auth.Enabled {
		api.Use(middleware.RequireAuthFor(
			middleware.AuthMiddleware(deps.JWTManager),
			http.MethodPost, http.MethodPut, http.MethodDelete,
		))
	}

	idempotent := middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo})

	registerPartyRoutes(api, h, idempotent)
	registerComponentRoutes(api, h, idempotent)
	registerQuotationRoutes(api, h, idempotent)

	return router
}

func registerPartyRoutes(api *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	parties := api.Group("/parties")
	{
		parties.GET("", h.Party.List)
		parties.GET("/:id", h.Party.Get)
		parties.POST("", idempotent, h.Party.Create)
		parties.PUT("/:id", h.Party.Update)
		parties.DELETE("/:id", h.Party.Delete)
	}
}

func registerComponentRoutes(api *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	components := api.Group("/components")
	{
		components.GET("", h.Component.List)
		components.GET("/search", h.Component.Search)
		components.GET("/category/:category", h.Component.ByCategory)
		components.GET("/brand/:brand", h.Component.ByBrand)
		components.GET("/:id", h.Component.Get)
		components.POST("", idempotent, h.Component.Create)
		components.PUT("/:id", h.Component.Update)
		components.DELETE("/:id", h.Component.Delete)
	}
}

func registerQuotationRoutes(api *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	quotations := api.Group("/quotations")
	{
		quotations.GET("", h.Quotation.List)
		quotations.GET("/party/:partyId", h.Quotation.ListByParty)
		quotations.GET("/:id", h.Quotation.Get)
		quotations.POST("", idempotent, h.Quotation.Create)
		quotations.PUT("/:id", h.Quotation.Update)
		quotations.DELETE("/:id", h.Quotation.Delete)
		quotations.GET("/:id/revisions", h.Quotation.ListRevisions)
		quotations.POST("/:id/revisions", idempotent, h.Quotation.CreateRevision)
	}
}
