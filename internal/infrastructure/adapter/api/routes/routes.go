package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/spin-engine/internal/domain/port/core"
	"github.com/amirhossein-jamali/spin-engine/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/spin-engine/internal/infrastructure/adapter/api/middleware"
)

// Handlers groups the HTTP handlers served by the router
type Handlers struct {
	Player *handler.PlayerHandler
	Spin   *handler.SpinHandler
	Health *handler.HealthHandler

	// MetricsPath and Metrics are optional; both must be set to expose metrics
	MetricsPath string
	Metrics     http.Handler
}

// SetupRoutes configures all the routes for the API
func SetupRoutes(router *gin.Engine, h Handlers) {
	api := router.Group("/api")
	{
		// POST /api/player
		api.POST("/player", h.Player.CreatePlayer)

		// GET /api/balance/:playerId
		api.GET("/balance/:playerId", h.Player.GetBalance)

		// POST /api/spin
		api.POST("/spin", h.Spin.Spin)
	}

	router.GET("/health", h.Health.Health)

	if h.Metrics != nil && h.MetricsPath != "" {
		router.GET(h.MetricsPath, gin.WrapH(h.Metrics))
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger, allowedOrigins []string) {
	// Order matters: the request ID must exist before logging and panic recovery read it
	router.Use(middleware.RequestID())
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS(allowedOrigins))
}

// NewRouter builds a gin engine with middlewares and routes installed
func NewRouter(logger coreport.Logger, allowedOrigins []string, h Handlers) *gin.Engine {
	router := gin.New()
	SetupMiddlewares(router, logger, allowedOrigins)
	SetupRoutes(router, h)
	return router
}
