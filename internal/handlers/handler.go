package handlers

import (
	"sweather/internal/logger"
	"sweather/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Versioned API endpoints (protected)
	h.registerAPIRoutes(router)

	// WebSocket state stream (HTTP upgrade) — same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		h.registerForecastRoutes(api)
		h.registerPreferenceRoutes(api)
		h.registerDigestRoutes(api)
		h.registerLogRoutes(api)
	}
}

func (h *Handler) registerForecastRoutes(api *gin.RouterGroup) {
	forecast := api.Group("/forecast")
	{
		forecast.POST("/refresh", h.refreshForecast)
		// Body example: {"query":"Tokyo"}
		forecast.POST("/search", h.searchForecast)
		forecast.GET("/state", h.getForecastState)
		forecast.POST("/day", h.selectDay)
		forecast.POST("/day/next", h.nextDay)
		forecast.POST("/day/prev", h.prevDay)
		forecast.POST("/summary", h.backToSummary)
		forecast.GET("/day/:index/hours", h.getDayHours)
	}
}

func (h *Handler) registerPreferenceRoutes(api *gin.RouterGroup) {
	prefs := api.Group("/preferences")
	{
		prefs.GET("", h.getPreferences)
		prefs.PUT("/theme", h.setTheme)
		// Language changes go through the forecast controller so the
		// visible snapshot is re-localized as well.
		prefs.PUT("/language", h.setLanguage)
	}
}

func (h *Handler) registerDigestRoutes(api *gin.RouterGroup) {
	digest := api.Group("/digest")
	{
		digest.POST("/send", h.sendDigest)
	}
}

func (h *Handler) registerLogRoutes(api *gin.RouterGroup) {
	logs := api.Group("/logs")
	{
		logs.GET("/", h.getLogs)
	}
}
