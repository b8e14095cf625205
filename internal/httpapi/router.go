package httpapi

import (
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/rpattn/agenthub/internal/middleware"
	"github.com/rpattn/agenthub/internal/service"
)

// Services bundles everything the router mounts.
type Services struct {
	Requests  *service.RequestService
	Delivered *service.DeliveredService
	Directory *service.DirectoryService
}

// NewRouter builds the HTTP surface: request logging, gateway identity, CORS
// and the /api routes.
func NewRouter(services Services, allowedOrigins []string, log *zap.Logger) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(ginzap.Ginzap(log, time.RFC3339, true))
	router.Use(ginzap.RecoveryWithZap(log, true))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	requests := &requestHandlers{requests: services.Requests}
	delivered := &deliveredHandlers{delivered: services.Delivered}
	directory := &directoryHandlers{directory: services.Directory}

	api := router.Group("/api")
	api.Use(middleware.Authenticate())
	{
		api.GET("/agent-requests", requests.list)
		api.POST("/agent-requests", requests.create)
		api.GET("/agent-requests/export", requests.export)
		api.GET("/agent-requests/:id", requests.get)
		api.PATCH("/agent-requests/:id", requests.update)
		api.DELETE("/agent-requests/:id", requests.remove)

		api.GET("/delivered-agents", delivered.list)
		api.GET("/delivered-agents/:id", delivered.get)
		api.PATCH("/delivered-agents/:id/maintenance-status", delivered.updateMaintenance)

		api.GET("/agents", directory.agents)
		api.GET("/companies", directory.companies)
		api.GET("/integrations", directory.integrations)
		api.GET("/notifications", directory.notifications)
		api.GET("/queries", directory.customerQueries)
	}

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
	})

	return corsHandler.Handler(router)
}
