package routes

import (
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yoockh/homevisit/internal/api/handlers"
	"github.com/yoockh/homevisit/internal/api/middleware"
)

type Deps struct {
	Webhook *handlers.WebhookHandler
	Search  *handlers.SearchHandler
	Chat    *handlers.ChatHandler
	Metrics *handlers.MetricsHandler
	WS      *handlers.WSHandler
	Health  *handlers.HealthHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg := cors.DefaultConfig()
		cfg.AllowOrigins = strings.Split(origins, ",")
		cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
		r.Use(cors.New(cfg))
	}

	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	r.GET("/health", d.Health.Health)

	// Telephony surfaces stay open: the voice provider cannot carry a JWT.
	r.POST("/vapi/webhook", d.Webhook.Handle)
	r.GET("/ws/stream", d.WS.Stream)

	// Query surface, guarded when a secret is configured.
	api := r.Group("/")
	if os.Getenv("AUTH_JWT_SECRET") != "" {
		api.Use(middleware.JWTAuth())
	}
	api.POST("/search", d.Search.Search)
	api.POST("/chat", d.Chat.Chat)
	api.GET("/metrics", d.Metrics.Metrics)
}
