package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(logger *zap.Logger, chatH *ChatHandler) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.GET("/health", chatH.Health)

	sessions := r.Group("/sessions")
	sessions.GET("", chatH.ListSessions)
	sessions.POST("", chatH.CreateSession)
	sessions.GET("/:id", chatH.GetSession)
	sessions.PATCH("/:id", chatH.RenameSession)
	sessions.DELETE("/:id", chatH.DeleteSession)
	sessions.POST("/:id/activate", chatH.ActivateSession)

	r.GET("/active", chatH.GetActive)
	r.POST("/messages", chatH.PostMessage)

	prompts := r.Group("/prompts")
	prompts.GET("", chatH.ListPrompts)
	prompts.POST("/compose", chatH.ComposePrompt)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
