package routes

import (
	"net/http"

	"ecochat/middleware"
	svc "ecochat/pkg/services"
	"ecochat/pkg/token"
	"ecochat/store"

	"github.com/gin-gonic/gin"

	authRoutes "ecochat/routes/auth"
	chatRoutes "ecochat/routes/chat"
)

// Deps bundles everything the route tree needs; main.go builds it
// once at startup.
type Deps struct {
	Users     *store.Users
	Messages  *store.Messages
	Tokens    *token.Service
	Completer svc.Completer
	RateLimit *middleware.RateLimiter
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Go auth + chat backend running"})
	})

	authRoutes.RegisterPublic(r, d.Users, d.Tokens)

	protected := r.Group("/")
	protected.Use(middleware.AuthMiddleware(d.Tokens))
	authRoutes.RegisterProtected(protected)
	chatRoutes.Register(protected, d.Messages, d.Completer, d.RateLimit)
}
