package auth

import (
	"ecochat/controllers"
	"ecochat/pkg/token"
	"ecochat/store"

	"github.com/gin-gonic/gin"
)

// RegisterPublic registers the unauthenticated auth routes:
// /auth/register, /auth/login
func RegisterPublic(r *gin.Engine, users *store.Users, tokens *token.Service) {
	r.POST("/auth/register", controllers.Register(users))
	r.POST("/auth/login", controllers.Login(users, tokens))
}

// RegisterProtected registers auth routes behind the session gate
// (logout).
func RegisterProtected(g *gin.RouterGroup) {
	g.POST("/auth/logout", controllers.Logout())
}
