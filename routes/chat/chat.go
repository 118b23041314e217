package chat

import (
	"ecochat/controllers"
	"ecochat/middleware"
	svc "ecochat/pkg/services"
	"ecochat/store"

	"github.com/gin-gonic/gin"
)

// Register registers the chat routes (protected). The chat POST is
// rate limited; history reads are not.
func Register(g *gin.RouterGroup, messages *store.Messages, completer svc.Completer, rl *middleware.RateLimiter) {
	g.POST("/chat", rl.Middleware(), controllers.Chat(messages, completer))
	g.GET("/history", controllers.History(messages))
	g.DELETE("/history", controllers.ClearHistory(messages))
}
