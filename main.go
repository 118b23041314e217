package main

import (
	"log"
	"time"

	"ecochat/middleware"
	"ecochat/models"
	"ecochat/pkg/cache"
	"ecochat/pkg/config"
	svc "ecochat/pkg/services"
	"ecochat/pkg/token"
	"ecochat/routes"
	"ecochat/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()

	// init DB (sqlite in same folder)
	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	// auto-migrate
	if err := db.AutoMigrate(&models.User{}, &models.Message{}); err != nil {
		log.Fatalf("failed migrate: %v", err)
	}

	replies := cache.NewReplies(cfg.ReplyCacheMaxItems)
	deps := routes.Deps{
		Users:     store.NewUsers(db),
		Messages:  store.NewMessages(db),
		Tokens:    token.NewService(cfg.JWTSecret, cfg.TokenTTL()),
		Completer: svc.NewGeminiService(cfg, replies),
		RateLimit: middleware.NewRateLimiter(time.Duration(cfg.RateLimitWindowSeconds)*time.Second, cfg.RateLimitCapacity),
	}

	r := gin.Default()

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:5173", "http://127.0.0.1:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, deps)
	r.Run(":" + cfg.Port)
}
