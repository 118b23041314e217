package config

import (
	"log"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries all process-wide settings. It is built once in Load
// and handed to the components that need it; nothing reads the
// environment after startup.
type Config struct {
	AppEnv       string
	IsStaging    bool
	IsProduction bool

	Port         string
	DatabasePath string

	// token signing
	JWTSecret    string
	TokenTTLDays int

	// completion collaborator (Gemini)
	GeminiAPIKey         string
	GeminiModel          string
	GeminiEnabled        bool
	GeminiTimeoutSeconds int

	// runtime tunables
	RateLimitWindowSeconds int
	RateLimitCapacity      int
	ReplyCacheTTLSeconds   int
	ReplyCacheMaxItems     int
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLDays) * 24 * time.Hour
}

func (c *Config) GeminiTimeout() time.Duration {
	return time.Duration(c.GeminiTimeoutSeconds) * time.Second
}

// Load reads the environment (plus .env outside production) and
// returns the assembled Config. Fatal on invalid APP_ENV or a missing
// production signing secret.
func Load() *Config {
	appEnv := os.Getenv("APP_ENV")

	// do not load .env file in production
	if appEnv != "production" {
		if err := godotenv.Load(); err != nil {
			log.Fatalf("Error loading .env file: %v", err)
		}
		appEnv = os.Getenv("APP_ENV")
	}

	if !slices.Contains([]string{"staging", "production"}, appEnv) {
		log.Fatal("environment variable APP_ENV must be 'staging' or 'production'")
	}

	cfg := &Config{
		AppEnv:       appEnv,
		IsStaging:    appEnv == "staging",
		IsProduction: appEnv == "production",

		Port:         os.Getenv("PORT"),
		DatabasePath: os.Getenv("DATABASE_PATH"),

		JWTSecret:    os.Getenv("JWT_SECRET_KEY"),
		TokenTTLDays: atoiOr(os.Getenv("TOKEN_TTL_DAYS"), 7),

		GeminiAPIKey:         os.Getenv("GEMINI_API_KEY"),
		GeminiModel:          os.Getenv("GEMINI_MODEL"),
		GeminiEnabled:        os.Getenv("IS_GEMINI_ENABLED") == "1",
		GeminiTimeoutSeconds: atoiOr(os.Getenv("GEMINI_TIMEOUT_SECONDS"), 30),

		RateLimitWindowSeconds: atoiOr(os.Getenv("RATE_LIMIT_WINDOW_SECONDS"), 10),
		RateLimitCapacity:      atoiOr(os.Getenv("RATE_LIMIT_CAPACITY"), 5),
		ReplyCacheTTLSeconds:   atoiOr(os.Getenv("REPLY_CACHE_TTL_SECONDS"), 600),
		ReplyCacheMaxItems:     atoiOr(os.Getenv("REPLY_CACHE_MAX_ITEMS"), 500),
	}

	if cfg.Port == "" {
		cfg.Port = "5000"
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = "app.db"
	}
	if cfg.GeminiModel == "" {
		cfg.GeminiModel = "gemini-1.5-flash"
	}

	if cfg.IsProduction && cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET_KEY must be set in production")
	}

	log.Printf("[config] AppEnv=%s IsStaging=%v IsProduction=%v", cfg.AppEnv, cfg.IsStaging, cfg.IsProduction)
	log.Printf("[config] GeminiEnabled=%v GeminiAPIKeyPresent=%v GeminiModel=%s", cfg.GeminiEnabled, cfg.GeminiAPIKey != "", cfg.GeminiModel)
	log.Printf("[config] TokenTTL=%dd RateLimit window=%ds capacity=%d cacheTTL=%ds cacheMax=%d",
		cfg.TokenTTLDays, cfg.RateLimitWindowSeconds, cfg.RateLimitCapacity, cfg.ReplyCacheTTLSeconds, cfg.ReplyCacheMaxItems)

	return cfg
}

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}
