package main

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"bizdir/internal/auth"
	"bizdir/internal/config"
	"bizdir/internal/database"
	"bizdir/internal/jwt"
	"bizdir/internal/logger"
	"bizdir/internal/repository"
	"bizdir/internal/routes"
	"bizdir/internal/service"
	"bizdir/internal/session"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel, cfg.LogPretty)
	if err != nil {
		log = zerolog.New(os.Stdout).With().Timestamp().Logger()
		log.Warn().Err(err).Msg("Falling back to info logging")
	}

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close() // Close connection when program exits

	// Create and seed the schema on first start
	if err := database.RunMigrations(db, cfg.DatabaseDriver, log); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	sessionTTL := time.Duration(cfg.SessionTTL) * time.Hour

	// Redis keeps sessions across restarts; fall back to memory when it is unavailable
	var sessionStore session.Store
	if cfg.RedisURL != "" {
		sessionStore, err = session.NewRedisStore(cfg.RedisURL, sessionTTL)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to connect to Redis. Keeping sessions in memory.")
		} else {
			log.Info().Msg("Connected to Redis session store")
		}
	}
	if sessionStore == nil {
		sessionStore = session.NewMemoryStore(sessionTTL)
	}

	hasher, err := auth.NewPasswordHasher(cfg.PasswordHasher, cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid password hasher")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	businessRepo := repository.NewBusinessRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, hasher, log)
	catalogService := service.NewCatalogService(categoryRepo, businessRepo, log)

	gin.SetMode(cfg.GinMode)

	router, err := routes.NewRouter(routes.Dependencies{
		AuthService:        authService,
		CatalogService:     catalogService,
		Sessions:           session.NewManager(sessionStore),
		Tokens:             jwt.NewJWTService(cfg.SessionSecret, sessionTTL),
		BaseURL:            cfg.BaseURL,
		CookieSecure:       cfg.CookieSecure,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		Logger:             log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build router")
	}

	log.Info().Str("port", cfg.Port).Str("driver", cfg.DatabaseDriver).Msg("Server starting")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}
