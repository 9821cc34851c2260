package main

import (
	"context"
	"time"

	"secreto/backend/internal/cache"
	"secreto/backend/internal/config"
	"secreto/backend/internal/database"
	"secreto/backend/internal/handler"
	"secreto/backend/internal/logger"
	"secreto/backend/internal/repository"
	"secreto/backend/internal/service"
	"secreto/backend/pkg/jwt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	// Swagger imports
	_ "secreto/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//go:generate swag init -g cmd/server/main.go -o docs -d ../../

// @title           Secreto API
// @version         1.0
// @description     Anonymous messages, public walls and favorites.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logger.Init(cfg.Env)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	profiles := newProfileCache(cfg)
	tokens := jwt.NewManager(cfg.JWTSecret, cfg.JWTTTL())

	users := service.NewUserService(repository.NewUserRepository(db), profiles, tokens)
	messages := service.NewMessageService(repository.NewMessageRepository(db), users, cfg.MaxMessageLength)
	favorites := service.NewFavoriteService(repository.NewFavoriteRepository(db), users)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), logger.RequestLogger())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	handler.RegisterRoutes(router, handler.New(users, messages, favorites), tokens)

	log.Info().Str("port", cfg.Port).Msg("server is running")
	log.Info().Msgf("Swagger UI is available at http://localhost:%s/swagger/index.html", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// newProfileCache uses Redis when REDIS_URL is set and a no-op cache otherwise.
func newProfileCache(cfg *config.Config) cache.ProfileCache {
	if cfg.RedisURL == "" {
		log.Info().Msg("REDIS_URL not set, profile cache disabled")
		return cache.NewNoopProfileCache()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := cache.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Warn().Err(err).Msg("profile cache disabled")
		return cache.NewNoopProfileCache()
	}
	return cache.NewRedisProfileCache(client, cfg.ProfileCacheTTL)
}
