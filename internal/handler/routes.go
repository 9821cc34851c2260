package handler

import (
	"net/http"

	"secreto/backend/internal/auth"
	"secreto/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the API under /api/v1 plus the /ping health check.
func RegisterRoutes(router *gin.Engine, h *Handler, tokens *jwt.Manager) {
	requireAuth := auth.AuthMiddleware(tokens)
	optionalAuth := auth.OptionalAuthMiddleware(tokens)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/signup", h.Signup)
			authRoutes.POST("/login", h.Login)
		}

		userRoutes := apiV1.Group("/users")
		{
			userRoutes.GET("/me", requireAuth, h.GetMe)
			userRoutes.PUT("/me", requireAuth, h.UpdateMe)
			userRoutes.GET("/search", requireAuth, h.SearchUsers)
			userRoutes.GET("/:handle", optionalAuth, h.GetUserByHandle)
			userRoutes.GET("/:handle/messages", h.ListPublicMessages)
		}

		messageRoutes := apiV1.Group("/messages")
		{
			messageRoutes.POST("", optionalAuth, h.SubmitMessage)
			messageRoutes.GET("", requireAuth, h.ListMessages)
			messageRoutes.PUT("/:id/status", requireAuth, h.TransitionMessage)
			messageRoutes.DELETE("/:id", requireAuth, h.DeleteMessage)
		}

		favoriteRoutes := apiV1.Group("/favorites")
		favoriteRoutes.Use(requireAuth)
		{
			favoriteRoutes.GET("", h.ListFavorites)
			favoriteRoutes.POST("/:id", h.AddFavorite)
			favoriteRoutes.DELETE("/:id", h.RemoveFavorite)
			favoriteRoutes.GET("/:id", h.GetFavoriteStatus)
		}
	}
}
