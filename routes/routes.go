package routes

import (
	"net/http"

	"snakyarena/handlers"
	"snakyarena/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	authHandler *handlers.AuthHandler,
	leaderboardHandler *handlers.LeaderboardHandler,
	liveHandler *handlers.LiveHandler,
	jwtSecret string,
) {
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to Snaky Arena API"})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
		}
		api.GET("/auth/me", middleware.AuthMiddleware(jwtSecret), authHandler.Me)

		// Leaderboard routes
		leaderboard := api.Group("/leaderboard")
		{
			leaderboard.GET("", leaderboardHandler.GetLeaderboard)
			leaderboard.POST("/submit", middleware.AuthMiddleware(jwtSecret), leaderboardHandler.SubmitScore)
		}

		// Live roster routes (public reads)
		live := api.Group("/live")
		{
			live.GET("/players", liveHandler.GetActivePlayers)
			live.POST("/watch/:playerId", liveHandler.WatchPlayer)

			// Session reporting (game clients only)
			sessions := live.Group("/sessions")
			sessions.Use(middleware.AuthMiddleware(jwtSecret))
			{
				sessions.POST("", liveHandler.StartSession)
				sessions.PUT("/:id", liveHandler.UpdateSession)
				sessions.DELETE("/:id", liveHandler.EndSession)
			}
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
