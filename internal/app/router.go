package app

import (
	"course_market_backend/internal/config"
	"course_market_backend/internal/middleware"
	"course_market_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "course_market_backend/docs"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/login", c.auth.Login)
			auth.POST("/refresh", middleware.AuthMiddleware(cfg), c.auth.Refresh)
		}

		users := api.Group("/users")
		{
			users.POST("", c.user.Register)
			users.GET("/me", middleware.AuthMiddleware(cfg), c.user.Me)
		}

		course := api.Group("/course")
		{
			course.GET("", c.course.List)
			course.GET("/:id", middleware.TryAuthMiddleware(cfg), c.course.Get)
			course.GET("/author/:username", c.course.ListByAuthor)

			authorized := course.Group("", middleware.AuthMiddleware(cfg))
			{
				authorized.GET("/my", c.course.ListMine)
				authorized.POST("", c.course.Create)
				authorized.PUT("/:id", c.course.Update)
				authorized.DELETE("/:id", c.course.Delete)
				authorized.POST("/:id/tokens", c.course.MintTokens)
				authorized.POST("/:id/purchase/:token", c.course.Purchase)
				authorized.POST("/comment/:id", c.course.AddComment)
				authorized.DELETE("/comment/:id/:commentId", c.course.RemoveComment)
			}
		}

		lesson := api.Group("/lesson")
		{
			lesson.GET("", c.lesson.List)

			authorized := lesson.Group("", middleware.AuthMiddleware(cfg))
			{
				authorized.GET("/:id", c.lesson.Get)
				authorized.POST("", c.lesson.Create)
				authorized.PUT("/:id", c.lesson.Update)
				authorized.DELETE("/:id", c.lesson.Delete)
				authorized.POST("/:id/video", c.lesson.UploadVideo)
				authorized.POST("/:id/progress", c.lesson.RecordProgress)
				authorized.POST("/comment/:id", c.lesson.AddComment)
				authorized.DELETE("/comment/:id/:commentId", c.lesson.RemoveComment)
			}
		}
	}
}
