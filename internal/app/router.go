package app

import (
	"deepeng_backend/docs"
	"deepeng_backend/internal/config"
	"deepeng_backend/internal/middleware"
	"deepeng_backend/internal/model"
	"deepeng_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	public := router.Group("/api")
	{
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
		public.GET("/health", c.health.HealthCheck)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/auth/me", c.auth.Me)

		authGroup.GET("/modules", c.module.List)
		authGroup.GET("/modules/:id", c.module.Get)

		authGroup.POST("/chat", c.chat.Chat)

		authGroup.POST("/progress", c.progress.Complete)
		authGroup.GET("/progress", c.progress.List)
		authGroup.GET("/user/progress", c.progress.List)
		authGroup.GET("/progress/module/:id", c.progress.GetForModule)

		authGroup.GET("/placement-test/questions", c.placement.Questions)
		authGroup.POST("/placement-test/submit", c.placement.Submit)
		authGroup.POST("/placement-test", c.placement.SubmitLegacy)

		authGroup.GET("/dictionary", c.dictionary.List)
		authGroup.GET("/dictionary/:word", c.dictionary.Lookup)

		authGroup.GET("/profile", c.profile.Profile)
		authGroup.GET("/profile/me", c.profile.Profile)
	}

	teacherGroup := router.Group("/api/editor")
	teacherGroup.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Teacher))
	{
		teacherGroup.POST("/modules", c.editor.CreateModule)
		teacherGroup.PUT("/modules/:id", c.editor.UpdateModule)
		teacherGroup.DELETE("/modules/:id", c.editor.DeleteModule)

		teacherGroup.POST("/assignments", c.editor.Assign)
		teacherGroup.GET("/assignments", c.editor.ListAssignments)
		teacherGroup.DELETE("/assignments/:id", c.editor.Unassign)

		teacherGroup.GET("/dashboard", c.profile.Dashboard)
		teacherGroup.PUT("/progress/:id/score", c.progress.OverrideScore)

		teacherGroup.POST("/dictionary", c.dictionary.Save)
		teacherGroup.POST("/upload-audio", c.upload.UploadAudio)
	}
}
