package main

import (
	"github.com/gin-gonic/gin"

	"github.com/planboard/planboard/internal/middleware"
	"github.com/planboard/planboard/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	// Rate limiter for credential endpoints
	authLimiter := middleware.NewRateLimiter(10, 20)

	// Health check
	r.GET("/health", svc.healthHandler.CheckHealth)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth", authLimiter.Middleware())
		{
			auth.POST("/login", svc.authHandler.Login)
			auth.POST("/refresh", svc.authHandler.Refresh)
			auth.GET("/config", svc.authHandler.GetAuthConfig)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired(), middleware.AuditLog())
		{
			// Auth
			protected.GET("/auth/me", svc.authHandler.GetCurrentUser)
			protected.POST("/auth/logout", svc.authHandler.Logout)
			protected.POST("/auth/change-password", svc.authHandler.ChangePassword)
			protected.POST("/auth/register", svc.authHandler.Register)

			// Dashboard (all roles, scoped inside the service)
			protected.GET("/dashboard/stats", svc.dashboardHandler.Stats)

			// Users
			protected.GET("/users", svc.userHandler.List)
			protected.GET("/users/:id", svc.userHandler.GetByID)
			protected.DELETE("/users/:id", svc.userHandler.Delete)
			protected.GET("/users/:id/tasks", svc.taskHandler.ListByUser)
			protected.GET("/users/:id/assignments", svc.assignmentHandler.ListByUser)

			// Clients
			protected.GET("/clients", svc.clientHandler.List)
			protected.GET("/clients/:id", svc.clientHandler.GetByID)
			protected.POST("/clients", svc.clientHandler.Create)
			protected.PUT("/clients/:id", svc.clientHandler.Update)
			protected.DELETE("/clients/:id", svc.clientHandler.Delete)

			// Projects
			protected.GET("/projects", svc.projectHandler.List)
			protected.GET("/projects/:id", svc.projectHandler.GetByID)
			protected.POST("/projects", svc.projectHandler.Create)
			protected.PUT("/projects/:id", svc.projectHandler.Update)
			protected.PATCH("/projects/:id/status", svc.projectHandler.UpdateStatus)
			protected.DELETE("/projects/:id", svc.projectHandler.Delete)
			protected.GET("/projects/:id/tasks", svc.taskHandler.ListByProject)
			protected.GET("/projects/:id/assignments", svc.assignmentHandler.ListByProject)
			protected.GET("/projects/:id/payments", svc.paymentHandler.ListByProject)

			// Tasks
			protected.GET("/tasks", svc.taskHandler.List)
			protected.GET("/tasks/:id", svc.taskHandler.GetByID)
			protected.POST("/tasks", svc.taskHandler.Create)
			protected.PUT("/tasks/:id", svc.taskHandler.Update)
			protected.PATCH("/tasks/:id/status", svc.taskHandler.UpdateStatus)
			protected.DELETE("/tasks/:id", svc.taskHandler.Delete)

			// Assignments
			protected.POST("/assignments", svc.assignmentHandler.Create)
			protected.DELETE("/assignments/:id", svc.assignmentHandler.Remove)

			// Payments
			protected.POST("/payments", svc.paymentHandler.Create)

			// System Logs (Admin only)
			admin := protected.Group("", middleware.AdminRequired())
			{
				admin.GET("/system-logs", svc.systemLogHandler.List)
				admin.GET("/system-logs/modules", svc.systemLogHandler.GetModules)
			}
		}
	}
}
