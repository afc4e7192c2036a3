package main

import (
	"gorm.io/gorm"

	"github.com/planboard/planboard/internal/authz"
	"github.com/planboard/planboard/internal/config"
	"github.com/planboard/planboard/internal/handlers"
	"github.com/planboard/planboard/internal/models"
	"github.com/planboard/planboard/internal/services"
	"github.com/planboard/planboard/internal/utils"
	"github.com/planboard/planboard/pkg/logger"
)

// appServices holds the database handle, the authorization engine and every
// handler the router needs.
type appServices struct {
	db     *gorm.DB
	engine *authz.Engine

	authHandler       *handlers.AuthHandler
	userHandler       *handlers.UserHandler
	clientHandler     *handlers.ClientHandler
	projectHandler    *handlers.ProjectHandler
	taskHandler       *handlers.TaskHandler
	assignmentHandler *handlers.AssignmentHandler
	paymentHandler    *handlers.PaymentHandler
	dashboardHandler  *handlers.DashboardHandler
	systemLogHandler  *handlers.SystemLogHandler
	healthHandler     *handlers.HealthHandler
}

// bootstrap initializes all application dependencies: database, schema,
// authorization engine, schedulers and handlers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	db, err := models.Open(&cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := models.AutoMigrate(db); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	services.InitSystemLogger(db)
	services.StartLogCleanupScheduler(db, cfg.Log.RetentionDays)

	// The engine answers every permission question; all services share it.
	engine := authz.NewEngine(services.NewMembershipIndex(db))

	authHandler := handlers.NewAuthHandler(db, engine, cfg)
	if err := authHandler.CreateAdminIfNotExists(&cfg.Admin); err != nil {
		logger.Warn().Err(err).Msg("Failed to create admin user")
	}

	return &appServices{
		db:     db,
		engine: engine,

		authHandler:       authHandler,
		userHandler:       handlers.NewUserHandler(db, engine),
		clientHandler:     handlers.NewClientHandler(db, engine),
		projectHandler:    handlers.NewProjectHandler(db, engine),
		taskHandler:       handlers.NewTaskHandler(db, engine),
		assignmentHandler: handlers.NewAssignmentHandler(db, engine),
		paymentHandler:    handlers.NewPaymentHandler(db, engine),
		dashboardHandler:  handlers.NewDashboardHandler(db, engine),
		systemLogHandler:  handlers.NewSystemLogHandler(db),
		healthHandler:     handlers.NewHealthHandler(db),
	}
}
