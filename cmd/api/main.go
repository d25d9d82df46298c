package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"printflow/internal/config"
	"printflow/internal/database"
	"printflow/internal/domain"
	"printflow/internal/middleware"
	"printflow/internal/modules/auth"
	"printflow/internal/modules/crm"
	"printflow/internal/modules/events"
	"printflow/internal/modules/projects"
	"printflow/internal/modules/staff"
	"printflow/internal/pkg/jwt"
	"printflow/internal/repository"
	"printflow/internal/workflow"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		logrus.WithError(err).Fatal("failed to migrate database")
	}

	userRepo := repository.NewUserRepository(db)
	leadRepo := repository.NewLeadRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	hub := events.NewHub()
	defer hub.Close()

	coordinator := workflow.NewCoordinator(db, cfg.Workflow, hub)
	tokens := jwt.New(cfg.JWTSecret, cfg.JWTTTL)

	authHandler := auth.NewHandler(auth.NewService(userRepo, tokens))
	staffHandler := staff.NewHandler(staff.NewService(userRepo, coordinator))
	crmHandler := crm.NewHandler(crm.NewService(leadRepo, orderRepo, coordinator))
	projectsHandler := projects.NewHandler(projects.NewService(projectRepo, taskRepo, coordinator))
	eventsHandler := events.NewHandler(hub)

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())

	api := router.Group("/api/v1")
	authHandler.RegisterRoutes(api)

	protected := api.Group("")
	protected.Use(middleware.Auth(tokens, userRepo))
	eventsHandler.RegisterRoutes(protected)

	staffMgmt := protected.Group("")
	staffMgmt.Use(middleware.RequireRole(domain.RoleHR))
	staffHandler.RegisterRoutes(staffMgmt)

	sales := protected.Group("")
	sales.Use(middleware.RequireRole(domain.RoleSales))
	crmHandler.RegisterRoutes(sales)

	production := protected.Group("")
	production.Use(middleware.RequireRole(
		domain.RoleProjectManager,
		domain.RoleDesigner,
		domain.RolePrinting,
		domain.RoleLogistics,
	))
	projectsHandler.RegisterRoutes(production)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		logrus.WithField("addr", cfg.HTTPAddr).Info("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("forced shutdown")
	}
}
