package main

import (
	"fmt"
	"os"

	"github.com/estroop3-gif/second-watch-network-sub006/internal/handler"
	"github.com/estroop3-gif/second-watch-network-sub006/internal/middleware"
	"github.com/estroop3-gif/second-watch-network-sub006/internal/model"
	"github.com/estroop3-gif/second-watch-network-sub006/pkg/config"
	"github.com/estroop3-gif/second-watch-network-sub006/pkg/database"
	"github.com/estroop3-gif/second-watch-network-sub006/pkg/jwtutil"
	"github.com/estroop3-gif/second-watch-network-sub006/pkg/logger"
	"github.com/estroop3-gif/second-watch-network-sub006/prometheus"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	conf, err := config.Load("orgquota")
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.InitLogger(&logger.LogConfig{
		Level:       conf.Log.Level,
		Environment: conf.Server.Env,
		ServiceName: conf.ServiceName,
	})
	if err != nil {
		fmt.Printf("Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	log := logger.GetLogger()
	log.Info("Configuration loaded", conf.LogConfig()...)

	// Initialize database connection
	_, err = database.InitDB(&conf.DB)
	if err != nil {
		log.Fatal("Failed to initialize database")
	}

	// Run migrations for quota models
	if err := database.MigrateModels(
		&model.Tier{},
		&model.Organization{},
		&model.LimitOverride{},
		&model.UsageSnapshot{},
		&model.Membership{},
		&model.Project{},
		&model.ProjectSeat{},
		&model.StorageEntry{},
		&model.BandwidthEntry{},
		&model.OwnerLimit{},
	); err != nil {
		log.Fatal("Failed to migrate database models")
	}

	// Initialize JWT utility
	jwt := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{
		SigningKey:      conf.JWT.SigningKey,
		ExpirationHours: conf.JWT.ExpirationHours,
	})

	// Initialize Prometheus metrics and quota defaults
	prometheus.InitMetrics(conf)
	handler.SetQuotaDefaults(conf.Quota)

	// Initialize Echo framework
	e := echo.New()

	// Apply middleware
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware())
	e.Use(middleware.MetricsMiddleware)

	// Public endpoints
	e.GET("/healthz", handler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(prometheus.GetPrometheusHandler()))

	// Admin API - requires an admin JWT
	api := e.Group("")
	api.Use(middleware.JWTAuthMiddleware(jwt))

	// Tier catalog
	api.GET("/tiers", handler.ListTiers)
	api.POST("/tiers", handler.CreateTier)
	api.PUT("/tiers/:id", handler.UpdateTier)

	// Organizations
	api.GET("/organizations", handler.ListOrganizations)
	api.GET("/organizations/:id", handler.GetOrganization)
	api.PUT("/organizations/:id/tier", handler.AssignTier)

	// Limit overrides
	api.PUT("/organizations/:id/overrides", handler.SetOverrides)
	api.DELETE("/organizations/:id/overrides", handler.ClearOverrides)
	api.DELETE("/organizations/:id/overrides/:resource", handler.ClearOverride)

	// Usage and entitlements
	api.POST("/organizations/:id/usage/recalculate", handler.RecalculateUsage)
	api.GET("/organizations/:id/entitlements", handler.GetEntitlements)

	// User organization-ownership limits
	api.GET("/users/:id/org-limit", handler.GetOwnerLimit)
	api.PUT("/users/:id/org-limit", handler.SetOwnerLimit)

	// Start server
	log.Info("Starting orgquota-service on port " + conf.Server.Port)
	e.Logger.Fatal(e.Start(":" + conf.Server.Port))
}
