package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"velvetdir/internal/config"
	"velvetdir/internal/database"
	"velvetdir/internal/middleware"
	"velvetdir/internal/modules/admin"
	"velvetdir/internal/modules/auth"
	"velvetdir/internal/modules/boost"
	"velvetdir/internal/modules/catalog"
	"velvetdir/internal/modules/sweep"
	"velvetdir/internal/modules/tier"
	"velvetdir/internal/modules/verification"
	"velvetdir/internal/pkg/jwt"
	"velvetdir/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	agencyRepo := repository.NewAgencyRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	verificationRepo := repository.NewVerificationRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	tokens := jwt.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	authService := auth.NewService(userRepo, agencyRepo, tokens)
	catalogService := catalog.NewService(profileRepo, agencyRepo)
	tierService := tier.NewService(profileRepo, agencyRepo, auditRepo)
	boostService := boost.NewService(profileRepo, auditRepo)
	verificationService := verification.NewService(verificationRepo, profileRepo, auditRepo)
	sweepService := sweep.NewService(subscriptionRepo, profileRepo)
	adminService := admin.NewService(profileRepo, agencyRepo, verificationRepo, subscriptionRepo, auditRepo)

	if cfg.AppEnv == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.Recovery(), middleware.RequestLogger(), middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authRequired := middleware.Auth(tokens)

	public := router.Group("/api/v1")
	catalog.NewHandler(catalogService).RegisterRoutes(public)
	auth.NewHandler(authService).RegisterRoutes(public, authRequired)

	owner := router.Group("/api/v1", authRequired)
	boost.NewHandler(boostService).RegisterRoutes(owner)
	verification.NewHandler(verificationService).RegisterRoutes(owner)

	adminGroup := router.Group("/api/v1/admin", authRequired, middleware.AdminOnly())
	admin.NewHandler(adminService, tierService, boostService, verificationService).RegisterRoutes(adminGroup)

	internal := router.Group("/internal", middleware.InternalToken(cfg.SweepToken))
	sweep.NewHandler(sweepService).RegisterRoutes(internal)

	addr := ":" + cfg.Port
	log.Printf("listening addr=%s env=%s", addr, cfg.AppEnv)
	if err := router.Run(addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
