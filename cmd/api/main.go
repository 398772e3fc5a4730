package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ameencheck-backend/config"
	_ "ameencheck-backend/docs" // swagger spec registration
	v1 "ameencheck-backend/internal/delivery/http/v1"
	"ameencheck-backend/internal/repository/postgres"
	"ameencheck-backend/internal/usecase"
	"ameencheck-backend/pkg/auth"
	"ameencheck-backend/pkg/database"
	"ameencheck-backend/pkg/email"
	"ameencheck-backend/pkg/logger"
	"ameencheck-backend/pkg/redis"
)

// @title           AmeenCheck Backend API
// @version         1.0
// @description     Background verification platform: verification workflow, credential issuance and public verification.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init()
	logger.Log.Info("Starting ameencheck backend", "port", cfg.Port)

	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, rate limiting falls back to in-memory", "error", err)
	}
	defer redis.Close()

	userRepo := postgres.NewUserRepository(dbPool)
	employerRepo := postgres.NewEmployerRepository(dbPool)
	candidateRepo := postgres.NewCandidateRepository(dbPool)
	verificationRepo := postgres.NewVerificationRepository(dbPool)
	credentialRepo := postgres.NewCredentialRepository(dbPool)
	shareRepo := postgres.NewShareRepository(dbPool)
	reviewRepo := postgres.NewReviewRepository(dbPool)
	adminRepo := postgres.NewAdminRepository(dbPool)
	notificationRepo := postgres.NewNotificationRepository(dbPool)

	emailService := email.NewEmailService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - invitation emails will be skipped")
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret)

	authUC := usecase.NewAuthUsecase(userRepo, employerRepo, candidateRepo, tokens)
	verificationUC := usecase.NewVerificationUsecase(
		verificationRepo, employerRepo, candidateRepo, userRepo, notificationRepo,
		reviewRepo, emailService, cfg.PublicBaseURL,
	)
	credentialUC := usecase.NewCredentialUsecase(
		credentialRepo, shareRepo, candidateRepo, notificationRepo, cfg.PublicBaseURL,
	)
	adminUC := usecase.NewAdminUsecase(
		reviewRepo, adminRepo, employerRepo, candidateRepo, verificationRepo, cfg.PublicBaseURL,
	)
	notificationUC := usecase.NewNotificationUsecase(notificationRepo)

	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:         authUC,
		VerificationUC: verificationUC,
		CredentialUC:   credentialUC,
		AdminUC:        adminUC,
		NotificationUC: notificationUC,
		Tokens:         tokens,
		Config:         cfg,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exited")
}
