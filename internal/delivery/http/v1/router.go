package v1

import (
	"net/http"
	"time"

	"ameencheck-backend/config"
	"ameencheck-backend/internal/delivery/http/middleware"
	"ameencheck-backend/internal/domain"
	"ameencheck-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC         domain.AuthUsecase
	VerificationUC domain.VerificationUsecase
	CredentialUC   domain.CredentialUsecase
	AdminUC        domain.AdminUsecase
	NotificationUC domain.NotificationUsecase
	Tokens         *auth.TokenManager
	Config         *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	r.Use(middleware.CORSMiddleware()) // CORS must be first
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())

	// Uploaded documents are served straight off disk
	r.Static("/uploads", deps.Config.UploadDir)

	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second
	loginLimiter := middleware.RateLimitMiddleware(
		middleware.LoginRateLimitConfig(deps.Config.RateLimitLoginThreshold, window))
	registerLimiter := middleware.RateLimitMiddleware(middleware.RegisterRateLimitConfig(window))
	uploadLimiter := middleware.RateLimitMiddleware(middleware.UploadRateLimitConfig())

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens, deps.AuthUC))
	{
		NewAuthHandler(api, protected, deps.AuthUC, loginLimiter, registerLimiter)
		NewVerificationHandler(protected, deps.VerificationUC)
		NewCredentialHandler(api, protected, deps.CredentialUC)
		NewAdminHandler(protected, deps.AdminUC)
		NewNotificationHandler(protected, deps.NotificationUC)
		NewUploadHandler(protected, deps.Config.UploadDir, deps.Config.PublicBaseURL, uploadLimiter)
	}

	return r
}
