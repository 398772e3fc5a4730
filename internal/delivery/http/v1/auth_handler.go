package v1

import (
	"net/http"

	"ameencheck-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
}

func NewAuthHandler(public, protected *gin.RouterGroup, authUC domain.AuthUsecase, loginLimiter, registerLimiter gin.HandlerFunc) {
	handler := &AuthHandler{authUC: authUC}

	publicAuth := public.Group("/auth")
	{
		publicAuth.POST("/login", loginLimiter, handler.Login)
		publicAuth.POST("/register/employer", registerLimiter, handler.RegisterEmployer)
		publicAuth.POST("/register/candidate", registerLimiter, handler.RegisterCandidate)
	}

	protectedAuth := protected.Group("/auth")
	{
		protectedAuth.GET("/me", handler.Me)
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login godoc
// @Summary      Log in
// @Description  Authenticate with email and password, returns a bearer token and the user profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials  body  LoginRequest  true  "Login credentials"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = LoginRequest{}
	}

	token, user, err := h.authUC.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// RegisterEmployer godoc
// @Summary      Register an employer account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        registration  body  domain.RegisterEmployerRequest  true  "Employer registration"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /auth/register/employer [post]
func (h *AuthHandler) RegisterEmployer(c *gin.Context) {
	var req domain.RegisterEmployerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = domain.RegisterEmployerRequest{}
	}

	token, user, err := h.authUC.RegisterEmployer(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

// RegisterCandidate godoc
// @Summary      Register a candidate account
// @Description  Optionally links the account to a pre-created invitation via candidateId
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        registration  body  domain.RegisterCandidateRequest  true  "Candidate registration"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /auth/register/candidate [post]
func (h *AuthHandler) RegisterCandidate(c *gin.Context) {
	var req domain.RegisterCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = domain.RegisterCandidateRequest{}
	}

	token, user, err := h.authUC.RegisterCandidate(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	user, err := h.authUC.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, user)
}
