package v1

import (
	"net/http"

	"ameencheck-backend/internal/delivery/http/middleware"
	"ameencheck-backend/internal/delivery/http/response"
	"ameencheck-backend/internal/domain"
	"ameencheck-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminUC domain.AdminUsecase
}

func NewAdminHandler(protected *gin.RouterGroup, adminUC domain.AdminUsecase) {
	handler := &AdminHandler{adminUC: adminUC}

	r := protected.Group("/admin")
	r.Use(middleware.RequireRole(domain.RoleAdmin))
	{
		r.GET("/review-queue", handler.ReviewQueue)
		r.POST("/review-queue/:id/resolve", handler.ResolveReview)
		r.GET("/analytics", handler.Analytics)
		r.GET("/employers", handler.ListEmployers)
		r.GET("/candidates", handler.ListCandidates)
		r.PATCH("/employers/:id/status", handler.UpdateEmployerStatus)
		r.POST("/verifications/:id/complete", handler.CompleteVerification)
	}
}

func (h *AdminHandler) ReviewQueue(c *gin.Context) {
	items, err := h.adminUC.ReviewQueue(c.Request.Context(), c.Query("status"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, items)
}

type resolveReviewRequest struct {
	Notes string `json:"notes"`
}

func (h *AdminHandler) ResolveReview(c *gin.Context) {
	var req resolveReviewRequest
	_ = c.ShouldBindJSON(&req)

	adminUserID := c.GetString(string(domain.KeyUserID))
	if err := h.adminUC.ResolveReview(c.Request.Context(), c.Param("id"), req.Notes, adminUserID); err != nil {
		c.Error(err)
		return
	}

	response.Message(c, http.StatusOK, "Review resolved successfully")
}

// Analytics godoc
// @Summary      Platform analytics
// @Description  Dashboard counters: totals, status breakdown and last-7-days volume
// @Tags         admin
// @Produce      json
// @Success      200  {object}  domain.Analytics
// @Router       /admin/analytics [get]
func (h *AdminHandler) Analytics(c *gin.Context) {
	analytics, err := h.adminUC.Analytics(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, analytics)
}

func (h *AdminHandler) ListEmployers(c *gin.Context) {
	employers, err := h.adminUC.ListEmployers(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, employers)
}

func (h *AdminHandler) ListCandidates(c *gin.Context) {
	candidates, err := h.adminUC.ListCandidates(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, candidates)
}

type employerStatusRequest struct {
	Status string `json:"status"`
}

func (h *AdminHandler) UpdateEmployerStatus(c *gin.Context) {
	var req employerStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		c.Error(apperror.BadRequest("Invalid status"))
		return
	}

	if err := h.adminUC.UpdateEmployerStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		c.Error(err)
		return
	}

	response.Message(c, http.StatusOK, "Status updated successfully")
}

func (h *AdminHandler) CompleteVerification(c *gin.Context) {
	cred, err := h.adminUC.CompleteVerification(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Verification completed successfully",
		"credentialId": cred.ID,
	})
}
