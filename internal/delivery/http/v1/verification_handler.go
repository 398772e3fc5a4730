package v1

import (
	"net/http"

	"ameencheck-backend/internal/delivery/http/middleware"
	"ameencheck-backend/internal/delivery/http/response"
	"ameencheck-backend/internal/domain"
	"ameencheck-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type VerificationHandler struct {
	verificationUC domain.VerificationUsecase
}

func NewVerificationHandler(protected *gin.RouterGroup, verificationUC domain.VerificationUsecase) {
	handler := &VerificationHandler{verificationUC: verificationUC}

	r := protected.Group("/verifications")
	{
		r.POST("", middleware.RequireRole(domain.RoleEmployer), handler.Create)
		r.GET("/employer", middleware.RequireRole(domain.RoleEmployer), handler.ListForEmployer)
		r.GET("/employer/stats", middleware.RequireRole(domain.RoleEmployer), handler.Stats)
		r.GET("/candidate/my-verifications", middleware.RequireRole(domain.RoleCandidate), handler.ListForCandidate)
		r.GET("/:id", handler.GetByID)
		r.POST("/:id/submit", middleware.RequireRole(domain.RoleCandidate), handler.SubmitRecords)
		r.PATCH("/:id/status", handler.UpdateStatus)
		r.PATCH("/:id/items/:itemId/status", middleware.RequireRole(domain.RoleAdmin), handler.UpdateItemStatus)
	}
}

// Create godoc
// @Summary      Create a verification request
// @Description  Creates the verification with its seeded check items and invites the candidate
// @Tags         verifications
// @Accept       json
// @Produce      json
// @Param        verification  body  domain.CreateVerificationRequest  true  "Verification request"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /verifications [post]
func (h *VerificationHandler) Create(c *gin.Context) {
	var req domain.CreateVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Missing required fields"))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	verification, err := h.verificationUC.Create(c.Request.Context(), userID, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":          verification.ID,
		"candidateId": verification.CandidateID,
		"message":     "Verification created successfully. Invitation email sent to candidate.",
	})
}

func (h *VerificationHandler) GetByID(c *gin.Context) {
	verification, err := h.verificationUC.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, verification)
}

func (h *VerificationHandler) ListForEmployer(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	verifications, err := h.verificationUC.ListForEmployer(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, verifications)
}

func (h *VerificationHandler) ListForCandidate(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	verifications, err := h.verificationUC.ListForCandidate(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, verifications)
}

// SubmitRecords godoc
// @Summary      Submit supporting records
// @Description  Candidate submits education, employment and reference records for a verification
// @Tags         verifications
// @Accept       json
// @Produce      json
// @Param        id      path  string                     true  "Verification ID"
// @Param        records body  domain.CandidateSubmission true  "Supporting records"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /verifications/{id}/submit [post]
func (h *VerificationHandler) SubmitRecords(c *gin.Context) {
	var sub domain.CandidateSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.Error(apperror.BadRequest("Invalid submission payload"))
		return
	}

	if err := h.verificationUC.SubmitRecords(c.Request.Context(), c.Param("id"), &sub); err != nil {
		c.Error(err)
		return
	}

	response.Message(c, http.StatusOK, "Information submitted successfully. Verification in progress.")
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *VerificationHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid status"))
		return
	}

	if err := h.verificationUC.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		c.Error(err)
		return
	}

	response.Message(c, http.StatusOK, "Status updated successfully")
}

type updateItemRequest struct {
	Status  string                 `json:"status"`
	Result  string                 `json:"result"`
	Details map[string]interface{} `json:"details"`
}

func (h *VerificationHandler) UpdateItemStatus(c *gin.Context) {
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid status"))
		return
	}

	err := h.verificationUC.UpdateItemStatus(
		c.Request.Context(),
		c.Param("id"), c.Param("itemId"),
		req.Status, req.Result, req.Details,
	)
	if err != nil {
		c.Error(err)
		return
	}

	response.Message(c, http.StatusOK, "Item updated successfully")
}

func (h *VerificationHandler) Stats(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	stats, err := h.verificationUC.StatsForEmployer(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
