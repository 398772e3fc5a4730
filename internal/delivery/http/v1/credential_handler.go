package v1

import (
	"errors"
	"net/http"

	"ameencheck-backend/internal/delivery/http/middleware"
	"ameencheck-backend/internal/delivery/http/response"
	"ameencheck-backend/internal/domain"
	"ameencheck-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type CredentialHandler struct {
	credentialUC domain.CredentialUsecase
}

func NewCredentialHandler(public, protected *gin.RouterGroup, credentialUC domain.CredentialUsecase) {
	handler := &CredentialHandler{credentialUC: credentialUC}

	publicCreds := public.Group("/credentials")
	{
		publicCreds.GET("/verify/:id", handler.Verify)
		publicCreds.POST("/shared/:shareId/track", handler.TrackAccess)
	}

	r := protected.Group("/credentials")
	{
		r.GET("/my-credentials", middleware.RequireRole(domain.RoleCandidate), handler.MyCredentials)
		r.POST("/issue", handler.Issue)
		r.POST("/:id/revoke", handler.Revoke)
		r.POST("/:id/share", middleware.RequireRole(domain.RoleCandidate), handler.CreateShare)
		r.GET("/:id/shares", middleware.RequireRole(domain.RoleCandidate), handler.ListShares)
	}
}

func (h *CredentialHandler) MyCredentials(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	credentials, err := h.credentialUC.ListForCandidate(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, credentials)
}

// Issue godoc
// @Summary      Issue a credential
// @Description  Issues a signed credential for a candidate; comprehensive credentials include the verifiable credential envelope
// @Tags         credentials
// @Accept       json
// @Produce      json
// @Param        credential  body  domain.IssueCredentialRequest  true  "Credential to issue"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /credentials/issue [post]
func (h *CredentialHandler) Issue(c *gin.Context) {
	var req domain.IssueCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Missing required fields"))
		return
	}

	cred, err := h.credentialUC.Issue(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	body := gin.H{
		"id":              cred.ID,
		"verificationUrl": cred.VerificationURL,
		"qrCode":          cred.QRCode,
		"message":         "Credential issued successfully",
	}
	if cred.Type == domain.PackageComprehensive {
		body["credential"] = buildVerifiableCredential(cred)
	}

	c.JSON(http.StatusCreated, body)
}

// buildVerifiableCredential wraps an issued credential in the W3C-style
// envelope with the simulated proof attached.
func buildVerifiableCredential(cred *domain.Credential) *domain.VerifiableCredential {
	subject := map[string]interface{}{
		"id":    "did:ameencheck:candidate:" + cred.CandidateID,
		"name":  cred.CandidateName,
		"title": cred.Title,
	}
	var evidence []map[string]interface{}
	if cred.Details != nil {
		evidence = append(evidence, map[string]interface{}{
			"type":    "DocumentVerification",
			"details": cred.Details,
		})
	}

	return domain.NewVerifiableCredential(
		cred.ID, "ComprehensiveBackgroundCheck",
		cred.IssuedDate, cred.ExpiryDate,
		subject, evidence,
	).Sign()
}

// Verify godoc
// @Summary      Verify a credential
// @Description  Public verification endpoint backing the QR code on every issued credential
// @Tags         credentials
// @Produce      json
// @Param        id  path  string  true  "Credential ID"
// @Success      200  {object}  domain.VerifyResult
// @Failure      404  {object}  map[string]interface{}
// @Router       /credentials/verify/{id} [get]
func (h *CredentialHandler) Verify(c *gin.Context) {
	result, err := h.credentialUC.Verify(c.Request.Context(), c.Param("id"))
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == http.StatusNotFound {
			c.JSON(http.StatusNotFound, gin.H{"valid": false, "error": appErr.Message})
			return
		}
		c.Error(err)
		return
	}

	cred := result.Credential
	c.JSON(http.StatusOK, gin.H{
		"valid":  result.Valid,
		"status": result.Status,
		"credential": gin.H{
			"id":            cred.ID,
			"type":          cred.Type,
			"title":         cred.Title,
			"candidateName": cred.CandidateName,
			"details":       cred.Details,
			"issuedDate":    cred.IssuedDate,
			"expiryDate":    cred.ExpiryDate,
			"signature":     cred.Signature,
		},
	})
}

type revokeRequest struct {
	Reason string `json:"reason"`
}

func (h *CredentialHandler) Revoke(c *gin.Context) {
	var req revokeRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.credentialUC.Revoke(c.Request.Context(), c.Param("id"), req.Reason); err != nil {
		c.Error(err)
		return
	}

	response.Message(c, http.StatusOK, "Credential revoked successfully")
}

func (h *CredentialHandler) CreateShare(c *gin.Context) {
	var req domain.CreateShareRequest
	_ = c.ShouldBindJSON(&req)

	share, err := h.credentialUC.CreateShare(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"shareLink":   share.ShareLink,
		"expiresDate": share.ExpiresDate,
		"message":     "Share link created successfully",
	})
}

func (h *CredentialHandler) ListShares(c *gin.Context) {
	shares, err := h.credentialUC.ListShares(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, shares)
}

func (h *CredentialHandler) TrackAccess(c *gin.Context) {
	if err := h.credentialUC.TrackAccess(c.Request.Context(), c.Param("shareId")); err != nil {
		c.Error(err)
		return
	}
	response.Message(c, http.StatusOK, "Access tracked")
}
