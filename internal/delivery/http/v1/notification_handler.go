package v1

import (
	"net/http"

	"ameencheck-backend/internal/delivery/http/response"
	"ameencheck-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationUC domain.NotificationUsecase
}

func NewNotificationHandler(protected *gin.RouterGroup, notificationUC domain.NotificationUsecase) {
	handler := &NotificationHandler{notificationUC: notificationUC}

	r := protected.Group("/notifications")
	{
		r.GET("", handler.List)
		r.PATCH("/:id/read", handler.MarkRead)
	}
}

func (h *NotificationHandler) List(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	notifications, err := h.notificationUC.List(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	if err := h.notificationUC.MarkRead(c.Request.Context(), c.Param("id"), userID); err != nil {
		c.Error(err)
		return
	}
	response.Message(c, http.StatusOK, "Notification marked as read")
}
