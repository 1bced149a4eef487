package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Masai2005/zero-app/internal/middleware"
	"github.com/Masai2005/zero-app/internal/service"
)

type NotificationsHandler struct{ svc service.NotificationService }

func NewNotificationsHandler(svc service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{svc: svc}
}

func (h *NotificationsHandler) List(c *gin.Context) {
	claims := middleware.GetClaims(c)
	resp, err := h.svc.List(claims.Username)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Generate runs a rule evaluation pass. Safe to call repeatedly; duplicates
// are suppressed by (type, reference_id).
func (h *NotificationsHandler) Generate(c *gin.Context) {
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Generate(claims.Username)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *NotificationsHandler) MarkRead(c *gin.Context) {
	if err := h.svc.MarkRead(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *NotificationsHandler) MarkAllRead(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if err := h.svc.MarkAllRead(claims.Username); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
