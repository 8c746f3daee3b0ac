package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vecindia/condominio-api/internal/middleware"
	"github.com/vecindia/condominio-api/internal/services"
)

type AlertHandler struct {
	alertService *services.AlertService
}

func NewAlertHandler(alertService *services.AlertService) *AlertHandler {
	return &AlertHandler{alertService: alertService}
}

// @Summary List My Alerts
// @Description Alerts for the authenticated user, optionally unread only
// @Tags Alerts
// @Produce json
// @Param no_leidas query bool false "Only unread alerts"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /alertas [get]
func (h *AlertHandler) Index(c *gin.Context) {
	userID := middleware.GetUserID(c)
	unreadOnly := c.Query("no_leidas") == "true"

	alerts, err := h.alertService.ListForUser(c.Request.Context(), userID, unreadOnly)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	unread, err := h.alertService.CountUnread(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"alertas":   alerts,
		"no_leidas": unread,
	})
}

// @Summary Mark Alert Read
// @Tags Alerts
// @Produce json
// @Param id path int true "Alert ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /alertas/{id}/leer [post]
func (h *AlertHandler) MarkRead(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.alertService.MarkRead(c.Request.Context(), id, middleware.GetUserID(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"mensaje": "Alerta leída"})
}

// @Summary Mark All Alerts Read
// @Tags Alerts
// @Produce json
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /alertas/leer-todas [post]
func (h *AlertHandler) MarkAllRead(c *gin.Context) {
	if err := h.alertService.MarkAllRead(c.Request.Context(), middleware.GetUserID(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"mensaje": "Alertas leídas"})
}
