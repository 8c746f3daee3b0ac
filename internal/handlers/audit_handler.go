package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vecindia/condominio-api/internal/services"
)

type AuditHandler struct {
	auditService *services.AuditService
}

func NewAuditHandler(auditService *services.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// @Summary List Audit Events
// @Description Paginated, filterable view of the append-only audit log
// @Tags Audit
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param tipo_evento query string false "Filter by event type"
// @Param residente_id query int false "Filter by resident"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /registros [get]
func (h *AuditHandler) Index(c *gin.Context) {
	query := listQueryFromContext(c, "tipo_evento", "residente_id", "usuario_id", "condominio_id")

	events, total, err := h.auditService.List(c.Request.Context(), query)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"registros":  events,
		"pagination": paginationResponse(query, total),
	})
}
