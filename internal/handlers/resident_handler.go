package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vecindia/condominio-api/internal/services"
)

type ResidentHandler struct {
	residentService   *services.ResidentService
	adjustmentService *services.AdjustmentService
}

func NewResidentHandler(residentService *services.ResidentService, adjustmentService *services.AdjustmentService) *ResidentHandler {
	return &ResidentHandler{
		residentService:   residentService,
		adjustmentService: adjustmentService,
	}
}

// @Summary List Residents
// @Description Get a paginated list of residents
// @Tags Residents
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param condominio_id query int false "Filter by condominium"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /residentes [get]
func (h *ResidentHandler) Index(c *gin.Context) {
	query := listQueryFromContext(c, "condominio_id", "activo")

	residents, total, err := h.residentService.List(c.Request.Context(), query)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"residentes": residents,
		"pagination": paginationResponse(query, total),
	})
}

// @Summary Get Resident
// @Description Get one resident
// @Tags Residents
// @Produce json
// @Param id path int true "Resident ID"
// @Success 200 {object} models.Resident
// @Security BearerAuth
// @Router /residentes/{id} [get]
func (h *ResidentHandler) Show(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	resident, err := h.residentService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resident)
}

// @Summary Create Resident
// @Description Register a resident in a condominium
// @Tags Residents
// @Accept json
// @Produce json
// @Param request body services.CreateResidentInput true "Resident data"
// @Success 201 {object} models.Resident
// @Security BearerAuth
// @Router /residentes [post]
func (h *ResidentHandler) Create(c *gin.Context) {
	var input services.CreateResidentInput
	if err := BindNestedOrFlat(c, "residente", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos de residente inválidos"})
		return
	}

	resident, err := h.residentService.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resident)
}

// @Summary Update Resident
// @Description Apply a partial update to a resident
// @Tags Residents
// @Accept json
// @Produce json
// @Param id path int true "Resident ID"
// @Param request body services.UpdateResidentInput true "Fields to update"
// @Success 200 {object} models.Resident
// @Security BearerAuth
// @Router /residentes/{id} [put]
func (h *ResidentHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input services.UpdateResidentInput
	if err := BindNestedOrFlat(c, "residente", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos de residente inválidos"})
		return
	}

	resident, err := h.residentService.Update(c.Request.Context(), id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resident)
}

// @Summary Last Adjustment
// @Description Get the resident's most recent unreversed adjustment, optionally narrowed to one charge or fine
// @Tags Adjustments
// @Produce json
// @Param id path int true "Resident ID"
// @Param tipo_objeto query string false "GASTO or MULTA"
// @Param objeto_id query int false "Target object ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /residentes/{id}/ajustes/ultimo [get]
func (h *ResidentHandler) LastAdjustment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var scope *services.AdjustmentScope
	if objType := c.Query("tipo_objeto"); objType != "" {
		objID, okID := parseQueryUint(c, "objeto_id")
		if !okID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "objeto_id es requerido junto a tipo_objeto"})
			return
		}
		scope = &services.AdjustmentScope{ObjectType: objType, ObjectID: objID}
	}

	event, meta, err := h.adjustmentService.FindLastAdjustment(c.Request.Context(), id, scope)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"registro": event,
		"ajuste":   meta,
	})
}

// @Summary Reverse Adjustment
// @Description Undo an adjustment, restoring the previous amount and status
// @Tags Adjustments
// @Accept json
// @Produce json
// @Param id path int true "Resident ID"
// @Param request body services.ReversalInput true "Reversal data"
// @Success 200 {object} models.AuditEvent
// @Security BearerAuth
// @Router /residentes/{id}/ajustes/revertir [post]
func (h *ResidentHandler) ReverseAdjustment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input services.ReversalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Motivo y usuario son requeridos"})
		return
	}

	event, err := h.adjustmentService.Reverse(c.Request.Context(), id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}
