package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vecindia/condominio-api/internal/services"
)

type ChargeHandler struct {
	chargeService     *services.ChargeService
	adjustmentService *services.AdjustmentService
}

func NewChargeHandler(chargeService *services.ChargeService, adjustmentService *services.AdjustmentService) *ChargeHandler {
	return &ChargeHandler{
		chargeService:     chargeService,
		adjustmentService: adjustmentService,
	}
}

// @Summary List Charges
// @Description Get a paginated list of common-expense charges
// @Tags Charges
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param residente_id query int false "Filter by resident"
// @Param estado query string false "Filter by status"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /gastos-comunes [get]
func (h *ChargeHandler) Index(c *gin.Context) {
	query := listQueryFromContext(c, "residente_id", "condominio_id", "estado", "mes", "anio")

	charges, total, err := h.chargeService.List(c.Request.Context(), query)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"gastos_comunes": charges,
		"pagination":     paginationResponse(query, total),
	})
}

// @Summary Get Charge
// @Description Get one common-expense charge
// @Tags Charges
// @Produce json
// @Param id path int true "Charge ID"
// @Success 200 {object} models.Charge
// @Security BearerAuth
// @Router /gastos-comunes/{id} [get]
func (h *ChargeHandler) Show(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	charge, err := h.chargeService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, charge)
}

// @Summary Create Charge
// @Description Emit a common-expense charge for a resident
// @Tags Charges
// @Accept json
// @Produce json
// @Param request body services.CreateChargeInput true "Charge data"
// @Success 201 {object} models.Charge
// @Security BearerAuth
// @Router /gastos-comunes [post]
func (h *ChargeHandler) Create(c *gin.Context) {
	var input services.CreateChargeInput
	if err := BindNestedOrFlat(c, "gasto_comun", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos de gasto común inválidos"})
		return
	}

	charge, err := h.chargeService.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, charge)
}

// @Summary Adjust Charge
// @Description Change a charge's total or condone it entirely; the edit is recorded in the audit log
// @Tags Adjustments
// @Accept json
// @Produce json
// @Param id path int true "Charge ID"
// @Param request body services.AdjustmentInput true "Adjustment data"
// @Success 200 {object} models.Charge
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /gastos-comunes/{id}/ajustar [post]
func (h *ChargeHandler) Adjust(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input services.AdjustmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Motivo y usuario son requeridos"})
		return
	}

	charge, err := h.adjustmentService.AdjustCharge(c.Request.Context(), id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, charge)
}

// @Summary Reverse Charge Adjustment
// @Description Undo the charge's latest adjustment, or the audit event named in the body
// @Tags Adjustments
// @Accept json
// @Produce json
// @Param id path int true "Charge ID"
// @Param request body services.ReversalInput true "Reversal data"
// @Success 200 {object} models.AuditEvent
// @Security BearerAuth
// @Router /gastos-comunes/{id}/revertir [post]
func (h *ChargeHandler) ReverseAdjustment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input services.ReversalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Motivo y usuario son requeridos"})
		return
	}

	event, err := h.adjustmentService.ReverseCharge(c.Request.Context(), id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}
