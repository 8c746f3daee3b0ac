package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vecindia/condominio-api/internal/services"
)

type FineHandler struct {
	fineService       *services.FineService
	adjustmentService *services.AdjustmentService
}

func NewFineHandler(fineService *services.FineService, adjustmentService *services.AdjustmentService) *FineHandler {
	return &FineHandler{
		fineService:       fineService,
		adjustmentService: adjustmentService,
	}
}

// @Summary List Fines
// @Description Get a paginated list of fines
// @Tags Fines
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param residente_id query int false "Filter by resident"
// @Param estado query string false "Filter by status"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /multas [get]
func (h *FineHandler) Index(c *gin.Context) {
	query := listQueryFromContext(c, "residente_id", "condominio_id", "estado", "tipo")

	fines, total, err := h.fineService.List(c.Request.Context(), query)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"multas":     fines,
		"pagination": paginationResponse(query, total),
	})
}

// @Summary Get Fine
// @Description Get one fine
// @Tags Fines
// @Produce json
// @Param id path int true "Fine ID"
// @Success 200 {object} models.Fine
// @Security BearerAuth
// @Router /multas/{id} [get]
func (h *FineHandler) Show(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	fine, err := h.fineService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, fine)
}

// @Summary Create Fine
// @Description Issue a fine to a resident
// @Tags Fines
// @Accept json
// @Produce json
// @Param request body services.CreateFineInput true "Fine data"
// @Success 201 {object} models.Fine
// @Security BearerAuth
// @Router /multas [post]
func (h *FineHandler) Create(c *gin.Context) {
	var input services.CreateFineInput
	if err := BindNestedOrFlat(c, "multa", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos de multa inválidos"})
		return
	}

	fine, err := h.fineService.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, fine)
}

// @Summary Adjust Fine
// @Description Change a fine's amount or condone it; the edit is recorded in the audit log
// @Tags Adjustments
// @Accept json
// @Produce json
// @Param id path int true "Fine ID"
// @Param request body services.AdjustmentInput true "Adjustment data"
// @Success 200 {object} models.Fine
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /multas/{id}/ajustar [post]
func (h *FineHandler) Adjust(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input services.AdjustmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Motivo y usuario son requeridos"})
		return
	}

	fine, err := h.adjustmentService.AdjustFine(c.Request.Context(), id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, fine)
}

// @Summary Reverse Fine Adjustment
// @Description Undo the fine's latest adjustment, or the audit event named in the body
// @Tags Adjustments
// @Accept json
// @Produce json
// @Param id path int true "Fine ID"
// @Param request body services.ReversalInput true "Reversal data"
// @Success 200 {object} models.AuditEvent
// @Security BearerAuth
// @Router /multas/{id}/revertir [post]
func (h *FineHandler) ReverseAdjustment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input services.ReversalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Motivo y usuario son requeridos"})
		return
	}

	event, err := h.adjustmentService.ReverseFine(c.Request.Context(), id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// @Summary Process Late Payments
// @Description Issue late-payment fines for charges overdue past the grace period
// @Tags Fines
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /multas/procesar-atrasos [post]
func (h *FineHandler) ProcessLatePayments(c *gin.Context) {
	issued, err := h.fineService.ProcessLatePayments(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Procesamiento de atrasos completado",
		"multas_emitidas": issued,
	})
}
