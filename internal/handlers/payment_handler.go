package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vecindia/condominio-api/internal/middleware"
	"github.com/vecindia/condominio-api/internal/services"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
}

func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// @Summary List Payments
// @Description Get a paginated list of payments
// @Tags Payments
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param estado query string false "Filter by status"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /pagos [get]
func (h *PaymentHandler) Index(c *gin.Context) {
	query := listQueryFromContext(c, "residente_id", "condominio_id", "estado", "tipo")

	payments, total, err := h.paymentService.List(c.Request.Context(), query)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pagos":      payments,
		"pagination": paginationResponse(query, total),
	})
}

// @Summary Get Payment
// @Description Get one payment
// @Tags Payments
// @Produce json
// @Param id path int true "Payment ID"
// @Success 200 {object} models.Payment
// @Security BearerAuth
// @Router /pagos/{id} [get]
func (h *PaymentHandler) Show(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	payment, err := h.paymentService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, payment)
}

// @Summary Register Payment
// @Description Register a payment awaiting administration review
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body services.CreatePaymentInput true "Payment data"
// @Success 201 {object} models.Payment
// @Security BearerAuth
// @Router /pagos [post]
func (h *PaymentHandler) Create(c *gin.Context) {
	var input services.CreatePaymentInput
	if err := BindNestedOrFlat(c, "pago", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos de pago inválidos"})
		return
	}

	payment, err := h.paymentService.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, payment)
}

// @Summary Approve Payment
// @Description Accept a pending payment and settle the charge or fine it references
// @Tags Payments
// @Produce json
// @Param id path int true "Payment ID"
// @Success 200 {object} models.Payment
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /pagos/{id}/aprobar [post]
func (h *PaymentHandler) Approve(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	payment, err := h.paymentService.Approve(c.Request.Context(), id, middleware.GetUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, payment)
}

type ReviewPaymentRequest struct {
	Reason string `json:"motivo"`
}

// @Summary Reject Payment
// @Description Decline a pending payment
// @Tags Payments
// @Accept json
// @Produce json
// @Param id path int true "Payment ID"
// @Param request body ReviewPaymentRequest false "Rejection reason"
// @Success 200 {object} models.Payment
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /pagos/{id}/rechazar [post]
func (h *PaymentHandler) Reject(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ReviewPaymentRequest
	_ = c.ShouldBindJSON(&req)

	payment, err := h.paymentService.Reject(c.Request.Context(), id, middleware.GetUserID(c), req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, payment)
}

// @Summary Reverse Payment
// @Description Undo an approved payment and reopen the charge or fine it had settled
// @Tags Payments
// @Accept json
// @Produce json
// @Param id path int true "Payment ID"
// @Param request body ReviewPaymentRequest false "Reversal reason"
// @Success 200 {object} models.Payment
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /pagos/{id}/revertir [post]
func (h *PaymentHandler) Reverse(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ReviewPaymentRequest
	_ = c.ShouldBindJSON(&req)

	payment, err := h.paymentService.Reverse(c.Request.Context(), id, middleware.GetUserID(c), req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, payment)
}
