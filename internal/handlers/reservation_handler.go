package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vecindia/condominio-api/internal/services"
)

type ReservationHandler struct {
	reservationService *services.ReservationService
}

func NewReservationHandler(reservationService *services.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationService: reservationService}
}

// @Summary List Reservations
// @Tags Reservations
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param estado query string false "Filter by status"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /reservas [get]
func (h *ReservationHandler) Index(c *gin.Context) {
	query := listQueryFromContext(c, "residente_id", "espacio_comun_id", "estado")

	reservations, total, err := h.reservationService.List(c.Request.Context(), query)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reservas":   reservations,
		"pagination": paginationResponse(query, total),
	})
}

// @Summary Create Reservation
// @Description Reserve a common space, rejecting overlapping reservations for the same day
// @Tags Reservations
// @Accept json
// @Produce json
// @Param request body services.CreateReservationInput true "Reservation data"
// @Success 201 {object} models.Reservation
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /reservas [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	var input services.CreateReservationInput
	if err := BindNestedOrFlat(c, "reserva", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos de reserva inválidos"})
		return
	}

	reservation, err := h.reservationService.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, reservation)
}

// @Summary Confirm Reservation
// @Tags Reservations
// @Produce json
// @Param id path int true "Reservation ID"
// @Success 200 {object} models.Reservation
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /reservas/{id}/confirmar [post]
func (h *ReservationHandler) Confirm(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reservation, err := h.reservationService.Confirm(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, reservation)
}

// @Summary Cancel Reservation
// @Tags Reservations
// @Produce json
// @Param id path int true "Reservation ID"
// @Success 200 {object} models.Reservation
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /reservas/{id}/cancelar [post]
func (h *ReservationHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reservation, err := h.reservationService.Cancel(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, reservation)
}
