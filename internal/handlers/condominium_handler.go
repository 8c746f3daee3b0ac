package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vecindia/condominio-api/internal/services"
)

type CondominiumHandler struct {
	condominiumService *services.CondominiumService
}

func NewCondominiumHandler(condominiumService *services.CondominiumService) *CondominiumHandler {
	return &CondominiumHandler{condominiumService: condominiumService}
}

// @Summary List Condominiums
// @Tags Condominiums
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /condominios [get]
func (h *CondominiumHandler) Index(c *gin.Context) {
	query := listQueryFromContext(c)

	condominiums, total, err := h.condominiumService.List(c.Request.Context(), query)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"condominios": condominiums,
		"pagination":  paginationResponse(query, total),
	})
}

// @Summary Get Condominium
// @Tags Condominiums
// @Produce json
// @Param id path int true "Condominium ID"
// @Success 200 {object} models.Condominium
// @Security BearerAuth
// @Router /condominios/{id} [get]
func (h *CondominiumHandler) Show(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	condominium, err := h.condominiumService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, condominium)
}

// @Summary Create Condominium
// @Tags Condominiums
// @Accept json
// @Produce json
// @Param request body services.CreateCondominiumInput true "Condominium data"
// @Success 201 {object} models.Condominium
// @Security BearerAuth
// @Router /condominios [post]
func (h *CondominiumHandler) Create(c *gin.Context) {
	var input services.CreateCondominiumInput
	if err := BindNestedOrFlat(c, "condominio", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos de condominio inválidos"})
		return
	}

	condominium, err := h.condominiumService.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, condominium)
}

// @Summary List Common Spaces
// @Tags Condominiums
// @Produce json
// @Param id path int true "Condominium ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /condominios/{id}/espacios-comunes [get]
func (h *CondominiumHandler) ListCommonSpaces(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	spaces, err := h.condominiumService.ListCommonSpaces(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"espacios_comunes": spaces})
}

// @Summary Create Common Space
// @Tags Condominiums
// @Accept json
// @Produce json
// @Param id path int true "Condominium ID"
// @Param request body services.CreateCommonSpaceInput true "Common space data"
// @Success 201 {object} models.CommonSpace
// @Security BearerAuth
// @Router /condominios/{id}/espacios-comunes [post]
func (h *CondominiumHandler) CreateCommonSpace(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input services.CreateCommonSpaceInput
	if err := BindNestedOrFlat(c, "espacio_comun", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos de espacio común inválidos"})
		return
	}
	input.CondominiumID = id

	space, err := h.condominiumService.CreateCommonSpace(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, space)
}
