package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vecindia/condominio-api/internal/services"
)

type AnnouncementHandler struct {
	announcementService *services.AnnouncementService
}

func NewAnnouncementHandler(announcementService *services.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcementService: announcementService}
}

// @Summary List Announcements
// @Tags Announcements
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param condominio_id query int false "Filter by condominium"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /anuncios [get]
func (h *AnnouncementHandler) Index(c *gin.Context) {
	query := listQueryFromContext(c, "condominio_id")

	announcements, total, err := h.announcementService.List(c.Request.Context(), query)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"anuncios":   announcements,
		"pagination": paginationResponse(query, total),
	})
}

// @Summary Get Announcement
// @Tags Announcements
// @Produce json
// @Param id path int true "Announcement ID"
// @Success 200 {object} models.Announcement
// @Security BearerAuth
// @Router /anuncios/{id} [get]
func (h *AnnouncementHandler) Show(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	announcement, err := h.announcementService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, announcement)
}

// @Summary Publish Announcement
// @Description Publish an announcement and notify every resident of the condominium
// @Tags Announcements
// @Accept json
// @Produce json
// @Param request body services.CreateAnnouncementInput true "Announcement data"
// @Success 201 {object} models.Announcement
// @Security BearerAuth
// @Router /anuncios [post]
func (h *AnnouncementHandler) Create(c *gin.Context) {
	var input services.CreateAnnouncementInput
	if err := BindNestedOrFlat(c, "anuncio", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos de anuncio inválidos"})
		return
	}

	announcement, err := h.announcementService.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, announcement)
}

// @Summary Delete Announcement
// @Tags Announcements
// @Produce json
// @Param id path int true "Announcement ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /anuncios/{id} [delete]
func (h *AnnouncementHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.announcementService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"mensaje": "Anuncio eliminado"})
}
