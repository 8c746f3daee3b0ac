package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vecindia/condominio-api/internal/middleware"
	"github.com/vecindia/condominio-api/internal/models"
	"github.com/vecindia/condominio-api/internal/services"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// @Summary List Users
// @Description Get a paginated list of portal accounts
// @Tags Users
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param rol query string false "Filter by role"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /usuarios [get]
func (h *UserHandler) Index(c *gin.Context) {
	query := listQueryFromContext(c, "rol", "condominio_id", "activo")

	users, total, err := h.userService.List(c.Request.Context(), query)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses := make([]models.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, u.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"usuarios":   responses,
		"pagination": paginationResponse(query, total),
	})
}

// @Summary Get User
// @Description Get one portal account
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.UserResponse
// @Security BearerAuth
// @Router /usuarios/{id} [get]
func (h *UserHandler) Show(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user.ToResponse())
}

// @Summary Create User
// @Description Register a new portal account
// @Tags Users
// @Accept json
// @Produce json
// @Param request body services.CreateUserInput true "User data"
// @Success 201 {object} models.UserResponse
// @Security BearerAuth
// @Router /usuarios [post]
func (h *UserHandler) Create(c *gin.Context) {
	var input services.CreateUserInput
	if err := BindNestedOrFlat(c, "usuario", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos de usuario inválidos"})
		return
	}

	user, err := h.userService.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user.ToResponse())
}

// @Summary Update User
// @Description Apply a partial update to an account
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body services.UpdateUserInput true "Fields to update"
// @Success 200 {object} models.UserResponse
// @Security BearerAuth
// @Router /usuarios/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input services.UpdateUserInput
	if err := BindNestedOrFlat(c, "usuario", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos de usuario inválidos"})
		return
	}

	user, err := h.userService.Update(c.Request.Context(), id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user.ToResponse())
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"password_actual" binding:"required"`
	NewPassword     string `json:"password_nueva" binding:"required,min=8"`
}

// @Summary Change Password
// @Description Change the current user's password
// @Tags Users
// @Accept json
// @Produce json
// @Param request body ChangePasswordRequest true "Passwords"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /usuarios/cambiar-password [post]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Contraseñas requeridas"})
		return
	}

	userID := middleware.GetUserID(c)
	if err := h.userService.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Contraseña actualizada"})
}

// @Summary Deactivate User
// @Description Disable a portal account
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /usuarios/{id} [delete]
func (h *UserHandler) Deactivate(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.userService.Deactivate(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Usuario desactivado"})
}
