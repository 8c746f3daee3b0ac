package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vecindia/condominio-api/internal/repository"
	"github.com/vecindia/condominio-api/internal/services"
)

// BindNestedOrFlat attempts to bind the request body to obj.
// It first checks if the body contains a nested object with the given key
// (e.g. {"gasto_comun": {...}}) and binds that; otherwise it binds the
// whole body. Supports clients sending either shape.
func BindNestedOrFlat(c *gin.Context, key string, obj interface{}) error {
	var bodyBytes []byte
	if c.Request.Body != nil {
		bodyBytes, _ = io.ReadAll(c.Request.Body)
	}
	// Restore body for future binding or subsequent reads
	c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

	var nestedMap map[string]json.RawMessage
	if err := json.Unmarshal(bodyBytes, &nestedMap); err == nil {
		if val, ok := nestedMap[key]; ok {
			return json.Unmarshal(val, obj)
		}
	}

	return json.Unmarshal(bodyBytes, obj)
}

// listQueryFromContext builds a ListQuery from the standard query params
func listQueryFromContext(c *gin.Context, filterKeys ...string) *repository.ListQuery {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search")

	for _, key := range filterKeys {
		query.Filters[key] = c.Query(key)
	}

	// Parse sort parameter (format: field-direction)
	if sort := c.Query("sort"); sort != "" {
		parts := strings.Split(sort, "-")
		query.SortBy = parts[0]
		if len(parts) > 1 {
			query.SortDir = parts[1]
		}
	}

	return query
}

// paginationResponse is the standard pagination envelope
func paginationResponse(query *repository.ListQuery, total int64) gin.H {
	totalPages := int64(0)
	if query.PerPage > 0 {
		totalPages = (total + int64(query.PerPage) - 1) / int64(query.PerPage)
	}
	return gin.H{
		"page":        query.Page,
		"per_page":    query.PerPage,
		"total":       total,
		"total_pages": totalPages,
	}
}

// respondServiceError maps service errors to HTTP status codes
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidState),
		errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrNoAdjustment),
		errors.Is(err, services.ErrSpaceOccupied):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// parseIDParam reads a uint path parameter
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "identificador inválido"})
		return 0, false
	}
	return uint(id), true
}

// parseQueryUint reads a uint query parameter
func parseQueryUint(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Query(name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// condominiumFilter reads an optional condominio_id query param
func condominiumFilter(c *gin.Context) *uint {
	raw := c.Query("condominio_id")
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil
	}
	condoID := uint(id)
	return &condoID
}
