package handlers

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/vecindia/condominio-api/internal/repository"
)

type testPayload struct {
	Description string  `json:"descripcion"`
	Amount      float64 `json:"monto"`
}

func TestBindNestedOrFlat(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		key         string
		body        string
		expected    testPayload
		expectError bool
	}{
		{
			name:        "Nested Structure",
			key:         "multa",
			body:        `{"multa": {"descripcion": "Ruido nocturno", "monto": 30000}}`,
			expected:    testPayload{Description: "Ruido nocturno", Amount: 30000},
			expectError: false,
		},
		{
			name:        "Flat Structure",
			key:         "multa",
			body:        `{"descripcion": "Ruido nocturno", "monto": 30000}`,
			expected:    testPayload{Description: "Ruido nocturno", Amount: 30000},
			expectError: false,
		},
		{
			name:        "Nested Structure with Missing Key Fallback",
			key:         "multa",
			body:        `{"otro": "valor", "descripcion": "Mascota", "monto": 15000}`,
			expected:    testPayload{Description: "Mascota", Amount: 15000},
			expectError: false,
		},
		{
			name:        "Invalid JSON",
			key:         "multa",
			body:        `{"descripcion": "Ruido", "monto": "treinta"}`,
			expected:    testPayload{},
			expectError: true,
		},
		{
			name:        "Nested Key Present but Invalid Type",
			key:         "multa",
			body:        `{"multa": "una cadena"}`,
			expected:    testPayload{},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("POST", "/", bytes.NewBufferString(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			var result testPayload
			err := BindNestedOrFlat(c, tt.key, &result)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

func TestListQueryFromContext(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/?page=3&per_page=50&search=torre&estado=PENDIENTE&sort=fecha_emision-desc", nil)

	query := listQueryFromContext(c, "estado", "residente_id")
	assert.Equal(t, 3, query.Page)
	assert.Equal(t, 50, query.PerPage)
	assert.Equal(t, "torre", query.Search)
	assert.Equal(t, "PENDIENTE", query.Filters["estado"])
	assert.Equal(t, "", query.Filters["residente_id"])
	assert.Equal(t, "fecha_emision", query.SortBy)
	assert.Equal(t, "desc", query.SortDir)
}

func TestPaginationResponse(t *testing.T) {
	query := repository.NewListQuery()
	query.Page = 2
	query.PerPage = 20

	resp := paginationResponse(query, 45)
	assert.Equal(t, int64(45), resp["total"])
	assert.Equal(t, int64(3), resp["total_pages"])
}

func TestCondominiumFilter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/?condominio_id=7", nil)
	filter := condominiumFilter(c)
	assert.NotNil(t, filter)
	assert.Equal(t, uint(7), *filter)

	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	assert.Nil(t, condominiumFilter(c))
}
