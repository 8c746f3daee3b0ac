package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vecindia/condominio-api/internal/services"
)

type KPIHandler struct {
	kpiService    *services.KPIService
	exportService *services.ExportService
	reportService *services.ReportService
}

func NewKPIHandler(kpiService *services.KPIService, exportService *services.ExportService, reportService *services.ReportService) *KPIHandler {
	return &KPIHandler{kpiService: kpiService, exportService: exportService, reportService: reportService}
}

// @Summary Dashboard Overview
// @Description Aggregated portal indicators: residents, income, billing, open debt and delinquency index
// @Tags Dashboard
// @Produce json
// @Param condominio_id query int false "Restrict to one condominium"
// @Param desde query string false "Start of emission window (YYYY-MM-DD, inclusive)"
// @Param hasta query string false "End of emission window (YYYY-MM-DD, exclusive)"
// @Success 200 {object} models.DashboardOverview
// @Security BearerAuth
// @Router /dashboard/resumen [get]
func (h *KPIHandler) Overview(c *gin.Context) {
	condominiumID := condominiumFilter(c)

	from, err := dateQuery(c, "desde")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fecha 'desde' inválida, use el formato YYYY-MM-DD"})
		return
	}
	to, err := dateQuery(c, "hasta")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fecha 'hasta' inválida, use el formato YYYY-MM-DD"})
		return
	}

	overview, err := h.kpiService.Overview(c.Request.Context(), condominiumID, from, to)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}

// dateQuery parses an optional YYYY-MM-DD query parameter, nil when absent
func dateQuery(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// @Summary Delinquency Report
// @Description Residents with open debt ordered by total owed
// @Tags Dashboard
// @Produce json
// @Param condominio_id query int false "Restrict to one condominium"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /dashboard/morosidad [get]
func (h *KPIHandler) Delinquency(c *gin.Context) {
	condominiumID := condominiumFilter(c)

	rows, err := h.kpiService.DelinquencyReport(c.Request.Context(), condominiumID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"morosidad": rows})
}

// @Summary Export Dashboard
// @Description Download the overview and delinquency report as CSV, XLSX or PDF
// @Tags Dashboard
// @Produce application/octet-stream
// @Param formato query string false "Export format" Enums(csv, xlsx, pdf) default(xlsx)
// @Param condominio_id query int false "Restrict to one condominium"
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /dashboard/exportar [get]
func (h *KPIHandler) Export(c *gin.Context) {
	condominiumID := condominiumFilter(c)

	var (
		data        []byte
		filename    string
		contentType string
		err         error
	)

	switch c.DefaultQuery("formato", "xlsx") {
	case "csv":
		data, filename, err = h.exportService.ExportCSV(c.Request.Context(), condominiumID)
		contentType = "text/csv"
	case "pdf":
		data, filename, err = h.exportService.ExportPDF(c.Request.Context(), condominiumID)
		contentType = "application/pdf"
	case "xlsx":
		data, filename, err = h.exportService.ExportXLSX(c.Request.Context(), condominiumID)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Formato no soportado"})
		return
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}

// @Summary Delinquency CSV
// @Description Download the delinquency report as a CSV file
// @Tags Dashboard
// @Produce text/csv
// @Param condominio_id query int false "Restrict to one condominium"
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /dashboard/morosidad/csv [get]
func (h *KPIHandler) DelinquencyCSV(c *gin.Context) {
	condominiumID := condominiumFilter(c)

	buf, err := h.reportService.GenerateDelinquencyCSV(c.Request.Context(), condominiumID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="reporte_morosidad.csv"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// @Summary Refresh Dashboard Cache
// @Description Recompute and store the dashboard overview
// @Tags Dashboard
// @Produce json
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /dashboard/refrescar [post]
func (h *KPIHandler) Refresh(c *gin.Context) {
	if err := h.kpiService.RefreshCache(c.Request.Context()); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"mensaje": "Indicadores actualizados"})
}
