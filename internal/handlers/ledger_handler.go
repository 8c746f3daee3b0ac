package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vecindia/condominio-api/internal/services"
)

type LedgerHandler struct {
	ledgerService *services.LedgerService
	reportService *services.ReportService
}

func NewLedgerHandler(ledgerService *services.LedgerService, reportService *services.ReportService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService, reportService: reportService}
}

// @Summary Resident Account Statement
// @Description Build the unified ledger for a resident: charges, fines and approved payments with balance and aging
// @Tags Ledger
// @Produce json
// @Param id path int true "Resident ID"
// @Success 200 {object} models.AccountStatement
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /residentes/{id}/estado-cuenta [get]
func (h *LedgerHandler) Statement(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	statement, err := h.ledgerService.BuildStatement(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, statement)
}

// @Summary Resident Balance
// @Description Current balance of a resident (charges minus credits)
// @Tags Ledger
// @Produce json
// @Param id path int true "Resident ID"
// @Success 200 {object} map[string]interface{}
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /residentes/{id}/saldo [get]
func (h *LedgerHandler) Balance(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	balance, err := h.ledgerService.Balance(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"residente_id": id,
		"saldo":        balance,
	})
}

// @Summary Resident Debt Aging
// @Description Open debt of a resident partitioned into 0-30, 31-60 and 60+ day buckets
// @Tags Ledger
// @Produce json
// @Param id path int true "Resident ID"
// @Success 200 {object} models.AgingBuckets
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /residentes/{id}/morosidad [get]
func (h *LedgerHandler) Aging(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	statement, err := h.ledgerService.BuildStatement(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"residente_id":      id,
		"antiguedad_deuda":  statement.Aging,
		"deuda_total":       statement.Aging.Total(),
		"errores_parciales": statement.SectionErrors,
	})
}

// @Summary Download Statement PDF
// @Description Render the resident account statement as a PDF document
// @Tags Ledger
// @Produce application/pdf
// @Param id path int true "Resident ID"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /residentes/{id}/estado-cuenta/pdf [get]
func (h *LedgerHandler) StatementPDF(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	buf, err := h.reportService.GenerateStatementPDF(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	filename := h.reportService.StatementFilename(id)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
