package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/vecindia/condominio-api/internal/models"
	"github.com/vecindia/condominio-api/internal/repository"
)

// ReportService produces printable documents: the resident's account
// statement as PDF and the delinquency report as CSV.
type ReportService struct {
	ledgerSvc    *LedgerService
	kpiSvc       *KPIService
	residentRepo repository.ResidentRepository
}

// NewReportService creates a new report service
func NewReportService(ledgerSvc *LedgerService, kpiSvc *KPIService, residentRepo repository.ResidentRepository) *ReportService {
	return &ReportService{
		ledgerSvc:    ledgerSvc,
		kpiSvc:       kpiSvc,
		residentRepo: residentRepo,
	}
}

// statementEntry is the template-friendly form of a ledger entry
type statementEntry struct {
	Date        string
	Description string
	Category    string
	Charge      string
	Credit      string
}

// GenerateStatementPDF renders a resident's account statement as PDF
func (s *ReportService) GenerateStatementPDF(ctx context.Context, residentID uint) (*bytes.Buffer, error) {
	resident, err := s.residentRepo.FindByID(ctx, residentID)
	if err != nil {
		return nil, ErrNotFound
	}

	statement, err := s.ledgerSvc.BuildStatement(ctx, residentID)
	if err != nil {
		return nil, err
	}

	entries := make([]statementEntry, 0, len(statement.Entries))
	for _, e := range statement.Entries {
		item := statementEntry{
			Date:        e.Date.Format("02-01-2006"),
			Description: e.Description,
			Category:    e.Category,
		}
		if e.Direction == models.DirectionCredit {
			item.Credit = fmt.Sprintf("$%.0f", e.Amount)
		} else {
			item.Charge = fmt.Sprintf("$%.0f", e.Amount)
		}
		entries = append(entries, item)
	}

	data := map[string]interface{}{
		"ResidentName": resident.FullName(),
		"Unit":         resident.UnitNumber,
		"GeneratedAt":  statement.GeneratedAt.Format("02-01-2006 15:04"),
		"Entries":      entries,
		"TotalCharges": fmt.Sprintf("$%.0f", statement.TotalCharges),
		"TotalCredits": fmt.Sprintf("$%.0f", statement.TotalCredits),
		"Balance":      fmt.Sprintf("$%.0f", statement.Balance),
		"Aging30":      fmt.Sprintf("$%.0f", statement.Aging.UpTo30Days),
		"Aging60":      fmt.Sprintf("$%.0f", statement.Aging.UpTo60Days),
		"AgingOver":    fmt.Sprintf("$%.0f", statement.Aging.Over60Days),
	}

	return s.generatePDF("estado_cuenta.html", data)
}

// GenerateDelinquencyCSV renders the delinquency report as CSV
func (s *ReportService) GenerateDelinquencyCSV(ctx context.Context, condominiumID *uint) (*bytes.Buffer, error) {
	rows, err := s.kpiSvc.DelinquencyReport(ctx, condominiumID)
	if err != nil {
		return nil, err
	}

	b := &bytes.Buffer{}
	w := csv.NewWriter(b)

	header := []string{"ID", "Residente", "Vivienda", "Email", "Gastos Impagos", "Multas Impagas", "Deuda Total", "Días Más Antiguo"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, row := range rows {
		record := []string{
			fmt.Sprintf("%d", row.ResidentID),
			row.ResidentName,
			row.Unit,
			row.Email,
			fmt.Sprintf("%d", row.OpenCharges),
			fmt.Sprintf("%d", row.OpenFines),
			fmt.Sprintf("%.2f", row.TotalDebt),
			fmt.Sprintf("%d", row.OldestDays),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return b, nil
}

// generatePDF renders an HTML template and converts it with wkhtmltopdf
func (s *ReportService) generatePDF(templateName string, data interface{}) (*bytes.Buffer, error) {
	// Path relative to project root (prod), falling back to the package
	// directory (tests).
	tmplPath := fmt.Sprintf("internal/services/templates/reports/%s", templateName)
	if _, err := os.Stat(tmplPath); os.IsNotExist(err) {
		tmplPath = fmt.Sprintf("templates/reports/%s", templateName)
	}

	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", templateName, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create pdf generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.Grayscale.Set(false)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader(buf.Bytes()))
	page.EnableLocalFileAccess.Set(true)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create pdf: %w", err)
	}

	return pdfg.Buffer(), nil
}

// statementFilename builds the download name for a statement PDF
func statementFilename(residentID uint) string {
	return fmt.Sprintf("estado_cuenta_%d_%s.pdf", residentID, time.Now().Format("2006-01-02"))
}

// StatementFilename exposes the download name for handlers
func (s *ReportService) StatementFilename(residentID uint) string {
	return statementFilename(residentID)
}
