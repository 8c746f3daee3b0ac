package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"github.com/vecindia/condominio-api/internal/models"
	"github.com/xuri/excelize/v2"
)

// ExportService renders the dashboard overview and delinquency data as
// downloadable files.
type ExportService struct {
	kpiSvc *KPIService
}

// NewExportService creates a new export service
func NewExportService(kpiSvc *KPIService) *ExportService {
	return &ExportService{kpiSvc: kpiSvc}
}

func exportFilename(ext string) string {
	return fmt.Sprintf("reporte_%s_%s.%s", time.Now().Format("2006-01-02"), uuid.New().String()[:8], ext)
}

// ExportCSV renders the overview and delinquency report as CSV
func (s *ExportService) ExportCSV(ctx context.Context, condominiumID *uint) ([]byte, string, error) {
	overview, rows, err := s.load(ctx, condominiumID)
	if err != nil {
		return nil, "", err
	}

	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	// Header
	_ = writer.Write([]string{"Reporte de Administración", time.Now().Format("2006-01-02 15:04")})
	_ = writer.Write([]string{""})

	// Overview Section
	_ = writer.Write([]string{"Resumen General"})
	_ = writer.Write([]string{"Métrica", "Valor"})
	_ = writer.Write([]string{"Residentes Activos", fmt.Sprintf("%d", overview.TotalResidents)})
	_ = writer.Write([]string{"Ingresos del Mes", fmt.Sprintf("%.2f", overview.IncomeThisMonth)})
	_ = writer.Write([]string{"Pagos Pendientes", fmt.Sprintf("%d", overview.PendingPayments)})
	_ = writer.Write([]string{"Gastos Impagos", fmt.Sprintf("%d", overview.OpenCharges)})
	_ = writer.Write([]string{"Multas Impagas", fmt.Sprintf("%d", overview.OpenFines)})
	_ = writer.Write([]string{"Deuda Total", fmt.Sprintf("%.2f", overview.TotalDebt)})
	_ = writer.Write([]string{"Índice de Morosidad", fmt.Sprintf("%d%%", overview.DelinquencyIndex)})
	_ = writer.Write([]string{""})

	// Delinquency Section
	_ = writer.Write([]string{"Morosidad por Residente"})
	_ = writer.Write([]string{"Residente", "Vivienda", "Email", "Gastos Impagos", "Multas Impagas", "Deuda Total", "Días Más Antiguo"})
	for _, row := range rows {
		_ = writer.Write([]string{
			row.ResidentName,
			row.Unit,
			row.Email,
			fmt.Sprintf("%d", row.OpenCharges),
			fmt.Sprintf("%d", row.OpenFines),
			fmt.Sprintf("%.2f", row.TotalDebt),
			fmt.Sprintf("%d", row.OldestDays),
		})
	}

	writer.Flush()
	return buf.Bytes(), exportFilename("csv"), nil
}

// ExportXLSX renders the overview and delinquency report as a spreadsheet
func (s *ExportService) ExportXLSX(ctx context.Context, condominiumID *uint) ([]byte, string, error) {
	overview, rows, err := s.load(ctx, condominiumID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Resumen"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	_ = f.SetCellValue(sheet, "A1", "Reporte de Administración")
	_ = f.SetCellStyle(sheet, "A1", "A1", headerStyle)

	_ = f.SetCellValue(sheet, "A3", "Resumen General")
	_ = f.SetCellValue(sheet, "A4", "Métrica")
	_ = f.SetCellValue(sheet, "B4", "Valor")

	_ = f.SetCellValue(sheet, "A5", "Residentes Activos")
	_ = f.SetCellValue(sheet, "B5", overview.TotalResidents)
	_ = f.SetCellValue(sheet, "A6", "Ingresos del Mes")
	_ = f.SetCellValue(sheet, "B6", overview.IncomeThisMonth)
	_ = f.SetCellValue(sheet, "A7", "Pagos Pendientes")
	_ = f.SetCellValue(sheet, "B7", overview.PendingPayments)
	_ = f.SetCellValue(sheet, "A8", "Deuda Total")
	_ = f.SetCellValue(sheet, "B8", overview.TotalDebt)
	_ = f.SetCellValue(sheet, "A9", "Índice de Morosidad")
	_ = f.SetCellValue(sheet, "B9", fmt.Sprintf("%d%%", overview.DelinquencyIndex))

	// Delinquency sheet
	delinquency := "Morosidad"
	_, err = f.NewSheet(delinquency)
	if err != nil {
		return nil, "", err
	}
	headers := []string{"Residente", "Vivienda", "Email", "Gastos Impagos", "Multas Impagas", "Deuda Total", "Días Más Antiguo"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(delinquency, cell, h)
	}
	for r, row := range rows {
		values := []interface{}{row.ResidentName, row.Unit, row.Email, row.OpenCharges, row.OpenFines, row.TotalDebt, row.OldestDays}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			_ = f.SetCellValue(delinquency, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	return buf.Bytes(), exportFilename("xlsx"), nil
}

// ExportPDF renders the overview and delinquency report as a PDF
func (s *ExportService) ExportPDF(ctx context.Context, condominiumID *uint) ([]byte, string, error) {
	overview, rows, err := s.load(ctx, condominiumID)
	if err != nil {
		return nil, "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Reporte de Administracion")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Resumen General")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(60, 10, "Residentes Activos:")
	pdf.Cell(40, 10, fmt.Sprintf("%d", overview.TotalResidents))
	pdf.Ln(6)

	pdf.Cell(60, 10, "Ingresos del Mes:")
	pdf.Cell(40, 10, fmt.Sprintf("$%.2f", overview.IncomeThisMonth))
	pdf.Ln(6)

	pdf.Cell(60, 10, "Pagos Pendientes:")
	pdf.Cell(40, 10, fmt.Sprintf("%d", overview.PendingPayments))
	pdf.Ln(6)

	pdf.Cell(60, 10, "Deuda Total:")
	pdf.Cell(40, 10, fmt.Sprintf("$%.2f", overview.TotalDebt))
	pdf.Ln(6)

	pdf.Cell(60, 10, "Indice de Morosidad:")
	pdf.Cell(40, 10, fmt.Sprintf("%d%%", overview.DelinquencyIndex))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Morosidad por Residente")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 9)
	for _, row := range rows {
		pdf.Cell(60, 8, row.ResidentName)
		pdf.Cell(25, 8, row.Unit)
		pdf.Cell(40, 8, fmt.Sprintf("$%.2f", row.TotalDebt))
		pdf.Cell(30, 8, fmt.Sprintf("%d dias", row.OldestDays))
		pdf.Ln(6)
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), exportFilename("pdf"), nil
}

func (s *ExportService) load(ctx context.Context, condominiumID *uint) (*models.DashboardOverview, []models.DelinquencyRow, error) {
	overview, err := s.kpiSvc.Overview(ctx, condominiumID, nil, nil)
	if err != nil {
		return nil, nil, err
	}
	rows, err := s.kpiSvc.DelinquencyReport(ctx, condominiumID)
	if err != nil {
		return nil, nil, err
	}
	return overview, rows, nil
}
