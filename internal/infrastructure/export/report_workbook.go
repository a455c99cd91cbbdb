// Package export renders report data into spreadsheet workbooks.
package export

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/moldshop/erp/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

// XLSXContentType is the MIME type of the generated workbooks
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Sheet names, in workbook order
const (
	SheetOverview     = "Overview"
	SheetLowStock     = "Low Stock"
	SheetTopProducts  = "Top Products"
	SheetMonthlySales = "Monthly Sales"
	SheetTopCustomers = "Top Customers"
	SheetProduction   = "Production"
)

type sheetWriter struct {
	f      *excelize.File
	header int
}

func (w *sheetWriter) table(sheet string, headers []string, widths []float64, rows [][]any) error {
	for i, h := range headers {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		cell := col + "1"
		if err := w.f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		if err := w.f.SetCellStyle(sheet, cell, cell, w.header); err != nil {
			return err
		}
	}
	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := w.f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := w.f.SetColWidth(sheet, col, col, width); err != nil {
			return err
		}
	}
	return nil
}

// SummaryWorkbook renders the report summary as an XLSX workbook with one
// sheet per section.
func SummaryWorkbook(s *report.Summary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetOverview); err != nil {
		return nil, err
	}
	for _, name := range []string{SheetLowStock, SheetTopProducts, SheetMonthlySales, SheetTopCustomers, SheetProduction} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}

	header, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 11},
		Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 1}},
	})
	if err != nil {
		return nil, err
	}
	w := &sheetWriter{f: f, header: header}

	overview := [][]any{
		{"Generated at", s.GeneratedAt.UTC().Format("2006-01-02 15:04:05")},
		{"Inventory value", s.InventoryValue.InexactFloat64()},
		{"Low stock items", len(s.LowStockItems)},
	}
	if err := w.table(SheetOverview, []string{"Metric", "Value"}, []float64{22, 24}, overview); err != nil {
		return nil, err
	}

	rows := make([][]any, 0, len(s.LowStockItems))
	for _, it := range s.LowStockItems {
		rows = append(rows, []any{it.SKU, it.Name, it.Quantity, it.ReorderLevel})
	}
	if err := w.table(SheetLowStock, []string{"SKU", "Name", "Quantity", "Reorder level"}, []float64{16, 32, 10, 14}, rows); err != nil {
		return nil, err
	}

	rows = nil
	for _, it := range s.TopProducts {
		rows = append(rows, []any{it.Name, it.TotalSold, it.Revenue.InexactFloat64()})
	}
	if err := w.table(SheetTopProducts, []string{"Product", "Units sold", "Revenue"}, []float64{32, 12, 14}, rows); err != nil {
		return nil, err
	}

	rows = nil
	for _, it := range s.MonthlySales {
		rows = append(rows, []any{it.Month, it.OrderCount, it.Revenue.InexactFloat64()})
	}
	if err := w.table(SheetMonthlySales, []string{"Month", "Orders", "Revenue"}, []float64{10, 10, 14}, rows); err != nil {
		return nil, err
	}

	rows = nil
	for _, it := range s.TopCustomers {
		rows = append(rows, []any{it.Name, it.OrderCount, it.TotalSpent.InexactFloat64()})
	}
	if err := w.table(SheetTopCustomers, []string{"Customer", "Orders", "Total spent"}, []float64{32, 10, 14}, rows); err != nil {
		return nil, err
	}

	p := s.Production
	statuses := make([]string, 0, len(p.OrdersByStatus))
	for st := range p.OrdersByStatus {
		statuses = append(statuses, st)
	}
	sort.Strings(statuses)
	rows = nil
	for _, st := range statuses {
		rows = append(rows, []any{fmt.Sprintf("Orders %s", st), p.OrdersByStatus[st]})
	}
	rows = append(rows,
		[]any{"Total produced", p.TotalProduced},
		[]any{"Total scrap", p.TotalScrap},
		[]any{"Molds needing maintenance", p.MoldsNeedMaintenance},
		[]any{"Pending inspections", p.PendingInspections},
	)
	if err := w.table(SheetProduction, []string{"Metric", "Value"}, []float64{28, 12}, rows); err != nil {
		return nil, err
	}

	f.SetActiveSheet(0)
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// SummaryFileName names an exported summary by its generation time
func SummaryFileName(s *report.Summary) string {
	return fmt.Sprintf("report-summary-%s.xlsx", s.GeneratedAt.UTC().Format("20060102-150405"))
}
