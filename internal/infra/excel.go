package infra

// excel.go — sales report export using xuri/excelize. Produces a workbook
// with a Summary sheet and a Sales sheet (one row per sale).

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Masai2005/zero-app/internal/dto"
	"github.com/Masai2005/zero-app/internal/model"
)

// ExportSalesXLSX writes the report and its underlying sales to an .xlsx
// file under storagePath. Returns the path of the generated file.
func ExportSalesXLSX(report *dto.SalesReportResponse, sales []model.Sale, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("excel: create storage dir: %w", err)
	}
	filePath := filepath.Join(storagePath,
		fmt.Sprintf("sales_%s_to_%s.xlsx", report.From, report.To))

	f := excelize.NewFile()
	defer f.Close()

	const summary = "Summary"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return "", fmt.Errorf("excel: rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return "", fmt.Errorf("excel: create style: %w", err)
	}

	setRow := func(sheet string, row int, values ...interface{}) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		return f.SetSheetRow(sheet, cell, &values)
	}

	if err := setRow(summary, 1, "Sales Report", ""); err != nil {
		return "", fmt.Errorf("excel: write summary: %w", err)
	}
	_ = f.SetCellStyle(summary, "A1", "A1", bold)
	rows := [][]interface{}{
		{"Period", report.From + " to " + report.To},
		{"Sales", report.SaleCount},
		{"Total Revenue", report.TotalRevenue.InexactFloat64()},
		{"Total Discount", report.TotalDiscount.InexactFloat64()},
		{"Total Expenses", report.TotalExpenses.InexactFloat64()},
		{"Net Revenue", report.NetRevenue.InexactFloat64()},
	}
	for i, r := range rows {
		if err := setRow(summary, i+2, r...); err != nil {
			return "", fmt.Errorf("excel: write summary: %w", err)
		}
	}

	row := len(rows) + 3
	if err := setRow(summary, row, "By Payment Method"); err != nil {
		return "", fmt.Errorf("excel: write summary: %w", err)
	}
	_ = f.SetCellStyle(summary, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), bold)
	row++
	for method, amount := range report.ByPaymentMethod {
		if err := setRow(summary, row, method, amount.InexactFloat64()); err != nil {
			return "", fmt.Errorf("excel: write summary: %w", err)
		}
		row++
	}

	row++
	if err := setRow(summary, row, "Top Products"); err != nil {
		return "", fmt.Errorf("excel: write summary: %w", err)
	}
	_ = f.SetCellStyle(summary, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), bold)
	row++
	if err := setRow(summary, row, "Product", "Quantity", "Revenue"); err != nil {
		return "", fmt.Errorf("excel: write summary: %w", err)
	}
	row++
	for _, tp := range report.TopProducts {
		if err := setRow(summary, row, tp.Name, tp.Quantity, tp.Revenue.InexactFloat64()); err != nil {
			return "", fmt.Errorf("excel: write summary: %w", err)
		}
		row++
	}

	const detail = "Sales"
	if _, err := f.NewSheet(detail); err != nil {
		return "", fmt.Errorf("excel: create sheet: %w", err)
	}
	header := []interface{}{"Invoice", "Date", "Customer", "Payment Method",
		"Items", "Subtotal", "Discount", "Total"}
	if err := setRow(detail, 1, header...); err != nil {
		return "", fmt.Errorf("excel: write sales: %w", err)
	}
	_ = f.SetCellStyle(detail, "A1", "H1", bold)
	for i, sale := range sales {
		values := []interface{}{
			sale.InvoiceNumber,
			sale.CreatedAt.Format(time.RFC3339),
			sale.CustomerName,
			string(sale.PaymentMethod),
			len(sale.Items),
			sale.Subtotal.InexactFloat64(),
			sale.Discount.InexactFloat64(),
			sale.Total.InexactFloat64(),
		}
		if err := setRow(detail, i+2, values...); err != nil {
			return "", fmt.Errorf("excel: write sales: %w", err)
		}
	}

	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("excel: save file: %w", err)
	}
	return filePath, nil
}
