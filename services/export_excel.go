package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// OrderExportRow is one order in the admin export workbook.
type OrderExportRow struct {
	Reference     string
	CreatedDate   string
	CustomerName  string
	CustomerEmail string
	ProductName   string
	Quantity      int
	Status        string
	PaymentStatus string
	TotalPrice    float64
}

// OrderExportData is the full payload for the admin orders export.
type OrderExportData struct {
	GeneratedDate string
	Rows          []OrderExportRow
}

// GenerateOrdersExcel creates an Excel workbook listing orders for the
// admin surface and returns the file contents as a byte slice.
func GenerateOrdersExcel(data OrderExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "Orders"
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	// Column references (A through I).
	columns := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I"}
	lastCol := columns[len(columns)-1]

	widths := []float64{14, 14, 24, 28, 30, 8, 14, 14, 14}
	for i, c := range columns {
		if err := f.SetColWidth(sheetName, c, c, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", c, err)
		}
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#333333"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	rowStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create row style: %w", err)
	}

	summaryLabelStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary label style: %w", err)
	}

	summaryValueStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary value style: %w", err)
	}

	// ── Header rows ─────────────────────────────────────────────────────

	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", "BizPrint Orders")
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	if err := f.MergeCell(sheetName, "A2", lastCol+"2"); err != nil {
		return nil, fmt.Errorf("merge date: %w", err)
	}
	f.SetCellValue(sheetName, "A2", "Generated: "+data.GeneratedDate)
	f.SetCellStyle(sheetName, "A2", lastCol+"2", subtitleStyle)

	headers := []string{
		"Reference", "Date", "Customer", "Email", "Product",
		"Qty", "Status", "Payment", "Total",
	}
	for i, h := range headers {
		f.SetCellValue(sheetName, fmt.Sprintf("%s4", columns[i]), h)
	}
	f.SetCellStyle(sheetName, "A4", lastCol+"4", headerStyle)

	// ── Data rows ───────────────────────────────────────────────────────

	rowNum := 5
	var revenue float64
	for _, r := range data.Rows {
		rowStr := fmt.Sprintf("%d", rowNum)
		f.SetCellValue(sheetName, "A"+rowStr, sanitizeExcelCell(r.Reference))
		f.SetCellValue(sheetName, "B"+rowStr, r.CreatedDate)
		f.SetCellValue(sheetName, "C"+rowStr, sanitizeExcelCell(r.CustomerName))
		f.SetCellValue(sheetName, "D"+rowStr, sanitizeExcelCell(r.CustomerEmail))
		f.SetCellValue(sheetName, "E"+rowStr, sanitizeExcelCell(r.ProductName))
		f.SetCellValue(sheetName, "F"+rowStr, r.Quantity)
		f.SetCellValue(sheetName, "G"+rowStr, r.Status)
		f.SetCellValue(sheetName, "H"+rowStr, r.PaymentStatus)
		f.SetCellValue(sheetName, "I"+rowStr, FormatZAR(r.TotalPrice))
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, rowStyle)

		if r.PaymentStatus == PaymentPaid {
			revenue += r.TotalPrice
		}
		rowNum++
	}

	// ── Summary ─────────────────────────────────────────────────────────

	rowNum++
	summaryRow := fmt.Sprintf("%d", rowNum)
	f.SetCellValue(sheetName, "H"+summaryRow, "Paid Revenue:")
	f.SetCellStyle(sheetName, "H"+summaryRow, "H"+summaryRow, summaryLabelStyle)
	f.SetCellValue(sheetName, "I"+summaryRow, FormatZAR(revenue))
	f.SetCellStyle(sheetName, "I"+summaryRow, "I"+summaryRow, summaryValueStyle)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
