package report

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// exportSheet is the single worksheet of the export workbook
const exportSheet = "Reconciliation"

var exportHeader = []string{
	"Product", "Unit",
	"Opening Qty", "Opening Amount",
	"Purchase Qty", "Purchase Amount",
	"Consume Qty", "Consume Amount",
	"Closing Qty", "Closing Amount",
}

// ExportXLSX renders the full reconciliation report for the queried
// period as an XLSX workbook. Quantities and amounts are written as
// numbers so the sheet stays sortable and summable in a spreadsheet.
func (s *ReportService) ExportXLSX(ctx context.Context, q Query) ([]byte, string, error) {
	resp, err := s.Full(ctx, q)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", exportSheet)

	_ = f.SetCellValue(exportSheet, "A1", fmt.Sprintf("Inventory Reconciliation %s", resp.Period.Label))
	_ = f.SetCellValue(exportSheet, "A2", fmt.Sprintf("Period %s to %s",
		resp.Period.Start.Format("2006-01-02"), resp.Period.End.Format("2006-01-02")))

	const headerRow = 4
	for i, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		_ = f.SetCellValue(exportSheet, cell, title)
	}

	for i, r := range resp.Rows {
		row := headerRow + 1 + i
		values := []any{
			r.Name, r.Unit,
			toFloat(r.OpeningQuantity), toFloat(r.OpeningAmount),
			toFloat(r.PurchaseQuantity), toFloat(r.PurchaseAmount),
			toFloat(r.ConsumeQuantity), toFloat(r.ConsumeAmount),
			toFloat(r.ClosingQuantity), toFloat(r.ClosingAmount),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(exportSheet, cell, v)
		}
	}

	// Totals row: amounts only, quantities are unit-heterogeneous
	totalsRow := headerRow + 1 + len(resp.Rows)
	totals := map[int]any{
		1:  "Total",
		4:  toFloat(resp.Totals.OpeningAmount),
		6:  toFloat(resp.Totals.PurchaseAmount),
		8:  toFloat(resp.Totals.ConsumeAmount),
		10: toFloat(resp.Totals.ClosingAmount),
	}
	for col, v := range totals {
		cell, _ := excelize.CoordinatesToCellName(col, totalsRow)
		_ = f.SetCellValue(exportSheet, cell, v)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("reconciliation-%s.xlsx", resp.Period.Label)
	return buf.Bytes(), filename, nil
}

func toFloat(d interface{ InexactFloat64() float64 }) float64 {
	return d.InexactFloat64()
}
