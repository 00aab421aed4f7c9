// Package export renders reports as spreadsheets.
package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

const commissionSheet = "Commissions"

// CommissionRow is one professional line of the commission spreadsheet
type CommissionRow struct {
	Professional     string
	BookingsCount    int
	GrossAmount      float64
	CommissionRate   float64
	CommissionAmount float64
	NetAmount        float64
}

// CommissionSheet is the content of a commission report export
type CommissionSheet struct {
	Barbershop string
	DateStart  time.Time
	DateEnd    time.Time
	Rows       []CommissionRow
	Totals     CommissionRow
}

var commissionHeader = []interface{}{
	"Professional", "Bookings", "Gross", "Rate (%)", "Commission", "Net",
}

// CommissionReportXLSX renders the report as an xlsx workbook.
// Row 1 holds the title, row 3 the header, then one row per professional and a totals row.
func CommissionReportXLSX(sheet CommissionSheet) ([]byte, error) {
	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	if err := xl.SetSheetName(xl.GetSheetName(0), commissionSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	title := fmt.Sprintf("%s - commissions %s to %s", sheet.Barbershop,
		sheet.DateStart.Format("2006-01-02"), sheet.DateEnd.Format("2006-01-02"))
	if err := xl.SetCellValue(commissionSheet, "A1", title); err != nil {
		return nil, err
	}

	header := commissionHeader
	if err := xl.SetSheetRow(commissionSheet, "A3", &header); err != nil {
		return nil, err
	}

	bold, err := xl.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	_ = xl.SetCellStyle(commissionSheet, "A1", "A1", bold)
	_ = xl.SetCellStyle(commissionSheet, "A3", "F3", bold)

	rowIdx := 4
	for _, row := range sheet.Rows {
		if err := writeCommissionRow(xl, rowIdx, row); err != nil {
			return nil, err
		}
		rowIdx++
	}

	totals := sheet.Totals
	totals.Professional = "Total"
	if err := writeCommissionRow(xl, rowIdx, totals); err != nil {
		return nil, err
	}
	start, _ := excelize.CoordinatesToCellName(1, rowIdx)
	end, _ := excelize.CoordinatesToCellName(len(commissionHeader), rowIdx)
	_ = xl.SetCellStyle(commissionSheet, start, end, bold)

	_ = xl.SetColWidth(commissionSheet, "A", "A", 32)
	_ = xl.SetColWidth(commissionSheet, "B", "F", 14)

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeCommissionRow(xl *excelize.File, rowIdx int, row CommissionRow) error {
	cell, err := excelize.CoordinatesToCellName(1, rowIdx)
	if err != nil {
		return err
	}

	values := []interface{}{
		row.Professional,
		row.BookingsCount,
		row.GrossAmount,
		row.CommissionRate,
		row.CommissionAmount,
		row.NetAmount,
	}
	return xl.SetSheetRow(commissionSheet, cell, &values)
}
