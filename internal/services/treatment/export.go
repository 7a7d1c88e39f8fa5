package treatment

import (
	"bytes"
	"context"
	"fmt"

	"clinic/internal/models"
	"clinic/internal/services/fee"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Treatments"

// ExportHeader lists the price list columns in order.
var ExportHeader = []string{
	"Name",
	"Clinic",
	"Price",
	"Include VAT",
	"Price Excluding VAT",
	"VAT",
	"Doctor Fee",
	"Assistant Fee",
}

var exportColumnWidths = []float64{40, 38, 12, 12, 20, 12, 14, 14}

func (s *service) Export(ctx context.Context, caller models.Caller, f ListFilter) ([]byte, error) {
	f.Offset, f.Limit = 0, 0
	f.WithCalculations = true
	views, _, err := s.List(ctx, caller, f)
	if err != nil {
		return nil, err
	}
	return writeWorkbook(views)
}

func writeWorkbook(views []View) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range ExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(exportSheet, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(exportSheet, name, name, exportColumnWidths[col]); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for i, v := range views {
		calc := v.Calculations
		if calc == nil {
			c := fee.ForTreatment(&v.Treatment)
			calc = &c
		}
		clinic := v.Clinic.ID
		if v.Clinic.Name != "" {
			clinic = v.Clinic.Name
		}
		vat := "No"
		if v.IncludeVat {
			vat = "Yes"
		}

		row := []interface{}{
			v.Name,
			clinic,
			calc.TotalPrice,
			vat,
			calc.PriceExcludingVat,
			calc.VatAmount,
			calc.DoctorFeeAmount,
			calc.AssistantFeeAmount,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
