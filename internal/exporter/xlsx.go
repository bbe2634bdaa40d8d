package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"macrocli/pkg/contracts/domain"
)

const sheetName = "Panel"

// WriteXLSX writes the panel to an Excel workbook with one sheet. Numeric
// cells stay numeric so the workbook is immediately chartable; absent values
// stay empty.
func WriteXLSX(path string, records []domain.MonthlyRecord, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("remove default sheet: %w", err)
	}

	for col, name := range columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, name); err != nil {
			return fmt.Errorf("write header %s: %w", name, err)
		}
	}

	for i, rec := range records {
		values := []*float64{
			rec.Fred.UnemploymentRate,
			rec.Fred.CPIAllItems,
			rec.Fred.FedFundsRate,
			rec.Fred.YieldSpread10Y2Y,
			rec.BLS.UnemploymentRateBLS,
			rec.BLS.TotalNonfarmPayrolls,
			rec.BLS.LaborForceParticipationRate,
			rec.Census.TotalPopulation,
			rec.Census.MedianHouseholdIncome,
		}

		row := i + 2
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return fmt.Errorf("date cell row %d: %w", row, err)
		}
		if err := f.SetCellValue(sheetName, cell, rec.Date); err != nil {
			return fmt.Errorf("write date %s: %w", rec.Date, err)
		}

		for col, v := range values {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+2, row)
			if err != nil {
				return fmt.Errorf("cell row %d col %d: %w", row, col+2, err)
			}
			if err := f.SetCellValue(sheetName, cell, *v); err != nil {
				return fmt.Errorf("write cell %s: %w", cell, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}

	logger.Info("panel exported",
		slog.String("format", "xlsx"),
		slog.String("path", path),
		slog.Int("records", len(records)),
	)
	return nil
}
