package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"macrocli/pkg/contracts/domain"
)

// WriteCSV writes the panel to a CSV file, creating parent directories as
// needed. A UTF-8 BOM is prepended so spreadsheet tools detect the encoding.
func WriteCSV(path string, records []domain.MonthlyRecord, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer file.Close()

	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, rec := range records {
		if err := writer.Write(flatten(rec)); err != nil {
			return fmt.Errorf("write csv row %s: %w", rec.Date, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	logger.Info("panel exported",
		slog.String("format", "csv"),
		slog.String("path", path),
		slog.Int("records", len(records)),
	)
	return nil
}
