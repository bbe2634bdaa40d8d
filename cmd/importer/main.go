// Command importer bulk-loads a panel JSON file into the SQLite document
// store used by the server. With -drop the store is cleared first so the
// result matches the file exactly; without it existing rows are upserted.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"macrocli/internal/config"
	"macrocli/internal/infrastructure"
	"macrocli/internal/store"
	"macrocli/pkg/contracts/domain"
)

func main() {
	os.Exit(run())
}

func run() int {
	filePath := flag.String("file", "", "panel JSON file to import (default from config output path)")
	dbPath := flag.String("db", "", "SQLite store path (default from config)")
	drop := flag.Bool("drop", false, "clear existing records before importing")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}
	logger := infrastructure.InitializeLogger(cfg.Logging)

	if *filePath == "" {
		*filePath = cfg.Panel.OutputPath
	}
	if *dbPath == "" {
		*dbPath = cfg.Store.Path
	}

	records, err := readPanel(*filePath)
	if err != nil {
		logger.Error("failed to read panel file", "error", err)
		return 1
	}
	logger.Info("panel file loaded",
		slog.String("path", *filePath),
		slog.Int("records", len(records)),
	)

	st, err := store.Open(*dbPath)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		return 1
	}
	defer st.Close()

	ctx := context.Background()
	imported, err := st.ReplaceAll(ctx, records, *drop)
	if err != nil {
		logger.Error("import failed", "error", err)
		return 1
	}

	count, err := st.Count(ctx)
	if err != nil {
		logger.Error("failed to count records", "error", err)
		return 1
	}
	logger.Info("import complete",
		slog.String("db", *dbPath),
		slog.Int("imported", imported),
		slog.Int("total", count),
		slog.Bool("dropped", *drop),
	)
	return 0
}

func readPanel(path string) ([]domain.MonthlyRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var records []domain.MonthlyRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return records, nil
}
