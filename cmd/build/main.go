// Command build assembles the monthly US macro/labor panel from FRED, BLS,
// and the Census Bureau, and writes the JSON panel plus its series
// definitions. Optional flags export flat CSV/XLSX views alongside.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"macrocli/internal/config"
	"macrocli/internal/exporter"
	"macrocli/internal/infrastructure"
	"macrocli/internal/panel"
	"macrocli/internal/sources"
	"macrocli/pkg/contracts/domain"
)

func main() {
	os.Exit(run())
}

func run() int {
	outPath := flag.String("out", "", "output path for the panel JSON (default from config)")
	csvPath := flag.String("csv", "", "also export a flat CSV view to this path")
	xlsxPath := flag.String("xlsx", "", "also export an XLSX workbook to this path")
	endDate := flag.String("end", "", "panel end date YYYY-MM-DD (default: current month)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}
	logger := infrastructure.InitializeLogger(cfg.Logging)

	// The one fatal precondition: credentials are checked before any fetch.
	if err := cfg.ValidateCredentials(); err != nil {
		logger.Error("missing credentials", "error", err)
		logger.Error("set FRED_API_KEY and CENSUS_API_KEY; BLS_API_KEY is optional but recommended")
		return 1
	}

	start, err := cfg.StartDate()
	if err != nil {
		logger.Error("invalid panel start date", "error", err)
		return 1
	}
	end := time.Now().UTC()
	if *endDate != "" {
		end, err = time.Parse("2006-01-02", *endDate)
		if err != nil {
			logger.Error("invalid end date", "error", err)
			return 1
		}
	}
	if *outPath == "" {
		*outPath = cfg.Panel.OutputPath
	}

	client := sources.NewClient(logger)
	builder := panel.NewBuilder(
		sources.NewFredClient(client, cfg.Credentials.FredAPIKey),
		sources.NewBLSClient(client, cfg.Credentials.BLSAPIKey),
		sources.NewCensusClient(client, cfg.Credentials.CensusAPIKey),
		logger,
	)

	logger.Info("building panel",
		slog.String("start", start.Format("2006-01-02")),
		slog.String("end", end.Format("2006-01-02")),
	)

	records, err := builder.Build(context.Background(), start, end)
	if err != nil {
		logger.Error("panel build failed", "error", err)
		return 1
	}

	if err := writeJSON(*outPath, records); err != nil {
		logger.Error("failed to write panel", "error", err)
		return 1
	}
	logger.Info("panel written",
		slog.String("path", *outPath),
		slog.Int("records", len(records)),
	)

	if err := writeJSON(cfg.Panel.DefinitionsPath, domain.Definitions()); err != nil {
		logger.Error("failed to write series definitions", "error", err)
		return 1
	}
	logger.Info("series definitions written", slog.String("path", cfg.Panel.DefinitionsPath))

	if *csvPath != "" {
		if err := exporter.WriteCSV(*csvPath, records, logger); err != nil {
			logger.Error("csv export failed", "error", err)
			return 1
		}
	}
	if *xlsxPath != "" {
		if err := exporter.WriteXLSX(*xlsxPath, records, logger); err != nil {
			logger.Error("xlsx export failed", "error", err)
			return 1
		}
	}
	return 0
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
