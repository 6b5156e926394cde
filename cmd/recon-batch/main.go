// recon-batch extracts holdings rows from Demat/CSGL statement files and
// writes them to a spreadsheet.
//
// Usage:
//
//	recon-batch [flags] <statement.pdf|scan.png> ...
//
// Flags:
//
//	-out       output XLSX path (default extract.xlsx)
//	-csv       optional CSV path, written alongside the workbook
//	-password  password for protected PDFs (applied to every input)
//	-db        run-history database DSN (overrides RECON_DB_URL)
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/stack-insights/statement-recon/internal/common"
	"github.com/stack-insights/statement-recon/internal/export"
	"github.com/stack-insights/statement-recon/internal/llm/openai"
	"github.com/stack-insights/statement-recon/internal/ocr"
	"github.com/stack-insights/statement-recon/internal/pdf"
	"github.com/stack-insights/statement-recon/internal/pipeline"
	"github.com/stack-insights/statement-recon/internal/repository"
	"github.com/stack-insights/statement-recon/internal/rows"
)

func main() {
	outPath := flag.String("out", "extract.xlsx", "output XLSX path")
	csvPath := flag.String("csv", "", "optional CSV output path")
	password := flag.String("password", "", "password for protected PDFs")
	dbDSN := flag.String("db", "", "run-history database DSN (overrides RECON_DB_URL)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file found", "error", err)
	}

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: recon-batch [flags] <statement.pdf|scan.png> ...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg := common.LoadConfig()
	if *dbDSN != "" {
		cfg.Database.DSN = *dbDSN
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	inputs, err := readInputs(flag.Args(), *password)
	if err != nil {
		logger.Error("failed to read inputs", "error", err)
		os.Exit(1)
	}

	proc := pipeline.NewProcessor(
		logger,
		pdf.NewQpdf(cfg.PDF.Qpdf, logger),
		pdf.NewPoppler(cfg.PDF.Pdftoppm, cfg.PDF.DPI, cfg.PDF.MaxPages, logger),
		ocr.NewClient(ocr.Config{
			APIKey:  cfg.OCR.APIKey,
			BaseURL: cfg.OCR.BaseURL,
			Model:   cfg.OCR.Model,
			Timeout: cfg.OCR.Timeout,
		}, logger),
		openai.NewClient(openai.Config{
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     cfg.LLM.BaseURL,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			Timeout:     cfg.LLM.Timeout,
		}, logger),
	)

	result := proc.ProcessBatch(ctx, inputs)
	for _, w := range result.Warnings {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}

	table := rows.Project(result.Rows)

	xlsx, err := export.WriteXLSX(table, cfg.Export.SheetName)
	if err != nil {
		logger.Error("xlsx export failed", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*outPath, xlsx, 0o644); err != nil {
		logger.Error("failed to write workbook", "path", *outPath, "error", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d rows to %s\n", len(result.Rows), *outPath)

	if *csvPath != "" {
		csv, err := export.WriteCSV(table)
		if err != nil {
			logger.Error("csv export failed", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*csvPath, csv, 0o644); err != nil {
			logger.Error("failed to write csv", "path", *csvPath, "error", err)
			os.Exit(1)
		}
		fmt.Printf("wrote %s\n", *csvPath)
	}

	// An empty DSN disables run history.
	if cfg.Database.DSN != "" {
		if err := recordRun(ctx, cfg, logger, result); err != nil {
			logger.Error("failed to record run", "error", err)
			os.Exit(1)
		}
	}
}

func readInputs(paths []string, password string) ([]pipeline.Input, error) {
	inputs := make([]pipeline.Input, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		inputs = append(inputs, pipeline.Input{
			Name:     filepath.Base(p),
			Data:     data,
			Password: password,
		})
	}
	return inputs, nil
}

func recordRun(ctx context.Context, cfg *common.Config, logger *slog.Logger, result pipeline.BatchResult) error {
	db, err := repository.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repository.NewRunRepository(db, logger)
	return repo.SaveRun(ctx, repository.Run{
		ID:           result.RunID,
		StartedAt:    result.StartedAt,
		FinishedAt:   result.StartedAt.Add(result.Elapsed),
		FileCount:    result.Files,
		RowCount:     len(result.Rows),
		WarningCount: len(result.Warnings),
	}, result.Rows)
}
