// runocr sends one statement page image through the OCR service and prints
// the recognized markdown. Useful for checking what the pipeline will see
// before running a full batch.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/stack-insights/statement-recon/constants"
	"github.com/stack-insights/statement-recon/internal/common"
	"github.com/stack-insights/statement-recon/internal/ocr"
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: runocr <image.png|image.jpg>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file found", "error", err)
	}

	cfg := common.LoadConfig()
	if cfg.OCR.APIKey == "" {
		logger.Error("MISTRAL_API_KEY is required")
		os.Exit(1)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("failed to read image", "path", path, "error", err)
		os.Exit(1)
	}

	client := ocr.NewClient(ocr.Config{
		APIKey:  cfg.OCR.APIKey,
		BaseURL: cfg.OCR.BaseURL,
		Model:   cfg.OCR.Model,
		Timeout: cfg.OCR.Timeout,
	}, logger)

	md, err := client.ReadPage(context.Background(),
		data, constants.MimeForExt(filepath.Ext(path)))
	if err != nil {
		logger.Error("ocr failed", "error", err)
		os.Exit(1)
	}
	fmt.Println(md)
}
