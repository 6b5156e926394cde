package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	OCR      OCRConfig
	LLM      LLMConfig
	PDF      PDFConfig
	Database DatabaseConfig
	Export   ExportConfig
}

// OCRConfig holds Mistral OCR configuration
type OCRConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// LLMConfig holds record-extraction (OpenAI) configuration
type LLMConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	Timeout     time.Duration
}

// PDFConfig holds external PDF tool configuration
type PDFConfig struct {
	Qpdf     string
	Pdftoppm string
	DPI      int
	MaxPages int
}

// DatabaseConfig holds the optional run-history store configuration
type DatabaseConfig struct {
	DSN         string
	DialTimeout time.Duration
}

// ExportConfig holds spreadsheet export configuration
type ExportConfig struct {
	SheetName string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		OCR: OCRConfig{
			APIKey:  getEnv("MISTRAL_API_KEY", ""),
			BaseURL: getEnv("MISTRAL_BASE_URL", "https://api.mistral.ai"),
			Model:   getEnv("MISTRAL_OCR_MODEL", "mistral-ocr-latest"),
			Timeout: getEnvAsDuration("MISTRAL_TIMEOUT", 60*time.Second),
		},
		LLM: LLMConfig{
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			BaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Model:       getEnv("OPENAI_MODEL", "gpt-4.1-mini"),
			Temperature: getEnvAsFloat32("OPENAI_TEMPERATURE", 0.0),
			Timeout:     getEnvAsDuration("OPENAI_TIMEOUT", 45*time.Second),
		},
		PDF: PDFConfig{
			Qpdf:     getEnv("QPDF_BIN", "qpdf"),
			Pdftoppm: getEnv("PDFTOPPM_BIN", "pdftoppm"),
			DPI:      getEnvAsInt("PDF_DPI", 300),
			MaxPages: getEnvAsInt("PDF_MAX_PAGES", 0),
		},
		Database: DatabaseConfig{
			DSN:         getEnv("RECON_DB_URL", ""),
			DialTimeout: getEnvAsDuration("RECON_DB_DIAL_TIMEOUT", 3*time.Second),
		},
		Export: ExportConfig{
			SheetName: getEnv("EXPORT_SHEET_NAME", "Extract"),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate checks that every statically required capability is configured.
// External services are required dependencies; fail fast at startup rather
// than discovering a missing key halfway through a batch.
func (c *Config) Validate() error {
	if c.OCR.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "MISTRAL_API_KEY is required", ErrInvalidInput)
	}
	if c.LLM.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "OPENAI_API_KEY is required", ErrInvalidInput)
	}
	if c.PDF.DPI <= 0 {
		return NewAppError("CONFIG_ERROR", "PDF_DPI must be positive", ErrInvalidInput)
	}
	return nil
}
