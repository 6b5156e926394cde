package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stack-insights/statement-recon/internal/common"
)

// Config for the Mistral OCR client.
type Config struct {
	APIKey  string        // if empty, falls back to env MISTRAL_API_KEY
	BaseURL string        // default https://api.mistral.ai
	Model   string        // default "mistral-ocr-latest"
	Timeout time.Duration // http client timeout
}

// Client calls the Mistral OCR endpoint with a page image as a data URL and
// returns the page markdown. Implements PageReader.
type Client struct {
	cfg        Config
	httpClient *http.Client
	log        *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("MISTRAL_API_KEY")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.mistral.ai"
	}
	if cfg.Model == "" {
		cfg.Model = "mistral-ocr-latest"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger,
	}
}

func (c *Client) ReadPage(ctx context.Context, image []byte, mimeType string) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.log.Info("ocr.read_page.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"mime", mimeType,
		"image_bytes", len(image),
	)

	body := map[string]any{
		"model": c.cfg.Model,
		"document": map[string]any{
			"type":      "image_url",
			"image_url": dataURL(image, mimeType),
		},
		"include_image_base64": false,
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/v1/ocr"
	raw, err := c.post(ctx, endpoint, body)
	if err != nil {
		c.log.Error("ocr.read_page.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", fmt.Errorf("%w: %v", common.ErrOCR, err)
	}

	var resp struct {
		Pages []struct {
			Markdown string `json:"markdown"`
		} `json:"pages"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		c.log.Error("ocr.read_page.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", fmt.Errorf("%w: decode response: %v", common.ErrOCR, err)
	}

	var chunks []string
	for _, p := range resp.Pages {
		if p.Markdown != "" {
			chunks = append(chunks, p.Markdown)
		}
	}
	md := strings.TrimSpace(strings.Join(chunks, "\n\n"))

	c.log.Info("ocr.read_page.ok",
		"req_id", rid,
		"pages", len(resp.Pages),
		"markdown_bytes", len(md),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return md, nil
}

func (c *Client) post(ctx context.Context, url string, body map[string]any) ([]byte, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mistral http error: %w", err)
	}
	defer func(body io.ReadCloser) {
		if cerr := body.Close(); cerr != nil {
			c.log.Warn("mistral response body close error", "error", cerr)
		}
	}(resp.Body)

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("mistral status %d: %s", resp.StatusCode, string(raw))
	}
	return raw, nil
}

func dataURL(b []byte, mimeType string) string {
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(b)
}
