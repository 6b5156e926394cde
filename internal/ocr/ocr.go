// Package ocr turns statement page images into markdown text.
package ocr

import "context"

// PageReader is the OCR capability the pipeline depends on: one page image
// in, markdown text out. A failed page is a per-page skip for the caller,
// never fatal to a batch.
type PageReader interface {
	ReadPage(ctx context.Context, image []byte, mimeType string) (string, error)
}
