// Package llm turns one row span of OCR text into structured holding records.
package llm

import (
	"context"

	"github.com/stack-insights/statement-recon/internal/rows"
)

// Extractor is the record-extraction capability the pipeline depends on.
// Only an exactly-one-record response is trusted by callers; zero or several
// records route the span to the fallback parser instead.
type Extractor interface {
	ExtractRecords(ctx context.Context, spanText string) ([]rows.RawRecord, error)
}
