// Package rows implements the segmentation and canonicalization core for
// Demat/CSGL holding statements: splitting noisy OCR markdown into
// per-security row spans, normalizing loosely named extraction output into a
// stable schema, and preparing the batch for export.
package rows

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// RawRecord is an unordered mapping of loosely named fields to values, as
// produced by the extraction service or by the fallback parser. Keys carry no
// casing or separator guarantees ("Market Value" vs "market_value").
type RawRecord map[string]any

// Row is one canonicalized holding record. Keys are normalized field names;
// values keep their original representation where the contract requires it.
type Row map[string]any

// RowSpan is a contiguous, logically joined slice of OCR text believed to
// represent one statement table row. Every emitted span contains at least one
// ISIN token; candidate rows without one are dropped as non-data noise.
type RowSpan struct {
	Text     string
	SerialNo *int
}

// Stringify renders a field value the way it should appear in keys and
// exports. nil becomes the empty string; floats keep their shortest exact
// representation.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case decimal.Decimal:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		return fmt.Sprint(v)
	}
}
