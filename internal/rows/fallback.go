package rows

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/stack-insights/statement-recon/constants"
)

// ParseFallback parses a reconstructed row without the extraction service.
// It is used when extraction returns zero or more than one record for a span,
// since only an exactly-one-record response is trusted as-is. It never fails:
// fields it cannot locate are absent from the result.
func ParseFallback(rowText string) RawRecord {
	rec := RawRecord{constants.FieldSpan: rowText}

	isin := FindISIN(rowText)
	if isin != "" {
		rec[constants.FieldISIN] = isin
	}

	cells := strings.Split(rowText, "|")
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}

	// The cell after the one carrying the ISIN is the name candidate.
	if isin != "" {
		for i, c := range cells {
			if !strings.Contains(strings.ToUpper(stripSpace(c)), isin) {
				continue
			}
			if i+1 < len(cells) {
				if name := TidySecurityName(cells[i+1]); name != "" {
					rec[constants.FieldSecurityName] = name
				}
			}
			break
		}
	}

	for i, c := range cells {
		cl := strings.ToLower(c)
		next := ""
		if i+1 < len(cells) {
			next = cells[i+1]
		}
		if strings.Contains(cl, "balance") {
			if d, ok := labelledNumber(next, c); ok {
				rec[constants.FieldBalance] = d
			}
		}
		if strings.Contains(cl, "market rate") {
			if d, ok := labelledNumber(next, c); ok {
				rec[constants.FieldMarketRate] = d
			}
		}
		if strings.Contains(cl, "market value") {
			if d, ok := labelledNumber(next, c); ok {
				rec[constants.FieldMarketValue] = d
			}
		}
		if strings.Contains(cl, "status") {
			if _, seen := rec[constants.FieldStatus]; !seen {
				if next != "" {
					rec[constants.FieldStatus] = next
				} else {
					rec[constants.FieldStatus] = c
				}
			}
		}
	}
	return rec
}

// labelledNumber captures the figure following a label cell, falling back to
// the label cell itself when the next cell yields no number.
func labelledNumber(next, label string) (decimal.Decimal, bool) {
	if d, ok := ParseNumber(next); ok {
		return d, true
	}
	return ParseNumber(label)
}
