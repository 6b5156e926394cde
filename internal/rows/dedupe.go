package rows

import (
	"strings"

	"github.com/stack-insights/statement-recon/constants"
)

type businessKey struct {
	isin  string
	name  string
	value string
}

// Dedupe collapses rows sharing a business key (ISIN, tidied name, value),
// keeping the first occurrence. Retried extraction or overlapping OCR spans
// can emit the same physical row twice; identity by key rather than by object
// prevents double-counting in the export.
func Dedupe(in []Row) []Row {
	seen := make(map[businessKey]struct{}, len(in))
	out := make([]Row, 0, len(in))
	for _, r := range in {
		k := businessKey{
			isin:  strings.ToUpper(strings.TrimSpace(Stringify(r[constants.FieldISIN]))),
			name:  TidySecurityName(Stringify(r[constants.FieldSecurityName])),
			value: keyValue(r),
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}

func keyValue(r Row) string {
	if s := strings.TrimSpace(Stringify(r[constants.FieldValue])); s != "" {
		return s
	}
	return strings.TrimSpace(Stringify(r[constants.FieldMarketValue]))
}
