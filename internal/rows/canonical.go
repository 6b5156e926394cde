package rows

import (
	"sort"
	"strings"

	"github.com/stack-insights/statement-recon/constants"
)

// Canonicalize turns a raw extraction record into a schema-consistent row.
// Keys are lower-cased with spaces replaced by underscores (first-seen value
// wins on collision), the security name and ISIN are normalized, and the
// unified value field is derived by priority order. Pure function: the input
// record is not modified.
func Canonicalize(r RawRecord) Row {
	out := make(Row, len(r)+1)
	for k, v := range r {
		out[k] = v
	}

	// Keys are visited in sorted order so the collision rule is deterministic.
	keys := make([]string, 0, len(out))
	for k := range out {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		nk := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(k)), " ", "_")
		if nk == k {
			continue
		}
		if _, exists := out[nk]; exists {
			continue
		}
		out[nk] = out[k]
		delete(out, k)
	}

	if s := Stringify(out[constants.FieldSecurityName]); s != "" {
		out[constants.FieldSecurityName] = TidySecurityName(s)
	}
	if s := Stringify(out[constants.FieldISIN]); s != "" {
		out[constants.FieldISIN] = strings.ToUpper(stripSpace(s))
	}

	if chosen := selectValue(out); chosen != nil {
		out[constants.FieldValue] = chosen
	} else {
		delete(out, constants.FieldValue)
	}
	return out
}

// selectValue picks the unified value figure: the first priority candidate
// whose cleaned digits are non-empty and not all-zero is kept verbatim; when
// none qualify, balance x market rate is computed if both parse.
func selectValue(out Row) any {
	for _, k := range constants.ValuePriority {
		c, ok := out[k]
		if !ok || c == nil {
			continue
		}
		s := currencyJunk.ReplaceAllString(Stringify(c), "")
		if s != "" && strings.Trim(s, "0") != "" {
			return c
		}
	}
	bal, okBal := ParseNumber(out[constants.FieldBalance])
	rate, okRate := ParseNumber(out[constants.FieldMarketRate])
	if okBal && okRate {
		return bal.Mul(rate)
	}
	return nil
}
