package rows

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

var (
	isinRe       = regexp.MustCompile(`\bIN[A-Z0-9]{10}\b`)
	serialPrefix = regexp.MustCompile(`^\s*\d+\s*\|\s*`)
	pctGlued     = regexp.MustCompile(`%([A-Za-z0-9])`)
	isinWord     = regexp.MustCompile(`(?i)\bISIN\b`)
	parenWrapped = regexp.MustCompile(`^\(.*\)$`)
	currencyJunk = regexp.MustCompile(`[₹$, ]`)
	nonNumeric   = regexp.MustCompile(`[^0-9.]`)
)

// FindISIN returns the first ISIN-shaped token in s, upper-cased, or "".
func FindISIN(s string) string {
	return isinRe.FindString(strings.ToUpper(s))
}

// TidySecurityName cleans a security-name cell: strips a leading "<n> | "
// serial prefix, turns pipes into spaces, re-inserts the space OCR drops
// after a coupon's % sign, collapses whitespace, and truncates at a
// standalone "ISIN" (OCR often glues the ISIN and trailing cells onto the
// name cell).
func TidySecurityName(s string) string {
	if s == "" {
		return s
	}
	x := serialPrefix.ReplaceAllString(s, "")
	x = strings.ReplaceAll(x, "|", " ")
	x = pctGlued.ReplaceAllString(x, "% $1")
	x = strings.Join(strings.Fields(x), " ")
	if loc := isinWord.FindStringIndex(x); loc != nil {
		x = strings.TrimSpace(x[:loc[0]])
	}
	return x
}

// ParseNumber parses a currency-formatted amount. Parenthesized values are
// negative; currency symbols, commas and spaces are ignored, and any other
// non-digit characters are stripped before parsing. Failure is an explicit
// "no value", never an error.
func ParseNumber(v any) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case nil:
		return decimal.Decimal{}, false
	case decimal.Decimal:
		return t, true
	case float64:
		return decimal.NewFromFloat(t), true
	case int:
		return decimal.NewFromInt(int64(t)), true
	}
	s := strings.TrimSpace(Stringify(v))
	neg := parenWrapped.MatchString(s)
	s = strings.Trim(s, "()")
	s = currencyJunk.ReplaceAllString(s, "")
	s = nonNumeric.ReplaceAllString(s, "")
	if s == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	if neg {
		d = d.Neg()
	}
	return d, true
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
