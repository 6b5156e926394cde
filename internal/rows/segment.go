package rows

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	// Stray fragments of the table header that OCR repeats mid-page.
	headerWord = regexp.MustCompile(`(?i)\b(?:isin|company|scrip|balance|market rate|market value|status)\b`)
	serialCell = regexp.MustCompile(`\|\s*(\d+)\s*\|`)
)

// Segment splits OCR markdown into per-security row spans. OCR frequently
// breaks one logical table row across several text lines; the ISIN token is
// the only high-precision row boundary available without a ground-truth table
// structure, so a line carrying one starts a new span and ISIN-less lines are
// folded into the open span.
func Segment(markdown string) []RowSpan {
	var (
		spans []RowSpan
		open  string
		have  bool
	)

	flush := func() {
		if !have {
			return
		}
		text := open
		open, have = "", false
		if FindISIN(text) == "" {
			return
		}
		span := RowSpan{Text: text}
		if m := serialCell.FindStringSubmatch(text); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				span.SerialNo = &n
			}
		}
		spans = append(spans, span)
	}

	for _, raw := range strings.Split(markdown, "\n") {
		ln := strings.TrimSpace(raw)
		if ln == "" || isBorderLine(ln) {
			continue
		}
		if FindISIN(ln) != "" {
			flush()
			open, have = ln, true
			continue
		}
		if !have {
			continue
		}
		if headerWord.MatchString(ln) {
			// Header fragment: close the open row and drop the line.
			flush()
			continue
		}
		// Continuation of a wrapped row; restore the cell separator.
		open += " | " + ln
	}
	flush()
	return spans
}

// isBorderLine reports whether the line is a markdown table separator:
// nothing but '-', ':', '|' and whitespace.
func isBorderLine(ln string) bool {
	for _, r := range ln {
		if r == '-' || r == ':' || r == '|' || unicode.IsSpace(r) {
			continue
		}
		return false
	}
	return true
}
