package llm

import "strings"

// BuildSystemPrompt is the instruction set for statement-row extraction.
func BuildSystemPrompt() string {
	parts := []string{
		"You are an information-extraction system for Demat/CSGL holding statements.",
		"The input is one table row recovered from OCR text, pipe-delimited, possibly noisy.",
		"Return ONLY JSON that matches the JSON Schema provided: an object with a 'records' array, one element per holding in the row.",
		"Recognized fields per record: date, isin, security_name, balance, market_rate, market_value, value, status.",
		"Copy figures verbatim, including currency symbols and digit grouping.",
		"Do not invent values; omit a field entirely if it is not present.",
		"Never output null and never wrap the JSON in markdown fences.",
	}
	return strings.Join(parts, " ")
}

// BuildUserPrompt frames one tagged row span for the model.
func BuildUserPrompt(spanText string) string {
	var b strings.Builder
	b.WriteString("Statement row:\n")
	b.WriteString(spanText)
	b.WriteString("\n\nReturn ONLY JSON that matches the provided schema.")
	return b.String()
}
