package llm

// BuildRecordsJSONSchema returns the JSON-Schema (draft 2020-12 subset) for
// an extraction response as a generic map. We pass it to the model as a
// structured-output constraint and also use it locally to validate.
//
// Records keep additionalProperties open: issuers add their own columns and
// canonicalization handles arbitrary keys downstream.
func BuildRecordsJSONSchema() map[string]any {
	record := map[string]any{
		"type":                 "object",
		"additionalProperties": true,
		"properties": map[string]any{
			"date":          map[string]any{"type": "string"},
			"isin":          map[string]any{"type": "string"},
			"security_name": map[string]any{"type": "string"},
			"balance":       amountProp(),
			"market_rate":   amountProp(),
			"market_value":  amountProp(),
			"value":         amountProp(),
			"status":        map[string]any{"type": "string"},
			"_span":         map[string]any{"type": "string"},
		},
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"records": map[string]any{
				"type":  "array",
				"items": record,
			},
		},
		"required": []string{"records"},
	}
}

// amountProp allows both the verbatim statement string ("2,50,000") and a
// bare number; value selection keeps the original representation either way.
func amountProp() map[string]any {
	return map[string]any{"type": []string{"string", "number"}}
}
