package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/stack-insights/statement-recon/internal/rows"
)

// DecodeRecords decodes a model response into raw records, tolerating the
// shapes models actually produce: a fenced code block, a {"records": [...]}
// envelope, a bare array, or a single bare object (treated as one record).
func DecodeRecords(raw []byte) ([]rows.RawRecord, error) {
	content := StripFences(string(raw))
	if content == "" {
		return nil, fmt.Errorf("empty extraction response")
	}

	var envelope struct {
		Records []rows.RawRecord `json:"records"`
	}
	if err := json.Unmarshal([]byte(content), &envelope); err == nil && envelope.Records != nil {
		return envelope.Records, nil
	}

	var list []rows.RawRecord
	if err := json.Unmarshal([]byte(content), &list); err == nil {
		return list, nil
	}

	var single rows.RawRecord
	if err := json.Unmarshal([]byte(content), &single); err == nil && len(single) > 0 {
		return []rows.RawRecord{single}, nil
	}

	return nil, fmt.Errorf("unrecognized extraction payload")
}

// StripFences removes a surrounding markdown code fence, with or without a
// language tag, and trims whitespace.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		// drop the language tag line ("json", "JSON", ...)
		first := strings.TrimSpace(s[:i])
		if first == "" || !strings.ContainsAny(first, "{[") {
			s = s[i+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
