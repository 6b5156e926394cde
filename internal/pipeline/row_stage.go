package pipeline

import (
	"context"
	"fmt"

	"github.com/stack-insights/statement-recon/constants"
	"github.com/stack-insights/statement-recon/internal/rows"
)

// rowStage segments one page of OCR markdown and resolves every span into a
// canonical row. The extraction service is trusted only when it returns
// exactly one record for a span; zero records, several records, or a failed
// call all fall back to the local parser instead of surfacing an error.
func (p *Processor) rowStage(ctx context.Context, markdown, sourceTag string) []rows.Row {
	spans := rows.Segment(markdown)
	out := make([]rows.Row, 0, len(spans))

	for _, sp := range spans {
		tagged := fmt.Sprintf("%s | %s", sourceTag, sp.Text)

		rec := p.resolveSpan(ctx, tagged, sp.Text)
		if _, ok := rec[constants.FieldSpan]; !ok {
			rec[constants.FieldSpan] = sp.Text
		}

		row := rows.Canonicalize(rec)
		if sp.SerialNo != nil {
			row[constants.FieldSerialNo] = *sp.SerialNo
		}
		out = append(out, row)
	}
	return out
}

func (p *Processor) resolveSpan(ctx context.Context, tagged, rowText string) rows.RawRecord {
	recs, err := p.extractor.ExtractRecords(ctx, tagged)
	if err != nil {
		p.logger.Warn("pipeline.extract.fallback", "reason", "error", "error", err)
		return rows.ParseFallback(rowText)
	}
	if len(recs) != 1 {
		p.logger.Warn("pipeline.extract.fallback", "reason", "record_count", "records", len(recs))
		return rows.ParseFallback(rowText)
	}
	return recs[0]
}
