// Package pipeline wires the statement flow end to end: decrypt and
// rasterize PDFs, OCR each page, segment the markdown into row spans,
// extract or fallback-parse each span, and canonicalize the results.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/stack-insights/statement-recon/constants"
	"github.com/stack-insights/statement-recon/internal/llm"
	"github.com/stack-insights/statement-recon/internal/ocr"
	"github.com/stack-insights/statement-recon/internal/pdf"
	"github.com/stack-insights/statement-recon/internal/rows"
)

// Input is one uploaded statement file.
type Input struct {
	Name     string
	Data     []byte
	Password string // for protected PDFs; ignored for images
}

// BatchResult is the outcome of one run across all inputs. Collaborator
// failures become warnings, never a failed batch.
type BatchResult struct {
	RunID     uuid.UUID
	Rows      []rows.Row
	Warnings  []string
	Files     int
	StartedAt time.Time
	Elapsed   time.Duration
}

// Processor coordinates the per-file flow. Each file is processed to
// completion before the next begins; there is no shared mutable state
// between rows.
type Processor struct {
	logger     *slog.Logger
	decryptor  pdf.Decryptor
	rasterizer pdf.Rasterizer
	reader     ocr.PageReader
	extractor  llm.Extractor
}

func NewProcessor(
	logger *slog.Logger,
	decryptor pdf.Decryptor,
	rasterizer pdf.Rasterizer,
	reader ocr.PageReader,
	extractor llm.Extractor,
) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		logger:     logger,
		decryptor:  decryptor,
		rasterizer: rasterizer,
		reader:     reader,
		extractor:  extractor,
	}
}

// ProcessBatch runs every input sequentially, deduplicates the combined rows,
// and reports per-file problems as warnings. An empty result is a warning
// outcome, not an error: it may just mean no extractable data.
func (p *Processor) ProcessBatch(ctx context.Context, inputs []Input) BatchResult {
	res := BatchResult{
		RunID:     uuid.New(),
		StartedAt: time.Now().UTC(),
	}

	var all []rows.Row
	for _, in := range inputs {
		fileRows, warns := p.ProcessFile(ctx, in)
		all = append(all, fileRows...)
		res.Warnings = append(res.Warnings, warns...)
		res.Files++
	}

	res.Rows = rows.Dedupe(all)
	res.Elapsed = time.Since(res.StartedAt)

	if len(res.Rows) == 0 {
		res.Warnings = append(res.Warnings,
			"no rows extracted; try a different page or a crisper scan")
	}

	p.logger.Info("pipeline.batch.done",
		"run_id", res.RunID.String(),
		"files", res.Files,
		"rows", len(res.Rows),
		"deduped", len(all)-len(res.Rows),
		"warnings", len(res.Warnings),
		"elapsed_ms", res.Elapsed.Milliseconds(),
	)
	return res
}

// ProcessFile handles one statement file and returns its canonical rows plus
// any warnings. It never returns an error: every failure mode is a skip.
func (p *Processor) ProcessFile(ctx context.Context, in Input) ([]rows.Row, []string) {
	switch constants.MapExtToFormat(filepath.Ext(in.Name)) {
	case constants.PDF:
		return p.processPDF(ctx, in)
	case constants.IMAGE:
		return p.processImage(ctx, in)
	default:
		return nil, []string{fmt.Sprintf("skipping %s (unsupported format)", in.Name)}
	}
}

func (p *Processor) processPDF(ctx context.Context, in Input) ([]rows.Row, []string) {
	dec, status, err := p.decryptor.Decrypt(ctx, in.Data, in.Password)
	if err != nil {
		p.logger.Error("pipeline.decrypt.failed", "file", in.Name, "error", err)
		return nil, []string{fmt.Sprintf("decrypt failed for %s: %v", in.Name, err)}
	}
	switch status {
	case pdf.StatusProtected:
		return nil, []string{fmt.Sprintf("%s is password-protected; please provide the password", in.Name)}
	case pdf.StatusBadPassword:
		return nil, []string{fmt.Sprintf("incorrect password for %s", in.Name)}
	}

	pages, err := p.rasterizer.Rasterize(ctx, dec)
	if err != nil {
		p.logger.Error("pipeline.rasterize.failed", "file", in.Name, "error", err)
		return nil, []string{fmt.Sprintf("pdf render failed for %s: %v", in.Name, err)}
	}

	var (
		out   []rows.Row
		warns []string
	)
	for i, img := range pages {
		page := i + 1
		md, err := p.reader.ReadPage(ctx, img, "image/png")
		if err != nil {
			p.logger.Warn("pipeline.ocr.failed", "file", in.Name, "page", page, "error", err)
			warns = append(warns, fmt.Sprintf("ocr failed for %s page %d: %v", in.Name, page, err))
			continue
		}
		tag := fmt.Sprintf("[SOURCE_PDF: %s | PAGE: %d]", in.Name, page)
		for _, r := range p.rowStage(ctx, md, tag) {
			r[constants.FieldSourcePDF] = in.Name
			r[constants.FieldPage] = page
			out = append(out, r)
		}
	}
	p.logger.Info("pipeline.file.done", "file", in.Name, "pages", len(pages), "rows", len(out))
	return out, warns
}

func (p *Processor) processImage(ctx context.Context, in Input) ([]rows.Row, []string) {
	mime := constants.MimeForExt(filepath.Ext(in.Name))
	md, err := p.reader.ReadPage(ctx, in.Data, mime)
	if err != nil {
		p.logger.Warn("pipeline.ocr.failed", "file", in.Name, "error", err)
		return nil, []string{fmt.Sprintf("ocr failed for %s: %v", in.Name, err)}
	}

	var out []rows.Row
	tag := fmt.Sprintf("[SOURCE_IMAGE: %s]", in.Name)
	for _, r := range p.rowStage(ctx, md, tag) {
		r[constants.FieldSourceImage] = in.Name
		out = append(out, r)
	}
	p.logger.Info("pipeline.file.done", "file", in.Name, "pages", 1, "rows", len(out))
	return out, nil
}
