package pdf

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// Poppler implements Rasterizer by shelling out to pdftoppm.
type Poppler struct {
	bin      string
	dpi      int
	maxPages int
	runner   Runner
	logger   *slog.Logger
}

func NewPoppler(bin string, dpi, maxPages int, logger *slog.Logger) *Poppler {
	if bin == "" {
		bin = "pdftoppm"
	}
	if dpi <= 0 {
		dpi = 300
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Poppler{bin: bin, dpi: dpi, maxPages: maxPages, runner: execRunner{}, logger: logger}
}

func (p *Poppler) Rasterize(ctx context.Context, pdfBytes []byte) ([][]byte, error) {
	tmpDir, err := os.MkdirTemp("", "recon-pp-*")
	if err != nil {
		return nil, err
	}
	defer func(path string) {
		if rerr := os.RemoveAll(path); rerr != nil {
			p.logger.Warn("failed to remove temp dir", "path", path, "error", rerr)
		}
	}(tmpDir)

	in := filepath.Join(tmpDir, "in.pdf")
	if err := os.WriteFile(in, pdfBytes, 0o600); err != nil {
		return nil, err
	}

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r <dpi> -png <in.pdf> <tmp/page>
	_, errb, err := p.runner.Run(ctx, p.bin, "-r", fmt.Sprintf("%d", p.dpi), "-png", in, prefix)
	if err != nil {
		return nil, fmt.Errorf("pdftoppm: %w: %s", err, truncate(string(errb), 512))
	}

	// pdftoppm zero-pads page numbers, so lexicographic order is page order.
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if p.maxPages > 0 && len(matches) > p.maxPages {
		matches = matches[:p.maxPages]
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no images")
	}

	pages := make([][]byte, 0, len(matches))
	for _, m := range matches {
		b, rerr := os.ReadFile(m)
		if rerr != nil {
			return nil, fmt.Errorf("read rendered page: %w", rerr)
		}
		pages = append(pages, b)
	}
	return pages, nil
}
