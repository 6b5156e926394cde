package pdf

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Qpdf implements Decryptor by shelling out to the qpdf binary.
type Qpdf struct {
	bin    string
	runner Runner
	logger *slog.Logger
}

func NewQpdf(bin string, logger *slog.Logger) *Qpdf {
	if bin == "" {
		bin = "qpdf"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Qpdf{bin: bin, runner: execRunner{}, logger: logger}
}

func (q *Qpdf) Decrypt(ctx context.Context, pdfBytes []byte, password string) ([]byte, Status, error) {
	tmpDir, err := os.MkdirTemp("", "recon-qpdf-*")
	if err != nil {
		return nil, "", err
	}
	defer func(path string) {
		if rerr := os.RemoveAll(path); rerr != nil {
			q.logger.Warn("failed to remove temp dir", "path", path, "error", rerr)
		}
	}(tmpDir)

	in := filepath.Join(tmpDir, "in.pdf")
	if err := os.WriteFile(in, pdfBytes, 0o600); err != nil {
		return nil, "", err
	}

	encrypted, err := q.isEncrypted(ctx, in)
	if err != nil {
		return nil, "", err
	}
	if !encrypted {
		return pdfBytes, StatusOK, nil
	}
	if password == "" {
		return nil, StatusProtected, nil
	}

	out := filepath.Join(tmpDir, "out.pdf")
	_, errb, err := q.runner.Run(ctx, q.bin, "--password="+password, "--decrypt", in, out)
	if err != nil {
		if strings.Contains(strings.ToLower(string(errb)), "invalid password") {
			return nil, StatusBadPassword, nil
		}
		return nil, "", fmt.Errorf("qpdf decrypt: %w: %s", err, truncate(string(errb), 512))
	}

	dec, err := os.ReadFile(out)
	if err != nil {
		return nil, "", fmt.Errorf("read decrypted pdf: %w", err)
	}
	return dec, StatusOK, nil
}

// isEncrypted probes with `qpdf --is-encrypted`: exit 0 means encrypted,
// exit 2 means not encrypted.
func (q *Qpdf) isEncrypted(ctx context.Context, path string) (bool, error) {
	_, errb, err := q.runner.Run(ctx, q.bin, "--is-encrypted", path)
	if err == nil {
		return true, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 2 {
		return false, nil
	}
	return false, fmt.Errorf("qpdf --is-encrypted: %w: %s", err, truncate(string(errb), 512))
}
