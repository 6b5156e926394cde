// Package pdf provides the PDF collaborators: decryption and page
// rasterization, both backed by external tools behind a stubbable Runner.
package pdf

import "context"

// Status is the outcome of a decryption attempt.
type Status string

const (
	StatusOK          Status = "ok"
	StatusProtected   Status = "protected"
	StatusBadPassword Status = "bad_password"
)

// Decryptor removes PDF encryption when a password is supplied. An encrypted
// input with no password yields StatusProtected; a wrong password yields
// StatusBadPassword. Neither is an error: the caller skips the file and
// continues the batch.
type Decryptor interface {
	Decrypt(ctx context.Context, pdfBytes []byte, password string) ([]byte, Status, error)
}

// Rasterizer renders a PDF into one image per page.
type Rasterizer interface {
	Rasterize(ctx context.Context, pdfBytes []byte) ([][]byte, error)
}
