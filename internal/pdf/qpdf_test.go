package pdf

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRunner struct {
	run func(name string, args ...string) ([]byte, []byte, error)
}

func (s stubRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	return s.run(name, args...)
}

// exitStatus fabricates a real *exec.ExitError with the given code.
func exitStatus(t *testing.T, code int) error {
	t.Helper()
	err := exec.Command("sh", "-c", fmt.Sprintf("exit %d", code)).Run()
	require.Error(t, err)
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, code, exitErr.ExitCode())
	return err
}

func TestDecryptPassThroughWhenNotEncrypted(t *testing.T) {
	q := NewQpdf("qpdf", nil)
	q.runner = stubRunner{run: func(name string, args ...string) ([]byte, []byte, error) {
		require.Equal(t, "--is-encrypted", args[0])
		return nil, nil, exitStatus(t, 2)
	}}

	input := []byte("%PDF-1.7 plain")
	out, status, err := q.Decrypt(context.Background(), input, "")
	require.NoError(t, err)
	assert.Equal(t, StatusOK, status)
	assert.Equal(t, input, out)
}

func TestDecryptProtectedWithoutPassword(t *testing.T) {
	q := NewQpdf("qpdf", nil)
	q.runner = stubRunner{run: func(name string, args ...string) ([]byte, []byte, error) {
		require.Equal(t, "--is-encrypted", args[0])
		return nil, nil, nil // exit 0 means encrypted
	}}

	out, status, err := q.Decrypt(context.Background(), []byte("%PDF enc"), "")
	require.NoError(t, err)
	assert.Equal(t, StatusProtected, status)
	assert.Nil(t, out)
}

func TestDecryptWithPassword(t *testing.T) {
	q := NewQpdf("qpdf", nil)
	q.runner = stubRunner{run: func(name string, args ...string) ([]byte, []byte, error) {
		if args[0] == "--is-encrypted" {
			return nil, nil, nil
		}
		require.Equal(t, "--password=secret", args[0])
		require.Equal(t, "--decrypt", args[1])
		require.NoError(t, os.WriteFile(args[3], []byte("%PDF decrypted"), 0o600))
		return nil, nil, nil
	}}

	out, status, err := q.Decrypt(context.Background(), []byte("%PDF enc"), "secret")
	require.NoError(t, err)
	assert.Equal(t, StatusOK, status)
	assert.Equal(t, []byte("%PDF decrypted"), out)
}

func TestDecryptBadPassword(t *testing.T) {
	q := NewQpdf("qpdf", nil)
	q.runner = stubRunner{run: func(name string, args ...string) ([]byte, []byte, error) {
		if args[0] == "--is-encrypted" {
			return nil, nil, nil
		}
		return nil, []byte("qpdf: in.pdf: invalid password"), exitStatus(t, 2)
	}}

	out, status, err := q.Decrypt(context.Background(), []byte("%PDF enc"), "wrong")
	require.NoError(t, err)
	assert.Equal(t, StatusBadPassword, status)
	assert.Nil(t, out)
}

func TestDecryptToolFailure(t *testing.T) {
	q := NewQpdf("qpdf", nil)
	q.runner = stubRunner{run: func(name string, args ...string) ([]byte, []byte, error) {
		if args[0] == "--is-encrypted" {
			return nil, nil, nil
		}
		return nil, []byte("qpdf: something else went wrong"), exitStatus(t, 2)
	}}

	_, _, err := q.Decrypt(context.Background(), []byte("%PDF enc"), "pw")
	assert.Error(t, err)
}
