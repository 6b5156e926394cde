package pdf

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// renderStub writes n fake page images at the prefix pdftoppm was given.
func renderStub(t *testing.T, n int) stubRunner {
	t.Helper()
	return stubRunner{run: func(name string, args ...string) ([]byte, []byte, error) {
		require.Equal(t, "-r", args[0])
		require.Equal(t, "-png", args[2])
		prefix := args[len(args)-1]
		for i := 1; i <= n; i++ {
			path := fmt.Sprintf("%s-%02d.png", prefix, i)
			require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("png-%d", i)), 0o600))
		}
		return nil, nil, nil
	}}
}

func TestRasterizePagesInOrder(t *testing.T) {
	p := NewPoppler("pdftoppm", 150, 0, nil)
	p.runner = renderStub(t, 3)

	pages, err := p.Rasterize(context.Background(), []byte("%PDF"))
	require.NoError(t, err)
	require.Len(t, pages, 3)
	assert.Equal(t, []byte("png-1"), pages[0])
	assert.Equal(t, []byte("png-3"), pages[2])
}

func TestRasterizeHonorsMaxPages(t *testing.T) {
	p := NewPoppler("pdftoppm", 300, 2, nil)
	p.runner = renderStub(t, 5)

	pages, err := p.Rasterize(context.Background(), []byte("%PDF"))
	require.NoError(t, err)
	assert.Len(t, pages, 2)
}

func TestRasterizeNoOutput(t *testing.T) {
	p := NewPoppler("pdftoppm", 300, 0, nil)
	p.runner = renderStub(t, 0)

	_, err := p.Rasterize(context.Background(), []byte("%PDF"))
	assert.Error(t, err)
}

func TestRasterizeToolFailure(t *testing.T) {
	p := NewPoppler("pdftoppm", 300, 0, nil)
	p.runner = stubRunner{run: func(name string, args ...string) ([]byte, []byte, error) {
		return nil, []byte("Syntax Error: couldn't read xref table"), fmt.Errorf("exit status 1")
	}}

	_, err := p.Rasterize(context.Background(), []byte("not a pdf"))
	assert.Error(t, err)
}
