package printer_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/nikolayk812/caja-isv/internal/printer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewWriterPrinter(&buf)

	require.NoError(t, p.Print(t.Context(), 1, []byte("FACTURA 1\n")))
	require.NoError(t, p.Print(t.Context(), 2, []byte("FACTURA 2\n")))
	assert.Equal(t, "FACTURA 1\n\nFACTURA 2\n\n", buf.String())

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	require.ErrorIs(t, p.Print(ctx, 3, []byte("x")), context.Canceled)
}

func TestDirPrinter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "facturas")
	p, err := printer.NewDirPrinter(dir)
	require.NoError(t, err)

	require.NoError(t, p.Print(t.Context(), 42, []byte("original")))
	require.NoError(t, p.Print(t.Context(), 42, []byte("reimpresa")))

	got, err := os.ReadFile(filepath.Join(dir, "factura_42.txt"))
	require.NoError(t, err)
	assert.Equal(t, "reimpresa", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestNewDirPrinter_Empty(t *testing.T) {
	_, err := printer.NewDirPrinter("")
	require.Error(t, err)
}
