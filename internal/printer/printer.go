// Package printer delivers rendered invoices to the register's output.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/nikolayk812/caja-isv/internal/port"
)

type writerPrinter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterPrinter prints invoices to w, one after another, separated by a
// blank line.
func NewWriterPrinter(w io.Writer) port.InvoicePrinter {
	return &writerPrinter{w: w}
}

func (p *writerPrinter) Print(ctx context.Context, invoiceID int64, document []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := p.w.Write(document); err != nil {
		return fmt.Errorf("print invoice %d: %w", invoiceID, err)
	}
	if _, err := io.WriteString(p.w, "\n"); err != nil {
		return fmt.Errorf("print invoice %d: %w", invoiceID, err)
	}
	return nil
}

type dirPrinter struct {
	dir string
}

// NewDirPrinter writes each invoice to dir/factura_<id>.txt, replacing an
// earlier copy on reprint.
func NewDirPrinter(dir string) (port.InvoicePrinter, error) {
	if dir == "" {
		return nil, fmt.Errorf("print dir is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create print dir: %w", err)
	}
	return &dirPrinter{dir: dir}, nil
}

func (p *dirPrinter) Print(ctx context.Context, invoiceID int64, document []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := FilePath(p.dir, invoiceID)
	tmp, err := os.CreateTemp(p.dir, ".factura-*")
	if err != nil {
		return fmt.Errorf("print invoice %d: %w", invoiceID, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(document); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("print invoice %d: %w", invoiceID, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("print invoice %d: %w", invoiceID, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("print invoice %d: %w", invoiceID, err)
	}
	return nil
}

func FilePath(dir string, invoiceID int64) string {
	return filepath.Join(dir, fmt.Sprintf("factura_%d.txt", invoiceID))
}
