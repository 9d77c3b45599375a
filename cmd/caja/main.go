package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/nikolayk812/caja-isv/internal/client"
	"github.com/nikolayk812/caja-isv/internal/config"
	"github.com/nikolayk812/caja-isv/internal/obs"
	"github.com/nikolayk812/caja-isv/internal/port"
	"github.com/nikolayk812/caja-isv/internal/printer"
	"github.com/nikolayk812/caja-isv/internal/register"
	"github.com/nikolayk812/caja-isv/internal/shell"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		apiURL   string
		timeout  time.Duration
		printDir string
		logLevel string
	)

	cmd := &cobra.Command{
		Use:           "caja",
		Short:         "Caja registradora con desglose de ISV",
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadRegister()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("api") {
				cfg.APIURL = apiURL
			}
			if flags.Changed("timeout") {
				cfg.HTTPTimeout = timeout
			}
			if flags.Changed("print-dir") {
				cfg.PrintDir = printDir
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&apiURL, "api", "", "sales API base URL (CAJA_API_URL)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "HTTP timeout per request (CAJA_HTTP_TIMEOUT)")
	cmd.Flags().StringVar(&printDir, "print-dir", "", "write invoices to this directory instead of the terminal (CAJA_PRINT_DIR)")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level (LOG_LEVEL)")

	return cmd
}

func run(ctx context.Context, cfg *config.RegisterConfig) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	logger := obs.NewLogger(os.Stderr, cfg.LogFormat, cfg.LogLevel).With().Str("api", cfg.APIURL).Logger()

	var invoicePrinter port.InvoicePrinter
	if cfg.PrintDir != "" {
		p, err := printer.NewDirPrinter(cfg.PrintDir)
		if err != nil {
			return fmt.Errorf("printer: %w", err)
		}
		invoicePrinter = p
	} else {
		invoicePrinter = printer.NewWriterPrinter(os.Stdout)
	}

	reg := register.New(register.Config{
		API:     client.New(cfg.APIURL, nil, cfg.HTTPTimeout),
		Printer: invoicePrinter,
		Logger:  logger,
	})

	return shell.New(reg, os.Stdin, os.Stdout).Run(ctx)
}
