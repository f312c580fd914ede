package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cashpoint/cashpoint/internal/auth"
	"github.com/cashpoint/cashpoint/internal/config"
	"github.com/cashpoint/cashpoint/internal/ledger"
	"github.com/cashpoint/cashpoint/internal/logging"
	"github.com/cashpoint/cashpoint/internal/store"
	"github.com/cashpoint/cashpoint/internal/terminal"
)

func main() {
	root := &cobra.Command{
		Use:          "atm",
		Short:        "Interactive teller terminal over a file-backed account ledger",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context())
		},
	}
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "atm: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := logging.New(cfg.LogLevel)

	fileStore := store.NewFileStore(cfg.LedgerPath, logger)
	l, err := fileStore.Load(ctx)
	if err != nil {
		logger.Error("load ledger", "path", cfg.LedgerPath, "error", err)
		return err
	}
	logger.Info("ledger loaded", "path", cfg.LedgerPath, "accounts", len(l))

	engine := ledger.NewEngine(fileStore, cfg.FastCash, logger)
	gate := auth.NewGate(cfg.PINAttempts, logger)
	session := terminal.New(os.Stdin, os.Stdout, engine, gate, cfg.StatementLimit, logger)

	return session.Run(ctx, l)
}
