// Package cli wires every command of the facturier binary: client and
// company management, invoice CRUD, and PDF export.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ttrabelsi/facturier/internal/config"
	"github.com/ttrabelsi/facturier/internal/export"
	"github.com/ttrabelsi/facturier/internal/logging"
	"github.com/ttrabelsi/facturier/internal/storage"
)

var version = "1.0.0"

// Shared by every subcommand, initialized by the root pre-run.
var (
	cfg      config.Config
	store    *storage.Store
	exporter *export.Exporter
)

var rootCmd = &cobra.Command{
	Use:   "facturier",
	Short: "Facturier - invoices, receipts and PDF export from the terminal",
	Long: `Facturier keeps clients, company details and invoices in a local
database and renders them as single-page A4 PDF documents, in English
or French.

Configuration comes from the environment (or a .env file):
  FACTURIER_DB    database file path
  FACTURIER_LANG  default document language (en, fr)
  LOG_LEVEL       zerolog level (debug, info, warn, error)
  LOG_FORMAT      console or json`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		if err := logging.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
			return err
		}
		s, err := storage.Open(cfg.DatabasePath)
		if err != nil {
			return fmt.Errorf("open database %s: %w", cfg.DatabasePath, err)
		}
		store = s
		exporter = export.NewExporter()
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if exporter != nil {
			exporter.Close()
		}
		if store != nil {
			store.Close()
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log := logging.WithComponent("cli")
		log.Error().Err(err).Msg("command failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
