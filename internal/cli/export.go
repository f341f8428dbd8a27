package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ttrabelsi/facturier/internal/export"
)

var (
	exportLang    string
	exportReceipt bool
	exportOut     string
)

var exportCmd = &cobra.Command{
	Use:   "export <number>",
	Short: "Export an invoice or receipt as a single-page A4 PDF",
	Example: `  facturier export INV-0001
  facturier export INV-0001 --receipt --lang fr --out ~/Documents`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := buildExportRequest(args[0])
		if err != nil {
			return err
		}
		path, err := exporter.ExportFile(req, exportOut)
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

var previewCmd = &cobra.Command{
	Use:   "preview <number>",
	Short: "Render a PDF preview into a temporary file and print its path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := buildExportRequest(args[0])
		if err != nil {
			return err
		}
		p, err := exporter.Preview(req)
		if err != nil {
			return err
		}
		defer p.Release()

		data, err := p.Bytes()
		if err != nil {
			return err
		}
		path := filepath.Join(os.TempDir(), p.Name())
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return err
		}
		fmt.Printf("Preview at %s\n", path)
		return nil
	},
}

// buildExportRequest loads the invoice and its related records. A missing
// client is tolerated; the document shows a placeholder instead.
func buildExportRequest(number string) (export.Request, error) {
	inv, err := store.GetInvoiceByNumber(number)
	if err != nil {
		return export.Request{}, err
	}
	client, err := store.GetClientByID(inv.ClientID)
	if err != nil {
		return export.Request{}, err
	}
	company, err := store.GetCompanyInfo()
	if err != nil {
		return export.Request{}, err
	}
	lang := exportLang
	if lang == "" {
		lang = cfg.Language
	}
	return export.Request{
		Invoice:  inv,
		Client:   client,
		Company:  company,
		Language: lang,
		Receipt:  exportReceipt,
	}, nil
}

func init() {
	for _, c := range []*cobra.Command{exportCmd, previewCmd} {
		c.Flags().StringVar(&exportLang, "lang", "", "document language (defaults to FACTURIER_LANG)")
		c.Flags().BoolVar(&exportReceipt, "receipt", false, "render a payment receipt instead of an invoice")
	}
	exportCmd.Flags().StringVar(&exportOut, "out", ".", "output directory")

	rootCmd.AddCommand(exportCmd, previewCmd)
}
