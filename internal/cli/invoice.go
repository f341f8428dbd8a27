package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ttrabelsi/facturier/internal/models"
	"github.com/ttrabelsi/facturier/internal/services"
)

var invoiceCmd = &cobra.Command{
	Use:   "invoice",
	Short: "Manage invoices",
}

var (
	invClientID string
	invCurrency string
	invTaxRate  float64
	invNote     string
	invItems    []string
)

var invoiceCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an invoice",
	Long: `Create an invoice with one or more line items. Each --item takes
name:qty:price[:discount] with discount as a percentage. Leaving the
price empty (name:qty:) fills it from the saved item catalog.`,
	Example: `  facturier invoice create --client <id> --item "Logo design:2:100:10" --tax 19
  facturier invoice create --client <id> --currency EUR --item "Hosting:1:25"
  facturier invoice create --client <id> --item "Logo design:1:"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !models.ValidCurrency(invCurrency) {
			return fmt.Errorf("unknown currency %q", invCurrency)
		}

		var items []models.LineItem
		for _, spec := range invItems {
			it, needsPrice, err := parseItemSpec(spec)
			if err != nil {
				return err
			}
			if needsPrice {
				price, err := savedPrice(it.Name)
				if err != nil {
					return err
				}
				it.PricePerUnit = price
			}
			items = append(items, it)
		}

		number, err := store.GenerateInvoiceNumber()
		if err != nil {
			return err
		}
		inv := &models.Invoice{
			ID:            store.GenerateID(),
			InvoiceNumber: number,
			ClientID:      invClientID,
			Currency:      invCurrency,
			TaxRate:       invTaxRate,
			Note:          invNote,
			Items:         items,
		}
		if err := services.NewInvoiceService().ValidateForSave(inv); err != nil {
			return err
		}
		if err := store.SaveInvoice(inv); err != nil {
			return err
		}
		tot := services.NewInvoiceService().Totals(inv)
		fmt.Printf("Invoice %s created, total %s %.2f\n", inv.InvoiceNumber, inv.Currency, tot.Total)
		return nil
	},
}

var invoiceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List invoices, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		invoices, err := store.GetInvoices()
		if err != nil {
			return err
		}
		if len(invoices) == 0 {
			fmt.Println("No invoices yet.")
			return nil
		}
		svc := services.NewInvoiceService()
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NUMBER\tDATE\tITEMS\tTOTAL\tSTATUS")
		for i := range invoices {
			inv := &invoices[i]
			status := "unpaid"
			if inv.IsPaid {
				status = "paid"
			}
			tot := svc.Totals(inv)
			fmt.Fprintf(w, "%s\t%s\t%d\t%s %.2f\t%s\n",
				inv.InvoiceNumber, inv.CreatedAt.Format("2006-01-02"),
				len(inv.Items), inv.Currency, tot.Total, status)
		}
		return w.Flush()
	},
}

var invoiceShowCmd = &cobra.Command{
	Use:   "show <number>",
	Short: "Show one invoice with its line items and totals",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, err := store.GetInvoiceByNumber(args[0])
		if err != nil {
			return err
		}
		client, err := store.GetClientByID(inv.ClientID)
		if err != nil {
			return err
		}

		status := "unpaid"
		if inv.IsPaid {
			status = "paid"
		}
		fmt.Printf("%s  (%s)\n", inv.InvoiceNumber, status)
		fmt.Printf("Issued: %s\n", inv.CreatedAt.Format("2006-01-02"))
		if client != nil {
			fmt.Printf("Client: %s\n", client.Name)
		} else {
			fmt.Println("Client: (none)")
		}

		sym := models.CurrencySymbol(inv.Currency)
		svc := services.NewInvoiceService()
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "\nITEM\tQTY\tUNIT\tAMOUNT")
		for _, it := range inv.Items {
			amount := svc.LineAmount(it)
			line := fmt.Sprintf("%s\t%d\t%.2f %s\t%.2f %s", it.Name, it.Quantity, it.PricePerUnit, sym, amount, sym)
			if it.Discount > 0 {
				line += fmt.Sprintf(" (-%s%%)", strconv.FormatFloat(it.Discount, 'f', -1, 64))
			}
			fmt.Fprintln(w, line)
		}
		w.Flush()

		tot := svc.Totals(inv)
		fmt.Printf("\nSubtotal: %.2f %s\n", tot.Subtotal, sym)
		if tot.Discount > 0 {
			fmt.Printf("Discount: -%.2f %s\n", tot.Discount, sym)
		}
		if inv.TaxRate > 0 {
			fmt.Printf("Tax (%s%%): %.2f %s\n", strconv.FormatFloat(inv.TaxRate, 'f', -1, 64), tot.Tax, sym)
		}
		fmt.Printf("Total: %.2f %s\n", tot.Total, sym)
		if inv.Note != "" {
			fmt.Printf("\nNotes: %s\n", inv.Note)
		}
		return nil
	},
}

var invoicePayCmd = &cobra.Command{
	Use:   "pay <number>",
	Short: "Toggle an invoice between paid and unpaid",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, err := store.GetInvoiceByNumber(args[0])
		if err != nil {
			return err
		}
		inv, err = store.ToggleInvoiceStatus(inv.ID)
		if err != nil {
			return err
		}
		if inv.IsPaid {
			fmt.Printf("Invoice %s marked as paid\n", inv.InvoiceNumber)
		} else {
			fmt.Printf("Invoice %s marked as unpaid\n", inv.InvoiceNumber)
		}
		return nil
	},
}

var invoiceDeleteCmd = &cobra.Command{
	Use:   "delete <number>",
	Short: "Delete an invoice and its line items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, err := store.GetInvoiceByNumber(args[0])
		if err != nil {
			return err
		}
		if err := store.DeleteInvoice(inv.ID); err != nil {
			return err
		}
		fmt.Printf("Invoice %s deleted\n", inv.InvoiceNumber)
		return nil
	},
}

// parseItemSpec parses name:qty:price[:discount]. An empty price field
// reports needsPrice so the caller can fill it from the saved items.
func parseItemSpec(spec string) (it models.LineItem, needsPrice bool, err error) {
	parts := strings.Split(spec, ":")
	if len(parts) < 3 || len(parts) > 4 {
		return it, false, fmt.Errorf("item %q: want name:qty:price[:discount]", spec)
	}
	it.Name = strings.TrimSpace(parts[0])
	if it.Name == "" {
		return it, false, fmt.Errorf("item %q: name is empty", spec)
	}

	it.Quantity, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || it.Quantity <= 0 {
		return it, false, fmt.Errorf("item %q: quantity must be a positive integer", spec)
	}

	price := strings.TrimSpace(parts[2])
	if price == "" {
		needsPrice = true
	} else {
		it.PricePerUnit, err = strconv.ParseFloat(price, 64)
		if err != nil || it.PricePerUnit < 0 {
			return it, false, fmt.Errorf("item %q: invalid price", spec)
		}
	}

	if len(parts) == 4 {
		it.Discount, err = strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || it.Discount < 0 || it.Discount > 100 {
			return it, false, fmt.Errorf("item %q: discount must be between 0 and 100", spec)
		}
	}
	return it, needsPrice, nil
}

// savedPrice resolves an empty price field from the saved item catalog.
func savedPrice(name string) (float64, error) {
	saved, err := store.GetSavedItems()
	if err != nil {
		return 0, err
	}
	for _, si := range saved {
		if strings.EqualFold(si.Name, name) {
			return si.DefaultPrice, nil
		}
	}
	return 0, fmt.Errorf("no saved item named %q to take a price from", name)
}

func init() {
	invoiceCreateCmd.Flags().StringVar(&invClientID, "client", "", "client id (required)")
	invoiceCreateCmd.Flags().StringVar(&invCurrency, "currency", "TND", "currency code")
	invoiceCreateCmd.Flags().Float64Var(&invTaxRate, "tax", 0, "tax rate in percent")
	invoiceCreateCmd.Flags().StringVar(&invNote, "note", "", "note shown on the document")
	invoiceCreateCmd.Flags().StringArrayVar(&invItems, "item", nil, "line item as name:qty:price[:discount], repeatable")
	invoiceCreateCmd.MarkFlagRequired("client")
	invoiceCreateCmd.MarkFlagRequired("item")

	invoiceCmd.AddCommand(invoiceCreateCmd, invoiceListCmd, invoiceShowCmd, invoicePayCmd, invoiceDeleteCmd)
	rootCmd.AddCommand(invoiceCmd)
}
