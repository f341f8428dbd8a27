package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ttrabelsi/facturier/internal/models"
)

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "Manage the saved item catalog",
	Long: `Saved items are reusable line item templates. When an invoice line
names a saved item without a price, the item's default price is used.`,
}

var (
	savedItemName  string
	savedItemPrice float64
)

var itemsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Save a reusable item",
	Example: `  facturier items add --name "Logo design" --price 300`,
	RunE: func(cmd *cobra.Command, args []string) error {
		si := &models.SavedItem{
			ID:           store.GenerateID(),
			Name:         savedItemName,
			DefaultPrice: savedItemPrice,
		}
		if err := store.SaveSavedItem(si); err != nil {
			return err
		}
		fmt.Printf("Saved item %s at %.2f\n", si.Name, si.DefaultPrice)
		return nil
	},
}

var itemsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved items",
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := store.GetSavedItems()
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Println("No saved items yet.")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tDEFAULT PRICE")
		for _, si := range items {
			fmt.Fprintf(w, "%s\t%.2f\n", si.Name, si.DefaultPrice)
		}
		return w.Flush()
	},
}

func init() {
	itemsAddCmd.Flags().StringVar(&savedItemName, "name", "", "item name (required)")
	itemsAddCmd.Flags().Float64Var(&savedItemPrice, "price", 0, "default unit price")
	itemsAddCmd.MarkFlagRequired("name")

	itemsCmd.AddCommand(itemsAddCmd, itemsListCmd)
	rootCmd.AddCommand(itemsCmd)
}
