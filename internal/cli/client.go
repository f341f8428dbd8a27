package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ttrabelsi/facturier/internal/models"
)

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Manage clients",
}

var (
	clientName    string
	clientEmail   string
	clientPhone   string
	clientAddress string
)

var clientAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a client",
	Example: `  facturier client add --name "Acme SARL" --email billing@acme.tn
  facturier client add --name "Dupont" --phone "+216 20 000 000" --address "Tunis"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := &models.Client{
			ID:      store.GenerateID(),
			Name:    clientName,
			Email:   clientEmail,
			Phone:   clientPhone,
			Address: clientAddress,
		}
		if err := store.SaveClient(c); err != nil {
			return err
		}
		fmt.Printf("Client %s created (%s)\n", c.Name, c.ID)
		return nil
	},
}

var clientListCmd = &cobra.Command{
	Use:   "list",
	Short: "List clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		clients, err := store.GetClients()
		if err != nil {
			return err
		}
		if len(clients) == 0 {
			fmt.Println("No clients yet.")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPHONE")
		for _, c := range clients {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Email, c.Phone)
		}
		return w.Flush()
	},
}

func init() {
	clientAddCmd.Flags().StringVar(&clientName, "name", "", "client name (required)")
	clientAddCmd.Flags().StringVar(&clientEmail, "email", "", "client email")
	clientAddCmd.Flags().StringVar(&clientPhone, "phone", "", "client phone")
	clientAddCmd.Flags().StringVar(&clientAddress, "address", "", "client address")
	clientAddCmd.MarkFlagRequired("name")

	clientCmd.AddCommand(clientAddCmd, clientListCmd)
	rootCmd.AddCommand(clientCmd)
}
