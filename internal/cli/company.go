package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ttrabelsi/facturier/internal/models"
)

var companyCmd = &cobra.Command{
	Use:   "company",
	Short: "Manage your company details shown on documents",
}

var (
	companyName    string
	companyEmail   string
	companyPhone   string
	companyAddress string
)

var companySetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set company details",
	Example: `  facturier company set --name "Studio Trabelsi" --email contact@studio.tn`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ci := &models.CompanyInfo{
			Name:    companyName,
			Email:   companyEmail,
			Phone:   companyPhone,
			Address: companyAddress,
		}
		if err := store.SaveCompanyInfo(ci); err != nil {
			return err
		}
		fmt.Printf("Company details saved for %s\n", ci.Name)
		return nil
	},
}

var companyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show company details",
	RunE: func(cmd *cobra.Command, args []string) error {
		ci, err := store.GetCompanyInfo()
		if err != nil {
			return err
		}
		if ci == nil {
			fmt.Println("No company details set. Use: facturier company set --name ...")
			return nil
		}
		fmt.Printf("Name:    %s\n", ci.Name)
		if ci.Email != "" {
			fmt.Printf("Email:   %s\n", ci.Email)
		}
		if ci.Phone != "" {
			fmt.Printf("Phone:   %s\n", ci.Phone)
		}
		if ci.Address != "" {
			fmt.Printf("Address: %s\n", ci.Address)
		}
		return nil
	},
}

func init() {
	companySetCmd.Flags().StringVar(&companyName, "name", "", "company name (required)")
	companySetCmd.Flags().StringVar(&companyEmail, "email", "", "company email")
	companySetCmd.Flags().StringVar(&companyPhone, "phone", "", "company phone")
	companySetCmd.Flags().StringVar(&companyAddress, "address", "", "company address")
	companySetCmd.MarkFlagRequired("name")

	companyCmd.AddCommand(companySetCmd, companyShowCmd)
	rootCmd.AddCommand(companyCmd)
}
