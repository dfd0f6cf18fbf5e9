package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tdpro/backend/internal/domain"
)

func checkoutCmd() *cobra.Command {
	var (
		customer   domain.Customer
		forwardURL string
	)
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Price the cart and print the receipt",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := appCtx.checkout(forwardURL).Checkout(cmd.Context(), localSession, customer)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, r.Text)
			if !r.EmailValid {
				fmt.Fprintln(out, "\nWarning: email address looks invalid, no receipt will be mailed.")
			}
			if r.Forwarded {
				fmt.Fprintln(out, "\nReceipt sent.")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&customer.FullName, "name", "", "full name")
	cmd.Flags().StringVar(&customer.Email, "email", "", "email address")
	cmd.Flags().StringVar(&customer.Address, "address", "", "street address")
	cmd.Flags().StringVar(&customer.City, "city", "", "city")
	cmd.Flags().StringVar(&customer.State, "state", "", "state")
	cmd.Flags().StringVar(&customer.Zip, "zip", "", "zip code")
	cmd.Flags().StringVar(&forwardURL, "forward-url", "", "receipt service URL")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
