package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tdpro/backend/internal/currency"
	"github.com/tdpro/backend/internal/domain"
)

func addCmd() *cobra.Command {
	var qty int
	cmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a catalog product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cart, err := appCtx.carts.AddProductByID(ctx, localSession, args[0], qty)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Added %d x %s. Cart has %d item(s).\n", qty, args[0], cart.Count())
			printSuggestions(out, appCtx.recommendations.ForAdd(ctx, localSession, args[0], qty))
			return nil
		},
	}
	cmd.Flags().IntVarP(&qty, "qty", "q", 1, "quantity")
	return cmd
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cart := appCtx.carts.Snapshot(ctx, localSession)
			region := appCtx.prefs.Region(ctx, localSession)

			out := cmd.OutOrStdout()
			if len(cart) == 0 {
				fmt.Fprintln(out, "Cart is empty.")
				return nil
			}
			for _, l := range cart {
				fmt.Fprintf(out, "%-30s x %-3d %10s\n", l.Name, l.Qty, currency.Format(l.LineTotal(), region))
			}
			fmt.Fprintf(out, "Items: %d  Subtotal: %s\n", cart.Count(), currency.Format(cart.Subtotal(), region))
			return nil
		},
	}
}

func clearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := appCtx.carts.Clear(cmd.Context(), localSession); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cart cleared.")
			return nil
		},
	}
}

func recommendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recommend",
		Short: "Suggest items that round out the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			recs := appCtx.recommendations.ForCart(cmd.Context(), localSession)
			if len(recs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No suggestions.")
				return nil
			}
			printSuggestions(cmd.OutOrStdout(), recs)
			return nil
		},
	}
}

func printSuggestions(out io.Writer, recs []domain.Recommendation) {
	if len(recs) == 0 {
		return
	}
	fmt.Fprintln(out, "You might also want:")
	for _, r := range recs {
		if r.CustomID != "" {
			fmt.Fprintf(out, "  %s: %d x %s (custom: %s)\n", r.Label, r.Quantity, r.PlainID, r.CustomID)
			continue
		}
		fmt.Fprintf(out, "  %s: %d x %s\n", r.Label, r.Quantity, r.PlainID)
	}
}
