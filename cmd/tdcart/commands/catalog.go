package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tdpro/backend/internal/currency"
	"github.com/tdpro/backend/internal/domain"
)

func catalogCmd() *cobra.Command {
	var categories []string
	var region string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List products, optionally by category",
		RunE: func(cmd *cobra.Command, args []string) error {
			var cats []domain.Category
			for _, c := range categories {
				cat := domain.Category(c)
				if !cat.Valid() {
					return fmt.Errorf("unknown category %q", c)
				}
				cats = append(cats, cat)
			}
			if region == "" {
				region = appCtx.prefs.Region(cmd.Context(), localSession)
			}

			out := cmd.OutOrStdout()
			for _, p := range appCtx.catalog.ByCategory(cats...) {
				badge := ""
				if appCtx.catalog.Frequent(p.ID) {
					badge = " *"
				}
				fmt.Fprintf(out, "%-26s %-30s %10s%s\n", p.ID, p.Name, currency.Format(p.BasePrice, region), badge)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&categories, "category", nil, "Discs, Bottles, Apparel or Supplies (repeatable)")
	cmd.Flags().StringVar(&region, "region", "", "display region (default: saved region)")
	return cmd
}
