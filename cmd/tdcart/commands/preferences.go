package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tdpro/backend/internal/currency"
	"github.com/tdpro/backend/internal/usecase"
)

func regionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "region [code]",
		Short: "Show or set the display currency region",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				code := appCtx.prefs.Region(ctx, localSession)
				fmt.Fprintf(out, "%s (%s)\n", code, currency.SymbolFor(code))
				return nil
			}

			code, err := appCtx.prefs.SetRegion(ctx, localSession, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Region set to %s (%s)\n", code, currency.SymbolFor(code))
			return nil
		},
	}
}

func distanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "distance [feet]",
		Short: "Show or set the field length used for supplies suggestions",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				feet, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("feet must be a whole number: %q", args[0])
				}
				if err := appCtx.prefs.SetFieldDistance(ctx, localSession, feet); err != nil {
					return err
				}
			}

			s := usecase.SuppliesSuggestionFor(appCtx.prefs.FieldDistance(ctx, localSession))
			fmt.Fprintf(out, "Field length: %d ft  flags: %d pack(s)  paint: %d can(s)\n", s.DistanceFeet, s.FlagPacks, s.PaintCans)
			return nil
		},
	}
}

func formatCmd() *cobra.Command {
	var region string
	cmd := &cobra.Command{
		Use:   "format <amount>",
		Short: "Render a USD amount in a region's currency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("amount must be a number: %q", args[0])
			}
			if region == "" {
				region = appCtx.prefs.Region(cmd.Context(), localSession)
			}
			fmt.Fprintln(cmd.OutOrStdout(), currency.Format(amount, region))
			return nil
		},
	}
	cmd.Flags().StringVar(&region, "region", "", "region code (default: saved region)")
	return cmd
}
