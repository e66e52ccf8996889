package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PCalderonpm/menu-escolar/internal/core"
)

var (
	flagPriceMenu   string
	flagPriceVianda string
	flagPriceFixed  string
)

var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "Show or update meal prices and the fixed monthly plan",
	Long: "Without flags, prints the current prices. With flags, updates the\n" +
		"given ones and keeps the rest. Set --fixed 0 to drop the fixed-plan\n" +
		"comparison.",
	Args: cobra.NoArgs,
	RunE: runPrice,
}

func init() {
	priceCmd.Flags().StringVar(&flagPriceMenu, "menu", "", "Price of a school menu day")
	priceCmd.Flags().StringVar(&flagPriceVianda, "vianda", "", "Price of a packed-lunch day")
	priceCmd.Flags().StringVar(&flagPriceFixed, "fixed", "", "Fixed monthly plan price (0 disables)")
	rootCmd.AddCommand(priceCmd)
}

func runPrice(cmd *cobra.Command, _ []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	s, _ := openSession(ctx)
	pricing := s.Bundle().Pricing

	changed := false
	for _, f := range []struct {
		value  string
		target *core.Money
	}{
		{flagPriceMenu, &pricing.Menu},
		{flagPriceVianda, &pricing.PackedLunch},
		{flagPriceFixed, &pricing.FixedMonthly},
	} {
		if f.value == "" {
			continue
		}
		cents, err := core.ParseDecimalToCents(f.value)
		if err != nil {
			return fmt.Errorf("invalid price %q: %w", f.value, err)
		}
		f.target.Cents = cents
		changed = true
	}

	if changed {
		if err := s.SetPricing(ctx, pricing); err != nil {
			return fmt.Errorf("update prices: %w", err)
		}
		rememberMenuID(s.ID())
		pricing = s.Bundle().Pricing
	}

	fmt.Printf("Menú:   %s\n", core.FormatARS(pricing.Menu))
	fmt.Printf("Vianda: %s\n", core.FormatARS(pricing.PackedLunch))
	if pricing.HasFixedPlan() {
		fmt.Printf("Plan fijo: %s\n", core.FormatARS(pricing.FixedMonthly))
	} else {
		fmt.Println("Plan fijo: (sin plan)")
	}
	return nil
}
