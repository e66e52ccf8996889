package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/PCalderonpm/menu-escolar/internal/core"
)

var (
	flagStatsYear  int
	flagStatsMonth int
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Monthly cost breakdown against the fixed plan",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	now := time.Now()
	statsCmd.Flags().IntVar(&flagStatsYear, "year", now.Year(), "Year to aggregate")
	statsCmd.Flags().IntVar(&flagStatsMonth, "month", int(now.Month()), "Month to aggregate (1-12)")
	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, _ []string) error {
	if flagStatsMonth < 1 || flagStatsMonth > 12 {
		return fmt.Errorf("invalid month %d", flagStatsMonth)
	}

	ctx, cancel := commandContext()
	defer cancel()

	s, _ := openSession(ctx)
	st := s.Stats(flagStatsYear, flagStatsMonth)

	name := s.Bundle().Profile.Name
	if name != "" {
		fmt.Printf("%s — %d-%02d\n\n", name, st.Year, st.Month)
	} else {
		fmt.Printf("%d-%02d\n\n", st.Year, st.Month)
	}

	fmt.Printf("  %-16s %3d días  %s\n", core.SchoolMenu, st.MenuDays, core.FormatARS(st.MenuCost))
	fmt.Printf("  %-16s %3d días  %s\n", core.PackedLunch, st.PackedLunchDays, core.FormatARS(st.PackedLunchCost))
	fmt.Printf("  %-16s %3d días\n", core.Absent, st.AbsentDays)
	fmt.Printf("  %-16s %3d días\n", core.NoClasses, st.NoClassesDays)
	fmt.Printf("\n  Total: %s\n", core.FormatARS(st.TotalCost))

	if st.HasSavings {
		fmt.Printf("  Plan fijo: %s\n", core.FormatARS(s.Bundle().Pricing.FixedMonthly))
		if st.Savings.Cents >= 0 {
			fmt.Printf("  Ahorro: %s\n", core.FormatARS(st.Savings))
		} else {
			fmt.Printf("  Exceso sobre el plan: %s\n", core.FormatARS(core.Money{Cents: -st.Savings.Cents}))
		}
	}
	return nil
}
