package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/PCalderonpm/menu-escolar/internal/core"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [lunch]",
	Short: "Get dinner ideas complementing a lunch",
	Long: "Asks the service for 2-3 child-friendly dinner recipes that\n" +
		"complement the given lunch. Without an argument, uses today's dish\n" +
		"from the weekly menu.",
	RunE: runSuggest,
}

func init() {
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(_ *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	s, client := openSession(ctx)

	lunch := strings.TrimSpace(strings.Join(args, " "))
	if lunch == "" {
		today := time.Now().Format(core.DateLayout)
		lunch = strings.TrimSpace(s.Bundle().WeeklyMenu[today])
	}
	if lunch == "" {
		return fmt.Errorf("no lunch given and no dish set for today; run 'comedor suggest <lunch>'")
	}

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Fetching dinner ideas for %q...\n", lunch)
	}

	suggestions, err := client.SuggestDinners(ctx, lunch)
	if err != nil {
		return fmt.Errorf("fetch suggestions: %w", err)
	}
	if len(suggestions) == 0 {
		fmt.Println("No suggestions available.")
		return nil
	}

	for i, sg := range suggestions {
		fmt.Printf("%d. %s\n", i+1, sg.Name)
		if len(sg.Ingredients) > 0 {
			fmt.Printf("   Ingredientes: %s\n", strings.Join(sg.Ingredients, ", "))
		}
		for _, step := range sg.Steps {
			fmt.Printf("   - %s\n", step)
		}
		fmt.Println()
	}
	return nil
}
