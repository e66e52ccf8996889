package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/PCalderonpm/menu-escolar/internal/core"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle <date> <choice>",
	Short: "Flip a day's meal choice (repeat to clear it)",
	Long: "Record what happened on a school day: menu, vianda, ausente or\n" +
		"no-clases. Toggling the same choice twice clears the day.\n" +
		"Use 'today' or 'hoy' as the date for the current day.",
	Args: cobra.ExactArgs(2),
	RunE: runToggle,
}

func init() {
	rootCmd.AddCommand(toggleCmd)
}

// parseChoice accepts short aliases on top of the stored wire values.
func parseChoice(s string) (core.Designation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "menu", "menú":
		return core.SchoolMenu, nil
	case "vianda":
		return core.PackedLunch, nil
	case "ausente", "absent":
		return core.Absent, nil
	case "no-clases", "noclases", "no-hubo-clases":
		return core.NoClasses, nil
	}
	return core.ParseDesignation(s)
}

// parseDate resolves "today"/"hoy" and validates calendar dates.
func parseDate(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "today", "hoy":
		return time.Now().Format(core.DateLayout), nil
	}
	t, err := time.Parse(core.DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return t.Format(core.DateLayout), nil
}

func runToggle(_ *cobra.Command, args []string) error {
	date, err := parseDate(args[0])
	if err != nil {
		return err
	}
	choice, err := parseChoice(args[1])
	if err != nil {
		return fmt.Errorf("invalid choice %q (want menu, vianda, ausente or no-clases)", args[1])
	}

	ctx, cancel := commandContext()
	defer cancel()

	s, _ := openSession(ctx)
	s.ToggleMeal(ctx, date, choice)
	rememberMenuID(s.ID())

	if now, ok := s.Bundle().Ledger[date]; ok {
		fmt.Printf("%s: %s\n", date, now)
	} else {
		fmt.Printf("%s: cleared\n", date)
	}
	return nil
}
