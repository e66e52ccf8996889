package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/PCalderonpm/menu-escolar/internal/core"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Edit the rotating weekly lunch menu",
}

var menuSetCmd = &cobra.Command{
	Use:   "set <date> [dish]",
	Short: "Set the lunch served on a date (empty dish clears the text)",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runMenuSet,
}

var flagRepeatFrom string

var menuRepeatCmd = &cobra.Command{
	Use:   "repeat",
	Short: "Copy the two template weeks onto the following fortnight",
	Long: "Takes the week containing the reference date and the week after it,\n" +
		"and copies their Monday through Friday dishes two weeks forward.",
	Args: cobra.NoArgs,
	RunE: runMenuRepeat,
}

var flagShowWeek string

var menuShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the dishes of one week",
	Args:  cobra.NoArgs,
	RunE:  runMenuShow,
}

func init() {
	menuRepeatCmd.Flags().StringVar(&flagRepeatFrom, "from", "", "Reference date inside the first template week (default today)")
	menuShowCmd.Flags().StringVar(&flagShowWeek, "week", "", "Any date inside the week to print (default today)")
	menuCmd.AddCommand(menuSetCmd, menuRepeatCmd, menuShowCmd)
	rootCmd.AddCommand(menuCmd)
}

func runMenuSet(_ *cobra.Command, args []string) error {
	date, err := parseDate(args[0])
	if err != nil {
		return err
	}
	dish := strings.TrimSpace(strings.Join(args[1:], " "))

	ctx, cancel := commandContext()
	defer cancel()

	s, _ := openSession(ctx)
	s.SetDayMenu(ctx, date, dish)
	rememberMenuID(s.ID())

	if dish == "" {
		fmt.Printf("%s: (sin plato)\n", date)
	} else {
		fmt.Printf("%s: %s\n", date, dish)
	}
	return nil
}

func runMenuRepeat(_ *cobra.Command, _ []string) error {
	ref := time.Now()
	if flagRepeatFrom != "" {
		parsed, err := parseDate(flagRepeatFrom)
		if err != nil {
			return err
		}
		ref, _ = time.Parse(core.DateLayout, parsed)
	}

	ctx, cancel := commandContext()
	defer cancel()

	s, _ := openSession(ctx)
	s.RepeatTemplateWeeks(ctx, ref)
	rememberMenuID(s.ID())

	start := core.WeekStart(ref)
	fmt.Printf("Copied weeks of %s and %s two weeks forward\n",
		start.Format(core.DateLayout),
		start.AddDate(0, 0, 7).Format(core.DateLayout))
	return nil
}

func runMenuShow(_ *cobra.Command, _ []string) error {
	ref := time.Now()
	if flagShowWeek != "" {
		parsed, err := parseDate(flagShowWeek)
		if err != nil {
			return err
		}
		ref, _ = time.Parse(core.DateLayout, parsed)
	}

	ctx, cancel := commandContext()
	defer cancel()

	s, _ := openSession(ctx)
	plan := s.Bundle().WeeklyMenu

	start := core.WeekStart(ref)
	type row struct{ date, dish string }
	var rows []row
	for i := 0; i < 5; i++ {
		date := start.AddDate(0, 0, i).Format(core.DateLayout)
		dish, ok := plan[date]
		if !ok {
			dish = "-"
		} else if dish == "" {
			dish = "(sin plato)"
		}
		rows = append(rows, row{date, dish})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].date < rows[j].date })

	for _, r := range rows {
		fmt.Printf("%s  %s\n", r.date, r.dish)
	}
	return nil
}
