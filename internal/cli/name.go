package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var nameCmd = &cobra.Command{
	Use:   "name [student name]",
	Short: "Show or set the student's name",
	RunE:  runName,
}

func init() {
	rootCmd.AddCommand(nameCmd)
}

func runName(_ *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	s, _ := openSession(ctx)

	if len(args) > 0 {
		s.SetStudentName(ctx, strings.TrimSpace(strings.Join(args, " ")))
		rememberMenuID(s.ID())
	}

	name := s.Bundle().Profile.Name
	if name == "" {
		fmt.Println("(sin nombre)")
		return nil
	}
	fmt.Println(name)
	return nil
}
