package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Print the shareable id and link for this menu",
	Args:  cobra.NoArgs,
	RunE:  runShare,
}

func init() {
	rootCmd.AddCommand(shareCmd)
}

func runShare(_ *cobra.Command, _ []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	s, _ := openSession(ctx)
	id := s.ID()
	if id == "" {
		return fmt.Errorf("menu has no id yet; the service could not be reached")
	}
	rememberMenuID(id)

	fmt.Printf("Menu id: %s\n", id)
	fmt.Printf("Link:    %s/api/menu/%s\n", flagServer, id)
	return nil
}
