package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the stored conversation",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		s.store.Restore(ctx)
		n := s.store.Len()
		s.store.Clear(ctx)
		s.surface.Notify(pluralTurns(n) + " cleared.")
		return nil
	},
}

func pluralTurns(n int) string {
	if n == 1 {
		return "1 turn"
	}
	return fmt.Sprintf("%d turns", n)
}
