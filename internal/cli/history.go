package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the stored conversation",
	RunE: func(cmd *cobra.Command, args []string) error {
		if historyLimit < 0 {
			return fmt.Errorf("--limit must not be negative")
		}
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		s.store.Restore(context.Background())
		turns := s.store.Turns()
		if historyLimit > 0 {
			turns = s.store.Window(historyLimit)
		}
		if len(turns) == 0 {
			s.surface.Notify("No stored conversation.")
			return nil
		}

		for _, turn := range turns {
			s.surface.Notify(turn.Timestamp)
			s.surface.ShowUser(turn.User)
			s.surface.ShowBot(turn.Bot)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "show only the last N turns (0 for all)")
}
