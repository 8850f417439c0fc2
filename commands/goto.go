package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"claudeq/internal/tmuxc"
	"claudeq/internal/workspace"
)

// NewGotoCmd creates the goto command.
func NewGotoCmd() *cobra.Command {
	var clear bool

	cmd := &cobra.Command{
		Use:   "goto",
		Short: "Jump to the session of the most recent queue entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := queueStore()

			label, ok := store.MostRecentSessionLabel()
			if !ok {
				fmt.Println("No entries found")
				return nil
			}

			client, err := tmuxc.NewClient()
			if err != nil {
				return err
			}
			nav := workspace.NewNavigator(client)

			ws, err := nav.SwitchTo(cmd.Context(), label)
			if err != nil {
				var notFound *workspace.NotFoundError
				if errors.As(err, &notFound) {
					fmt.Printf("No live workspace contains %s\n", label)
					return nil
				}
				return err
			}

			if clear {
				if _, err := store.MarkMostRecentDone(); err != nil {
					return err
				}
			}

			fmt.Printf("Switched to %s\n", ws)
			return nil
		},
	}

	cmd.Flags().BoolVar(&clear, "clear", false, "Mark the entry done after switching")

	return cmd
}
