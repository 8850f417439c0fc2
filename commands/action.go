package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"claudeq/internal/notify"
	"claudeq/internal/tmuxc"
	"claudeq/internal/workspace"
)

// NewActionCmd creates the action command. It dispatches the action tokens
// persisted in queue entry links (switch, open, done) against a session
// label, so a link follower in any host can invoke them.
func NewActionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "action <token> <session-label>",
		Short: "Run a queue entry action for a session label",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, label := args[0], args[1]

			client, err := tmuxc.NewClient()
			if err != nil {
				return err
			}
			store := queueStore()
			executor := notify.NewExecutor(store, workspace.NewNavigator(client))

			if err := executor.Registry().Dispatch(cmd.Context(), token, label); err != nil {
				return fmt.Errorf("action %q failed: %w", token, err)
			}
			return nil
		},
	}
}
