package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"claudeq/internal/config"
	"claudeq/internal/notify"
	"claudeq/internal/session"
	"claudeq/internal/tmuxc"
	"claudeq/internal/workspace"
)

// NewTestCmd creates the test command, which fires a notification through
// the full presentation path without a hook event.
func NewTestCmd() *cobra.Command {
	var message string
	var label string

	cmd := &cobra.Command{
		Use:   "test",
		Short: "Fire a test notification",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			if label == "" {
				cwd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("failed to resolve working directory: %w", err)
				}
				label = session.LabelFor(cwd, "")
			}

			client, err := tmuxc.NewClient()
			if err != nil {
				return err
			}
			if !client.HasAttachedClient(cmd.Context()) {
				return fmt.Errorf("no attached tmux client to show the popup on")
			}

			bin, err := os.Executable()
			if err != nil {
				bin = "claudeq"
			}

			nav := workspace.NewNavigator(client)
			factory := notify.NewTmuxSurfaceFactory(client, bin)
			controller := notify.NewController(queueStore(), nav, factory, cfg.PopupTimeout())

			shown, err := controller.Present(cmd.Context(), message, label)
			if err != nil {
				return err
			}
			if !shown {
				fmt.Println("Notification suppressed (buffer already on screen); entry appended")
				return nil
			}
			controller.Wait()
			fmt.Println("Notification dismissed")
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "Test notification from claudeq", "Notification message")
	cmd.Flags().StringVarP(&label, "session", "s", "", "Session label (defaults to one derived from the working directory)")

	return cmd
}
