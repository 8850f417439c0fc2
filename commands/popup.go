package commands

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"claudeq/internal/notify"
	"claudeq/internal/session"
	"claudeq/internal/tmuxc"
	"claudeq/internal/workspace"
)

// NewPopupCmd creates the hidden popup command. It renders the notification
// inside a tmux display-popup pane and executes the operator's decision
// before exiting. The hook process spawns it; operators never call it.
func NewPopupCmd() *cobra.Command {
	var message string
	var label string
	var timeoutSeconds int

	cmd := &cobra.Command{
		Use:    "popup",
		Hidden: true,
		Short:  "Render a notification popup (internal)",
		RunE: func(cmd *cobra.Command, args []string) error {
			n := notify.Notification{
				Message:      message,
				SessionLabel: label,
				Timeout:      time.Duration(timeoutSeconds) * time.Second,
			}
			if loc, ok := session.Parse(label); ok {
				n.WorkspaceRoot = loc.WorkspaceRoot
			}

			decision, err := notify.RunPopup(n)
			if err != nil {
				return err
			}

			client, err := tmuxc.NewClient()
			if err != nil {
				return err
			}
			executor := notify.NewExecutor(queueStore(), workspace.NewNavigator(client))
			if err := executor.Execute(cmd.Context(), decision, label); err != nil {
				// The popup already closed; surfacing the failure would
				// have nowhere to go.
				logrus.WithError(err).Warn("notification action failed")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&message, "message", "", "Notification message")
	cmd.Flags().StringVar(&label, "session", "", "Originating session label")
	cmd.Flags().IntVar(&timeoutSeconds, "timeout", 0, "Auto-dismiss timeout in seconds")

	return cmd
}
