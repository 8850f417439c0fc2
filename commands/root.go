package commands

import (
	"github.com/spf13/cobra"

	"claudeq/internal/hooks"
)

// NewRootCmd creates the root command for claudeq.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "claudeq",
		Short: "Task queue and notification bridge for Claude Code sessions",
		Long: `claudeq bridges Claude Code hook events to a durable task queue and
ephemeral tmux popups. Hook events append entries keyed by the originating
session; the operator can jump back to that session later, even after a
restart.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newNotifyCmd())
	rootCmd.AddCommand(newStopCmd())
	rootCmd.AddCommand(NewInstallCmd())
	rootCmd.AddCommand(NewQueueCmd())
	rootCmd.AddCommand(NewGotoCmd())
	rootCmd.AddCommand(NewTestCmd())
	rootCmd.AddCommand(NewActionCmd())
	rootCmd.AddCommand(NewPopupCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

func newNotifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "notify",
		Short: "Run the notification hook (reads Claude Code JSON on stdin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return hooks.RunNotificationHook()
		},
	}
}

func newStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Run the stop hook (reads Claude Code JSON on stdin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return hooks.RunStopHook()
		},
	}
}
