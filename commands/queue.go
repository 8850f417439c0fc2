package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"claudeq/internal/config"
	"claudeq/internal/queue"
	"claudeq/internal/storage/disk"
	"claudeq/internal/tmuxc"
	"claudeq/internal/tui/browse"
	"claudeq/internal/utils"
	"claudeq/internal/workspace"
)

var (
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// NewQueueCmd creates the queue command group.
func NewQueueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Inspect and manage the task queue",
	}

	cmd.AddCommand(newQueueListCmd())
	cmd.AddCommand(newQueueRecentCmd())
	cmd.AddCommand(newQueueDoneCmd())
	cmd.AddCommand(newQueueDeleteCmd())
	cmd.AddCommand(newQueueEventsCmd())
	cmd.AddCommand(newQueueBrowseCmd())

	return cmd
}

func newQueueBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "browse",
		Aliases: []string{"tui", "b"},
		Short:   "Browse the queue interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			var nav *workspace.Navigator
			if client, err := tmuxc.NewClient(); err == nil {
				nav = workspace.NewNavigator(client)
			}
			return browse.Run(queueStore(), nav)
		},
	}
}

func queueStore() *queue.Store {
	return queue.NewStore(config.Load().ExpandedQueuePath())
}

func newQueueListCmd() *cobra.Command {
	var jsonOutput bool
	var pendingOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List queue entries in append order",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := queueStore().Entries()
			if pendingOnly {
				var filtered []queue.Entry
				for _, e := range entries {
					if e.Status == queue.StatusPending {
						filtered = append(filtered, e)
					}
				}
				entries = filtered
			}

			if jsonOutput {
				data, err := json.MarshalIndent(entries, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal entries: %w", err)
				}
				fmt.Println(string(data))
				return nil
			}

			if len(entries) == 0 {
				fmt.Println("Queue is empty")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
			fmt.Fprintln(w, "#\tSTATUS\tAGE\tSESSION\tMESSAGE")
			for _, e := range entries {
				status := pendingStyle.Render(string(e.Status))
				if e.Status == queue.StatusDone {
					status = doneStyle.Render(string(e.Status))
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
					e.Index,
					status,
					utils.FormatDuration(time.Since(e.Timestamp)),
					e.SessionLabel,
					utils.TruncateStr(e.Message, 60),
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output entries as JSON")
	cmd.Flags().BoolVar(&pendingOnly, "pending", false, "Show only pending entries")

	return cmd
}

func newQueueRecentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recent",
		Short: "Print the session label of the most recent entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			label, ok := queueStore().MostRecentSessionLabel()
			if !ok {
				fmt.Println("No entries found")
				return nil
			}
			fmt.Println(label)
			return nil
		},
	}
}

func newQueueDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done",
		Short: "Mark the most recent pending entry as done",
		RunE: func(cmd *cobra.Command, args []string) error {
			changed, err := queueStore().MarkMostRecentDone()
			if err != nil {
				return err
			}
			if !changed {
				fmt.Println("No pending entry to mark done")
				return nil
			}
			fmt.Println("Marked most recent entry done")
			return nil
		},
	}
}

func newQueueDeleteCmd() *cobra.Command {
	var recent bool

	cmd := &cobra.Command{
		Use:   "delete [index]",
		Short: "Delete an entry by index, or the most recent with --recent",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := queueStore()

			if recent {
				removed, err := store.DeleteMostRecent()
				if err != nil {
					return err
				}
				if !removed {
					fmt.Println("No entries found")
					return nil
				}
				fmt.Println("Deleted most recent entry")
				return nil
			}

			if len(args) != 1 {
				return fmt.Errorf("an entry index is required (see 'queue list')")
			}
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid index %q", args[0])
			}
			removed, err := store.DeleteEntry(index)
			if err != nil {
				return err
			}
			if !removed {
				fmt.Printf("No entry at index %d\n", index)
				return nil
			}
			fmt.Printf("Deleted entry %d\n", index)
			return nil
		},
	}

	cmd.Flags().BoolVar(&recent, "recent", false, "Delete the most recent entry")

	return cmd
}

func newQueueEventsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Show recent audit events",
		RunE: func(cmd *cobra.Command, args []string) error {
			storage, err := disk.NewSQLiteStore()
			if err != nil {
				return fmt.Errorf("failed to open audit log: %w", err)
			}
			defer storage.Close()

			events, err := storage.RecentEvents(limit)
			if err != nil {
				return err
			}
			if len(events) == 0 {
				fmt.Println("No events recorded")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
			fmt.Fprintln(w, "TIME\tTYPE\tSESSION")
			for _, e := range events {
				fmt.Fprintf(w, "%s\t%s\t%s\n",
					e.CreatedAt.Format("2006-01-02 15:04:05"),
					e.Type,
					e.SessionLabel,
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of events to show")

	return cmd
}
