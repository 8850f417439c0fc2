// Package utils holds small path and formatting helpers shared by the CLI
// and the queue browser.
package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// ExpandPath resolves a leading ~ against the home directory. Data and
// config locations honor XDG_DATA_HOME and XDG_CONFIG_HOME when set.
func ExpandPath(path string) string {
	rest, ok := strings.CutPrefix(path, "~/")
	if !ok {
		return path
	}

	if tail, ok := strings.CutPrefix(rest, ".local/share/"); ok {
		if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
			return filepath.Join(dataHome, tail)
		}
	}
	if tail, ok := strings.CutPrefix(rest, ".config/"); ok {
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, tail)
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}

// TruncateStr shortens s to at most maxLen characters, marking the cut
// with "...".
func TruncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// PadStr right-pads s to width. Measured with lipgloss so ANSI styling
// does not count against the width.
func PadStr(s string, width int) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

// FormatDuration renders a duration the way the queue listings show age:
// seconds under a minute, minutes and seconds under ten minutes, then
// coarser as the duration grows.
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	switch {
	case d >= time.Hour:
		return fmt.Sprintf("%dh%dm", d/time.Hour, (d%time.Hour)/time.Minute)
	case d >= 10*time.Minute:
		return fmt.Sprintf("%dm", d/time.Minute)
	case d >= time.Minute:
		return fmt.Sprintf("%dm%ds", d/time.Minute, (d%time.Minute)/time.Second)
	default:
		return fmt.Sprintf("%ds", d/time.Second)
	}
}
