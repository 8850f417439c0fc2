package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"claudeq/internal/hookcfg"
	"claudeq/internal/tmuxc"
)

// NewInstallCmd creates the install command.
func NewInstallCmd() *cobra.Command {
	var targetDir string
	var global bool

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install claudeq hooks into Claude Code settings",
		Long: `Install claudeq hooks by creating or updating .claude/settings.local.json

This command will:
- Create the .claude directory if it doesn't exist
- Wire the Notification and Stop hooks to this binary
- Preserve existing settings other than the hooks section`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(targetDir, global)
		},
	}

	cmd.Flags().StringVarP(&targetDir, "directory", "d", ".", "Target directory for installation")
	cmd.Flags().BoolVar(&global, "global", false, "Install into ~/.claude/settings.json instead")

	return cmd
}

func runInstall(targetDir string, global bool) error {
	log := logrus.WithField("command", "install")

	// The popup integration is useless without tmux on PATH.
	if _, err := tmuxc.NewClient(); err != nil {
		var missing *tmuxc.MissingDependencyError
		if errors.As(err, &missing) {
			return fmt.Errorf("cannot install: %w", err)
		}
		return err
	}

	settingsPath, err := resolveSettingsPath(targetDir, global)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(settingsPath), 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	existing, err := os.ReadFile(settingsPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read existing settings: %w", err)
	}

	bin, err := os.Executable()
	if err != nil {
		bin = "claudeq"
	}

	merged, err := hookcfg.Merge(existing, hookcfg.DefaultHooks(bin))
	if err != nil {
		var perr *hookcfg.ParseError
		if !errors.As(err, &perr) {
			return err
		}
		// Corrupt settings: keep the original next to the new file and
		// start from an empty document.
		backupPath := settingsPath + ".backup"
		log.WithError(perr).Warnf("existing settings are malformed, backing up to %s", backupPath)
		if err := os.WriteFile(backupPath, existing, 0o644); err != nil {
			return fmt.Errorf("failed to back up corrupted settings: %w", err)
		}
		merged, err = hookcfg.Merge(nil, hookcfg.DefaultHooks(bin))
		if err != nil {
			return err
		}
	}

	data, err := hookcfg.Render(merged)
	if err != nil {
		return err
	}
	if err := os.WriteFile(settingsPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}

	fmt.Printf("Installed claudeq hooks in %s\n", settingsPath)
	return nil
}

func resolveSettingsPath(targetDir string, global bool) (string, error) {
	if global {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		return filepath.Join(home, ".claude", "settings.json"), nil
	}

	absDir, err := filepath.Abs(targetDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve directory: %w", err)
	}
	if _, err := os.Stat(absDir); os.IsNotExist(err) {
		return "", fmt.Errorf("target directory does not exist: %s", absDir)
	}
	return filepath.Join(absDir, ".claude", "settings.local.json"), nil
}
