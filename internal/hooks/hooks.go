package hooks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"claudeq/internal/git"
	"claudeq/internal/notify"
	"claudeq/internal/process"
	"claudeq/internal/storage/interfaces"
	"claudeq/internal/tmuxc"
	"claudeq/internal/workspace"
)

const stopMessage = "Claude has finished and is waiting for input"

// RunNotificationHook handles a Notification event from Claude Code.
func RunNotificationHook() error {
	hc, err := NewHookContext()
	if err != nil {
		return fmt.Errorf("failed to initialize hook context: %w", err)
	}
	defer hc.Close()

	var data NotificationInput
	if err := json.Unmarshal(hc.RawInput, &data); err != nil {
		return fmt.Errorf("failed to parse notification input: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	label := hc.SessionLabel(ctx)
	hc.LogEvent(interfaces.EventNotification, label, eventData(data.CWD, map[string]any{
		"message": data.Message,
	}))

	message := data.Message
	if message == "" {
		message = "Claude needs your attention"
	}
	return hc.present(ctx, message, label)
}

// RunStopHook handles a Stop event from Claude Code.
func RunStopHook() error {
	hc, err := NewHookContext()
	if err != nil {
		return fmt.Errorf("failed to initialize hook context: %w", err)
	}
	defer hc.Close()

	var data StopInput
	if err := json.Unmarshal(hc.RawInput, &data); err != nil {
		return fmt.Errorf("failed to parse stop input: %w", err)
	}

	// Claude fires Stop again when a stop hook keeps the session alive.
	// Re-notifying on that second pass would loop.
	if data.StopHookActive {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	label := hc.SessionLabel(ctx)
	hc.LogEvent(interfaces.EventStop, label, eventData(data.CWD, nil))

	if hc.Config.Ntfy.Enabled && hc.Config.Ntfy.Topic != "" {
		if err := notify.SendNtfy(hc.Config.Ntfy.URL, hc.Config.Ntfy.Topic, "Claude Code", stopMessage); err != nil {
			logrus.WithError(err).Warn("failed to send push notification")
		}
	}

	return hc.present(ctx, stopMessage, label)
}

// present records the event in the queue and raises the operator-facing
// notification. The queue append is unconditional; the popup shows only
// when a tmux client is attached and the originating buffer is not
// already on screen.
func (hc *HookContext) present(ctx context.Context, message, label string) error {
	log := logrus.WithField("session_label", label)

	client, err := tmuxc.NewClient()
	if err != nil || !client.HasAttachedClient(ctx) {
		if _, appendErr := hc.Queue.Append(label, message); appendErr != nil {
			return fmt.Errorf("failed to record task: %w", appendErr)
		}
		hc.LogNotification(label, message, false, "no attached client")
		if hc.Config.System.Enabled {
			if err := notify.SendDesktop("Claude Code", message); err != nil {
				log.WithError(err).Warn("failed to send desktop notification")
			}
		}
		return nil
	}

	if !hc.Config.PopupEnabled() {
		if _, err := hc.Queue.Append(label, message); err != nil {
			return fmt.Errorf("failed to record task: %w", err)
		}
		hc.LogNotification(label, message, false, "popups disabled")
		return nil
	}

	nav := workspace.NewNavigator(client)
	factory := notify.NewTmuxSurfaceFactory(client, executablePath())
	controller := notify.NewController(hc.Queue, nav, factory, hc.Config.PopupTimeout())

	shown, err := controller.Present(ctx, message, label)
	if err != nil {
		return fmt.Errorf("failed to present notification: %w", err)
	}
	if !shown {
		hc.LogNotification(label, message, false, "buffer on screen")
		return nil
	}
	hc.LogNotification(label, message, true, "")

	// The popup runs in a subprocess spawned by this process; wait for
	// the operator (or the timeout) before exiting.
	controller.Wait()
	return nil
}

// eventData builds the audit payload for a hook event, annotated with the
// repository, branch and agent PID.
func eventData(cwd string, extra map[string]any) map[string]any {
	data := map[string]any{
		"cwd":       cwd,
		"agent_pid": process.AgentPID(),
	}
	if cwd != "" {
		info := git.GetInfo(cwd)
		data["repository"] = info.Repository
		data["branch"] = info.Branch
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}

func executablePath() string {
	if path, err := os.Executable(); err == nil {
		return path
	}
	return "claudeq"
}
