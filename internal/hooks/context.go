package hooks

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"claudeq/internal/config"
	"claudeq/internal/queue"
	"claudeq/internal/session"
	"claudeq/internal/storage/disk"
	"claudeq/internal/storage/interfaces"
	"claudeq/internal/tmuxc"
)

// BaseHookInput contains fields common to all hook payloads.
type BaseHookInput struct {
	SessionID      string `json:"session_id"`
	TranscriptPath string `json:"transcript_path,omitempty"`
	HookEventName  string `json:"hook_event_name"`
	CWD            string `json:"cwd,omitempty"`
}

// HookContext carries everything a hook invocation needs: the raw stdin
// payload, configuration, the queue store, and the audit log.
type HookContext struct {
	Input     BaseHookInput
	RawInput  []byte
	Config    *config.Config
	Queue     *queue.Store
	Storage   interfaces.EventStorer
	StartTime time.Time
}

// NewHookContext reads and parses stdin and wires up storage. The audit
// log is best-effort: if it cannot be opened the context still works.
func NewHookContext() (*HookContext, error) {
	inputData, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, err
	}

	var baseInput BaseHookInput
	if err := json.Unmarshal(inputData, &baseInput); err != nil {
		return nil, err
	}

	cfg := config.Load()

	storage, err := disk.NewSQLiteStore()
	if err != nil {
		logrus.WithError(err).Warn("audit log unavailable")
		storage = nil
	}

	return &HookContext{
		Input:     baseInput,
		RawInput:  inputData,
		Config:    cfg,
		Queue:     queue.NewStore(cfg.ExpandedQueuePath()),
		Storage:   storage,
		StartTime: time.Now(),
	}, nil
}

// Close releases the audit log handle.
func (hc *HookContext) Close() {
	if hc.Storage != nil {
		hc.Storage.Close()
	}
}

// SessionLabel resolves the display-buffer label for the agent that fired
// this hook. Resolution order: explicit CLAUDEQ_SESSION_LABEL, then the
// tmux window the hook ran in, then a label derived from the working
// directory.
func (hc *HookContext) SessionLabel(ctx context.Context) string {
	if label := os.Getenv("CLAUDEQ_SESSION_LABEL"); label != "" {
		return label
	}

	if paneID := os.Getenv("TMUX_PANE"); paneID != "" {
		if client, err := tmuxc.NewClient(); err == nil {
			if name, err := client.PaneWindowName(ctx, paneID); err == nil && session.IsSessionLabel(name) {
				return name
			}
		}
	}

	cwd := hc.Input.CWD
	if cwd == "" {
		cwd, _ = os.Getwd()
	}
	if cwd == "" {
		return ""
	}
	return session.LabelFor(cwd, "")
}

// LogEvent records one audit event. Failures are logged, never fatal.
func (hc *HookContext) LogEvent(eventType, sessionLabel string, data map[string]any) {
	if hc.Storage == nil {
		return
	}
	event := &interfaces.Event{
		SessionLabel: sessionLabel,
		Type:         eventType,
		Data:         data,
	}
	if err := hc.Storage.LogEvent(event); err != nil {
		logrus.WithError(err).Warn("failed to log event")
	}
}

// LogNotification records a presentation decision. Failures are logged,
// never fatal.
func (hc *HookContext) LogNotification(sessionLabel, message string, shown bool, suppressReason string) {
	if hc.Storage == nil {
		return
	}
	rec := &interfaces.NotificationRecord{
		SessionLabel:   sessionLabel,
		Message:        message,
		Shown:          shown,
		SuppressReason: suppressReason,
	}
	if err := hc.Storage.LogNotification(rec); err != nil {
		logrus.WithError(err).Warn("failed to log notification")
	}
}
