package hooks

// Payloads delivered by Claude Code on stdin.

type NotificationInput struct {
	SessionID      string `json:"session_id"`
	TranscriptPath string `json:"transcript_path"`
	HookEventName  string `json:"hook_event_name"`
	Message        string `json:"message"`
	CWD            string `json:"cwd"`
}

type StopInput struct {
	SessionID      string `json:"session_id"`
	TranscriptPath string `json:"transcript_path"`
	HookEventName  string `json:"hook_event_name"`
	StopHookActive bool   `json:"stop_hook_active"`
	CWD            string `json:"cwd"`
}
