// Package hookcfg installs the claudeq entry points into a Claude settings
// document. The merge is deliberately shallow: the whole hooks section is
// replaced, every other top-level key passes through untouched.
package hookcfg

import (
	"encoding/json"
	"fmt"
)

// Settings is a Claude settings document. Keys other than "hooks" are
// opaque to this package.
type Settings map[string]any

// Hook is one command invocation wired to a trigger.
type Hook struct {
	Type    string `json:"type"`
	Command string `json:"command"`
}

// HookEntry binds a matcher to a list of hooks.
type HookEntry struct {
	Matcher string `json:"matcher"`
	Hooks   []Hook `json:"hooks"`
}

// ParseError reports a malformed existing settings document. It is surfaced
// to the caller rather than swallowed; the install path recovers by
// treating the document as absent.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse settings document: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Merge combines an existing settings document with a hooks fragment. The
// hooks key is replaced wholesale with the fragment; all other top-level
// keys of the existing document are preserved. An empty or absent existing
// document yields a document holding only the fragment. Pure function.
func Merge(existing []byte, hooks map[string][]HookEntry) (Settings, error) {
	settings := make(Settings)
	if len(existing) > 0 {
		if err := json.Unmarshal(existing, &settings); err != nil {
			return nil, &ParseError{Err: err}
		}
	}
	settings["hooks"] = hooks
	return settings, nil
}

// DefaultHooks is the fragment wiring Claude's Notification and Stop
// triggers to the claudeq entry points. bin is the executable name or path
// to invoke.
func DefaultHooks(bin string) map[string][]HookEntry {
	return map[string][]HookEntry{
		"Notification": {
			{
				Matcher: ".*",
				Hooks:   []Hook{{Type: "command", Command: bin + " notify"}},
			},
		},
		"Stop": {
			{
				Matcher: ".*",
				Hooks:   []Hook{{Type: "command", Command: bin + " stop"}},
			},
		},
	}
}

// Render marshals a settings document with stable two-space indentation.
func Render(s Settings) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal settings: %w", err)
	}
	return append(data, '\n'), nil
}
