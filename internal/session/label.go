// Package session parses Claude session labels.
//
// A session label names one live interactive Claude window and structurally
// encodes the workspace it was started in:
//
//	label    = "*claude:" path [ ":" instance ] "*"
//	path     = absolute filesystem path
//	instance = free-form instance name (no slashes)
//
// Labels that do not match the grammar (plain window names such as
// "*scratch*", shell windows, and so on) are simply not session labels;
// Parse reports them as a non-match rather than an error.
package session

import (
	"strings"
)

// Prefix is the fixed label prefix that marks a window as a Claude session.
const Prefix = "*claude:"

const suffix = "*"

// Locator is the workspace location decoded from a session label.
type Locator struct {
	// WorkspaceRoot is the absolute path of the originating workspace.
	WorkspaceRoot string
	// Instance is the optional secondary segment distinguishing multiple
	// sessions in the same workspace. Empty when the label has none.
	Instance string
}

// Parse decomposes a session label into a Locator. The second return value
// reports whether the label matched the grammar. Parse never fails.
func Parse(label string) (Locator, bool) {
	if !strings.HasPrefix(label, Prefix) || !strings.HasSuffix(label, suffix) {
		return Locator{}, false
	}
	inner := label[len(Prefix) : len(label)-len(suffix)]
	if inner == "" || !strings.HasPrefix(inner, "/") {
		return Locator{}, false
	}

	// The instance segment is separated by the last colon. Paths may in
	// principle contain colons, so only treat the tail as an instance when
	// it cannot be part of a path.
	if idx := strings.LastIndex(inner, ":"); idx > 0 {
		tail := inner[idx+1:]
		if tail != "" && !strings.Contains(tail, "/") {
			return Locator{WorkspaceRoot: inner[:idx], Instance: tail}, true
		}
	}
	return Locator{WorkspaceRoot: inner}, true
}

// IsSessionLabel reports whether label matches the session label grammar.
func IsSessionLabel(label string) bool {
	_, ok := Parse(label)
	return ok
}

// LabelFor builds the canonical session label for a workspace root and an
// optional instance name.
func LabelFor(workspaceRoot, instance string) string {
	if instance != "" {
		return Prefix + workspaceRoot + ":" + instance + suffix
	}
	return Prefix + workspaceRoot + suffix
}
