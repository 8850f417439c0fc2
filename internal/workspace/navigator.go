// Package workspace resolves session labels back to live workspace contexts
// and focuses them. The workspace subsystem itself (tmux) is an external
// collaborator consumed through the Enumerator interface; this package never
// creates workspace state beyond the surfaces it is asked to open.
package workspace

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"claudeq/internal/session"
)

// Workspace is one named context the operator can switch between as a unit,
// together with the display buffers it contains.
type Workspace struct {
	Name    string
	Buffers []string
}

// Contains reports whether the workspace holds the given buffer.
func (w Workspace) Contains(buffer string) bool {
	for _, b := range w.Buffers {
		if b == buffer {
			return true
		}
	}
	return false
}

// Enumerator is the host capability this system consumes. The production
// implementation talks to tmux; tests substitute fakes.
type Enumerator interface {
	// ListWorkspaces enumerates all known workspace contexts.
	ListWorkspaces(ctx context.Context) ([]Workspace, error)
	// SwitchToWorkspace makes the named workspace the active context.
	SwitchToWorkspace(ctx context.Context, name string) error
	// FocusBuffer gives the buffer's surface focus inside a workspace,
	// realizing the surface if it is not currently visible.
	FocusBuffer(ctx context.Context, workspace, buffer string) error
	// BufferVisible reports whether the buffer currently has a visible
	// surface anywhere.
	BufferVisible(ctx context.Context, buffer string) (bool, error)
	// FocusedBuffer names the buffer whose surface has input focus, if any.
	FocusedBuffer(ctx context.Context) (string, bool)
	// EnsureInputMode forces the buffer's surface back into
	// text-input-ready mode.
	EnsureInputMode(ctx context.Context, workspace, buffer string) error
	// CreateWorkspace creates and registers a new workspace context rooted
	// at dir.
	CreateWorkspace(ctx context.Context, name, dir string) error
}

// NotFoundError reports that no live workspace currently contains the
// display buffer for a session label. It is user-visible and recoverable,
// not fatal.
type NotFoundError struct {
	Label string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no live workspace contains buffer %s", e.Label)
}

// Navigator switches the operator back to the workspace owning a session.
type Navigator struct {
	enum Enumerator
	log  *logrus.Entry

	// InputMode controls whether focused Claude session surfaces are forced
	// back into text-input-ready mode after a switch.
	InputMode bool
}

// NewNavigator returns a navigator over the given workspace collaborator.
func NewNavigator(enum Enumerator) *Navigator {
	return &Navigator{
		enum:      enum,
		log:       logrus.WithField("component", "workspace"),
		InputMode: true,
	}
}

// SwitchTo finds the workspace containing the session's display buffer,
// makes it the active context and focuses the buffer. Selection is by
// enumeration order; ties are not expected since buffer identity is
// effectively unique, so the choice is enumeration-order-dependent by
// design. Returns the chosen workspace name.
func (n *Navigator) SwitchTo(ctx context.Context, sessionLabel string) (string, error) {
	workspaces, err := n.enum.ListWorkspaces(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to enumerate workspaces: %w", err)
	}

	var target *Workspace
	for i := range workspaces {
		if workspaces[i].Contains(sessionLabel) {
			target = &workspaces[i]
			break
		}
	}
	if target == nil {
		return "", &NotFoundError{Label: sessionLabel}
	}

	if err := n.enum.SwitchToWorkspace(ctx, target.Name); err != nil {
		return "", fmt.Errorf("failed to switch to workspace %s: %w", target.Name, err)
	}
	if err := n.enum.FocusBuffer(ctx, target.Name, sessionLabel); err != nil {
		return "", fmt.Errorf("failed to focus buffer %s: %w", sessionLabel, err)
	}

	if n.InputMode && session.IsSessionLabel(sessionLabel) {
		if err := n.enum.EnsureInputMode(ctx, target.Name, sessionLabel); err != nil {
			// Input-mode restoration is a convenience, never a failure.
			n.log.WithError(err).WithField("buffer", sessionLabel).
				Warn("failed to restore input mode")
		}
	}

	n.log.WithFields(logrus.Fields{
		"workspace": target.Name,
		"buffer":    sessionLabel,
	}).Debug("switched to session workspace")
	return target.Name, nil
}

// OpenWorkspaceRoot switches to the workspace context for a workspace root
// path, preferring a live workspace that already hosts a session from that
// root and creating a fresh context rooted there otherwise.
func (n *Navigator) OpenWorkspaceRoot(ctx context.Context, root string) (string, error) {
	workspaces, err := n.enum.ListWorkspaces(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to enumerate workspaces: %w", err)
	}

	for _, ws := range workspaces {
		for _, buf := range ws.Buffers {
			if loc, ok := session.Parse(buf); ok && loc.WorkspaceRoot == root {
				if err := n.enum.SwitchToWorkspace(ctx, ws.Name); err != nil {
					return "", fmt.Errorf("failed to switch to workspace %s: %w", ws.Name, err)
				}
				return ws.Name, nil
			}
		}
	}

	name := filepath.Base(root)
	for _, ws := range workspaces {
		if ws.Name == name {
			if err := n.enum.SwitchToWorkspace(ctx, name); err != nil {
				return "", fmt.Errorf("failed to switch to workspace %s: %w", name, err)
			}
			return name, nil
		}
	}

	if err := n.enum.CreateWorkspace(ctx, name, root); err != nil {
		return "", fmt.Errorf("failed to create workspace %s: %w", name, err)
	}
	if err := n.enum.SwitchToWorkspace(ctx, name); err != nil {
		return "", fmt.Errorf("failed to switch to workspace %s: %w", name, err)
	}
	return name, nil
}

// BufferOnScreen reports whether the label's buffer is visible or currently
// focused. Enumeration failures degrade to "not on screen" so callers fall
// back to showing a notification.
func (n *Navigator) BufferOnScreen(ctx context.Context, sessionLabel string) bool {
	if focused, ok := n.enum.FocusedBuffer(ctx); ok && focused == sessionLabel {
		return true
	}
	visible, err := n.enum.BufferVisible(ctx, sessionLabel)
	if err != nil {
		n.log.WithError(err).Debug("visibility check failed, assuming not visible")
		return false
	}
	return visible
}
