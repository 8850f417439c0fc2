// Package tmuxc is the tmux adapter behind the workspace collaborator
// interface: tmux sessions are workspace contexts and tmux windows are the
// display buffers named by session labels.
package tmuxc

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"

	"claudeq/internal/workspace"
)

// MissingDependencyError reports that a required external executable is not
// installed. It is fatal for the operation that needs it.
type MissingDependencyError struct {
	Name string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("required executable %q not found in PATH", e.Name)
}

// Client shells out to the tmux binary. It implements workspace.Enumerator.
type Client struct {
	bin string
	log *logrus.Entry
}

var _ workspace.Enumerator = (*Client)(nil)

// NewClient locates tmux and returns a client, or a MissingDependencyError
// when tmux is not installed.
func NewClient() (*Client, error) {
	bin, err := exec.LookPath("tmux")
	if err != nil {
		return nil, &MissingDependencyError{Name: "tmux"}
	}
	return &Client{
		bin: bin,
		log: logrus.WithField("component", "tmux"),
	}, nil
}

func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, c.bin, args...).Output()
	if err != nil {
		return "", fmt.Errorf("tmux %s: %w", strings.Join(args, " "), err)
	}
	return strings.TrimRight(string(out), "\n"), nil
}

// ListWorkspaces enumerates sessions and their window names in one tmux
// call.
func (c *Client) ListWorkspaces(ctx context.Context) ([]workspace.Workspace, error) {
	out, err := c.run(ctx, "list-windows", "-a", "-F", "#{session_name}\t#{window_name}")
	if err != nil {
		return nil, err
	}

	var workspaces []workspace.Workspace
	index := make(map[string]int)
	for _, line := range strings.Split(out, "\n") {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "\t", 2)
		if len(parts) != 2 {
			continue
		}
		name, window := parts[0], parts[1]
		i, ok := index[name]
		if !ok {
			i = len(workspaces)
			index[name] = i
			workspaces = append(workspaces, workspace.Workspace{Name: name})
		}
		workspaces[i].Buffers = append(workspaces[i].Buffers, window)
	}
	return workspaces, nil
}

// SwitchToWorkspace switches the current client to a session, attaching
// instead when invoked outside tmux.
func (c *Client) SwitchToWorkspace(ctx context.Context, name string) error {
	if os.Getenv("TMUX") != "" {
		_, err := c.run(ctx, "switch-client", "-t", "="+name)
		return err
	}
	// No surrounding client; a detached attach makes the session current
	// for the next attach without stealing a terminal we do not have.
	_, err := c.run(ctx, "attach-session", "-d", "-t", "="+name)
	return err
}

// FocusBuffer selects the window carrying the buffer name. Window names may
// contain characters tmux treats as target separators, so the window is
// resolved to its ID first.
func (c *Client) FocusBuffer(ctx context.Context, ws, buffer string) error {
	id, err := c.windowID(ctx, ws, buffer)
	if err != nil {
		return err
	}
	_, err = c.run(ctx, "select-window", "-t", id)
	return err
}

// BufferVisible reports whether the buffer's window is the active window of
// an attached session, i.e. actually on an operator's screen.
func (c *Client) BufferVisible(ctx context.Context, buffer string) (bool, error) {
	out, err := c.run(ctx, "list-windows", "-a", "-F",
		"#{window_name}\t#{window_active}\t#{session_attached}")
	if err != nil {
		return false, err
	}
	for _, line := range strings.Split(out, "\n") {
		parts := strings.Split(line, "\t")
		if len(parts) != 3 {
			continue
		}
		if parts[0] == buffer && parts[1] == "1" && parts[2] != "0" {
			return true, nil
		}
	}
	return false, nil
}

// FocusedBuffer names the active window of the client's current session.
// Outside tmux there is no focused surface.
func (c *Client) FocusedBuffer(ctx context.Context) (string, bool) {
	if os.Getenv("TMUX") == "" {
		return "", false
	}
	out, err := c.run(ctx, "display-message", "-p", "#{window_name}")
	if err != nil {
		c.log.WithError(err).Debug("failed to query focused window")
		return "", false
	}
	return out, true
}

// EnsureInputMode drops the buffer's pane out of copy-mode so the surface
// accepts text input again.
func (c *Client) EnsureInputMode(ctx context.Context, ws, buffer string) error {
	id, err := c.windowID(ctx, ws, buffer)
	if err != nil {
		return err
	}
	_, err = c.run(ctx, "copy-mode", "-q", "-t", id)
	return err
}

// CreateWorkspace starts a detached session rooted at dir.
func (c *Client) CreateWorkspace(ctx context.Context, name, dir string) error {
	_, err := c.run(ctx, "new-session", "-d", "-s", name, "-c", dir)
	return err
}

// windowID resolves a window name inside a session to its stable @id.
func (c *Client) windowID(ctx context.Context, ws, buffer string) (string, error) {
	out, err := c.run(ctx, "list-windows", "-t", "="+ws, "-F", "#{window_id}\t#{window_name}")
	if err != nil {
		return "", err
	}
	for _, line := range strings.Split(out, "\n") {
		parts := strings.SplitN(line, "\t", 2)
		if len(parts) == 2 && parts[1] == buffer {
			return parts[0], nil
		}
	}
	return "", fmt.Errorf("window %q not found in session %q", buffer, ws)
}

// HasAttachedClient reports whether any operator is currently attached.
func (c *Client) HasAttachedClient(ctx context.Context) bool {
	out, err := c.run(ctx, "list-clients", "-F", "#{client_tty}")
	return err == nil && strings.TrimSpace(out) != ""
}

// ClosePopup closes any open popup on the current client. Best-effort: tmux
// errors when no popup is open, which is fine.
func (c *Client) ClosePopup(ctx context.Context) {
	_, _ = c.run(ctx, "display-popup", "-C")
}

// ShowPopup opens a popup on the attached client running the given command
// and blocks until the popup closes.
func (c *Client) ShowPopup(ctx context.Context, width, height int, args ...string) error {
	popupArgs := []string{
		"display-popup", "-E",
		"-w", fmt.Sprintf("%d", width),
		"-h", fmt.Sprintf("%d", height),
	}
	popupArgs = append(popupArgs, args...)
	_, err := c.run(ctx, popupArgs...)
	return err
}

// PaneWindowName resolves the window name owning a pane ID, used to derive
// the session label of the pane a hook fired from.
func (c *Client) PaneWindowName(ctx context.Context, paneID string) (string, error) {
	return c.run(ctx, "display-message", "-p", "-t", paneID, "#{window_name}")
}
