// Package notify owns the notification presentation state machine. A single
// controller instance holds the process-wide active-notification slot; every
// transition funnels through one teardown function so the surface and its
// dismiss-key handling are always released together.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"claudeq/internal/queue"
	"claudeq/internal/session"
	"claudeq/internal/workspace"
)

// State of the presenter. Exits from showing (dismissed, actioned, timed
// out) all land back in idle; the exit flavor is carried by the Decision.
type State int

const (
	StateIdle State = iota
	StateShowing
)

// Decision is how a showing notification ended, or which action the
// operator chose.
type Decision int

const (
	// DecisionDismiss tears the notification down with no further action.
	DecisionDismiss Decision = iota
	// DecisionSwitch switches to the originating session.
	DecisionSwitch
	// DecisionOpen opens the originating workspace.
	DecisionOpen
	// DecisionOpenDone opens the workspace and marks the most recent
	// pending entry done.
	DecisionOpenDone
	// DecisionTimeout is the auto-expiry transition.
	DecisionTimeout
	// DecisionClosed means the surface ended on its own with any action
	// already handled out of process; only teardown remains.
	DecisionClosed
)

// Notification is what a surface displays.
type Notification struct {
	Message      string
	SessionLabel string
	// WorkspaceRoot is set when the session label resolves; it enables the
	// secondary open-workspace actions.
	WorkspaceRoot string
	Timeout       time.Duration
}

// Surface is one ephemeral visual unit. Show must not block; Close must be
// safe to call after the surface already ended.
type Surface interface {
	Show(n Notification) error
	Close() error
}

// SurfaceFactory builds a surface wired to report how it ended.
type SurfaceFactory func(decide func(Decision)) Surface

// DefaultTimeout is the auto-expiry for a showing notification.
const DefaultTimeout = 10 * time.Second

// Controller decides visibility, owns the single active notification and
// executes chosen actions.
type Controller struct {
	mu          sync.Mutex
	state       State
	active      Surface
	activeLabel string
	timer       *time.Timer
	idle        chan struct{}

	store   *queue.Store
	exec    *Executor
	nav     *workspace.Navigator
	factory SurfaceFactory
	timeout time.Duration
	log     *logrus.Entry
}

// NewController wires the presenter. timeout <= 0 selects DefaultTimeout.
func NewController(store *queue.Store, nav *workspace.Navigator, factory SurfaceFactory, timeout time.Duration) *Controller {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Controller{
		store:   store,
		nav:     nav,
		exec:    NewExecutor(store, nav),
		factory: factory,
		timeout: timeout,
		log:     logrus.WithField("component", "notify"),
	}
}

// State returns the current presenter state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Present durably records the event and surfaces a notification unless the
// originating session is already on screen. The queue append is
// unconditional; only the popup is subject to the visibility decision.
// A present call arriving while another notification is showing supersedes
// it: the prior surface is fully torn down first.
//
// Returns whether a surface was shown.
func (c *Controller) Present(ctx context.Context, message, sessionLabel string) (bool, error) {
	if _, err := c.store.Append(sessionLabel, message); err != nil {
		return false, err
	}

	if c.nav.BufferOnScreen(ctx, sessionLabel) {
		c.log.WithField("session_label", sessionLabel).
			Debug("session on screen, suppressing popup")
		return false, nil
	}

	n := Notification{
		Message:      message,
		SessionLabel: sessionLabel,
		Timeout:      c.timeout,
	}
	if loc, ok := session.Parse(sessionLabel); ok {
		n.WorkspaceRoot = loc.WorkspaceRoot
	}

	c.mu.Lock()
	if c.state == StateShowing {
		c.log.WithField("session_label", c.activeLabel).
			Debug("superseding active notification")
		c.teardownLocked()
	}

	// Each surface decides through a closure carrying its own identity, so
	// a superseded surface's late callback can be told apart from the
	// active one's.
	var surface Surface
	surface = c.factory(func(d Decision) { c.decideFor(surface, d) })
	if err := surface.Show(n); err != nil {
		c.mu.Unlock()
		return false, err
	}
	c.state = StateShowing
	c.active = surface
	c.activeLabel = sessionLabel
	c.idle = make(chan struct{})
	c.timer = time.AfterFunc(c.timeout, func() { c.decideFor(surface, DecisionTimeout) })
	c.mu.Unlock()
	return true, nil
}

// Dismiss tears down the active notification, if any.
func (c *Controller) Dismiss() {
	c.mu.Lock()
	surface := c.active
	c.mu.Unlock()
	if surface != nil {
		c.decideFor(surface, DecisionDismiss)
	}
}

// Wait blocks until the presenter is idle again.
func (c *Controller) Wait() {
	c.mu.Lock()
	ch := c.idle
	c.mu.Unlock()
	if ch != nil {
		<-ch
	}
}

// decideFor is the single exit path out of showing. Only the active
// surface's decision counts: a callback from any other surface (a
// superseded popup closing late, its timer firing after teardown) is
// discarded by the identity check.
func (c *Controller) decideFor(surface Surface, d Decision) {
	c.mu.Lock()
	if c.state != StateShowing || c.active != surface {
		c.mu.Unlock()
		return
	}
	label := c.activeLabel
	c.teardownLocked()
	c.mu.Unlock()

	if err := c.exec.Execute(context.Background(), d, label); err != nil {
		// Action failures are user-visible and recoverable, never fatal.
		c.log.WithError(err).WithField("session_label", label).
			Warn("notification action failed")
	}
}

// teardownLocked releases the whole showing state as a unit: timer, surface
// and the active slot. Partial teardown is a defect, so this is the only
// place any of it is unwound.
func (c *Controller) teardownLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.active != nil {
		if err := c.active.Close(); err != nil {
			c.log.WithError(err).Warn("failed to close notification surface")
		}
		c.active = nil
	}
	c.activeLabel = ""
	c.state = StateIdle
	if c.idle != nil {
		close(c.idle)
		c.idle = nil
	}
}
