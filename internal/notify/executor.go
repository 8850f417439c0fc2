package notify

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"claudeq/internal/queue"
	"claudeq/internal/session"
	"claudeq/internal/workspace"
)

// Executor performs the actions a notification exposes. It is shared by the
// in-process controller and the popup subprocess so both execute the same
// semantics, and it backs the persisted action-token registry.
type Executor struct {
	store *queue.Store
	nav   *workspace.Navigator
	log   *logrus.Entry
}

// NewExecutor wires an executor over the queue and navigator.
func NewExecutor(store *queue.Store, nav *workspace.Navigator) *Executor {
	return &Executor{
		store: store,
		nav:   nav,
		log:   logrus.WithField("component", "notify"),
	}
}

// Execute runs the action behind a decision for a session label. Dismiss,
// timeout and closed decisions are no-ops.
func (e *Executor) Execute(ctx context.Context, d Decision, sessionLabel string) error {
	switch d {
	case DecisionSwitch:
		_, err := e.nav.SwitchTo(ctx, sessionLabel)
		return err
	case DecisionOpen:
		return e.openRoot(ctx, sessionLabel, false)
	case DecisionOpenDone:
		return e.openRoot(ctx, sessionLabel, true)
	default:
		return nil
	}
}

// openRoot opens the workspace for the label's root, optionally marking the
// most recent pending entry done first.
func (e *Executor) openRoot(ctx context.Context, sessionLabel string, markDone bool) error {
	loc, ok := session.Parse(sessionLabel)
	if !ok {
		return fmt.Errorf("session label %q does not encode a workspace root", sessionLabel)
	}
	if markDone {
		changed, err := e.store.MarkMostRecentDone()
		if err != nil {
			return err
		}
		if !changed {
			e.log.Debug("no pending entry to mark done")
		}
	}
	_, err := e.nav.OpenWorkspaceRoot(ctx, loc.WorkspaceRoot)
	return err
}

// Registry binds the persisted queue action tokens to this executor.
func (e *Executor) Registry() *queue.Registry {
	r := queue.NewRegistry()
	r.Register(queue.ActionSwitch, func(ctx context.Context, label string) error {
		return e.Execute(ctx, DecisionSwitch, label)
	})
	r.Register(queue.ActionOpen, func(ctx context.Context, label string) error {
		return e.Execute(ctx, DecisionOpen, label)
	})
	r.Register(queue.ActionDone, func(ctx context.Context, label string) error {
		return e.Execute(ctx, DecisionOpenDone, label)
	})
	return r
}
