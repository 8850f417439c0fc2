package queue

import (
	"context"
	"fmt"
	"sort"
)

// linkScheme is the scheme persisted in clickable queue references.
const linkScheme = "claudeq"

// Action tokens persisted in queue documents. The token is stable text; the
// behavior behind it is resolved through a Registry at dispatch time, never
// stored in the document itself.
const (
	// ActionSwitch focuses the originating session.
	ActionSwitch = "switch"
	// ActionOpen opens the originating workspace.
	ActionOpen = "open"
	// ActionDone opens the workspace and marks the most recent entry done.
	ActionDone = "done"
)

// Link renders a clickable reference binding an action token and its
// captured session label argument, with display text.
func Link(token, sessionLabel, text string) string {
	return fmt.Sprintf("[[%s:%s:%s][%s]]", linkScheme, token, sessionLabel, text)
}

// ActionFunc handles one dispatched action for a session label.
type ActionFunc func(ctx context.Context, sessionLabel string) error

// Registry maps persisted action tokens to handlers.
type Registry struct {
	handlers map[string]ActionFunc
}

// NewRegistry returns an empty action registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]ActionFunc)}
}

// Register binds a handler to a token, replacing any previous binding.
func (r *Registry) Register(token string, fn ActionFunc) {
	r.handlers[token] = fn
}

// Dispatch resolves a token and invokes its handler with the captured label.
func (r *Registry) Dispatch(ctx context.Context, token, sessionLabel string) error {
	fn, ok := r.handlers[token]
	if !ok {
		return fmt.Errorf("unknown action token %q (known: %v)", token, r.Tokens())
	}
	return fn(ctx, sessionLabel)
}

// Tokens lists registered tokens in sorted order.
func (r *Registry) Tokens() []string {
	tokens := make([]string, 0, len(r.handlers))
	for t := range r.handlers {
		tokens = append(tokens, t)
	}
	sort.Strings(tokens)
	return tokens
}
