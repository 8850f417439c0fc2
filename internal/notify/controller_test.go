package notify

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"claudeq/internal/queue"
	"claudeq/internal/workspace"
)

type fakeEnum struct {
	workspaces []workspace.Workspace
	focused    string
	visible    map[string]bool
	switched   []string
}

func (f *fakeEnum) ListWorkspaces(context.Context) ([]workspace.Workspace, error) {
	return f.workspaces, nil
}
func (f *fakeEnum) SwitchToWorkspace(_ context.Context, name string) error {
	f.switched = append(f.switched, name)
	return nil
}
func (f *fakeEnum) FocusBuffer(context.Context, string, string) error { return nil }
func (f *fakeEnum) BufferVisible(_ context.Context, buffer string) (bool, error) {
	return f.visible[buffer], nil
}
func (f *fakeEnum) FocusedBuffer(context.Context) (string, bool) {
	return f.focused, f.focused != ""
}
func (f *fakeEnum) EnsureInputMode(context.Context, string, string) error { return nil }
func (f *fakeEnum) CreateWorkspace(_ context.Context, name, _ string) error {
	f.workspaces = append(f.workspaces, workspace.Workspace{Name: name})
	return nil
}

type fakeSurface struct {
	shown   Notification
	showErr error
	closed  bool
	decide  func(Decision)
}

func (s *fakeSurface) Show(n Notification) error {
	s.shown = n
	return s.showErr
}

func (s *fakeSurface) Close() error {
	s.closed = true
	return nil
}

type harness struct {
	ctrl     *Controller
	store    *queue.Store
	enum     *fakeEnum
	surfaces []*fakeSurface
	showErr  error
}

func newHarness(t *testing.T, timeout time.Duration) *harness {
	t.Helper()
	h := &harness{
		store: queue.NewStore(filepath.Join(t.TempDir(), "tasks.org")),
		enum:  &fakeEnum{visible: map[string]bool{}},
	}
	nav := workspace.NewNavigator(h.enum)
	factory := func(decide func(Decision)) Surface {
		s := &fakeSurface{decide: decide, showErr: h.showErr}
		h.surfaces = append(h.surfaces, s)
		return s
	}
	h.ctrl = NewController(h.store, nav, factory, timeout)
	return h
}

func (h *harness) last() *fakeSurface {
	return h.surfaces[len(h.surfaces)-1]
}

func TestPresentShowsAndAppends(t *testing.T) {
	h := newHarness(t, time.Minute)

	shown, err := h.ctrl.Present(context.Background(), "task done", "*claude:/a/b*")
	require.NoError(t, err)
	assert.True(t, shown)
	assert.Equal(t, StateShowing, h.ctrl.State())

	require.Len(t, h.surfaces, 1)
	assert.Equal(t, "task done", h.last().shown.Message)
	assert.Equal(t, "/a/b", h.last().shown.WorkspaceRoot)

	label, ok := h.store.MostRecentSessionLabel()
	require.True(t, ok)
	assert.Equal(t, "*claude:/a/b*", label)
}

func TestPresentSuppressedWhenFocusedStillAppends(t *testing.T) {
	h := newHarness(t, time.Minute)
	h.enum.focused = "*claude:/a/b*"

	shown, err := h.ctrl.Present(context.Background(), "quiet", "*claude:/a/b*")
	require.NoError(t, err)
	assert.False(t, shown)
	assert.Equal(t, StateIdle, h.ctrl.State())
	assert.Empty(t, h.surfaces)

	// The durable record is unconditional.
	label, ok := h.store.MostRecentSessionLabel()
	require.True(t, ok)
	assert.Equal(t, "*claude:/a/b*", label)
}

func TestPresentSuppressedWhenVisible(t *testing.T) {
	h := newHarness(t, time.Minute)
	h.enum.visible["*claude:/a/b*"] = true

	shown, err := h.ctrl.Present(context.Background(), "quiet", "*claude:/a/b*")
	require.NoError(t, err)
	assert.False(t, shown)
	assert.Empty(t, h.surfaces)
}

func TestPresentSupersedesActiveNotification(t *testing.T) {
	h := newHarness(t, time.Minute)
	ctx := context.Background()

	_, err := h.ctrl.Present(ctx, "first", "*claude:/one*")
	require.NoError(t, err)
	first := h.last()

	shown, err := h.ctrl.Present(ctx, "second", "*claude:/two*")
	require.NoError(t, err)
	assert.True(t, shown)

	// The prior surface is fully torn down before the new one shows.
	assert.True(t, first.closed)
	assert.Equal(t, StateShowing, h.ctrl.State())
	require.Len(t, h.surfaces, 2)
	assert.Equal(t, "*claude:/two*", h.last().shown.SessionLabel)

	// The first surface's late decision is stale and must not tear down
	// the second notification.
	first.decide(DecisionDismiss)
	assert.Equal(t, StateShowing, h.ctrl.State())
	assert.False(t, h.last().closed)
}

func TestDismissReturnsToIdle(t *testing.T) {
	h := newHarness(t, time.Minute)

	_, err := h.ctrl.Present(context.Background(), "m", "*claude:/a*")
	require.NoError(t, err)

	h.ctrl.Dismiss()
	assert.Equal(t, StateIdle, h.ctrl.State())
	assert.True(t, h.last().closed)

	// Wait returns immediately once idle.
	done := make(chan struct{})
	go func() {
		h.ctrl.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after dismiss")
	}
}

func TestAutoExpiry(t *testing.T) {
	h := newHarness(t, 20*time.Millisecond)

	_, err := h.ctrl.Present(context.Background(), "m", "*claude:/a*")
	require.NoError(t, err)

	h.ctrl.Wait()
	assert.Equal(t, StateIdle, h.ctrl.State())
	assert.True(t, h.last().closed)
}

func TestSwitchDecisionNavigates(t *testing.T) {
	h := newHarness(t, time.Minute)
	h.enum.workspaces = []workspace.Workspace{
		{Name: "proj", Buffers: []string{"*claude:/a*"}},
	}

	_, err := h.ctrl.Present(context.Background(), "m", "*claude:/a*")
	require.NoError(t, err)

	h.last().decide(DecisionSwitch)
	assert.Equal(t, StateIdle, h.ctrl.State())
	assert.True(t, h.last().closed)
	assert.Equal(t, []string{"proj"}, h.enum.switched)
}

func TestOpenDoneDecisionMarksEntryDone(t *testing.T) {
	h := newHarness(t, time.Minute)
	h.enum.workspaces = []workspace.Workspace{
		{Name: "proj", Buffers: []string{"*claude:/a*"}},
	}

	_, err := h.ctrl.Present(context.Background(), "m", "*claude:/a*")
	require.NoError(t, err)

	h.last().decide(DecisionOpenDone)
	assert.Equal(t, StateIdle, h.ctrl.State())

	entries := h.store.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, queue.StatusDone, entries[0].Status)
}

func TestSurfaceFailureLeavesIdle(t *testing.T) {
	h := newHarness(t, time.Minute)
	h.showErr = errors.New("no client")

	shown, err := h.ctrl.Present(context.Background(), "m", "*claude:/a*")
	require.Error(t, err)
	assert.False(t, shown)
	assert.Equal(t, StateIdle, h.ctrl.State())

	// The append still happened before the surface failed.
	require.Len(t, h.store.Entries(), 1)
}

func TestNonSessionLabelHasNoRootActions(t *testing.T) {
	h := newHarness(t, time.Minute)

	_, err := h.ctrl.Present(context.Background(), "m", "*scratch*")
	require.NoError(t, err)
	assert.Empty(t, h.last().shown.WorkspaceRoot)
}
