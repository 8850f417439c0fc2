package workspace

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEnumerator records collaborator calls for assertions.
type fakeEnumerator struct {
	workspaces []Workspace
	listErr    error

	focused   string
	hasFocus  bool
	visible   map[string]bool
	switched  []string
	focusedTo []string
	inputMode []string
	created   []string
}

func (f *fakeEnumerator) ListWorkspaces(context.Context) ([]Workspace, error) {
	return f.workspaces, f.listErr
}

func (f *fakeEnumerator) SwitchToWorkspace(_ context.Context, name string) error {
	f.switched = append(f.switched, name)
	return nil
}

func (f *fakeEnumerator) FocusBuffer(_ context.Context, workspace, buffer string) error {
	f.focusedTo = append(f.focusedTo, workspace+"/"+buffer)
	return nil
}

func (f *fakeEnumerator) BufferVisible(_ context.Context, buffer string) (bool, error) {
	return f.visible[buffer], nil
}

func (f *fakeEnumerator) FocusedBuffer(context.Context) (string, bool) {
	return f.focused, f.hasFocus
}

func (f *fakeEnumerator) EnsureInputMode(_ context.Context, _, buffer string) error {
	f.inputMode = append(f.inputMode, buffer)
	return nil
}

func (f *fakeEnumerator) CreateWorkspace(_ context.Context, name, _ string) error {
	f.created = append(f.created, name)
	f.workspaces = append(f.workspaces, Workspace{Name: name})
	return nil
}

func TestSwitchToPicksFirstMatchingWorkspace(t *testing.T) {
	enum := &fakeEnumerator{
		workspaces: []Workspace{
			{Name: "other", Buffers: []string{"*scratch*"}},
			{Name: "proj", Buffers: []string{"*claude:/a/b/c*"}},
			{Name: "dup", Buffers: []string{"*claude:/a/b/c*"}},
		},
	}
	nav := NewNavigator(enum)

	name, err := nav.SwitchTo(context.Background(), "*claude:/a/b/c*")
	require.NoError(t, err)
	assert.Equal(t, "proj", name)
	assert.Equal(t, []string{"proj"}, enum.switched)
	assert.Equal(t, []string{"proj/*claude:/a/b/c*"}, enum.focusedTo)
	// Claude session buffers get forced back into input mode.
	assert.Equal(t, []string{"*claude:/a/b/c*"}, enum.inputMode)
}

func TestSwitchToNotFound(t *testing.T) {
	enum := &fakeEnumerator{
		workspaces: []Workspace{{Name: "proj", Buffers: []string{"*claude:/other*"}}},
	}
	nav := NewNavigator(enum)

	_, err := nav.SwitchTo(context.Background(), "*claude:/missing*")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "*claude:/missing*", nf.Label)
	assert.Empty(t, enum.switched, "no workspace mutation on resolution failure")
}

func TestSwitchToSkipsInputModeForPlainBuffers(t *testing.T) {
	enum := &fakeEnumerator{
		workspaces: []Workspace{{Name: "proj", Buffers: []string{"notes"}}},
	}
	nav := NewNavigator(enum)

	_, err := nav.SwitchTo(context.Background(), "notes")
	require.NoError(t, err)
	assert.Empty(t, enum.inputMode)
}

func TestSwitchToEnumerationFailure(t *testing.T) {
	enum := &fakeEnumerator{listErr: errors.New("tmux gone")}
	nav := NewNavigator(enum)

	_, err := nav.SwitchTo(context.Background(), "*claude:/x*")
	require.Error(t, err)
	var nf *NotFoundError
	assert.False(t, errors.As(err, &nf))
}

func TestOpenWorkspaceRootPrefersLiveSession(t *testing.T) {
	enum := &fakeEnumerator{
		workspaces: []Workspace{
			{Name: "misc", Buffers: []string{"shell"}},
			{Name: "proj", Buffers: []string{"*claude:/home/u/proj*"}},
		},
	}
	nav := NewNavigator(enum)

	name, err := nav.OpenWorkspaceRoot(context.Background(), "/home/u/proj")
	require.NoError(t, err)
	assert.Equal(t, "proj", name)
	assert.Empty(t, enum.created)
}

func TestOpenWorkspaceRootCreatesWhenAbsent(t *testing.T) {
	enum := &fakeEnumerator{}
	nav := NewNavigator(enum)

	name, err := nav.OpenWorkspaceRoot(context.Background(), "/home/u/newproj")
	require.NoError(t, err)
	assert.Equal(t, "newproj", name)
	assert.Equal(t, []string{"newproj"}, enum.created)
	assert.Equal(t, []string{"newproj"}, enum.switched)
}

func TestBufferOnScreen(t *testing.T) {
	enum := &fakeEnumerator{
		focused:  "*claude:/a*",
		hasFocus: true,
		visible:  map[string]bool{"*claude:/b*": true},
	}
	nav := NewNavigator(enum)
	ctx := context.Background()

	assert.True(t, nav.BufferOnScreen(ctx, "*claude:/a*"), "focused buffer")
	assert.True(t, nav.BufferOnScreen(ctx, "*claude:/b*"), "visible buffer")
	assert.False(t, nav.BufferOnScreen(ctx, "*claude:/c*"))
}
