package hookcfg

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergePreservesUnrelatedKeysAndReplacesHooks(t *testing.T) {
	existing := []byte(`{"foo": 1, "hooks": {"X": []}}`)
	fragment := map[string][]HookEntry{
		"Y": {{Matcher: ".*", Hooks: []Hook{{Type: "command", Command: "claudeq notify"}}}},
	}

	merged, err := Merge(existing, fragment)
	require.NoError(t, err)

	assert.Equal(t, float64(1), merged["foo"])

	// The hooks section is replaced wholesale, not merged per key.
	hooks, ok := merged["hooks"].(map[string][]HookEntry)
	require.True(t, ok)
	assert.NotContains(t, hooks, "X")
	assert.Contains(t, hooks, "Y")
}

func TestMergeEmptyDocument(t *testing.T) {
	merged, err := Merge(nil, DefaultHooks("claudeq"))
	require.NoError(t, err)
	assert.Len(t, merged, 1)
	assert.Contains(t, merged, "hooks")
}

func TestMergeMalformedDocument(t *testing.T) {
	_, err := Merge([]byte("{not json"), DefaultHooks("claudeq"))
	require.Error(t, err)
	var perr *ParseError
	assert.True(t, errors.As(err, &perr))
}

func TestRenderRoundTrip(t *testing.T) {
	merged, err := Merge([]byte(`{"permissions": {"allow": ["Bash"]}}`), DefaultHooks("claudeq"))
	require.NoError(t, err)

	data, err := Render(merged)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "permissions")

	hooks, ok := decoded["hooks"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, hooks, "Notification")
	assert.Contains(t, hooks, "Stop")
}

func TestDefaultHooksCommands(t *testing.T) {
	hooks := DefaultHooks("/usr/local/bin/claudeq")
	require.Len(t, hooks["Notification"], 1)
	require.Len(t, hooks["Stop"], 1)
	assert.Equal(t, "/usr/local/bin/claudeq notify", hooks["Notification"][0].Hooks[0].Command)
	assert.Equal(t, "/usr/local/bin/claudeq stop", hooks["Stop"][0].Hooks[0].Command)
}
