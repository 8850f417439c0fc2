package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBasicLabel(t *testing.T) {
	loc, ok := Parse("*claude:/a/b/c*")
	require.True(t, ok)
	assert.Equal(t, "/a/b/c", loc.WorkspaceRoot)
	assert.Empty(t, loc.Instance)
}

func TestParseLabelWithInstance(t *testing.T) {
	loc, ok := Parse("*claude:/home/user/proj:review*")
	require.True(t, ok)
	assert.Equal(t, "/home/user/proj", loc.WorkspaceRoot)
	assert.Equal(t, "review", loc.Instance)
}

func TestParseNonMatches(t *testing.T) {
	for _, label := range []string{
		"*scratch*",
		"shell",
		"*claude:*",
		"*claude:relative/path*",
		"*claude:/a/b/c", // missing closing delimiter
		"claude:/a/b/c*",
		"",
	} {
		_, ok := Parse(label)
		assert.False(t, ok, "label %q should not match", label)
	}
}

func TestParseColonInPath(t *testing.T) {
	// A colon followed by a slash cannot start an instance segment, so the
	// whole remainder is the path.
	loc, ok := Parse("*claude:/tmp/odd:dir/sub*")
	require.True(t, ok)
	assert.Equal(t, "/tmp/odd:dir/sub", loc.WorkspaceRoot)
}

func TestLabelForRoundTrip(t *testing.T) {
	label := LabelFor("/foo/bar", "")
	assert.Equal(t, "*claude:/foo/bar*", label)
	loc, ok := Parse(label)
	require.True(t, ok)
	assert.Equal(t, "/foo/bar", loc.WorkspaceRoot)

	label = LabelFor("/foo/bar", "second")
	loc, ok = Parse(label)
	require.True(t, ok)
	assert.Equal(t, "/foo/bar", loc.WorkspaceRoot)
	assert.Equal(t, "second", loc.Instance)
}

func TestIsSessionLabel(t *testing.T) {
	assert.True(t, IsSessionLabel("*claude:/x*"))
	assert.False(t, IsSessionLabel("*scratch*"))
}
