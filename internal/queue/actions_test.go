package queue

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryDispatch(t *testing.T) {
	r := NewRegistry()
	var got string
	r.Register(ActionSwitch, func(_ context.Context, label string) error {
		got = label
		return nil
	})

	err := r.Dispatch(context.Background(), ActionSwitch, "*claude:/foo*")
	require.NoError(t, err)
	assert.Equal(t, "*claude:/foo*", got)
}

func TestRegistryUnknownToken(t *testing.T) {
	r := NewRegistry()
	r.Register(ActionOpen, func(context.Context, string) error { return nil })

	err := r.Dispatch(context.Background(), "bogus", "*claude:/foo*")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus")
}

func TestLinkEncodesTokenAndLabel(t *testing.T) {
	link := Link(ActionSwitch, "*claude:/a/b*", "*claude:/a/b*")
	assert.Equal(t, "[[claudeq:switch:*claude:/a/b*][*claude:/a/b*]]", link)

	// The persisted link parses back to the same label.
	m := linkRe.FindStringSubmatch(link)
	require.NotNil(t, m)
	assert.Equal(t, "switch", m[1])
	assert.Equal(t, "*claude:/a/b*", m[2])
}
