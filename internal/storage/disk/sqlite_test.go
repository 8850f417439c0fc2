package disk

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"claudeq/internal/storage/interfaces"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStoreWithPath(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestLogEventAssignsIDAndTimestamp(t *testing.T) {
	store := newTestStore(t)

	event := &interfaces.Event{
		SessionLabel: "*claude:/tmp/proj*",
		Type:         interfaces.EventStop,
		Data:         map[string]any{"cwd": "/tmp/proj"},
	}
	require.NoError(t, store.LogEvent(event))
	assert.NotEmpty(t, event.ID)
	assert.False(t, event.CreatedAt.IsZero())
}

func TestRecentEventsNewestFirst(t *testing.T) {
	store := newTestStore(t)

	for _, typ := range []string{interfaces.EventNotification, interfaces.EventStop, interfaces.EventPresent} {
		require.NoError(t, store.LogEvent(&interfaces.Event{
			SessionLabel: "*claude:/tmp/proj*",
			Type:         typ,
		}))
	}

	events, err := store.RecentEvents(2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	for _, e := range events {
		assert.Equal(t, "*claude:/tmp/proj*", e.SessionLabel)
	}
}

func TestLogNotification(t *testing.T) {
	store := newTestStore(t)

	rec := &interfaces.NotificationRecord{
		SessionLabel:   "*claude:/tmp/proj*",
		Message:        "done",
		Shown:          false,
		SuppressReason: "buffer on screen",
	}
	require.NoError(t, store.LogNotification(rec))
	assert.NotEmpty(t, rec.ID)
}
