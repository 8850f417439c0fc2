// Package disk implements the audit log on SQLite.
package disk

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"claudeq/internal/storage/interfaces"
)

// SQLiteStore implements EventStorer on a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

var _ interfaces.EventStorer = (*SQLiteStore)(nil)

// NewSQLiteStore opens the default database, honoring CLAUDEQ_DB_PATH for
// tests and custom setups.
func NewSQLiteStore() (*SQLiteStore, error) {
	dbPath := os.Getenv("CLAUDEQ_DB_PATH")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".local", "share", "claudeq", "state.db")
	}
	return NewSQLiteStoreWithPath(dbPath)
}

// NewSQLiteStoreWithPath opens (and migrates) a database at a custom path.
func NewSQLiteStoreWithPath(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		id TEXT PRIMARY KEY,
		session_label TEXT NOT NULL,
		type TEXT NOT NULL,
		data TEXT,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS notifications (
		id TEXT PRIMARY KEY,
		session_label TEXT NOT NULL,
		message TEXT,
		shown BOOLEAN NOT NULL DEFAULT 0,
		suppress_reason TEXT,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_session_label ON events(session_label);
	CREATE INDEX IF NOT EXISTS idx_events_created_at ON events(created_at);
	CREATE INDEX IF NOT EXISTS idx_notifications_session_label ON notifications(session_label);
	`
	_, err := s.db.Exec(schema)
	return err
}

// LogEvent records one audit event.
func (s *SQLiteStore) LogEvent(event *interfaces.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	dataJSON := "{}"
	if event.Data != nil {
		data, err := json.Marshal(event.Data)
		if err != nil {
			return fmt.Errorf("failed to marshal event data: %w", err)
		}
		dataJSON = string(data)
	}

	_, err := s.db.Exec(
		`INSERT INTO events (id, session_label, type, data, created_at) VALUES (?, ?, ?, ?, ?)`,
		event.ID, event.SessionLabel, event.Type, dataJSON, event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

// LogNotification records a presentation decision.
func (s *SQLiteStore) LogNotification(rec *interfaces.NotificationRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	_, err := s.db.Exec(
		`INSERT INTO notifications (id, session_label, message, shown, suppress_reason, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.SessionLabel, rec.Message, rec.Shown, rec.SuppressReason, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert notification record: %w", err)
	}
	return nil
}

// RecentEvents returns up to limit events, newest first.
func (s *SQLiteStore) RecentEvents(limit int) ([]*interfaces.Event, error) {
	rows, err := s.db.Query(
		`SELECT id, session_label, type, data, created_at FROM events
		 ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []*interfaces.Event
	for rows.Next() {
		var e interfaces.Event
		var dataJSON string
		if err := rows.Scan(&e.ID, &e.SessionLabel, &e.Type, &dataJSON, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		if dataJSON != "" {
			if err := json.Unmarshal([]byte(dataJSON), &e.Data); err != nil {
				e.Data = map[string]any{"raw": dataJSON}
			}
		}
		events = append(events, &e)
	}
	return events, rows.Err()
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
