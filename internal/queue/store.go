// Package queue implements the durable task queue backing the notification
// bridge. Entries live in a single structured text document, appended in
// arrival order and mutated in place; the store survives process restarts
// and tolerates a missing or corrupt document by treating it as empty on the
// read path.
package queue

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/sirupsen/logrus"
)

// LoadState classifies the outcome of reading the queue document.
type LoadState int

const (
	// LoadOK means the document was read and at least one entry parsed.
	LoadOK LoadState = iota
	// LoadEmpty means the document is absent or holds no entries.
	LoadEmpty
	// LoadMalformed means the document exists but could not be used. The
	// original error is preserved so call sites choose their own recovery;
	// every current caller degrades to an empty queue with a warning.
	LoadMalformed
)

// LoadResult carries the entries together with how the read went.
type LoadResult struct {
	Entries []Entry
	State   LoadState
	Err     error
}

// Store is the durable queue. Mutations are serialized by an in-process
// mutex plus an OS file lock, because hook invocations arrive as separate
// processes. Writes go through a temp-file-and-rename cycle so a concurrent
// reader never observes a half-written document.
type Store struct {
	path string
	mu   sync.Mutex
	log  *logrus.Entry
}

// NewStore returns a store backed by the document at path. Nothing is
// created until the first append.
func NewStore(path string) *Store {
	return &Store{
		path: path,
		log:  logrus.WithField("component", "queue"),
	}
}

// Path returns the backing document path.
func (s *Store) Path() string { return s.path }

// Load reads and parses the whole document. Read failures and unparseable
// content are reported as LoadMalformed rather than raised, since the queue
// is best-effort state on the read path.
func (s *Store) Load() LoadResult {
	raw, err := s.readRaw()
	if err != nil {
		return LoadResult{State: LoadMalformed, Err: err}
	}
	if strings.TrimSpace(raw) == "" {
		return LoadResult{State: LoadEmpty}
	}
	entries := parseDocument(raw)
	if len(entries) == 0 {
		return LoadResult{State: LoadMalformed, Err: fmt.Errorf("no entry headings in %s", s.path)}
	}
	return LoadResult{Entries: entries, State: LoadOK}
}

// Entries returns the parsed entries, degrading to empty on a malformed or
// missing document.
func (s *Store) Entries() []Entry {
	res := s.Load()
	if res.State == LoadMalformed {
		s.log.WithError(res.Err).Warn("queue document unreadable, treating as empty")
	}
	return res.Entries
}

// Append records a new pending entry with a fresh timestamp and persists the
// document. The parent directory is created lazily here, never on read.
func (s *Store) Append(sessionLabel, message string) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	unlock, err := s.lockFile()
	if err != nil {
		return Entry{}, err
	}
	defer unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return Entry{}, fmt.Errorf("failed to create queue directory: %w", err)
	}

	raw, err := s.readRaw()
	if err != nil {
		// Unlike the read path, losing entries on write is unacceptable.
		return Entry{}, fmt.Errorf("failed to read queue before append: %w", err)
	}

	entry := Entry{
		Index:        len(parseDocument(raw)),
		Status:       StatusPending,
		Timestamp:    time.Now(),
		Message:      message,
		SessionLabel: sessionLabel,
	}

	if raw != "" && !strings.HasSuffix(raw, "\n") {
		raw += "\n"
	}
	if err := s.writeRaw(raw + entry.render()); err != nil {
		return Entry{}, err
	}

	s.log.WithFields(logrus.Fields{
		"session_label": sessionLabel,
		"index":         entry.Index,
	}).Debug("appended queue entry")
	return entry, nil
}

// MostRecentSessionLabel scans backward from the end of the document for the
// latest entry's session reference. The second return value is false when
// the store is empty or unreadable.
func (s *Store) MostRecentSessionLabel() (string, bool) {
	res := s.Load()
	if res.State == LoadMalformed {
		s.log.WithError(res.Err).Warn("queue document unreadable, treating as empty")
	}
	for i := len(res.Entries) - 1; i >= 0; i-- {
		if res.Entries[i].SessionLabel != "" {
			return res.Entries[i].SessionLabel, true
		}
	}
	return "", false
}

// MarkMostRecentDone flips the last pending entry to done in place. Only the
// heading line changes; body lines are untouched. Returns whether a pending
// entry was found. Calling it again with no new pending entries is a no-op.
func (s *Store) MarkMostRecentDone() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	unlock, err := s.lockFile()
	if err != nil {
		return false, err
	}
	defer unlock()

	raw, err := s.readRaw()
	if err != nil || raw == "" {
		return false, nil
	}

	lines := strings.Split(raw, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		status, _, ok := parseHeading(lines[i])
		if !ok || status != StatusPending {
			continue
		}
		lines[i] = strings.Replace(lines[i], string(StatusPending), string(StatusDone), 1)
		if err := s.writeRaw(strings.Join(lines, "\n")); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// DeleteEntry removes the whole block of the entry at index, from its
// heading up to the next heading or end of document. Returns whether the
// entry existed.
func (s *Store) DeleteEntry(index int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	unlock, err := s.lockFile()
	if err != nil {
		return false, err
	}
	defer unlock()

	raw, err := s.readRaw()
	if err != nil || raw == "" {
		return false, nil
	}

	lines := strings.Split(raw, "\n")
	var headings []int
	for i, line := range lines {
		if _, _, ok := parseHeading(line); ok {
			headings = append(headings, i)
		}
	}
	if index < 0 || index >= len(headings) {
		return false, nil
	}

	start := headings[index]
	end := len(lines)
	if index+1 < len(headings) {
		end = headings[index+1]
	}

	remaining := append(append([]string{}, lines[:start]...), lines[end:]...)
	doc := strings.Join(remaining, "\n")
	if strings.TrimSpace(doc) == "" {
		doc = ""
	}
	if err := s.writeRaw(doc); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteMostRecent removes the last entry in the document.
func (s *Store) DeleteMostRecent() (bool, error) {
	res := s.Load()
	if len(res.Entries) == 0 {
		return false, nil
	}
	return s.DeleteEntry(len(res.Entries) - 1)
}

func (s *Store) readRaw() (string, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// writeRaw persists the document atomically: write to a temp file in the
// same directory, then rename over the target.
func (s *Store) writeRaw(doc string) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".queue-*")
	if err != nil {
		return fmt.Errorf("failed to create temp queue file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(doc); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write queue document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp queue file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to chmod queue file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace queue document: %w", err)
	}
	return nil
}

// lockFile takes the cross-process lock guarding the read-modify-write
// cycle. The lock file sits next to the document so locking works before
// the document itself exists.
func (s *Store) lockFile() (func(), error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create queue directory: %w", err)
	}
	fl := flock.New(s.path + ".lock")
	if err := fl.Lock(); err != nil {
		return nil, fmt.Errorf("failed to lock queue document: %w", err)
	}
	return func() {
		if err := fl.Unlock(); err != nil {
			s.log.WithError(err).Warn("failed to release queue lock")
		}
	}, nil
}
