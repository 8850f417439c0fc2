package queue

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Status is the lifecycle state encoded in an entry heading token.
type Status string

const (
	// StatusPending marks an entry that has not been handled yet.
	StatusPending Status = "TODO"
	// StatusDone marks a handled entry. Entries never revert to pending.
	StatusDone Status = "DONE"
)

// headingTitle is the fixed literal every entry heading carries.
const headingTitle = "Claude task completed"

// timeLayout renders timestamps as [2026-08-23 Sun 14:05].
const timeLayout = "2006-01-02 Mon 15:04"

const bodyIndent = "   "

// Entry is one durable record in the task queue.
type Entry struct {
	// Index is the zero-based position in append order. Derived at load
	// time, not persisted.
	Index        int
	Status       Status
	Timestamp    time.Time
	Message      string
	SessionLabel string
}

// Pending reports whether the entry still awaits handling.
func (e Entry) Pending() bool { return e.Status == StatusPending }

var (
	headingRe = regexp.MustCompile(`^\*\* (TODO|DONE) ` + headingTitle + ` \[([^\]]+)\]\s*$`)
	linkRe    = regexp.MustCompile(`\[\[` + linkScheme + `:([a-z]+):(.+?)\]\[`)
)

// render writes the entry block in the queue file format: a heading line
// carrying the status token and timestamp, followed by indented body lines
// and a trailing blank line.
func (e Entry) render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "** %s %s [%s]\n", e.Status, headingTitle, e.Timestamp.Format(timeLayout))
	fmt.Fprintf(&b, "%sMessage: %s\n", bodyIndent, sanitizeMessage(e.Message))
	fmt.Fprintf(&b, "%sBuffer: %s\n", bodyIndent, Link(ActionSwitch, e.SessionLabel, e.SessionLabel))
	fmt.Fprintf(&b, "%sActions: %s %s\n", bodyIndent,
		Link(ActionOpen, e.SessionLabel, "Open workspace"),
		Link(ActionDone, e.SessionLabel, "Open and mark done"))
	b.WriteString("\n")
	return b.String()
}

// sanitizeMessage keeps the message on a single body line.
func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r", " ")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}

// parseHeading decodes a heading line into status and timestamp.
func parseHeading(line string) (Status, time.Time, bool) {
	m := headingRe.FindStringSubmatch(line)
	if m == nil {
		return "", time.Time{}, false
	}
	ts, err := time.ParseInLocation(timeLayout, m[2], time.Local)
	if err != nil {
		// Tolerate a mangled timestamp; the entry is still usable.
		ts = time.Time{}
	}
	return Status(m[1]), ts, true
}

// parseDocument decodes entry blocks from the raw queue document. Unknown
// lines between blocks are skipped; body lines are matched by their fixed
// field prefixes.
func parseDocument(raw string) []Entry {
	var entries []Entry
	var cur *Entry

	flush := func() {
		if cur != nil {
			cur.Index = len(entries)
			entries = append(entries, *cur)
			cur = nil
		}
	}

	for _, line := range strings.Split(raw, "\n") {
		if status, ts, ok := parseHeading(line); ok {
			flush()
			cur = &Entry{Status: status, Timestamp: ts}
			continue
		}
		if cur == nil {
			continue
		}
		trimmed := strings.TrimPrefix(line, bodyIndent)
		switch {
		case strings.HasPrefix(trimmed, "Message: "):
			cur.Message = strings.TrimPrefix(trimmed, "Message: ")
		case strings.HasPrefix(trimmed, "Buffer: "):
			if m := linkRe.FindStringSubmatch(trimmed); m != nil {
				cur.SessionLabel = m[2]
			}
		}
	}
	flush()
	return entries
}
